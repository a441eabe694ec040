package collection

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/flossdex/internal/domain"
	"github.com/kailas-cloud/flossdex/internal/domain/collection"
)

// collectionToHash converts a domain Collection to a map for HSET.
func collectionToHash(col collection.Collection) (map[string]string, error) {
	names, err := json.Marshal(col.FlossNames())
	if err != nil {
		return nil, fmt.Errorf("marshal floss names: %w", err)
	}
	return map[string]string{
		"name":        col.Name(),
		"floss_names": string(names),
		"created_at":  strconv.FormatInt(col.CreatedAt(), 10),
		"revision":    strconv.Itoa(col.Revision()),
	}, nil
}

// collectionFromHash hydrates a domain Collection from an HGETALL result map.
func collectionFromHash(m map[string]string) (collection.Collection, error) {
	name := m["name"]
	if name == "" {
		return collection.Collection{}, fmt.Errorf("%w: collection record without name", domain.ErrInvalidSchema)
	}

	createdAt, err := strconv.ParseInt(m["created_at"], 10, 64)
	if err != nil {
		return collection.Collection{}, fmt.Errorf("invalid created_at: %w", err)
	}

	var names []string
	if raw := m["floss_names"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &names); err != nil {
			return collection.Collection{}, fmt.Errorf("unmarshal floss names: %w", err)
		}
	}

	revision := 1
	if revStr, ok := m["revision"]; ok && revStr != "" {
		if parsed, err := strconv.Atoi(revStr); err == nil {
			revision = parsed
		}
	}

	return collection.Reconstruct(name, names, createdAt, revision), nil
}
