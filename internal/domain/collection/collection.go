package collection

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/kailas-cloud/flossdex/internal/domain/floss"
)

// MaxNameLength is the maximum collection name length in runes.
const MaxNameLength = 64

// Collection is a user-curated named subset of palette flosses (immutable value object).
// Floss names are kept deduplicated and in palette name order.
type Collection struct {
	name       string
	flossNames []string
	createdAt  int64
	revision   int
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("collection name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("collection name too long (max %d)", MaxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) || r == '/' {
			return fmt.Errorf("collection name must not contain control characters or '/'")
		}
	}
	return nil
}

func normalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	floss.SortNames(out)
	return out
}

// New validates and creates a Collection. Membership of flossNames in the palette is
// checked by the caller.
func New(name string, flossNames []string) (Collection, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return Collection{}, err
	}
	return Collection{
		name:       name,
		flossNames: normalizeNames(flossNames),
		createdAt:  time.Now().UnixMilli(),
		revision:   1,
	}, nil
}

// Reconstruct creates a Collection without validation (storage hydration).
func Reconstruct(name string, flossNames []string, createdAt int64, revision int) Collection {
	return Collection{
		name:       name,
		flossNames: normalizeNames(flossNames),
		createdAt:  createdAt,
		revision:   revision,
	}
}

// Name returns the collection name.
func (c Collection) Name() string { return c.name }

// FlossNames returns a copy of the member floss names in palette order.
func (c Collection) FlossNames() []string {
	out := make([]string, len(c.flossNames))
	copy(out, c.flossNames)
	return out
}

// Len returns the number of flosses in the collection.
func (c Collection) Len() int { return len(c.flossNames) }

// CreatedAt returns the creation timestamp (unix millis).
func (c Collection) CreatedAt() int64 { return c.createdAt }

// Revision returns the version, bumped on every change.
func (c Collection) Revision() int { return c.revision }

// Contains reports whether the collection includes the floss name.
func (c Collection) Contains(name string) bool {
	for _, n := range c.flossNames {
		if n == name {
			return true
		}
	}
	return false
}

// WithFlosses returns a copy holding exactly flossNames.
func (c Collection) WithFlosses(flossNames []string) Collection {
	return Collection{
		name:       c.name,
		flossNames: normalizeNames(flossNames),
		createdAt:  c.createdAt,
		revision:   c.revision + 1,
	}
}

// Renamed returns a copy under a new validated name.
func (c Collection) Renamed(name string) (Collection, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return Collection{}, err
	}
	return Collection{
		name:       name,
		flossNames: c.FlossNames(),
		createdAt:  c.createdAt,
		revision:   c.revision + 1,
	}, nil
}
