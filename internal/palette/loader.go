// Package palette loads the base floss palette from its data source.
package palette

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/flossdex/internal/domain/floss"
)

// Format identifies a palette data source layout.
type Format string

const (
	// FormatText is the repeating three-line layout: name, description, hex color.
	FormatText Format = "text"
	// FormatJSON is an array of {"name", "description", "color"} objects.
	FormatJSON Format = "json"
)

// record is one palette entry as it appears in the JSON data source.
type record struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// Load parses a palette data source.
func Load(r io.Reader, format Format) (*floss.Palette, error) {
	var (
		records []record
		err     error
	)
	switch format {
	case FormatText, "":
		records, err = readText(r)
	case FormatJSON:
		records, err = readJSON(r)
	default:
		return nil, fmt.Errorf("unknown palette format %q", format)
	}
	if err != nil {
		return nil, err
	}

	flosses := make([]floss.Floss, 0, len(records))
	for i, rec := range records {
		f, err := floss.FromHex(rec.Name, rec.Description, rec.Color)
		if err != nil {
			return nil, fmt.Errorf("palette entry %d: %w", i+1, err)
		}
		flosses = append(flosses, f)
	}
	if len(flosses) == 0 {
		return nil, fmt.Errorf("palette is empty")
	}
	return floss.NewPalette(flosses), nil
}

// LoadFile parses a palette file, picking the format from its extension (.json or text).
func LoadFile(path string) (*floss.Palette, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open palette %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	format := FormatText
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = FormatJSON
	}

	p, err := Load(f, format)
	if err != nil {
		return nil, fmt.Errorf("load palette %s: %w", path, err)
	}
	return p, nil
}

func readText(r io.Reader) ([]record, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read palette: %w", err)
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines)%3 != 0 {
		return nil, fmt.Errorf("palette text has %d lines, want a multiple of 3", len(lines))
	}

	records := make([]record, 0, len(lines)/3)
	for i := 0; i < len(lines); i += 3 {
		records = append(records, record{
			Name:        lines[i],
			Description: lines[i+1],
			Color:       lines[i+2],
		})
	}
	return records, nil
}

func readJSON(r io.Reader) ([]record, error) {
	var records []record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode palette json: %w", err)
	}
	return records, nil
}
