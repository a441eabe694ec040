// Package floss holds the palette value types: single flosses, blends of flosses
// and the ordered palette they are drawn from.
package floss

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Floss is a single named reference color from the palette (immutable value object).
type Floss struct {
	name        string
	description string
	color       colorful.Color
}

// New validates and creates a Floss.
func New(name, description string, color colorful.Color) (Floss, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Floss{}, fmt.Errorf("floss name is required")
	}
	if !color.IsValid() {
		return Floss{}, fmt.Errorf("floss %q: color out of sRGB gamut", name)
	}
	return Floss{name: name, description: strings.TrimSpace(description), color: color}, nil
}

// FromHex creates a Floss from a hex color spec ("#rrggbb" or "rrggbb").
func FromHex(name, description, hex string) (Floss, error) {
	hex = strings.TrimSpace(hex)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Floss{}, fmt.Errorf("floss %q: parse color %q: %w", name, hex, err)
	}
	return New(name, description, c)
}

// Name returns the unique floss name (e.g. "310", "B5200", "Ecru").
func (f Floss) Name() string { return f.name }

// Description returns the human-readable color description.
func (f Floss) Description() string { return f.description }

// Color returns the sRGB color value.
func (f Floss) Color() colorful.Color { return f.color }

// Hex returns the color as "#rrggbb".
func (f Floss) Hex() string { return f.color.Hex() }

// MatchesFilter reports whether the name or description contains text (case-insensitive).
func (f Floss) MatchesFilter(text string) bool {
	text = strings.ToLower(text)
	return strings.Contains(strings.ToLower(f.name), text) ||
		strings.Contains(strings.ToLower(f.description), text)
}
