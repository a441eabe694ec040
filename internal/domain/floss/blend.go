package floss

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/kailas-cloud/flossdex/internal/domain"
)

// NameSeparator joins member names and descriptions of a blend.
const NameSeparator = " + "

// Blend is a synthesized color averaged from one or more flosses.
// Identity is the ordered member sequence; the color does not depend on order.
type Blend struct {
	members []Floss
	color   colorful.Color
}

// NewBlend averages members channel by channel in device sRGB.
func NewBlend(members ...Floss) (Blend, error) {
	if len(members) == 0 {
		return Blend{}, fmt.Errorf("%w: blend requires at least one floss", domain.ErrInvalidParameter)
	}

	var r, g, b float64
	for _, m := range members {
		r += m.color.R
		g += m.color.G
		b += m.color.B
	}
	n := float64(len(members))

	own := make([]Floss, len(members))
	copy(own, members)
	return Blend{
		members: own,
		color:   colorful.Color{R: r / n, G: g / n, B: b / n},
	}, nil
}

// Size returns the number of member flosses (the thread count).
func (b Blend) Size() int { return len(b.members) }

// Members returns a copy of the member flosses.
func (b Blend) Members() []Floss {
	out := make([]Floss, len(b.members))
	copy(out, b.members)
	return out
}

// MemberNames returns the member names in blend order.
func (b Blend) MemberNames() []string {
	names := make([]string, len(b.members))
	for i, m := range b.members {
		names[i] = m.name
	}
	return names
}

// Name joins member names, e.g. "310 + 321".
func (b Blend) Name() string {
	return strings.Join(b.MemberNames(), NameSeparator)
}

// Description joins member descriptions.
func (b Blend) Description() string {
	descs := make([]string, len(b.members))
	for i, m := range b.members {
		descs[i] = m.description
	}
	return strings.Join(descs, NameSeparator)
}

// Color returns the averaged color.
func (b Blend) Color() colorful.Color { return b.color }

// Contains reports whether a floss with the given name is a member.
func (b Blend) Contains(name string) bool {
	for _, m := range b.members {
		if m.name == name {
			return true
		}
	}
	return false
}
