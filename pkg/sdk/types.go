package flossdex

// Floss is a palette entry.
type Floss struct {
	Name        string
	Description string
	Hex         string // "#rrggbb"
}

// Neighbor is one ranked blend. Name joins the member names with " + ".
type Neighbor struct {
	FlossNames []string
	Name       string
	Distance   float64 // CIEDE2000 ΔE to the target
}

// Group holds the best blends of one size, closest first.
type Group struct {
	BlendSize int
	Neighbors []Neighbor
}

// NearestResult is the answer to a Nearest call. Groups run from the largest blend
// size down to single flosses.
type NearestResult struct {
	ID     uint64
	Target string
	Groups []Group
}

// Group returns the group for a blend size.
func (r NearestResult) Group(blendSize int) (Group, bool) {
	for _, g := range r.Groups {
		if g.BlendSize == blendSize {
			return g, true
		}
	}
	return Group{}, false
}

// CollectionInfo describes a stored collection.
type CollectionInfo struct {
	Name       string
	FlossNames []string
	Revision   int
	CreatedAt  int64 // unix millis
}
