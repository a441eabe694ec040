package result

import "slices"

// Neighbor is one ranked candidate: the blend member names and their distance to the target.
type Neighbor struct {
	flossNames []string
	distance   float64
}

// NewNeighbor creates a ranked candidate.
func NewNeighbor(flossNames []string, distance float64) Neighbor {
	return Neighbor{flossNames: slices.Clone(flossNames), distance: distance}
}

// FlossNames returns the blend member names.
func (n *Neighbor) FlossNames() []string { return n.flossNames }

// Distance returns the CIEDE2000 distance to the target.
func (n *Neighbor) Distance() float64 { return n.distance }

// BlendSize returns the number of flosses in the blend.
func (n *Neighbor) BlendSize() int { return len(n.flossNames) }

// Group holds the closest neighbors of a single blend size, ascending by distance.
type Group struct {
	blendSize int
	neighbors []Neighbor
}

// NewGroup creates a group for one blend size.
func NewGroup(blendSize int, neighbors []Neighbor) Group {
	if neighbors == nil {
		neighbors = []Neighbor{}
	}
	return Group{blendSize: blendSize, neighbors: neighbors}
}

// BlendSize returns the number of flosses per neighbor in this group.
func (g *Group) BlendSize() int { return g.blendSize }

// Neighbors returns the ranked neighbors.
func (g *Group) Neighbors() []Neighbor { return g.neighbors }

// Response is the outcome of one search request, correlated by ID.
// Groups are ordered from the largest blend size down to 1.
type Response struct {
	id         uint64
	targetName string
	groups     []Group
}

// NewResponse creates a search response.
func NewResponse(id uint64, targetName string, groups []Group) Response {
	return Response{id: id, targetName: targetName, groups: groups}
}

// ID returns the correlation ID of the originating request.
func (r *Response) ID() uint64 { return r.id }

// TargetName returns the floss the neighbors were ranked against.
func (r *Response) TargetName() string { return r.targetName }

// Groups returns all blend-size groups, largest size first.
func (r *Response) Groups() []Group { return r.groups }

// Group returns the group for a blend size.
func (r *Response) Group(blendSize int) (Group, bool) {
	for _, g := range r.groups {
		if g.blendSize == blendSize {
			return g, true
		}
	}
	return Group{}, false
}
