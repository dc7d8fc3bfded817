package state

import (
	"maps"
	"slices"
)

// Topology is an undirected weighted graph of node ids. Each link is stored
// once, keyed by the sorted pair of its endpoints, so symmetry holds by
// construction. A missing edge means no direct link.
type Topology struct {
	nodes map[NodeId]bool
	edges map[Pair[NodeId, NodeId]]Cost
}

func NewTopology() Topology {
	return Topology{
		nodes: make(map[NodeId]bool),
		edges: make(map[Pair[NodeId, NodeId]]Cost),
	}
}

// InsertNode is idempotent.
func (t Topology) InsertNode(id NodeId) {
	t.nodes[id] = true
}

// Connect sets the link cost in both directions, overwriting any prior value.
func (t Topology) Connect(a, b NodeId, cost Cost) {
	t.InsertNode(a)
	t.InsertNode(b)
	t.edges[MakeSortedPair(a, b)] = cost
}

// Disconnect removes the link. Removing a link that does not exist is a
// no-op.
func (t Topology) Disconnect(a, b NodeId) {
	delete(t.edges, MakeSortedPair(a, b))
}

// Linked reports whether a direct link exists between a and b.
func (t Topology) Linked(a, b NodeId) bool {
	_, ok := t.edges[MakeSortedPair(a, b)]
	return ok
}

func (t Topology) LinkCost(a, b NodeId) (Cost, bool) {
	c, ok := t.edges[MakeSortedPair(a, b)]
	return c, ok
}

// Neighbors returns the directly linked node ids in sorted order.
func (t Topology) Neighbors(id NodeId) []NodeId {
	var res []NodeId
	for e := range t.edges {
		switch id {
		case e.V1:
			res = append(res, e.V2)
		case e.V2:
			res = append(res, e.V1)
		}
	}
	slices.Sort(res)
	return res
}

// Links returns every undirected link as a sorted (a, b) pair, ordered by
// endpoint names.
func (t Topology) Links() []Pair[NodeId, NodeId] {
	links := slices.Collect(maps.Keys(t.edges))
	SortPairs(links)
	return links
}

// Nodes returns every known node id in sorted order.
func (t Topology) Nodes() []NodeId {
	return slices.Sorted(maps.Keys(t.nodes))
}

func (t Topology) Clone() Topology {
	return Topology{
		nodes: maps.Clone(t.nodes),
		edges: maps.Clone(t.edges),
	}
}
