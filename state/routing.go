package state

import (
	"maps"
	"slices"
)

type NodeId string

// NoNextHop marks a routing table entry with no usable via neighbour.
const NoNextHop = NodeId("")

// DistanceTable is a single node's private view of the network. Rows are
// destinations, columns are direct via neighbours, and each cell holds the
// best known cost to the destination through that neighbour. The row and
// column key sets are fixed at setup time to every declared node except the
// owner; only the costs change afterwards.
type DistanceTable map[NodeId]map[NodeId]Cost

func NewDistanceTable(self NodeId, nodes []NodeId) DistanceTable {
	t := make(DistanceTable, len(nodes))
	for _, dest := range nodes {
		if dest == self {
			continue
		}
		row := make(map[NodeId]Cost, len(nodes))
		for _, via := range nodes {
			if via == self {
				continue
			}
			row[via] = Infinite
		}
		t[dest] = row
	}
	return t
}

// Clone returns a deep value copy. Update messages must carry clones, never
// the live table, or receivers would observe the sender's future mutations.
func (t DistanceTable) Clone() DistanceTable {
	c := make(DistanceTable, len(t))
	for dest, row := range t {
		c[dest] = maps.Clone(row)
	}
	return c
}

func (t DistanceTable) Equal(o DistanceTable) bool {
	if len(t) != len(o) {
		return false
	}
	for dest, row := range t {
		orow, ok := o[dest]
		if !ok || !maps.Equal(row, orow) {
			return false
		}
	}
	return true
}

// RowMin returns the smallest cost to dest across all via columns.
func (t DistanceTable) RowMin(dest NodeId) Cost {
	best := Infinite
	for _, c := range t[dest] {
		best = MinCost(best, c)
	}
	return best
}

// Destinations returns the row keys in sorted order.
func (t DistanceTable) Destinations() []NodeId {
	return slices.Sorted(maps.Keys(t))
}

// Vias returns the column keys of a row in sorted order.
func (t DistanceTable) Vias(dest NodeId) []NodeId {
	return slices.Sorted(maps.Keys(t[dest]))
}

type RouteEntry struct {
	Cost    Cost
	NextHop NodeId
}

// RoutingTable maps each destination to its best cost and next hop. It is
// derived wholesale from a DistanceTable and replaced, never patched.
type RoutingTable map[NodeId]RouteEntry

func (rt RoutingTable) Destinations() []NodeId {
	return slices.Sorted(maps.Keys(rt))
}

// UpdateMessage is an immutable snapshot of a neighbour's distance table,
// taken at broadcast time.
type UpdateMessage struct {
	From  NodeId
	Table DistanceTable
}
