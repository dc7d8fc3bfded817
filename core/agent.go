package core

import (
	"slices"

	"github.com/encodeous/rayon/state"
)

// Agent owns one node's distance table, derived routing table and inbound
// mailbox. All state is private to the agent; peers only ever see value
// snapshots delivered through their own mailbox.
type Agent struct {
	Id      state.NodeId
	Table   state.DistanceTable
	Routes  state.RoutingTable
	Mailbox []state.UpdateMessage
	// Dirty is set whenever the distance table changed since the last
	// broadcast, meaning neighbours must be notified.
	Dirty bool
}

func NewAgent(id state.NodeId) *Agent {
	return &Agent{Id: id}
}

// SetupTable allocates the distance table, shaped as all declared nodes
// except self on both axes, every cost Infinite. The shape never changes for
// the lifetime of the simulation.
func (a *Agent) SetupTable(nodes []state.NodeId) {
	a.Table = state.NewDistanceTable(a.Id, nodes)
}

// InitFromTopology seeds the table with the node's initial protocol
// knowledge: the direct link cost to each neighbour, Infinite everywhere
// else. The agent is unconditionally marked dirty so the first round always
// broadcasts.
func (a *Agent) InitFromTopology(topo state.Topology, peers []*Agent) {
	neighbours := topo.Neighbors(a.Id)
	for _, n := range neighbours {
		if _, ok := a.Table[n]; !ok {
			continue // linked to an undeclared node, no table row for it
		}
		if cost, ok := topo.LinkCost(a.Id, n); ok {
			a.Table[n][n] = cost
		}
	}
	for _, p := range peers {
		if p.Id == a.Id || slices.Contains(neighbours, p.Id) {
			continue
		}
		for dest := range a.Table {
			a.Table[dest][p.Id] = state.Infinite
		}
	}
	a.Dirty = true
}

// Broadcast recomputes the routing table and delivers a snapshot of the
// distance table to every neighbour's mailbox. It is a no-op unless the
// agent is dirty, and clears the dirty flag afterwards. The agent's own
// distance table is not mutated.
func (a *Agent) Broadcast(neighbours []state.NodeId, peers []*Agent) {
	if !a.Dirty {
		return
	}
	a.ComputeRoutes()
	for _, p := range peers {
		if slices.Contains(neighbours, p.Id) {
			p.Mailbox = append(p.Mailbox, state.UpdateMessage{From: a.Id, Table: a.Table.Clone()})
		}
	}
	a.Dirty = false
}

// Receive applies Bellman-Ford relaxation for every pending update message:
// for each destination other than the sender, the cell keyed by via=sender
// becomes cost-to-sender plus the sender's best advertised cost. There is no
// split horizon or poisoned reverse, so a via column can propagate a route
// learned through that same neighbour; that is the mechanism behind the
// classic count-to-infinity pathology. The mailbox is cleared afterwards.
//
// observe, when non-nil, is invoked for every cell that actually changed.
func (a *Agent) Receive(round int, observe func(TraceEvent)) {
	for _, msg := range a.Mailbox {
		costToSource := a.Table[msg.From][msg.From]
		for _, dest := range a.Table.Destinations() {
			if dest == msg.From {
				continue
			}
			candidate := state.AddCost(costToSource, msg.Table.RowMin(dest))
			if candidate != a.Table[dest][msg.From] {
				a.Table[dest][msg.From] = candidate
				a.Dirty = true
				if observe != nil {
					observe(TraceEvent{Node: a.Id, Dest: dest, Via: msg.From, Round: round, Cost: candidate})
				}
			}
		}
	}
	a.Mailbox = a.Mailbox[:0]
}

// ComputeRoutes replaces the routing table with one derived from the current
// distance table.
func (a *Agent) ComputeRoutes() {
	a.Routes = DeriveRoutes(a.Table)
}

// DeriveRoutes selects, per destination, the minimum cost across all via
// columns. Vias are scanned in sorted order and only a strictly smaller cost
// wins, so ties break towards the smallest via id. A destination whose every
// column is Infinite gets no next hop.
func DeriveRoutes(t state.DistanceTable) state.RoutingTable {
	rt := make(state.RoutingTable, len(t))
	for _, dest := range t.Destinations() {
		best := state.Infinite
		nh := state.NoNextHop
		for _, via := range t.Vias(dest) {
			if c := t[dest][via]; c < best {
				best = c
				nh = via
			}
		}
		rt[dest] = state.RouteEntry{Cost: best, NextHop: nh}
	}
	return rt
}

// HandleTopologyChange rebuilds the table from locally-known facts after the
// topology mutated: cells whose via is still a direct neighbour are reset to
// the fresh link cost, every other cell becomes Infinite. Indirectly learned
// routes are discarded and must be re-learned from fresh broadcasts. Pending
// mailbox entries predate the change and are dropped. The agent is dirty iff
// the table actually changed.
func (a *Agent) HandleTopologyChange(topo state.Topology) {
	prior := a.Table.Clone()
	a.Mailbox = a.Mailbox[:0]
	neighbours := topo.Neighbors(a.Id)
	for dest := range a.Table {
		for via := range a.Table[dest] {
			if slices.Contains(neighbours, via) {
				if cost, ok := topo.LinkCost(a.Id, via); ok {
					a.Table[dest][via] = cost
				} else {
					a.Table[dest][via] = state.Infinite
				}
			} else {
				a.Table[dest][via] = state.Infinite
			}
		}
	}
	if !a.Table.Equal(prior) {
		a.Dirty = true
	}
}
