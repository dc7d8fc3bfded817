package core

import (
	"fmt"
	"io"

	"github.com/encodeous/rayon/state"
)

// Engine drives the agents through synchronous rounds: every agent
// broadcasts, then every agent receives, then the round is reported. The two
// phases never interleave across agents, and agents are always iterated in
// declaration order so traces and reports are reproducible bit for bit.
type Engine struct {
	env     *state.Env
	topo    state.Topology
	agents  []*Agent
	updates []state.Link
	trace   *RouteTrace
	pred    TracePredicate
	round   int
}

func NewEngine(env *state.Env, sc state.Scenario) *Engine {
	e := &Engine{env: env, topo: state.NewTopology(), updates: sc.Updates}
	declared := make(map[state.NodeId]bool, len(sc.Nodes))
	for _, id := range sc.Nodes {
		e.topo.InsertNode(id)
		declared[id] = true
		e.agents = append(e.agents, NewAgent(id))
	}
	for _, l := range sc.Links {
		if !declared[l.A] || !declared[l.B] {
			env.Log.Warn("ignoring link naming an undeclared node", "a", l.A, "b", l.B)
			continue
		}
		if l.Cost != state.Infinite {
			e.topo.Connect(l.A, l.B, l.Cost)
		}
	}
	env.Log.Debug("topology built", "nodes", len(e.agents), "links", e.topo.Links())
	return e
}

// AttachTrace arms relaxation tracing. Subscribers register channels on the
// RouteTrace; the predicate is compiled from the environment's trace rules.
func (e *Engine) AttachTrace(tr *RouteTrace) {
	e.trace = tr
	e.pred = CompileTracePredicate(e.env.Cfg)
}

func (e *Engine) Agents() []*Agent {
	return e.agents
}

func (e *Engine) Topology() state.Topology {
	return e.topo
}

// Run executes the whole simulation and writes the deterministic report to
// w: initial tables, bounded initial convergence, routing tables, and, when
// the scenario carries updates, the topology change with its bounded
// re-convergence and final routing tables.
func (e *Engine) Run(w io.Writer) error {
	if len(e.agents) == 0 {
		return fmt.Errorf("scenario declares no nodes")
	}

	names := make([]state.NodeId, len(e.agents))
	for i, a := range e.agents {
		names[i] = a.Id
	}
	for _, a := range e.agents {
		a.SetupTable(names)
	}
	for _, a := range e.agents {
		a.InitFromTopology(e.topo, e.agents)
	}

	fmt.Fprintln(w, state.SectionStart)
	e.reportTables(w)

	fmt.Fprintf(w, "\n%s\n", state.SectionInitial)
	for e.anyDirty() {
		e.round++
		e.exchange()
		e.reportTables(w)
		if e.round >= e.env.Cfg.InitialRoundCap {
			e.env.Log.Debug("initial round cap reached", "t", e.round)
			break
		}
	}
	e.reportRoutes(w)

	if len(e.updates) == 0 {
		return nil
	}

	fmt.Fprintf(w, "\n%s\n", state.SectionUpdate)
	e.applyUpdates()
	e.round++
	for _, a := range e.agents {
		a.HandleTopologyChange(e.topo)
	}
	e.reportTables(w)
	// one unconditional exchange at the reset step, then bounded rounds
	e.exchange()
	for i := 0; e.anyDirty() && i < e.env.Cfg.PostUpdateRoundCap; i++ {
		e.round++
		e.exchange()
		e.reportTables(w)
	}

	fmt.Fprintf(w, "\n%s\n", state.SectionFinal)
	e.reportRoutes(w)
	return nil
}

// exchange runs one full round at the current step: all broadcasts complete
// before any receive begins.
func (e *Engine) exchange() {
	observe := e.observer()
	for _, a := range e.agents {
		a.Broadcast(e.topo.Neighbors(a.Id), e.agents)
	}
	for _, a := range e.agents {
		a.Receive(e.round, observe)
	}
	e.env.Log.Debug("round complete", "t", e.round, "dirty", e.anyDirty())
}

func (e *Engine) observer() func(TraceEvent) {
	if e.trace == nil || e.pred == nil {
		return nil
	}
	return func(ev TraceEvent) {
		if e.pred(ev) {
			e.trace.Submit(ev)
		}
	}
}

// applyUpdates mutates the topology once: Infinite removes the link if it
// exists, anything else connects or re-costs it. Updates naming a node with
// no agent are skipped; accepting them would create topology entries no
// agent can ever route to.
func (e *Engine) applyUpdates() {
	for _, u := range e.updates {
		if e.agentOf(u.A) == nil || e.agentOf(u.B) == nil {
			e.env.Log.Warn("ignoring update naming an undeclared node", "a", u.A, "b", u.B)
			continue
		}
		if u.Cost == state.Infinite {
			e.topo.Disconnect(u.A, u.B)
		} else {
			e.topo.Connect(u.A, u.B, u.Cost)
		}
	}
}

func (e *Engine) agentOf(id state.NodeId) *Agent {
	for _, a := range e.agents {
		if a.Id == id {
			return a
		}
	}
	return nil
}

func (e *Engine) anyDirty() bool {
	for _, a := range e.agents {
		if a.Dirty {
			return true
		}
	}
	return false
}

func (e *Engine) reportTables(w io.Writer) {
	for _, a := range e.agents {
		WriteDistanceTable(w, a.Id, a.Table, e.round)
	}
}

func (e *Engine) reportRoutes(w io.Writer) {
	for _, a := range e.agents {
		WriteRoutingTable(w, a.Id, a.Routes)
	}
}
