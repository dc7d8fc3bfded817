package core

import (
	"fmt"

	"github.com/dustin/go-broadcast"
	"github.com/encodeous/rayon/state"
)

// TraceEvent describes one relaxation step that changed a distance table
// cell.
type TraceEvent struct {
	Node  state.NodeId
	Dest  state.NodeId
	Via   state.NodeId
	Round int
	Cost  state.Cost
}

func (ev TraceEvent) String() string {
	return fmt.Sprintf("t=%d distance from %s to %s via %s is %s", ev.Round, ev.Node, ev.Dest, ev.Via, ev.Cost)
}

// TracePredicate decides which relaxation changes are surfaced to trace
// subscribers.
type TracePredicate func(ev TraceEvent) bool

// CompileTracePredicate builds a predicate from the configured trace rules.
// Returns nil when tracing is not armed at all.
func CompileTracePredicate(cfg state.SimCfg) TracePredicate {
	if cfg.TraceAll {
		return func(TraceEvent) bool { return true }
	}
	if len(cfg.Trace) == 0 {
		return nil
	}
	rules := make([]state.TraceRule, len(cfg.Trace))
	copy(rules, cfg.Trace)
	for i := range rules {
		if rules[i].MinRound == 0 {
			rules[i].MinRound = state.DefaultTraceMinRound
		}
	}
	return func(ev TraceEvent) bool {
		for _, r := range rules {
			if ev.Node == r.Node && ev.Dest == r.Dest && ev.Via == r.Via && ev.Round >= r.MinRound {
				return true
			}
		}
		return false
	}
}

// RouteTrace distributes TraceEvents to any number of subscribers, keeping
// debug output out of the engine itself.
type RouteTrace struct {
	broadcast.Broadcaster
}

func NewRouteTrace() *RouteTrace {
	return &RouteTrace{broadcast.NewBroadcaster(1024)}
}

func (rt *RouteTrace) Close() error {
	return rt.Broadcaster.Close()
}
