package state

// TraceRule names one (node, destination, via) triple whose relaxation
// changes should be surfaced, starting at MinRound (DefaultTraceMinRound when
// zero). Rules are injected by the driver; the engine itself never decides
// what to trace.
type TraceRule struct {
	Node     NodeId `yaml:"node"`
	Dest     NodeId `yaml:"dest"`
	Via      NodeId `yaml:"via"`
	MinRound int    `yaml:"min_round,omitempty"`
}

// SimCfg is the simulation configuration.
type SimCfg struct {
	InitialRoundCap    int         `yaml:"initial_round_cap,omitempty"`
	PostUpdateRoundCap int         `yaml:"post_update_round_cap,omitempty"`
	TraceAll           bool        `yaml:"trace_all,omitempty"`
	Trace              []TraceRule `yaml:"trace,omitempty"`
	LogPath            string      `yaml:"log_path,omitempty"`
}

func DefaultSimCfg() SimCfg {
	return SimCfg{
		InitialRoundCap:    DefaultInitialRoundCap,
		PostUpdateRoundCap: DefaultPostUpdateRoundCap,
	}
}

// ApplyDefaults fills unset round caps. A cap of zero is not meaningful; the
// unconditional first round always runs.
func (c *SimCfg) ApplyDefaults() {
	if c.InitialRoundCap == 0 {
		c.InitialRoundCap = DefaultInitialRoundCap
	}
	if c.PostUpdateRoundCap == 0 {
		c.PostUpdateRoundCap = DefaultPostUpdateRoundCap
	}
}
