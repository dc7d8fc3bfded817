package state

// Report section markers, emitted in order by the engine.
const (
	SectionStart   = "#START"
	SectionInitial = "#INITIAL"
	SectionUpdate  = "#UPDATE"
	SectionFinal   = "#FINAL"
)

// DistanceCellWidth is the padded width of one cost cell in a printed
// distance table.
const DistanceCellWidth = 4

var (
	// DefaultInitialRoundCap bounds the initial convergence loop. Two
	// exchange rounds after the unconditional first broadcast cover the
	// convergence horizon of small topologies; larger graphs may
	// legitimately not converge within the cap.
	DefaultInitialRoundCap = 2
	// DefaultPostUpdateRoundCap bounds re-convergence after the topology
	// change, on top of the one unconditional reset round.
	DefaultPostUpdateRoundCap = 2
	// DefaultTraceMinRound is the first round a trace rule fires on when the
	// rule does not set its own threshold.
	DefaultTraceMinRound = 3
)

// ReservedWords may not be used as node names in a scenario.
var ReservedWords = []string{"DISTANCEVECTOR", "UPDATE", "END"}
