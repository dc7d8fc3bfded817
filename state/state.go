package state

import "log/slog"

// Env is the ambient context handed to the simulation core. It is read-only
// once the simulation starts, and the engine never writes report output
// through the logger.
type Env struct {
	Log *slog.Logger
	Cfg SimCfg
}
