package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/encodeous/rayon/state"
	"github.com/goccy/go-yaml"
)

func loadSimCfg(path string) (state.SimCfg, error) {
	cfg := state.DefaultSimCfg()
	if path == "" {
		return cfg, nil
	}
	file, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(file, &cfg)
	if err != nil {
		return cfg, err
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// openScenario returns the scenario source: the file argument when present,
// stdin otherwise.
func openScenario(args []string) (io.ReadCloser, error) {
	if len(args) == 0 {
		return os.Stdin, nil
	}
	return os.Open(args[0])
}

// parseTraceRule parses a node:dest:via[:minround] flag value.
func parseTraceRule(spec string) (state.TraceRule, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 && len(parts) != 4 {
		return state.TraceRule{}, fmt.Errorf("trace rule must be node:dest:via[:minround], got %q", spec)
	}
	rule := state.TraceRule{
		Node: state.NodeId(parts[0]),
		Dest: state.NodeId(parts[1]),
		Via:  state.NodeId(parts[2]),
	}
	if len(parts) == 4 {
		minRound, err := strconv.Atoi(parts[3])
		if err != nil {
			return state.TraceRule{}, fmt.Errorf("bad minround in trace rule %q: %w", spec, err)
		}
		rule.MinRound = minRound
	}
	return rule, nil
}
