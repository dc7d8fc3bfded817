package cmd

import (
	"log/slog"
	"os"

	"github.com/encodeous/rayon/core"
	"github.com/encodeous/rayon/state"
	"github.com/encodeous/tint"
	"github.com/google/uuid"
	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [scenario]",
	Short: "Run a distance-vector simulation",
	Long: `Runs the simulation described by the scenario file (or stdin when omitted)
and writes the convergence report to stdout. Logs go to stderr.`,
	Args:    cobra.MaximumNArgs(1),
	GroupID: "sim",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSimCfg(cfgPath)
		if err != nil {
			return err
		}
		if v, _ := cmd.Flags().GetInt("rounds"); v != 0 {
			cfg.InitialRoundCap = v
		}
		if v, _ := cmd.Flags().GetInt("post-rounds"); v != 0 {
			cfg.PostUpdateRoundCap = v
		}
		if ok, _ := cmd.Flags().GetBool("trace-all"); ok {
			cfg.TraceAll = true
		}
		specs, _ := cmd.Flags().GetStringArray("trace")
		for _, spec := range specs {
			rule, err := parseTraceRule(spec)
			if err != nil {
				return err
			}
			cfg.Trace = append(cfg.Trace, rule)
		}
		if p, _ := cmd.Flags().GetString("log"); p != "" {
			cfg.LogPath = p
		}
		if err := state.SimConfigValidator(&cfg); err != nil {
			return err
		}

		level := slog.LevelInfo
		if ok, _ := cmd.Flags().GetBool("verbose"); ok {
			level = slog.LevelDebug
		}
		logger, err := buildLogger(cfg, level)
		if err != nil {
			return err
		}

		in, err := openScenario(args)
		if err != nil {
			return err
		}
		defer in.Close()
		sc, err := state.ParseScenario(in)
		if err != nil {
			return err
		}

		runId := uuid.New()
		logger.Debug("starting simulation", "run", runId, "nodes", len(sc.Nodes), "links", len(sc.Links), "updates", len(sc.Updates))

		env := &state.Env{Log: logger, Cfg: cfg}
		eng := core.NewEngine(env, sc)

		var finishTrace func()
		if cfg.TraceAll || len(cfg.Trace) > 0 {
			tr := core.NewRouteTrace()
			events := make(chan interface{}, 256)
			tr.Register(events)
			done := make(chan struct{})
			go func() {
				defer close(done)
				for ev := range events {
					te := ev.(core.TraceEvent)
					if te == (core.TraceEvent{}) {
						return
					}
					logger.Info(te.String())
				}
			}()
			finishTrace = func() {
				// the zero sentinel marks the end of the stream; delivery is
				// async, so wait for the subscriber to drain up to it
				tr.Submit(core.TraceEvent{})
				<-done
				tr.Unregister(events)
				_ = tr.Close()
			}
			eng.AttachTrace(tr)
		}

		runErr := eng.Run(os.Stdout)
		if finishTrace != nil {
			finishTrace()
		}
		return runErr
	},
}

func buildLogger(cfg state.SimCfg, level slog.Level) (*slog.Logger, error) {
	handlers := make([]slog.Handler, 0)
	handlers = append(handlers,
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:        level,
			AddSource:    false,
			CustomPrefix: "rayon",
			ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
				if attr.Key == "time" {
					return slog.Attr{}
				}
				return attr
			},
		}))
	if cfg.LogPath != "" {
		f, err := os.OpenFile(cfg.LogPath, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	}
	return slog.New(slogmulti.Fanout(handlers...)), nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("verbose", "v", false, "Verbose output")
	runCmd.Flags().Int("rounds", 0, "Cap on initial convergence rounds (default 2)")
	runCmd.Flags().Int("post-rounds", 0, "Cap on post-update convergence rounds (default 2)")
	runCmd.Flags().StringArrayP("trace", "t", nil, "Trace a node:dest:via[:minround] triple (repeatable)")
	runCmd.Flags().Bool("trace-all", false, "Trace every distance table change")
	runCmd.Flags().String("log", "", "Also write logs to this file")
}
