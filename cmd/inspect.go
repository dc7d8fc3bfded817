package cmd

import (
	"fmt"

	"github.com/encodeous/rayon/state"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:     "inspect [scenario]",
	Aliases: []string{"i"},
	Short:   "Parse a scenario and print it as yaml",
	Long: `Parses the scenario file (or stdin when omitted) and prints the declared
nodes, links and topology updates as yaml. Malformed lines are skipped, so this is
the quickest way to see what the simulator will actually run.`,
	Args:    cobra.MaximumNArgs(1),
	GroupID: "sim",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := openScenario(args)
		if err != nil {
			return err
		}
		defer in.Close()
		sc, err := state.ParseScenario(in)
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(sc)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
