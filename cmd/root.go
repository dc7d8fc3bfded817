package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var cfgPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rayon",
	Short: "Rayon Distance-Vector Simulation CLI",
	Long: `Rayon is a deterministic, round-based simulator for the classic Distance-Vector
routing protocol (Bellman-Ford, without poisoned reverse).
It reports every node's converging distance table and derived routing table at each
discrete step, including bounded re-convergence after a topology change.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddGroup(&cobra.Group{
		ID:    "sim",
		Title: "Simulation Commands",
	})
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "simulation config (yaml)")
}
