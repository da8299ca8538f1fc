package main

import (
	"fmt"
	"os"

	"github.com/aretw0/animator/internal/presentation/graph"
	"github.com/aretw0/animator/pkg/scheduler"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <scene>",
	Short: "Export the scene tree visualization",
	Long: `Mounts the scene and outputs a Mermaid diagram (graph TD) of the animator tree.
With --at, the virtual clock is advanced first and nodes are styled by state.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		at, _ := cmd.Flags().GetFloat64("at")

		sc, err := loadScene(args[0])
		if err != nil {
			fmt.Printf("Error loading scene: %v\n", err)
			os.Exit(1)
		}

		clock := scheduler.NewManualClock()
		m, err := mount(sc, clock, newLogger(cmd), nil)
		if err != nil {
			fmt.Printf("Error mounting scene: %v\n", err)
			os.Exit(1)
		}

		withStates := cmd.Flags().Changed("at")
		if withStates {
			clock.AdvanceSeconds(at)
		}

		fmt.Print(graph.GenerateMermaid(m.System.Snapshot(), withStates))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Float64("at", 0, "Seconds of virtual time to advance before drawing states")
}
