package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/aretw0/animator/internal/presentation/tui"
	"github.com/aretw0/animator/pkg/domain"
	"github.com/aretw0/animator/pkg/scheduler"
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <scene>",
	Short: "Print the transition timeline of a scene",
	Long: `Mounts the scene on a virtual clock and prints every transition until the
given time. --toggle-at flips the root (exit when visible, enter otherwise) at
each listed second.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		until, _ := cmd.Flags().GetFloat64("until")
		toggles, _ := cmd.Flags().GetFloat64Slice("toggle-at")
		format, _ := cmd.Flags().GetString("format")

		tl, err := runSimulate(cmd, args[0], until, toggles)
		if err != nil {
			fmt.Printf("Simulation failed: %v\n", err)
			os.Exit(1)
		}
		if err := printTimeline(os.Stdout, args[0], tl, format); err != nil {
			fmt.Printf("Error printing timeline: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().Float64("until", 3, "Seconds of virtual time to simulate")
	simulateCmd.Flags().Float64Slice("toggle-at", nil, "Seconds at which the root is toggled")
	simulateCmd.Flags().String("format", "markdown", "Output format: markdown or json")
}

func runSimulate(cmd *cobra.Command, path string, until float64, toggles []float64) (*tui.Timeline, error) {
	sc, err := loadScene(path)
	if err != nil {
		return nil, err
	}

	clock := scheduler.NewManualClock()
	tl := &tui.Timeline{}
	m, err := mount(sc, clock, newLogger(cmd), func(name string, e *domain.TransitionEvent) {
		tl.Add(tui.Entry{At: clock.Elapsed(), Node: name, From: e.From, To: e.To, Action: e.Action})
	})
	if err != nil {
		return nil, err
	}

	toggles = slices.Clone(toggles)
	slices.Sort(toggles)
	for _, at := range toggles {
		clock.AfterFunc(scheduler.Seconds(at), func() {
			root := m.Root()
			if root == nil {
				return
			}
			if root.State().Visible() {
				root.Send(domain.ActionExit)
			} else {
				root.Send(domain.ActionEnter)
			}
		})
	}

	clock.AdvanceSeconds(until)
	return tl, nil
}

func printTimeline(w io.Writer, title string, tl *tui.Timeline, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tl.Entries())
	case "markdown", "":
		return tui.Print(w, tl.Markdown(title))
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
