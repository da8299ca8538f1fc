package main

import (
	"fmt"
	"os"

	"github.com/aretw0/animator/pkg/scene"
	"github.com/aretw0/animator/pkg/settings"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <scene>",
	Short: "Check a scene file for consistency",
	Long:  `Decodes every node, resolves its settings as the system would and reports duplicate ids, unknown presets, managers, states and invalid durations.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(args[0]); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			for _, e := range settings.ValidationErrors(err) {
				fmt.Printf("  - %v\n", e)
			}
			os.Exit(1)
		}
		fmt.Println("Scene is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) error {
	sc, err := scene.Load(path)
	if err != nil {
		return err
	}
	return scene.Validate(sc)
}
