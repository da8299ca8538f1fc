package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/animator"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of animator",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("animator version %s\n", strings.TrimSpace(animator.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
