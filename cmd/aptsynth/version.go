package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jhump/annosynth/processor"
	"github.com/jhump/annosynth/snapshot"
)

// version can be overridden at build time via -ldflags.
var version = "0.1.0-dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version, snapshot schema and available generators",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		bold := color.New(color.Bold)
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "aptsynth %s\n", bold.Sprint(version))
		fmt.Fprintf(w, "snapshot schema %s\n", snapshot.SchemaConstraint)
		for _, r := range processor.AllRegisteredProcessors() {
			fmt.Fprintf(w, "generator %s\n", r.Name)
		}
	},
}
