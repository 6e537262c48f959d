// Command aptsynth runs the source generators over a snapshot of a host
// compilation and writes the generated C# files to an output directory.
//
//    aptsynth run model.yaml --output-dir Generated
//
// Settings are read from aptsynth.toml (in the working directory or in
// $XDG_CONFIG_HOME/aptsynth), from APTSYNTH_* environment variables and from
// flags.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	configFile string
	colorMode  string
)

var rootCmd = &cobra.Command{
	Use:           "aptsynth",
	Short:         "Generates C# sources from annotated declarations",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch colorMode {
		case "auto", "on", "off":
		default:
			return fmt.Errorf("unsupported color mode %q (must be auto, on or off)", colorMode)
		}
		color.NoColor = !useColor(os.Stderr)
		return nil
	},
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: search for aptsynth.toml)")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "colorize output (auto|on|off)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func useColor(f *os.File) bool {
	switch colorMode {
	case "on":
		return true
	case "off":
		return false
	default:
		return term.IsTerminal(int(f.Fd()))
	}
}

// printError prints every line of err, which may be several joined errors,
// with an error label.
func printError(w io.Writer, err error) {
	label := color.New(color.FgRed, color.Bold).Sprint("error:")
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(w, "%s %s\n", label, line)
	}
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: "aptsynth",
		Level:  level,
	})
}
