package main

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/jhump/annosynth/internal/config"
	"github.com/jhump/annosynth/processor"
	"github.com/jhump/annosynth/snapshot"
	"github.com/jhump/annosynth/validation"
)

var runCmd = &cobra.Command{
	Use:   "run SNAPSHOT",
	Short: "Run the configured generators over a snapshot",
	Long: `Run decodes a snapshot of a host compilation (.yaml, .json or .msgpack),
runs one pass of the configured generators over it and writes every artifact
into the output directory, replacing files of the same name.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerators,
}

func init() {
	runCmd.Flags().String("output-dir", "", "directory for generated files (default \"generated\")")
	runCmd.Flags().String("log-level", "", "log level: debug, info, warn or error (default \"info\")")
	runCmd.Flags().Int("parallelism", 0, "maximum number of generators to run at once (0 means no limit)")
	runCmd.Flags().StringSlice("generators", nil, "generators to run, in order (default all)")
	runCmd.Flags().String("bare-marker", "", "what to do after a validation marker without arguments: continue or abort")
}

func runGenerators(cmd *cobra.Command, args []string) error {
	cfg, used, err := config.Load(config.LoadOptions{File: configFile, Flags: cmd.Flags()})
	if err != nil {
		return err
	}
	level, _ := cfg.Level()
	logger := newLogger(cmd.ErrOrStderr(), level)
	if used != "" {
		logger.Debug("loaded config", "path", used)
	}

	procs, err := registrations(cfg)
	if err != nil {
		return err
	}

	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	tree, model, err := snapshot.DecodeFile(osfs.New(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		return err
	}
	logger.Debug("decoded snapshot", "path", path, "files", len(tree.Files))

	out := osfs.New(cfg.OutputDir)
	if err := out.MkdirAll(".", 0o755); err != nil {
		return fmt.Errorf("could not create output directory %s: %w", cfg.OutputDir, err)
	}
	sink := processor.NewFilesystemSink(out)
	pc := processor.Config{
		Processors:  procs,
		Sink:        sink,
		Logger:      logger,
		Parallelism: cfg.Parallelism,
	}
	err = pc.Execute(tree, model)
	for _, name := range sink.Written() {
		logger.Info("wrote", "file", filepath.Join(cfg.OutputDir, name))
	}
	return err
}

// registrations looks up the configured generators. The registered
// validation processor always continues after bare markers, so it is
// replaced by one that uses the configured policy.
func registrations(cfg *config.Config) ([]processor.Registration, error) {
	procs, err := processor.LookupProcessors(cfg.Generators...)
	if err != nil {
		return nil, err
	}
	policy, err := cfg.BareMarkerPolicy()
	if err != nil {
		return nil, err
	}
	for i := range procs {
		if procs[i].Name == validation.Name {
			procs[i].Processor = validation.NewProcessor(policy)
		}
	}
	return procs, nil
}
