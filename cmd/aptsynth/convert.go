package main

import (
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/spf13/cobra"

	"github.com/jhump/annosynth/snapshot"
)

var convertCmd = &cobra.Command{
	Use:   "convert IN OUT",
	Short: "Re-encode a snapshot in another format",
	Long: `Convert reads a snapshot and writes it in the format given by the
extension of OUT (.yaml, .json or .msgpack).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := snapshot.FormatFromPath(args[0])
		if err != nil {
			return err
		}
		to, err := snapshot.FormatFromPath(args[1])
		if err != nil {
			return err
		}
		inFS, inName, err := openDir(args[0])
		if err != nil {
			return err
		}
		data, err := util.ReadFile(inFS, inName)
		if err != nil {
			return err
		}
		converted, err := snapshot.Transcode(data, from, to)
		if err != nil {
			return err
		}
		outFS, outName, err := openDir(args[1])
		if err != nil {
			return err
		}
		return util.WriteFile(outFS, outName, converted, 0o644)
	},
}

// openDir returns a filesystem rooted at the directory of path, and the
// name of path within it.
func openDir(path string) (billy.Filesystem, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", err
	}
	return osfs.New(filepath.Dir(abs)), filepath.Base(abs), nil
}
