package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"texdist/internal/publish"
)

var squashCmd = &cobra.Command{
	Use:   "squash",
	Short: "3. Squash all comments",
	Long: `Remove all comments from TeX files in the distribution folder. Escaped
percent signs and verbatim environments are left alone.`,
	Args: cobra.NoArgs,
	RunE: runSquash,
}

func runSquash(cmd *cobra.Command, args []string) error {
	target, err := resolvePaperTarget(cmd, args)
	if err != nil {
		return err
	}
	stats, err := publish.Squash(publish.DistDir(target.Paper))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %d comments from %d tex files\n", stats.Removed, stats.Files)
	return nil
}
