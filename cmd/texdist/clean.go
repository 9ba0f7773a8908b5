package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"texdist/internal/publish"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [paper]",
	Short: "Remove the distribution folder",
	Long:  "Remove the dist directory and everything in it, including saved compiler logs and page images.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	target, err := resolvePaperTarget(cmd, args)
	if err != nil {
		return err
	}
	distDir := publish.DistDir(target.Paper)
	info, err := os.Stat(distDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(cmd.OutOrStdout(), "dist directory not found")
			return nil
		}
		return fmt.Errorf("failed to stat %q: %w", distDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%q is not a directory", distDir)
	}
	if err := os.RemoveAll(distDir); err != nil {
		return fmt.Errorf("failed to remove %q: %w", distDir, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", distDir)
	return nil
}
