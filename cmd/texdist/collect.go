package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"texdist/internal/publish"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "2. Collect all included files",
	Long: `Compile the distribution, detect compiler complaints about missing files,
copy those files over from the source tree, and retry until the compiler is
satisfied. Files the compiler never asks for never reach dist/, so a data
folder full of analysis code stays out of the distribution.`,
	Args: cobra.NoArgs,
	RunE: runCollect,
}

func runCollect(cmd *cobra.Command, args []string) error {
	target, err := resolvePaperTarget(cmd, args)
	if err != nil {
		return err
	}
	if err := publish.Init(target.Paper); err != nil {
		return err
	}

	stats, err := publish.Collect(cmd.Context(), target.Paper, target.compiler())
	if err != nil {
		return err
	}
	for _, path := range stats.Copied {
		fmt.Fprintf(cmd.OutOrStdout(), "copied %s\n", path)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "compiler finished after %d iterations\n", stats.Rounds)
	return nil
}
