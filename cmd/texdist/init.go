package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"texdist/internal/publish"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "1. Initialize the distribution folder",
	Long: `Create the dist/ folder next to the main document and copy the main
document into it. The other files arrive during collect.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	target, err := resolvePaperTarget(cmd, args)
	if err != nil {
		return err
	}
	if err := publish.Init(target.Paper); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "initialized %s\n", publish.DistDir(target.Paper))
	return nil
}
