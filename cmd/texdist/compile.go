package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"texdist/internal/publish"
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "4. Compile the distribution",
	Long: `Run the compiler on the distribution copy of the main document, after
comments have been stripped in the previous step, and report any files it
still considers missing.`,
	Args: cobra.NoArgs,
	RunE: runCompile,
}

func runCompile(cmd *cobra.Command, args []string) error {
	target, err := resolvePaperTarget(cmd, args)
	if err != nil {
		return err
	}

	res, err := target.compiler().Compile(
		cmd.Context(),
		publish.DistDir(target.Paper),
		filepath.Base(target.Paper),
	)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if stdout := strings.TrimSpace(res.Stdout); stdout != "" {
		fmt.Fprintf(out, "compiler stdout:\n%s\n", stdout)
	}
	if stderr := strings.TrimSpace(res.Stderr); stderr != "" {
		fmt.Fprintf(out, "compiler stderr:\n%s\n", stderr)
	}

	if len(res.Missing) > 0 {
		fmt.Fprintln(out, "missing the following files:")
		for _, name := range res.Missing {
			fmt.Fprintf(out, " - %s\n", name)
		}
		return fmt.Errorf("%d files missing", len(res.Missing))
	}
	fmt.Fprintln(out, "no missing files")
	return nil
}
