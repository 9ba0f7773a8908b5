package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"texdist/internal/pubcache"
	"texdist/internal/publish"
	"texdist/internal/ui"
)

var runCmd = &cobra.Command{
	Use:   "run [paper]",
	Short: "Run the whole publish pipeline",
	Long: `Run all steps in order: initialize dist/, collect every included file,
strip comments, compile both the original and the distribution, and verify
that the two PDFs render identically.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExecution,
}

func init() {
	runCmd.Flags().Bool("clean", true, "delete a previously existing distribution folder")
	runCmd.Flags().String("ui", "auto", "progress display (auto|on|off)")
	runCmd.Flags().Bool("no-cache", false, "always recompile the original document")
}

func runExecution(cmd *cobra.Command, args []string) error {
	clean, err := cmd.Flags().GetBool("clean")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return err
	}
	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return err
	}

	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	target, err := resolvePaperTarget(cmd, args)
	if err != nil {
		return err
	}

	var cache *pubcache.Cache
	if !noCache {
		// A broken cache dir only costs the skip optimization.
		cache, _ = pubcache.Open("texdist")
	}

	req := &publish.Request{
		Paper:    target.Paper,
		Clean:    clean,
		Jobs:     jobs,
		AuxDir:   target.auxDir(),
		Compiler: target.compiler(),
		Renderer: target.renderer(),
		Cache:    cache,
	}

	var result publish.Result
	if shouldUseTUI(uiModeValue) {
		result, err = runWithUI(cmd.Context(), "publishing "+target.Paper, req)
	} else {
		req.Progress = ui.NewPlainReporter(cmd.OutOrStdout(), quiet)
		result, err = publish.Run(cmd.Context(), req)
	}

	if showTimings {
		printStageTimings(cmd.OutOrStdout(), result.Timings)
	}

	if err != nil {
		var verifyErr *publish.VerifyError
		if errors.As(err, &verifyErr) {
			dumpCompilerOutput(cmd.OutOrStdout(), result)
		}
		var compileErr *publish.CompileError
		if errors.As(err, &compileErr) {
			fmt.Fprint(cmd.OutOrStdout(), compileErr.Diagnostics())
		}
		return err
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "published %s (%d pages verified)\n", result.DistDir, result.Pages)
	}
	return nil
}

// dumpCompilerOutput surfaces the dist compile log when verification fails,
// since the cause usually hides there.
func dumpCompilerOutput(out io.Writer, result publish.Result) {
	if stdout := strings.TrimSpace(result.DistCompile.Stdout); stdout != "" {
		fmt.Fprintf(out, "compiler stdout:\n%s\n", stdout)
	}
	if stderr := strings.TrimSpace(result.DistCompile.Stderr); stderr != "" {
		fmt.Fprintf(out, "compiler stderr:\n%s\n", stderr)
	}
}
