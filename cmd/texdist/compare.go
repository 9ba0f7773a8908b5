package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"texdist/internal/publish"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "5. Compare generated PDFs",
	Long: `Render both the original PDF and the distribution PDF into page images and
compare them pixel for pixel. This ensures the distribution reproduces the
paper exactly.`,
	Args: cobra.NoArgs,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().String("src", "", "override source pdf")
	compareCmd.Flags().String("dist", "", "override dist pdf")
	compareCmd.Flags().String("diff-dir", "", "override page image directory")
	compareCmd.Flags().Bool("force", false, "delete an existing --diff-dir without asking")
}

func runCompare(cmd *cobra.Command, args []string) error {
	srcOverride, err := cmd.Flags().GetString("src")
	if err != nil {
		return err
	}
	distOverride, err := cmd.Flags().GetString("dist")
	if err != nil {
		return err
	}
	diffOverride, err := cmd.Flags().GetString("diff-dir")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}
	jobs, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil {
		return err
	}

	target, err := resolvePaperTarget(cmd, args)
	if err != nil {
		return err
	}

	srcPDF := publish.PDFPath(target.Paper)
	if srcOverride != "" {
		srcPDF = srcOverride
	}
	distPDF := publish.PDFPath(publish.DistMain(target.Paper))
	if distOverride != "" {
		distPDF = distOverride
	}
	diffDir := publish.DiffDir(target.Paper, target.auxDir())
	if diffOverride != "" {
		if err := guardDiffDirOverride(diffOverride, diffDir, force); err != nil {
			return err
		}
		diffDir = diffOverride
	}

	cmp, err := publish.Compare(cmd.Context(), srcPDF, distPDF, diffDir, target.renderer(), jobs)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "no visual differences across %d pages\n", cmp.Pages)
	return nil
}

// guardDiffDirOverride refuses to wipe an existing directory the user pointed
// --diff-dir at, unless it is the default diff location or --force is given.
// Compare deletes the diff dir before rendering, so a typo here must not cost
// somebody their notes.
func guardDiffDirOverride(override, fallback string, force bool) error {
	if force {
		return nil
	}
	overrideAbs, err := filepath.Abs(override)
	if err != nil {
		return fmt.Errorf("failed to resolve %q: %w", override, err)
	}
	fallbackAbs, err := filepath.Abs(fallback)
	if err != nil {
		return fmt.Errorf("failed to resolve %q: %w", fallback, err)
	}
	if overrideAbs == fallbackAbs {
		return nil
	}
	if _, err := os.Stat(overrideAbs); err == nil {
		return fmt.Errorf("--diff-dir %q already exists and would be deleted; pass --force to allow that", override)
	}
	return nil
}
