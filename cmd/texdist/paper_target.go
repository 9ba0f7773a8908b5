package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"texdist/internal/latex"
	"texdist/internal/raster"
)

const defaultPaperName = "paper.tex"

// paperTarget bundles the resolved main document with the collaborator
// configuration that applies to it.
type paperTarget struct {
	Paper  string
	Config publishConfig
}

// resolvePaperTarget determines the main document from, in order, the
// positional argument, the --paper flag, the nearest manifest, and the
// default name in the working directory.
func resolvePaperTarget(cmd *cobra.Command, args []string) (paperTarget, error) {
	var target paperTarget

	flagValue, err := cmd.Root().PersistentFlags().GetString("paper")
	if err != nil {
		return target, err
	}

	manifest, found, err := loadPaperManifest(".")
	if err != nil {
		return target, err
	}
	if found {
		target.Config = manifest.Config
	}

	var paper string
	if len(args) > 0 {
		paper = args[0]
	}
	if paper == "" {
		paper = flagValue
	}
	if paper == "" {
		if found && manifest.Config.Paper.Main != "" {
			paper = filepath.Join(manifest.Root, manifest.Config.Paper.Main)
		} else {
			paper = defaultPaperName
		}
	}
	abs, err := filepath.Abs(paper)
	if err != nil {
		return target, fmt.Errorf("failed to resolve %q: %w", paper, err)
	}
	if info, err := os.Stat(abs); err != nil {
		return target, fmt.Errorf("main document %q not found: %w", abs, err)
	} else if info.IsDir() {
		return target, fmt.Errorf("%q is a directory, expected the main document", abs)
	}
	target.Paper = abs
	return target, nil
}

func (t paperTarget) compiler() *latex.Compiler {
	return &latex.Compiler{
		Command:   t.Config.LaTeX.Command,
		ExtraArgs: t.Config.LaTeX.Args,
		AuxDir:    t.Config.LaTeX.AuxDir,
	}
}

func (t paperTarget) renderer() *raster.Converter {
	return &raster.Converter{
		Command: t.Config.Compare.Rasterizer,
		DPI:     t.Config.Compare.DPI,
	}
}

func (t paperTarget) auxDir() string {
	if t.Config.LaTeX.AuxDir != "" {
		return t.Config.LaTeX.AuxDir
	}
	return latex.DefaultAuxDir
}
