package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const manifestName = "publish.toml"

type paperManifest struct {
	Path   string
	Root   string
	Config publishConfig
}

type publishConfig struct {
	Paper   paperConfig   `toml:"paper"`
	LaTeX   latexConfig   `toml:"latex"`
	Compare compareConfig `toml:"compare"`
}

type paperConfig struct {
	Main string `toml:"main"`
}

type latexConfig struct {
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
	AuxDir  string   `toml:"aux_dir"`
}

type compareConfig struct {
	Rasterizer string `toml:"rasterizer"`
	DPI        int    `toml:"dpi"`
}

func findPublishToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadPaperManifest(startDir string) (*paperManifest, bool, error) {
	manifestPath, ok, err := findPublishToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadPublishConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &paperManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadPublishConfig(path string) (publishConfig, error) {
	var cfg publishConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return publishConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return publishConfig{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}
