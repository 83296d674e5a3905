package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// appName is the single source of truth for the application name. All
// derived identifiers (env vars, config paths) are computed from it.
const appName = "genexpr"

var envFixtureDir = "GENEXPR_FIXTURE_DIR"

// resolveFixtureDir returns the directory genexpr looks in for *.yaml
// fixture files when a command is given a bare name instead of a path.
// Priority: $GENEXPR_FIXTURE_DIR > $XDG_CONFIG_HOME/genexpr/fixtures >
// ~/.config/genexpr/fixtures.
func resolveFixtureDir() (string, error) {
	if v := os.Getenv(envFixtureDir); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, appName, "fixtures"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName, "fixtures"), nil
}

// resolveFixturePath turns a bare fixture name or a path into a concrete
// file path: absolute paths and paths containing a separator are used
// as-is; a bare name ending in .yaml/.yml is looked up under the fixture
// directory unchanged, and any other bare name gets ".yaml" appended there.
func resolveFixturePath(nameOrPath string) (string, error) {
	if filepath.IsAbs(nameOrPath) || filepath.Dir(nameOrPath) != "." {
		return nameOrPath, nil
	}
	ext := filepath.Ext(nameOrPath)
	if ext == ".yaml" || ext == ".yml" {
		dir, err := resolveFixtureDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, nameOrPath), nil
	}
	dir, err := resolveFixtureDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, nameOrPath+".yaml"), nil
}

// listFixtures returns the sorted base names (without extension) of every
// *.yaml/*.yml fixture in the fixture directory. A missing directory is
// not an error: it just means there are no fixtures yet.
func listFixtures() ([]string, error) {
	dir, err := resolveFixtureDir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading fixture directory %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name()[:len(e.Name())-len(ext)])
		}
	}
	return names, nil
}
