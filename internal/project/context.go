// Package project detects whether the working directory belongs to a
// recognized project and resolves the project-local store location.
package project

import (
	"fmt"
	"os"
	"path/filepath"
)

// gitMarker is the generic version-control marker that also identifies a
// project root.
const gitMarker = ".git"

// Context holds the detected project root and the derived local store path.
// A zero ProjectRoot means no project was found. Contexts are built once per
// invocation and never mutated.
type Context struct {
	// ProjectRoot is the nearest ancestor (including the start directory)
	// containing a store marker or a .git directory. Empty if none.
	ProjectRoot string

	// StorePath is ProjectRoot joined with the store marker name. Empty when
	// ProjectRoot is empty.
	StorePath string

	markerName string
}

// Detect walks upward from startDir looking for the store marker directory
// (markerName, e.g. ".ragged_memory") or a .git directory. The search stops
// at the filesystem root. Absence of a project is a normal outcome, not an
// error; only a failed path canonicalization is reported.
func Detect(startDir, markerName string) (*Context, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("determining working directory: %w", err)
		}
		startDir = wd
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", startDir, err)
	}

	ctx := &Context{markerName: markerName}

	current := abs
	for {
		// .git may be a plain file in worktrees, so an os.Stat hit of either
		// kind counts as a marker.
		if exists(filepath.Join(current, markerName)) || exists(filepath.Join(current, gitMarker)) {
			ctx.ProjectRoot = current
			ctx.StorePath = filepath.Join(current, markerName)
			return ctx, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return ctx, nil
		}
		current = parent
	}
}

// HasLocalStore reports whether the project's store directory already exists
// on disk.
func (c *Context) HasLocalStore() bool {
	if c.StorePath == "" {
		return false
	}
	return exists(c.StorePath)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
