package scope

import (
	"errors"
	"fmt"

	"github.com/raggedmemory/ram/internal/project"
)

// Scope is the visibility boundary that decides which physical store an
// operation targets.
type Scope string

const (
	// Local is the project-local scope, stored in .ragged_memory/ inside the
	// detected project root.
	Local Scope = "local"
	// Global is the user-global scope, stored in ~/.ragged_memory.
	Global Scope = "global"
)

// ErrConflictingFlags is returned when both --global and --local are given.
var ErrConflictingFlags = errors.New("cannot specify both --global and --local flags")

// Parse converts a string into a Scope. Anything other than "local" or
// "global" is an error.
func Parse(s string) (Scope, error) {
	switch Scope(s) {
	case Local:
		return Local, nil
	case Global:
		return Global, nil
	default:
		return "", fmt.Errorf("invalid scope %q: must be one of local, global", s)
	}
}

// Resolve determines the active scope from the explicit CLI flags and the
// detected project context. First match wins:
//
//  1. --global
//  2. --local
//  3. project detected -> local
//  4. no project -> global
//
// Conflicting flags fail before any other logic runs.
func Resolve(globalFlag, localFlag bool, ctx *project.Context) (Scope, error) {
	if globalFlag && localFlag {
		return "", ErrConflictingFlags
	}
	if globalFlag {
		return Global, nil
	}
	if localFlag {
		return Local, nil
	}
	if ctx != nil && ctx.ProjectRoot != "" {
		return Local, nil
	}
	return Global, nil
}
