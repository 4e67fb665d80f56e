package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff   Level = iota // no tracing
	LevelError              // ring buffer only, dumped on hard failures
	LevelRun                // run boundaries
	LevelPatch              // per-patch spans
	LevelStep               // locate/apply steps
	LevelDebug              // everything including anchor candidates
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelRun:
		return "run"
	case LevelPatch:
		return "patch"
	case LevelStep:
		return "step"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "":
		return LevelOff, nil
	case "error":
		return LevelError, nil
	case "run":
		return LevelRun, nil
	case "patch":
		return LevelPatch, nil
	case "step":
		return LevelStep, nil
	case "debug":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|run|patch|step|debug)", s)
	}
}

// ShouldEmit returns true if the given scope should emit at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelOff:
		return false
	case LevelError:
		return scope <= ScopePatch // только в кольцо, для дампа
	case LevelRun:
		return scope <= ScopeRun
	case LevelPatch:
		return scope <= ScopePatch
	case LevelStep:
		return scope <= ScopeStep
	case LevelDebug:
		return true
	}
	return false
}
