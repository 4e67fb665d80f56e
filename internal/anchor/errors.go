package anchor

import (
	"errors"
	"fmt"
)

var (
	// ErrAnchorNotFound reports that the primary anchor is absent.
	ErrAnchorNotFound = errors.New("anchor not found")
	// ErrPatternMismatch reports that the anchor was found but a secondary
	// or nested pattern in its scope was not.
	ErrPatternMismatch = errors.New("pattern mismatch")
)

// MissKind classifies a soft locate failure.
type MissKind uint8

const (
	MissAnchor MissKind = iota + 1
	MissPattern
)

func (k MissKind) String() string {
	switch k {
	case MissAnchor:
		return "anchor not found"
	case MissPattern:
		return "pattern mismatch"
	default:
		return "unknown miss"
	}
}

// MissError is the soft error every Locator returns on failure.
type MissError struct {
	Kind MissKind
	Step string
}

func (e *MissError) Error() string {
	if e.Step == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Step
}

// Is lets errors.Is match the kind sentinels.
func (e *MissError) Is(target error) bool {
	switch target {
	case ErrAnchorNotFound:
		return e.Kind == MissAnchor
	case ErrPatternMismatch:
		return e.Kind == MissPattern
	}
	return false
}

// IsMiss reports whether err is a soft locate failure.
func IsMiss(err error) bool {
	var miss *MissError
	return errors.As(err, &miss)
}

func missAnchor(format string, args ...any) error {
	return &MissError{Kind: MissAnchor, Step: fmt.Sprintf(format, args...)}
}

func missPattern(format string, args ...any) error {
	return &MissError{Kind: MissPattern, Step: fmt.Sprintf(format, args...)}
}
