// Package assemble builds one backend-ready request from a snapshot of the
// session inputs: a localized prompt first, then every attachment encoded as
// a part in canonical order.
package assemble

import (
	"errors"
	"fmt"
	"strings"
)

// ModeKind selects the request flavor.
type ModeKind string

const (
	// ModeFull requests the complete six-part deposit analysis.
	ModeFull ModeKind = "full"
	// ModeModule focuses the analysis on a single named module.
	ModeModule ModeKind = "module"
	// ModeHeatmapScript requests a generated geochemical heatmap script.
	ModeHeatmapScript ModeKind = "heatmap_script"
)

// Mode is a validated submission mode.
type Mode struct {
	Kind        ModeKind
	ModuleLabel string
}

var (
	// ErrUnknownMode rejects mode strings outside the closed set.
	ErrUnknownMode = errors.New("unknown analysis mode")
	// ErrUnknownModule rejects module labels absent from the locale table.
	ErrUnknownModule = errors.New("unknown analysis module")
)

// ParseMode validates the raw mode and module label. The module label is
// required exactly when the kind is ModeModule; label membership in the
// locale table is checked at assembly time.
func ParseMode(rawKind, moduleLabel string) (Mode, error) {
	kind := ModeKind(strings.TrimSpace(rawKind))
	moduleLabel = strings.TrimSpace(moduleLabel)

	switch kind {
	case ModeFull, ModeHeatmapScript:
		if moduleLabel != "" {
			return Mode{}, fmt.Errorf("%w: module is only valid for mode %q", ErrUnknownMode, ModeModule)
		}
		return Mode{Kind: kind}, nil
	case ModeModule:
		if moduleLabel == "" {
			return Mode{}, fmt.Errorf("%w: module is required", ErrUnknownModule)
		}
		return Mode{Kind: kind, ModuleLabel: moduleLabel}, nil
	default:
		return Mode{}, fmt.Errorf("%w: %q", ErrUnknownMode, rawKind)
	}
}
