package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Stage is a step in a dependency's install pipeline.
type Stage string

const (
	// StageDeclared indicates the dependency is known but no work has started.
	StageDeclared Stage = "declared"
	// StageCloning indicates the local clone is being created or reused.
	StageCloning Stage = "cloning"
	// StageSyncing indicates the default branch is being fast-forwarded.
	StageSyncing Stage = "syncing"
	// StageTagsListed indicates the version tags have been enumerated.
	StageTagsListed Stage = "tags-listed"
	// StageVersionResolved indicates the selector picked an exact tag.
	StageVersionResolved Stage = "version-resolved"
	// StageCheckedOut indicates the working tree is at the chosen tag.
	StageCheckedOut Stage = "checked-out"
	// StageMaterialized indicates the version slot and registry entry exist.
	StageMaterialized Stage = "materialized"
	// StageDone indicates the dependency finished successfully.
	StageDone Stage = "done"
	// StageFailed indicates the dependency's pipeline stopped with an error.
	StageFailed Stage = "failed"
)

// IsTerminal checks if a stage ends the pipeline (Done or Failed).
func (s Stage) IsTerminal() bool {
	return s == StageDone || s == StageFailed
}

// NormalizeStage converts a string to a Stage, defaulting to declared if unknown.
func NormalizeStage(s string) Stage {
	switch st := Stage(strings.ToLower(strings.TrimSpace(s))); st {
	case StageCloning, StageSyncing, StageTagsListed, StageVersionResolved,
		StageCheckedOut, StageMaterialized, StageDone, StageFailed:
		return st
	default:
		return StageDeclared
	}
}

// StageError records where a dependency's pipeline failed.
//
// Kind is one of the sentinel errors of this package and Err is the concrete
// cause. errors.Is matches both.
type StageError struct {
	Package string
	Stage   Stage
	Kind    error
	Err     error
}

// NewStageError builds a StageError, deriving the kind from err when it wraps
// a known sentinel.
func NewStageError(pkg string, stage Stage, err error) *StageError {
	return &StageError{
		Package: pkg,
		Stage:   stage,
		Kind:    Classify(err),
		Err:     err,
	}
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Package, e.Stage, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *StageError) Unwrap() []error {
	if e.Kind == nil {
		return []error{e.Err}
	}
	return []error{e.Kind, e.Err}
}

// stageKinds lists the sentinels a stage failure can be classified as.
var stageKinds = []error{
	ErrSourceUnavailable,
	ErrSync,
	ErrTagList,
	ErrNoVersions,
	ErrMalformedRange,
	ErrCheckout,
	ErrRegistryKeyMissing,
	ErrMaterialize,
}

// Classify returns the first known stage sentinel err wraps, or nil.
func Classify(err error) error {
	for _, kind := range stageKinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
