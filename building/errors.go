package building

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/singlezone/construction"
	"github.com/specialistvlad/singlezone/geometry"
	"github.com/specialistvlad/singlezone/material"
)

// Errors raised while validating options. The aliases let callers branch with
// errors.Is without importing the lower-level packages.
var (
	ErrInvalidThickness     = material.ErrInvalidThickness
	ErrEmptyConstruction    = construction.ErrEmptyConstruction
	ErrWindowExceedsSurface = geometry.ErrWindowExceedsSurface

	ErrNegativePower        = errors.New("building: power must be a non-negative finite number")
	ErrInvalidZoneVolume    = errors.New("building: zone volume must be positive")
	ErrNegativeInfiltration = errors.New("building: infiltration rate must be a non-negative finite number")
)

// ErrNoZone is reported, wrapped in a CollaboratorError, when a load is added
// to a model that has no zone yet.
var ErrNoZone = errors.New("building: model has no zone")

// CollaboratorError wraps a failure raised by the simulation model or the
// state registry. Op names the call that failed.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("building: %s: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

func collaboratorErr(op string, err error) error {
	return &CollaboratorError{Op: op, Err: err}
}
