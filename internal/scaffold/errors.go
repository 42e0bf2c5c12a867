// Package scaffold generates a layered multi-module Go solution skeleton
// from a single project name. It implements the core domain logic of the
// "layergen new" command: name validation, the fixed sub-project layout,
// and template-driven emission of manifests and placeholder sources.
package scaffold

import "errors"

// Sentinel errors for the scaffold package.
var (
	// ErrInvalidArgument indicates the project name is empty or not identifier-safe.
	ErrInvalidArgument = errors.New("invalid project name")

	// ErrAlreadyExists indicates the target scaffold path already exists and is not empty.
	ErrAlreadyExists = errors.New("target path already exists")

	// ErrGenerateFailed indicates a scaffold emission step failed.
	ErrGenerateFailed = errors.New("scaffold generation failed")
)
