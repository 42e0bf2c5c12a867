// Package release implements the publish pipeline: version computation from
// conventional-commit history, packaging, artifact self-test, and publication
// to a release registry. Every stage is fail-fast; nothing is published
// unless every prior stage succeeded.
package release

import "errors"

// Sentinel errors for the release package, one per failure class.
var (
	// ErrPreconditionFailed indicates shallow history or a missing publish credential.
	ErrPreconditionFailed = errors.New("pipeline precondition failed")

	// ErrBuildFailed indicates the source build stage failed.
	ErrBuildFailed = errors.New("build failed")

	// ErrTestFailed indicates the source test stage failed.
	ErrTestFailed = errors.New("tests failed")

	// ErrSelfTestFailed indicates the packaged artifact could not generate
	// and build a working scaffold. The artifact is defective and is never published.
	ErrSelfTestFailed = errors.New("artifact self-test failed")

	// ErrDuplicateVersion indicates the computed version is already published.
	// First successful publish of a version wins; later attempts fail here.
	ErrDuplicateVersion = errors.New("version already published")

	// ErrPublishFailed indicates a registry or network error during publish.
	ErrPublishFailed = errors.New("publish failed")
)
