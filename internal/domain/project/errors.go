package project

import "errors"

var (
	// ErrProjectNotFound indicates no copy exists for the viewer.
	ErrProjectNotFound = errors.New("project not found")
	// ErrNotOwner indicates a non-owner attempted an owner-only operation.
	ErrNotOwner = errors.New("only the project owner may modify the project")
	// ErrProjectInactive indicates the project is inactive for the caller.
	ErrProjectInactive = errors.New("project is not active")
	// ErrPublicTenantMisuse indicates the public tenant was added to a
	// project that is not flagged public.
	ErrPublicTenantMisuse = errors.New("public tenant requires the project to be flagged public")
	// ErrInvalidInput indicates invalid project input.
	ErrInvalidInput = errors.New("invalid project input")
	// ErrCopyMissing indicates a referenced copy document is absent, which
	// points at fan-out or registry corruption.
	ErrCopyMissing = errors.New("project copy referenced but missing")
)
