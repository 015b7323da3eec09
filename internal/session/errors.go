package session

import "errors"

// Session errors.
var (
	// ErrTabNotFound indicates the tab is not in the session.
	ErrTabNotFound = errors.New("tab not found")

	// ErrCancelled indicates the user declined a confirmation. Callers
	// treat it as "nothing happened", not as a failure.
	ErrCancelled = errors.New("cancelled by user")

	// ErrNoPath indicates Save was called on an untitled tab; the caller
	// should prompt for a destination and use SaveAs.
	ErrNoPath = errors.New("tab has no file path")
)
