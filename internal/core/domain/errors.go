package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingConfig indicates required configuration is absent.
	// This is a fatal precondition: the sync must not start.
	ErrMissingConfig = errors.New("missing required configuration")

	// ErrTranslatorUnavailable indicates no translation backend is
	// configured. The pipeline degrades to source-language-only output.
	ErrTranslatorUnavailable = errors.New("translator unavailable")

	// ErrTranslationUpToDate indicates the cached translation is still
	// valid for the current source content, so no generation is needed.
	ErrTranslationUpToDate = errors.New("translation up to date")

	// ErrUploadFailed indicates an object storage upload exhausted its
	// retries. Only the affected image is dropped, never the batch.
	ErrUploadFailed = errors.New("upload failed")

	// ErrRateLimited indicates the remote API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
