// Package pipeline holds the error taxonomy shared by every stage of the
// document → completion → filter pipeline. Handlers match these sentinels
// with errors.Is and translate them into user-visible status messages.
package pipeline

import "errors"

var (
	// ErrUnsupportedFormat means the submitted file is not a PDF. Raised
	// before any parsing is attempted.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrExtractionFailed means the PDF parser itself failed on the payload.
	ErrExtractionFailed = errors.New("text extraction failed")

	// ErrNoTextFound means the PDF parsed cleanly but contained zero
	// extractable characters, e.g. a scanned image. Callers should suggest
	// OCR instead of reporting a hard failure.
	ErrNoTextFound = errors.New("no extractable text found")

	// ErrCredentialMissing means no API key is configured. A configuration
	// error requiring operator action; never auto-retried.
	ErrCredentialMissing = errors.New("completion API credential missing")

	// ErrCompletionFailed means the remote completion call failed.
	ErrCompletionFailed = errors.New("completion request failed")

	// ErrMalformedResponse means the completion text did not contain valid
	// JSON. Non-fatal: the parser degrades to a raw-text wrapper.
	ErrMalformedResponse = errors.New("malformed completion response")

	// ErrPersistenceFailed means a local export could not be written.
	ErrPersistenceFailed = errors.New("failed to persist output")
)
