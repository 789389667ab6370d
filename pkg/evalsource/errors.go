package evalsource

import "errors"

var (
	// Configuration errors
	ErrInvalidConfig      = errors.New("invalid evaluation source configuration")
	ErrFailedToLoadConfig = errors.New("failed to load AWS config")

	// Transport errors
	ErrRequestFailed    = errors.New("evaluation request failed")
	ErrUnexpectedStatus = errors.New("unexpected evaluation service status")

	// Payload errors
	ErrMalformedResponse = errors.New("malformed evaluation response")
	ErrDocumentNotFound  = errors.New("evaluation document not found")
	ErrAccessDenied      = errors.New("access to evaluation document denied")
)
