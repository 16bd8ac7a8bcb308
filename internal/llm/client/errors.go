package client

import "errors"

var (
	// ErrMalformedResponse marks model output that is not valid JSON or does
	// not match the output schema.
	ErrMalformedResponse = errors.New("failed to process model response")

	// ErrMissingCredential is returned by the transport when no API key was
	// supplied. The wording matches the API's own invalid-key message so it is
	// classified the same way.
	ErrMissingCredential = errors.New("api key not valid: no gemini api key configured")
)
