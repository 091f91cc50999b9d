package config

import "errors"

// Sentinel errors for configuration validation.
var (
	ErrInvalidMaxConcurrency = errors.New("invalid max concurrency: must be at least 1")
	ErrInvalidNodeTimeout    = errors.New("invalid default node timeout: must be non-negative")
	ErrMissingPolicy         = errors.New("invalid scheduling strategy: must not be nil")
)
