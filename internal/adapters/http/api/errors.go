package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrServe         = errors.New("serve failed")
	ErrBadRequest    = errors.New("bad request")
	ErrNotFound      = errors.New("not found")
	ErrBatchTooLarge = errors.New("batch too large")
)
