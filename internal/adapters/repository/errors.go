package repository

import "errors"

// Sentinel errors returned by session stores.
var (
	// ErrSessionNotFound indicates no session exists for the candidate.
	ErrSessionNotFound = errors.New("session not found")

	// ErrEmptyCandidateID indicates a blank candidate ID was supplied.
	ErrEmptyCandidateID = errors.New("candidate id is empty")
)
