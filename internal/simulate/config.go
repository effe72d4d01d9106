// Package simulate drives a running quickscore service with synthetic
// candidate responses across skill and quality tiers, then verifies the
// scoring invariants hold on everything that came back.
package simulate

import "time"

// Config holds configuration for a simulation run.
type Config struct {
	BaseURL     string        // Base URL of the service
	NumAttempts int           // Number of attempts to generate
	Workers     int           // Number of concurrent workers
	Timeout     time.Duration // HTTP request timeout
	OutputFile  string        // Output file for generated attempts
	LogFile     string        // Log file for run output
	Verbose     bool          // Enable verbose logging
}

// Attempt is one synthetic scoring request.
type Attempt struct {
	AttemptID   string  `json:"attempt_id"`
	CandidateID string  `json:"candidate_id"`
	Skill       string  `json:"skill"`
	Quality     string  `json:"quality"`
	Item        Item    `json:"item"`
	Response    Payload `json:"response"`
}

// Item mirrors the request item schema.
type Item struct {
	Skill    string          `json:"skill"`
	Stage    string          `json:"stage"`
	Speaking *SpeakingAssets `json:"speaking,omitempty"`
	Writing  *WritingAssets  `json:"writing,omitempty"`
}

// SpeakingAssets mirrors the speaking item payload.
type SpeakingAssets struct {
	Prompt        string `json:"prompt"`
	RecordSeconds int    `json:"record_seconds"`
}

// WritingAssets mirrors the writing item payload.
type WritingAssets struct {
	Prompt   string `json:"prompt"`
	MinWords int    `json:"min_words"`
	MaxWords int    `json:"max_words"`
	TaskType string `json:"task_type"`
}

// Payload mirrors the response schema.
type Payload struct {
	Transcript string  `json:"transcript,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Text       string  `json:"text,omitempty"`
}

// ScoreResult mirrors the scoring response schema.
type ScoreResult struct {
	AttemptID      string             `json:"attempt_id"`
	P              float64            `json:"p"`
	Route          string             `json:"route"`
	Features       map[string]float64 `json:"features"`
	EstimatedLevel string             `json:"estimated_level"`
	Justification  string             `json:"justification"`
	ComputeMs      float64            `json:"compute_ms"`
	Cached         bool               `json:"cached"`
}

// Stats holds simulation statistics.
type Stats struct {
	AttemptsGenerated int
	AttemptsSubmitted int
	AttemptsScored    int
	AttemptsFailed    int
	RoutesUp          int
	RoutesDown        int
	RoutesStay        int
	Violations        int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
