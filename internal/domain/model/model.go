// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Skill identifies which scorer handles an item. The set is closed;
// dispatch on it must be exhaustive so a new skill is a compile-visible
// extension point rather than a silent fallthrough.
type Skill string

// Supported skills.
const (
	SkillSpeaking Skill = "speaking"
	SkillWriting  Skill = "writing"
)

// ParseSkill normalizes and validates a skill tag.
func ParseSkill(s string) (Skill, error) {
	switch Skill(strings.ToLower(strings.TrimSpace(s))) {
	case SkillSpeaking:
		return SkillSpeaking, nil
	case SkillWriting:
		return SkillWriting, nil
	default:
		return "", fmt.Errorf("unknown skill: %q", s)
	}
}

// Stage identifies which item pool/difficulty band an item was drawn from.
type Stage string

// Multistage-test stages.
const (
	StageCore  Stage = "core"
	StageUpper Stage = "upper"
	StageLower Stage = "lower"
)

// Level is a CEFR proficiency band.
type Level string

// CEFR bands, ordered lowest to highest.
const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
	LevelC2 Level = "C2"
)

// Levels lists the CEFR bands in ascending order.
var Levels = []Level{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2}

// TaskType tags a writing prompt with its rhetorical task.
type TaskType string

// Writing task types.
const (
	TaskOpinion     TaskType = "opinion"
	TaskDescription TaskType = "description"
	TaskComparison  TaskType = "comparison"
	TaskArgument    TaskType = "argument"
)

// SpeakingAssets carries the speaking-specific item payload.
type SpeakingAssets struct {
	Prompt           string   `json:"prompt"`
	Keywords         []string `json:"keywords,omitempty"`
	StructureHint    string   `json:"structure_hint,omitempty"`
	PrepSeconds      int      `json:"prep_seconds"`
	RecordSeconds    int      `json:"record_seconds"`
	MaxAnswerSeconds int      `json:"max_answer_seconds"`
}

// WritingAssets carries the writing-specific item payload.
type WritingAssets struct {
	Prompt   string   `json:"prompt"`
	MinWords int      `json:"min_words"`
	MaxWords int      `json:"max_words"`
	TaskType TaskType `json:"task_type"`
}

// Item is a test item presented to a candidate. It is created by the
// test orchestrator and read-only to the engine.
type Item struct {
	Skill       Skill           `json:"skill"`
	Stage       Stage           `json:"stage"`
	TargetLevel Level           `json:"target_level"`
	Speaking    *SpeakingAssets `json:"speaking,omitempty"`
	Writing     *WritingAssets  `json:"writing,omitempty"`
}

// Response is a candidate's answer to one item, consumed once and never
// mutated. Transcript/Confidence apply to speaking, Text to writing.
// AudioRef is carried for audit only; the engine never reads it.
type Response struct {
	Transcript string  `json:"transcript,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Text       string  `json:"text,omitempty"`
	AudioRef   string  `json:"audio_ref,omitempty"`
}

// Result is the quickscore output for one scoring call.
// P is always clamped to [0,1]; Features keeps every sub-score for audit
// and is never read back as a control channel.
type Result struct {
	P           float64            `json:"p"`
	Route       Route              `json:"route"`
	Features    map[string]float64 `json:"features"`
	ComputeTime time.Duration      `json:"compute_time"`
}

// Route is the ternary stage-transition signal consumed by the adaptive
// test orchestrator.
type Route string

// Routing directions.
const (
	RouteUp   Route = "up"
	RouteDown Route = "down"
	RouteStay Route = "stay"
)
