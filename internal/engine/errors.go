package engine

import "errors"

// Sentinel errors returned by the engine.
var (
	// ErrUnsupportedSkill indicates the item names a skill no scorer
	// handles. This is a hard error, never a silent default score.
	ErrUnsupportedSkill = errors.New("unsupported skill")
)
