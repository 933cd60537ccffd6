// internal/game/types.go
//
// Core type definitions for the color-match game engine.
// Defines:
//   - Status: room lifecycle states (waiting/ready/playing/finished).
//   - Challenge: a randomized target (color combination + pattern).
//   - Player: per-player state inside a room.
//   - Room: a two-player game session addressed by a 4-digit code.

package game

import (
	"sync"
	"time"
)

// Status is the lifecycle state of a room.
// Transitions only move forward:
//
//	waiting → ready → playing → finished
//
//   - "waiting":  one player, waiting for an opponent.
//   - "ready":    both players present, game not started.
//   - "playing":  rounds in progress.
//   - "finished": winner determined (terminal).
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusReady    Status = "ready"
	StatusPlaying  Status = "playing"
	StatusFinished Status = "finished"
)

// Battle modes.
const (
	BattleRace = "race" // shared challenge, first correct answer takes the round
	BattleSolo = "solo" // independent challenges, first to clear all rounds wins
)

// Limits applied at room creation.
const (
	MinRounds  = 3
	MaxRounds  = 30
	MaxPlayers = 2

	// TTL is how long a room may live after creation before the
	// registry sweep discards it, regardless of in-progress state.
	TTL = 30 * time.Minute
)

// Challenge is a randomized target the player has to reproduce.
// Immutable once created.
type Challenge struct {
	ColorKey  string    // canonical sorted "+"-joined color names
	Color     string    // display value resolved from ColorKey
	Pattern   string    // one of colors.Patterns()
	StartTime time.Time // generation instant; answer time is measured from here
}

// AnswerRecord captures a player's most recent answer.
type AnswerRecord struct {
	Correct  bool  `json:"correct"`
	TimeUsed int64 `json:"timeUsed"` // milliseconds
}

// Player is one participant in a room.
// Round and Challenge are only used in solo mode; in race mode the
// room-level counterparts are authoritative.
type Player struct {
	ID         string
	Name       string
	Score      int
	Ready      bool
	Answered   bool
	Round      int
	Challenge  *Challenge
	LastAnswer *AnswerRecord
}

// Room is a single game session.
//
// All mutating operations (Join, Start, Answer) and the registry's expiry
// check take mu, so every read-modify-write on a room is atomic relative
// to concurrent requests and the background sweep.
type Room struct {
	Code        string
	Mode        string // difficulty: easy/medium/hard
	BattleMode  string
	TotalRounds int
	CreatedAt   time.Time
	Players     []*Player // join order; 1 (waiting) or 2 thereafter
	Status      Status
	Round       int        // shared counter, race mode only
	Challenge   *Challenge // shared target, race mode only
	Winner      string

	mu sync.Mutex
}
