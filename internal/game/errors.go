// internal/game/errors.go
//
// Error taxonomy surfaced to callers. All errors are request-local and
// non-fatal; the HTTP layer maps them to 4xx statuses with errors.Is.

package game

import "errors"

var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomFull          = errors.New("room is full")
	ErrNotEnoughPlayers  = errors.New("waiting for opponent to join")
	ErrGameNotPlaying    = errors.New("game is not in progress")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrAlreadyAnswered   = errors.New("already answered this round")
	ErrUnknownBattleMode = errors.New("unknown battle mode")
)
