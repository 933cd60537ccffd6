// internal/game/room.go
//
// Room lifecycle: creation, joining, starting. The battle engine
// (engine.go) drives the playing → finished transition.

package game

import (
	"time"

	"github.com/google/uuid"
)

// Defaults applied when a create/join request omits a field.
const (
	DefaultMode    = "medium"
	DefaultRounds  = 10
	defaultCreator = "Player 1"
	defaultJoiner  = "Player 2"
)

// NewRoom constructs a room in the waiting state with its creating player.
// TotalRounds is clamped to [MinRounds, MaxRounds]; a zero request takes
// the default before clamping. The battle mode is not validated here —
// unknown modes are rejected when an answer is submitted.
func NewRoom(code, playerName, mode string, totalRounds int, battleMode string) *Room {
	if playerName == "" {
		playerName = defaultCreator
	}
	if mode == "" {
		mode = DefaultMode
	}
	if battleMode == "" {
		battleMode = BattleRace
	}
	if totalRounds == 0 {
		totalRounds = DefaultRounds
	}
	return &Room{
		Code:        code,
		Mode:        mode,
		BattleMode:  battleMode,
		TotalRounds: clampRounds(totalRounds),
		CreatedAt:   time.Now(),
		Players:     []*Player{newPlayer(playerName)},
		Status:      StatusWaiting,
	}
}

func clampRounds(n int) int {
	if n < MinRounds {
		return MinRounds
	}
	if n > MaxRounds {
		return MaxRounds
	}
	return n
}

func newPlayer(name string) *Player {
	return &Player{ID: uuid.NewString(), Name: name}
}

// Join appends the second player and promotes the room to ready.
// Returns the new player and its index in join order.
// Fails with ErrRoomFull without mutating the room if two players
// are already present.
func (r *Room) Join(playerName string) (*Player, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.Players) >= MaxPlayers {
		return nil, 0, ErrRoomFull
	}
	if playerName == "" {
		playerName = defaultJoiner
	}
	p := newPlayer(playerName)
	r.Players = append(r.Players, p)
	r.Status = StatusReady
	return p, len(r.Players) - 1, nil
}

// StartResult reports the challenge(s) handed out when a game starts.
// Challenges is populated in solo mode only, indexed by join order.
type StartResult struct {
	BattleMode string
	Challenge  *ChallengeView
	Challenges []*ChallengeView
}

// Start moves the room to playing and deals the first round.
// Race mode: one shared challenge, all answer flags cleared.
// Solo mode: additionally one independent challenge and round counter
// per player.
func (r *Room) Start() (*StartResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.Players) < MaxPlayers {
		return nil, ErrNotEnoughPlayers
	}

	r.Status = StatusPlaying
	r.Round = 1
	r.Challenge = NewChallenge(r.Mode)

	res := &StartResult{BattleMode: r.BattleMode, Challenge: viewChallenge(r.Challenge)}
	for _, p := range r.Players {
		p.Answered = false
		p.Ready = false
		if r.BattleMode == BattleSolo {
			p.Round = 1
			p.Challenge = NewChallenge(r.Mode)
			res.Challenges = append(res.Challenges, viewChallenge(p.Challenge))
		}
	}
	return res, nil
}

// Expired reports whether the room has outlived its TTL. Takes the room
// lock so the sweep cannot race an in-flight mutation.
func (r *Room) Expired(now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return now.Sub(r.CreatedAt) > TTL
}

// Creator returns the player who opened the room (index 0 in join order).
func (r *Room) Creator() *Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Players[0]
}

// PlayerCount returns the number of joined players.
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Players)
}

// CurrentStatus returns the room's lifecycle state.
func (r *Room) CurrentStatus() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Status
}

func (r *Room) findPlayer(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// winner returns a nullable view of the winner name.
func (r *Room) winner() *string {
	if r.Winner == "" {
		return nil
	}
	w := r.Winner
	return &w
}
