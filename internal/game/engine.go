// internal/game/engine.go
//
// Battle engine: answer validation, scoring, round progression, and winner
// determination for the two battle modes.
//
// Race mode:
//   - One shared challenge per round. A correct answer scores 10 plus a
//     speed bonus that decays to zero at 10 seconds, and advances the round
//     immediately without waiting for the opponent.
//   - When both players have answered incorrectly the round also advances,
//     so rounds never stall.
//
// Solo mode:
//   - Each player works through an independent challenge sequence at a flat
//     10 points per correct answer. The first player past the final round
//     finishes the room and wins outright.
//
// All entry points take the room lock; the check-mark-advance sequence is
// atomic relative to concurrent submissions.

package game

import "time"

const (
	basePoints  = 10
	bonusWindow = 10000 // ms; speed bonus reaches zero here
	msPerBonus  = 1000
)

// RaceResult is the race-mode answer payload.
type RaceResult struct {
	Correct     bool    `json:"correct"`
	TimeUsed    int64   `json:"timeUsed"`
	Score       int     `json:"score"`
	AllAnswered bool    `json:"allAnswered"`
	RoomStatus  Status  `json:"roomStatus"`
	Winner      *string `json:"winner"`
	Round       int     `json:"round"`
	TotalRounds int     `json:"totalRounds"`
}

// SoloResult is the solo-mode answer payload.
type SoloResult struct {
	Correct      bool           `json:"correct"`
	TimeUsed     int64          `json:"timeUsed"`
	Score        int            `json:"score"`
	PlayerRound  int            `json:"playerRound"`
	TotalRounds  int            `json:"totalRounds"`
	RoomStatus   Status         `json:"roomStatus"`
	Winner       *string        `json:"winner"`
	NewChallenge *ChallengeView `json:"newChallenge"`
}

// AnswerResult carries the mode-specific payload; exactly one of Race/Solo
// is set, matching BattleMode.
type AnswerResult struct {
	BattleMode string
	Race       *RaceResult
	Solo       *SoloResult
}

// Answer applies a submission to the room.
// Fails with ErrGameNotPlaying outside the playing state, ErrPlayerNotFound
// for an unknown player, and ErrUnknownBattleMode for anything that is
// neither race nor solo.
func (r *Room) Answer(playerID, colorKey, pattern string) (*AnswerResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Status != StatusPlaying {
		return nil, ErrGameNotPlaying
	}
	p := r.findPlayer(playerID)
	if p == nil {
		return nil, ErrPlayerNotFound
	}

	switch r.BattleMode {
	case BattleRace:
		return r.answerRace(p, colorKey, pattern)
	case BattleSolo:
		return r.answerSolo(p, colorKey, pattern)
	default:
		return nil, ErrUnknownBattleMode
	}
}

func (r *Room) answerRace(p *Player, colorKey, pattern string) (*AnswerResult, error) {
	if p.Answered {
		return nil, ErrAlreadyAnswered
	}

	ch := r.Challenge
	correct := colorKey == ch.ColorKey && pattern == ch.Pattern
	timeUsed := time.Since(ch.StartTime).Milliseconds()

	p.Answered = true
	p.LastAnswer = &AnswerRecord{Correct: correct, TimeUsed: timeUsed}

	if correct {
		p.Score += basePoints + speedBonus(timeUsed)
		r.advanceRound()
	}

	// A correct answer already advanced and cleared the flags, so
	// allAnswered only holds here when both players got it wrong; that
	// also advances, so a round never waits on a second wrong answer.
	allAnswered := r.allAnswered()
	if allAnswered && r.Status == StatusPlaying {
		r.advanceRound()
	}

	return &AnswerResult{
		BattleMode: BattleRace,
		Race: &RaceResult{
			Correct:     correct,
			TimeUsed:    timeUsed,
			Score:       p.Score,
			AllAnswered: allAnswered,
			RoomStatus:  r.Status,
			Winner:      r.winner(),
			Round:       r.Round,
			TotalRounds: r.TotalRounds,
		},
	}, nil
}

func (r *Room) answerSolo(p *Player, colorKey, pattern string) (*AnswerResult, error) {
	// The player owns its challenge from the first Start onward; the shared
	// one is only a fallback for a round-one submission racing Start.
	ch := p.Challenge
	if ch == nil {
		ch = r.Challenge
	}

	correct := colorKey == ch.ColorKey && pattern == ch.Pattern
	timeUsed := time.Since(ch.StartTime).Milliseconds()

	var next *ChallengeView
	if correct {
		p.Score += basePoints
		if p.Round == 0 {
			p.Round = 1
		}
		p.Round++

		if p.Round > r.TotalRounds {
			// First to finish wins; the opponent's progress is irrelevant.
			r.Status = StatusFinished
			r.Winner = p.Name
		} else {
			p.Challenge = NewChallenge(r.Mode)
			next = viewChallenge(p.Challenge)
		}
	}

	playerRound := p.Round
	if playerRound == 0 {
		playerRound = 1
	}

	return &AnswerResult{
		BattleMode: BattleSolo,
		Solo: &SoloResult{
			Correct:      correct,
			TimeUsed:     timeUsed,
			Score:        p.Score,
			PlayerRound:  playerRound,
			TotalRounds:  r.TotalRounds,
			RoomStatus:   r.Status,
			Winner:       r.winner(),
			NewChallenge: next,
		},
	}, nil
}

// speedBonus awards one point per full second remaining inside the bonus
// window. Never negative; zero at or after 10 seconds.
func speedBonus(timeUsed int64) int {
	b := (bonusWindow - timeUsed) / msPerBonus
	if b < 0 {
		return 0
	}
	return int(b)
}

// advanceRound moves the shared round counter forward, clearing every
// player's per-round flags, and either finishes the room or deals a fresh
// shared challenge. Caller holds the room lock.
func (r *Room) advanceRound() {
	r.Round++
	for _, p := range r.Players {
		p.Answered = false
		p.Ready = false
	}
	if r.Round > r.TotalRounds {
		r.Status = StatusFinished
		r.Winner = r.topScorer().Name
	} else {
		r.Challenge = NewChallenge(r.Mode)
	}
}

// topScorer is a first-max reduction: the player with strictly the highest
// score; on a tie the earliest joiner wins.
func (r *Room) topScorer() *Player {
	best := r.Players[0]
	for _, p := range r.Players[1:] {
		if p.Score > best.Score {
			best = p
		}
	}
	return best
}

func (r *Room) allAnswered() bool {
	for _, p := range r.Players {
		if !p.Answered {
			return false
		}
	}
	return true
}
