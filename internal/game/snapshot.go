// internal/game/snapshot.go
//
// Externally visible projection of room state for polling clients.
// Challenges are re-projected field by field — a deliberate allow-list,
// not a pass-through — so nothing incidental leaks into responses.

package game

// ChallengeView is the wire shape of a challenge.
type ChallengeView struct {
	ColorKey  string `json:"colorKey"`
	Color     string `json:"color"`
	Pattern   string `json:"pattern"`
	StartTime int64  `json:"startTime"` // Unix milliseconds
}

// PlayerView is the wire shape of a player.
type PlayerView struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Score      int            `json:"score"`
	Ready      bool           `json:"ready"`
	Answered   bool           `json:"answered"`
	Round      int            `json:"round"`
	Challenge  *ChallengeView `json:"challenge"`
	LastAnswer *AnswerRecord  `json:"lastAnswer"`
}

// RoomView is the wire shape of a room.
type RoomView struct {
	Code        string         `json:"code"`
	Mode        string         `json:"mode"`
	BattleMode  string         `json:"battleMode"`
	TotalRounds int            `json:"totalRounds"`
	CreatedAt   int64          `json:"createdAt"` // Unix milliseconds
	Players     []*PlayerView  `json:"players"`
	Status      Status         `json:"status"`
	Round       int            `json:"round"`
	Challenge   *ChallengeView `json:"challenge"`
	Winner      *string        `json:"winner"`
}

func viewChallenge(c *Challenge) *ChallengeView {
	if c == nil {
		return nil
	}
	return &ChallengeView{
		ColorKey:  c.ColorKey,
		Color:     c.Color,
		Pattern:   c.Pattern,
		StartTime: c.StartTime.UnixMilli(),
	}
}

func viewPlayer(p *Player) *PlayerView {
	return &PlayerView{
		ID:         p.ID,
		Name:       p.Name,
		Score:      p.Score,
		Ready:      p.Ready,
		Answered:   p.Answered,
		Round:      p.Round,
		Challenge:  viewChallenge(p.Challenge),
		LastAnswer: p.LastAnswer,
	}
}

// Snapshot returns the full externally visible room state.
func (r *Room) Snapshot() *RoomView {
	r.mu.Lock()
	defer r.mu.Unlock()

	players := make([]*PlayerView, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, viewPlayer(p))
	}
	return &RoomView{
		Code:        r.Code,
		Mode:        r.Mode,
		BattleMode:  r.BattleMode,
		TotalRounds: r.TotalRounds,
		CreatedAt:   r.CreatedAt.UnixMilli(),
		Players:     players,
		Status:      r.Status,
		Round:       r.Round,
		Challenge:   viewChallenge(r.Challenge),
		Winner:      r.winner(),
	}
}
