// internal/game/challenge.go
//
// Challenge generation. A challenge is one combination drawn uniformly from
// the difficulty's table plus one pattern, stamped with the generation
// instant. Pure with respect to room state.

package game

import (
	"math/rand/v2"
	"time"

	"github.com/wenxiangxiao/magic-glasses/internal/colors"
)

// NewChallenge produces a randomized target for the given difficulty mode.
// Unrecognized modes fall back to medium (handled by the colors package).
// Every reachable colorKey exists in the display lookup; the table is closed.
func NewChallenge(mode string) *Challenge {
	combos := colors.Combos(mode)
	combo := combos[rand.IntN(len(combos))]
	key := colors.Key(combo)
	display, _ := colors.Display(key)
	pats := colors.Patterns()
	return &Challenge{
		ColorKey:  key,
		Color:     display,
		Pattern:   pats[rand.IntN(len(pats))],
		StartTime: time.Now(),
	}
}
