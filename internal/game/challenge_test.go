package game_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wenxiangxiao/magic-glasses/internal/colors"
	"github.com/wenxiangxiao/magic-glasses/internal/game"
)

func TestNewChallenge(t *testing.T) {
	for _, mode := range []string{"easy", "medium", "hard", "bogus"} {
		t.Run(mode, func(t *testing.T) {
			// Repeated draws to cover the random picks.
			for i := 0; i < 50; i++ {
				c := game.NewChallenge(mode)
				require.NotNil(t, c)

				display, ok := colors.Display(c.ColorKey)
				assert.True(t, ok, "colorKey %q not in lookup", c.ColorKey)
				assert.Equal(t, display, c.Color)
				assert.Contains(t, colors.Patterns(), c.Pattern)
				assert.WithinDuration(t, time.Now(), c.StartTime, time.Second)
			}
		})
	}
}

// Unrecognized modes draw from the medium table.
func TestNewChallengeUnknownModeUsesMedium(t *testing.T) {
	mediumKeys := map[string]bool{}
	for _, combo := range colors.Combos("medium") {
		mediumKeys[colors.Key(combo)] = true
	}
	for i := 0; i < 50; i++ {
		c := game.NewChallenge("does-not-exist")
		assert.True(t, mediumKeys[c.ColorKey], "key %q outside medium table", c.ColorKey)
	}
}
