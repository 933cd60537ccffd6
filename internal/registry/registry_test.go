package registry_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wenxiangxiao/magic-glasses/internal/game"
	"github.com/wenxiangxiao/magic-glasses/internal/registry"
)

func TestCreateAllocatesUniqueCodes(t *testing.T) {
	reg := registry.New()
	defer reg.Stop()

	codeFormat := regexp.MustCompile(`^[1-9]\d{3}$`)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		room := reg.Create("", "", 0, "")
		require.Regexp(t, codeFormat, room.Code)
		assert.False(t, seen[room.Code], "code %s allocated twice", room.Code)
		seen[room.Code] = true
	}
	assert.Equal(t, 100, reg.Len())
}

func TestGet(t *testing.T) {
	reg := registry.New()
	defer reg.Stop()

	room := reg.Create("Alice", "easy", 5, game.BattleRace)

	got, err := reg.Get(room.Code)
	require.NoError(t, err)
	assert.Same(t, room, got)

	_, err = reg.Get("0000")
	assert.ErrorIs(t, err, game.ErrRoomNotFound)
}

func TestSweepDiscardsExpiredRooms(t *testing.T) {
	reg := registry.New()
	defer reg.Stop()

	stale := reg.Create("Alice", "easy", 5, game.BattleRace)
	fresh := reg.Create("Bob", "easy", 5, game.BattleRace)
	stale.CreatedAt = time.Now().Add(-31 * time.Minute)

	reg.Sweep(time.Now())

	// The expired room is simply gone; lookups report not found.
	_, err := reg.Get(stale.Code)
	assert.ErrorIs(t, err, game.ErrRoomNotFound)

	_, err = reg.Get(fresh.Code)
	assert.NoError(t, err)
	assert.Equal(t, 1, reg.Len())
}

// Expiry is measured from creation, not activity: an in-progress game is
// discarded all the same.
func TestSweepDiscardsInProgressRooms(t *testing.T) {
	reg := registry.New()
	defer reg.Stop()

	room := reg.Create("Alice", "easy", 5, game.BattleRace)
	_, _, err := room.Join("Bob")
	require.NoError(t, err)
	_, err = room.Start()
	require.NoError(t, err)

	room.CreatedAt = time.Now().Add(-game.TTL - time.Minute)
	reg.Sweep(time.Now())

	_, err = reg.Get(room.Code)
	assert.ErrorIs(t, err, game.ErrRoomNotFound)
}

func TestStats(t *testing.T) {
	reg := registry.New()
	defer reg.Stop()

	reg.Create("Alice", "easy", 5, game.BattleRace)
	room := reg.Create("Carol", "hard", 5, game.BattleSolo)
	_, _, err := room.Join("Dave")
	require.NoError(t, err)

	stats := reg.Stats()
	assert.Equal(t, 2, stats["rooms"])
	assert.Equal(t, 3, stats["players"])
	assert.Equal(t, 1, stats["waiting"])
	assert.Equal(t, 1, stats["ready"])
}
