// internal/registry/registry.go
//
// In-memory registry of live rooms, keyed by 4-digit code.
//
// Characteristics:
//   - Mutex-guarded map; code allocation and insert happen under one lock,
//     so codes are unique among live rooms.
//   - A background sweep discards rooms 30 minutes after creation,
//     regardless of in-progress state. Nothing is archived and no client
//     is notified; later lookups simply report not found.
//   - State is lost when the process restarts, by design.

package registry

import (
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wenxiangxiao/magic-glasses/internal/game"
)

// sweepInterval is how often the expiry sweep runs.
const sweepInterval = time.Minute

// Registry is the process-scoped store of live rooms.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*game.Room

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New constructs a Registry and starts its expiry sweep.
func New() *Registry {
	r := &Registry{
		rooms:  make(map[string]*game.Room),
		stopCh: make(chan struct{}),
	}
	r.wg.Add(1)
	go r.sweepLoop()
	return r
}

// Create allocates a fresh code and inserts a new waiting room.
func (r *Registry) Create(playerName, mode string, totalRounds int, battleMode string) *game.Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	code := r.freeCode()
	room := game.NewRoom(code, playerName, mode, totalRounds, battleMode)
	r.rooms[code] = room

	log.Info().Str("code", code).Str("mode", room.Mode).
		Str("battleMode", room.BattleMode).Int("totalRounds", room.TotalRounds).
		Msg("room created")
	return room
}

// Get looks up a live room by code.
func (r *Registry) Get(code string) (*game.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if room, ok := r.rooms[code]; ok {
		return room, nil
	}
	return nil, game.ErrRoomNotFound
}

// Len returns the number of live rooms.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms)
}

// Stats summarizes live rooms for the debug endpoint.
func (r *Registry) Stats() map[string]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := map[string]int{"rooms": len(r.rooms)}
	for _, room := range r.rooms {
		out["players"] += room.PlayerCount()
		out[string(room.CurrentStatus())]++
	}
	return out
}

// Stop halts the background sweep and waits for it to exit.
func (r *Registry) Stop() {
	close(r.stopCh)
	r.wg.Wait()
}

// freeCode draws random 4-digit codes until one does not collide with a
// live room. Caller holds the registry lock; the code is claimed by the
// insert that follows immediately.
func (r *Registry) freeCode() string {
	for {
		code := strconv.Itoa(1000 + rand.IntN(9000))
		if _, taken := r.rooms[code]; !taken {
			return code
		}
	}
}

func (r *Registry) sweepLoop() {
	defer r.wg.Done()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.Sweep(time.Now())
		case <-r.stopCh:
			return
		}
	}
}

// Sweep removes every room whose age exceeds the TTL. Exported so tests
// can trigger a pass synchronously. The expiry check takes each room's own
// lock, so a room mid-mutation is never yanked out from under a handler.
func (r *Registry) Sweep(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for code, room := range r.rooms {
		if room.Expired(now) {
			delete(r.rooms, code)
			log.Info().Str("code", code).Msg("room expired")
		}
	}
}
