// internal/httpserver/server.go
//
// HTTP server wiring for the magic-glasses game backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/rooms".
//   - Game endpoints: POST /create, POST /join, GET /room/{code},
//     POST /start/{code}, POST /answer/{code}.
//   - Mapping the engine's error taxonomy onto 4xx JSON responses.
//
// Notes:
//   - Clients poll GET /room/{code}; there is no push channel.
//   - CORS is origin-aware and credentials-enabled.
//   - Every error is `{"error":"..."}` with a human-readable message;
//     unknown room codes are the only 404s, everything else is a 400.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/wenxiangxiao/magic-glasses/internal/colors"
	"github.com/wenxiangxiao/magic-glasses/internal/game"
	"github.com/wenxiangxiao/magic-glasses/internal/registry"
)

// Server bundles the router and the room registry.
type Server struct {
	r   *chi.Mux
	reg *registry.Registry
}

// New constructs a Server, installs middleware, and registers routes.
func New(reg *registry.Registry) *Server {
	s := &Server{r: chi.NewRouter(), reg: reg}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"magic-glasses","endpoints":["/health","POST /create","POST /join","GET /room/{code}","POST /start/{code}","POST /answer/{code}"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Game endpoints
	s.r.Post("/create", s.handleCreate)
	s.r.Post("/join", s.handleJoin)
	s.r.Get("/room/{code}", s.handleRoom)
	s.r.Post("/start/{code}", s.handleStart)
	s.r.Post("/answer/{code}", s.handleAnswer)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found: "+r.URL.Path)
	})

	// Debug: live room counts and color table sizes
	s.r.Get("/debug/rooms", func(w http.ResponseWriter, r *http.Request) {
		lookups, patterns := colors.Stats()
		out := map[string]any{"colors": lookups, "patterns": patterns}
		for k, v := range s.reg.Stats() {
			out[k] = v
		}
		_ = json.NewEncoder(w).Encode(out)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ handlers -----------------------------------

// createReq/Res payloads for POST /create. Every field is optional;
// defaults and the [3,30] round clamp are applied by the game package.
type createReq struct {
	PlayerName  string `json:"playerName"`
	Mode        string `json:"mode"`
	TotalRounds int    `json:"totalRounds"`
	BattleMode  string `json:"battleMode"`
}
type createRes struct {
	Success     bool   `json:"success"`
	Code        string `json:"code"`
	PlayerID    string `json:"playerId"`
	PlayerIndex int    `json:"playerIndex"`
	BattleMode  string `json:"battleMode"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	room := s.reg.Create(req.PlayerName, req.Mode, req.TotalRounds, req.BattleMode)
	_ = json.NewEncoder(w).Encode(createRes{
		Success:     true,
		Code:        room.Code,
		PlayerID:    room.Creator().ID,
		PlayerIndex: 0,
		BattleMode:  room.BattleMode,
	})
}

// joinReq/Res payloads for POST /join. The joiner does not choose the
// difficulty; the room's mode is echoed back instead.
type joinReq struct {
	Code       string `json:"code"`
	PlayerName string `json:"playerName"`
}
type joinRes struct {
	Success     bool   `json:"success"`
	Code        string `json:"code"`
	PlayerID    string `json:"playerId"`
	PlayerIndex int    `json:"playerIndex"`
	Mode        string `json:"mode"`
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req joinReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	room, err := s.reg.Get(req.Code)
	if err != nil {
		writeGameError(w, err)
		return
	}
	p, idx, err := room.Join(req.PlayerName)
	if err != nil {
		writeGameError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(joinRes{
		Success:     true,
		Code:        room.Code,
		PlayerID:    p.ID,
		PlayerIndex: idx,
		Mode:        room.Mode,
	})
}

// handleRoom serves the polling endpoint: the full room snapshot with
// challenges re-projected through the allow-list view.
func (s *Server) handleRoom(w http.ResponseWriter, r *http.Request) {
	room, err := s.reg.Get(chi.URLParam(r, "code"))
	if err != nil {
		writeGameError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(room.Snapshot())
}

// startRes is returned by POST /start/{code}. Challenges is present in
// solo mode only, indexed by join order.
type startRes struct {
	Success    bool                  `json:"success"`
	Challenge  *game.ChallengeView   `json:"challenge"`
	Challenges []*game.ChallengeView `json:"challenges,omitempty"`
	BattleMode string                `json:"battleMode"`
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	room, err := s.reg.Get(chi.URLParam(r, "code"))
	if err != nil {
		writeGameError(w, err)
		return
	}
	res, err := room.Start()
	if err != nil {
		writeGameError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(startRes{
		Success:    true,
		Challenge:  res.Challenge,
		Challenges: res.Challenges,
		BattleMode: res.BattleMode,
	})
}

// answerReq is the body of POST /answer/{code}.
type answerReq struct {
	PlayerID string `json:"playerId"`
	ColorKey string `json:"colorKey"`
	Pattern  string `json:"pattern"`
}

// raceAnswerRes/soloAnswerRes wrap the engine's mode-specific payloads.
type raceAnswerRes struct {
	Success bool `json:"success"`
	*game.RaceResult
}
type soloAnswerRes struct {
	Success bool `json:"success"`
	*game.SoloResult
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	room, err := s.reg.Get(chi.URLParam(r, "code"))
	if err != nil {
		writeGameError(w, err)
		return
	}
	res, err := room.Answer(req.PlayerID, req.ColorKey, req.Pattern)
	if err != nil {
		writeGameError(w, err)
		return
	}
	switch {
	case res.Race != nil:
		_ = json.NewEncoder(w).Encode(raceAnswerRes{Success: true, RaceResult: res.Race})
	default:
		_ = json.NewEncoder(w).Encode(soloAnswerRes{Success: true, SoloResult: res.Solo})
	}
}

// ------------------------------ errors -------------------------------------

// writeGameError maps the engine's error taxonomy onto HTTP statuses:
// unknown rooms are 404, every other taxonomy entry is a 400.
func writeGameError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, game.ErrRoomNotFound) {
		status = http.StatusNotFound
	}
	writeError(w, status, err.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
