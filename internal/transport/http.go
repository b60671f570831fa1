package transport

import (
	"encoding/json"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/warpbattle/arena/arena"
	"github.com/warpbattle/arena/internal/metrics"
	"github.com/warpbattle/arena/internal/ratelimit"
	"github.com/warpbattle/arena/internal/registry"
)

// Server bundles the registry and rate limiters behind the HTTP
// surface spec.md §6 describes: the /ws upgrade, /api/rooms listing,
// and /healthz liveness probe.
type Server struct {
	reg     *registry.Registry
	ipLimit *ratelimit.IPLimiter
	connCap *ratelimit.ConnLimiter
	log     *zap.Logger
}

func NewServer(reg *registry.Registry, ipLimit *ratelimit.IPLimiter, connCap *ratelimit.ConnLimiter, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{reg: reg, ipLimit: ipLimit, connCap: connCap, log: log}
}

const maxNameLength = 20

// sanitizeName removes everything but alphanumerics and HTML-escapes the
// remainder, matching the teacher's handler_utils.go sanitizeName exactly
// (same strings.Map alphanumeric filter, same html.EscapeString pass)
// before a name is echoed back to every client in a player_joined effect.
func sanitizeName(raw string) string {
	if len(raw) > maxNameLength {
		raw = raw[:maxNameLength]
	}

	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, raw)

	name := html.EscapeString(cleaned)
	if name == "" {
		name = "pilot"
	}
	return name
}

// HandleWebSocket upgrades GET /ws?room=<id>&name=<n>&class=<c> into a
// websocket session, joining (and lazily creating) the named room.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ClientIP(r)
	if s.ipLimit != nil && !s.ipLimit.Allow(ip) {
		metrics.ConnectionsRejected.WithLabelValues("rate_limit").Inc()
		http.Error(w, "too many requests", http.StatusTooManyRequests)
		return
	}
	if s.connCap != nil && !s.connCap.Acquire(ip) {
		metrics.ConnectionsRejected.WithLabelValues("ws_limit").Inc()
		http.Error(w, "too many connections", http.StatusTooManyRequests)
		return
	}

	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		if s.connCap != nil {
			s.connCap.Release(ip)
		}
		metrics.ConnectionsRejected.WithLabelValues("bad_params").Inc()
		http.Error(w, "missing room", http.StatusBadRequest)
		return
	}
	name := sanitizeName(r.URL.Query().Get("name"))
	class := arena.ResolveClass(r.URL.Query().Get("class"))

	room := s.reg.GetOrCreate(roomID)
	playerID := uuid.NewString()

	released := false
	release := func() {
		if released {
			return
		}
		released = true
		if s.connCap != nil {
			s.connCap.Release(ip)
		}
		room.RemovePlayer(playerID)
		s.reg.ReapEmpty()
	}

	if err := Join(w, r, room, playerID, name, class, s.log, release); err != nil {
		release()
		s.log.Warn("websocket upgrade failed", zap.Error(err), zap.String("room", roomID))
	}
}

type roomSummary struct {
	ID          string   `json:"id"`
	PlayerCount int      `json:"playerCount"`
	PlayerNames []string `json:"playerNames"`
}

// HandleRooms serves GET /api/rooms: a JSON array of active rooms and
// their current occupants.
func (s *Server) HandleRooms(w http.ResponseWriter, r *http.Request) {
	rooms := s.reg.Rooms()
	out := make([]roomSummary, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, roomSummary{
			ID:          room.ID,
			PlayerCount: room.PlayerCount(),
			PlayerNames: room.PlayerNames(),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// HandleHealthz is the liveness probe, grounded on the teacher's
// /health handler in main.go.
func (s *Server) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// RequestLogger wraps a handler with per-request latency recorded to
// the metrics histogram, grounded on the kick-game-stream pack's
// observability.go RecordRequest for its HTTP surface.
func RequestLogger(routeLabel string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		metrics.HTTPRequestDuration.WithLabelValues(routeLabel).Observe(time.Since(start).Seconds())
	}
}
