// Package registry implements the room lookup and lifecycle half of the
// room management seam spec.md §6 describes: get_or_create_room and
// reap_empty. add_player, remove_player and queue_message are methods
// of *arena.Room itself. Grounded on the teacher's single global
// Server/clients map (server/websocket.go), generalized from "one
// galaxy" to "N independent named rooms", each a *arena.Room.
package registry

import (
	"sync"

	"go.uber.org/zap"

	"github.com/warpbattle/arena/arena"
	"github.com/warpbattle/arena/internal/metrics"
)

// Registry owns the set of currently running rooms, keyed by room ID.
// Its own mutex is distinct from any individual room's — creating a
// room starts its loop goroutine before the registry lock is released,
// matching the synchronous get_or_create_room contract of spec.md §6.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*arena.Room
	log   *zap.Logger
}

func New(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		rooms: make(map[string]*arena.Room),
		log:   log,
	}
}

// GetOrCreate returns the running room for roomID, creating and
// starting it if this is the first join.
func (reg *Registry) GetOrCreate(roomID string) *arena.Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if room, ok := reg.rooms[roomID]; ok {
		return room
	}
	room := arena.NewRoom(roomID, reg.log)
	reg.rooms[roomID] = room
	room.Start()
	metrics.ActiveRooms.Set(float64(len(reg.rooms)))
	reg.log.Info("room created", zap.String("room", roomID))
	return room
}

// Rooms returns a snapshot slice of every currently running room.
// Safe to range over after the call returns; the registry may add or
// reap rooms concurrently without affecting the returned slice.
func (reg *Registry) Rooms() []*arena.Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	out := make([]*arena.Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		out = append(out, room)
	}
	return out
}

// Count returns the number of currently running rooms.
func (reg *Registry) Count() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.rooms)
}

// ReapEmpty stops and drops every room with zero players. Rooms are
// only removed from the registry after their loop has fully stopped,
// per spec.md §5's cancellation contract.
func (reg *Registry) ReapEmpty() {
	reg.mu.Lock()
	var dead []*arena.Room
	for id, room := range reg.rooms {
		if room.PlayerCount() == 0 {
			room.Stop()
			delete(reg.rooms, id)
			dead = append(dead, room)
		}
	}
	reg.mu.Unlock()

	for _, room := range dead {
		reg.log.Info("room reaped", zap.String("room", room.ID))
	}
	reg.RefreshMetrics()
}

// RefreshMetrics recomputes the active-room and active-player gauges.
// Called after reaping and on a periodic tick from main, since player
// counts change on every join/leave without going through the
// registry itself.
func (reg *Registry) RefreshMetrics() {
	reg.mu.Lock()
	rooms := make([]*arena.Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		rooms = append(rooms, room)
	}
	reg.mu.Unlock()

	players := 0
	for _, room := range rooms {
		players += room.PlayerCount()
	}
	metrics.ActiveRooms.Set(float64(len(rooms)))
	metrics.ActivePlayers.Set(float64(players))
}

// StopAll stops every running room, for graceful server shutdown.
func (reg *Registry) StopAll() {
	reg.mu.Lock()
	rooms := make([]*arena.Room, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		rooms = append(rooms, room)
	}
	reg.rooms = make(map[string]*arena.Room)
	reg.mu.Unlock()

	for _, room := range rooms {
		room.Stop()
	}
	metrics.ActiveRooms.Set(0)
	metrics.ActivePlayers.Set(0)
}
