package arena

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/warpbattle/arena/internal/metrics"
)

// Sender is the narrow egress seam a room talks to: one outbound snapshot
// payload per player per tick. Transport adapters implement this over a
// websocket connection; nothing in this package knows about websockets.
type Sender interface {
	Send(payload []byte) error
}

// Room owns one arena instance: its ships, live entities, effect log, and
// the single goroutine that is the sole mutator of all of it. Every other
// goroutine talks to a Room only through QueueMessage, AddPlayer, and
// RemovePlayer.
type Room struct {
	ID string

	mu          sync.RWMutex
	Ships       map[string]*Ship
	Missiles    []*Missile
	Zones       []*BombardmentZone
	Clouds      []*SporeCloud
	Mutalisks   []*Mutalisk
	Effects     []Effect
	connections map[string]Sender

	Tick        int64
	CurrentTime float64

	qmu     sync.Mutex
	pending []rawIntent

	log *zap.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

type rawIntent struct {
	playerID string
	raw      []byte
}

// NewRoom creates a stopped room. Call Start to begin its tick loop.
func NewRoom(id string, log *zap.Logger) *Room {
	if log == nil {
		log = zap.NewNop()
	}
	return &Room{
		ID:          id,
		Ships:       make(map[string]*Ship),
		connections: make(map[string]Sender),
		log:         log.With(zap.String("room", id)),
	}
}

// Start launches the room's tick loop goroutine. Calling Start twice is a
// no-op.
func (r *Room) Start() {
	r.mu.Lock()
	if r.cancel != nil {
		r.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})
	r.mu.Unlock()

	go r.loop(ctx)
}

// Stop cancels the tick loop. Safe to call on an already-stopped room.
func (r *Room) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	done := r.done
	r.cancel = nil
	r.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (r *Room) loop(ctx context.Context) {
	defer close(r.done)
	r.log.Info("room loop started")
	defer r.log.Info("room loop stopped")

	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("room loop panic", zap.Any("recover", rec))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		start := time.Now()

		r.mu.Lock()
		r.drainInputsLocked()
		r.step(DT)
		r.Tick++
		r.CurrentTime += DT
		snapshot := r.buildSnapshotLocked()
		r.mu.Unlock()

		r.broadcast(snapshot)

		r.mu.Lock()
		metrics.EffectsEmitted.Add(float64(len(r.Effects)))
		r.Effects = r.Effects[:0]
		r.mu.Unlock()

		elapsed := time.Since(start)
		metrics.RecordTick(elapsed)
		sleep := TickInterval - elapsed
		if sleep < 0 {
			sleep = 0
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(sleep):
		}
	}
}

// broadcast fans the same payload out to every connected player, dropping
// any connection whose send fails. A failing send removes the player, not
// the room.
func (r *Room) broadcast(payload []byte) {
	r.mu.Lock()
	failed := make([]string, 0)
	for id, conn := range r.connections {
		if err := conn.Send(payload); err != nil {
			failed = append(failed, id)
		}
	}
	for _, id := range failed {
		r.removePlayerLocked(id)
	}
	r.mu.Unlock()

	for _, id := range failed {
		metrics.PlayersDropped.WithLabelValues("send_failed").Inc()
		r.log.Warn("dropping player after failed send", zap.String("player", id))
	}
}

// AddPlayer creates and registers a new ship, spawning it immediately, and
// wires its sender. Returns the new Ship.
func (r *Room) AddPlayer(playerID, name string, class ShipClass, sender Sender) *Ship {
	r.mu.Lock()
	defer r.mu.Unlock()

	ship := NewShip(playerID, name, class)
	r.Ships[playerID] = ship
	r.connections[playerID] = sender
	r.Effects = append(r.Effects, Effect{Kind: "player_joined", Name: name})
	return ship
}

// RemovePlayer removes a player's ship and connection from the room.
func (r *Room) RemovePlayer(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removePlayerLocked(playerID)
}

func (r *Room) removePlayerLocked(playerID string) {
	ship, ok := r.Ships[playerID]
	delete(r.Ships, playerID)
	delete(r.connections, playerID)
	if ok {
		r.Effects = append(r.Effects, Effect{Kind: "player_left", Name: ship.Name})
	}
}

// PlayerCount returns the number of ships currently in the room.
func (r *Room) PlayerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.Ships)
}

// PlayerNames returns the names of every ship currently in the room, for
// the /api/rooms introspection endpoint.
func (r *Room) PlayerNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.Ships))
	for _, s := range r.Ships {
		names = append(names, s.Name)
	}
	return names
}

// QueueMessage appends one raw client message to the room's inbound queue,
// verbatim, with the sender's player id. This is the entry point through
// which transport adapters deliver client messages; queue draining is
// owned exclusively by the tick loop.
func (r *Room) QueueMessage(playerID string, raw []byte) {
	r.qmu.Lock()
	r.pending = append(r.pending, rawIntent{playerID: playerID, raw: raw})
	r.qmu.Unlock()
}

// drainInputsLocked consumes the pending queue in arrival order and
// applies each intent. Caller must hold r.mu.
func (r *Room) drainInputsLocked() {
	r.qmu.Lock()
	batch := r.pending
	r.pending = nil
	r.qmu.Unlock()

	for _, qi := range batch {
		ship, ok := r.Ships[qi.playerID]
		if !ok || !ship.Alive || ship.IsChanneling {
			continue
		}
		intent, ok := ParseIntent(qi.raw)
		if !ok {
			continue
		}
		r.applyIntent(ship, intent)
	}
}

func (r *Room) applyIntent(ship *Ship, intent Intent) {
	switch intent.Type {
	case IntentMove:
		ship.MoveTargetX = intent.X
		ship.MoveTargetZ = intent.Z
		ship.HasMoveTarget = true
	case IntentFireStart:
		ship.IsFiring = true
		ship.FireTargetX = intent.X
		ship.FireTargetZ = intent.Z
	case IntentFireStop:
		ship.IsFiring = false
	case IntentFireAim:
		ship.FireTargetX = intent.X
		ship.FireTargetZ = intent.Z
	case IntentAbility:
		r.useAbility(ship, intent.AbilityID, intent.X, intent.Z)
	}
}

func (r *Room) emitEffect(e Effect) {
	r.Effects = append(r.Effects, e)
}

func (r *Room) newID(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}
