// Package transport is the collaborator spec.md §1 calls out as
// external to the simulation core: accepting client sessions, framing,
// and the HTTP introspection surface. Grounded on the teacher's
// Client/Server websocket plumbing (server/websocket.go), generalized
// from one global galaxy to per-room registration via
// internal/registry.
package transport

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/warpbattle/arena/arena"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	maxMsgSize = 4096
)

var upgrader = websocket.Upgrader{
	CheckOrigin:       func(r *http.Request) bool { return true },
	EnableCompression: true,
}

// Conn wires one websocket connection into a room. It implements
// arena.Sender so the room's broadcast loop can write to it directly,
// but actual socket writes happen on its own writePump goroutine via a
// buffered channel — the room loop never blocks on a slow client.
type Conn struct {
	playerID string
	room     *arena.Room
	ws       *websocket.Conn
	send     chan []byte
	log      *zap.Logger

	onClose func()
}

// Send implements arena.Sender. A full send buffer is itself a form of
// a slow/stuck client, so it counts as a send failure rather than
// blocking the caller.
func (c *Conn) Send(payload []byte) error {
	select {
	case c.send <- payload:
		return nil
	default:
		return errSendBufferFull
	}
}

var errSendBufferFull = &sendError{"send buffer full"}

type sendError struct{ msg string }

func (e *sendError) Error() string { return e.msg }

// Join upgrades r into a websocket, registers a new ship with room
// under playerID/name/class, and blocks running the read/write pumps
// until the connection closes. onClose is invoked exactly once, when the
// write pump exits (after the read pump has stopped on a client close; on
// a write error the read pump is still winding down), so the caller can
// remove the player from the room and release any rate-limit slot.
func Join(w http.ResponseWriter, r *http.Request, room *arena.Room, playerID, name string, class arena.ShipClass, log *zap.Logger, onClose func()) error {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &Conn{
		playerID: playerID,
		room:     room,
		ws:       ws,
		send:     make(chan []byte, 8),
		log:      log,
		onClose:  onClose,
	}
	room.AddPlayer(playerID, name, class, c)

	done := make(chan struct{})
	go func() {
		c.writePump()
		close(done)
	}()
	c.readPump()
	<-done
	return nil
}

// readPump reads inbound messages and queues the raw bytes against the
// room verbatim (the room decodes them when it drains its queue), with the sender's player id, matching spec.md §6's
// inbound seam. It never mutates room state directly.
func (c *Conn) readPump() {
	defer func() {
		c.ws.Close()
		close(c.send)
	}()

	c.ws.SetReadLimit(maxMsgSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("websocket read error", zap.String("player", c.playerID), zap.Error(err))
			}
			return
		}
		c.room.QueueMessage(c.playerID, raw)
	}
}

// writePump is the sole writer on the underlying connection: every
// snapshot queued via Send, plus periodic keepalive pings.
func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
		if c.onClose != nil {
			c.onClose()
		}
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
