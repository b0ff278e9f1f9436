// Package spectate streams a running World to websocket clients.
//
// A single goroutine owns the World: it ticks it, applies client
// commands between ticks and broadcasts JSON snapshots on a fixed
// interval. Connection goroutines only exchange messages with it.
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Garsondee/Steering-Wars/internal/game"
)

const (
	sendBuffer   = 16
	readLimit    = 1 << 16
	writeTimeout = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

var errUnknownCommand = errors.New("unknown command")

type client struct {
	conn *websocket.Conn
	send chan []byte
}

type command struct {
	from *client
	msg  inboundMessage
}

// Server runs one World and fans its state out to spectators.
type Server struct {
	world    *game.World
	interval time.Duration

	register   chan *client
	unregister chan *client
	commands   chan command
	done       chan struct{}

	mu     sync.RWMutex
	latest []byte
}

// NewServer wraps w. Snapshots are broadcast every interval.
func NewServer(w *game.World, interval time.Duration) *Server {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	s := &Server{
		world:      w,
		interval:   interval,
		register:   make(chan *client),
		unregister: make(chan *client),
		commands:   make(chan command),
		done:       make(chan struct{}),
	}
	s.latest = s.encodeState()
	return s
}

// Handler serves the websocket endpoint at /ws and the latest snapshot
// as plain JSON at /state.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	mux.HandleFunc("/state", s.serveState)
	return mux
}

// Run owns the World until ctx is cancelled. It must be called once.
func (s *Server) Run(ctx context.Context) error {
	defer close(s.done)
	tick := time.NewTicker(time.Second / game.TicksPerSecond)
	defer tick.Stop()
	broadcast := time.NewTicker(s.interval)
	defer broadcast.Stop()

	clients := make(map[*client]struct{})
	defer func() {
		for c := range clients {
			close(c.send)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c := <-s.register:
			clients[c] = struct{}{}
			deliver(c, s.encodeState())
		case c := <-s.unregister:
			if _, ok := clients[c]; ok {
				delete(clients, c)
				close(c.send)
			}
		case cmd := <-s.commands:
			if err := s.apply(cmd.msg); err != nil {
				if _, ok := clients[cmd.from]; ok {
					b, _ := json.Marshal(errorMsg{Type: "error", Message: err.Error()})
					deliver(cmd.from, b)
				}
			}
		case <-tick.C:
			s.world.Tick()
		case <-broadcast.C:
			b := s.encodeState()
			for c := range clients {
				deliver(c, b)
			}
		}
	}
}

// deliver drops the frame for a client that has fallen behind.
func deliver(c *client, b []byte) {
	select {
	case c.send <- b:
	default:
	}
}

func (s *Server) encodeState() []byte {
	b, err := json.Marshal(toStateMsg(s.world.Snapshot()))
	if err != nil {
		log.Printf("spectate: encode state: %v", err)
		return nil
	}
	s.mu.Lock()
	s.latest = b
	s.mu.Unlock()
	return b
}

// apply runs one client command on the owning goroutine.
func (s *Server) apply(msg inboundMessage) error {
	switch msg.Type {
	case "pause":
		s.world.SetPaused(true)
	case "resume":
		s.world.SetPaused(false)
	case "toggle":
		s.world.TogglePause()
	case "clear_dead":
		_, err := s.world.ClearDead()
		return err
	case "spawn":
		var p spawnPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return fmt.Errorf("spawn payload: %w", err)
		}
		t, ok := game.ParseTeam(p.Team)
		if !ok {
			return fmt.Errorf("%w: %q", game.ErrUnknownTeam, p.Team)
		}
		_, err := s.world.Spawn(p.X, p.Y, t)
		return err
	default:
		return fmt.Errorf("%w: %q", errUnknownCommand, msg.Type)
	}
	return nil
}

func (s *Server) serveState(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	b := s.latest
	s.mu.RUnlock()
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("spectate: upgrade: %v", err)
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	select {
	case s.register <- c:
	case <-s.done:
		conn.Close()
		return
	}

	go c.writeLoop()
	s.readLoop(c)
}

func (c *client) writeLoop() {
	defer c.conn.Close()
	for b := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (s *Server) readLoop(c *client) {
	defer func() {
		select {
		case s.unregister <- c:
		case <-s.done:
		}
	}()
	c.conn.SetReadLimit(readLimit)
	for {
		var msg inboundMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("spectate: read: %v", err)
			}
			return
		}

		select {
		case s.commands <- command{from: c, msg: msg}:
		case <-s.done:
			return
		}
	}
}
