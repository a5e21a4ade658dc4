package spectator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cojovi/ReplitRanchDefense/internal/game"
)

const (
	DefaultPingInterval = 2 * time.Second
	writeTimeout        = 2 * time.Second
	shutdownTimeout     = 3 * time.Second
)

// Message is the wire envelope. Type is "snapshot" or "event".
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// EventMessage is the wire form of a forwarded game.Event.
type EventMessage struct {
	Kind    string  `json:"kind"`
	Time    float64 `json:"time"`
	EnemyID string  `json:"enemyId,omitempty"`
	Weapon  string  `json:"weapon,omitempty"`
	Amount  float64 `json:"amount,omitempty"`
	State   string  `json:"state,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.send)
	})
}

// Hub fans snapshots and selected events out to websocket spectators. The
// simulation thread calls Publish and Notify; both return without waiting
// on the network. A client whose queue is full misses that frame.
type Hub struct {
	upgrader     websocket.Upgrader
	buffer       int
	pingInterval time.Duration

	mu      sync.RWMutex
	clients map[*client]struct{}
	dropped atomic.Int64
	sent    atomic.Int64

	log     zerolog.Logger
	dropLog zerolog.Logger
}

// NewHub creates a hub that queues up to buffer messages per client.
func NewHub(buffer int, log zerolog.Logger) *Hub {
	if buffer < 1 {
		buffer = 1
	}
	l := log.With().Str("component", "spectator").Logger()
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		buffer:       buffer,
		pingInterval: DefaultPingInterval,
		clients:      make(map[*client]struct{}),
		log:          l,
		dropLog: l.Sample(&zerolog.BurstSampler{
			Burst:       5,
			Period:      10 * time.Second,
			NextSampler: &zerolog.BasicSampler{N: 100},
		}),
	}
}

// Clients is the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Dropped counts messages skipped because a client queue was full.
func (h *Hub) Dropped() int64 { return h.dropped.Load() }

// Sent counts messages queued for delivery.
func (h *Hub) Sent() int64 { return h.sent.Load() }

// Publish queues a snapshot for every spectator.
func (h *Hub) Publish(s game.Snapshot) {
	if h.Clients() == 0 {
		return
	}
	data, err := json.Marshal(s)
	if err != nil {
		h.log.Warn().Err(err).Msg("snapshot encode failed")
		return
	}
	h.broadcast("snapshot", data)
}

// Notify forwards kills, weapon unlocks and lifecycle changes. It
// implements game.Notifier.
func (h *Hub) Notify(e game.Event) {
	switch e.Kind {
	case game.EventEnemyKilled, game.EventWeaponUnlocked, game.EventPlayerDied,
		game.EventSessionState, game.EventGameOver, game.EventMatchStarted:
	default:
		return
	}
	if h.Clients() == 0 {
		return
	}
	msg := EventMessage{
		Kind:    e.Kind.String(),
		Time:    e.Time,
		EnemyID: e.EnemyID,
		Amount:  e.Amount,
	}
	if e.Kind == game.EventWeaponUnlocked {
		msg.Weapon = e.Weapon.String()
	}
	switch e.Kind {
	case game.EventSessionState, game.EventGameOver, game.EventMatchStarted:
		msg.State = e.State.String()
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	h.broadcast("event", data)
}

func (h *Hub) broadcast(kind string, data []byte) {
	frame, err := json.Marshal(Message{Type: kind, Data: data})
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- frame:
			h.sent.Add(1)
		default:
			h.dropped.Add(1)
			h.dropLog.Debug().Str("type", kind).Msg("spectator slow, frame dropped")
		}
	}
}

// ServeHTTP upgrades the request and serves one spectator until it
// disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug().Err(err).Msg("upgrade failed")
		return
	}
	c := &client{conn: conn, send: make(chan []byte, h.buffer)}
	h.register(c)
	defer h.unregister(c)

	h.log.Info().Str("remote", conn.RemoteAddr().String()).Msg("spectator connected")
	if err := h.serve(r.Context(), c); err != nil {
		h.log.Debug().Err(err).Msg("spectator closed")
	}
	h.log.Info().Str("remote", conn.RemoteAddr().String()).Msg("spectator disconnected")
}

func (h *Hub) serve(ctx context.Context, c *client) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer cancel()
		return h.readLoop(c)
	})
	eg.Go(func() error {
		defer c.conn.Close()
		return h.writeLoop(ctx, c)
	})
	return eg.Wait()
}

// readLoop discards inbound frames; it exists to notice the peer closing.
func (h *Hub) readLoop(c *client) error {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}
	}
}

func (h *Hub) writeLoop(ctx context.Context, c *client) error {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
				time.Now().Add(writeTimeout))
			return nil
		case frame, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					time.Now().Add(writeTimeout))
				return nil
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return fmt.Errorf("write: %w", err)
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return fmt.Errorf("ping: %w", err)
			}
		}
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
	}
	h.mu.Unlock()
}

// CloseAll asks every spectator to go away.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	for c := range h.clients {
		delete(h.clients, c)
		c.close()
	}
	h.mu.Unlock()
}

// Run serves the hub on addr at path until ctx is cancelled.
func Run(ctx context.Context, addr, path string, h *Hub) error {
	mux := http.NewServeMux()
	mux.Handle(path, h)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		h.log.Info().Str("addr", addr).Str("path", path).Msg("spectator feed listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("spectator server: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		h.CloseAll()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return eg.Wait()
}
