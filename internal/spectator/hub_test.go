package spectator

import (
	"context"
	"encoding/json"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cojovi/ReplitRanchDefense/internal/game"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var m Message
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestHubPublishesSnapshot(t *testing.T) {
	hub := NewHub(4, zerolog.Nop())
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)

	ts := game.NewTestSim(game.WithEnemy(game.ArchetypeBoar, 0, 0, -40))
	ts.RunTicks(3)
	hub.Publish(ts.Sim.Snapshot())

	m := readMessage(t, conn)
	assert.Equal(t, "snapshot", m.Type)

	var snap game.Snapshot
	require.NoError(t, json.Unmarshal(m.Data, &snap))
	assert.Equal(t, 3, snap.Tick)
	assert.Equal(t, "playing", snap.State)
	assert.Len(t, snap.Enemies, 1)
	assert.EqualValues(t, 1, hub.Sent())
}

func TestHubForwardsSelectedEvents(t *testing.T) {
	hub := NewHub(4, zerolog.Nop())
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)

	hub.Notify(game.Event{Kind: game.EventWeaponFired})
	hub.Notify(game.Event{Kind: game.EventWeaponUnlocked, Weapon: game.WeaponShotgun, Time: 12})

	m := readMessage(t, conn)
	assert.Equal(t, "event", m.Type)
	var ev EventMessage
	require.NoError(t, json.Unmarshal(m.Data, &ev))
	assert.Equal(t, "weapon_unlocked", ev.Kind)
	assert.Equal(t, "shotgun", ev.Weapon)
	assert.Equal(t, 12.0, ev.Time)
}

func TestHubDropsWhenClientQueueFull(t *testing.T) {
	hub := NewHub(1, zerolog.Nop())
	c := &client{send: make(chan []byte, 1)}
	hub.register(c)

	hub.broadcast("event", []byte(`{}`))
	hub.broadcast("event", []byte(`{}`))
	hub.broadcast("event", []byte(`{}`))

	assert.EqualValues(t, 1, hub.Sent())
	assert.EqualValues(t, 2, hub.Dropped())
	hub.unregister(c)
	assert.Equal(t, 0, hub.Clients())
}

func TestHubPublishWithoutClientsIsNoop(t *testing.T) {
	hub := NewHub(4, zerolog.Nop())
	hub.Publish(game.Snapshot{})
	hub.Notify(game.Event{Kind: game.EventGameOver})
	assert.Zero(t, hub.Sent())
	assert.Zero(t, hub.Dropped())
}

func TestHubUnregistersOnDisconnect(t *testing.T) {
	hub := NewHub(4, zerolog.Nop())
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)

	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	_ = conn.Close()
	require.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestRunStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	hub := NewHub(4, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, addr, "/ws", hub) }()

	require.Eventually(t, func() bool {
		conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+"/ws", nil)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
