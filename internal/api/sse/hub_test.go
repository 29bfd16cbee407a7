package sse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/othello/internal/model"
	"github.com/mcoot/othello/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "move-played",
			data:      `{"type":"move-played"}`,
			expected:  "event: move-played\ndata: {\"type\":\"move-played\"}\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "board",
			data:      "........\n...WB...\n...BW...",
			expected:  "event: board\ndata: ........\ndata: ...WB...\ndata: ...BW...\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "data with carriage returns",
			eventName: "test",
			data:      "line1\r\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(formatSSEMessage(tt.eventName, tt.data)))
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"single line", "hello", []string{"hello"}},
		{"two lines", "line1\nline2", []string{"line1", "line2"}},
		{"trailing newline", "line1\n", []string{"line1"}},
		{"empty string", "", []string{""}},
		{"crlf line endings", "line1\r\nline2\r\n", []string{"line1", "line2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitLines(tt.input))
		})
	}
}

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub("game-1", testutil.NopLogger())
	go hub.Run()
	t.Cleanup(hub.Close)
	return hub
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n },
		time.Second, 5*time.Millisecond, "expected %d clients", n)
}

func receive(t *testing.T, client *Client) string {
	t.Helper()
	select {
	case msg := <-client.send:
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("client did not receive message")
		return ""
	}
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := newTestHub(t)

	client := NewClient(hub, "127.0.0.1:1")
	require.True(t, hub.Register(client))
	waitForClients(t, hub, 1)

	hub.BroadcastEvent("test-event", "test data")

	assert.Equal(t, "event: test-event\ndata: test data\n\n", receive(t, client))
}

func TestHub_Unregister(t *testing.T) {
	hub := newTestHub(t)

	client := NewClient(hub, "127.0.0.1:1")
	hub.Register(client)
	waitForClients(t, hub, 1)

	hub.Unregister(client)
	waitForClients(t, hub, 0)

	// The send channel is closed once unregistered
	_, ok := <-client.send
	assert.False(t, ok)
}

func TestHub_BroadcastToMultipleClients(t *testing.T) {
	hub := newTestHub(t)

	clients := []*Client{
		NewClient(hub, "127.0.0.1:1"),
		NewClient(hub, "127.0.0.1:2"),
		NewClient(hub, "127.0.0.1:3"),
	}
	for _, c := range clients {
		hub.Register(c)
	}
	waitForClients(t, hub, 3)

	hub.BroadcastEvent("update", "data")

	for _, c := range clients {
		assert.Equal(t, "event: update\ndata: data\n\n", receive(t, c))
	}
}

func TestHub_RegisterAfterClose(t *testing.T) {
	hub := NewHub("game-1", testutil.NopLogger())
	hub.Close()

	assert.False(t, hub.Register(NewClient(hub, "127.0.0.1:1")))
}

func TestHubManager_GetOrCreateHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	hub1 := manager.GetOrCreateHub("game-1")
	require.NotNil(t, hub1)

	assert.Same(t, hub1, manager.GetOrCreateHub("game-1"))
	assert.NotSame(t, hub1, manager.GetOrCreateHub("game-2"))
	assert.Equal(t, 2, manager.HubCount())

	manager.RemoveHub("game-1")
	manager.RemoveHub("game-2")
	assert.Equal(t, 0, manager.HubCount())
}

func TestHubManager_GetHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	assert.Nil(t, manager.GetHub("missing"))

	created := manager.GetOrCreateHub("game-1")
	assert.Same(t, created, manager.GetHub("game-1"))

	manager.RemoveHub("game-1")
	assert.Nil(t, manager.GetHub("game-1"))

	// Removing non-existent hub should not panic
	manager.RemoveHub("missing")
}

func TestHubManager_CleanupEmptyHubs(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	manager.GetOrCreateHub(model.GameID("empty"))

	active := manager.GetOrCreateHub(model.GameID("active"))
	active.Register(NewClient(active, "127.0.0.1:1"))
	waitForClients(t, active, 1)

	manager.CleanupEmptyHubs()

	assert.Nil(t, manager.GetHub("empty"))
	assert.NotNil(t, manager.GetHub("active"))

	manager.RemoveHub("active")
}

func TestHubManager_CloseAll(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	hub := manager.GetOrCreateHub(model.GameID("g1"))
	client := NewClient(hub, "127.0.0.1:1")
	require.True(t, hub.Register(client))
	waitForClients(t, hub, 1)
	manager.GetOrCreateHub(model.GameID("g2"))

	manager.CloseAll()

	assert.Zero(t, manager.HubCount())
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-client.send:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}

func TestHubManager_RunCleanup(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	manager.GetOrCreateHub(model.GameID("idle"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		manager.RunCleanup(ctx, 10*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return manager.HubCount() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunCleanup did not stop after cancel")
	}
}
