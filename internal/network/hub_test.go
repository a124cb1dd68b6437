package network

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Deimvis/MafiaGame/internal/platform/logger"
	"github.com/Deimvis/MafiaGame/internal/room"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	rules := room.GameRules{ActivePlayersNumber: 4, MafiaNumber: 1, SheriffNumber: 1}
	rm := room.NewRoom(rules, logger.NewNop())
	return NewHub(rm, logger.NewNop())
}

func TestUnregisterLeavesSendQueueOpen(t *testing.T) {
	h := newTestHub(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	c := NewClient(h, nil, "alice")
	h.register <- c
	h.unregister <- c

	// The view stream may still be mid-emission when the hub forgets the
	// client; queueing a frame afterwards must never panic.
	require.NotPanics(t, func() { c.send <- []byte(`{"status":"waiting_for_players"}`) })
}

func TestDetachDoesNotBlockAfterShutdown(t *testing.T) {
	h := newTestHub(t)
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	cancel()
	<-h.done

	c := NewClient(h, nil, "alice")
	finished := make(chan struct{})
	go func() {
		c.detach()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("detach blocked after the hub shut down")
	}
}
