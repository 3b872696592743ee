package http

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dracma/presale/internal/domain"
)

func TestStreamHub_BroadcastsTransitions(t *testing.T) {
	ts := newTestServer(t)
	srv := httptest.NewServer(ts.handler)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool { return ts.stream.clientCount() == 1 }, time.Second, 10*time.Millisecond)

	ts.stream.Broadcast(domain.Transition{
		Operation: domain.OperationBuy,
		From:      domain.StepBuying,
		To:        domain.StepConfirming,
		State:     domain.TransactionState{Step: domain.StepConfirming},
	})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var got domain.Transition
	require.NoError(t, json.Unmarshal(msg, &got))
	assert.Equal(t, domain.OperationBuy, got.Operation)
	assert.Equal(t, domain.StepConfirming, got.To)
}

func TestStreamHub_CloseDisconnects(t *testing.T) {
	ts := newTestServer(t)
	srv := httptest.NewServer(ts.handler)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.Eventually(t, func() bool { return ts.stream.clientCount() == 1 }, time.Second, 10*time.Millisecond)

	ts.stream.Close()
	assert.Equal(t, 0, ts.stream.clientCount())

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure))
}
