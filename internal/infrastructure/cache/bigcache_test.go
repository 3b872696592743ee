package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestStore_GetSet(t *testing.T) {
	s, err := New(context.Background(), 15*time.Second, 8, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, ok := s.Get("presale:status")
	assert.False(t, ok)

	s.Set("presale:status", []byte(`{"paused":false}`))
	v, ok := s.Get("presale:status")
	require.True(t, ok)
	assert.JSONEq(t, `{"paused":false}`, string(v))
}

func TestStore_Expires(t *testing.T) {
	s, err := New(context.Background(), 15*time.Second, 8, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	now := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	s.Set("k", []byte("v"))

	now = now.Add(14 * time.Second)
	_, ok := s.Get("k")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok = s.Get("k")
	assert.False(t, ok)
}

func TestNew_RejectsZeroTTL(t *testing.T) {
	_, err := New(context.Background(), 0, 8, zaptest.NewLogger(t))
	assert.Error(t, err)
}
