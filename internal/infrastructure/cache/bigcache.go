// Package cache keeps short-lived dashboard reads in memory.
package cache

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const stampSize = 8

// Store wraps bigcache with a per-entry deadline; bigcache itself only evicts on its clean window
type Store struct {
	cache  *bigcache.BigCache
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func New(ctx context.Context, ttl time.Duration, maxSizeMB int, logger *zap.Logger) (*Store, error) {
	if ttl <= 0 {
		return nil, errors.New("cache ttl must be positive")
	}

	cfg := bigcache.DefaultConfig(ttl)
	cfg.CleanWindow = ttl
	cfg.Shards = 64
	cfg.MaxEntriesInWindow = 1024
	cfg.HardMaxCacheSize = maxSizeMB
	cfg.Verbose = false

	c, err := bigcache.New(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "creating bigcache")
	}
	return &Store{
		cache:  c,
		ttl:    ttl,
		logger: logger.With(zap.String("component", "cache")),
		now:    time.Now,
	}, nil
}

// Get returns the value while it is younger than the ttl
func (s *Store) Get(key string) ([]byte, bool) {
	raw, err := s.cache.Get(key)
	if err != nil {
		if !errors.Is(err, bigcache.ErrEntryNotFound) {
			s.logger.Debug("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(raw) < stampSize {
		return nil, false
	}

	deadline := time.Unix(0, int64(binary.BigEndian.Uint64(raw[:stampSize])))
	if !s.now().Before(deadline) {
		_ = s.cache.Delete(key)
		return nil, false
	}
	return raw[stampSize:], true
}

func (s *Store) Set(key string, value []byte) {
	entry := make([]byte, stampSize+len(value))
	binary.BigEndian.PutUint64(entry[:stampSize], uint64(s.now().Add(s.ttl).UnixNano()))
	copy(entry[stampSize:], value)

	if err := s.cache.Set(key, entry); err != nil {
		s.logger.Debug("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) Close() error {
	return s.cache.Close()
}
