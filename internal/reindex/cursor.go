// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reindex

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/catalogsync/sir/internal/platform/constants"
)

// CursorStore persists the bulk reindex driver's resume position per core,
// so a restarted run skips primary keys already materialized instead of
// starting over.
type CursorStore interface {
	Load(ctx context.Context, core string) (lastPK int64, ok bool, err error)
	Save(ctx context.Context, core string, lastPK int64) error
}

// RedisCursorStore implements [CursorStore] against the shared Redis client.
type RedisCursorStore struct {
	client *redis.Client
}

// NewRedisCursorStore wraps client as a [CursorStore].
func NewRedisCursorStore(client *redis.Client) *RedisCursorStore {
	return &RedisCursorStore{client: client}
}

// Load returns the last primary key successfully processed for core, or
// ok=false if no run has ever advanced its cursor.
func (s *RedisCursorStore) Load(ctx context.Context, core string) (int64, bool, error) {
	key := constants.RedisPrefixCursor + core

	raw, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("reindex: cursor load failed: %w", err)
	}

	pk, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("reindex: cursor value %q unparseable: %w", raw, err)
	}

	return pk, true, nil
}

// Save records lastPK as core's new resume position. The cursor has no
// TTL: a bulk run may legitimately resume days after its last window.
func (s *RedisCursorStore) Save(ctx context.Context, core string, lastPK int64) error {
	key := constants.RedisPrefixCursor + core

	if err := s.client.Set(ctx, key, lastPK, 0).Err(); err != nil {
		return fmt.Errorf("reindex: cursor save failed: %w", err)
	}

	return nil
}
