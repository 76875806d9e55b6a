package repo

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/roamwyth/backend/internal/domain"
)

// DefaultPreferencesTTL is how long a cached preferences entry lives.
const DefaultPreferencesTTL = 10 * time.Minute

// cachedPreferencesStore is a read-through Redis cache in front of another
// PreferencesStore. Redis failures are logged and fall through to the
// backing store; they never fail a request.
type cachedPreferencesStore struct {
	next PreferencesStore
	rdb  *redis.Client
	ttl  time.Duration
}

// NewCachedPreferencesStore wraps next with a Redis cache. A nil client
// returns next unchanged.
func NewCachedPreferencesStore(next PreferencesStore, rdb *redis.Client, ttl time.Duration) PreferencesStore {
	if rdb == nil {
		return next
	}
	if ttl <= 0 {
		ttl = DefaultPreferencesTTL
	}
	return &cachedPreferencesStore{next: next, rdb: rdb, ttl: ttl}
}

func preferencesKey(userID uuid.UUID) string {
	return "roamwyth:prefs:" + userID.String()
}

func (s *cachedPreferencesStore) Load(ctx context.Context, userID uuid.UUID) (domain.ViewPreferences, error) {
	key := preferencesKey(userID)

	raw, err := s.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var prefs domain.ViewPreferences
		if err := json.Unmarshal(raw, &prefs); err == nil {
			return prefs, nil
		}
		slog.WarnContext(ctx, "preferences cache: dropping undecodable entry", "key", key)
	case !errors.Is(err, redis.Nil):
		slog.WarnContext(ctx, "preferences cache: get failed", "key", key, "error", err)
	}

	prefs, err := s.next.Load(ctx, userID)
	if err != nil {
		return domain.ViewPreferences{}, err
	}

	if b, err := json.Marshal(prefs); err == nil {
		if err := s.rdb.Set(ctx, key, b, s.ttl).Err(); err != nil {
			slog.WarnContext(ctx, "preferences cache: set failed", "key", key, "error", err)
		}
	}
	return prefs, nil
}

// Save writes through to the backing store, then drops the cached entry so
// the next Load sees the new value. A failed invalidation is logged; the
// stale entry expires with its TTL.
func (s *cachedPreferencesStore) Save(ctx context.Context, userID uuid.UUID, prefs domain.ViewPreferences) error {
	if err := s.next.Save(ctx, userID, prefs); err != nil {
		return err
	}
	key := preferencesKey(userID)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		slog.WarnContext(ctx, "preferences cache: invalidate failed", "key", key, "error", err)
	}
	return nil
}
