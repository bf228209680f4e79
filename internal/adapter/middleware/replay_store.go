package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "idemp:ax:"

// record is what the replay store keeps per request id. Pending records only
// carry the body fingerprint; completed ones carry the full response.
type record struct {
	Pending     bool      `json:"pending"`
	Status      int       `json:"status,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	Body        []byte    `json:"body,omitempty"`
	BodyHash    string    `json:"body_hash"`
	RequestID   string    `json:"request_id"`
	RequestAt   time.Time `json:"request_at"`
	StoredAt    time.Time `json:"stored_at"`
}

func (r record) replayable() bool { return !r.Pending && r.Status != 0 }

func fingerprint(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// recordKey scopes a request id to one method and concrete path, so the same
// id sent to two resources never collides.
func recordKey(method, path, requestID string) string {
	return keyPrefix + strings.ToLower(method) + ":" + path + ":" + requestID
}

type replayStore struct {
	rdb     *redis.Client
	lockTTL time.Duration
}

func newReplayStore(rdb *redis.Client, lockTTL time.Duration) *replayStore {
	return &replayStore{rdb: rdb, lockTTL: lockTTL}
}

// reserve writes a pending record unless the key is taken. It reports
// whether this caller now owns the key.
func (s *replayStore) reserve(ctx context.Context, key string, r record) (bool, error) {
	r.Pending = true
	payload, err := json.Marshal(r)
	if err != nil {
		return false, err
	}
	return s.rdb.SetNX(ctx, key, payload, s.lockTTL).Result()
}

// load returns redis.Nil when the key is absent.
func (s *replayStore) load(ctx context.Context, key string) (record, error) {
	var r record
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return r, err
	}
	if err := json.Unmarshal(raw, &r); err != nil {
		return r, err
	}
	return r, nil
}

func (s *replayStore) commit(ctx context.Context, key string, r record, ttl time.Duration) error {
	r.Pending = false
	payload, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, payload, ttl).Err()
}

func (s *replayStore) release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
