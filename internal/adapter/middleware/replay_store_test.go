package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*miniredis.Miniredis, *replayStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, newReplayStore(rdb, pendingTTL)
}

func TestFingerprint(t *testing.T) {
	sum := sha256.Sum256([]byte("hello world"))
	if got := fingerprint([]byte("hello world")); got != hex.EncodeToString(sum[:]) {
		t.Fatalf("fingerprint mismatch: %s", got)
	}
	if fingerprint(nil) != fingerprint([]byte{}) {
		t.Fatal("nil and empty body must share a fingerprint")
	}
}

func TestRecordKey(t *testing.T) {
	id := strings.Repeat("a", 32)
	k := recordKey("POST", "/applications/1/terms", id)
	if want := "idemp:ax:post:/applications/1/terms:" + id; k != want {
		t.Fatalf("recordKey = %q, want %q", k, want)
	}
	if recordKey("POST", "/applications/2/terms", id) == k {
		t.Fatal("keys for different resources must differ")
	}
	if recordKey("PUT", "/applications/1/terms", id) == k {
		t.Fatal("keys for different methods must differ")
	}
}

func TestReplayStore_ReserveOnce(t *testing.T) {
	mr, s := newTestStore(t)
	ctx := context.Background()
	key := recordKey("POST", "/applications", strings.Repeat("a", 32))
	r := record{BodyHash: fingerprint([]byte(`{"a":1}`)), RequestID: strings.Repeat("a", 32), StoredAt: time.Now().UTC()}

	ok, err := s.reserve(ctx, key, r)
	if err != nil || !ok {
		t.Fatalf("first reserve: ok=%v err=%v", ok, err)
	}
	if ttl := mr.TTL(key); ttl <= 0 || ttl > pendingTTL {
		t.Fatalf("pending TTL = %v", ttl)
	}
	ok, err = s.reserve(ctx, key, r)
	if err != nil || ok {
		t.Fatalf("second reserve must lose: ok=%v err=%v", ok, err)
	}

	got, err := s.load(ctx, key)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.Pending || got.replayable() || got.BodyHash != r.BodyHash || got.RequestID != r.RequestID {
		t.Fatalf("loaded record mismatch: %+v", got)
	}
}

func TestReplayStore_CommitAndRelease(t *testing.T) {
	mr, s := newTestStore(t)
	ctx := context.Background()
	key := recordKey("POST", "/applications", strings.Repeat("b", 32))

	done := record{Pending: true, Status: 201, ContentType: "application/json", Body: []byte(`{"ok":true}`), BodyHash: "h"}
	if err := s.commit(ctx, key, done, 5*time.Second); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if ttl := mr.TTL(key); ttl <= 0 || ttl > 5*time.Second {
		t.Fatalf("final TTL = %v", ttl)
	}
	got, err := s.load(ctx, key)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Pending || !got.replayable() || got.Status != 201 || string(got.Body) != `{"ok":true}` || got.ContentType != "application/json" {
		t.Fatalf("committed record mismatch: %+v", got)
	}

	if err := s.release(ctx, key); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := s.load(ctx, key); !errors.Is(err, redis.Nil) {
		t.Fatalf("want redis.Nil after release, got %v", err)
	}
	if err := s.release(ctx, key); err != nil {
		t.Fatalf("releasing a missing key: %v", err)
	}
}

func TestReplayStore_LoadCorrupt(t *testing.T) {
	mr, s := newTestStore(t)
	if err := mr.Set("idemp:ax:post:/x:y", "not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := s.load(context.Background(), "idemp:ax:post:/x:y"); err == nil {
		t.Fatal("want decode error for corrupt record")
	}
}
