package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	HeaderRequestID = "Ax-Request-Id"
	HeaderRequestAt = "Ax-Request-At"
	// HeaderReplay is set on responses served from the replay store.
	HeaderReplay = "Ax-Idempotent-Replay"

	// pendingTTL bounds how long a crashed handler can block its request id.
	pendingTTL   = 60 * time.Second
	maxClockSkew = 10 * time.Minute
	storeTimeout = 2 * time.Second
)

type respRecorder struct {
	w    http.ResponseWriter
	buf  bytes.Buffer
	code int
}

func (r *respRecorder) Header() http.Header { return r.w.Header() }

func (r *respRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.w.Write(b)
}

func (r *respRecorder) WriteHeader(statusCode int) {
	r.code = statusCode
	r.w.WriteHeader(statusCode)
}

func (r *respRecorder) Unwrap() http.ResponseWriter { return r.w }

// IdempotencyMiddleware deduplicates POST, PUT, PATCH and DELETE requests
// that carry Ax-Request-Id. Requests without the header pass through.
//
// The first request for a key reserves it, runs the handler and stores the
// response for ttl. A repeat with the same body replays the stored response;
// a different body, or a repeat while the first is still running, is 409.
// Server errors release the key so the client may retry.
func IdempotencyMiddleware(rdb *redis.Client, ttl time.Duration, log *zap.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("idempotency")
	store := newReplayStore(rdb, pendingTTL)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			default:
				return next(c)
			}

			reqID := strings.TrimSpace(req.Header.Get(HeaderRequestID))
			if reqID == "" {
				return next(c)
			}
			if !validRequestID(reqID) {
				return echo.NewHTTPError(http.StatusBadRequest, "invalid Ax-Request-Id format")
			}
			reqAt, err := parseRequestAt(req.Header.Get(HeaderRequestAt))
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, err.Error())
			}
			now := time.Now().UTC()
			if !withinSkew(reqAt, now, maxClockSkew) {
				return echo.NewHTTPError(http.StatusBadRequest, "Ax-Request-At too skewed")
			}

			var body []byte
			if req.Body != nil {
				if body, err = io.ReadAll(req.Body); err != nil {
					return err
				}
			}
			req.Body = io.NopCloser(bytes.NewReader(body))

			key := recordKey(req.Method, req.URL.Path, reqID)
			rec := record{BodyHash: fingerprint(body), RequestID: reqID, RequestAt: reqAt, StoredAt: now}

			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			defer cancel()
			owned, err := store.reserve(ctx, key, rec)
			if err != nil {
				log.Warn("idempotency store unavailable", zap.String("key", key), zap.Error(err))
				return echo.NewHTTPError(http.StatusServiceUnavailable, "idempotency store unavailable")
			}
			if !owned {
				return store.replay(ctx, c, key, rec.BodyHash, log)
			}

			rw := &respRecorder{w: c.Response().Writer, code: http.StatusOK}
			c.Response().Writer = rw
			if err := next(c); err != nil {
				c.Error(err)
			}

			// the request context may already be cancelled
			bg, bgCancel := context.WithTimeout(context.Background(), storeTimeout)
			defer bgCancel()

			if rw.code >= http.StatusInternalServerError {
				if err := store.release(bg, key); err != nil {
					log.Warn("release idempotency key", zap.String("key", key), zap.Error(err))
				}
				return nil
			}
			rec.Status = rw.code
			rec.ContentType = rw.Header().Get(echo.HeaderContentType)
			rec.Body = rw.buf.Bytes()
			rec.StoredAt = time.Now().UTC()
			if err := store.commit(bg, key, rec, ttl); err != nil {
				log.Warn("save idempotency record", zap.String("key", key), zap.Error(err))
			}
			return nil
		}
	}
}

// replay answers a request whose key is already taken.
func (s *replayStore) replay(ctx context.Context, c echo.Context, key, bodyHash string, log *zap.Logger) error {
	prev, err := s.load(ctx, key)
	switch {
	case errors.Is(err, redis.Nil):
		// released between reserve and load
		return echo.NewHTTPError(http.StatusConflict, "request is already in progress")
	case err != nil:
		log.Warn("load idempotency record", zap.String("key", key), zap.Error(err))
		return echo.NewHTTPError(http.StatusConflict, "request is already in progress")
	}
	if prev.BodyHash != bodyHash {
		return echo.NewHTTPError(http.StatusConflict, "Ax-Request-Id reused with different body")
	}
	if !prev.replayable() {
		return echo.NewHTTPError(http.StatusConflict, "request is already in progress")
	}
	ct := prev.ContentType
	if ct == "" {
		ct = echo.MIMEApplicationJSONCharsetUTF8
	}
	c.Response().Header().Set(HeaderReplay, "true")
	return c.Blob(prev.Status, ct, prev.Body)
}
