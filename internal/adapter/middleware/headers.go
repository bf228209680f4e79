package middleware

import (
	"errors"
	"strconv"
	"strings"
	"time"

	id32 "loan-origination/pkg/id"

	"github.com/google/uuid"
)

var (
	errMissingRequestAt = errors.New("missing Ax-Request-At")
	errBadRequestAt     = errors.New("Ax-Request-At must be epoch (s/ms) or RFC3339 with timezone")
)

// epochMillisFloor separates epoch seconds from epoch milliseconds.
const epochMillisFloor = 1e12

// validRequestID accepts a lowercase RFC 4122 UUID (versions 1-5) or 32
// lowercase hex characters.
func validRequestID(id string) bool {
	if id == "" || id != strings.ToLower(id) {
		return false
	}
	switch len(id) {
	case id32.Len32:
		return id32.IsID32(id)
	case 36:
		u, err := uuid.Parse(id)
		if err != nil {
			return false
		}
		v := u.Version()
		return v >= 1 && v <= 5 && u.Variant() == uuid.RFC4122
	default:
		return false
	}
}

// parseRequestAt reads Ax-Request-At as epoch seconds, epoch milliseconds or
// RFC3339 with an explicit zone. Zone-less timestamps are rejected.
func parseRequestAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errMissingRequestAt
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n > epochMillisFloor {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	// RFC3339Nano also parses values without fractional seconds.
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, errBadRequestAt
	}
	return t.UTC(), nil
}

func withinSkew(at, now time.Time, skew time.Duration) bool {
	return !at.Before(now.Add(-skew)) && !at.After(now.Add(skew))
}
