package middleware

import (
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestValidRequestID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c88", true},
		{"3f9a6a1b-3d54-1fbe-8b3a-6b3e8d6b2c88", true},
		{strings.Repeat("a", 32), true},
		{"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88", true},
		{"", false},
		{strings.Repeat("A", 32), false},
		{"3F9A6A1B-3D54-4FBE-8B3A-6B3E8D6B2C88", false},
		{"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8", false},
		{"3f9a6a1b3d544fbe8b3a6b3e8d6b2c880", false},
		{strings.Repeat("z", 32), false},
		{"3f9a6a1b-3d54-9fbe-8b3a-6b3e8d6b2c88", false}, // version 9
		{"3f9a6a1b-3d54-4fbe-cb3a-6b3e8d6b2c88", false}, // microsoft variant
		{"{3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c8}", false},
	}
	for _, tt := range tests {
		if got := validRequestID(tt.id); got != tt.want {
			t.Fatalf("validRequestID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestParseRequestAt(t *testing.T) {
	sec := time.Now().UTC().Unix()
	ms := time.Now().UTC().UnixMilli()
	threeUTC := time.Date(2025, 9, 5, 3, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"epoch seconds", strconv.FormatInt(sec, 10), time.Unix(sec, 0).UTC()},
		{"epoch millis", strconv.FormatInt(ms, 10), time.UnixMilli(ms).UTC()},
		{"rfc3339 offset", "2025-09-05T10:00:00+07:00", threeUTC},
		{"rfc3339 zulu", "2025-09-05T03:00:00Z", threeUTC},
		{"rfc3339 nano", "2025-09-05T03:00:00.250Z", threeUTC.Add(250 * time.Millisecond)},
		{"padded", "  2025-09-05T03:00:00Z ", threeUTC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRequestAt(tt.raw)
			if err != nil {
				t.Fatalf("parseRequestAt(%q): %v", tt.raw, err)
			}
			if !got.Equal(tt.want) || got.Location() != time.UTC {
				t.Fatalf("got %v want %v (UTC)", got, tt.want)
			}
		})
	}
}

func TestParseRequestAt_Rejects(t *testing.T) {
	tests := map[string]error{
		"":                    errMissingRequestAt,
		"   ":                 errMissingRequestAt,
		"not-a-time":          errBadRequestAt,
		"2025-09-05T10:00:00": errBadRequestAt,
		"1736123456abc":       errBadRequestAt,
	}
	for raw, want := range tests {
		if _, err := parseRequestAt(raw); err != want {
			t.Fatalf("parseRequestAt(%q) err = %v, want %v", raw, err, want)
		}
	}
}

func TestWithinSkew(t *testing.T) {
	now := time.Date(2025, 9, 5, 3, 0, 0, 0, time.UTC)
	tests := []struct {
		at   time.Time
		want bool
	}{
		{now, true},
		{now.Add(-maxClockSkew), true},
		{now.Add(maxClockSkew), true},
		{now.Add(-maxClockSkew - time.Second), false},
		{now.Add(maxClockSkew + time.Second), false},
	}
	for _, tt := range tests {
		if got := withinSkew(tt.at, now, maxClockSkew); got != tt.want {
			t.Fatalf("withinSkew(%v) = %v, want %v", tt.at, got, tt.want)
		}
	}
}
