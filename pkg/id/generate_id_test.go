package id

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewID32(t *testing.T) {
	got := NewID32()
	if !IsID32(got) {
		t.Fatalf("NewID32 = %q, not 32 lowercase hex", got)
	}
	u, err := uuid.Parse(got)
	if err != nil {
		t.Fatalf("uuid.Parse: %v", err)
	}
	if u.Version() != 4 {
		t.Fatalf("uuid version = %d, want 4", u.Version())
	}
}

func TestNewID32_Unique(t *testing.T) {
	seen := make(map[string]bool, 200)
	for i := 0; i < 200; i++ {
		s := NewID32()
		if seen[s] {
			t.Fatalf("duplicate id after %d draws: %q", i, s)
		}
		seen[s] = true
	}
}

func TestIsID32(t *testing.T) {
	tests := map[string]bool{
		strings.Repeat("0", 32):              true,
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88":   true,
		strings.Repeat("A", 32):              false,
		strings.Repeat("g", 32):              false,
		strings.Repeat("a", 31):              false,
		strings.Repeat("a", 33):              false,
		"":                                   false,
		"3f9a6a1b-3d54-4fbe-8b3a-6b3e8d6b2c": false,
	}
	for in, want := range tests {
		if got := IsID32(in); got != want {
			t.Fatalf("IsID32(%q) = %v, want %v", in, got, want)
		}
	}
}
