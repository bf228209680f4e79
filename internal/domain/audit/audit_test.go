package audit

import (
	"testing"
	"time"
)

func TestMarkDeleted(t *testing.T) {
	var a Audit
	if a.IsDeleted() {
		t.Fatal("zero Audit must not be deleted")
	}

	at := time.Date(2025, 9, 6, 10, 0, 0, 0, time.FixedZone("KST", 9*3600))
	a.MarkDeleted(at)

	if !a.IsDeleted() {
		t.Fatal("expected deleted after MarkDeleted")
	}
	if a.DeletedAt.Time.Location() != time.UTC || !a.DeletedAt.Time.Equal(at) {
		t.Fatalf("deleted_at = %v, want %v in UTC", a.DeletedAt.Time, at)
	}
}
