package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	applicationDomain "loan-origination/internal/domain/application"
	"loan-origination/internal/testutil/dbtest"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func makeApplication(name string) *applicationDomain.Application {
	return &applicationDomain.Application{
		Name:       name,
		CellPhone:  "010-1111-2222",
		Email:      "mail@abcd.efg",
		HopeAmount: decimal.NewFromInt(50_000_000),
		Status:     applicationDomain.StatusApplied,
		AppliedAt:  time.Now().UTC(),
	}
}

func TestApplication_CreateAndGetByID(t *testing.T) {
	repo := NewApplicationRepository(dbtest.Open(t))
	ctx := context.Background()

	a := makeApplication("Member Kim")
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}
	if a.CreatedAt.IsZero() {
		t.Fatalf("created_at not filled")
	}

	got, err := repo.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "Member Kim" || got.CellPhone != a.CellPhone || got.Email != a.Email {
		t.Errorf("unexpected application: %+v", got)
	}
	if !got.HopeAmount.Equal(a.HopeAmount) {
		t.Errorf("hope_amount = %s, want %s", got.HopeAmount, a.HopeAmount)
	}
	if got.Status != applicationDomain.StatusApplied {
		t.Errorf("status = %s", got.Status)
	}
}

func TestApplication_GetByID_NotFound(t *testing.T) {
	repo := NewApplicationRepository(dbtest.Open(t))

	_, err := repo.GetByID(context.Background(), 9999)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestApplication_SoftDeletedIsInvisible(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	keep := makeApplication("Keep")
	gone := makeApplication("Gone")
	for _, a := range []*applicationDomain.Application{keep, gone} {
		if err := repo.Create(ctx, a); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	gone.MarkDeleted(time.Now())
	if err := repo.Save(ctx, gone); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := repo.GetByID(ctx, gone.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("soft-deleted row visible through GetByID: %v", err)
	}
	if _, err := repo.GetByIDForUpdate(ctx, gone.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("soft-deleted row visible through GetByIDForUpdate: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].ID != keep.ID {
		t.Fatalf("List = %+v, want only %d", list, keep.ID)
	}

	// row is still physically present
	var raw applicationDomain.Application
	if err := db.Unscoped().Where("id = ?", gone.ID).First(&raw).Error; err != nil {
		t.Fatalf("row physically removed: %v", err)
	}
	if !raw.IsDeleted() {
		t.Fatalf("deleted flag not persisted")
	}
}

func TestApplication_SaveUpdates(t *testing.T) {
	repo := NewApplicationRepository(dbtest.Open(t))
	ctx := context.Background()

	a := makeApplication("Before")
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}

	a.Name = "After"
	a.HopeAmount = decimal.RequireFromString("1234.50")
	if err := repo.Save(ctx, a); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Name != "After" {
		t.Errorf("name not updated: %q", got.Name)
	}
	if !got.HopeAmount.Equal(decimal.RequireFromString("1234.5")) {
		t.Errorf("hope_amount = %s", got.HopeAmount)
	}
}
