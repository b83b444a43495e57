package audit

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestRecord_SequencesEntries(t *testing.T) {
	repo := NewMemRepo()
	svc := NewService(repo, zerolog.Nop())

	fixed := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.SetClock(func() time.Time { return fixed })

	ctx := context.Background()
	if err := svc.Record(ctx, "M-1", ActionAddStaff, "NURSE{N-1: Nina}"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := svc.Record(ctx, "M-1", ActionAllocateShift, "N-1 2025-03-10 NURSE_AM"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Seq != 1 || entries[1].Seq != 2 {
		t.Errorf("sequence = %d, %d; want 1, 2", entries[0].Seq, entries[1].Seq)
	}
	if !entries[0].At.Equal(fixed) {
		t.Errorf("timestamp = %v, want %v", entries[0].At, fixed)
	}
	if entries[1].Action != ActionAllocateShift {
		t.Errorf("action = %q", entries[1].Action)
	}
}

func TestMemRepo_ListCopies(t *testing.T) {
	repo := NewMemRepo()
	ctx := context.Background()
	_ = repo.Append(ctx, &Entry{StaffID: "M-1", Action: ActionAddWard})

	got, _ := repo.List(ctx)
	got[0] = nil
	again, _ := repo.List(ctx)
	if again[0] == nil {
		t.Fatal("List must return a copy of the backing slice")
	}
}
