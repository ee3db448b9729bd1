package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"invoicehero/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSnapshotRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, _, err := repo.Snapshot(ctx, "balance", "fp-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing snapshot err = %v, want ErrNotFound", err)
	}

	payload := []byte(`[{"_id":"Paid","sum":250}]`)
	if err := repo.SaveSnapshot(ctx, "balance", "fp-1", payload); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	got, fetchedAt, err := repo.Snapshot(ctx, "balance", "fp-1")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("payload = %s, want %s", got, payload)
	}
	if time.Since(fetchedAt) > time.Minute {
		t.Errorf("fetchedAt = %v, not recent", fetchedAt)
	}

	// Upsert replaces in place.
	if err := repo.SaveSnapshot(ctx, "balance", "fp-1", []byte(`[]`)); err != nil {
		t.Fatalf("SaveSnapshot upsert: %v", err)
	}
	got, _, err = repo.Snapshot(ctx, "balance", "fp-1")
	if err != nil {
		t.Fatalf("Snapshot after upsert: %v", err)
	}
	if string(got) != `[]` {
		t.Errorf("payload after upsert = %s, want []", got)
	}
}

func TestSnapshotKeyedBySliceAndFingerprint(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	repo.SaveSnapshot(ctx, "balance", "fp-1", []byte(`1`))
	repo.SaveSnapshot(ctx, "balance", "fp-2", []byte(`2`))
	repo.SaveSnapshot(ctx, "clients", "fp-1", []byte(`3`))

	got, _, err := repo.Snapshot(ctx, "clients", "fp-1")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if string(got) != `3` {
		t.Errorf("payload = %s, want 3", got)
	}
}

func TestPruneSnapshots(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	repo.SaveSnapshot(ctx, "balance", "fp-1", []byte(`1`))
	repo.SaveSnapshot(ctx, "balance", "fp-2", []byte(`2`))

	n, err := repo.PruneSnapshots(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("PruneSnapshots: %v", err)
	}
	if n != 2 {
		t.Errorf("pruned = %d, want 2", n)
	}
	if _, _, err := repo.Snapshot(ctx, "balance", "fp-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("snapshot survived prune: %v", err)
	}
}

func TestDraftRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	draft := core.NewDraft()
	draft.CategoryID = "cat-1"
	draft.SetItems([]core.ItemDraft{{Description: "design", Rate: "80", Hours: "5"}})
	draft.SetDiscountRate("10")

	if err := repo.SaveDraft(ctx, "acme-march", draft); err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}

	restored, err := repo.Draft(ctx, "acme-march")
	if err != nil {
		t.Fatalf("Draft: %v", err)
	}
	if restored.SubTotal != 400 || restored.Discount != "40" || restored.Total != 360 {
		t.Errorf("restored draft = SubTotal %v Discount %q Total %v",
			restored.SubTotal, restored.Discount, restored.Total)
	}

	infos, err := repo.Drafts(ctx)
	if err != nil {
		t.Fatalf("Drafts: %v", err)
	}
	if len(infos) != 1 || infos[0].Name != "acme-march" {
		t.Errorf("Drafts = %+v", infos)
	}

	if err := repo.DeleteDraft(ctx, "acme-march"); err != nil {
		t.Fatalf("DeleteDraft: %v", err)
	}
	if _, err := repo.Draft(ctx, "acme-march"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted draft err = %v, want ErrNotFound", err)
	}

	// Deleting again is fine.
	if err := repo.DeleteDraft(ctx, "acme-march"); err != nil {
		t.Fatalf("DeleteDraft twice: %v", err)
	}
}
