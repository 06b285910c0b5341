package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/liuhaochen/site-analytics/internal/entity"
)

func newTestStore(t *testing.T) EventStore {
	t.Helper()
	store, err := NewFileEventStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	duration := 12345.0
	batch := []entity.EventRecord{
		{
			Type:         entity.EventTypePageView,
			Timestamp:    1770000000000,
			VisitorHash:  "ug60o19",
			SessionHash:  "ue2slx",
			IsNewVisitor: true,
			PagePath:     "/home",
			PageName:     "Home",
			Referrer:     "search_google",
			Hour:         9,
		},
		{
			Type:        entity.EventTypePageLeave,
			Timestamp:   1770000012345,
			VisitorHash: "ug60o19",
			SessionHash: "ue2slx",
			PagePath:    "/home",
			Referrer:    "direct",
			Duration:    &duration,
			Hour:        9,
		},
	}

	if err := store.SaveBatch(ctx, "2026-01-15", batch); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.LoadBatch(ctx, "2026-01-15")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(batch, loaded) {
		t.Errorf("round trip mismatch:\nsaved  %+v\nloaded %+v", batch, loaded)
	}
}

func TestFileStoreLoadMissingDate(t *testing.T) {
	store := newTestStore(t)

	_, err := store.LoadBatch(context.Background(), "1999-12-31")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStoreSaveReplacesBatch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := []entity.EventRecord{
		{Type: entity.EventTypePageView, VisitorHash: "uA", Referrer: "direct"},
		{Type: entity.EventTypePageView, VisitorHash: "uB", Referrer: "direct"},
	}
	second := []entity.EventRecord{
		{Type: entity.EventTypePageView, VisitorHash: "uC", Referrer: "direct"},
	}

	store.SaveBatch(ctx, "2026-01-15", first)
	store.SaveBatch(ctx, "2026-01-15", second)

	loaded, err := store.LoadBatch(ctx, "2026-01-15")
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 || loaded[0].VisitorHash != "uC" {
		t.Errorf("second save should replace the batch, got %+v", loaded)
	}
}

func TestFileStoreEmptyBatch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveBatch(ctx, "2026-01-15", nil); err != nil {
		t.Fatalf("save empty: %v", err)
	}

	loaded, err := store.LoadBatch(ctx, "2026-01-15")
	if err != nil {
		t.Fatalf("an empty batch is still a batch: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("loaded %d records from empty batch", len(loaded))
	}
}

func TestFileStoreListDatesDescending(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, date := range []string{"2026-01-01", "2026-01-03", "2026-01-02"} {
		if err := store.SaveBatch(ctx, date, nil); err != nil {
			t.Fatal(err)
		}
	}

	dates, err := store.ListDates(ctx)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"2026-01-03", "2026-01-02", "2026-01-01"}
	if !reflect.DeepEqual(dates, want) {
		t.Errorf("dates = %v, want %v", dates, want)
	}
}
