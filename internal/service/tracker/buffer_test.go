package tracker

import (
	"testing"

	"github.com/liuhaochen/site-analytics/internal/entity"
)

func TestBufferAppendReturnsLength(t *testing.T) {
	b := NewDailyBuffer()
	for i := 1; i <= 5; i++ {
		if n := b.Append(entity.EventRecord{Type: entity.EventTypePageView}); n != i {
			t.Fatalf("append %d returned %d", i, n)
		}
	}
	if b.Len() != 5 {
		t.Errorf("len = %d, want 5", b.Len())
	}
}

func TestBufferSnapshotIsolation(t *testing.T) {
	b := NewDailyBuffer()
	b.Append(entity.EventRecord{VisitorHash: "uA"})

	snap := b.Snapshot()
	snap[0].VisitorHash = "mutated"

	if got := b.Snapshot()[0].VisitorHash; got != "uA" {
		t.Errorf("buffer mutated through snapshot: %q", got)
	}
}

func TestBufferClear(t *testing.T) {
	b := NewDailyBuffer()
	b.Append(entity.EventRecord{})
	b.Append(entity.EventRecord{})
	b.Clear()
	if b.Len() != 0 {
		t.Errorf("len after clear = %d", b.Len())
	}
}

func TestBufferReplace(t *testing.T) {
	b := NewDailyBuffer()
	b.Append(entity.EventRecord{VisitorHash: "old"})

	b.Replace([]entity.EventRecord{{VisitorHash: "uA"}, {VisitorHash: "uB"}})
	if b.Len() != 2 {
		t.Fatalf("len = %d, want 2", b.Len())
	}
	if b.Snapshot()[0].VisitorHash != "uA" {
		t.Errorf("replace order lost: %+v", b.Snapshot())
	}
}
