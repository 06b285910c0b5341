package tracker

import (
	"sync"

	"github.com/liuhaochen/site-analytics/internal/entity"
)

// DailyBuffer holds the canonical records collected for the current calendar
// day, in arrival order. Appends are the only mutation during the day;
// Clear runs at day rotation only. A flush always works on a Snapshot, so
// concurrent appends never interleave with an in-flight write.
type DailyBuffer struct {
	mu      sync.Mutex
	records []entity.EventRecord
}

func NewDailyBuffer() *DailyBuffer {
	return &DailyBuffer{}
}

// Append adds a record and returns the new length.
func (b *DailyBuffer) Append(rec entity.EventRecord) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.records = append(b.records, rec)
	return len(b.records)
}

// Snapshot returns a copy of the buffered records.
func (b *DailyBuffer) Snapshot() []entity.EventRecord {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]entity.EventRecord, len(b.records))
	copy(out, b.records)
	return out
}

// Replace swaps in a previously persisted batch (startup recovery).
func (b *DailyBuffer) Replace(records []entity.EventRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.records = make([]entity.EventRecord, len(records))
	copy(b.records, records)
}

func (b *DailyBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.records = nil
}

func (b *DailyBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.records)
}
