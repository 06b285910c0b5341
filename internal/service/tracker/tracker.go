package tracker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/liuhaochen/site-analytics/internal/entity"
	"github.com/liuhaochen/site-analytics/internal/repository"
	"github.com/liuhaochen/site-analytics/pkg/utils"
)

const (
	// A flush is forced whenever the buffer length reaches a positive
	// multiple of this threshold.
	sizeFlushThreshold = 50

	defaultFlushInterval = 5 * time.Minute

	// Rotation runs once per day at 00:05 local time: final flush of the
	// buffer, then clear.
	rotateHour   = 0
	rotateMinute = 5
)

// ValidationError marks a raw event that is missing a required field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "missing required field: " + e.Field
}

// TrackerService normalizes raw events into privacy-safe records, buffers
// them for the current day and owns the buffer's persistence lifecycle.
type TrackerService interface {
	Track(ctx context.Context, event entity.TrackEvent) error
	Snapshot() []entity.EventRecord
	Records() int
	Today() string
	Flush(ctx context.Context) error
	LoadToday(ctx context.Context)
	Start(ctx context.Context)
}

type trackerService struct {
	store  repository.EventStore
	buffer *DailyBuffer
	loc    *time.Location
	logger *slog.Logger

	flushInterval time.Duration
	now           func() time.Time
}

func New(store repository.EventStore, loc *time.Location, logger *slog.Logger) TrackerService {
	if loc == nil {
		loc = time.Local
	}
	return &trackerService{
		store:         store,
		buffer:        NewDailyBuffer(),
		loc:           loc,
		logger:        logger,
		flushInterval: defaultFlushInterval,
		now:           time.Now,
	}
}

// normalize validates a raw event and produces its canonical record. The
// raw visitor/session identifiers are hashed away here and never stored.
func (t *trackerService) normalize(event entity.TrackEvent) (entity.EventRecord, error) {
	switch {
	case event.Type == "":
		return entity.EventRecord{}, &ValidationError{Field: "type"}
	case event.Timestamp == nil:
		return entity.EventRecord{}, &ValidationError{Field: "timestamp"}
	case event.VisitorID == "":
		return entity.EventRecord{}, &ValidationError{Field: "visitorId"}
	case event.SessionID == "":
		return entity.EventRecord{}, &ValidationError{Field: "sessionId"}
	}

	referrer := event.Referrer
	if referrer == "" {
		referrer = "direct"
	}

	ts := *event.Timestamp

	return entity.EventRecord{
		Type:         event.Type,
		Timestamp:    ts,
		VisitorHash:  utils.HashID(event.VisitorID),
		SessionHash:  utils.HashID(event.SessionID),
		IsNewVisitor: event.IsNewVisitor,
		PagePath:     event.PagePath,
		PageName:     event.PageName,
		Referrer:     referrer,
		Duration:     event.Duration,
		Hour:         time.UnixMilli(ts).In(t.loc).Hour(),
	}, nil
}

// Track appends a normalized record to the daily buffer. Every
// sizeFlushThreshold-th record forces a flush; a failed flush is logged and
// does not fail the request, the record stays buffered for the next trigger.
func (t *trackerService) Track(ctx context.Context, event entity.TrackEvent) error {
	rec, err := t.normalize(event)
	if err != nil {
		return err
	}

	n := t.buffer.Append(rec)
	if n%sizeFlushThreshold == 0 {
		if err := t.Flush(ctx); err != nil {
			t.logger.Error("size-triggered flush failed", slog.Any("error", err))
		}
	}
	return nil
}

func (t *trackerService) Snapshot() []entity.EventRecord {
	return t.buffer.Snapshot()
}

func (t *trackerService) Records() int {
	return t.buffer.Len()
}

func (t *trackerService) Today() string {
	return utils.DateString(t.now(), t.loc)
}

// Flush writes a snapshot of the buffer as today's batch, replacing any
// previous write for the date. The buffer itself is untouched.
func (t *trackerService) Flush(ctx context.Context) error {
	records := t.buffer.Snapshot()
	date := t.Today()

	if err := t.store.SaveBatch(ctx, date, records); err != nil {
		return err
	}

	t.logger.Info("daily batch saved",
		slog.String("date", date),
		slog.Int("records", len(records)))
	return nil
}

// LoadToday restores today's persisted batch into the buffer, making the
// buffer resilient to restarts within the same day. Records appended after
// the last flush before a restart are lost, by design.
func (t *trackerService) LoadToday(ctx context.Context) {
	date := t.Today()

	records, err := t.store.LoadBatch(ctx, date)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			t.logger.Warn("could not load today's batch, starting empty",
				slog.String("date", date),
				slog.Any("error", err))
		}
		return
	}

	t.buffer.Replace(records)
	t.logger.Info("loaded today's records",
		slog.String("date", date),
		slog.Int("records", len(records)))
}

// Start runs the periodic flush and the day-rotation timer until ctx is
// cancelled. Rotation uses a computed next-deadline single-shot timer that
// is re-armed after each firing, not wall-clock polling.
func (t *trackerService) Start(ctx context.Context) {
	ticker := time.NewTicker(t.flushInterval)
	defer ticker.Stop()

	rotation := time.NewTimer(nextRotation(t.now(), t.loc).Sub(t.now()))
	defer rotation.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if t.buffer.Len() == 0 {
				continue
			}
			if err := t.Flush(ctx); err != nil {
				t.logger.Error("periodic flush failed", slog.Any("error", err))
			}
		case <-rotation.C:
			t.rotate(ctx)
			rotation.Reset(nextRotation(t.now(), t.loc).Sub(t.now()))
		}
	}
}

// rotate performs the day-boundary flush-and-clear. Clearing only happens
// after a successful flush so a storage outage never loses the buffer; the
// next trigger retries.
func (t *trackerService) rotate(ctx context.Context) {
	if err := t.Flush(ctx); err != nil {
		t.logger.Error("rotation flush failed, keeping buffer", slog.Any("error", err))
		return
	}

	t.buffer.Clear()
	t.logger.Info("new day, buffer reset", slog.String("date", t.Today()))
}

// nextRotation returns the next rotation deadline strictly after now.
func nextRotation(now time.Time, loc *time.Location) time.Time {
	now = now.In(loc)
	next := time.Date(now.Year(), now.Month(), now.Day(), rotateHour, rotateMinute, 0, 0, loc)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
