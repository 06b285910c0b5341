package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/liuhaochen/site-analytics/internal/entity"
)

type postgresEventStore struct {
	db *sqlx.DB
}

// NewPostgresEventStore returns the postgres-backed batch store. Records are
// keyed by (date, seq) so a loaded batch preserves append order.
func NewPostgresEventStore(db *sqlx.DB) EventStore {
	return &postgresEventStore{db: db}
}

type eventRow struct {
	Date         string   `db:"date"`
	Seq          int      `db:"seq"`
	Type         string   `db:"event_type"`
	Timestamp    int64    `db:"timestamp"`
	VisitorHash  string   `db:"visitor_hash"`
	SessionHash  string   `db:"session_hash"`
	IsNewVisitor bool     `db:"is_new_visitor"`
	PagePath     string   `db:"page_path"`
	PageName     string   `db:"page_name"`
	Referrer     string   `db:"referrer"`
	Duration     *float64 `db:"duration"`
	Hour         int      `db:"hour"`
}

func (s *postgresEventStore) SaveBatch(ctx context.Context, date string, records []entity.EventRecord) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// SaveBatch replaces the full batch for a date.
	if _, err := tx.ExecContext(ctx, `DELETE FROM event_records WHERE date = $1`, date); err != nil {
		return fmt.Errorf("clear batch for %s: %w", date, err)
	}

	if len(records) > 0 {
		rows := make([]eventRow, 0, len(records))
		for i, rec := range records {
			rows = append(rows, eventRow{
				Date:         date,
				Seq:          i,
				Type:         rec.Type,
				Timestamp:    rec.Timestamp,
				VisitorHash:  rec.VisitorHash,
				SessionHash:  rec.SessionHash,
				IsNewVisitor: rec.IsNewVisitor,
				PagePath:     rec.PagePath,
				PageName:     rec.PageName,
				Referrer:     rec.Referrer,
				Duration:     rec.Duration,
				Hour:         rec.Hour,
			})
		}

		query := `
			INSERT INTO event_records (date, seq, event_type, timestamp, visitor_hash, session_hash, is_new_visitor, page_path, page_name, referrer, duration, hour)
			VALUES (:date, :seq, :event_type, :timestamp, :visitor_hash, :session_hash, :is_new_visitor, :page_path, :page_name, :referrer, :duration, :hour)`

		if _, err := tx.NamedExecContext(ctx, query, rows); err != nil {
			return fmt.Errorf("insert batch for %s: %w", date, err)
		}
	}

	return tx.Commit()
}

func (s *postgresEventStore) LoadBatch(ctx context.Context, date string) ([]entity.EventRecord, error) {
	var rows []eventRow
	query := `SELECT * FROM event_records WHERE date = $1 ORDER BY seq`

	if err := s.db.SelectContext(ctx, &rows, query, date); err != nil {
		return nil, fmt.Errorf("load batch for %s: %w", date, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	records := make([]entity.EventRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, entity.EventRecord{
			Type:         row.Type,
			Timestamp:    row.Timestamp,
			VisitorHash:  row.VisitorHash,
			SessionHash:  row.SessionHash,
			IsNewVisitor: row.IsNewVisitor,
			PagePath:     row.PagePath,
			PageName:     row.PageName,
			Referrer:     row.Referrer,
			Duration:     row.Duration,
			Hour:         row.Hour,
		})
	}
	return records, nil
}

func (s *postgresEventStore) ListDates(ctx context.Context) ([]string, error) {
	var dates []string
	query := `SELECT DISTINCT date FROM event_records ORDER BY date DESC`

	if err := s.db.SelectContext(ctx, &dates, query); err != nil {
		return nil, fmt.Errorf("list dates: %w", err)
	}
	return dates, nil
}
