package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/liuhaochen/site-analytics/internal/entity"
)

// fileEventStore keeps one <date>.json file per calendar day. The encoding
// (two-space indented JSON array) matches the historical batch files, so
// old data stays readable.
type fileEventStore struct {
	dir string
}

func NewFileEventStore(dir string) (EventStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &fileEventStore{dir: dir}, nil
}

func (s *fileEventStore) batchPath(date string) string {
	return filepath.Join(s.dir, date+".json")
}

func (s *fileEventStore) SaveBatch(ctx context.Context, date string, records []entity.EventRecord) error {
	if records == nil {
		records = []entity.EventRecord{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode batch for %s: %w", date, err)
	}

	if err := os.WriteFile(s.batchPath(date), data, 0o644); err != nil {
		return fmt.Errorf("write batch for %s: %w", date, err)
	}
	return nil
}

func (s *fileEventStore) LoadBatch(ctx context.Context, date string) ([]entity.EventRecord, error) {
	data, err := os.ReadFile(s.batchPath(date))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read batch for %s: %w", date, err)
	}

	var records []entity.EventRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode batch for %s: %w", date, err)
	}
	return records, nil
}

func (s *fileEventStore) ListDates(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list data dir: %w", err)
	}

	var dates []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		dates = append(dates, strings.TrimSuffix(name, ".json"))
	}

	// Most recent first.
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}
