package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/liuhaochen/site-analytics/config"
	"github.com/liuhaochen/site-analytics/internal/entity"
)

// ErrNotFound signals that no batch exists for the requested date.
var ErrNotFound = errors.New("no data for the requested date")

// EventStore is the durable system of record for per-day batches of
// canonical records. SaveBatch replaces the whole batch for a date.
type EventStore interface {
	SaveBatch(ctx context.Context, date string, records []entity.EventRecord) error
	LoadBatch(ctx context.Context, date string) ([]entity.EventRecord, error)
	ListDates(ctx context.Context) ([]string, error)
}

func NewRepository(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		log.Println("❌ Error connecting to database:", err)
		return nil, err
	}

	err = db.Ping()
	if err != nil {
		log.Println("❌ Error pinging database:", err)
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("✅ Connected to database")

	return db, nil
}
