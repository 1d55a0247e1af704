package repository

import (
	"context"
	"database/sql"
	"time"

	"field_station/internal/models"
	"field_station/internal/repository/db"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

type StateRepo interface {
	Save(ctx context.Context, rec models.CollectedRecord) error
	Load(ctx context.Context) (models.CollectedRecord, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.StationEvent) error
	List(ctx context.Context, from, to time.Time, typ string, limit int) ([]models.StationEvent, error)
}

// RecordStore is the append-only archive of collected records.
type RecordStore interface {
	Ensure() error
	Append(rec models.CollectedRecord) error
	Recent(limit int) ([]models.CollectedRecord, error)
}

// RecordMirror forwards each collected record to a secondary sink.
type RecordMirror interface {
	Publish(ctx context.Context, rec models.CollectedRecord) error
	Close()
}

type Repository struct {
	StateRepo StateRepo
	EventRepo EventRepo
	Auth      Authorization
	Records   RecordStore
}

func NewRepository(sqlDB *sql.DB, csvPath string) *Repository {
	return &Repository{
		StateRepo: NewStateSQLite(sqlDB),
		EventRepo: NewEventSQLite(sqlDB),
		Auth:      NewUserRepository(sqlDB),
		Records:   NewCSVRecordStore(csvPath),
	}
}

// InitDB opens the SQLite database and applies the schema.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
