package service

import (
	"context"
	"time"

	"field_station/internal/models"
	"field_station/internal/repository"
)

type MonitoringService struct {
	stateRepo repository.StateRepo
	records   repository.RecordStore
}

func NewMonitoringService(stateRepo repository.StateRepo, records repository.RecordStore) *MonitoringService {
	return &MonitoringService{stateRepo: stateRepo, records: records}
}

// Latest returns the most recent collected record. If nothing has been
// collected yet, the zero record is returned with a zero timestamp.
func (s *MonitoringService) Latest(ctx context.Context) (models.CollectedRecord, error) {
	rec, err := s.stateRepo.Load(ctx)
	if err != nil {
		return models.CollectedRecord{}, err
	}
	rec.CollectedAt = toUTC(rec.CollectedAt)
	return rec, nil
}

// Recent returns up to q.Limit archived records, oldest first.
func (s *MonitoringService) Recent(ctx context.Context, q RecordQuery) ([]models.CollectedRecord, error) {
	q = q.normalize()
	return s.records.Recent(q.Limit)
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
