// internal/service/monitoring_latest_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"field_station/internal/models"
)

// monitoringStateRepoStub is a local, uniquely named test stub that satisfies repository.StateRepo.
type monitoringStateRepoStub struct {
	loadResp   models.CollectedRecord
	loadErr    error
	saveErr    error
	savedCalls []models.CollectedRecord
}

func (s *monitoringStateRepoStub) Load(ctx context.Context) (models.CollectedRecord, error) {
	return s.loadResp, s.loadErr
}

func (s *monitoringStateRepoStub) Save(ctx context.Context, rec models.CollectedRecord) error {
	s.savedCalls = append(s.savedCalls, rec)
	return s.saveErr
}

// monitoringRecordStoreStub satisfies repository.RecordStore and captures the limit it was asked for.
type monitoringRecordStoreStub struct {
	recentResp []models.CollectedRecord
	recentErr  error
	lastLimit  int
}

func (s *monitoringRecordStoreStub) Ensure() error { return nil }

func (s *monitoringRecordStoreStub) Append(rec models.CollectedRecord) error { return nil }

func (s *monitoringRecordStoreStub) Recent(limit int) ([]models.CollectedRecord, error) {
	s.lastLimit = limit
	return s.recentResp, s.recentErr
}

func TestMonitoringService_Latest(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name       string
		repoResp   models.CollectedRecord
		repoErr    error
		assertFunc func(t *testing.T, got models.CollectedRecord, err error)
	}

	airTemp := 21.5

	cases := []testCase{
		{
			name:     "propagates repository error",
			repoErr:  errors.New("db down"),
			repoResp: models.CollectedRecord{},
			assertFunc: func(t *testing.T, got models.CollectedRecord, err error) {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if got.AirTemperature != nil {
					t.Errorf("expected zero record, got %+v", got)
				}
			},
		},
		{
			name:    "normalizes non-zero CollectedAt to UTC",
			repoErr: nil,
			repoResp: models.CollectedRecord{
				CollectedAt:    time.Date(2026, 8, 2, 3, 4, 5, 0, time.FixedZone("X", -3*3600)), // UTC-3
				AirTemperature: &airTemp,
			},
			assertFunc: func(t *testing.T, got models.CollectedRecord, err error) {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got.CollectedAt.Location() != time.UTC {
					t.Errorf("CollectedAt must be UTC, got %v", got.CollectedAt.Location())
				}
				wantUTC := time.Date(2026, 8, 2, 6, 4, 5, 0, time.UTC) // 03:04:05 -03:00 => 06:04:05 UTC
				if !got.CollectedAt.Equal(wantUTC) {
					t.Errorf("CollectedAt: want %v, got %v", wantUTC, got.CollectedAt)
				}
				if got.AirTemperature == nil || *got.AirTemperature != airTemp {
					t.Errorf("AirTemperature: want %v, got %v", airTemp, got.AirTemperature)
				}
			},
		},
		{
			name:     "preserves zero CollectedAt when nothing collected yet",
			repoErr:  nil,
			repoResp: models.CollectedRecord{},
			assertFunc: func(t *testing.T, got models.CollectedRecord, err error) {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !got.CollectedAt.IsZero() {
					t.Errorf("CollectedAt: want zero, got %v", got.CollectedAt)
				}
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			repo := &monitoringStateRepoStub{
				loadResp: tc.repoResp,
				loadErr:  tc.repoErr,
			}

			svc := NewMonitoringService(repo, &monitoringRecordStoreStub{})

			got, err := svc.Latest(ctx)
			tc.assertFunc(t, got, err)
		})
	}
}

func TestMonitoringService_Recent(t *testing.T) {
	t.Parallel()

	soilTemp := 16.2
	rows := []models.CollectedRecord{
		{CollectedAt: time.Date(2026, 8, 15, 6, 30, 0, 0, time.UTC), SoilTemperature: &soilTemp},
	}

	type testCase struct {
		name      string
		query     RecordQuery
		wantLimit int
	}

	cases := []testCase{
		{name: "zero limit falls back to default", query: RecordQuery{}, wantLimit: defaultRecordLimit},
		{name: "negative limit falls back to default", query: RecordQuery{Limit: -3}, wantLimit: defaultRecordLimit},
		{name: "explicit limit passes through", query: RecordQuery{Limit: 7}, wantLimit: 7},
		{name: "oversized limit is capped", query: RecordQuery{Limit: maxRecordLimit + 1}, wantLimit: maxRecordLimit},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			store := &monitoringRecordStoreStub{recentResp: rows}
			svc := NewMonitoringService(&monitoringStateRepoStub{}, store)

			got, err := svc.Recent(ctx, tc.query)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if store.lastLimit != tc.wantLimit {
				t.Errorf("limit passed to store: want %d, got %d", tc.wantLimit, store.lastLimit)
			}
			if len(got) != 1 || got[0].SoilTemperature == nil || *got[0].SoilTemperature != soilTemp {
				t.Errorf("unexpected rows: %+v", got)
			}
		})
	}

	t.Run("propagates store error", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		store := &monitoringRecordStoreStub{recentErr: errors.New("archive unreadable")}
		svc := NewMonitoringService(&monitoringStateRepoStub{}, store)

		if _, err := svc.Recent(ctx, RecordQuery{Limit: 5}); err == nil {
			t.Fatalf("expected error, got nil")
		}
	})
}

func TestToUTC(t *testing.T) {
	t.Parallel()

	t.Run("zero time is preserved", func(t *testing.T) {
		t.Parallel()
		var z time.Time
		if got := toUTC(z); !got.IsZero() {
			t.Fatalf("expected zero time, got %v", got)
		}
	})

	t.Run("non-zero converted to UTC", func(t *testing.T) {
		t.Parallel()
		local := time.Date(2026, 2, 3, 10, 0, 0, 0, time.FixedZone("Z+2", 2*3600))
		got := toUTC(local)
		want := time.Date(2026, 2, 3, 8, 0, 0, 0, time.UTC)
		if got.Location() != time.UTC {
			t.Fatalf("expected UTC location, got %v", got.Location())
		}
		if !got.Equal(want) {
			t.Fatalf("want %v, got %v", want, got)
		}
	})
}
