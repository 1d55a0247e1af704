package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"field_station/internal/models"
)

type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

// constants and helpers for clarity and reuse
const (
	stationStateRowID = 1

	insertOrUpdateStateSQL = `
		INSERT INTO station_state (id, collected_at, soil_temperature, soil_moisture, air_temperature, air_humidity, sunlight_visible, sunlight_uv, sunlight_ir, relay, relay_state_change)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			collected_at=excluded.collected_at,
			soil_temperature=excluded.soil_temperature,
			soil_moisture=excluded.soil_moisture,
			air_temperature=excluded.air_temperature,
			air_humidity=excluded.air_humidity,
			sunlight_visible=excluded.sunlight_visible,
			sunlight_uv=excluded.sunlight_uv,
			sunlight_ir=excluded.sunlight_ir,
			relay=excluded.relay,
			relay_state_change=excluded.relay_state_change
	`

	selectStateSQL = `
		SELECT collected_at, soil_temperature, soil_moisture, air_temperature, air_humidity, sunlight_visible, sunlight_uv, sunlight_ir, relay, relay_state_change
		FROM station_state WHERE id=?
	`
)

// Save updates or inserts the station_state row (id always 1).
func (r *StateSQLite) Save(ctx context.Context, rec models.CollectedRecord) error {
	// ensure CollectedAt is always persisted as UTC; set if zero
	tsUTC := rec.CollectedAt
	if tsUTC.IsZero() {
		tsUTC = time.Now().UTC()
	} else {
		tsUTC = tsUTC.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertOrUpdateStateSQL,
		stationStateRowID,
		tsUTC,
		rec.SoilTemperature,
		rec.SoilMoisture,
		rec.AirTemperature,
		rec.AirHumidity,
		rec.SunlightVisible,
		rec.SunlightUV,
		rec.SunlightIR,
		rec.Relay,
		rec.RelayChanged,
	)
	return err
}

// Load fetches the single station_state row (id=1).
func (r *StateSQLite) Load(ctx context.Context) (models.CollectedRecord, error) {
	row := r.db.QueryRowContext(ctx, selectStateSQL, stationStateRowID)

	var rec models.CollectedRecord
	var (
		soilTemp, soilMoist, airTemp, airHum sql.NullFloat64
		sunVis, sunUV, sunIR                 sql.NullFloat64
		relay, relayChanged                  sql.NullBool
	)
	if err := row.Scan(
		&rec.CollectedAt,
		&soilTemp,
		&soilMoist,
		&airTemp,
		&airHum,
		&sunVis,
		&sunUV,
		&sunIR,
		&relay,
		&relayChanged,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CollectedRecord{}, nil // no state yet
		}
		return models.CollectedRecord{}, err
	}

	rec.SoilTemperature = floatPtr(soilTemp)
	rec.SoilMoisture = floatPtr(soilMoist)
	rec.AirTemperature = floatPtr(airTemp)
	rec.AirHumidity = floatPtr(airHum)
	rec.SunlightVisible = floatPtr(sunVis)
	rec.SunlightUV = floatPtr(sunUV)
	rec.SunlightIR = floatPtr(sunIR)
	rec.Relay = boolPtr(relay)
	rec.RelayChanged = boolPtr(relayChanged)
	rec.CollectedAt = rec.CollectedAt.UTC()

	return rec, nil
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}

func boolPtr(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	return &v.Bool
}
