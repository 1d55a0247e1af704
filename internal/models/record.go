package models

import "time"

// SensorReading is one decoded sample from a station sensor. The structs
// below are the closed set of variants a sensor can produce.
type SensorReading interface {
	isReading()
}

type AirClimate struct {
	TemperatureC float64 `json:"temperature_c"` // °C
	HumidityPct  float64 `json:"humidity_pct"`  // %RH
}

type SoilTemperature struct {
	TemperatureC float64 `json:"temperature_c"` // °C
}

type SoilMoisture struct {
	Fraction float64 `json:"fraction"` // 0.0 dry .. 1.0 saturated
}

type Sunlight struct {
	Visible  float64 `json:"visible"`
	UVIndex  float64 `json:"uv_index"`
	Infrared float64 `json:"infrared"`
}

type RelayState struct {
	On bool `json:"on"`
}

func (AirClimate) isReading()      {}
func (SoilTemperature) isReading() {}
func (SoilMoisture) isReading()    {}
func (Sunlight) isReading()        {}
func (RelayState) isReading()      {}

// SensorFailure describes one failed read attempt.
type SensorFailure struct {
	SensorID string    `json:"sensor_id"`
	Message  string    `json:"message"`
	At       time.Time `json:"at"`
}

// CollectedRecord is the merged result of one polling cycle. A nil field
// means the owning sensor was absent or failed for that cycle.
type CollectedRecord struct {
	CollectedAt     time.Time `json:"collected_at"`
	SoilTemperature *float64  `json:"soil_temperature,omitempty"` // °C
	SoilMoisture    *float64  `json:"soil_moisture,omitempty"`    // 0..1
	AirTemperature  *float64  `json:"air_temperature,omitempty"`  // °C
	AirHumidity     *float64  `json:"air_humidity,omitempty"`     // %RH
	SunlightVisible *float64  `json:"sunlight_visible,omitempty"`
	SunlightUV      *float64  `json:"sunlight_uv,omitempty"`
	SunlightIR      *float64  `json:"sunlight_ir,omitempty"`
	Relay           *bool     `json:"relay,omitempty"`
	RelayChanged    *bool     `json:"relay_state_change,omitempty"`
}
