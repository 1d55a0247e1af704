package sensors

import (
	"context"
	"errors"

	"field_station/internal/models"
)

const (
	soilTempSensorID = "soil_temperature"
	moistureSensorID = "soil_moisture"
)

// SoilTempSensor reads a one-wire temperature probe buried at root depth.
type SoilTempSensor struct {
	probe Thermometer
}

func NewSoilTempSensor(probe Thermometer) *SoilTempSensor {
	return &SoilTempSensor{probe: probe}
}

func (s *SoilTempSensor) ID() string { return soilTempSensorID }

func (s *SoilTempSensor) Init() error {
	if s.probe == nil {
		return &InitError{SensorID: soilTempSensorID, Err: errors.New("no thermometer attached")}
	}
	return nil
}

func (s *SoilTempSensor) Read(ctx context.Context) (models.SensorReading, error) {
	t, err := s.probe.TemperatureC()
	if err != nil {
		return nil, &ReadError{SensorID: soilTempSensorID, Err: err}
	}
	return models.SoilTemperature{TemperatureC: t}, nil
}

// Calibration holds the ADC endpoints of a moisture probe. Raw readings
// shrink as moisture rises, so RawDry is the larger value.
type Calibration struct {
	RawDry float64
	RawWet float64
}

// fraction maps a raw reading linearly between the calibration endpoints
// onto the 0..1 saturation scale, clamped at both ends.
func (c Calibration) fraction(raw float64) float64 {
	f := (raw - c.RawDry) / (c.RawWet - c.RawDry)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// MoistureSensor reads one ADC channel and reports soil saturation.
type MoistureSensor struct {
	adc     AnalogReader
	channel int
	cal     Calibration
}

func NewMoistureSensor(adc AnalogReader, channel int, cal Calibration) *MoistureSensor {
	return &MoistureSensor{adc: adc, channel: channel, cal: cal}
}

func (s *MoistureSensor) ID() string { return moistureSensorID }

func (s *MoistureSensor) Init() error {
	if s.adc == nil {
		return &InitError{SensorID: moistureSensorID, Err: errors.New("no ADC attached")}
	}
	return nil
}

func (s *MoistureSensor) Read(ctx context.Context) (models.SensorReading, error) {
	raw, err := s.adc.ReadChannel(s.channel)
	if err != nil {
		return nil, &ReadError{SensorID: moistureSensorID, Err: err}
	}
	return models.SoilMoisture{Fraction: s.cal.fraction(raw)}, nil
}
