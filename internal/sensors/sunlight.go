package sensors

import (
	"context"
	"errors"

	"field_station/internal/models"
)

const sunlightSensorID = "sunlight"

// The chip reports UV in hundredths of an index point.
const uvScale = 100.0

// SunlightSensor reads visible, UV and infrared channels from the light chip.
type SunlightSensor struct {
	chip SunlightChip
}

func NewSunlightSensor(chip SunlightChip) *SunlightSensor {
	return &SunlightSensor{chip: chip}
}

func (s *SunlightSensor) ID() string { return sunlightSensorID }

func (s *SunlightSensor) Init() error {
	if s.chip == nil {
		return &InitError{SensorID: sunlightSensorID, Err: errors.New("no light chip attached")}
	}
	return nil
}

func (s *SunlightSensor) Read(ctx context.Context) (models.SensorReading, error) {
	vis, err := s.chip.Visible()
	if err != nil {
		return nil, &ReadError{SensorID: sunlightSensorID, Err: err}
	}
	uv, err := s.chip.UV()
	if err != nil {
		return nil, &ReadError{SensorID: sunlightSensorID, Err: err}
	}
	ir, err := s.chip.IR()
	if err != nil {
		return nil, &ReadError{SensorID: sunlightSensorID, Err: err}
	}
	return models.Sunlight{Visible: vis, UVIndex: uv / uvScale, Infrared: ir}, nil
}
