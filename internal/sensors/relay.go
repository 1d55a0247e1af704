package sensors

import (
	"context"
	"errors"

	"field_station/internal/models"
)

const relaySensorID = "relay"

// RelaySensor reports the relay line state and can drive it.
type RelaySensor struct {
	line RelayLine
}

// Ensure the relay stays drivable through the Switch interface.
var _ Switch = (*RelaySensor)(nil)

func NewRelaySensor(line RelayLine) *RelaySensor {
	return &RelaySensor{line: line}
}

func (s *RelaySensor) ID() string { return relaySensorID }

func (s *RelaySensor) Init() error {
	if s.line == nil {
		return &InitError{SensorID: relaySensorID, Err: errors.New("no relay line attached")}
	}
	return nil
}

func (s *RelaySensor) Read(ctx context.Context) (models.SensorReading, error) {
	on, err := s.line.Get()
	if err != nil {
		return nil, &ReadError{SensorID: relaySensorID, Err: err}
	}
	return models.RelayState{On: on}, nil
}

func (s *RelaySensor) On() error  { return s.line.Set(true) }
func (s *RelaySensor) Off() error { return s.line.Set(false) }
