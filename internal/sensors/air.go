package sensors

import (
	"context"
	"errors"

	"field_station/internal/logger"
	"field_station/internal/models"
)

const airSensorID = "air_climate"

var errZeroFrame = errors.New("probe answered an all-zero frame twice")

// AirSensor reads combined humidity and temperature from a climate probe.
// Probes of this family occasionally answer an all-zero frame; a single
// retry gets a real sample in that case.
type AirSensor struct {
	probe ClimateProbe
	log   *logger.Logger
}

func NewAirSensor(probe ClimateProbe, log *logger.Logger) *AirSensor {
	return &AirSensor{probe: probe, log: log}
}

func (s *AirSensor) ID() string { return airSensorID }

func (s *AirSensor) Init() error {
	if s.probe == nil {
		return &InitError{SensorID: airSensorID, Err: errors.New("no climate probe attached")}
	}
	return nil
}

func (s *AirSensor) Read(ctx context.Context) (models.SensorReading, error) {
	h, t, err := s.probe.Sense()
	if err != nil {
		return nil, &ReadError{SensorID: airSensorID, Err: err}
	}
	if h == 0 && t == 0 {
		s.log.Warnw("air probe answered a zero frame, retrying", "sensor", airSensorID)
		if h, t, err = s.probe.Sense(); err != nil {
			return nil, &ReadError{SensorID: airSensorID, Err: err}
		}
		if h == 0 && t == 0 {
			return nil, &ReadError{SensorID: airSensorID, Err: errZeroFrame}
		}
	}
	return models.AirClimate{TemperatureC: t, HumidityPct: h}, nil
}
