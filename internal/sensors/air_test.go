package sensors

import (
	"context"
	"errors"
	"testing"

	"field_station/internal/logger"
	"field_station/internal/models"
)

// stubClimateProbe replays humidity/temperature frames in order.
type stubClimateProbe struct {
	frames [][2]float64 // {humidity, temperature} per call
	errs   []error
	calls  int
}

func (p *stubClimateProbe) Sense() (float64, float64, error) {
	i := p.calls
	p.calls++
	if i < len(p.errs) && p.errs[i] != nil {
		return 0, 0, p.errs[i]
	}
	f := p.frames[i]
	return f[0], f[1], nil
}

func TestAirSensor_Read_HappyPath(t *testing.T) {
	probe := &stubClimateProbe{frames: [][2]float64{{55, 21.5}}}
	s := NewAirSensor(probe, logger.Get(logger.ErrorLevel))

	got, err := s.Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	air, ok := got.(models.AirClimate)
	if !ok {
		t.Fatalf("reading type = %T, want models.AirClimate", got)
	}
	if air.TemperatureC != 21.5 || air.HumidityPct != 55 {
		t.Fatalf("unexpected reading: %+v", air)
	}
	if probe.calls != 1 {
		t.Fatalf("expected a single probe call, got %d", probe.calls)
	}
}

func TestAirSensor_Read_RetriesOnceOnZeroFrame(t *testing.T) {
	probe := &stubClimateProbe{frames: [][2]float64{{0, 0}, {55, 21.5}}}
	s := NewAirSensor(probe, logger.Get(logger.ErrorLevel))

	got, err := s.Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	air := got.(models.AirClimate)
	if air.TemperatureC != 21.5 || air.HumidityPct != 55 {
		t.Fatalf("retry must return the second frame, got %+v", air)
	}
	if probe.calls != 2 {
		t.Fatalf("expected exactly two probe calls, got %d", probe.calls)
	}
}

func TestAirSensor_Read_TwoZeroFramesFail(t *testing.T) {
	probe := &stubClimateProbe{frames: [][2]float64{{0, 0}, {0, 0}}}
	s := NewAirSensor(probe, logger.Get(logger.ErrorLevel))

	_, err := s.Read(context.Background())
	if err == nil {
		t.Fatalf("expected error after two zero frames")
	}
	var rerr *ReadError
	if !errors.As(err, &rerr) {
		t.Fatalf("error type = %T, want *ReadError", err)
	}
	if rerr.SensorID != airSensorID {
		t.Fatalf("SensorID = %q, want %q", rerr.SensorID, airSensorID)
	}
	if !errors.Is(err, errZeroFrame) {
		t.Fatalf("expected errZeroFrame inside, got %v", err)
	}
	if probe.calls != 2 {
		t.Fatalf("expected exactly two probe calls, got %d", probe.calls)
	}
}

func TestAirSensor_Read_ProbeErrorWrapped(t *testing.T) {
	boom := errors.New("bus noise")

	t.Run("on first frame", func(t *testing.T) {
		probe := &stubClimateProbe{errs: []error{boom}}
		s := NewAirSensor(probe, logger.Get(logger.ErrorLevel))

		_, err := s.Read(context.Background())
		if !errors.Is(err, boom) {
			t.Fatalf("expected wrapped probe error, got %v", err)
		}
	})

	t.Run("on retry", func(t *testing.T) {
		probe := &stubClimateProbe{frames: [][2]float64{{0, 0}}, errs: []error{nil, boom}}
		s := NewAirSensor(probe, logger.Get(logger.ErrorLevel))

		_, err := s.Read(context.Background())
		if !errors.Is(err, boom) {
			t.Fatalf("expected wrapped probe error, got %v", err)
		}
		if probe.calls != 2 {
			t.Fatalf("expected two probe calls, got %d", probe.calls)
		}
	})
}

func TestAirSensor_Init(t *testing.T) {
	s := NewAirSensor(nil, logger.Get(logger.ErrorLevel))
	err := s.Init()
	if err == nil {
		t.Fatalf("expected error without a probe")
	}
	var ierr *InitError
	if !errors.As(err, &ierr) {
		t.Fatalf("error type = %T, want *InitError", err)
	}
	if ierr.SensorID != airSensorID {
		t.Fatalf("SensorID = %q, want %q", ierr.SensorID, airSensorID)
	}

	ok := NewAirSensor(&stubClimateProbe{}, logger.Get(logger.ErrorLevel))
	if err := ok.Init(); err != nil {
		t.Fatalf("Init with probe attached: %v", err)
	}
}
