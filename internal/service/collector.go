package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"field_station/internal/logger"
	"field_station/internal/models"
	"field_station/internal/repository"
	"field_station/internal/sensors"
)

// Readings outside (plausibleMin, plausibleMax) are treated as sensor
// glitches and never enter a smoothing window.
const (
	plausibleMin = 0.0
	plausibleMax = 200.0
)

// WindowSizes configures the smoothing window per channel.
type WindowSizes struct {
	AirTemperature  int
	AirHumidity     int
	SoilTemperature int
	SoilMoisture    int
	SunlightUV      int
}

// CollectorService polls every sensor once per interval, smooths the noisy
// channels, and appends one row per cycle to the record archive. A failing
// sensor costs its own columns only; the cycle still commits.
type CollectorService struct {
	sensors     []sensors.Sensor
	store       repository.RecordStore
	state       repository.StateRepo
	events      repository.EventRepo
	mirrors     []repository.RecordMirror
	log         *logger.Logger
	readTimeout time.Duration

	disabled map[string]bool

	airTemp   *RollingAverage
	airHum    *RollingAverage
	soilTemp  *RollingAverage
	soilMoist *RollingAverage
	sunUV     *RollingAverage
	relay     *ChangeDetector
}

func NewCollectorService(
	sns []sensors.Sensor,
	repos *repository.Repository,
	mirrors []repository.RecordMirror,
	windows WindowSizes,
	readTimeout time.Duration,
	log *logger.Logger,
) *CollectorService {
	return &CollectorService{
		sensors:     sns,
		store:       repos.Records,
		state:       repos.StateRepo,
		events:      repos.EventRepo,
		mirrors:     mirrors,
		log:         log,
		readTimeout: readTimeout,
		disabled:    make(map[string]bool),
		airTemp:     NewRollingAverage(windows.AirTemperature),
		airHum:      NewRollingAverage(windows.AirHumidity),
		soilTemp:    NewRollingAverage(windows.SoilTemperature),
		soilMoist:   NewRollingAverage(windows.SoilMoisture),
		sunUV:       NewRollingAverage(windows.SunlightUV),
		relay:       NewChangeDetector(),
	}
}

var _ Collector = (*CollectorService)(nil)

// Setup prepares the record archive and initializes every sensor. A sensor
// that fails to initialize is disabled for the rest of the run; a broken
// archive aborts startup.
func (s *CollectorService) Setup(ctx context.Context) error {
	if err := s.store.Ensure(); err != nil {
		s.log.Errorw("record archive unavailable", "err", err)
		s.appendEvent(ctx, models.EventPersistFault, "record archive unavailable: "+err.Error(), nil)
		return err
	}

	for _, sn := range s.sensors {
		if err := sn.Init(); err != nil {
			s.log.Errorw("sensor disabled for this run", "sensor", sn.ID(), "err", err)
			s.disabled[sn.ID()] = true
			s.appendEvent(ctx, models.EventSensorDisabled, "sensor "+sn.ID()+" disabled: "+err.Error(), map[string]any{"sensor": sn.ID()})
			continue
		}
		s.log.Infow("sensor initialized", "sensor", sn.ID())
		s.appendEvent(ctx, models.EventSensorInit, "sensor "+sn.ID()+" initialized", map[string]any{"sensor": sn.ID()})
	}
	return nil
}

// Run collects one record immediately and then once per interval until the
// context is canceled. It returns a non-nil error only when the archive
// rejects a row, which is fatal for the whole run.
func (s *CollectorService) Run(ctx context.Context, interval time.Duration) error {
	s.log.Infow("collector started", "interval", interval.String(), "sensors", len(s.sensors))
	s.appendEvent(ctx, models.EventStartup, "collector started", map[string]any{"interval": interval.String()})

	t := time.NewTicker(interval)
	defer t.Stop()

	if err := s.runCycle(ctx); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			s.log.Infow("collector stopped")
			s.appendEvent(context.Background(), models.EventShutdown, "collector stopped", nil)
			return nil
		case <-t.C:
			if err := s.runCycle(ctx); err != nil {
				return err
			}
		}
	}
}

// runCycle polls each enabled sensor once and commits a single row. A read
// fault skips that sensor's columns; cancellation abandons the cycle before
// anything is written.
func (s *CollectorService) runCycle(ctx context.Context) error {
	var rec models.CollectedRecord

	for _, sn := range s.sensors {
		if s.disabled[sn.ID()] {
			continue
		}
		if ctx.Err() != nil {
			return nil
		}
		reading, err := s.readWithTimeout(ctx, sn)
		if err != nil {
			s.log.Errorw("sensor read failed", "sensor", sn.ID(), "err", err)
			s.appendEvent(ctx, models.EventReadFault, "sensor "+sn.ID()+" read failed: "+err.Error(), models.SensorFailure{
				SensorID: sn.ID(),
				Message:  err.Error(),
				At:       time.Now().UTC(),
			})
			continue
		}
		s.merge(ctx, &rec, reading)
	}
	if ctx.Err() != nil {
		return nil
	}

	rec.CollectedAt = time.Now()
	if err := s.store.Append(rec); err != nil {
		s.log.Errorw("record append failed", "err", err)
		s.appendEvent(ctx, models.EventPersistFault, "record append failed: "+err.Error(), nil)
		return err
	}
	s.fanOut(ctx, rec)
	return nil
}

type readResult struct {
	reading models.SensorReading
	err     error
}

// readWithTimeout bounds a single sensor read so a hung driver cannot
// stall the whole cycle.
func (s *CollectorService) readWithTimeout(ctx context.Context, sn sensors.Sensor) (models.SensorReading, error) {
	rctx, cancel := context.WithTimeout(ctx, s.readTimeout)
	defer cancel()

	ch := make(chan readResult, 1)
	go func() {
		reading, err := sn.Read(rctx)
		ch <- readResult{reading: reading, err: err}
	}()

	select {
	case <-rctx.Done():
		return nil, &sensors.ReadError{SensorID: sn.ID(), Err: rctx.Err()}
	case res := <-ch:
		return res.reading, res.err
	}
}

func (s *CollectorService) merge(ctx context.Context, rec *models.CollectedRecord, reading models.SensorReading) {
	switch r := reading.(type) {
	case models.AirClimate:
		rec.AirTemperature = s.smoothed(s.airTemp, r.TemperatureC)
		rec.AirHumidity = s.smoothed(s.airHum, r.HumidityPct)
	case models.SoilTemperature:
		rec.SoilTemperature = s.smoothed(s.soilTemp, r.TemperatureC)
	case models.SoilMoisture:
		rec.SoilMoisture = s.smoothed(s.soilMoist, r.Fraction)
	case models.Sunlight:
		vis, ir := r.Visible, r.Infrared
		rec.SunlightVisible = &vis
		rec.SunlightIR = &ir
		rec.SunlightUV = s.smoothed(s.sunUV, r.UVIndex)
	case models.RelayState:
		on := r.On
		changed := s.relay.Observe(on)
		rec.Relay = &on
		rec.RelayChanged = &changed
		if changed {
			s.log.Warnw("relay state changed", "on", on)
			s.appendEvent(ctx, models.EventRelayChange, "relay switched "+onOff(on), map[string]any{"on": on})
		}
	}
}

// smoothed feeds a plausible sample into the window and returns the new
// mean. An implausible sample leaves the window untouched; the previous
// mean still fills the column unless the window has never seen a sample.
func (s *CollectorService) smoothed(w *RollingAverage, v float64) *float64 {
	if v > plausibleMin && v < plausibleMax {
		m := w.Push(v)
		return &m
	}
	if w.Size() == 0 {
		return nil
	}
	m := w.Mean()
	return &m
}

// fanOut mirrors a committed record to the state snapshot and any
// configured sinks. Mirror failures are logged and do not fail the cycle.
func (s *CollectorService) fanOut(ctx context.Context, rec models.CollectedRecord) {
	if err := s.state.Save(ctx, rec); err != nil {
		s.log.Warnw("state snapshot save failed", "err", err)
	}
	for _, m := range s.mirrors {
		if err := m.Publish(ctx, rec); err != nil {
			s.log.Warnw("record mirror publish failed", "err", err)
		}
	}
}

// appendEvent writes a station event, tolerating failures with a warning.
func (s *CollectorService) appendEvent(ctx context.Context, typ, msg string, meta any) {
	ev := models.StationEvent{
		EventID:    uuid.NewString(),
		OccurredAt: time.Now().UTC(),
		Type:       typ,
		Message:    msg,
	}
	if meta != nil {
		ev.Metadata = meta
	}
	if err := s.events.Append(ctx, ev); err != nil {
		s.log.Warnw("event append failed", "type", typ, "err", err)
	}
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
