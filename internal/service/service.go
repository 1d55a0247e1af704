package service

import (
	"context"
	"time"

	"field_station/internal/logger"
	"field_station/internal/models"
	"field_station/internal/repository"
	"field_station/internal/sensors"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Relay exposes manual control of the attached relay line.
type Relay interface {
	TurnOn(ctx context.Context) error
	TurnOff(ctx context.Context) error
}

// Monitoring exposes read-only access to collected records.
type Monitoring interface {
	Latest(ctx context.Context) (models.CollectedRecord, error)
	Recent(ctx context.Context, q RecordQuery) ([]models.CollectedRecord, error)
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.StationEvent, error)
}

// Collector runs the background loop that polls sensors and archives one
// record per cycle. Stop via context cancellation in main() for graceful
// shutdown.
type Collector interface {
	Setup(ctx context.Context) error
	Run(ctx context.Context, interval time.Duration) error
}

// Service aggregates all sub-services behind one handle for the API layer.
type Service struct {
	Collector
	Monitoring
	EventLog
	Relay
	Authorization
}

// Options carries the wiring main() decides on: which sensors exist, where
// records mirror to, and how the noisy channels are smoothed.
type Options struct {
	Sensors     []sensors.Sensor
	RelaySwitch sensors.Switch
	Mirrors     []repository.RecordMirror
	Windows     WindowSizes
	ReadTimeout time.Duration
	SigningKey  string
	TokenTTL    time.Duration
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, opts Options, log *logger.Logger) *Service {
	return &Service{
		Collector:     NewCollectorService(opts.Sensors, repos, opts.Mirrors, opts.Windows, opts.ReadTimeout, log),
		Monitoring:    NewMonitoringService(repos.StateRepo, repos.Records),
		EventLog:      NewEventLogService(repos.EventRepo),
		Relay:         NewRelayService(opts.RelaySwitch, repos.EventRepo, log),
		Authorization: NewAuthService(repos.Auth, opts.SigningKey, opts.TokenTTL),
	}
}
