package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"field_station/internal/logger"
	"field_station/internal/models"
	"field_station/internal/repository"
	"field_station/internal/sensors"
)

// RelayService drives the relay line on operator request. The collector
// reports the resulting state on its next cycle; this service only issues
// the command and records that it did.
type RelayService struct {
	sw        sensors.Switch
	eventRepo repository.EventRepo
	log       *logger.Logger
}

func NewRelayService(sw sensors.Switch, eventRepo repository.EventRepo, log *logger.Logger) *RelayService {
	return &RelayService{sw: sw, eventRepo: eventRepo, log: log}
}

var errNoRelay = errors.New("no relay attached")

// TurnOn drives the relay closed.
func (s *RelayService) TurnOn(ctx context.Context) error { return s.drive(ctx, true) }

// TurnOff drives the relay open.
func (s *RelayService) TurnOff(ctx context.Context) error { return s.drive(ctx, false) }

func (s *RelayService) drive(ctx context.Context, on bool) error {
	if s.sw == nil {
		return errNoRelay
	}

	var err error
	if on {
		err = s.sw.On()
	} else {
		err = s.sw.Off()
	}
	if err != nil {
		return fmt.Errorf("drive relay %s: %w", onOff(on), err)
	}

	s.log.Infow("relay command applied", "on", on)
	if err := s.eventRepo.Append(ctx, models.StationEvent{
		EventID:    uuid.NewString(),
		OccurredAt: time.Now().UTC(),
		Type:       models.EventRelayCommand,
		Message:    "relay commanded " + onOff(on),
		Metadata:   map[string]any{"on": on},
	}); err != nil {
		s.log.Warnw("event append failed", "type", models.EventRelayCommand, "err", err)
	}
	return nil
}
