package models

import "time"

// Event types recorded by the station.
const (
	EventStartup        = "STARTUP"
	EventShutdown       = "SHUTDOWN"
	EventSensorInit     = "SENSOR_INIT"
	EventSensorDisabled = "SENSOR_DISABLED"
	EventReadFault      = "READ_FAULT"
	EventRelayChange    = "RELAY_CHANGE"
	EventRelayCommand   = "RELAY_COMMAND"
	EventPersistFault   = "PERSIST_FAULT"
)

// StationEvent is a single structured log entry.
type StationEvent struct {
	EventID    string    `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Type       string    `json:"type"`    // STARTUP | SENSOR_INIT | READ_FAULT | ...
	Message    string    `json:"message"` // human-readable
	Metadata   any       `json:"metadata,omitempty"`
}
