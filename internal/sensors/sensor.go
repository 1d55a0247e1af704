package sensors

import (
	"context"
	"fmt"

	"field_station/internal/models"
)

// Sensor is the uniform contract the collector drives. Init runs once at
// startup; a sensor whose Init fails stays disabled for the whole run.
// Read is called once per cycle and converts any driver fault into a
// *ReadError instead of panicking.
type Sensor interface {
	ID() string
	Init() error
	Read(ctx context.Context) (models.SensorReading, error)
}

// Switch is implemented by sensors that can also be driven, i.e. the relay.
type Switch interface {
	On() error
	Off() error
}

// InitError marks a sensor that could not be prepared at startup.
type InitError struct {
	SensorID string
	Err      error
}

func (e *InitError) Error() string { return fmt.Sprintf("init sensor %s: %v", e.SensorID, e.Err) }
func (e *InitError) Unwrap() error { return e.Err }

// ReadError marks one failed read; the cycle continues without the value.
type ReadError struct {
	SensorID string
	Err      error
}

func (e *ReadError) Error() string { return fmt.Sprintf("read sensor %s: %v", e.SensorID, e.Err) }
func (e *ReadError) Unwrap() error { return e.Err }

// Driver interfaces for the underlying buses. Transports are out of scope;
// the station ships simulated implementations, real ones plug in here.

// ClimateProbe is a combined humidity/temperature probe on a digital pin.
type ClimateProbe interface {
	Sense() (humidityPct, temperatureC float64, err error)
}

// Thermometer is a one-wire temperature probe.
type Thermometer interface {
	TemperatureC() (float64, error)
}

// AnalogReader reads one channel of an analog-to-digital converter.
type AnalogReader interface {
	ReadChannel(channel int) (float64, error)
}

// SunlightChip is a visible/UV/IR light chip on the inter-chip bus.
type SunlightChip interface {
	Visible() (float64, error)
	UV() (float64, error)
	IR() (float64, error)
}

// RelayLine is a switchable line with state readback.
type RelayLine interface {
	Set(on bool) error
	Get() (bool, error)
}
