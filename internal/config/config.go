package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Defaults applied when neither a flag nor the config file provides a value.
const (
	DefaultCSVPath     = "output/sensor_data.csv"
	DefaultLogPath     = "sensor_collector.log"
	DefaultDBPath      = "station.db"
	DefaultPort        = "8080"
	DefaultInterval    = 5 * time.Second
	DefaultReadTimeout = 3 * time.Second
)

// Config carries every tunable of the station process.
type Config struct {
	StationID string `mapstructure:"station_id"`
	Port      string `mapstructure:"port"`
	LogLevel  string `mapstructure:"log_level"`

	CSVPath string `mapstructure:"csv_path"`
	LogPath string `mapstructure:"log_path"`
	DBPath  string `mapstructure:"db_path"`

	Interval    time.Duration `mapstructure:"interval"`
	ReadTimeout time.Duration `mapstructure:"read_timeout"`

	Windows  Windows  `mapstructure:"windows"`
	Moisture Moisture `mapstructure:"moisture"`
	Influx   Influx   `mapstructure:"influx"`
	MQTT     MQTT     `mapstructure:"mqtt"`
	Auth     Auth     `mapstructure:"auth"`
}

// Windows holds the per-channel smoothing capacities.
type Windows struct {
	AirTemperature  int `mapstructure:"air_temperature"`
	AirHumidity     int `mapstructure:"air_humidity"`
	SoilTemperature int `mapstructure:"soil_temperature"`
	SoilMoisture    int `mapstructure:"soil_moisture"`
	SunlightUV      int `mapstructure:"sunlight_uv"`
}

// Moisture holds the ADC calibration endpoints of the moisture probe.
type Moisture struct {
	RawDry float64 `mapstructure:"raw_dry"` // ADC value in dry air
	RawWet float64 `mapstructure:"raw_wet"` // ADC value in water
}

// Influx configures the optional InfluxDB record mirror; empty URL disables it.
type Influx struct {
	URL    string `mapstructure:"url"`
	Token  string `mapstructure:"token"`
	Org    string `mapstructure:"org"`
	Bucket string `mapstructure:"bucket"`
}

// MQTT configures the optional MQTT record mirror; empty broker disables it.
type MQTT struct {
	Broker   string `mapstructure:"broker"`
	Topic    string `mapstructure:"topic"`
	ClientID string `mapstructure:"client_id"`
}

// Auth configures the API token issuer.
type Auth struct {
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

// ValidationError marks bad startup parameters. The process aborts before
// the first cycle when Load returns one.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string { return fmt.Sprintf("config %s: %v", e.Field, e.Err) }
func (e *ValidationError) Unwrap() error { return e.Err }

var errMustBePositive = errors.New("must be positive")

// Load reads the config file, applies defaults, and validates the result.
// With an empty path it looks for configs/config.yml and tolerates its
// absence; an explicit path must exist. Flag values bound into viper before
// the call take precedence over the file.
func Load(path string) (Config, error) {
	setDefaults()

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.AddConfigPath("configs") // configs/config.yml
		viper.SetConfigName("config")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("station_id", "field-station")
	viper.SetDefault("port", DefaultPort)
	viper.SetDefault("log_level", "info")

	viper.SetDefault("csv_path", DefaultCSVPath)
	viper.SetDefault("log_path", DefaultLogPath)
	viper.SetDefault("db_path", DefaultDBPath)

	viper.SetDefault("interval", DefaultInterval)
	viper.SetDefault("read_timeout", DefaultReadTimeout)

	viper.SetDefault("windows.air_temperature", 10)
	viper.SetDefault("windows.air_humidity", 10)
	viper.SetDefault("windows.soil_temperature", 10)
	viper.SetDefault("windows.soil_moisture", 20)
	viper.SetDefault("windows.sunlight_uv", 10)

	viper.SetDefault("moisture.raw_dry", 2504.0)
	viper.SetDefault("moisture.raw_wet", 1543.0)

	viper.SetDefault("auth.signing_key", "local-dev-key")
	viper.SetDefault("auth.token_ttl", 12*time.Hour)
}

// Validate checks every parameter the collector depends on.
func (c Config) Validate() error {
	if c.Interval <= 0 {
		return &ValidationError{Field: "interval", Err: errMustBePositive}
	}
	if c.ReadTimeout <= 0 {
		return &ValidationError{Field: "read_timeout", Err: errMustBePositive}
	}
	if strings.TrimSpace(c.CSVPath) == "" {
		return &ValidationError{Field: "csv_path", Err: errors.New("must not be empty")}
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return &ValidationError{Field: "db_path", Err: errors.New("must not be empty")}
	}

	windows := map[string]int{
		"windows.air_temperature":  c.Windows.AirTemperature,
		"windows.air_humidity":     c.Windows.AirHumidity,
		"windows.soil_temperature": c.Windows.SoilTemperature,
		"windows.soil_moisture":    c.Windows.SoilMoisture,
		"windows.sunlight_uv":      c.Windows.SunlightUV,
	}
	for field, n := range windows {
		if n <= 0 {
			return &ValidationError{Field: field, Err: errMustBePositive}
		}
	}

	if c.Moisture.RawDry == c.Moisture.RawWet {
		return &ValidationError{Field: "moisture", Err: errors.New("raw_dry and raw_wet must differ")}
	}
	if strings.TrimSpace(c.Auth.SigningKey) == "" {
		return &ValidationError{Field: "auth.signing_key", Err: errors.New("must not be empty")}
	}
	if c.Auth.TokenTTL <= 0 {
		return &ValidationError{Field: "auth.token_ttl", Err: errMustBePositive}
	}
	return nil
}
