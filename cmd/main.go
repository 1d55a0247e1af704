package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"field_station/internal/config"
	"field_station/internal/handlers"
	"field_station/internal/logger"
	"field_station/internal/repository"
	"field_station/internal/sensors"
	"field_station/internal/server"
	"field_station/internal/service"
)

const (
	shutdownTimeout = 10 * time.Second

	// ADC channel the moisture probe is wired to.
	moistureChannel = 0
)

func main() {
	cfgPath := bindFlags()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("invalid configuration", "err", err)
	}

	// init logger; file core mirrors console output into the station log
	log := logger.Init(cfg.LogLevel, cfg.LogPath)
	defer func() { _ = log.Sync() }()

	// open DB
	db, err := repository.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(db, cfg.CSVPath)
	suite := buildSensors(cfg, log)
	mirrors := buildMirrors(cfg, log)
	defer closeMirrors(mirrors)

	services := service.NewService(repos, service.Options{
		Sensors:     suite.all,
		RelaySwitch: suite.relay,
		Mirrors:     mirrors,
		Windows: service.WindowSizes{
			AirTemperature:  cfg.Windows.AirTemperature,
			AirHumidity:     cfg.Windows.AirHumidity,
			SoilTemperature: cfg.Windows.SoilTemperature,
			SoilMoisture:    cfg.Windows.SoilMoisture,
			SunlightUV:      cfg.Windows.SunlightUV,
		},
		ReadTimeout: cfg.ReadTimeout,
		SigningKey:  cfg.Auth.SigningKey,
		TokenTTL:    cfg.Auth.TokenTTL,
	}, log)
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// prepare the archive and the sensor set before the first cycle
	if err := services.Collector.Setup(ctx); err != nil {
		log.Fatalw("collector setup failed", "err", err)
	}

	// start collector (via composed service)
	collectErr := make(chan error, 1)
	go func() {
		collectErr <- services.Collector.Run(ctx, cfg.Interval)
	}()

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, collectErr, log)
}

// bindFlags registers CLI flags and binds the overridable ones into viper.
// Returns the --config path, empty when unset.
func bindFlags() string {
	cfgPath := pflag.String("config", "", "path to config file")
	pflag.String("csv", "", "record archive path (overrides config)")
	pflag.String("log", "", "log file path (overrides config)")
	pflag.Duration("interval", 0, "collection interval (overrides config)")
	pflag.String("port", "", "HTTP port (overrides config)")
	pflag.Parse()

	_ = viper.BindPFlag("csv_path", pflag.Lookup("csv"))
	_ = viper.BindPFlag("log_path", pflag.Lookup("log"))
	_ = viper.BindPFlag("interval", pflag.Lookup("interval"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))

	return *cfgPath
}

// sensorSuite groups everything main wires onto the collector.
type sensorSuite struct {
	all   []sensors.Sensor
	relay sensors.Switch
}

// buildSensors assembles the station's sensor set on simulated drivers.
// Swapping in real hardware drivers only touches this function.
func buildSensors(cfg config.Config, log *logger.Logger) sensorSuite {
	relay := sensors.NewRelaySensor(sensors.NewSimRelayLine())
	cal := sensors.Calibration{RawDry: cfg.Moisture.RawDry, RawWet: cfg.Moisture.RawWet}
	all := []sensors.Sensor{
		sensors.NewAirSensor(sensors.NewSimClimateProbe(), log),
		sensors.NewSoilTempSensor(sensors.NewSimThermometer()),
		sensors.NewMoistureSensor(sensors.NewSimADC(), moistureChannel, cal),
		sensors.NewSunlightSensor(sensors.NewSimSunlightChip()),
		relay,
	}
	return sensorSuite{all: all, relay: relay}
}

// buildMirrors wires the optional record sinks from config.
func buildMirrors(cfg config.Config, log *logger.Logger) []repository.RecordMirror {
	var mirrors []repository.RecordMirror
	if cfg.Influx.URL != "" {
		mirrors = append(mirrors, repository.NewInfluxMirror(
			cfg.Influx.URL, cfg.Influx.Token, cfg.Influx.Org, cfg.Influx.Bucket, cfg.StationID))
		log.Infow("influx mirror attached", "url", cfg.Influx.URL, "bucket", cfg.Influx.Bucket)
	}
	if cfg.MQTT.Broker != "" {
		m, err := repository.NewMQTTMirror(cfg.MQTT.Broker, cfg.MQTT.ClientID, cfg.MQTT.Topic)
		if err != nil {
			log.Warnw("mqtt mirror unavailable, continuing without it", "broker", cfg.MQTT.Broker, "err", err)
		} else {
			mirrors = append(mirrors, m)
			log.Infow("mqtt mirror attached", "broker", cfg.MQTT.Broker, "topic", cfg.MQTT.Topic)
		}
	}
	return mirrors
}

func closeMirrors(mirrors []repository.RecordMirror) {
	for _, m := range mirrors {
		m.Close()
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = config.DefaultPort
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown blocks until a termination signal arrives or the collector
// dies, then stops background work and the HTTP server. A collector error
// exits non-zero after the HTTP server drains.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, collectErr <-chan error, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Infow("shutting down...")

		// stop the collector and wait for its final cycle
		cancel()
		if err := <-collectErr; err != nil {
			shutdownHTTP(srv, log)
			log.Fatalw("collector terminated", "err", err)
		}
		shutdownHTTP(srv, log)

	case err := <-collectErr:
		shutdownHTTP(srv, log)
		if err != nil {
			log.Fatalw("collector terminated", "err", err)
		}
	}
}

// shutdownHTTP allows in-flight requests to complete before returning.
func shutdownHTTP(srv *server.Server, log *logger.Logger) {
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
