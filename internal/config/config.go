// Package config loads runtime settings from configs/config.yml, a .env file and the environment.
// Environment variables win over the file; nested keys map to upper snake case (db.path -> DB_PATH).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	IngestToken string
	DBPath      string
	LogLevel    string
	MQTT        MQTTConfig
	Simulator   SimulatorConfig
}

// MQTTConfig configures the optional broker subscription. An empty Broker disables it.
type MQTTConfig struct {
	Broker   string
	Port     int
	Topic    string
	ClientID string
	Username string
	Password string
}

func (c MQTTConfig) Enabled() bool { return c.Broker != "" }

// URL returns the broker address in the tcp://host:port form paho expects.
func (c MQTTConfig) URL() string {
	if strings.Contains(c.Broker, "://") {
		return c.Broker
	}
	return fmt.Sprintf("tcp://%s:%d", c.Broker, c.Port)
}

type SimulatorConfig struct {
	Enabled  bool
	Interval time.Duration
}

var defaults = map[string]any{
	"port":               "5000",
	"ingest_token":       "",
	"db.path":            "sensordata.db",
	"log.level":          "info",
	"mqtt.broker":        "",
	"mqtt.port":          1883,
	"mqtt.topic":         "hydro/sensors",
	"mqtt.client_id":     "hydro-monitor",
	"mqtt.username":      "",
	"mqtt.password":      "",
	"simulator.enabled":  false,
	"simulator.interval": "5s",
}

// Load reads .env (if present), then config.yml from configDirs (default "configs"), then the environment.
// A missing config file is not an error.
func Load(configDirs ...string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	v.SetConfigName("config")
	v.SetConfigType("yml")
	if len(configDirs) == 0 {
		configDirs = []string{"configs"}
	}
	for _, dir := range configDirs {
		v.AddConfigPath(dir)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Port:        v.GetString("port"),
		IngestToken: v.GetString("ingest_token"),
		DBPath:      v.GetString("db.path"),
		LogLevel:    v.GetString("log.level"),
		MQTT: MQTTConfig{
			Broker:   v.GetString("mqtt.broker"),
			Port:     v.GetInt("mqtt.port"),
			Topic:    v.GetString("mqtt.topic"),
			ClientID: v.GetString("mqtt.client_id"),
			Username: v.GetString("mqtt.username"),
			Password: v.GetString("mqtt.password"),
		},
		Simulator: SimulatorConfig{
			Enabled:  v.GetBool("simulator.enabled"),
			Interval: v.GetDuration("simulator.interval"),
		},
	}

	if cfg.Simulator.Interval <= 0 {
		return nil, fmt.Errorf("simulator.interval must be positive, got %s", cfg.Simulator.Interval)
	}
	if cfg.MQTT.Enabled() && cfg.MQTT.Topic == "" {
		return nil, errors.New("mqtt.topic is required when mqtt.broker is set")
	}
	return cfg, nil
}
