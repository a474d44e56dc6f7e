package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	CORS      CORSConfig
	Generator GeneratorConfig
	Playback  PlaybackConfig
}

type ServerConfig struct {
	Port      string
	Env       string
	LogLevel  string
	StaticDir string
}

type CORSConfig struct {
	AllowOrigins string
}

type GeneratorConfig struct {
	DefaultCount int
	MaxCount     int
	RetryFactor  int
}

type PlaybackConfig struct {
	DefaultBPM int
}

// IsDebug reports whether verbose request logging is enabled
func (c *Config) IsDebug() bool {
	return strings.EqualFold(c.Server.LogLevel, "debug")
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variables
	viper.AutomaticEnv()

	// Bind environment variables with underscores to nested config keys
	_ = viper.BindEnv("server.port", "SERVER_PORT")
	_ = viper.BindEnv("server.env", "SERVER_ENV")
	_ = viper.BindEnv("server.log_level", "LOG_LEVEL")
	_ = viper.BindEnv("server.static_dir", "STATIC_DIR")
	_ = viper.BindEnv("cors.allow_origins", "CORS_ALLOW_ORIGINS")
	_ = viper.BindEnv("generator.default_count", "GENERATOR_DEFAULT_COUNT")
	_ = viper.BindEnv("generator.max_count", "GENERATOR_MAX_COUNT")
	_ = viper.BindEnv("generator.retry_factor", "GENERATOR_RETRY_FACTOR")
	_ = viper.BindEnv("playback.default_bpm", "PLAYBACK_DEFAULT_BPM")

	// Defaults
	viper.SetDefault("server.port", "8000")
	viper.SetDefault("server.env", "development")
	viper.SetDefault("server.log_level", "info")
	viper.SetDefault("server.static_dir", "")
	viper.SetDefault("cors.allow_origins", "*")
	viper.SetDefault("generator.default_count", 5)
	viper.SetDefault("generator.max_count", 10)
	viper.SetDefault("generator.retry_factor", 10)
	viper.SetDefault("playback.default_bpm", 100)

	// Try to read config file (optional)
	_ = viper.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Port:      viper.GetString("server.port"),
			Env:       viper.GetString("server.env"),
			LogLevel:  viper.GetString("server.log_level"),
			StaticDir: viper.GetString("server.static_dir"),
		},
		CORS: CORSConfig{
			AllowOrigins: viper.GetString("cors.allow_origins"),
		},
		Generator: GeneratorConfig{
			DefaultCount: viper.GetInt("generator.default_count"),
			MaxCount:     viper.GetInt("generator.max_count"),
			RetryFactor:  viper.GetInt("generator.retry_factor"),
		},
		Playback: PlaybackConfig{
			DefaultBPM: viper.GetInt("playback.default_bpm"),
		},
	}

	return cfg, nil
}
