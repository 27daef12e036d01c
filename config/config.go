// Package config resolves process settings: environment first, then
// command-line flags on top.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Debug     bool   `env:"AVATAR_DEBUG"`
	LogLevel  string `env:"AVATAR_LOG_LEVEL"  envDefault:"info"`
	PrefabDir string `env:"AVATAR_PREFAB_DIR" envDefault:"prefabs"`
	Watch     bool   `env:"AVATAR_WATCH"`
	TPS       int    `env:"AVATAR_TPS"        envDefault:"60"`
}

// FromEnv loads configuration from environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// RegisterFlags binds flags whose defaults are the current values, so an
// explicit flag beats the environment.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.Debug, "debug", c.Debug, "start with the debug overlay open")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (trace, debug, info, warn, error)")
	fs.StringVar(&c.PrefabDir, "prefabs", c.PrefabDir, "directory whose prefabs override the embedded ones")
	fs.BoolVar(&c.Watch, "watch", c.Watch, "reload prefabs when they change on disk")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
}

// Load parses the environment and then args.
func Load(name string, args []string) (Config, error) {
	cfg, err := FromEnv()
	if err != nil {
		return Config{}, err
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.TPS <= 0 {
		return fmt.Errorf("%w: tps %d", ErrInvalidConfig, c.TPS)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// TickDuration is the fixed simulation step in seconds.
func (c Config) TickDuration() float64 { return 1 / float64(c.TPS) }

// Logger builds the process logger.
func (c Config) Logger() *logrus.Logger {
	lg := logrus.New()
	lg.Out = os.Stderr
	lg.Formatter = &logrus.TextFormatter{ForceColors: true, FullTimestamp: true}
	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		lg.Level = lvl
	}
	return lg
}
