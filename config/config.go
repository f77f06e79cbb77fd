package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"ggp/meta"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the run configuration shared by every command.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Perf   PerfConfig   `yaml:"perf"`
	Match  MatchConfig  `yaml:"match"`
	Output OutputConfig `yaml:"output"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=trace debug info warn error"`
}

// PerfConfig drives the depth-charge throughput test.
type PerfConfig struct {
	Goroutines int           `yaml:"goroutines" validate:"gte=1,lte=1024"`
	Duration   time.Duration `yaml:"duration" validate:"gt=0"`
	MaxDepth   int           `yaml:"max_depth" validate:"gte=1"`
	Seed       uint64        `yaml:"seed"`
}

// MatchConfig drives engine-refereed matches. Players are assigned to roles
// in order, cycling when there are more roles than entries.
type MatchConfig struct {
	Games    int           `yaml:"games" validate:"gte=1"`
	Players  []string      `yaml:"players" validate:"min=1,dive,oneof=legal random"`
	Seed     uint64        `yaml:"seed"`
	MaxMoves int           `yaml:"max_moves" validate:"gte=1"`
	MoveTime time.Duration `yaml:"move_time" validate:"gt=0"`
}

type OutputConfig struct {
	Dir      string `yaml:"dir" validate:"required_if=WriteCSV true"`
	WriteCSV bool   `yaml:"write_csv"`
}

var validate = validator.New()

func Default() Config {
	return Config{
		Log: LogConfig{
			Level: "info",
		},
		Perf: PerfConfig{
			Goroutines: meta.GO_ROUTINES,
			Duration:   meta.PERF_DURATION,
			MaxDepth:   meta.MAX_NUMBER_STATES,
		},
		Match: MatchConfig{
			Games:    meta.NUM_GAMES,
			Players:  []string{"random"},
			MaxMoves: meta.MAX_MOVES,
			MoveTime: time.Second,
		},
		Output: OutputConfig{
			Dir: meta.OUTPUT_DIR,
		},
	}
}

// Load merges defaults, the YAML file at path (skipped when empty or
// missing) and GGP_* environment overrides, then validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := loadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("load config env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func loadEnv(cfg *Config) error {
	var errs []error
	atoi := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			i, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = i
		}
	}
	seed := func(key string, dst *uint64) {
		if v := os.Getenv(key); v != "" {
			u, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = u
		}
	}
	duration := func(key string, dst *time.Duration) {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}

	if v := os.Getenv("GGP_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	atoi("GGP_PERF_GOROUTINES", &cfg.Perf.Goroutines)
	duration("GGP_PERF_DURATION", &cfg.Perf.Duration)
	atoi("GGP_PERF_MAX_DEPTH", &cfg.Perf.MaxDepth)
	seed("GGP_PERF_SEED", &cfg.Perf.Seed)

	atoi("GGP_MATCH_GAMES", &cfg.Match.Games)
	if v := os.Getenv("GGP_MATCH_PLAYERS"); v != "" {
		cfg.Match.Players = strings.Split(v, ",")
	}
	seed("GGP_MATCH_SEED", &cfg.Match.Seed)
	atoi("GGP_MATCH_MAX_MOVES", &cfg.Match.MaxMoves)
	duration("GGP_MATCH_MOVE_TIME", &cfg.Match.MoveTime)

	if v := os.Getenv("GGP_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("GGP_OUTPUT_WRITE_CSV"); v != "" {
		cfg.Output.WriteCSV = v == "true" || v == "1"
	}

	return errors.Join(errs...)
}

func (c Config) Validate() error {
	return validate.Struct(c)
}

// PlayerFor returns the player kind assigned to role.
func (c MatchConfig) PlayerFor(role int) string {
	return c.Players[role%len(c.Players)]
}
