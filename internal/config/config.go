package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Simulator holds all configuration for the autobattle simulator.
type Simulator struct {
	LogLevel string `yaml:"log_level"`

	// Formation file with both rosters.
	FormationPath string `yaml:"formation_path"`

	// Random source seed. Batch runs derive per-battle seeds from it.
	Seed uint64 `yaml:"seed"`

	// Batch simulation
	Battles int `yaml:"battles"` // number of battles to run (default: 1)
	Workers int `yaml:"workers"` // concurrent battles in a batch (default: 4)

	// Presentation pacing. Zero delays run the battle synchronously.
	Pacing Pacing `yaml:"pacing"`

	// Event fan-out queue per listener.
	EventQueueSize int `yaml:"event_queue_size"`

	// Starting gold of each side's purse; player and opponent start even.
	StartingGold int `yaml:"starting_gold"`

	Battle Battle `yaml:"battle"`
	Status Status `yaml:"status"`
	Combat Combat `yaml:"combat"`
	Skills Skills `yaml:"skills"`

	// Database for battle reports. Persistence is skipped when disabled.
	Database DatabaseConfig `yaml:"database"`
}

// Pacing holds presentation suspension points between slots.
type Pacing struct {
	SlotDelay  time.Duration `yaml:"slot_delay"`
	RoundDelay time.Duration `yaml:"round_delay"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`

	// Pool size. Zero means one connection per batch worker.
	MaxConns int32 `yaml:"max_conns"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultSimulator returns Simulator config with sensible defaults.
func DefaultSimulator() Simulator {
	return Simulator{
		LogLevel:       "info",
		FormationPath:  "config/formation.yaml",
		Seed:           1,
		Battles:        1,
		Workers:        4,
		EventQueueSize: 256,
		StartingGold:   10,
		Battle:         DefaultBattle(),
		Status:         DefaultStatus(),
		Combat:         DefaultCombat(),
		Skills:         DefaultSkills(),
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "autobattle",
			Password: "autobattle",
			DBName:   "autobattle",
			SSLMode:  "disable",
		},
	}
}

// Load loads simulator config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Simulator, error) {
	cfg := DefaultSimulator()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the simulator cannot run with.
func (s Simulator) Validate() error {
	if s.Battles < 1 {
		return fmt.Errorf("battles must be >= 1, got %d", s.Battles)
	}
	if s.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", s.Workers)
	}
	if s.Battle.MaxRounds < 1 {
		return fmt.Errorf("battle.max_rounds must be >= 1, got %d", s.Battle.MaxRounds)
	}
	if s.Pacing.SlotDelay < 0 || s.Pacing.RoundDelay < 0 {
		return fmt.Errorf("pacing delays must not be negative")
	}
	if err := s.Status.Validate(); err != nil {
		return err
	}
	if err := s.Combat.Validate(); err != nil {
		return err
	}
	return s.Skills.Validate()
}
