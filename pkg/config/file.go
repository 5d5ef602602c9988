package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	iso8601 "github.com/senseyeio/duration"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

const DefaultUpdateInterval = "PT1M"

type Board struct {
	Identifier string `yaml:"identifier" validate:"required"`
	Config     Config `yaml:"config"`
}

// File is the on disk configuration used by the long running commands
type File struct {
	// UpdateInterval is an ISO8601 duration, eg. PT30S
	UpdateInterval string `yaml:"updateInterval"`

	Defaults Config  `yaml:"defaults"`
	Boards   []Board `yaml:"boards" validate:"dive"`
}

func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseFile(data)
}

func ParseFile(data []byte) (*File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if file.UpdateInterval == "" {
		file.UpdateInterval = DefaultUpdateInterval
	}
	if _, err := file.Interval(); err != nil {
		return nil, err
	}

	file.Defaults = file.Defaults.ApplyDefaults(Defaults())

	identifiers := map[string]bool{}
	for i := range file.Boards {
		board := &file.Boards[i]
		board.Config = board.Config.ApplyDefaults(file.Defaults)

		if identifiers[board.Identifier] {
			return nil, fmt.Errorf("board %q is defined more than once", board.Identifier)
		}
		identifiers[board.Identifier] = true

		if err := validate.Struct(board); err != nil {
			return nil, fmt.Errorf("board %q: %w", board.Identifier, err)
		}
		if err := board.Config.Validate(); err != nil {
			return nil, fmt.Errorf("board %q: %w", board.Identifier, err)
		}
	}

	return &file, nil
}

// Interval returns UpdateInterval as a time.Duration relative to now
func (f *File) Interval() (time.Duration, error) {
	duration, err := iso8601.ParseISO8601(f.UpdateInterval)
	if err != nil {
		return 0, fmt.Errorf("parse update interval %q: %w", f.UpdateInterval, err)
	}

	now := time.Now()
	interval := duration.Shift(now).Sub(now)

	if interval <= 0 {
		return 0, fmt.Errorf("update interval %q must be positive", f.UpdateInterval)
	}

	return interval, nil
}
