package lift

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/xyproto/randomstring"
	"gopkg.in/yaml.v3"
)

const runIDLen = 10

// Environment keys read by ApplyEnv.
const (
	EnvMaxFloor     = "LIFTSIM_MAX_FLOOR"
	EnvLiftCount    = "LIFTSIM_LIFT_COUNT"
	EnvTimePerFloor = "LIFTSIM_TIME_PER_FLOOR"
	EnvDoorDwell    = "LIFTSIM_DOOR_DWELL"
	EnvRunID        = "LIFTSIM_RUN_ID"
)

type Config struct {
	MaxFloor     int           `yaml:"MaxFloor"`
	LiftCount    int           `yaml:"LiftCount"`
	TimePerFloor time.Duration `yaml:"TimePerFloor"`
	DoorDwell    time.Duration `yaml:"DoorDwell"`
	RunID        string        `yaml:"RunID"`
}

func DefaultConfig() Config {
	return Config{
		MaxFloor:     DefaultMaxFloor,
		LiftCount:    DefaultLifts,
		TimePerFloor: TimePerFloor,
		DoorDwell:    DoorDwell,
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig. Keys missing from
// the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	file, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&c); err != nil {
		return c, fmt.Errorf("decode config %s: %w", path, err)
	}
	return c, nil
}

// ApplyEnv overrides c from a .env file and then the process environment.
// Values in the file win. An empty path skips the file.
func ApplyEnv(c Config, path string) (Config, error) {
	env := map[string]string{}
	if path != "" {
		var err error
		env, err = godotenv.Read(path)
		if err != nil {
			return c, fmt.Errorf("read env file %s: %w", path, err)
		}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := env[key]; ok {
			return v, true
		}
		return os.LookupEnv(key)
	}

	if v, ok := lookup(EnvMaxFloor); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, &ConfigurationError{Field: EnvMaxFloor, Value: v, Reason: "not an integer"}
		}
		c.MaxFloor = n
	}
	if v, ok := lookup(EnvLiftCount); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c, &ConfigurationError{Field: EnvLiftCount, Value: v, Reason: "not an integer"}
		}
		c.LiftCount = n
	}
	if v, ok := lookup(EnvTimePerFloor); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return c, &ConfigurationError{Field: EnvTimePerFloor, Value: v, Reason: "not a duration"}
		}
		c.TimePerFloor = d
	}
	if v, ok := lookup(EnvDoorDwell); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return c, &ConfigurationError{Field: EnvDoorDwell, Value: v, Reason: "not a duration"}
		}
		c.DoorDwell = d
	}
	if v, ok := lookup(EnvRunID); ok {
		c.RunID = v
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.MaxFloor < 1 || c.MaxFloor > MaxFloorLimit {
		return &ConfigurationError{Field: "MaxFloor", Value: c.MaxFloor, Reason: fmt.Sprintf("must be in [1, %d]", MaxFloorLimit)}
	}
	if c.LiftCount < 1 || c.LiftCount > MaxLiftCount {
		return &ConfigurationError{Field: "LiftCount", Value: c.LiftCount, Reason: fmt.Sprintf("must be in [1, %d]", MaxLiftCount)}
	}
	if c.TimePerFloor <= 0 {
		return &ConfigurationError{Field: "TimePerFloor", Value: c.TimePerFloor, Reason: "must be positive"}
	}
	if c.DoorDwell <= 0 {
		return &ConfigurationError{Field: "DoorDwell", Value: c.DoorDwell, Reason: "must be positive"}
	}
	return nil
}

// withRunID fills in a random run id when none was configured.
func (c Config) withRunID() Config {
	if c.RunID == "" {
		c.RunID = randomstring.EnglishFrequencyString(runIDLen)
		Log.Info().Msgf("No run id provided, generated random id \"%v\"", c.RunID)
	}
	return c
}

func (c Config) timing() timing {
	return timing{perFloor: c.TimePerFloor, dwell: c.DoorDwell}
}
