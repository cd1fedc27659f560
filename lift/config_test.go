package lift

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() = %v", err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	c := DefaultConfig()
	if err := c.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
	if c.TimePerFloor != 2000*time.Millisecond || c.DoorDwell != 2500*time.Millisecond {
		t.Errorf("DefaultConfig() timing = %v/%v", c.TimePerFloor, c.DoorDwell)
	}
}

func TestValidateBounds(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"smallest building", Config{MaxFloor: 1, LiftCount: 1, TimePerFloor: 1, DoorDwell: 1}, false},
		{"largest building", Config{MaxFloor: 100, LiftCount: 10, TimePerFloor: time.Second, DoorDwell: time.Second}, false},
		{"floor limit", Config{MaxFloor: 101, LiftCount: 1, TimePerFloor: 1, DoorDwell: 1}, true},
		{"lift limit", Config{MaxFloor: 5, LiftCount: 11, TimePerFloor: 1, DoorDwell: 1}, true},
		{"negative floors", Config{MaxFloor: -3, LiftCount: 1, TimePerFloor: 1, DoorDwell: 1}, true},
		{"no dwell", Config{MaxFloor: 5, LiftCount: 1, TimePerFloor: 1, DoorDwell: 0}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "liftsim.yaml", "MaxFloor: 20\nLiftCount: 5\nTimePerFloor: 1500ms\nRunID: lobby\n")

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() = %v", err)
	}
	expected := Config{MaxFloor: 20, LiftCount: 5, TimePerFloor: 1500 * time.Millisecond, DoorDwell: DoorDwell, RunID: "lobby"}
	if c != expected {
		t.Errorf("LoadConfig() = %+v, expected %+v", c, expected)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadConfig(missing) = %v, expected ErrNotExist", err)
	}
	path := writeFile(t, "bad.yaml", "MaxFloor: [1, 2\n")
	if _, err := LoadConfig(path); err == nil {
		t.Errorf("LoadConfig(bad yaml) succeeded")
	}
}

func TestApplyEnvFromFile(t *testing.T) {
	path := writeFile(t, ".env", "LIFTSIM_MAX_FLOOR=30\nLIFTSIM_DOOR_DWELL=1s\nLIFTSIM_RUN_ID=from-file\n")
	t.Setenv(EnvRunID, "from-process")
	t.Setenv(EnvLiftCount, "7")

	c, err := ApplyEnv(DefaultConfig(), path)
	if err != nil {
		t.Fatalf("ApplyEnv() = %v", err)
	}
	if c.MaxFloor != 30 || c.DoorDwell != time.Second {
		t.Errorf("ApplyEnv() did not apply the file: %+v", c)
	}
	if c.RunID != "from-file" {
		t.Errorf("RunID = %q, expected the file to win", c.RunID)
	}
	if c.LiftCount != 7 {
		t.Errorf("LiftCount = %d, expected the process environment value", c.LiftCount)
	}
	if c.TimePerFloor != TimePerFloor {
		t.Errorf("TimePerFloor = %v, expected default", c.TimePerFloor)
	}
}

func TestApplyEnvRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{EnvMaxFloor, "ten"},
		{EnvLiftCount, "2.5"},
		{EnvTimePerFloor, "fast"},
		{EnvDoorDwell, "10"},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := ApplyEnv(DefaultConfig(), "")
			var ce *ConfigurationError
			if !errors.As(err, &ce) || ce.Field != tc.key {
				t.Errorf("ApplyEnv() = %v, expected ConfigurationError for %s", err, tc.key)
			}
		})
	}
}

func TestApplyEnvMissingFile(t *testing.T) {
	if _, err := ApplyEnv(DefaultConfig(), filepath.Join(t.TempDir(), "nope.env")); err == nil {
		t.Errorf("ApplyEnv() with a missing file succeeded")
	}
}
