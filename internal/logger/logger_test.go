package logger

import (
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

func TestGetLogger(t *testing.T) {
	if GetLogger() == nil {
		t.Fatalf("GetLogger() = nil, expected a non-nil logger")
	}

	var wg sync.WaitGroup
	for routine := 0; routine < 2; routine++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				if GetLogger() == nil {
					t.Errorf("GetLogger() = nil in goroutine %d", n)
					return
				}
			}
		}(routine)
	}
	wg.Wait()
}

func TestGetLoggerConfiguredSetsLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	l := GetLoggerConfigured(zerolog.WarnLevel)
	if l != GetLogger() {
		t.Errorf("GetLoggerConfigured() returned a different logger than GetLogger()")
	}
	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Errorf("GlobalLevel() = %v, expected %v", zerolog.GlobalLevel(), zerolog.WarnLevel)
	}

	GetLoggerConfigured(zerolog.Disabled)
	if zerolog.GlobalLevel() != zerolog.Disabled {
		t.Errorf("GlobalLevel() = %v, expected %v", zerolog.GlobalLevel(), zerolog.Disabled)
	}
}
