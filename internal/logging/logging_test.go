package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level, env string
		debug      bool
	}{
		{"debug", "development", true},
		{"info", "production", false},
		{"", "development", false},
	}
	for _, tt := range tests {
		l, err := New(tt.level, tt.env)
		if err != nil {
			t.Fatalf("New(%q, %q): %v", tt.level, tt.env, err)
		}
		if got := l.Core().Enabled(zapcore.DebugLevel); got != tt.debug {
			t.Errorf("New(%q, %q) debug enabled = %v, want %v", tt.level, tt.env, got, tt.debug)
		}
	}
}

func TestNewInvalidLevel(t *testing.T) {
	if _, err := New("loud", "development"); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) returned nil")
	}
}
