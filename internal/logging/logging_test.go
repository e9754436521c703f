package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestConfig(t *testing.T) {
	tests := []struct {
		level, format string
		wantLevel     zapcore.Level
		wantEncoding  string
		wantErr       bool
	}{
		{"info", "console", zapcore.InfoLevel, "console", false},
		{"debug", "json", zapcore.DebugLevel, "json", false},
		{"WARN", "", zapcore.WarnLevel, "console", false},
		{"loud", "console", 0, "", true},
		{"info", "xml", 0, "", true},
	}
	for _, tc := range tests {
		t.Run(tc.level+"/"+tc.format, func(t *testing.T) {
			cfg, err := Config(tc.level, tc.format)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Config() error = %v", err)
			}
			if cfg.Level.Level() != tc.wantLevel || cfg.Encoding != tc.wantEncoding {
				t.Fatalf("level %s encoding %s, want %s %s", cfg.Level.Level(), cfg.Encoding, tc.wantLevel, tc.wantEncoding)
			}
		})
	}
}

func TestNew(t *testing.T) {
	logger, err := New("error", "json")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info enabled at error level")
	}
}
