package debugdraw

import (
	"log/slog"
	"testing"
)

func TestConfigOptionsKeepsVerbose(t *testing.T) {
	defer logLevel.Set(logLevel.Level())

	SetVerbose(true)
	Config{}.Options()
	if logLevel.Level() != slog.LevelDebug {
		t.Errorf("non-verbose config reset the log level to %v", logLevel.Level())
	}

	SetVerbose(false)
	Config{Verbose: true}.Options()
	if logLevel.Level() != slog.LevelDebug {
		t.Errorf("verbose config left the log level at %v", logLevel.Level())
	}
}
