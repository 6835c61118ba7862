package internal

import (
	"bytes"
	"log"
	"os"
	"testing"
)

func TestNewDefaultLoggerLevel(t *testing.T) {
	cases := []struct {
		env  string
		want LogLevel
	}{
		{"ERROR", LogLevelError},
		{"WARN", LogLevelWarn},
		{"INFO", LogLevelInfo},
		{"DEBUG", LogLevelDebug},
		{"", LogLevelInfo},
		{"bogus", LogLevelInfo},
	}
	for _, tc := range cases {
		t.Setenv("LOG_LEVEL", tc.env)
		if got := NewDefaultLogger().GetLevel(); got != tc.want {
			t.Errorf("LOG_LEVEL=%q: level = %d, want %d", tc.env, got, tc.want)
		}
	}
}

func TestLoggerLevelGating(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	l := NewLogger(LogLevelWarn)
	l.Debug("hidden detail")
	l.Info("hidden info")
	l.Warn("kept warning")
	l.Error("kept error")

	out := buf.String()
	if bytes.Contains([]byte(out), []byte("hidden")) {
		t.Errorf("messages below WARN leaked: %q", out)
	}
	for _, want := range []string{"[WARN] kept warning", "[ERROR] kept error"} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}
