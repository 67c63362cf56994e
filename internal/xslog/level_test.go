package xslog

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "debug", want: LevelDebug},
		{in: "WARN", want: LevelWarn},
		{in: " error ", want: LevelError},
		{in: "trace", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, LevelWarn, FormatJSON)
	logger.Info("dropped")
	logger.Warn("kept", UserID("u-1"))

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info record written at warn level: %s", out)
	}
	if !strings.Contains(out, `"user_id":"u-1"`) {
		t.Errorf("output missing user_id attr: %s", out)
	}

	if got := LevelDebug.ToSlog(); got != slog.LevelDebug {
		t.Errorf("LevelDebug.ToSlog() = %v, want %v", got, slog.LevelDebug)
	}
}
