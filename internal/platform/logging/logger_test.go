package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
)

func TestLogger_WritesKeyValueFieldsAndRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newWithWriter(&buf, LevelDebug, FormatJSON)

	ctx := WithRequestID(context.Background(), "req-42")
	logger.WarnContext(ctx, "save team failed", "team_id", "abc", "error", errors.New("boom"))

	var entry map[string]any
	if err := sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode log entry: %v (raw=%s)", err, buf.String())
	}
	if entry["msg"] != "save team failed" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["team_id"] != "abc" {
		t.Fatalf("unexpected team_id: %v", entry["team_id"])
	}
	if entry["error"] != "boom" {
		t.Fatalf("unexpected error field: %v", entry["error"])
	}
	if entry["request_id"] != "req-42" {
		t.Fatalf("unexpected request_id: %v", entry["request_id"])
	}
}

func TestLogger_RespectsLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newWithWriter(&buf, LevelWarn, FormatJSON)
	logger.Info("hidden")
	logger.Debug("hidden too")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}

	logger.Named("teams").Error("shown", "odd")
	if !strings.Contains(buf.String(), `"logger":"teams"`) {
		t.Fatalf("expected logger name in output, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), `"odd":null`) {
		t.Fatalf("expected dangling key to be kept, got %q", buf.String())
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	if got := ParseFormat(" Console "); got != FormatConsole {
		t.Fatalf("expected console, got %q", got)
	}
	if got := ParseFormat("anything"); got != FormatJSON {
		t.Fatalf("expected json fallback, got %q", got)
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	t.Parallel()

	var logger *Logger
	logger.Info("no panic")
	if logger.With("k", "v") == nil {
		t.Fatalf("expected non-nil child logger")
	}
}
