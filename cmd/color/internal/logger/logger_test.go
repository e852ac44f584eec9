package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func TestNewHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	slog.New(newHandler(&buf, slog.LevelInfo, "JSON")).Info("exchange completed", "color_count", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("json handler output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "exchange completed" {
		t.Errorf("msg = %v", entry["msg"])
	}

	buf.Reset()
	slog.New(newHandler(&buf, slog.LevelInfo, "")).Info("exchange completed")
	if !strings.Contains(buf.String(), `msg="exchange completed"`) {
		t.Errorf("text handler output = %q", buf.String())
	}
}

func TestNewHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(newHandler(&buf, slog.LevelInfo, "text"))
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug line written at info level: %q", buf.String())
	}
}

func TestContextVariants(t *testing.T) {
	Init()
	var buf bytes.Buffer
	install(newHandler(&buf, slog.LevelDebug, "text"))
	t.Cleanup(func() { install(newHandler(io.Discard, slog.LevelInfo, "text")) })

	ctx := context.Background()
	DebugContext(ctx, "dialing", "addr", "localhost:45565")
	InfoContext(ctx, "resolved")
	WarnContext(ctx, "retrying")
	ErrorContext(ctx, "exchange failed")

	for _, want := range []string{"level=DEBUG", "level=INFO", "level=WARN", "level=ERROR", "addr=localhost:45565"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}
}
