package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestLoggerInit(t *testing.T) {
	// Test development mode
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize development logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	logger := Get()
	if logger == nil {
		t.Fatal("logger is nil after initialization")
	}

	// Test production mode
	err = Init()
	if err != nil {
		t.Fatalf("failed to initialize production logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	logger = Get()
	if logger == nil {
		t.Fatal("logger is nil after initialization")
	}
}

// Basic logging test (slog-backed; no Sugar)
func TestLoggerBasic(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	logger := Get()
	if logger == nil {
		t.Fatal("logger is nil")
	}

	ctx := context.Background()
	logger.Info(ctx, "test message", String("k", "v"))
}

func TestLoggerNamed(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	namedLogger := Named("test")
	if namedLogger == nil {
		t.Fatal("named logger is nil")
	}

	ctx := context.Background()
	namedLogger.Info(ctx, "test message")
}

func TestLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(WithFormat(FormatJSON), WithWriter(&buf), WithLevel("debug"))
	if err != nil {
		t.Fatalf("failed to build json logger: %v", err)
	}

	l.Named("graphql").Debug(context.Background(), "query done",
		String("query", "user"),
		Bool("fallback", false),
		Duration("took", 15*time.Millisecond),
	)

	out := buf.String()
	for _, want := range []string{`"msg":"query done"`, `"graphql":{`, `"query":"user"`, `"fallback":false`, `"source":`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(WithWriter(&buf), WithLevel("warn"))
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}

	l.Info(context.Background(), "hidden")
	l.Warn(context.Background(), "shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("info entry should be filtered at warn level: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn entry missing: %s", buf.String())
	}
}

func TestLoggerInvalidOptions(t *testing.T) {
	if _, err := New(WithFormat("xml")); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := New(WithLevel("loud")); err == nil {
		t.Error("expected error for unknown level")
	}
	if err := SetLevelString("warning"); err != nil {
		t.Errorf("warning should be accepted: %v", err)
	}
	_ = SetLevelString("info")
}

func TestNop(t *testing.T) {
	Nop().Error(context.Background(), "discarded", Error(nil))
}
