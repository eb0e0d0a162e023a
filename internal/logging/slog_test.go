package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels_WriteExpectedOutput(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()

	tests := []struct {
		level string
		msg   string
		key   string
		val   string
	}{
		{"DEBUG", "dbg", "a", "1"},
		{"INFO", "inf", "b", "2"},
		{"WARN", "wrn", "c", "3"},
		{"ERROR", "err", "d", "4"},
	}

	for _, tc := range tests {
		assert.Contains(t, out, "level="+tc.level)
		assert.Contains(t, out, "msg="+tc.msg)
		assert.Contains(t, out, tc.key+"="+tc.val)
	}
}

func TestSlogLogger_With_AddsAttributes(t *testing.T) {
	log, buf := newTestLogger(t)

	log.With("request_id", "123", "module", "rest").Info(context.Background(), "hello", "k", "v")

	out := buf.String()
	for _, s := range []string{"level=INFO", "msg=hello", "request_id=123", "module=rest", "k=v"} {
		assert.Contains(t, out, s)
	}
}

func TestNewForWriter_SelectsHandlerByEnv(t *testing.T) {
	t.Run("local is text with debug", func(t *testing.T) {
		var buf bytes.Buffer
		l := newForWriter(EnvLocal, &buf)
		l.Debug(context.Background(), "visible")
		assert.Contains(t, buf.String(), "level=DEBUG")
	})

	t.Run("dev is json with debug", func(t *testing.T) {
		var buf bytes.Buffer
		l := newForWriter(EnvDev, &buf)
		l.Debug(context.Background(), "visible")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		assert.Equal(t, "DEBUG", rec["level"])
	})

	t.Run("prod drops debug", func(t *testing.T) {
		var buf bytes.Buffer
		l := newForWriter(EnvProd, &buf)
		l.Debug(context.Background(), "hidden")
		l.Info(context.Background(), "shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.True(t, strings.Contains(buf.String(), "shown"))
	})
}

func TestDiscard_DoesNotPanic(t *testing.T) {
	l := Discard()
	ctx := context.TODO()
	l.Info(ctx, "ctx-ok")
	l.Debug(ctx, "ctx-ok")
	l.Warn(ctx, "ctx-ok")
	l.Error(ctx, "ctx-ok")
	_ = l.With("a", 1)
}
