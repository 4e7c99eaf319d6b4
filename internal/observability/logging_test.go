package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureDefault(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestContextValuesAccumulate(t *testing.T) {
	ctx := WithBuildID(context.Background(), "b-1")
	ctx = WithStage(ctx, "discover")
	ctx = WithLanguage(ctx, "fr")

	assert.Equal(t, LogContext{BuildID: "b-1", Stage: "discover", Language: "fr"}, GetContext(ctx))

	ctx = WithStage(ctx, "render")
	assert.Equal(t, "render", GetContext(ctx).Stage)
	assert.Equal(t, "b-1", GetContext(ctx).BuildID)
}

func TestGetContext_Empty(t *testing.T) {
	assert.Equal(t, LogContext{}, GetContext(context.Background()))
}

func TestInfoContext_IncludesContextAttrs(t *testing.T) {
	buf := captureDefault(t)
	ctx := WithStage(WithBuildID(context.Background(), "b-2"), "copy_static")

	InfoContext(ctx, "Copied", slog.Int("count", 3))

	out := buf.String()
	assert.Contains(t, out, "build_id=b-2")
	assert.Contains(t, out, "stage=copy_static")
	assert.Contains(t, out, "count=3")
}

func TestDebugAndWarnContext(t *testing.T) {
	buf := captureDefault(t)
	ctx := WithLanguage(context.Background(), "de")

	DebugContext(ctx, "debug line")
	WarnContext(ctx, "warn line")
	ErrorContext(ctx, "error line")

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "language=de")
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))

	Logger(WithBuildID(context.Background(), "b-3"), base).Info("hello")
	assert.Contains(t, buf.String(), "build_id=b-3")

	assert.Same(t, base, Logger(context.Background(), base))
}
