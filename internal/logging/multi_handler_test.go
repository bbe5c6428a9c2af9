package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiHandler_FansOut(t *testing.T) {
	var first, second bytes.Buffer
	handler := NewMultiHandler(
		slog.NewJSONHandler(&first, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&second, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)

	slog.New(handler).Info("fan out")

	assert.Contains(t, first.String(), "fan out")
	assert.Contains(t, second.String(), "fan out")
}

func TestMultiHandler_RespectsChildLevels(t *testing.T) {
	var info, errOnly bytes.Buffer
	handler := NewMultiHandler(
		slog.NewJSONHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&errOnly, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	logger := slog.New(handler)

	logger.Info("info only")
	assert.Contains(t, info.String(), "info only")
	assert.Empty(t, errOnly.String())

	logger.Error("everywhere")
	assert.Contains(t, errOnly.String(), "everywhere")
}

func TestMultiHandler_Enabled(t *testing.T) {
	handler := NewMultiHandler(
		slog.NewJSONHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}),
	)

	ctx := context.Background()
	assert.False(t, handler.Enabled(ctx, slog.LevelInfo))
	assert.True(t, handler.Enabled(ctx, slog.LevelError))
}

func TestMultiHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	handler := NewMultiHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	slog.New(handler).With("request_id", "abc").Info("tagged")

	assert.Contains(t, buf.String(), `"request_id":"abc"`)
}
