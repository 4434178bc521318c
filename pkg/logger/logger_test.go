package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, slog.LevelDebug).Named("augment")

	ctx := context.Background()
	l.Info(ctx, "pitcher processed", String("pitcher", "Gerrit Cole"), Int("starts", 3))
	l.Warn(ctx, "skipped", Error(errors.New("boom")))
	l.Debug(ctx, "detail", Float64("era", 3.5), Any("ok", true))

	out := buf.String()
	assert.Contains(t, out, "component=augment")
	assert.Contains(t, out, `pitcher="Gerrit Cole"`)
	assert.Contains(t, out, "starts=3")
	assert.Contains(t, out, "error=boom")
	assert.Contains(t, out, "era=3.5")
	assert.Contains(t, out, "level=DEBUG")
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, slog.LevelWarn)

	l.Info(context.Background(), "hidden")
	l.Error(context.Background(), "shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetLevelString(t *testing.T) {
	require.NoError(t, Init())
	t.Cleanup(func() { SetLevel(slog.LevelInfo) })

	for _, lvl := range []string{"debug", "INFO", "", "warn", "warning", "error"} {
		assert.NoError(t, SetLevelString(lvl), lvl)
	}
	assert.Error(t, SetLevelString("loud"))
	assert.NotNil(t, Get())
	assert.NotNil(t, Named("x"))
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error(context.Background(), "nothing happens")
	assert.NotNil(t, l.Named("child"))
}
