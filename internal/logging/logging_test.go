package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLoggerIsSilent(t *testing.T) {
	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestSetLoggerRoutesComponentLogs(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWriter(&buf, "debug")
	require.NoError(t, err)

	SetLogger(l)
	defer SetLogger(nil)

	With("editor").Debug("hello", slog.Int("n", 3))
	assert.Contains(t, buf.String(), "component=editor")
	assert.Contains(t, buf.String(), "n=3")
}
