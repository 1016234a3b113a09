package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: " warning ", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNewTerminalHandler_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewTerminalHandler(&buf, slog.LevelWarn))

	logger.Info("hidden")
	logger.Warn("shown", "participants", 3)

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "shown")
	require.Contains(t, out, "participants=3")
	require.NotContains(t, out, "\x1b[", "buffers are not terminals, no colour expected")
}

func TestIsTerminal_NonFile(t *testing.T) {
	require.False(t, IsTerminal(&bytes.Buffer{}))
}
