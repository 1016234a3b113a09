package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"lottery/internal/application"
	"lottery/internal/config"
)

// setupEnv points the lottery at a temporary log file with short windows.
func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)

	logFile := filepath.Join(dir, "lottery_log.txt")
	t.Setenv("LOTTERY_LOG_FILE", logFile)
	t.Setenv("LOTTERY_TIMEZONE", "UTC")
	t.Setenv("LOTTERY_LOG_LEVEL", "error")
	t.Setenv("LOTTERY_REGISTRATION_WINDOW", "200ms")
	t.Setenv("LOTTERY_EXTENSION_WINDOW", "50ms")
	t.Setenv("LOTTERY_CANCEL_AFTER", "100ms")
	t.Setenv("LOTTERY_TICK_INTERVAL", "10ms")
	t.Setenv("LOTTERY_SNAPSHOT_INTERVAL", "50ms")
	return logFile
}

func TestRun_NoInputCancels(t *testing.T) {
	logFile := setupEnv(t)
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"lottery", "-no-color"}, strings.NewReader(""), &stdout, &stderr)
	require.NoError(t, err)

	require.Contains(t, stdout.String(), "Welcome to the Lottery System!")
	require.Contains(t, stdout.String(), "No users registered in the allowed time. Exiting...")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "--- New Lottery Session Started at ")
	require.Contains(t, string(data), "No participants registered. Lottery cancelled.\n")
}

func TestRun_DrawsWinner(t *testing.T) {
	logFile := setupEnv(t)
	t.Setenv("LOTTERY_MIN_PARTICIPANTS", "1")
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"lottery"}, strings.NewReader("alice\n"), &stdout, &stderr)
	require.NoError(t, err)

	require.Contains(t, stdout.String(), "Registration successful!")
	require.Contains(t, stdout.String(), "LOTTERY RESULTS")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "] Registered user: alice\n")
	require.Contains(t, string(data), "\nWINNER: alice\n--- Lottery Session Ended ---\n")
}

func TestRun_Flags(t *testing.T) {
	setupEnv(t)
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"lottery", "-h"}, strings.NewReader(""), &stdout, &stderr)
	require.NoError(t, err)
	require.Contains(t, stderr.String(), "-log-file")

	err = run(context.Background(), []string{"lottery", "-unknown"}, strings.NewReader(""), &stdout, &stderr)
	require.ErrorContains(t, err, "failed to parse flags")

	err = run(context.Background(), []string{"lottery", "-window", "0s"}, strings.NewReader(""), &stdout, &stderr)
	require.ErrorContains(t, err, "LOTTERY_REGISTRATION_WINDOW")

	err = run(context.Background(), []string{"lottery", "-locale", "de"}, strings.NewReader(""), &stdout, &stderr)
	require.ErrorContains(t, err, `no catalogue for locale "de"`)
}

func TestRun_InvalidEnvironment(t *testing.T) {
	setupEnv(t)
	t.Setenv("LOTTERY_TIMEZONE", "Mars/Olympus")
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"lottery"}, strings.NewReader(""), &stdout, &stderr)
	require.ErrorContains(t, err, "LOTTERY_TIMEZONE")
	require.Empty(t, stdout.String())
}

func TestRun_CancelledContextSavesProgress(t *testing.T) {
	logFile := setupEnv(t)
	t.Setenv("LOTTERY_REGISTRATION_WINDOW", "1h")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var stdout, stderr bytes.Buffer

	err := run(ctx, []string{"lottery"}, strings.NewReader(""), &stdout, &stderr)
	require.NoError(t, err)
	require.Contains(t, stdout.String(), "Interrupt received. Saving progress and exiting...")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "Current participants: 0\n")
	require.NotContains(t, string(data), "Lottery Draw Results:")
}

func TestCountdownConfig_DefaultsMatchApplication(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, application.DefaultCountdownConfig(), countdownConfig(cfg))
}
