package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"lottery/internal/adapters/console"
	"lottery/internal/application"
	"lottery/internal/config"
	"lottery/internal/infrastructure/eventlog"
	"lottery/internal/infrastructure/i18n"
	"lottery/internal/logging"
	"lottery/pkg/tz"
)

// run is main without the process: operating system handles come in as
// arguments and failures come back as an error.
//
// Cancellation, interrupt and a completed draw all return nil.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Append-only event log path")
	flags.StringVar(&cfg.Locale, "locale", cfg.Locale, "Language of operator messages (en, fr)")
	flags.DurationVar(&cfg.RegistrationWindow, "window", cfg.RegistrationWindow, "Primary registration window")
	noColor := flags.Bool("no-color", !cfg.Colours, "Disable coloured output")
	if err := flags.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	cfg.Colours = !*noColor
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	logger := slog.New(logging.NewTerminalHandler(stderr, level))

	loc, err := tz.Load(cfg.Timezone)
	if err != nil {
		return err
	}

	// The signal only cancels the context; saving progress happens in the runner.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	translator, err := i18n.NewTranslator(cfg.Locale, logger)
	if err != nil {
		return err
	}
	eventLog := eventlog.NewFile(cfg.LogFile, loc)

	session, err := application.NewSession(eventLog, translator, application.SessionOptions{
		Locale: cfg.Locale,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	logger.Info("lottery configuration loaded",
		"session_id", session.ID().String(),
		"log_file", eventLog.Path(),
		"window", cfg.RegistrationWindow,
		"extension", cfg.ExtensionWindow,
		"min_participants", cfg.MinParticipants)

	term := console.New(stdout, translator, cfg.Locale, cfg.Colours && logging.IsTerminal(stdout))
	countdown := application.NewCountdown(session, term, countdownConfig(cfg), logger)
	runner := console.NewRunner(session, countdown, term, stdin, cfg.RegistrationWindow, logger)

	return runner.Run(ctx)
}

func countdownConfig(cfg *config.Config) application.CountdownConfig {
	return application.CountdownConfig{
		RegistrationWindow: cfg.RegistrationWindow,
		ExtensionWindow:    cfg.ExtensionWindow,
		MinParticipants:    cfg.MinParticipants,
		CancelAfter:        cfg.CancelAfter,
		TickInterval:       cfg.TickInterval,
		SnapshotInterval:   cfg.SnapshotInterval,
	}
}
