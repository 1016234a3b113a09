package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"lottery/internal/domain"
	"lottery/internal/ports/output"
)

// CountdownConfig holds the timing rules of a registration window.
type CountdownConfig struct {
	RegistrationWindow time.Duration
	ExtensionWindow    time.Duration
	MinParticipants    int
	CancelAfter        time.Duration
	TickInterval       time.Duration
	SnapshotInterval   time.Duration
}

// DefaultCountdownConfig returns the standard 10s window with a single 3s
// extension below 5 participants.
func DefaultCountdownConfig() CountdownConfig {
	return CountdownConfig{
		RegistrationWindow: 10 * time.Second,
		ExtensionWindow:    3 * time.Second,
		MinParticipants:    5,
		CancelAfter:        5 * time.Second,
		TickInterval:       100 * time.Millisecond,
		SnapshotInterval:   2 * time.Second,
	}
}

// Countdown runs the registration window of a session and closes it.
// It is the only writer of the session's open flag and extension counter.
type Countdown struct {
	session  *Session
	notifier output.Notifier
	clock    clockwork.Clock
	cfg      CountdownConfig
	logger   *slog.Logger

	lastSnapshot time.Time
}

func NewCountdown(session *Session, notifier output.Notifier, cfg CountdownConfig, logger *slog.Logger) *Countdown {
	if logger == nil {
		logger = slog.Default()
	}
	return &Countdown{
		session:  session,
		notifier: notifier,
		clock:    session.clock,
		cfg:      cfg,
		logger:   logger,
	}
}

// Run blocks until registration is closed or cancelled, or ctx is done.
// On ctx cancellation it returns ctx.Err() and leaves the session untouched.
func (c *Countdown) Run(ctx context.Context) (domain.Outcome, error) {
	start := c.session.StartedAt()
	c.lastSnapshot = start

	if err := c.phase(ctx, domain.PhasePrimary, start.Add(c.cfg.RegistrationWindow)); err != nil {
		return 0, err
	}

	if c.session.TryExtend(c.cfg.MinParticipants) {
		c.notifier.ExtensionStarted(c.cfg.ExtensionWindow, c.cfg.MinParticipants)
		deadline := c.clock.Now().Add(c.cfg.ExtensionWindow)
		if err := c.phase(ctx, domain.PhaseExtension, deadline); err != nil {
			return 0, err
		}
	}

	elapsed := c.session.Elapsed()
	if elapsed >= c.cfg.CancelAfter {
		cancelled, err := c.session.CancelIfEmpty(ctx)
		if err != nil {
			return 0, err
		}
		if cancelled {
			c.notifier.LotteryCancelled()
			return domain.OutcomeCancelled, nil
		}
	}

	c.session.Close()
	c.notifier.RegistrationClosed()
	c.logger.Debug("countdown finished", "elapsed", elapsed, "participants", c.session.Count())
	return domain.OutcomeClosed, nil
}

// phase renders progress on every tick until deadline or until the session
// is closed elsewhere. Snapshots are only taken during the primary phase.
func (c *Countdown) phase(ctx context.Context, phase domain.Phase, deadline time.Time) error {
	ticker := c.clock.NewTicker(c.cfg.TickInterval)
	defer ticker.Stop()

	c.logger.Debug("countdown phase started", "phase", phase, "deadline", deadline)
	for {
		now := c.clock.Now()
		remaining := deadline.Sub(now)
		if remaining <= 0 || !c.session.IsOpen() {
			return nil
		}
		c.notifier.Progress(phase, remaining, c.session.Count())

		if phase == domain.PhasePrimary && now.Sub(c.lastSnapshot) >= c.cfg.SnapshotInterval {
			if err := c.session.SaveProgress(ctx); err != nil {
				return fmt.Errorf("periodic snapshot: %w", err)
			}
			c.lastSnapshot = now
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
		}
	}
}
