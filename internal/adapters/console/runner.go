package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"lottery/internal/domain"
	"lottery/internal/ports/input"
)

// Countdown is the background task closing the registration window.
type Countdown interface {
	Run(ctx context.Context) (domain.Outcome, error)
}

// Runner is the terminal front end of a session: it feeds lines from in to
// the lottery while the countdown runs, then performs the draw.
type Runner struct {
	lottery   input.LotteryUseCase
	countdown Countdown
	console   *Console
	in        io.Reader
	window    time.Duration
	logger    *slog.Logger
}

func NewRunner(
	lottery input.LotteryUseCase,
	countdown Countdown,
	console *Console,
	in io.Reader,
	window time.Duration,
	logger *slog.Logger,
) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		lottery:   lottery,
		countdown: countdown,
		console:   console,
		in:        in,
		window:    window,
		logger:    logger,
	}
}

type countdownResult struct {
	outcome domain.Outcome
	err     error
}

// Run drives one session to completion. Cancelling ctx is treated as an
// operator interrupt: progress is saved and no winner is drawn.
// Only fatal failures (the event log cannot be written) are returned.
func (r *Runner) Run(ctx context.Context) error {
	r.console.Welcome(r.window)

	loopCtx, stop := context.WithCancel(ctx)
	defer stop()

	done := make(chan countdownResult, 1)
	go func() {
		outcome, err := r.countdown.Run(loopCtx)
		done <- countdownResult{outcome: outcome, err: err}
	}()

	lines := r.readLines(loopCtx)
	r.console.Prompt()

	for {
		select {
		case <-ctx.Done():
			// The countdown must be gone before the last snapshot is written.
			stop()
			<-done
			return r.interrupt(ctx)

		case res := <-done:
			if res.err != nil {
				if ctx.Err() != nil {
					return r.interrupt(ctx)
				}
				return fmt.Errorf("countdown: %w", res.err)
			}
			r.logger.Debug("registration window ended", "outcome", res.outcome.String())
			if res.outcome == domain.OutcomeCancelled {
				return nil
			}
			return r.draw(ctx)

		case line, ok := <-lines:
			if !ok {
				// End of input: stop reading and let the countdown finish.
				r.logger.Debug("input closed, waiting for countdown")
				lines = nil
				continue
			}
			msg, err := r.lottery.Register(ctx, line)
			if err != nil && !domain.IsRejection(err) {
				stop()
				<-done
				return err
			}
			r.console.Reply(msg, err)
			if r.lottery.IsOpen() {
				r.console.Prompt()
			}
		}
	}
}

func (r *Runner) interrupt(ctx context.Context) error {
	r.console.Interrupted()
	r.logger.Info("interrupted, saving progress", "participants", r.lottery.Count())
	if err := r.lottery.SaveProgress(context.WithoutCancel(ctx)); err != nil {
		return err
	}
	return nil
}

func (r *Runner) draw(ctx context.Context) error {
	d, err := r.lottery.Draw(ctx)
	if errors.Is(err, domain.ErrNoParticipants) {
		r.console.Message(domain.Code(err))
		return nil
	}
	if err != nil {
		return err
	}
	r.console.Announce(d)
	return nil
}

// maxLineBytes bounds a single input line. Longer usernames still fit and are
// rejected by the length rule.
const maxLineBytes = 1 << 20

// readLines forwards lines from the input until EOF, then closes the channel.
// A blocked read on a terminal cannot be interrupted; the goroutine ends with
// the process in that case.
func (r *Runner) readLines(ctx context.Context) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r.in)
		scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			r.logger.Error("input read failed", "error", err)
			r.console.Message("input_unreadable")
		}
	}()
	return lines
}
