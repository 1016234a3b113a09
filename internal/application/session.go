package application

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/samber/lo"

	"lottery/internal/domain"
	"lottery/internal/domain/entities"
	"lottery/internal/ports/input"
	"lottery/internal/ports/output"
)

var _ input.LotteryUseCase = (*Session)(nil)

// Picker chooses an index in [0, n). *rand.Rand satisfies it.
type Picker interface {
	IntN(n int) int
}

// NewPicker returns a ChaCha8 generator seeded from the operating system.
func NewPicker() *rand.Rand {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		// crypto/rand only fails when the OS source is unusable.
		binary.LittleEndian.PutUint64(seed[:], uint64(time.Now().UnixNano()))
	}
	return rand.New(rand.NewChaCha8(seed))
}

// SessionOptions configures a Session. Zero fields get defaults.
type SessionOptions struct {
	Clock  clockwork.Clock
	Picker Picker
	Locale string
	Logger *slog.Logger
}

// Session owns the registration ledger of one lottery run.
// It is shared by the input loop and the countdown; every field below mu is
// guarded by it.
type Session struct {
	id         uuid.UUID
	startedAt  time.Time
	clock      clockwork.Clock
	picker     Picker
	eventLog   output.EventLog
	translator output.T
	locale     string
	logger     *slog.Logger
	pickerMu   sync.Mutex

	mu           sync.RWMutex
	participants []entities.Participant
	index        map[string]struct{}
	open         bool
	extensions   int
}

// NewSession starts a session: the clock starts now and the start banner is
// appended to the event log.
func NewSession(eventLog output.EventLog, translator output.T, opts SessionOptions) (*Session, error) {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Picker == nil {
		opts.Picker = NewPicker()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	id := uuid.New()
	s := &Session{
		id:         id,
		startedAt:  opts.Clock.Now(),
		clock:      opts.Clock,
		picker:     opts.Picker,
		eventLog:   eventLog,
		translator: translator,
		locale:     opts.Locale,
		logger:     opts.Logger.With("session_id", id.String()),
		index:      make(map[string]struct{}),
		open:       true,
	}
	if err := eventLog.SessionStarted(s.startedAt); err != nil {
		return nil, fmt.Errorf("log session start: %w", err)
	}
	s.logger.Info("lottery session started", "started_at", s.startedAt)
	return s, nil
}

func (s *Session) ID() uuid.UUID        { return s.id }
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Elapsed is the time since the session started.
func (s *Session) Elapsed() time.Duration {
	return s.clock.Since(s.startedAt)
}

// Register validates and records a username. The returned string is the
// operator-facing reply in both the success and the rejection case; the error
// is a domain error on rejection, or a wrapped log failure which is fatal.
func (s *Session) Register(ctx context.Context, username string) (string, error) {
	username = strings.TrimSpace(username)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLocked(username); err != nil {
		s.logger.Debug("registration rejected", "username", username, "reason", domain.Code(err))
		return s.reply(domain.Code(err), username), err
	}

	participant := entities.Participant{Username: username, RegisteredAt: s.clock.Now()}
	if err := s.eventLog.Registered(participant); err != nil {
		return "", fmt.Errorf("log registration: %w", err)
	}
	s.participants = append(s.participants, participant)
	s.index[username] = struct{}{}
	s.logger.Info("participant registered", "username", username, "participants", len(s.participants))
	return s.reply("registration_success", username), nil
}

func (s *Session) checkLocked(username string) error {
	if !s.open {
		return domain.ErrRegistrationClosed
	}
	if err := domain.ValidateUsername(username); err != nil {
		return err
	}
	if _, exists := s.index[username]; exists {
		return domain.ErrDuplicateUsername
	}
	return nil
}

func (s *Session) reply(key, username string) string {
	return s.translator.T(s.locale, key, map[string]any{
		"Username": username,
		"Max":      domain.MaxUsernameLength,
	})
}

// Draw picks a winner uniformly among the registered participants and logs
// the result. An empty roster yields domain.ErrNoParticipants and no log write.
func (s *Session) Draw(ctx context.Context) (*entities.Draw, error) {
	roster := s.Roster()
	if len(roster) == 0 {
		return nil, domain.ErrNoParticipants
	}

	s.pickerMu.Lock()
	i := s.picker.IntN(len(roster))
	s.pickerMu.Unlock()

	draw := &entities.Draw{
		Participants: roster,
		Winner:       roster[i],
		DrawnAt:      s.clock.Now(),
	}
	if err := s.eventLog.Drawn(*draw); err != nil {
		return nil, fmt.Errorf("log draw: %w", err)
	}
	s.logger.Info("winner drawn", "winner", draw.Winner, "participants", len(roster))
	return draw, nil
}

// SaveProgress appends a roster snapshot to the event log.
func (s *Session) SaveProgress(ctx context.Context) error {
	snap := entities.Snapshot{Participants: s.Roster(), TakenAt: s.clock.Now()}
	if err := s.eventLog.Snapshot(snap); err != nil {
		return fmt.Errorf("log snapshot: %w", err)
	}
	s.logger.Debug("progress saved", "participants", snap.Count())
	return nil
}

// Roster returns the registered usernames in registration order.
func (s *Session) Roster() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lo.Map(s.participants, func(p entities.Participant, _ int) string {
		return p.Username
	})
}

func (s *Session) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.participants)
}

func (s *Session) IsOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.open
}

// Extensions returns how many times the window has been extended (0 or 1).
func (s *Session) Extensions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.extensions
}

// TryExtend grants the one-time extension when fewer than minParticipants
// are registered and no extension happened yet.
func (s *Session) TryExtend(minParticipants int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.participants) >= minParticipants || s.extensions > 0 {
		return false
	}
	s.extensions++
	s.logger.Info("registration extended", "participants", len(s.participants))
	return true
}

// Close stops accepting registrations. Closing twice is a no-op.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open {
		s.open = false
		s.logger.Info("registration closed", "participants", len(s.participants))
	}
}

// CancelIfEmpty closes registration and records that the lottery was called
// off, provided nobody has registered. The check and the close happen under
// one lock so a late registration cannot slip in between.
func (s *Session) CancelIfEmpty(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.participants) > 0 {
		return false, nil
	}
	s.open = false
	if err := s.eventLog.Cancelled(); err != nil {
		return false, fmt.Errorf("log cancellation: %w", err)
	}
	s.logger.Warn("lottery cancelled, no participants")
	return true, nil
}
