package application

import (
	"errors"
	"sync"
	"time"

	"lottery/internal/domain"
	"lottery/internal/domain/entities"
)

// memLog records event log calls in memory.
type memLog struct {
	mu          sync.Mutex
	started     []time.Time
	registered  []entities.Participant
	snapshots   []entities.Snapshot
	draws       []entities.Draw
	cancelled   int
	failOnWrite error
}

func (l *memLog) SessionStarted(at time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.started = append(l.started, at)
	return nil
}

func (l *memLog) Registered(p entities.Participant) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failOnWrite != nil {
		return l.failOnWrite
	}
	l.registered = append(l.registered, p)
	return nil
}

func (l *memLog) Snapshot(s entities.Snapshot) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failOnWrite != nil {
		return l.failOnWrite
	}
	l.snapshots = append(l.snapshots, s)
	return nil
}

func (l *memLog) Drawn(d entities.Draw) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failOnWrite != nil {
		return l.failOnWrite
	}
	l.draws = append(l.draws, d)
	return nil
}

func (l *memLog) Cancelled() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cancelled++
	return nil
}

func (l *memLog) counts() (registered, snapshots, draws, cancelled int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.registered), len(l.snapshots), len(l.draws), l.cancelled
}

var errDiskFull = errors.New("disk full")

// keyTranslator returns message ids untranslated.
type keyTranslator struct{}

func (keyTranslator) T(_, key string, _ map[string]any) string { return key }

// stepNotifier hands control back to the test on every progress line so the
// fake clock can be advanced one tick at a time.
type stepNotifier struct {
	progress   chan domain.Phase
	mu         sync.Mutex
	extensions int
	closed     int
	cancelled  int
}

func newStepNotifier() *stepNotifier {
	return &stepNotifier{progress: make(chan domain.Phase)}
}

func (n *stepNotifier) Progress(phase domain.Phase, _ time.Duration, _ int) {
	n.progress <- phase
}

func (n *stepNotifier) ExtensionStarted(time.Duration, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.extensions++
}

func (n *stepNotifier) RegistrationClosed() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed++
}

func (n *stepNotifier) LotteryCancelled() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelled++
}
