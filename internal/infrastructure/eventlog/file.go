package eventlog

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"lottery/internal/domain/entities"
	"lottery/internal/ports/output"
)

var _ output.EventLog = (*File)(nil)

const (
	timestampLayout = "2006-01-02 15:04:05"
	clockLayout     = "15:04:05"
)

// File is an append-only text event log. Every record is rendered in memory
// and written with a single call on a freshly opened handle, so a crash can at
// worst truncate the last record.
type File struct {
	path string
	loc  *time.Location
	mu   sync.Mutex
}

// NewFile returns a log appending to path. A nil loc means time.Local.
func NewFile(path string, loc *time.Location) *File {
	if loc == nil {
		loc = time.Local
	}
	return &File{path: path, loc: loc}
}

func (f *File) Path() string { return f.path }

func (f *File) SessionStarted(at time.Time) error {
	return f.append(func(b *bytes.Buffer) {
		fmt.Fprintf(b, "\n\n--- New Lottery Session Started at %s ---\n", f.stamp(at))
	})
}

func (f *File) Registered(p entities.Participant) error {
	return f.append(func(b *bytes.Buffer) {
		fmt.Fprintf(b, "[%s] Registered user: %s\n", f.stamp(p.RegisteredAt), p.Username)
	})
}

func (f *File) Snapshot(s entities.Snapshot) error {
	return f.append(func(b *bytes.Buffer) {
		fmt.Fprintf(b, "[Progress Save at %s] Current participants: %d\n",
			s.TakenAt.In(f.loc).Format(clockLayout), s.Count())
		if s.Count() > 0 {
			b.WriteString("Current registrations:\n")
			writeRoster(b, s.Participants)
		}
	})
}

func (f *File) Drawn(d entities.Draw) error {
	return f.append(func(b *bytes.Buffer) {
		fmt.Fprintf(b, "\n[%s] Lottery Draw Results:\n", f.stamp(d.DrawnAt))
		fmt.Fprintf(b, "Total participants: %d\n", len(d.Participants))
		b.WriteString("Participants:\n")
		writeRoster(b, d.Participants)
		fmt.Fprintf(b, "\nWINNER: %s\n", d.Winner)
		b.WriteString("--- Lottery Session Ended ---\n")
	})
}

func (f *File) Cancelled() error {
	return f.append(func(b *bytes.Buffer) {
		b.WriteString("No participants registered. Lottery cancelled.\n")
	})
}

func (f *File) stamp(t time.Time) string {
	return t.In(f.loc).Format(timestampLayout)
}

func writeRoster(b *bytes.Buffer, roster []string) {
	for _, name := range roster {
		fmt.Fprintf(b, "- %s\n", name)
	}
}

func (f *File) append(render func(b *bytes.Buffer)) (err error) {
	var buf bytes.Buffer
	render(&buf)

	f.mu.Lock()
	defer f.mu.Unlock()

	fh, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("eventlog: open %s: %w", f.path, err)
	}
	defer func() {
		if cerr := fh.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("eventlog: close %s: %w", f.path, cerr))
		}
	}()

	if _, err := fh.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("eventlog: write %s: %w", f.path, err)
	}
	return nil
}
