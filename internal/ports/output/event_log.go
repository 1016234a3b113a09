package output

import (
	"time"

	"lottery/internal/domain/entities"
)

// EventLog is the durable, append-only record of a session.
// Implementations never read back or rewrite earlier records.
type EventLog interface {
	SessionStarted(at time.Time) error
	Registered(p entities.Participant) error
	Snapshot(s entities.Snapshot) error
	Drawn(d entities.Draw) error
	Cancelled() error
}
