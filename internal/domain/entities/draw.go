package entities

import "time"

// Draw is the result of selecting a winner among the registered participants.
type Draw struct {
	Participants []string
	Winner       string
	DrawnAt      time.Time
}

// Snapshot is the roster at a point in time.
type Snapshot struct {
	Participants []string
	TakenAt      time.Time
}

// Count returns the number of participants in the snapshot.
func (s Snapshot) Count() int {
	return len(s.Participants)
}
