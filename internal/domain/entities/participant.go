package entities

import "time"

// Participant represents a user registered in the lottery.
type Participant struct {
	Username     string
	RegisteredAt time.Time
}
