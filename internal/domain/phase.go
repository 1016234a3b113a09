package domain

// Phase is a stage of the registration countdown.
type Phase string

const (
	PhasePrimary   Phase = "primary"
	PhaseExtension Phase = "extension"
)

// Outcome is how a countdown ended.
type Outcome int

const (
	// OutcomeClosed means registration closed normally and a draw follows.
	OutcomeClosed Outcome = iota + 1
	// OutcomeCancelled means nobody registered within the full window.
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeClosed:
		return "closed"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}
