package output

import (
	"time"

	"lottery/internal/domain"
)

// Notifier renders countdown state to the operator.
type Notifier interface {
	Progress(phase domain.Phase, remaining time.Duration, participants int)
	ExtensionStarted(window time.Duration, minParticipants int)
	RegistrationClosed()
	LotteryCancelled()
}
