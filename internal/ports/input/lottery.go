package input

import (
	"context"

	"lottery/internal/domain/entities"
)

// LotteryUseCase is what a front end drives during a session.
type LotteryUseCase interface {
	// Register returns the operator-facing reply and, on rejection, the domain error.
	Register(ctx context.Context, username string) (string, error)
	Draw(ctx context.Context) (*entities.Draw, error)
	SaveProgress(ctx context.Context) error
	IsOpen() bool
	Count() int
}
