package service

import (
	"context"

	"github.com/MrLeaw/aws-clf-c02-quiz/internal/domain/entities"
)

// QuestionSource supplies the full, freshly shuffled question catalog.
type QuestionSource interface {
	Fetch(ctx context.Context) ([]entities.Question, error)
}

// ProgressStore persists the progress record. Load returns nil when no
// record exists; Save replaces the previous record as a whole.
type ProgressStore interface {
	Load(ctx context.Context) (*entities.Progress, error)
	Save(ctx context.Context, p *entities.Progress) error
}
