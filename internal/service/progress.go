package service

import (
	"context"
	"errors"

	"github.com/MrLeaw/aws-clf-c02-quiz/internal/domain/entities"
)

var ErrNoProgress = errors.New("no progress recorded")

// ProgressService reads the persisted record for reporting.
type ProgressService struct {
	repository ProgressStore
}

func NewProgressService(repository ProgressStore) *ProgressService {
	return &ProgressService{repository: repository}
}

// Inspect loads the persisted record and checks its invariants.
// Unlike a quiz run, an unreadable record is reported as an error here.
func (s *ProgressService) Inspect(ctx context.Context) (*entities.Progress, entities.ProgressIssues, error) {
	p, err := s.repository.Load(ctx)
	if err != nil {
		return nil, entities.ProgressIssues{}, err
	}
	if p == nil {
		return nil, entities.ProgressIssues{}, ErrNoProgress
	}

	return p, p.Inspect(), nil
}
