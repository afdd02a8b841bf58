package storage

import (
	"context"
	"sync"

	"github.com/MrLeaw/aws-clf-c02-quiz/internal/domain/entities"
)

// ProgressStorage provides in-memory storage for a progress record.
// Nothing survives the process; it backs guest runs and tests.
type ProgressStorage struct {
	mu       sync.RWMutex
	progress *entities.Progress
	saves    int
}

// NewProgressStorage creates a new ProgressStorage, optionally seeded with a record.
func NewProgressStorage(seed *entities.Progress) *ProgressStorage {
	return &ProgressStorage{progress: clone(seed)}
}

// Load returns a copy of the stored record, or nil if nothing was saved.
func (s *ProgressStorage) Load(_ context.Context) (*entities.Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.progress), nil
}

// Save replaces the stored record with a copy of p.
func (s *ProgressStorage) Save(_ context.Context, p *entities.Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = clone(p)
	s.saves++
	return nil
}

// Saves returns how many times Save was called.
func (s *ProgressStorage) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

func clone(p *entities.Progress) *entities.Progress {
	if p == nil {
		return nil
	}

	c := &entities.Progress{
		AlreadyAnsweredUUIDs: append([]string(nil), p.AlreadyAnsweredUUIDs...),
		WrongAnsweredUUIDs:   append([]string(nil), p.WrongAnsweredUUIDs...),
		Times:                append([]float64(nil), p.Times...),
	}
	if p.CorrectCount != nil {
		v := *p.CorrectCount
		c.CorrectCount = &v
	}
	if p.TotalCount != nil {
		v := *p.TotalCount
		c.TotalCount = &v
	}

	return c
}
