package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MrLeaw/aws-clf-c02-quiz/internal/domain/entities"
)

var (
	// ErrProgressNotSaved is returned by RecordAnswer when the answer was
	// recorded in memory but could not be persisted.
	ErrProgressNotSaved = errors.New("progress not saved")
	// ErrNotStarted is returned when the session was never built.
	ErrNotStarted = errors.New("quiz session not started")
)

// QuizService drives a quiz run: it builds the session from the catalog and
// the persisted history, hands out questions, records answers and persists
// progress after every answer.
type QuizService struct {
	source QuestionSource
	store  ProgressStore
	logger *zap.Logger

	session *entities.QuizSession
}

func NewQuizService(source QuestionSource, store ProgressStore, logger *zap.Logger) *QuizService {
	return &QuizService{
		source: source,
		store:  store,
		logger: logger,
	}
}

// Start fetches the catalog and resumes from persisted progress.
// A fetch failure is returned as is; no session can be built without a catalog.
func (s *QuizService) Start(ctx context.Context) error {
	catalog, err := s.source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch catalog: %w", err)
	}

	s.Resume(ctx, catalog)
	return nil
}

// Resume builds the session from the given catalog and the persisted history.
func (s *QuizService) Resume(ctx context.Context, catalog []entities.Question) {
	s.build(catalog, s.loadHistory(ctx))
}

// Reload fetches a fresh catalog and merges it with the persisted history.
func (s *QuizService) Reload(ctx context.Context) error {
	s.logger.Info("reloading catalog")
	return s.Start(ctx)
}

// Reset discards the session and starts over from the given catalog with an
// empty history. Storage is left untouched until the next recorded answer.
func (s *QuizService) Reset(catalog []entities.Question) {
	s.logger.Info("resetting session")
	s.build(catalog, nil)
}

// Restart fetches a fresh catalog and resets the session.
func (s *QuizService) Restart(ctx context.Context) error {
	catalog, err := s.source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch catalog: %w", err)
	}

	s.Reset(catalog)
	return nil
}

func (s *QuizService) build(catalog []entities.Question, progress *entities.Progress) {
	session := entities.NewQuizSession(catalog, progress)
	session.ID = uuid.NewString()

	log := s.logger.With(zap.String("run_id", session.ID))
	if n := session.Retired(); n > 0 {
		log.Info("dropped retired questions from history", zap.Int("count", n))
	}
	if !session.CountersInSync() {
		snap := session.Snapshot()
		log.Warn("persisted counters do not match resolved history",
			zap.Int("total_count", snap.TotalAnswered),
			zap.Int("correct_count", snap.CorrectCount),
			zap.Int("resolved", session.Cursor()),
		)
	}

	log.Info("session built",
		zap.Int("catalog", len(catalog)),
		zap.Int("pool", len(session.Queue())),
		zap.Int("answered", session.Cursor()),
	)

	s.session = session
}

// loadHistory never fails: a missing, unreadable or malformed record
// degrades to an empty history.
func (s *QuizService) loadHistory(ctx context.Context) *entities.Progress {
	progress, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("progress unavailable, starting with empty history", zap.Error(err))
		return nil
	}
	return progress
}

// HasNext reports whether a question is left. When it is false the caller
// should offer a restart.
func (s *QuizService) HasNext() bool {
	return s.session != nil && s.session.HasNext()
}

// NextQuestion returns the current question without advancing.
func (s *QuizService) NextQuestion() (entities.Question, error) {
	if s.session == nil {
		return entities.Question{}, ErrNotStarted
	}
	return s.session.Current()
}

// RecordAnswer judges the selection for the current question, advances and
// persists the session.
//
// When persistence fails the answer still counts: the returned answer is
// valid and the error wraps ErrProgressNotSaved.
func (s *QuizService) RecordAnswer(ctx context.Context, selected []string, elapsed time.Duration) (*entities.QuizAnswer, error) {
	if s.session == nil {
		return nil, ErrNotStarted
	}

	qa, err := s.session.Record(selected, float64(elapsed.Milliseconds())/1000)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("answer recorded",
		zap.String("run_id", s.session.ID),
		zap.String("question_id", qa.Question.UUID),
		zap.Bool("correct", qa.IsCorrect),
		zap.Float64("elapsed", qa.Elapsed),
	)

	if err := s.store.Save(ctx, s.session.Progress()); err != nil {
		s.logger.Error("failed to save progress",
			zap.String("run_id", s.session.ID),
			zap.Error(err),
		)
		return qa, fmt.Errorf("%w: %w", ErrProgressNotSaved, err)
	}

	return qa, nil
}

// Snapshot returns the session counters.
func (s *QuizService) Snapshot() entities.Snapshot {
	if s.session == nil {
		return entities.Snapshot{Completed: true}
	}
	return s.session.Snapshot()
}
