package entities

import (
	"errors"
	"time"
)

var (
	// ErrExhausted is returned when the working queue has no question left.
	ErrExhausted = errors.New("no questions left in session")
	// ErrNotPresented is returned when an answer is recorded for a question
	// that was not presented since the last recorded answer.
	ErrNotPresented = errors.New("current question was not presented")
)

// QuizSession is the working state of a quiz run.
//
// The queue holds the answered questions first, in answer order, followed by
// the questions not answered yet. The cursor points at the first unanswered
// question. All mutation goes through Record.
type QuizSession struct {
	ID        string    // run identifier, used for log correlation
	StartedAt time.Time // timestamp when the session was built

	queue     []Question
	cursor    int
	presented bool

	wrong    []string
	wrongSet map[string]struct{}
	times    []float64

	correctCount int
	totalCount   int

	retired int
}

// QuizAnswer is the outcome of a single recorded answer.
type QuizAnswer struct {
	Question       Question
	Selected       []string
	CorrectAnswers []string
	IsCorrect      bool
	Elapsed        float64 // seconds
}

// NewQuizSession merges a freshly fetched catalog with persisted progress.
//
// Persisted identifiers missing from the catalog are dropped. The answered
// prefix keeps the persisted order; the remaining questions keep the catalog
// order. Counters present in the record are trusted as they are, even when
// some answered identifiers could not be resolved. A nil progress, or one
// that fails Validate, yields a fresh session.
func NewQuizSession(catalog []Question, progress *Progress) *QuizSession {
	s := &QuizSession{
		StartedAt: time.Now(),
		wrongSet:  make(map[string]struct{}),
	}

	unique := dedupeCatalog(catalog)
	byID := make(map[string]Question, len(unique))
	for _, q := range unique {
		byID[q.UUID] = q
	}

	if progress == nil || progress.Validate() != nil {
		progress = &Progress{}
	}

	answered := make(map[string]struct{}, len(progress.AlreadyAnsweredUUIDs))
	queue := make([]Question, 0, len(unique))
	for _, id := range progress.AlreadyAnsweredUUIDs {
		if _, dup := answered[id]; dup {
			continue
		}
		q, ok := byID[id]
		if !ok {
			s.retired++
			continue
		}
		answered[id] = struct{}{}
		queue = append(queue, q)
	}
	s.cursor = len(queue)

	for _, q := range unique {
		if _, ok := answered[q.UUID]; !ok {
			queue = append(queue, q)
		}
	}
	s.queue = queue

	for _, id := range progress.WrongAnsweredUUIDs {
		if _, ok := answered[id]; !ok {
			continue
		}
		s.markWrong(id)
	}

	s.times = append([]float64(nil), progress.Times...)

	if progress.HasCounters() {
		s.correctCount = *progress.CorrectCount
		s.totalCount = *progress.TotalCount
	} else {
		s.totalCount = s.cursor
		s.correctCount = max(0, s.totalCount-len(s.wrong))
	}

	return s
}

// dedupeCatalog keeps the first occurrence of every identifier.
func dedupeCatalog(catalog []Question) []Question {
	seen := make(map[string]struct{}, len(catalog))
	out := make([]Question, 0, len(catalog))
	for _, q := range catalog {
		if _, ok := seen[q.UUID]; ok {
			continue
		}
		seen[q.UUID] = struct{}{}
		out = append(out, q)
	}
	return out
}

// HasNext reports whether a question is left to answer.
func (s *QuizSession) HasNext() bool {
	return s.cursor < len(s.queue)
}

// Current returns the question at the cursor without advancing.
// Calling it repeatedly returns the same question.
func (s *QuizSession) Current() (Question, error) {
	if !s.HasNext() {
		return Question{}, ErrExhausted
	}
	s.presented = true
	return s.queue[s.cursor], nil
}

// Record judges the selection against the current question and advances.
// The current question must have been presented through Current first.
func (s *QuizSession) Record(selected []string, elapsed float64) (*QuizAnswer, error) {
	if !s.HasNext() {
		return nil, ErrExhausted
	}
	if !s.presented {
		return nil, ErrNotPresented
	}

	q := s.queue[s.cursor]
	if elapsed < 0 {
		elapsed = 0
	}

	qa := &QuizAnswer{
		Question:       q,
		Selected:       append([]string(nil), selected...),
		CorrectAnswers: append([]string(nil), q.CorrectAnswers...),
		IsCorrect:      q.IsCorrect(selected),
		Elapsed:        elapsed,
	}

	s.times = append(s.times, elapsed)
	s.totalCount++
	if qa.IsCorrect {
		s.correctCount++
	} else {
		s.markWrong(q.UUID)
	}
	s.cursor++
	s.presented = false

	return qa, nil
}

func (s *QuizSession) markWrong(id string) {
	if _, ok := s.wrongSet[id]; ok {
		return
	}
	s.wrongSet[id] = struct{}{}
	s.wrong = append(s.wrong, id)
}

// Snapshot returns the counters and a copy of the time samples.
func (s *QuizSession) Snapshot() Snapshot {
	return Snapshot{
		Completed:     !s.HasNext(),
		TotalInPool:   len(s.queue),
		CorrectCount:  s.correctCount,
		TotalAnswered: s.totalCount,
		TimeSamples:   append([]float64(nil), s.times...),
	}
}

// Progress projects the session into its persisted form.
func (s *QuizSession) Progress() *Progress {
	answered := make([]string, 0, s.cursor)
	for _, q := range s.queue[:s.cursor] {
		answered = append(answered, q.UUID)
	}

	correct, total := s.correctCount, s.totalCount

	return &Progress{
		AlreadyAnsweredUUIDs: answered,
		WrongAnsweredUUIDs:   append([]string(nil), s.wrong...),
		CorrectCount:         &correct,
		TotalCount:           &total,
		Times:                append([]float64(nil), s.times...),
	}
}

// Cursor returns the index of the next unanswered question.
func (s *QuizSession) Cursor() int { return s.cursor }

// Queue returns a copy of the working queue.
func (s *QuizSession) Queue() []Question {
	return append([]Question(nil), s.queue...)
}

// Retired returns how many persisted identifiers were not found in the catalog.
func (s *QuizSession) Retired() int { return s.retired }

// CountersInSync reports whether total_count matches the resolved answered prefix.
// It is false after the catalog retired answered questions.
func (s *QuizSession) CountersInSync() bool {
	return s.totalCount == s.cursor && s.correctCount <= s.totalCount
}
