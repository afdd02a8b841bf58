package entities_test

import (
	"errors"
	"testing"

	"github.com/MrLeaw/aws-clf-c02-quiz/internal/domain/entities"
)

func newQuestion(id string, correct ...string) entities.Question {
	return entities.Question{
		UUID:           id,
		Question:       "Question " + id,
		Answers:        []string{"A. one", "B. two", "C. three", "D. four"},
		CorrectAnswers: correct,
		Source:         "examtopics",
		Part:           1,
	}
}

func catalogOf(ids ...string) []entities.Question {
	qs := make([]entities.Question, 0, len(ids))
	for _, id := range ids {
		qs = append(qs, newQuestion(id, "A"))
	}
	return qs
}

func intPtr(v int) *int { return &v }

func queueIDs(s *entities.QuizSession) []string {
	ids := make([]string, 0)
	for _, q := range s.Queue() {
		ids = append(ids, q.UUID)
	}
	return ids
}

func answer(t *testing.T, s *entities.QuizSession, elapsed float64, letters ...string) *entities.QuizAnswer {
	t.Helper()
	if _, err := s.Current(); err != nil {
		t.Fatalf("current: %v", err)
	}
	qa, err := s.Record(letters, elapsed)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	return qa
}

func TestNewQuizSession_FreshKeepsCatalogOrder(t *testing.T) {
	s := entities.NewQuizSession(catalogOf("q1", "q2", "q3"), nil)

	got := queueIDs(s)
	want := []string{"q1", "q2", "q3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected queue %v, got %v", want, got)
		}
	}

	if s.Cursor() != 0 {
		t.Errorf("expected cursor 0, got %d", s.Cursor())
	}

	snap := s.Snapshot()
	if snap.TotalAnswered != 0 || snap.CorrectCount != 0 || len(snap.TimeSamples) != 0 {
		t.Errorf("expected empty counters, got %+v", snap)
	}
}

func TestNewQuizSession_EveryIdentifierExactlyOnce(t *testing.T) {
	tests := []struct {
		name     string
		catalog  []string
		answered []string
	}{
		{"no overlap", []string{"a", "b", "c"}, []string{"x", "y"}},
		{"full overlap", []string{"a", "b", "c"}, []string{"c", "a", "b"}},
		{"partial overlap", []string{"a", "b", "c", "d"}, []string{"d", "z", "b"}},
		{"duplicate persisted ids", []string{"a", "b"}, []string{"a", "a", "b"}},
		{"duplicate catalog ids", []string{"a", "b", "a", "c"}, []string{"b"}},
		{"empty catalog", nil, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := entities.NewQuizSession(catalogOf(tt.catalog...), &entities.Progress{
				AlreadyAnsweredUUIDs: tt.answered,
			})

			want := make(map[string]struct{})
			for _, id := range tt.catalog {
				want[id] = struct{}{}
			}

			got := make(map[string]int)
			for _, id := range queueIDs(s) {
				got[id]++
			}

			if len(got) != len(want) {
				t.Fatalf("expected %d identifiers, got %d (%v)", len(want), len(got), got)
			}
			for id, n := range got {
				if _, ok := want[id]; !ok {
					t.Errorf("unexpected identifier %q in queue", id)
				}
				if n != 1 {
					t.Errorf("identifier %q appears %d times", id, n)
				}
			}
		})
	}
}

func TestNewQuizSession_AnsweredPrefixKeepsPersistedOrder(t *testing.T) {
	s := entities.NewQuizSession(catalogOf("q1", "q2", "q3", "q4"), &entities.Progress{
		AlreadyAnsweredUUIDs: []string{"q3", "q1"},
		Times:                []float64{1.5, 2.5},
	})

	got := queueIDs(s)
	want := []string{"q3", "q1", "q2", "q4"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected queue %v, got %v", want, got)
		}
	}

	if s.Cursor() != 2 {
		t.Errorf("expected cursor 2, got %d", s.Cursor())
	}

	q, err := s.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if q.UUID != "q2" {
		t.Errorf("expected next question q2, got %s", q.UUID)
	}
}

func TestNewQuizSession_RetiredIdentifierDoesNotMoveCursor(t *testing.T) {
	s := entities.NewQuizSession(catalogOf("q2", "q3"), &entities.Progress{
		AlreadyAnsweredUUIDs: []string{"q1", "q2"},
	})

	for _, id := range queueIDs(s) {
		if id == "q1" {
			t.Fatal("retired identifier must not appear in queue")
		}
	}

	if s.Cursor() != 1 {
		t.Errorf("expected cursor 1, got %d", s.Cursor())
	}
	if s.Retired() != 1 {
		t.Errorf("expected 1 retired identifier, got %d", s.Retired())
	}
}

func TestNewQuizSession_TrustsPersistedCounters(t *testing.T) {
	s := entities.NewQuizSession(catalogOf("q2", "q3"), &entities.Progress{
		AlreadyAnsweredUUIDs: []string{"q1"},
		CorrectCount:         intPtr(1),
		TotalCount:           intPtr(1),
		Times:                []float64{4.2},
	})

	got := queueIDs(s)
	if len(got) != 2 || got[0] != "q2" || got[1] != "q3" {
		t.Fatalf("expected remaining catalog only, got %v", got)
	}

	snap := s.Snapshot()
	if snap.TotalAnswered != 1 || snap.CorrectCount != 1 {
		t.Errorf("expected counters restored as 1/1, got %d/%d", snap.CorrectCount, snap.TotalAnswered)
	}
	if s.Cursor() != 0 {
		t.Errorf("expected cursor 0, got %d", s.Cursor())
	}
	if s.CountersInSync() {
		t.Error("expected counters to be reported out of sync")
	}
}

func TestNewQuizSession_LegacyRecordDerivesCounters(t *testing.T) {
	s := entities.NewQuizSession(catalogOf("q1", "q2", "q3"), &entities.Progress{
		AlreadyAnsweredUUIDs: []string{"q1", "q2"},
		WrongAnsweredUUIDs:   []string{"q2", "gone"},
		Times:                []float64{1, 2},
	})

	snap := s.Snapshot()
	if snap.TotalAnswered != 2 {
		t.Errorf("expected total 2, got %d", snap.TotalAnswered)
	}
	if snap.CorrectCount != 1 {
		t.Errorf("expected correct 1, got %d", snap.CorrectCount)
	}
	if wrong := s.Progress().WrongAnsweredUUIDs; len(wrong) != 1 || wrong[0] != "q2" {
		t.Errorf("expected only resolved wrong identifiers to be restored, got %v", wrong)
	}
}

func TestRecord_ScenarioThreeQuestions(t *testing.T) {
	q1 := newQuestion("q1", "A")
	q2 := newQuestion("q2", "B")
	q3 := newQuestion("q3", "C")
	s := entities.NewQuizSession([]entities.Question{q1, q2, q3}, nil)

	if qa := answer(t, s, 2.0, "A"); !qa.IsCorrect {
		t.Error("expected q1 to be answered correctly")
	}
	if qa := answer(t, s, 3.0, "C"); qa.IsCorrect {
		t.Error("expected q2 to be answered incorrectly")
	}

	snap := s.Snapshot()
	if snap.TotalAnswered != 2 || snap.CorrectCount != 1 || snap.TotalInPool != 3 {
		t.Errorf("unexpected snapshot %+v", snap)
	}
	if len(snap.TimeSamples) != 2 || snap.TimeSamples[0] != 2.0 || snap.TimeSamples[1] != 3.0 {
		t.Errorf("expected samples [2 3], got %v", snap.TimeSamples)
	}

	next, err := s.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if next.UUID != "q3" {
		t.Errorf("expected q3, got %s", next.UUID)
	}
	if wrong := s.Progress().WrongAnsweredUUIDs; len(wrong) != 1 || wrong[0] != "q2" {
		t.Errorf("expected q2 in wrong list, got %v", wrong)
	}
}

func TestRecord_Monotonic(t *testing.T) {
	s := entities.NewQuizSession(catalogOf("a", "b", "c", "d", "e"), nil)

	for n := 1; n <= 5; n++ {
		letter := "A"
		if n%2 == 0 {
			letter = "B"
		}
		answer(t, s, float64(n), letter)

		snap := s.Snapshot()
		if snap.TotalAnswered != n {
			t.Errorf("after %d answers expected total %d, got %d", n, n, snap.TotalAnswered)
		}
		if snap.CorrectCount > n {
			t.Errorf("correct count %d exceeds %d", snap.CorrectCount, n)
		}
		if len(snap.TimeSamples) != n {
			t.Errorf("expected %d samples, got %d", n, len(snap.TimeSamples))
		}
		if s.Cursor() != n {
			t.Errorf("expected cursor %d, got %d", n, s.Cursor())
		}
	}

	if s.HasNext() {
		t.Error("expected session to be exhausted")
	}
}

func TestCurrent_Idempotent(t *testing.T) {
	s := entities.NewQuizSession(catalogOf("a", "b"), nil)

	first, _ := s.Current()
	second, _ := s.Current()
	if first.UUID != second.UUID {
		t.Errorf("expected same question, got %s and %s", first.UUID, second.UUID)
	}
}

func TestRecord_RejectsDoubleRecording(t *testing.T) {
	s := entities.NewQuizSession(catalogOf("a", "b"), nil)
	answer(t, s, 1, "A")

	_, err := s.Record([]string{"A"}, 1)
	if !errors.Is(err, entities.ErrNotPresented) {
		t.Fatalf("expected ErrNotPresented, got %v", err)
	}

	snap := s.Snapshot()
	if snap.TotalAnswered != 1 || s.Cursor() != 1 {
		t.Errorf("state changed after rejected record: %+v cursor=%d", snap, s.Cursor())
	}
}

func TestExhausted(t *testing.T) {
	s := entities.NewQuizSession(catalogOf("a"), nil)
	answer(t, s, 1, "A")

	if _, err := s.Current(); !errors.Is(err, entities.ErrExhausted) {
		t.Errorf("expected ErrExhausted from Current, got %v", err)
	}
	if _, err := s.Record([]string{"A"}, 1); !errors.Is(err, entities.ErrExhausted) {
		t.Errorf("expected ErrExhausted from Record, got %v", err)
	}
	if !s.Snapshot().Completed {
		t.Error("expected snapshot to be completed")
	}
}

func TestProgress_Projection(t *testing.T) {
	s := entities.NewQuizSession(catalogOf("a", "b", "c"), nil)
	answer(t, s, 1.25, "A")
	answer(t, s, 2.5, "D")

	p := s.Progress()
	if len(p.AlreadyAnsweredUUIDs) != 2 || p.AlreadyAnsweredUUIDs[0] != "a" || p.AlreadyAnsweredUUIDs[1] != "b" {
		t.Errorf("unexpected answered list %v", p.AlreadyAnsweredUUIDs)
	}
	if len(p.WrongAnsweredUUIDs) != 1 || p.WrongAnsweredUUIDs[0] != "b" {
		t.Errorf("unexpected wrong list %v", p.WrongAnsweredUUIDs)
	}
	if *p.TotalCount != 2 || *p.CorrectCount != 1 {
		t.Errorf("unexpected counters %d/%d", *p.CorrectCount, *p.TotalCount)
	}
	if !p.Inspect().Empty() {
		t.Errorf("expected projection to be consistent, got %+v", p.Inspect())
	}

	resumed := entities.NewQuizSession(catalogOf("c", "b", "a"), p)
	if resumed.Cursor() != 2 {
		t.Errorf("expected resumed cursor 2, got %d", resumed.Cursor())
	}
	next, _ := resumed.Current()
	if next.UUID != "c" {
		t.Errorf("expected c next, got %s", next.UUID)
	}
}

func TestNewQuizSession_InvalidRecordStartsFresh(t *testing.T) {
	catalog := []entities.Question{newQuestion("q1", "A"), newQuestion("q2", "A")}

	tests := []struct {
		name     string
		progress *entities.Progress
	}{
		{"negative counters", &entities.Progress{
			AlreadyAnsweredUUIDs: []string{"q1"},
			CorrectCount:         intPtr(-3),
			TotalCount:           intPtr(-1),
		}},
		{"correct exceeds total", &entities.Progress{
			AlreadyAnsweredUUIDs: []string{"q1"},
			CorrectCount:         intPtr(5),
			TotalCount:           intPtr(1),
		}},
		{"negative time sample", &entities.Progress{
			AlreadyAnsweredUUIDs: []string{"q1"},
			Times:                []float64{-2},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := entities.NewQuizSession(catalog, tt.progress)

			snap := s.Snapshot()
			if snap.TotalAnswered != 0 || snap.CorrectCount != 0 || len(snap.TimeSamples) != 0 {
				t.Errorf("expected empty history, got %+v", snap)
			}
			if s.Cursor() != 0 {
				t.Errorf("expected cursor 0, got %d", s.Cursor())
			}
		})
	}
}
