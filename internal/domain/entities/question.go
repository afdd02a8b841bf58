package entities

import (
	"fmt"
	"strings"
)

// Question is a single multiple-choice item of the catalog.
// Two questions are the same question when their UUIDs match, regardless of wording.
type Question struct {
	UUID           string   `json:"uuid"`            // stable identifier
	Question       string   `json:"question"`        // prompt text
	Answers        []string `json:"answers"`         // ordered options, e.g. "A. Amazon S3"
	CorrectAnswers []string `json:"correct_answers"` // correct letters, e.g. ["A", "C"]
	Source         string   `json:"source"`          // origin of the question, e.g. "examtopics"
	Part           int      `json:"part"`            // part number within the source
	QuestionNumber int      `json:"question_number"` // position within the part
}

// Label returns the human-readable location of the question, e.g. "examtopics-3-17".
func (q Question) Label() string {
	return fmt.Sprintf("%s-%d-%d", q.Source, q.Part, q.QuestionNumber)
}

// AcceptedLetters returns the letters a learner may pick for this question,
// one per option starting at "A".
func (q Question) AcceptedLetters() []string {
	n := len(q.Answers)
	if n > 26 {
		n = 26
	}

	letters := make([]string, 0, n)
	for i := 0; i < n; i++ {
		letters = append(letters, string(rune('A'+i)))
	}

	return letters
}

// IsCorrect reports whether the selected letters are exactly the correct set.
// Order and case do not matter; a subset or a superset is incorrect.
func (q Question) IsCorrect(selected []string) bool {
	return sameLetters(letterSet(selected), letterSet(q.CorrectAnswers))
}

func letterSet(letters []string) map[string]struct{} {
	set := make(map[string]struct{}, len(letters))
	for _, l := range letters {
		set[strings.ToUpper(strings.TrimSpace(l))] = struct{}{}
	}
	return set
}

func sameLetters(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for l := range a {
		if _, ok := b[l]; !ok {
			return false
		}
	}
	return true
}
