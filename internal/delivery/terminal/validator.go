package terminal

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/MrLeaw/aws-clf-c02-quiz/internal/domain/entities"
)

var (
	ErrEmptySelection   = errors.New("empty selection")
	ErrWrongCount       = errors.New("wrong number of answers")
	ErrLetterOutOfRange = errors.New("answer letter out of range")
)

// AnswerValidator checks the syntax of a learner's selection before it reaches the engine.
type AnswerValidator struct{}

// NewAnswerValidator creates a new AnswerValidator.
func NewAnswerValidator() *AnswerValidator {
	return &AnswerValidator{}
}

// Parse normalizes raw input such as "a, c" or "AC" into letters and checks
// that exactly as many distinct letters as correct answers were given, each
// within the option range of q.
func (v *AnswerValidator) Parse(input string, q entities.Question) ([]string, error) {
	letters := v.normalize(input)
	if len(letters) == 0 {
		return nil, ErrEmptySelection
	}

	if len(letters) != len(q.CorrectAnswers) {
		return nil, ErrWrongCount
	}

	accepted := q.AcceptedLetters()
	for _, l := range letters {
		if !slices.Contains(accepted, l) {
			return nil, ErrLetterOutOfRange
		}
	}

	return letters, nil
}

// normalize drops separators, upper-cases and removes repeated letters.
func (v *AnswerValidator) normalize(input string) []string {
	var letters []string
	for _, r := range strings.ToUpper(input) {
		if r == ',' || unicode.IsSpace(r) {
			continue
		}
		l := string(r)
		if !slices.Contains(letters, l) {
			letters = append(letters, l)
		}
	}
	return letters
}

// Hint explains the expected input for q.
func (v *AnswerValidator) Hint(q entities.Question) string {
	accepted := q.AcceptedLetters()
	last := "A"
	if len(accepted) > 0 {
		last = accepted[len(accepted)-1]
	}

	n := len(q.CorrectAnswers)
	if n > 1 {
		return fmt.Sprintf("Please enter %d answers (separated by comma or without any separator, in range A-%s)", n, last)
	}
	return fmt.Sprintf("Please enter %d answer (in range A-%s)", n, last)
}
