package service

import (
	"strings"

	"github.com/MrLeaw/aws-clf-c02-quiz/internal/domain/entities"
)

// Duplicate pairs a record with the earlier record it repeats.
type Duplicate struct {
	First  entities.Question
	Repeat entities.Question
}

// DuplicateReport summarizes content duplicates in a catalog.
type DuplicateReport struct {
	Total      int
	Unique     int
	Duplicates []Duplicate
}

// FindDuplicates reports records whose prompt, options and correct letters
// are identical to an earlier record, whatever their identifiers.
func FindDuplicates(catalog []entities.Question) DuplicateReport {
	first := make(map[string]entities.Question, len(catalog))
	report := DuplicateReport{Total: len(catalog)}

	for _, q := range catalog {
		key := contentKey(q)
		if prev, ok := first[key]; ok {
			report.Duplicates = append(report.Duplicates, Duplicate{First: prev, Repeat: q})
			continue
		}
		first[key] = q
	}

	report.Unique = len(first)
	return report
}

func contentKey(q entities.Question) string {
	var b strings.Builder
	b.WriteString(q.Question)
	b.WriteByte(0)
	b.WriteString(strings.Join(q.Answers, "\x1f"))
	b.WriteByte(0)
	b.WriteString(strings.Join(q.CorrectAnswers, "\x1f"))
	return b.String()
}
