package entities

import (
	"errors"
	"fmt"
)

// ErrProgressCorrupt is returned when a persisted record cannot be read or
// violates its own schema.
var ErrProgressCorrupt = errors.New("progress record is corrupt")

// Progress is the durable projection of a session.
//
// It is a superset of every schema revision the progress file went through:
// older files carry only the answered list and times, some carry the wrong
// list, newer ones carry the counters. Missing fields decode to nil/zero.
type Progress struct {
	AlreadyAnsweredUUIDs []string  `json:"already_answered_uuids"`
	WrongAnsweredUUIDs   []string  `json:"wrong_answered_uuids,omitempty"`
	CorrectCount         *int      `json:"correct_count,omitempty"`
	TotalCount           *int      `json:"total_count,omitempty"`
	Times                []float64 `json:"times"`
}

// HasCounters reports whether the record persisted both numeric counters.
func (p *Progress) HasCounters() bool {
	return p != nil && p.CorrectCount != nil && p.TotalCount != nil
}

// Validate rejects records no session could have written: negative counters,
// correct_count above total_count, or negative time samples. Duplicate or
// dangling identifiers are not schema errors; Inspect reports those.
func (p *Progress) Validate() error {
	if p == nil {
		return nil
	}

	if p.CorrectCount != nil && *p.CorrectCount < 0 {
		return fmt.Errorf("%w: negative correct_count %d", ErrProgressCorrupt, *p.CorrectCount)
	}
	if p.TotalCount != nil && *p.TotalCount < 0 {
		return fmt.Errorf("%w: negative total_count %d", ErrProgressCorrupt, *p.TotalCount)
	}
	if p.HasCounters() && *p.CorrectCount > *p.TotalCount {
		return fmt.Errorf("%w: correct_count %d exceeds total_count %d",
			ErrProgressCorrupt, *p.CorrectCount, *p.TotalCount)
	}

	for i, t := range p.Times {
		if t < 0 {
			return fmt.Errorf("%w: negative time sample at %d", ErrProgressCorrupt, i)
		}
	}

	return nil
}

// ProgressIssues lists integrity problems found in a persisted record.
type ProgressIssues struct {
	DuplicateAnswered []string // identifiers listed more than once in the answered list
	WrongNotAnswered  []string // wrong identifiers missing from the answered list
	CounterMismatch   bool     // total_count differs from the answered list length
	CorrectExceeds    bool     // correct_count greater than total_count
}

// Empty reports whether no issue was found.
func (i ProgressIssues) Empty() bool {
	return len(i.DuplicateAnswered) == 0 &&
		len(i.WrongNotAnswered) == 0 &&
		!i.CounterMismatch &&
		!i.CorrectExceeds
}

// Inspect checks the record against its own invariants: the answered list
// holds unique identifiers, the wrong list is a subset of it, and
// len(answered) == total_count >= correct_count when counters are present.
func (p *Progress) Inspect() ProgressIssues {
	var issues ProgressIssues
	if p == nil {
		return issues
	}

	seen := make(map[string]int, len(p.AlreadyAnsweredUUIDs))
	for _, id := range p.AlreadyAnsweredUUIDs {
		seen[id]++
		if seen[id] == 2 {
			issues.DuplicateAnswered = append(issues.DuplicateAnswered, id)
		}
	}

	for _, id := range p.WrongAnsweredUUIDs {
		if _, ok := seen[id]; !ok {
			issues.WrongNotAnswered = append(issues.WrongNotAnswered, id)
		}
	}

	if p.HasCounters() {
		issues.CounterMismatch = *p.TotalCount != len(p.AlreadyAnsweredUUIDs)
		issues.CorrectExceeds = *p.CorrectCount > *p.TotalCount
	}

	return issues
}

// Snapshot is a read-only view of the session counters at a point in time.
type Snapshot struct {
	Completed     bool      // no question left in the working queue
	TotalInPool   int       // size of the working queue
	CorrectCount  int       // answers judged correct
	TotalAnswered int       // answers recorded
	TimeSamples   []float64 // seconds per answer, in answer order
}
