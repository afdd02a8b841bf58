package service

import (
	"fmt"
	"math"
	"slices"
	"unicode/utf8"

	"github.com/MrLeaw/aws-clf-c02-quiz/internal/domain/entities"
)

// barIndent is the width of the "Progress: " / "Correct:  " prefix plus the
// space before the trailing label.
const barIndent = 11

// Stats holds render-ready figures derived from a snapshot.
type Stats struct {
	Answered int
	Total    int
	Correct  int

	CompletionRate float64 // answered / pool, 0 for an empty pool
	AccuracyRate   float64 // correct / answered, 0 when nothing was answered

	HasTimes bool // timing figures are defined only when samples exist
	Min      float64
	Median   float64
	Mean     float64
	Max      float64
}

// BuildStats derives the statistics of a snapshot.
func BuildStats(snap entities.Snapshot) Stats {
	st := Stats{
		Answered: snap.TotalAnswered,
		Total:    snap.TotalInPool,
		Correct:  snap.CorrectCount,
	}

	if snap.TotalInPool > 0 {
		st.CompletionRate = float64(snap.TotalAnswered) / float64(snap.TotalInPool)
	}
	if snap.TotalAnswered > 0 {
		st.AccuracyRate = float64(snap.CorrectCount) / float64(snap.TotalAnswered)
	}

	if len(snap.TimeSamples) > 0 {
		st.HasTimes = true
		st.Min = slices.Min(snap.TimeSamples)
		st.Max = slices.Max(snap.TimeSamples)
		st.Mean = mean(snap.TimeSamples)
		st.Median, _ = Median(snap.TimeSamples)
	}

	return st
}

// ProgressLabel renders e.g. "2/3 (67%)".
func (s Stats) ProgressLabel() string {
	return fmt.Sprintf("%d/%d (%s)", s.Answered, s.Total, percent(s.CompletionRate))
}

// AccuracyLabel renders e.g. "1/2 (50%)", or "0/0 (0%)" before the first answer.
func (s Stats) AccuracyLabel() string {
	if s.Answered == 0 {
		return "0/0 (0%)"
	}
	return fmt.Sprintf("%d/%d (%s)", s.Correct, s.Answered, percent(s.AccuracyRate))
}

// TimingLabel renders the latency line, or "" when no sample exists.
func (s Stats) TimingLabel() string {
	if !s.HasTimes {
		return ""
	}
	return fmt.Sprintf(
		"⏳ Time: 🔻 Min: %.2fs, 🔶 Median: %.2fs, ➖ Average: %.2fs, 🔺 Max: %.2fs",
		s.Min, s.Median, s.Mean, s.Max,
	)
}

// Median returns the middle sample, or the mean of the two middle samples for
// an even count. The second result is false for an empty input.
func Median(samples []float64) (float64, bool) {
	if len(samples) == 0 {
		return 0, false
	}

	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2, true
	}
	return sorted[mid], true
}

func mean(samples []float64) float64 {
	var sum float64
	for _, v := range samples {
		sum += v
	}
	return sum / float64(len(samples))
}

func percent(rate float64) string {
	return fmt.Sprintf("%.0f%%", math.Round(rate*100))
}

// BarBudget returns the number of bar cells that fit next to the labels on a
// line of the given width. It never goes below zero.
func BarBudget(columns int, labels ...string) int {
	widest := 0
	for _, l := range labels {
		widest = max(widest, utf8.RuneCountInString(l))
	}
	return max(0, columns-barIndent-widest)
}

// SplitBar splits budget cells into filled and remaining segments for rate.
func SplitBar(rate float64, budget int) (filled, rest int) {
	if budget <= 0 {
		return 0, 0
	}
	rate = min(max(rate, 0), 1)
	filled = int(math.Round(rate * float64(budget)))
	return filled, budget - filled
}
