package service_test

import (
	"math"
	"testing"

	"github.com/MrLeaw/aws-clf-c02-quiz/internal/domain/entities"
	"github.com/MrLeaw/aws-clf-c02-quiz/internal/service"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		want    float64
		ok      bool
	}{
		{"even", []float64{1.0, 2.0, 3.0, 4.0}, 2.5, true},
		{"odd", []float64{1.0, 2.0, 3.0}, 2.0, true},
		{"unsorted", []float64{9, 1, 5}, 5, true},
		{"single", []float64{7.25}, 7.25, true},
		{"empty", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := service.Median(tt.samples)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Median(%v) = %v, %v; want %v, %v", tt.samples, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestMedian_DoesNotReorderInput(t *testing.T) {
	samples := []float64{3, 1, 2}
	service.Median(samples)
	if samples[0] != 3 || samples[1] != 1 || samples[2] != 2 {
		t.Errorf("input was modified: %v", samples)
	}
}

func TestBuildStats_Empty(t *testing.T) {
	st := service.BuildStats(entities.Snapshot{})

	if st.CompletionRate != 0 || st.AccuracyRate != 0 {
		t.Errorf("expected zero rates, got %v and %v", st.CompletionRate, st.AccuracyRate)
	}
	if got := st.AccuracyLabel(); got != "0/0 (0%)" {
		t.Errorf("expected 0/0 (0%%), got %q", got)
	}
	if got := st.ProgressLabel(); got != "0/0 (0%)" {
		t.Errorf("expected 0/0 (0%%), got %q", got)
	}
	if st.HasTimes || st.TimingLabel() != "" {
		t.Error("expected no timing figures without samples")
	}
}

func TestBuildStats_Scenario(t *testing.T) {
	st := service.BuildStats(entities.Snapshot{
		TotalInPool:   3,
		TotalAnswered: 2,
		CorrectCount:  1,
		TimeSamples:   []float64{2.0, 3.0},
	})

	if math.Abs(st.CompletionRate-2.0/3.0) > 1e-9 {
		t.Errorf("expected completion 2/3, got %v", st.CompletionRate)
	}
	if st.AccuracyRate != 0.5 {
		t.Errorf("expected accuracy 0.5, got %v", st.AccuracyRate)
	}
	if got := st.ProgressLabel(); got != "2/3 (67%)" {
		t.Errorf("unexpected progress label %q", got)
	}
	if got := st.AccuracyLabel(); got != "1/2 (50%)" {
		t.Errorf("unexpected accuracy label %q", got)
	}
	if st.Min != 2.0 || st.Max != 3.0 || st.Mean != 2.5 || st.Median != 2.5 {
		t.Errorf("unexpected timing %+v", st)
	}

	want := "⏳ Time: 🔻 Min: 2.00s, 🔶 Median: 2.50s, ➖ Average: 2.50s, 🔺 Max: 3.00s"
	if got := st.TimingLabel(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestBarBudget(t *testing.T) {
	tests := []struct {
		name    string
		columns int
		labels  []string
		want    int
	}{
		{"normal", 80, []string{"2/3 (67%)", "1/2 (50%)"}, 80 - 11 - 9},
		{"widest label wins", 40, []string{"1/1 (100%)", "0/0 (0%)"}, 40 - 11 - 10},
		{"labels wider than terminal", 15, []string{"120/1500 (8%)"}, 0},
		{"zero columns", 0, []string{"x"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := service.BarBudget(tt.columns, tt.labels...); got != tt.want {
				t.Errorf("BarBudget(%d, %v) = %d, want %d", tt.columns, tt.labels, got, tt.want)
			}
		})
	}
}

func TestSplitBar(t *testing.T) {
	tests := []struct {
		rate         float64
		budget       int
		filled, rest int
	}{
		{0, 10, 0, 10},
		{1, 10, 10, 0},
		{2.0 / 3.0, 60, 40, 20},
		{0.25, 10, 3, 7},
		{0.5, 0, 0, 0},
		{0.5, -4, 0, 0},
		{1.5, 10, 10, 0},
	}

	for _, tt := range tests {
		filled, rest := service.SplitBar(tt.rate, tt.budget)
		if filled != tt.filled || rest != tt.rest {
			t.Errorf("SplitBar(%v, %d) = %d, %d; want %d, %d", tt.rate, tt.budget, filled, rest, tt.filled, tt.rest)
		}
	}
}
