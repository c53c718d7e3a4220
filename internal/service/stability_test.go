package service

import (
	"strings"
	"testing"

	"github.com/deepakm/resumatch/internal/domain"
)

const testYear = 2026

func TestComputeStability_NoExperience(t *testing.T) {
	tests := []struct {
		name    string
		history []domain.CareerEntry
	}{
		{name: "nil history", history: nil},
		{name: "empty history", history: []domain.CareerEntry{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, flags := computeStabilityAt(tt.history, testYear)

			if score != 0 {
				t.Errorf("expected score 0, got %d", score)
			}
			if len(flags) != 1 || flags[0] != FlagNoExperience {
				t.Errorf("expected flags [%q], got %v", FlagNoExperience, flags)
			}
		})
	}
}

func TestComputeStability_UnparseableHistory(t *testing.T) {
	history := []domain.CareerEntry{
		{Company: "Acme", Title: "Engineer", StartDate: "unknown", EndDate: "later"},
		{Company: "Beta", Title: "Engineer", StartDate: "", EndDate: "2020"},
	}

	score, flags := computeStabilityAt(history, testYear)

	if score != 0 {
		t.Errorf("expected score 0, got %d", score)
	}
	if len(flags) != 1 || flags[0] != FlagUnparseableHistory {
		t.Errorf("expected flags [%q], got %v", FlagUnparseableHistory, flags)
	}
}

func TestComputeStability_StableCareerNoGap(t *testing.T) {
	// Two back-to-back tenures, the second ongoing. No gap flags, and the
	// open-ended tenure counts up to the current year.
	history := []domain.CareerEntry{
		{Company: "Acme", Title: "Engineer", StartDate: "2015", EndDate: "2018"},
		{Company: "Beta", Title: "Engineer", StartDate: "2019", EndDate: "Present"},
	}

	score, flags := computeStabilityAt(history, 2024)

	for _, f := range flags {
		if strings.Contains(f, "gap") {
			t.Errorf("unexpected gap flag: %q", f)
		}
	}

	// Tenures: 3y and 5y over 2 jobs, avg 4 => 50 + 20 = 70.
	if score != 70 {
		t.Errorf("expected score 70, got %d", score)
	}
}

func TestComputeStability_GapPenalty(t *testing.T) {
	history := []domain.CareerEntry{
		{Company: "Acme", Title: "Engineer", StartDate: "2012", EndDate: "2015"},
		{Company: "Beta", Title: "Engineer", StartDate: "2017", EndDate: "2020"},
	}

	score, flags := computeStabilityAt(history, testYear)

	// avg tenure 3 => +20; gap of 2 years => -10. 50+20-10 = 60.
	if score != 60 {
		t.Errorf("expected score 60, got %d", score)
	}

	found := false
	for _, f := range flags {
		if f == "gap of 2 years" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a gap flag, got %v", flags)
	}
}

func TestComputeStability_FrequentJobChanges(t *testing.T) {
	history := []domain.CareerEntry{
		{Company: "A", Title: "Engineer", StartDate: "2019", EndDate: "2019"},
		{Company: "B", Title: "Engineer", StartDate: "2020", EndDate: "2020"},
		{Company: "C", Title: "Engineer", StartDate: "2021", EndDate: "2021"},
	}

	score, flags := computeStabilityAt(history, testYear)

	// avg tenure 0 => 50 - 20 = 30; back-to-back years carry no gap penalty.
	if score != 30 {
		t.Errorf("expected score 30, got %d", score)
	}

	found := false
	for _, f := range flags {
		if f == FlagFrequentJobChanges {
			found = true
		}
	}
	if !found {
		t.Errorf("expected frequent job changes flag, got %v", flags)
	}
}

func TestComputeStability_SeniorityAdjustments(t *testing.T) {
	tests := []struct {
		name      string
		lastTitle string
		expected  int
	}{
		{name: "lead bonus", lastTitle: "Tech Lead", expected: 80},
		{name: "manager bonus", lastTitle: "Engineering Manager", expected: 80},
		{name: "intern penalty", lastTitle: "Software Intern", expected: 65},
		{name: "neutral title", lastTitle: "Software Engineer", expected: 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := []domain.CareerEntry{
				{Company: "Acme", Title: "Engineer", StartDate: "2012", EndDate: "2016"},
				{Company: "Beta", Title: tt.lastTitle, StartDate: "2016", EndDate: "2020"},
			}

			score, _ := computeStabilityAt(history, testYear)
			if score != tt.expected {
				t.Errorf("expected score %d, got %d", tt.expected, score)
			}
		})
	}
}

func TestComputeStability_DateParsing(t *testing.T) {
	tests := []struct {
		name  string
		entry domain.CareerEntry
		want  int
	}{
		{
			name:  "month-first dates use the first digit run",
			entry: domain.CareerEntry{Title: "Engineer", StartDate: "Jan 2015", EndDate: "Mar 2019"},
			want:  70, // tenure 4 => +20
		},
		{
			name:  "current end date resolves to current year",
			entry: domain.CareerEntry{Title: "Engineer", StartDate: "2020", EndDate: "Current"},
			want:  70, // tenure 6 at pinned year 2026
		},
		{
			name:  "blank end date resolves to current year",
			entry: domain.CareerEntry{Title: "Engineer", StartDate: "2020", EndDate: ""},
			want:  70,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, _ := computeStabilityAt([]domain.CareerEntry{tt.entry}, testYear)
			if score != tt.want {
				t.Errorf("expected score %d, got %d", tt.want, score)
			}
		})
	}
}

func TestComputeStability_ScoreAlwaysInRange(t *testing.T) {
	// Heavily gapped history drives the raw score negative; it must clamp.
	history := []domain.CareerEntry{
		{Title: "Engineer", StartDate: "1990", EndDate: "1990"},
		{Title: "Engineer", StartDate: "2000", EndDate: "2000"},
		{Title: "Engineer", StartDate: "2010", EndDate: "2010"},
	}

	score, _ := computeStabilityAt(history, testYear)
	if score < 0 || score > 100 {
		t.Errorf("score out of range: %d", score)
	}
	if score != 0 {
		t.Errorf("expected clamped score 0, got %d", score)
	}
}
