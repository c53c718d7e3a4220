package service

import (
	"testing"

	"github.com/deepakm/resumatch/internal/domain"
)

func TestPostprocess_Adjustments(t *testing.T) {
	tests := []struct {
		name         string
		score        int
		risks        int
		growths      int
		wantScore    int
		wantCategory string
		wantConf     string
	}{
		{
			name:         "two risks deduct five",
			score:        70,
			risks:        2,
			wantScore:    65,
			wantCategory: domain.FitPartial,
			wantConf:     domain.ConfidenceMedium,
		},
		{
			name:         "three risks deduct ten",
			score:        70,
			risks:        3,
			wantScore:    60,
			wantCategory: domain.FitPartial,
			wantConf:     domain.ConfidenceMedium,
		},
		{
			name:         "one risk is free",
			score:        90,
			risks:        1,
			wantScore:    90,
			wantCategory: domain.FitBest,
			wantConf:     domain.ConfidenceHigh,
		},
		{
			name:         "two growth signals add five",
			score:        82,
			growths:      2,
			wantScore:    87,
			wantCategory: domain.FitBest,
			wantConf:     domain.ConfidenceHigh,
		},
		{
			name:         "three growth signals still add five",
			score:        82,
			growths:      3,
			wantScore:    87,
			wantCategory: domain.FitBest,
			wantConf:     domain.ConfidenceHigh,
		},
		{
			name:         "risks and growth combine",
			score:        62,
			risks:        3,
			growths:      2,
			wantScore:    57,
			wantCategory: domain.FitNot,
			wantConf:     domain.ConfidenceLow,
		},
		{
			name:         "low score clamps at zero",
			score:        4,
			risks:        4,
			wantScore:    0,
			wantCategory: domain.FitNot,
			wantConf:     domain.ConfidenceLow,
		},
		{
			name:         "high score clamps at hundred",
			score:        99,
			growths:      2,
			wantScore:    100,
			wantCategory: domain.FitBest,
			wantConf:     domain.ConfidenceHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &domain.ComparisonResult{
				MatchScore:    tt.score,
				RiskFactors:   makeFlags("risk", tt.risks),
				GrowthSignals: makeFlags("growth", tt.growths),
			}

			Postprocess(rec)

			if rec.MatchScore != tt.wantScore {
				t.Errorf("expected score %d, got %d", tt.wantScore, rec.MatchScore)
			}
			if rec.FitCategory != tt.wantCategory {
				t.Errorf("expected category %q, got %q", tt.wantCategory, rec.FitCategory)
			}
			if rec.Confidence != tt.wantConf {
				t.Errorf("expected confidence %q, got %q", tt.wantConf, rec.Confidence)
			}
		})
	}
}

func TestPostprocess_CategoryOverridesModelLabel(t *testing.T) {
	// The model's own label never survives; category is a pure function of
	// the final score.
	rec := &domain.ComparisonResult{
		MatchScore:  40,
		FitCategory: domain.FitBest,
		Confidence:  domain.ConfidenceHigh,
	}

	Postprocess(rec)

	if rec.FitCategory != domain.FitNot {
		t.Errorf("expected category %q, got %q", domain.FitNot, rec.FitCategory)
	}
	if rec.Confidence != domain.ConfidenceLow {
		t.Errorf("expected confidence %q, got %q", domain.ConfidenceLow, rec.Confidence)
	}
}

func TestPostprocess_ThresholdBoundaries(t *testing.T) {
	tests := []struct {
		score        int
		wantCategory string
	}{
		{score: 85, wantCategory: domain.FitBest},
		{score: 84, wantCategory: domain.FitPartial},
		{score: 60, wantCategory: domain.FitPartial},
		{score: 59, wantCategory: domain.FitNot},
		{score: 0, wantCategory: domain.FitNot},
		{score: 100, wantCategory: domain.FitBest},
	}

	for _, tt := range tests {
		rec := &domain.ComparisonResult{MatchScore: tt.score}
		Postprocess(rec)
		if rec.FitCategory != tt.wantCategory {
			t.Errorf("score %d: expected %q, got %q", tt.score, tt.wantCategory, rec.FitCategory)
		}
	}
}

func makeFlags(prefix string, n int) []string {
	flags := make([]string, n)
	for i := range flags {
		flags[i] = prefix + string(rune('a'+i))
	}
	return flags
}
