package service

import "github.com/deepakm/resumatch/internal/domain"

// Postprocess applies recruiter adjustments to a scored comparison and
// re-derives the fit category and confidence from the final score. The
// growth branches intentionally keep the observed first-match order, which
// leaves the three-signal bonus shadowed by the two-signal one.
// Parameters:
//   - rec: comparison record with total score, risk factors and growth signals.
//
// Returns:
//   - *domain.ComparisonResult: the same record, mutated.
func Postprocess(rec *domain.ComparisonResult) *domain.ComparisonResult {
	score := rec.MatchScore

	if len(rec.RiskFactors) >= 3 {
		score -= 10
	} else if len(rec.RiskFactors) == 2 {
		score -= 5
	}

	if len(rec.GrowthSignals) >= 2 {
		score += 5
	} else if len(rec.GrowthSignals) >= 3 {
		score += 10
	}

	score = clampScore(score)

	rec.MatchScore = score
	rec.FitCategory, rec.Confidence = classify(score)
	return rec
}

// classify maps a final score to its fit category and confidence label.
func classify(score int) (string, string) {
	switch {
	case score >= 85:
		return domain.FitBest, domain.ConfidenceHigh
	case score >= 60:
		return domain.FitPartial, domain.ConfidenceMedium
	default:
		return domain.FitNot, domain.ConfidenceLow
	}
}
