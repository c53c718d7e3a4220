package service

import (
	"github.com/tidwall/gjson"

	"github.com/deepakm/resumatch/internal/domain"
)

// parseComparison decodes comparator output into a comparison record. When
// the output does not contain a JSON object, the record degrades to a zero
// score carrying the raw snippet as its reason, so a later Postprocess call
// still classifies it deterministically.
func parseComparison(raw string) *domain.ComparisonResult {
	decoded := DecodeFirstJSON(raw)
	if !decoded.Parsed {
		return &domain.ComparisonResult{
			MatchScore:      0,
			SelectionReason: decoded.Snippet,
		}
	}

	rec := &domain.ComparisonResult{
		MatchScore:      int(gjson.Get(decoded.JSON, "total_score").Int()),
		FitCategory:     gjson.Get(decoded.JSON, "fit_category").String(),
		Confidence:      gjson.Get(decoded.JSON, "recruiter_confidence").String(),
		SelectionReason: gjson.Get(decoded.JSON, "selection_reason").String(),
		RiskFactors:     stringList(gjson.Get(decoded.JSON, "risk_factors")),
		GrowthSignals:   stringList(gjson.Get(decoded.JSON, "growth_signals")),
	}

	if breakdown, ok := gjson.Get(decoded.JSON, "parameter_breakdown").Value().(map[string]interface{}); ok {
		rec.MatchBreakdown = domain.JSONMap(breakdown)
	}

	return rec
}

// resumeData is the subset of extracted resume fields the orchestrator needs
// beyond the comparison itself.
type resumeData struct {
	Name          string
	Email         string
	Mobile        string
	CareerHistory []domain.CareerEntry
}

// parseResumeData pulls applicant identity and career history out of resume
// extractor output. Undecodable output yields an empty value; the candidate
// is still scored, just without enrichment.
func parseResumeData(raw string) resumeData {
	decoded := DecodeFirstJSON(raw)
	if !decoded.Parsed {
		return resumeData{}
	}

	data := resumeData{
		Name:   gjson.Get(decoded.JSON, "Name").String(),
		Email:  gjson.Get(decoded.JSON, "Email").String(),
		Mobile: gjson.Get(decoded.JSON, "Mobile").String(),
	}

	for _, entry := range gjson.Get(decoded.JSON, "Career_History").Array() {
		data.CareerHistory = append(data.CareerHistory, domain.CareerEntry{
			Company:   entry.Get("Company").String(),
			Title:     entry.Get("Job_Title").String(),
			StartDate: entry.Get("Start_Date").String(),
			EndDate:   entry.Get("End_Date").String(),
		})
	}

	return data
}

// mergeFlags appends stability flags into the risk factor list, dropping
// duplicates while keeping first-seen order.
func mergeFlags(risks []string, flags []string) []string {
	seen := make(map[string]struct{}, len(risks)+len(flags))
	merged := make([]string, 0, len(risks)+len(flags))
	for _, r := range append(append([]string{}, risks...), flags...) {
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		merged = append(merged, r)
	}
	return merged
}

func stringList(result gjson.Result) []string {
	items := result.Array()
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.String())
	}
	return out
}
