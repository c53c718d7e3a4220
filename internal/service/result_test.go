package service

import (
	"strings"
	"testing"
)

func TestParseComparison(t *testing.T) {
	raw := "```json\n" + `{
	  "fit_category": "Best Fit",
	  "total_score": 88,
	  "parameter_breakdown": {"Skill_Score": "90"},
	  "risk_factors": ["relocation risk"],
	  "growth_signals": ["mentoring", "continuous learning"],
	  "recruiter_confidence": "High",
	  "selection_reason": "strong match"
	}` + "\n```"

	rec := parseComparison(raw)

	if rec.MatchScore != 88 {
		t.Errorf("expected score 88, got %d", rec.MatchScore)
	}
	if rec.FitCategory != "Best Fit" {
		t.Errorf("expected Best Fit, got %q", rec.FitCategory)
	}
	if len(rec.RiskFactors) != 1 || rec.RiskFactors[0] != "relocation risk" {
		t.Errorf("unexpected risk factors: %v", rec.RiskFactors)
	}
	if len(rec.GrowthSignals) != 2 {
		t.Errorf("unexpected growth signals: %v", rec.GrowthSignals)
	}
	if rec.MatchBreakdown["Skill_Score"] != "90" {
		t.Errorf("unexpected breakdown: %v", rec.MatchBreakdown)
	}
	if rec.SelectionReason != "strong match" {
		t.Errorf("unexpected reason: %q", rec.SelectionReason)
	}
}

func TestParseComparison_FallbackKeepsSnippet(t *testing.T) {
	raw := "The model rambled instead of returning JSON. " + strings.Repeat("y", 400)

	rec := parseComparison(raw)

	if rec.MatchScore != 0 {
		t.Errorf("expected score 0, got %d", rec.MatchScore)
	}
	if rec.SelectionReason == "" || len(rec.SelectionReason) > snippetLimit {
		t.Errorf("expected bounded snippet reason, got %d chars", len(rec.SelectionReason))
	}
}

func TestParseResumeData(t *testing.T) {
	raw := `{
	  "Name": "Jane Doe",
	  "Email": "jane@example.com",
	  "Mobile": "+1 555 0100",
	  "Career_History": [
	    {"Company": "Beta", "Job_Title": "Senior Engineer", "Start_Date": "2019", "End_Date": "Present"},
	    {"Company": "Acme", "Job_Title": "Engineer", "Start_Date": "2015", "End_Date": "2018"}
	  ]
	}`

	data := parseResumeData(raw)

	if data.Name != "Jane Doe" || data.Email != "jane@example.com" {
		t.Errorf("unexpected identity: %+v", data)
	}
	if len(data.CareerHistory) != 2 {
		t.Fatalf("expected 2 career entries, got %d", len(data.CareerHistory))
	}
	if data.CareerHistory[0].Title != "Senior Engineer" || data.CareerHistory[0].EndDate != "Present" {
		t.Errorf("unexpected first entry: %+v", data.CareerHistory[0])
	}
}

func TestParseResumeData_Undecodable(t *testing.T) {
	data := parseResumeData("no structure here")

	if data.Name != "" || len(data.CareerHistory) != 0 {
		t.Errorf("expected empty resume data, got %+v", data)
	}
}

func TestMergeFlags(t *testing.T) {
	merged := mergeFlags(
		[]string{"frequent job changes", "skill exaggeration"},
		[]string{"gap of 3 years", "frequent job changes"},
	)

	want := []string{"frequent job changes", "skill exaggeration", "gap of 3 years"}
	if len(merged) != len(want) {
		t.Fatalf("expected %v, got %v", want, merged)
	}
	for i := range want {
		if merged[i] != want[i] {
			t.Errorf("slot %d: expected %q, got %q", i, want[i], merged[i])
		}
	}
}
