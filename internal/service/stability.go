package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/deepakm/resumatch/internal/domain"
)

// Diagnostic flags emitted by the stability scorer.
const (
	FlagNoExperience       = "no professional experience"
	FlagUnparseableHistory = "unparseable career data"
	FlagFrequentJobChanges = "frequent job changes"
)

// ComputeStability scores career stability from a candidate's work history.
// The score is deterministic and stays within [0,100]; malformed entries are
// dropped rather than failing the candidate.
// Parameters:
//   - history: career entries, expected most recent first but not enforced.
//
// Returns:
//   - int: stability score in [0,100].
//   - []string: risk flags explaining deductions.
func ComputeStability(history []domain.CareerEntry) (int, []string) {
	return computeStabilityAt(history, time.Now().Year())
}

type tenure struct {
	start int
	end   int
}

// computeStabilityAt is the testable core with the current year pinned.
func computeStabilityAt(history []domain.CareerEntry, currentYear int) (int, []string) {
	if len(history) == 0 {
		return 0, []string{FlagNoExperience}
	}

	var (
		jobs          []tenure
		totalDuration int
		flags         []string
	)

	for _, job := range history {
		startYear, ok := parseYear(job.StartDate)
		if !ok {
			continue
		}
		endYear, ok := parseEndYear(job.EndDate, currentYear)
		if !ok {
			continue
		}
		jobs = append(jobs, tenure{start: startYear, end: endYear})
		if endYear > startYear {
			totalDuration += endYear - startYear
		}
	}

	if len(jobs) == 0 {
		return 0, []string{FlagUnparseableHistory}
	}

	sort.Slice(jobs, func(i, j int) bool { return jobs[i].start < jobs[j].start })

	score := 50

	avgTenure := float64(totalDuration) / float64(len(jobs))
	switch {
	case avgTenure >= 3:
		score += 20
	case avgTenure >= 1.5:
		score += 10
	case avgTenure < 1:
		score -= 20
		flags = append(flags, FlagFrequentJobChanges)
	}

	// Year-granular dates make ending in 2018 and starting in 2019
	// contiguous, so only gaps spanning a full missed year count.
	for i := 1; i < len(jobs); i++ {
		gap := jobs[i].start - jobs[i-1].end
		if gap > 1 {
			score -= gap * 5
			flags = append(flags, fmt.Sprintf("gap of %d years", gap))
		}
	}

	// Seniority is read from the last entry as supplied, not the sorted
	// order.
	if len(history) >= 2 {
		title := strings.ToLower(history[len(history)-1].Title)
		if strings.Contains(title, "lead") || strings.Contains(title, "manager") {
			score += 10
		} else if strings.Contains(title, "intern") || strings.Contains(title, "trainee") {
			score -= 5
		}
	}

	return clampScore(score), flags
}

// parseYear extracts a 4-digit year from a date string by taking the first
// run of digits, truncated to 4.
func parseYear(s string) (int, bool) {
	digits := firstDigitRun(s)
	if digits == "" {
		return 0, false
	}
	if len(digits) > 4 {
		digits = digits[:4]
	}
	year := 0
	for _, ch := range digits {
		year = year*10 + int(ch-'0')
	}
	return year, true
}

// parseEndYear resolves the end of a tenure. Blank, "Present" and "Current"
// all mean the position is ongoing and resolve to the current year.
func parseEndYear(s string, currentYear int) (int, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return currentYear, true
	}
	lower := strings.ToLower(trimmed)
	if strings.Contains(lower, "present") || strings.Contains(lower, "current") {
		return currentYear, true
	}
	return parseYear(trimmed)
}

func firstDigitRun(s string) string {
	start := -1
	for i, ch := range s {
		if ch >= '0' && ch <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return s[start:i]
		}
	}
	if start >= 0 {
		return s[start:]
	}
	return ""
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
