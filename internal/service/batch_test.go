package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/deepakm/resumatch/internal/domain"
)

type fakeComparisonStore struct {
	mu      sync.Mutex
	results map[string]domain.ComparisonResult
}

func newFakeComparisonStore() *fakeComparisonStore {
	return &fakeComparisonStore{results: make(map[string]domain.ComparisonResult)}
}

func (f *fakeComparisonStore) Upsert(ctx context.Context, result *domain.ComparisonResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[result.ResumeID] = *result
	return nil
}

func (f *fakeComparisonStore) ListByWorkflow(ctx context.Context, workflowID string) ([]domain.ComparisonResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ComparisonResult
	for _, r := range f.results {
		if r.WorkflowID == workflowID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeProgressStore struct {
	mu      sync.Mutex
	last    domain.WorkflowExecution
	updates int
}

func (f *fakeProgressStore) UpdateProgress(ctx context.Context, workflowID string, p *domain.WorkflowExecution) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = *p
	f.updates++
	return nil
}

// batchResponder scores candidates by a marker embedded in the resume text.
// Completion order is scrambled with per-candidate delays so ordering bugs
// would surface.
func batchResponder(prompt string) (string, error) {
	if strings.Contains(prompt, "slow") {
		time.Sleep(20 * time.Millisecond)
	}

	switch {
	case strings.Contains(prompt, "Resume Text:"):
		// Carry the marker token into the extraction so the comparator
		// branch can see it.
		name := "candidate"
		if idx := strings.Index(prompt, "marker="); idx >= 0 {
			name = strings.Fields(prompt[idx:])[0]
		}
		return fmt.Sprintf(`{"Name": %q}`, name), nil
	case strings.Contains(prompt, "senior HR specialist"):
		return `{"Position": "Engineer"}`, nil
	default:
		score := 90
		if strings.Contains(prompt, "weak") {
			score = 40
		}
		return fmt.Sprintf(`{"total_score": %d, "selection_reason": "eval"}`, score), nil
	}
}

func TestBatchOrchestrator_OrderPreservation(t *testing.T) {
	client := &fakeClient{respond: batchResponder}
	p := NewPipeline(client, testLogger())
	o := NewBatchOrchestrator(p, BatchStores{}, nil, testLogger(), &BatchConfig{Workers: 3})

	candidates := make([]Candidate, 8)
	for i := range candidates {
		text := fmt.Sprintf("marker=r%d engineer resume", i)
		if i%2 == 0 {
			// Even slots finish late; ordering must not depend on it.
			text += " slow"
		}
		candidates[i] = Candidate{ResumeID: fmt.Sprintf("r%d", i), Text: text}
	}

	results, elapsed := o.RunBatch(context.Background(), JDInput{JDID: "jd-1", Text: "engineer jd"}, candidates, "")

	if len(results) != len(candidates) {
		t.Fatalf("expected %d results, got %d", len(candidates), len(results))
	}
	for i, r := range results {
		if r.ResumeID != candidates[i].ResumeID {
			t.Errorf("slot %d: expected resume %s, got %s", i, candidates[i].ResumeID, r.ResumeID)
		}
	}
	if elapsed < 0 {
		t.Errorf("expected non-negative elapsed, got %d", elapsed)
	}
}

func TestBatchOrchestrator_FailureIsolation(t *testing.T) {
	client := &fakeClient{respond: func(prompt string) (string, error) {
		if strings.Contains(prompt, "poison") {
			panic("completion blew up")
		}
		return batchResponder(prompt)
	}}
	p := NewPipeline(client, testLogger())
	o := NewBatchOrchestrator(p, BatchStores{}, nil, testLogger(), nil)

	candidates := []Candidate{
		{ResumeID: "r0", Text: "marker=r0 resume"},
		{ResumeID: "r1", Text: "poison resume"},
		{ResumeID: "r2", Text: "marker=r2 resume"},
	}

	results, _ := o.RunBatch(context.Background(), JDInput{JDID: "jd-1", Text: "jd"}, candidates, "")

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	errorCount := 0
	for i, r := range results {
		if r.FitCategory == domain.FitError {
			errorCount++
			if r.ResumeID != "r1" {
				t.Errorf("expected error on r1, got %s", r.ResumeID)
			}
			if r.MatchScore != 0 {
				t.Errorf("expected error score 0, got %d", r.MatchScore)
			}
			if !strings.Contains(r.SelectionReason, "completion blew up") {
				t.Errorf("expected panic message in reason, got %q", r.SelectionReason)
			}
			continue
		}
		if r.MatchScore != 90 {
			t.Errorf("slot %d: expected score 90, got %d", i, r.MatchScore)
		}
		if r.FitCategory != domain.FitBest {
			t.Errorf("slot %d: expected Best Fit, got %s", i, r.FitCategory)
		}
	}

	if errorCount != 1 {
		t.Errorf("expected exactly 1 error result, got %d", errorCount)
	}
}

func TestBatchOrchestrator_PersistsAndRecomputesProgress(t *testing.T) {
	client := &fakeClient{respond: batchResponder}
	p := NewPipeline(client, testLogger())

	comparisons := newFakeComparisonStore()
	progress := &fakeProgressStore{}
	o := NewBatchOrchestrator(p, BatchStores{
		Comparisons: comparisons,
		Workflows:   progress,
	}, nil, testLogger(), nil)

	candidates := []Candidate{
		{ResumeID: "r0", Text: "marker=r0 resume"},
		{ResumeID: "r1", Text: "marker=r1-weak resume"},
	}

	results, _ := o.RunBatch(context.Background(), JDInput{JDID: "jd-1", Text: "jd"}, candidates, "wf-1")

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	stored, _ := comparisons.ListByWorkflow(context.Background(), "wf-1")
	if len(stored) != 2 {
		t.Fatalf("expected 2 stored results, got %d", len(stored))
	}

	progress.mu.Lock()
	defer progress.mu.Unlock()
	if progress.updates != 2 {
		t.Errorf("expected 2 progress updates, got %d", progress.updates)
	}
	if progress.last.ProcessedCount != 2 {
		t.Errorf("expected processed count 2, got %d", progress.last.ProcessedCount)
	}
	if progress.last.Percentage != 100 {
		t.Errorf("expected 100%%, got %d", progress.last.Percentage)
	}
	if progress.last.BestFitCount != 1 || progress.last.NotFitCount != 1 {
		t.Errorf("unexpected category counts: %+v", progress.last)
	}
}

func TestBatchOrchestrator_NoPersistenceWithoutWorkflow(t *testing.T) {
	client := &fakeClient{respond: batchResponder}
	p := NewPipeline(client, testLogger())

	comparisons := newFakeComparisonStore()
	progress := &fakeProgressStore{}
	o := NewBatchOrchestrator(p, BatchStores{
		Comparisons: comparisons,
		Workflows:   progress,
	}, nil, testLogger(), nil)

	o.RunBatch(context.Background(), JDInput{JDID: "jd-1", Text: "jd"}, []Candidate{
		{ResumeID: "r0", Text: "marker=r0 resume"},
	}, "")

	comparisons.mu.Lock()
	if len(comparisons.results) != 0 {
		t.Errorf("expected no stored results, got %d", len(comparisons.results))
	}
	comparisons.mu.Unlock()

	progress.mu.Lock()
	if progress.updates != 0 {
		t.Errorf("expected no progress updates, got %d", progress.updates)
	}
	progress.mu.Unlock()
}

func TestBatchOrchestrator_SharedJDExtraction(t *testing.T) {
	// The JD is extracted once per batch, not once per candidate.
	client := &fakeClient{respond: batchResponder}
	p := NewPipeline(client, testLogger())
	o := NewBatchOrchestrator(p, BatchStores{}, nil, testLogger(), nil)

	candidates := []Candidate{
		{ResumeID: "r0", Text: "marker=r0 resume"},
		{ResumeID: "r1", Text: "marker=r1 resume"},
		{ResumeID: "r2", Text: "marker=r2 resume"},
	}

	o.RunBatch(context.Background(), JDInput{JDID: "jd-1", Text: "jd"}, candidates, "")

	// 1 JD extraction + 3 resume extractions + 3 comparisons.
	if client.callCount() != 7 {
		t.Errorf("expected 7 completion calls, got %d", client.callCount())
	}
}

func TestBatchOrchestrator_PreExtractedInputsSkipExtraction(t *testing.T) {
	client := &fakeClient{respond: batchResponder}
	p := NewPipeline(client, testLogger())
	o := NewBatchOrchestrator(p, BatchStores{}, nil, testLogger(), nil)

	candidates := []Candidate{
		{ResumeID: "r0", Extracted: `{"Name": "Jane"}`},
	}

	results, _ := o.RunBatch(context.Background(), JDInput{JDID: "jd-1", Extracted: `{"Position": "X"}`}, candidates, "")

	// Only the comparison call remains.
	if client.callCount() != 1 {
		t.Errorf("expected 1 completion call, got %d", client.callCount())
	}
	if results[0].ApplicantName != "Jane" {
		t.Errorf("expected applicant name from extraction, got %q", results[0].ApplicantName)
	}
}
