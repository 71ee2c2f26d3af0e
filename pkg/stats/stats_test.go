package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/roshni-games/rule-engine/pkg/rule"
)

func TestTracker_Record(t *testing.T) {
	tracker := NewTracker()

	// Evaluate a fixed passing rule 5 times.
	for i := 0; i < 5; i++ {
		tracker.Record("rule-1", "navigation", rule.Pass("ok"), 2*time.Millisecond)
	}

	snap := tracker.Snapshot()
	if snap.TotalEvaluations != 5 {
		t.Errorf("Expected 5 total evaluations, got %d", snap.TotalEvaluations)
	}
	if snap.TotalPassed != 5 {
		t.Errorf("Expected 5 passed, got %d", snap.TotalPassed)
	}
	if len(snap.RulesEvaluated) != 1 {
		t.Errorf("Expected 1 rule evaluated, got %d", len(snap.RulesEvaluated))
	}
	if snap.RulesEvaluated["rule-1"] != 5 {
		t.Errorf("Expected 5 evaluations for rule-1, got %d", snap.RulesEvaluated["rule-1"])
	}
	if snap.AverageEvaluationTimeMs <= 0 {
		t.Error("Expected positive average evaluation time")
	}

	rs := tracker.Rule("rule-1")
	if rs == nil {
		t.Fatal("Expected per-rule stats")
	}
	if rs.Evaluations != 5 || rs.Passed != 5 {
		t.Errorf("Expected 5/5 evaluations/passed, got %d/%d", rs.Evaluations, rs.Passed)
	}
}

func TestTracker_OutcomeCounters(t *testing.T) {
	tracker := NewTracker()

	tracker.Record("rule-1", "navigation", rule.Pass("ok"), time.Millisecond)
	tracker.Record("rule-1", "navigation", rule.Block("denied"), time.Millisecond)
	tracker.Record("rule-2", "parental", rule.Skip("controls off"), time.Millisecond)

	snap := tracker.Snapshot()
	if snap.TotalEvaluations != 3 {
		t.Errorf("Expected 3 evaluations, got %d", snap.TotalEvaluations)
	}
	if snap.TotalPassed != 1 || snap.TotalBlocked != 1 || snap.TotalSkipped != 1 {
		t.Errorf("Expected 1/1/1 passed/blocked/skipped, got %d/%d/%d",
			snap.TotalPassed, snap.TotalBlocked, snap.TotalSkipped)
	}

	nav, ok := snap.CategoryStatistics["navigation"]
	if !ok {
		t.Fatal("Expected navigation category stats")
	}
	if nav.Count != 2 {
		t.Errorf("Expected 2 navigation evaluations, got %d", nav.Count)
	}
	if nav.SuccessRate != 0.5 {
		t.Errorf("Expected 0.5 success rate, got %v", nav.SuccessRate)
	}
}

func TestTracker_UnknownRule(t *testing.T) {
	tracker := NewTracker()
	if tracker.Rule("never-evaluated") != nil {
		t.Error("Expected nil for a rule that was never evaluated")
	}
}

func TestTracker_Clear(t *testing.T) {
	tracker := NewTracker()
	tracker.Record("rule-1", "navigation", rule.Pass("ok"), time.Millisecond)

	tracker.Clear()

	snap := tracker.Snapshot()
	if snap.TotalEvaluations != 0 || len(snap.RulesEvaluated) != 0 {
		t.Errorf("Expected empty tracker after clear, got %+v", snap)
	}
	if tracker.Rule("rule-1") != nil {
		t.Error("Expected per-rule stats to be purged after clear")
	}
}

func TestTracker_ConcurrentRecord(t *testing.T) {
	tracker := NewTracker()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tracker.Record("rule-1", "navigation", rule.Pass("ok"), time.Microsecond)
			}
		}()
	}
	wg.Wait()

	if got := tracker.Snapshot().TotalEvaluations; got != 1000 {
		t.Errorf("Expected 1000 evaluations, got %d", got)
	}
}
