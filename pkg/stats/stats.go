// Package stats tracks rule evaluation counters. A single Tracker is shared
// between synchronous callers and the continuous evaluation loop, so all
// access goes through a mutex.
package stats

import (
	"sync"
	"time"

	"github.com/roshni-games/rule-engine/pkg/rule"
)

// RuleStats is the per-rule evaluation slice of the tracker.
type RuleStats struct {
	RuleID       string  `json:"ruleId"`
	Category     string  `json:"category"`
	Evaluations  int64   `json:"evaluations"`
	Passed       int64   `json:"passed"`
	Blocked      int64   `json:"blocked"`
	Skipped      int64   `json:"skipped"`
	TotalTimeMs  float64 `json:"totalTimeMs"`
	AvgTimeMs    float64 `json:"avgTimeMs"`
	LastEvaluate string  `json:"lastEvaluate"`
}

// CategoryStats aggregates evaluations for one rule category.
type CategoryStats struct {
	Count       int64   `json:"count"`
	Passed      int64   `json:"passed"`
	AvgTimeMs   float64 `json:"avgTimeMs"`
	SuccessRate float64 `json:"successRate"`
}

// Snapshot is a point-in-time copy of all counters. RulesEvaluated maps each
// evaluated rule ID to its evaluation count.
type Snapshot struct {
	TotalEvaluations        int64                    `json:"totalEvaluations"`
	TotalPassed             int64                    `json:"totalPassed"`
	TotalBlocked            int64                    `json:"totalBlocked"`
	TotalSkipped            int64                    `json:"totalSkipped"`
	AverageEvaluationTimeMs float64                  `json:"averageEvaluationTimeMs"`
	RulesEvaluated          map[string]int64         `json:"rulesEvaluated"`
	CategoryStatistics      map[string]CategoryStats `json:"categoryStatistics"`
}

type ruleCounters struct {
	category    string
	evaluations int64
	passed      int64
	blocked     int64
	skipped     int64
	totalTime   time.Duration
	lastAt      time.Time
}

type categoryCounters struct {
	count     int64
	passed    int64
	totalTime time.Duration
}

// Tracker maintains global, per-rule and per-category evaluation counters.
// Counters survive rule unregistration until Clear is called, so historical
// reporting keeps working across registry churn.
type Tracker struct {
	mu         sync.Mutex
	total      int64
	passed     int64
	blocked    int64
	skipped    int64
	totalTime  time.Duration
	rules      map[string]*ruleCounters
	categories map[string]*categoryCounters
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		rules:      make(map[string]*ruleCounters),
		categories: make(map[string]*categoryCounters),
	}
}

// Record folds one evaluation outcome into the counters. Skipped results
// count as evaluations but neither as passed nor as blocked.
func (t *Tracker) Record(ruleID, category string, res rule.Result, duration time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total++
	t.totalTime += duration

	rc := t.rules[ruleID]
	if rc == nil {
		rc = &ruleCounters{category: category}
		t.rules[ruleID] = rc
	}
	rc.evaluations++
	rc.totalTime += duration
	rc.lastAt = time.Now()

	cc := t.categories[category]
	if cc == nil {
		cc = &categoryCounters{}
		t.categories[category] = cc
	}
	cc.count++
	cc.totalTime += duration

	switch {
	case res.Skipped:
		t.skipped++
		rc.skipped++
	case res.Passed:
		t.passed++
		rc.passed++
		cc.passed++
	default:
		t.blocked++
		rc.blocked++
	}
}

// Snapshot returns a copy of the aggregate counters.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := Snapshot{
		TotalEvaluations:   t.total,
		TotalPassed:        t.passed,
		TotalBlocked:       t.blocked,
		TotalSkipped:       t.skipped,
		RulesEvaluated:     make(map[string]int64, len(t.rules)),
		CategoryStatistics: make(map[string]CategoryStats, len(t.categories)),
	}
	if t.total > 0 {
		snap.AverageEvaluationTimeMs = float64(t.totalTime.Microseconds()) / float64(t.total) / 1000
	}
	for ruleID, rc := range t.rules {
		snap.RulesEvaluated[ruleID] = rc.evaluations
	}
	for category, cc := range t.categories {
		cs := CategoryStats{Count: cc.count, Passed: cc.passed}
		if cc.count > 0 {
			cs.AvgTimeMs = float64(cc.totalTime.Microseconds()) / float64(cc.count) / 1000
			cs.SuccessRate = float64(cc.passed) / float64(cc.count)
		}
		snap.CategoryStatistics[category] = cs
	}
	return snap
}

// Rule returns the counters for a single rule, or nil if the rule has never
// been evaluated.
func (t *Tracker) Rule(ruleID string) *RuleStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	rc := t.rules[ruleID]
	if rc == nil {
		return nil
	}
	rs := &RuleStats{
		RuleID:      ruleID,
		Category:    rc.category,
		Evaluations: rc.evaluations,
		Passed:      rc.passed,
		Blocked:     rc.blocked,
		Skipped:     rc.skipped,
		TotalTimeMs: float64(rc.totalTime.Microseconds()) / 1000,
	}
	if rc.evaluations > 0 {
		rs.AvgTimeMs = rs.TotalTimeMs / float64(rc.evaluations)
	}
	if !rc.lastAt.IsZero() {
		rs.LastEvaluate = rc.lastAt.UTC().Format(time.RFC3339)
	}
	return rs
}

// Clear resets every counter to zero. Registered rules are untouched.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.total, t.passed, t.blocked, t.skipped = 0, 0, 0, 0
	t.totalTime = 0
	t.rules = make(map[string]*ruleCounters)
	t.categories = make(map[string]*categoryCounters)
}
