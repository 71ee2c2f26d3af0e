package builtin

import (
	"context"
	"fmt"
	"time"

	"github.com/roshni-games/rule-engine/pkg/rule"
)

// ParentalControlRuleType is the factory type string for parental control
// rules.
const ParentalControlRuleType = "parental_control"

// Parental control severities, in increasing order of strictness.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// TimeWindow restricts play to a daily window. Start and End are minutes
// since midnight; a window with End < Start spans midnight.
type TimeWindow struct {
	Start int
	End   int
}

// Contains reports whether t falls inside the window.
func (w TimeWindow) Contains(t time.Time) bool {
	minute := t.Hour()*60 + t.Minute()
	if w.Start <= w.End {
		return minute >= w.Start && minute < w.End
	}
	return minute >= w.Start || minute < w.End
}

// ParentalControlRule enforces a single parental control: a daily time
// window, a set of blocked content categories, or both. Evaluation is
// skipped entirely when the profile has parental controls switched off.
type ParentalControlRule struct {
	config        rule.Config
	controlType   string
	severity      string
	window        *TimeWindow
	blocked       map[string]bool
	allowOverride bool
}

// NewParentalControlRule creates a parental control rule from configuration.
// Parameters: "control_type" (mandatory), "severity", "allow_override",
// "window_start_minute"/"window_end_minute", "blocked_categories".
func NewParentalControlRule(config rule.Config, _ *rule.Dependencies) (*ParentalControlRule, error) {
	r := &ParentalControlRule{
		config:        config,
		controlType:   config.GetString("control_type", ""),
		severity:      config.GetString("severity", SeverityMedium),
		allowOverride: config.GetBool("allow_override", false),
	}

	start := config.GetInt("window_start_minute", -1)
	end := config.GetInt("window_end_minute", -1)
	if start >= 0 && end >= 0 {
		r.window = &TimeWindow{Start: start, End: end}
	}

	categories := config.GetStringSlice("blocked_categories", nil)
	if len(categories) > 0 {
		r.blocked = make(map[string]bool, len(categories))
		for _, c := range categories {
			r.blocked[c] = true
		}
	}
	return r, nil
}

// ID implements Rule.
func (r *ParentalControlRule) ID() string { return r.config.ID }

// Name implements Rule.
func (r *ParentalControlRule) Name() string { return r.config.Name }

// Category implements Rule.
func (r *ParentalControlRule) Category() string { return r.config.Category }

// Config implements Rule.
func (r *ParentalControlRule) Config() rule.Config { return r.config }

// Metadata implements Rule.
func (r *ParentalControlRule) Metadata() rule.Metadata {
	return rule.Metadata{
		"type":         rule.String(ParentalControlRuleType),
		"control_type": rule.String(r.controlType),
		"severity":     rule.String(r.severity),
	}
}

// Validate implements Rule.
func (r *ParentalControlRule) Validate() error {
	if err := r.config.Validate(); err != nil {
		return err
	}
	if r.controlType == "" {
		return fmt.Errorf("rule %s has no control type", r.config.ID)
	}
	switch r.severity {
	case SeverityLow, SeverityMedium, SeverityHigh:
	default:
		return fmt.Errorf("rule %s has unknown severity %q", r.config.ID, r.severity)
	}
	if r.window != nil {
		if r.window.Start < 0 || r.window.Start >= 24*60 || r.window.End < 0 || r.window.End >= 24*60 {
			return fmt.Errorf("rule %s has time window outside the day", r.config.ID)
		}
	}
	return nil
}

// Evaluate implements Rule.
func (r *ParentalControlRule) Evaluate(_ context.Context, rctx *rule.Context) rule.Result {
	if !rctx.Profile.ParentalControlsEnabled {
		return rule.Skip("parental controls are not enabled for this profile")
	}

	if r.allowOverride && rctx.Metadata.GetBool("parental_override", false) {
		return rule.Pass("parental override active").
			WithMetadata("override", rule.Bool(true)).
			WithMetadata("control_type", rule.String(r.controlType))
	}

	if r.window != nil && !r.window.Contains(rctx.Timestamp) {
		return rule.Block(fmt.Sprintf("play time is restricted outside the allowed window (%s)", r.controlType)).
			WithMetadata("control_type", rule.String(r.controlType)).
			WithMetadata("severity", rule.String(r.severity))
	}

	if len(r.blocked) > 0 {
		category := rctx.Metadata.GetString("content_category", "")
		if category != "" && r.blocked[category] {
			return rule.Block(fmt.Sprintf("content category %s is blocked by parental controls", category)).
				WithMetadata("control_type", rule.String(r.controlType)).
				WithMetadata("severity", rule.String(r.severity)).
				WithMetadata("blocked_category", rule.String(category))
		}
	}

	return rule.Pass(fmt.Sprintf("parental control %s satisfied", r.controlType)).
		WithMetadata("control_type", rule.String(r.controlType))
}
