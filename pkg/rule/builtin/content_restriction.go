package builtin

import (
	"context"
	"fmt"

	"github.com/roshni-games/rule-engine/pkg/rule"
)

// ContentRestrictionRuleType is the factory type string for content
// restriction rules.
const ContentRestrictionRuleType = "content_restriction"

// ContentRestrictionRule blocks access to a piece of content when the user
// is younger than its age rating or when required parental consent has not
// been recorded.
type ContentRestrictionRule struct {
	config          rule.Config
	contentID       string
	ageRating       int
	requiresConsent bool
}

// NewContentRestrictionRule creates a content restriction rule from
// configuration. Parameters: "content_id" (mandatory), "age_rating",
// "requires_parental_consent".
func NewContentRestrictionRule(config rule.Config, _ *rule.Dependencies) (*ContentRestrictionRule, error) {
	return &ContentRestrictionRule{
		config:          config,
		contentID:       config.GetString("content_id", ""),
		ageRating:       config.GetInt("age_rating", 0),
		requiresConsent: config.GetBool("requires_parental_consent", false),
	}, nil
}

// ID implements Rule.
func (r *ContentRestrictionRule) ID() string { return r.config.ID }

// Name implements Rule.
func (r *ContentRestrictionRule) Name() string { return r.config.Name }

// Category implements Rule.
func (r *ContentRestrictionRule) Category() string { return r.config.Category }

// Config implements Rule.
func (r *ContentRestrictionRule) Config() rule.Config { return r.config }

// Metadata implements Rule.
func (r *ContentRestrictionRule) Metadata() rule.Metadata {
	return rule.Metadata{
		"type":       rule.String(ContentRestrictionRuleType),
		"content_id": rule.String(r.contentID),
		"age_rating": rule.Int(r.ageRating),
	}
}

// Validate implements Rule.
func (r *ContentRestrictionRule) Validate() error {
	if err := r.config.Validate(); err != nil {
		return err
	}
	if r.contentID == "" {
		return fmt.Errorf("rule %s has no content id", r.config.ID)
	}
	if r.ageRating < 0 {
		return fmt.Errorf("rule %s has negative age rating %d", r.config.ID, r.ageRating)
	}
	return nil
}

// Evaluate implements Rule.
func (r *ContentRestrictionRule) Evaluate(_ context.Context, rctx *rule.Context) rule.Result {
	if r.ageRating > 0 && rctx.Profile.Age > 0 && rctx.Profile.Age < r.ageRating {
		return rule.Block(fmt.Sprintf("content %s requires age %d, user is %d", r.contentID, r.ageRating, rctx.Profile.Age)).
			WithMetadata("content_id", rule.String(r.contentID)).
			WithMetadata("age_rating", rule.Int(r.ageRating))
	}

	if r.requiresConsent {
		if !rctx.Metadata.GetBool("parental_consent", false) {
			return rule.Block(fmt.Sprintf("content %s requires parental consent", r.contentID)).
				WithMetadata("content_id", rule.String(r.contentID)).
				WithMetadata("consent_required", rule.Bool(true))
		}
	}

	return rule.Pass(fmt.Sprintf("content %s is accessible", r.contentID)).
		WithMetadata("content_id", rule.String(r.contentID))
}
