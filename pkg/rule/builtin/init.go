package builtin

import "github.com/roshni-games/rule-engine/pkg/rule"

// RegisterBuiltinRules registers the factory for every builtin rule type.
// Call it once at startup before building rules from configuration.
func RegisterBuiltinRules() {
	rule.RegisterType(GameplayRuleType, func(config rule.Config, deps *rule.Dependencies) (rule.Rule, error) {
		return NewGameplayRule(config, deps)
	})
	rule.RegisterType(PermissionRuleType, func(config rule.Config, deps *rule.Dependencies) (rule.Rule, error) {
		return NewPermissionRule(config, deps)
	})
	rule.RegisterType(FeatureGateRuleType, func(config rule.Config, deps *rule.Dependencies) (rule.Rule, error) {
		return NewFeatureGateRule(config, deps)
	})
	rule.RegisterType(ContentRestrictionRuleType, func(config rule.Config, deps *rule.Dependencies) (rule.Rule, error) {
		return NewContentRestrictionRule(config, deps)
	})
	rule.RegisterType(ParentalControlRuleType, func(config rule.Config, deps *rule.Dependencies) (rule.Rule, error) {
		return NewParentalControlRule(config, deps)
	})
}
