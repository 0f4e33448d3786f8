package analytics

import "strings"

// AdviceRule maps keyword patterns to one advice string. Rules are
// evaluated top to bottom; the first rule with any matching pattern wins.
type AdviceRule struct {
	Patterns []string
	Advice   string
}

// AdviceRules is the ordered table shared by the local recommendation
// synthesizer and the topic clusterer. Keeping it as data makes the rule
// set inspectable and testable in isolation.
var AdviceRules = []AdviceRule{
	{
		Patterns: []string{"wait", "slow", "delay", "queue"},
		Advice:   "Review staffing and workflows during peak hours to reduce waiting times.",
	},
	{
		Patterns: []string{"price", "cost", "expensive", "overpriced"},
		Advice:   "Revisit pricing or communicate value better; customers question what they pay.",
	},
	{
		Patterns: []string{"dirty", "clean", "hygiene", "filthy"},
		Advice:   "Tighten cleaning schedules and hygiene checks in customer-facing areas.",
	},
	{
		Patterns: []string{"staff", "rude", "friendly", "waiter", "server"},
		Advice:   "Invest in staff training on courtesy and customer interaction.",
	},
	{
		Patterns: []string{"order", "app", "website", "menu", "confusing"},
		Advice:   "Simplify the ordering flow and menu presentation; customers struggle to navigate.",
	},
	{
		Patterns: []string{"cold", "taste", "flavor", "bland", "stale"},
		Advice:   "Audit kitchen quality control; dishes are arriving below standard.",
	},
	{
		Patterns: []string{"portion", "size", "small"},
		Advice:   "Reassess portion sizes against price expectations.",
	},
	{
		Patterns: []string{"noise", "noisy", "music", "loud"},
		Advice:   "Adjust ambience: sound levels are distracting customers.",
	},
}

// GenericAdvice is the mandatory default row: it applies when no pattern
// matches.
const GenericAdvice = "Review this feedback theme with the team and define a concrete follow-up."

// MatchAdvice evaluates the rule table against a text and reports whether a
// specific rule matched.
func MatchAdvice(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, rule := range AdviceRules {
		for _, p := range rule.Patterns {
			if strings.Contains(lower, p) {
				return rule.Advice, true
			}
		}
	}
	return GenericAdvice, false
}
