package synthesis

import "FeedbackInsights/internal/domain"

// MergeRecommendations appends a recommendation, folding it into an
// existing one when the advice strings are identical: topics and actions
// become the set union, original order preserved.
func MergeRecommendations(recs []domain.Recommendation, rec domain.Recommendation) []domain.Recommendation {
	for i := range recs {
		if recs[i].Advice == rec.Advice {
			recs[i].Topics = unionStrings(recs[i].Topics, rec.Topics)
			recs[i].Actions = unionStrings(recs[i].Actions, rec.Actions)
			return recs
		}
	}
	rec.Topics = unionStrings(nil, rec.Topics)
	rec.Actions = unionStrings(nil, rec.Actions)
	return append(recs, rec)
}

// DedupeRecommendations merges every duplicate-advice recommendation in a
// list, preserving first-seen order.
func DedupeRecommendations(recs []domain.Recommendation) []domain.Recommendation {
	var out []domain.Recommendation
	for _, rec := range recs {
		out = MergeRecommendations(out, rec)
	}
	return out
}

func unionStrings(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, s := range base {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	for _, s := range extra {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
