package exam

import "slices"

// Recommendation thresholds on the completion score. Both are exclusive:
// a score of exactly 80 recommends intermediate, exactly 60 beginner.
const (
	AdvancedThreshold     = 80.0
	IntermediateThreshold = 60.0
)

// Performance is the derived analytics bundle for a session. It is never
// edited directly; Analyze rebuilds it from session data.
type Performance struct {
	// CompletionScorePercent is answered/total*100. It measures progress,
	// not correctness.
	CompletionScorePercent    float64
	AverageSecondsPerQuestion float64
	Strengths                 []Tier
	Weaknesses                []Tier
	RecommendedTier           Tier

	Answered       int
	Total          int
	ElapsedSeconds int
}

// Equal reports whether two snapshots carry the same values.
func (p Performance) Equal(o Performance) bool {
	return p.CompletionScorePercent == o.CompletionScorePercent &&
		p.AverageSecondsPerQuestion == o.AverageSecondsPerQuestion &&
		p.RecommendedTier == o.RecommendedTier &&
		p.Answered == o.Answered &&
		p.Total == o.Total &&
		p.ElapsedSeconds == o.ElapsedSeconds &&
		slices.Equal(p.Strengths, o.Strengths) &&
		slices.Equal(p.Weaknesses, o.Weaknesses)
}

// IsStrength reports whether t is listed as a strength.
func (p Performance) IsStrength(t Tier) bool {
	return slices.Contains(p.Strengths, t)
}

// Analyze derives a Performance from the question set, the recorded answers
// and the timer. It has no other inputs.
//
// A tier is a strength when every question carrying that tier has an
// answer, otherwise a weakness. Untiered questions count toward the score
// but produce no verdict.
func Analyze(set *QuestionSet, answers map[string]Answer, durationSeconds, remainingSeconds int) Performance {
	total := set.Len()
	answered := 0
	for id := range answers {
		if _, ok := set.Lookup(id); ok {
			answered++
		}
	}

	var score float64
	if total > 0 {
		score = float64(answered) / float64(total) * 100
	}

	elapsed := durationSeconds - remainingSeconds
	if elapsed < 0 {
		elapsed = 0
	}
	var avg float64
	if answered > 0 {
		avg = float64(elapsed) / float64(answered)
	}

	complete := make(map[Tier]bool)
	for _, t := range set.Tiers() {
		complete[t] = true
	}
	for _, q := range set.questions {
		if q.Tier == "" {
			continue
		}
		if _, ok := answers[q.ID]; !ok {
			complete[q.Tier] = false
		}
	}

	perf := Performance{
		CompletionScorePercent:    score,
		AverageSecondsPerQuestion: avg,
		RecommendedTier:           RecommendTier(score),
		Answered:                  answered,
		Total:                     total,
		ElapsedSeconds:            elapsed,
	}
	for _, t := range set.Tiers() {
		if complete[t] {
			perf.Strengths = append(perf.Strengths, t)
		} else {
			perf.Weaknesses = append(perf.Weaknesses, t)
		}
	}
	return perf
}

// RecommendTier maps a completion score to the next difficulty to attempt.
func RecommendTier(score float64) Tier {
	switch {
	case score > AdvancedThreshold:
		return TierAdvanced
	case score > IntermediateThreshold:
		return TierIntermediate
	default:
		return TierBeginner
	}
}
