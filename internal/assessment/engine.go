package assessment

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Scoring formula constants. A candidate starts from the base score and earns
// up to keywordWeight points from keyword density plus per-answer detail
// bonuses, capped at maxScore.
const (
	baseScore          = 30
	keywordWeight      = 60
	maxScore           = 100
	recommendThreshold = 60

	longAnswerRunes  = 150
	longAnswerBonus  = 5
	shortAnswerRunes = 60
	shortAnswerBonus = 2
)

// Engine scores completed interviews against a question bank. It is pure and
// deterministic: identical inputs always produce identical results, and no
// input causes an error.
type Engine struct {
	bank *Bank
}

// NewEngine returns an engine scoring against the given bank.
func NewEngine(bank *Bank) *Engine {
	return &Engine{bank: bank}
}

// Evaluate scores the ordered response sequence for the given domain.
//
// Responses beyond the resolved question set's length are scored against the
// default set's first keyword set. That mirrors the historical behaviour of
// the assessment and is kept intentionally; see DESIGN.md before changing it.
func (e *Engine) Evaluate(domain string, responses []InterviewResponse) Result {
	specs := e.bank.Questions(domain)
	fallback := e.bank.Default()[0].Keywords

	var possible, found, bonus int
	for i, resp := range responses {
		keywords := fallback
		if i < len(specs) {
			keywords = specs[i].Keywords
		}

		answer := strings.ToLower(resp.Answer)
		for _, kw := range keywords {
			if strings.Contains(answer, kw) {
				found++
			}
		}
		possible += len(keywords)

		switch n := utf8.RuneCountInString(resp.Answer); {
		case n > longAnswerRunes:
			bonus += longAnswerBonus
		case n > shortAnswerRunes:
			bonus += shortAnswerBonus
		}
	}

	ratio := 0.0
	if possible > 0 {
		ratio = float64(found) / float64(possible)
	}

	score := int(math.Round(ratio*keywordWeight + baseScore + float64(bonus)))
	if score > maxScore {
		score = maxScore
	}

	recommendation := NotRecommended
	if score >= recommendThreshold {
		recommendation = Recommended
	}

	return Result{
		Score:          score,
		Recommendation: recommendation,
		Summary:        summarize(domain, score, found),
	}
}
