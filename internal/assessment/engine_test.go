package assessment

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

// Answers for the software-developer scenario: each contains exactly 3 of the
// 5 target keywords for its question and sits in the 61-150 rune band.
var softwareAnswers = []string{
	"I start from the requirements, sketch a design, and cover it with testing before shipping anything.",
	"Every change gets a peer review, and I refactor continuously while keeping the testing suite green at all times.",
	"First I check the logs, then I reproduce the failure locally and debug it step by step until the cause is clear.",
	"After profiling the service I found the main bottleneck and added a cache in front of the slowest dependency.",
	"We use git with a short lived branch per task and merge small changes daily to keep the shared history clean.",
}

func responsesFrom(answers []string) []InterviewResponse {
	out := make([]InterviewResponse, len(answers))
	for i, a := range answers {
		out[i] = InterviewResponse{Question: "q", Answer: a}
	}
	return out
}

func TestEvaluateSoftwareDeveloperScenario(t *testing.T) {
	engine := NewEngine(NewBank())

	for i, a := range softwareAnswers {
		if n := utf8.RuneCountInString(a); n <= 60 || n > 150 {
			t.Fatalf("answer %d has %d runes, want 61-150", i, n)
		}
	}

	result := engine.Evaluate(DomainSoftwareDev, responsesFrom(softwareAnswers))

	// 15/25 keywords matched, +2 detail bonus per answer:
	// round(0.6*60 + 30 + 10) = 76
	if result.Score != 76 {
		t.Errorf("score = %d, want 76", result.Score)
	}
	if result.Recommendation != Recommended {
		t.Errorf("recommendation = %q, want %q", result.Recommendation, Recommended)
	}
	if !strings.Contains(result.Summary, DomainSoftwareDev) {
		t.Errorf("summary %q does not mention the domain", result.Summary)
	}
	if !strings.Contains(result.Summary, "15") {
		t.Errorf("summary %q does not mention the keyword count", result.Summary)
	}
}

func TestEvaluateUnknownDomainLowEffort(t *testing.T) {
	engine := NewEngine(NewBank())

	answers := []string{"n/a", "skip", "dunno", "pass", "next"}
	result := engine.Evaluate("Astrology", responsesFrom(answers))

	if result.Score != 30 {
		t.Errorf("score = %d, want 30", result.Score)
	}
	if result.Recommendation != NotRecommended {
		t.Errorf("recommendation = %q, want %q", result.Recommendation, NotRecommended)
	}
	want := "The candidate's responses did not demonstrate the competencies expected for this role."
	if result.Summary != want {
		t.Errorf("summary = %q, want generic low-bracket template", result.Summary)
	}
}

func TestEvaluateEmptyResponses(t *testing.T) {
	engine := NewEngine(NewBank())

	result := engine.Evaluate(DomainFinance, nil)
	if result.Score != 30 {
		t.Errorf("score = %d, want 30 for empty response list", result.Score)
	}
	if result.Recommendation != NotRecommended {
		t.Errorf("recommendation = %q, want %q", result.Recommendation, NotRecommended)
	}
}

func TestDetailBonusBoundaries(t *testing.T) {
	engine := NewEngine(NewBank())

	// Keyword-free filler against the default bank, so only the detail bonus
	// moves the score off the base of 30.
	tests := []struct {
		runes int
		want  int
	}{
		{59, 30},
		{60, 30},  // exactly 60 gets no bonus
		{61, 32},  // strictly above 60 gets +2
		{150, 32}, // exactly 150 stays at +2
		{151, 35}, // strictly above 150 gets +5
	}

	for _, tc := range tests {
		answer := strings.Repeat("x", tc.runes)
		result := engine.Evaluate("Astrology", []InterviewResponse{{Answer: answer}})
		if result.Score != tc.want {
			t.Errorf("score for %d-rune answer = %d, want %d", tc.runes, result.Score, tc.want)
		}
	}
}

func TestEvaluateScoreClampedAt100(t *testing.T) {
	bank := NewBank()
	engine := NewEngine(bank)

	// Every keyword present and every answer past the long-answer threshold:
	// 60 + 30 + 25 = 115 before the cap.
	specs := bank.Questions(DomainSoftwareDev)
	answers := make([]string, len(specs))
	for i, q := range specs {
		answers[i] = strings.Join(q.Keywords, " ") + " " + strings.Repeat("y", 150)
	}

	result := engine.Evaluate(DomainSoftwareDev, responsesFrom(answers))
	if result.Score != 100 {
		t.Errorf("score = %d, want clamp at 100", result.Score)
	}
}

func TestEvaluateOverflowUsesDefaultFirstKeywords(t *testing.T) {
	engine := NewEngine(NewBank())

	// Six responses against a five-question set: the sixth is scored against
	// the default bank's first keyword set.
	answers := []string{"", "", "", "", "", "my experience and career"}
	result := engine.Evaluate(DomainSoftwareDev, responsesFrom(answers))

	// found 2 of possible 30, no detail bonus: round(4 + 30) = 34
	if result.Score != 34 {
		t.Errorf("score = %d, want 34", result.Score)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	engine := NewEngine(NewBank())
	responses := responsesFrom(softwareAnswers)

	first := engine.Evaluate(DomainSoftwareDev, responses)
	second := engine.Evaluate(DomainSoftwareDev, responses)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("engine not deterministic: %+v != %+v", first, second)
	}
}

func TestRecommendationMatchesThreshold(t *testing.T) {
	engine := NewEngine(NewBank())

	// A spread of inputs across domains and answer shapes; the property must
	// hold for every one of them.
	inputs := []struct {
		domain  string
		answers []string
	}{
		{DomainSoftwareDev, softwareAnswers},
		{DomainSoftwareDev, softwareAnswers[:2]},
		{"Astrology", []string{"short", "short", "short"}},
		{DomainHR, []string{strings.Repeat("z", 200)}},
		{DomainFinance, []string{"budget forecast variance analysis report " + strings.Repeat("w", 120)}},
		{DomainQATester, nil},
	}

	for _, in := range inputs {
		result := engine.Evaluate(in.domain, responsesFrom(in.answers))
		if result.Score < 0 || result.Score > 100 {
			t.Errorf("%s: score %d out of range", in.domain, result.Score)
		}
		wantRecommended := result.Score >= 60
		gotRecommended := result.Recommendation == Recommended
		if wantRecommended != gotRecommended {
			t.Errorf("%s: score %d with recommendation %q violates threshold", in.domain, result.Score, result.Recommendation)
		}
	}
}
