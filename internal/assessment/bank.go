package assessment

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Domain labels presented to candidates. Bank lookup is keyed by these exact
// strings; anything else falls back to the default question set.
const (
	DomainHR               = "HR Services"
	DomainFinance          = "Finance"
	DomainCompanySecretary = "Company Secretary"
	DomainSoftwareDev      = "Software Developer"
	DomainQATester         = "QA Tester"
	DomainManagement       = "Management Services"
	DomainBusinessAnalyst  = "Business Analyst"
	DomainFrontendDev      = "Frontend Developer"
	DomainBackendDev       = "Backend Developer"
)

// Bank maps a domain label to its ordered question set. Ordering is
// significant: answer index i is scored against keyword set i.
type Bank struct {
	domains  map[string][]QuestionSpec
	fallback []QuestionSpec
}

// NewBank returns the built-in question bank covering all assessment domains.
func NewBank() *Bank {
	return &Bank{
		domains:  builtinDomainQuestions(),
		fallback: defaultQuestions(),
	}
}

// Questions returns the ordered question set for the given domain. Unknown
// domains receive the default set. The returned slice is shared and must not
// be mutated by callers.
func (b *Bank) Questions(domain string) []QuestionSpec {
	if qs, ok := b.domains[domain]; ok {
		return qs
	}
	return b.fallback
}

// Default returns the generic question set used for domains without a
// dedicated entry.
func (b *Bank) Default() []QuestionSpec {
	return b.fallback
}

// Domains returns the labels that have a dedicated question set.
func (b *Bank) Domains() []string {
	labels := make([]string, 0, len(b.domains))
	for d := range b.domains {
		labels = append(labels, d)
	}
	return labels
}

// bankFile is the YAML shape of a question bank override file.
type bankFile struct {
	Domains []struct {
		Domain    string         `yaml:"domain"`
		Questions []QuestionSpec `yaml:"questions"`
	} `yaml:"domains"`
}

// LoadFile merges question sets from a YAML file into the bank, replacing the
// built-in set for any domain the file names. The file is validated before any
// of it is applied.
func (b *Bank) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading question bank file %s: %w", path, err)
	}

	var file bankFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing question bank file %s: %w", path, err)
	}

	if err := validateBankFile(&file); err != nil {
		return fmt.Errorf("validating question bank file %s: %w", path, err)
	}

	for _, d := range file.Domains {
		qs := make([]QuestionSpec, len(d.Questions))
		for i, q := range d.Questions {
			kws := make([]string, len(q.Keywords))
			for j, kw := range q.Keywords {
				kws[j] = strings.ToLower(strings.TrimSpace(kw))
			}
			qs[i] = QuestionSpec{Text: q.Text, Keywords: kws}
		}
		b.domains[d.Domain] = qs
	}

	return nil
}

func validateBankFile(file *bankFile) error {
	if len(file.Domains) == 0 {
		return fmt.Errorf("no domains defined")
	}

	for _, d := range file.Domains {
		if strings.TrimSpace(d.Domain) == "" {
			return fmt.Errorf("domain label must not be empty")
		}
		if len(d.Questions) == 0 {
			return fmt.Errorf("domain %q has no questions", d.Domain)
		}
		for i, q := range d.Questions {
			if strings.TrimSpace(q.Text) == "" {
				return fmt.Errorf("domain %q question %d has empty text", d.Domain, i+1)
			}
			if len(q.Keywords) == 0 {
				return fmt.Errorf("domain %q question %d has no keywords", d.Domain, i+1)
			}
		}
	}

	return nil
}

func defaultQuestions() []QuestionSpec {
	return []QuestionSpec{
		{
			Text:     "Tell us about yourself and your professional background.",
			Keywords: []string{"experience", "background", "skills", "career", "education"},
		},
		{
			Text:     "Describe a challenging problem you solved at work and how you approached it.",
			Keywords: []string{"problem", "solution", "challenge", "result", "learned"},
		},
		{
			Text:     "How do you prioritise your tasks when everything seems urgent?",
			Keywords: []string{"priority", "deadline", "plan", "organize", "focus"},
		},
		{
			Text:     "Tell us about a time you worked with a team to deliver something important.",
			Keywords: []string{"team", "collaboration", "role", "communication", "goal"},
		},
		{
			Text:     "Where do you see your professional growth over the next few years?",
			Keywords: []string{"growth", "goal", "learning", "development", "improvement"},
		},
	}
}

func builtinDomainQuestions() map[string][]QuestionSpec {
	return map[string][]QuestionSpec{
		DomainSoftwareDev: {
			{
				Text:     "Describe your approach to designing a new application feature, from requirements to release.",
				Keywords: []string{"design", "requirements", "testing", "deployment", "code"},
			},
			{
				Text:     "How do you ensure the quality and maintainability of the code you write?",
				Keywords: []string{"review", "refactor", "testing", "documentation", "standards"},
			},
			{
				Text:     "Walk us through how you would debug a production issue under time pressure.",
				Keywords: []string{"logs", "reproduce", "debug", "monitoring", "fix"},
			},
			{
				Text:     "Tell us about a time you improved the performance of a slow system.",
				Keywords: []string{"profiling", "bottleneck", "cache", "optimize", "performance"},
			},
			{
				Text:     "How do you collaborate with other engineers on a shared codebase?",
				Keywords: []string{"git", "branch", "merge", "review", "communication"},
			},
		},
		DomainFrontendDev: {
			{
				Text:     "How do you build interfaces that work well across screen sizes and for all users?",
				Keywords: []string{"responsive", "css", "layout", "accessibility", "design"},
			},
			{
				Text:     "Explain how you manage state in a complex user interface.",
				Keywords: []string{"state", "component", "props", "render", "data"},
			},
			{
				Text:     "What techniques do you use to keep a web application fast?",
				Keywords: []string{"bundle", "lazy", "performance", "cache", "optimize"},
			},
			{
				Text:     "How do you deal with cross-browser differences and regressions?",
				Keywords: []string{"browser", "compatibility", "testing", "polyfill", "debug"},
			},
			{
				Text:     "Describe how you work with designers to turn a mockup into a product.",
				Keywords: []string{"design", "user", "feedback", "prototype", "usability"},
			},
		},
		DomainBackendDev: {
			{
				Text:     "How do you design an API that other teams will depend on?",
				Keywords: []string{"api", "rest", "endpoint", "versioning", "contract"},
			},
			{
				Text:     "Describe how you model and query data for a transactional workload.",
				Keywords: []string{"database", "schema", "index", "query", "transaction"},
			},
			{
				Text:     "What is your approach to scaling a service under growing load?",
				Keywords: []string{"scale", "load", "cache", "queue", "replication"},
			},
			{
				Text:     "How do you secure a backend service end to end?",
				Keywords: []string{"authentication", "authorization", "encryption", "validation", "token"},
			},
			{
				Text:     "How do you keep a production service reliable and observable?",
				Keywords: []string{"monitoring", "logging", "retry", "failover", "alert"},
			},
		},
		DomainHR: {
			{
				Text:     "Walk us through how you run a recruitment process from opening to offer.",
				Keywords: []string{"sourcing", "screening", "interview", "pipeline", "offer"},
			},
			{
				Text:     "How do you handle a conflict between two employees on the same team?",
				Keywords: []string{"mediation", "listening", "policy", "resolution", "communication"},
			},
			{
				Text:     "Describe an onboarding program you would design for new joiners.",
				Keywords: []string{"onboarding", "training", "orientation", "documentation", "feedback"},
			},
			{
				Text:     "What levers do you use to improve employee retention?",
				Keywords: []string{"engagement", "retention", "culture", "recognition", "survey"},
			},
			{
				Text:     "How do you keep HR processes compliant with labor regulations?",
				Keywords: []string{"policy", "compliance", "labor", "documentation", "confidentiality"},
			},
		},
		DomainFinance: {
			{
				Text:     "Describe how you build and defend an annual budget forecast.",
				Keywords: []string{"budget", "forecast", "variance", "analysis", "report"},
			},
			{
				Text:     "How do you identify and manage financial risk in a business unit?",
				Keywords: []string{"risk", "exposure", "hedging", "compliance", "audit"},
			},
			{
				Text:     "Walk us through how the three financial statements connect.",
				Keywords: []string{"balance", "income", "cashflow", "statement", "reconciliation"},
			},
			{
				Text:     "Tell us about a cost reduction initiative you led or contributed to.",
				Keywords: []string{"cost", "margin", "efficiency", "savings", "review"},
			},
			{
				Text:     "Which tools and models do you rely on for financial analysis?",
				Keywords: []string{"excel", "model", "data", "automation", "accuracy"},
			},
		},
		DomainCompanySecretary: {
			{
				Text:     "How do you support a board in meeting its governance obligations?",
				Keywords: []string{"governance", "board", "compliance", "charter", "policy"},
			},
			{
				Text:     "Describe how you manage statutory filings and deadlines.",
				Keywords: []string{"filing", "statutory", "registrar", "deadline", "records"},
			},
			{
				Text:     "Walk us through preparing and running a board meeting.",
				Keywords: []string{"agenda", "minutes", "resolution", "quorum", "notice"},
			},
			{
				Text:     "How do you handle shareholder disclosure requirements?",
				Keywords: []string{"disclosure", "shareholder", "regulation", "transparency", "reporting"},
			},
			{
				Text:     "How do you advise directors on conflicts of interest?",
				Keywords: []string{"ethics", "conflict", "integrity", "confidentiality", "duty"},
			},
		},
		DomainQATester: {
			{
				Text:     "How do you plan test coverage for a new feature?",
				Keywords: []string{"plan", "coverage", "requirement", "scenario", "priority"},
			},
			{
				Text:     "Describe your experience with test automation.",
				Keywords: []string{"automation", "script", "regression", "framework", "pipeline"},
			},
			{
				Text:     "What makes a good bug report?",
				Keywords: []string{"defect", "reproduce", "severity", "report", "tracking"},
			},
			{
				Text:     "How do you find the edge cases other people miss?",
				Keywords: []string{"boundary", "negative", "edge", "validation", "input"},
			},
			{
				Text:     "How do you decide a release is ready to ship?",
				Keywords: []string{"smoke", "release", "signoff", "criteria", "risk"},
			},
		},
		DomainManagement: {
			{
				Text:     "How do you translate company strategy into a team plan?",
				Keywords: []string{"strategy", "planning", "objective", "milestone", "resource"},
			},
			{
				Text:     "Describe your approach to developing the people on your team.",
				Keywords: []string{"delegation", "motivation", "feedback", "performance", "coaching"},
			},
			{
				Text:     "Tell us about a change initiative you drove through an organisation.",
				Keywords: []string{"change", "stakeholder", "communication", "adoption", "training"},
			},
			{
				Text:     "How do you measure whether your team is succeeding?",
				Keywords: []string{"kpi", "metric", "report", "target", "review"},
			},
			{
				Text:     "Walk us through how you manage a departmental budget.",
				Keywords: []string{"budget", "cost", "allocation", "forecast", "approval"},
			},
		},
		DomainBusinessAnalyst: {
			{
				Text:     "How do you elicit requirements from stakeholders who disagree?",
				Keywords: []string{"requirement", "stakeholder", "elicitation", "documentation", "scope"},
			},
			{
				Text:     "Describe a business process you mapped and improved.",
				Keywords: []string{"process", "workflow", "mapping", "improvement", "efficiency"},
			},
			{
				Text:     "How do you turn raw data into a decision the business can act on?",
				Keywords: []string{"data", "analysis", "insight", "report", "trend"},
			},
			{
				Text:     "How do you bridge between technical teams and business users?",
				Keywords: []string{"communication", "translation", "technical", "business", "alignment"},
			},
			{
				Text:     "How do you define acceptance criteria for a delivered feature?",
				Keywords: []string{"acceptance", "criteria", "validation", "testing", "signoff"},
			},
		},
	}
}
