package assessment

import "fmt"

// Score brackets for summary selection.
const (
	excellentBracket = 85
	solidBracket     = 60
	partialBracket   = 40
)

// domainCategory tags group domains that share low-bracket summary wording.
type domainCategory int

const (
	categoryGeneric domainCategory = iota
	categorySoftware
	categoryHR
	categoryFinance
	categoryQA
)

// lowBracketTemplates maps a domain category to its below-threshold summary.
// New domains are additive: map the domain to a category in categoryOf and,
// if needed, add a template here.
var lowBracketTemplates = map[domainCategory]func(domain string) string{
	categorySoftware: func(domain string) string {
		return fmt.Sprintf("The responses lack the technical depth expected for a %s role. Core engineering concepts were not demonstrated.", domain)
	},
	categoryHR: func(domain string) string {
		return fmt.Sprintf("The candidate did not demonstrate the people-process knowledge required for %s. Fundamental HR practices were absent from the answers.", domain)
	},
	categoryFinance: func(domain string) string {
		return fmt.Sprintf("The answers showed insufficient command of financial fundamentals for a %s position.", domain)
	},
	categoryQA: func(domain string) string {
		return fmt.Sprintf("The responses did not reflect a quality-assurance mindset expected for %s. Test methodology was largely missing.", domain)
	},
	categoryGeneric: func(domain string) string {
		return "The candidate's responses did not demonstrate the competencies expected for this role."
	},
}

func categoryOf(domain string) domainCategory {
	switch domain {
	case DomainSoftwareDev, DomainFrontendDev, DomainBackendDev:
		return categorySoftware
	case DomainHR:
		return categoryHR
	case DomainFinance:
		return categoryFinance
	case DomainQATester:
		return categoryQA
	default:
		return categoryGeneric
	}
}

// summarize produces the deterministic, bracket-selected summary sentence for
// a scored interview. totalFound is the number of keywords matched across all
// answers.
func summarize(domain string, score, totalFound int) string {
	switch {
	case score >= excellentBracket:
		return fmt.Sprintf("Exceptional candidate for the %s track: demonstrated deep domain command, matching %d key concepts across the assessment.", domain, totalFound)
	case score >= solidBracket:
		return fmt.Sprintf("Solid performance for the %s role. The candidate covered %d expected concepts and answered with adequate detail.", domain, totalFound)
	case score >= partialBracket:
		return fmt.Sprintf("Partial competency shown for %s. Several core concepts were missing from the responses.", domain)
	default:
		return lowBracketTemplates[categoryOf(domain)](domain)
	}
}
