package assessment

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestBankKnownDomains(t *testing.T) {
	bank := NewBank()

	domains := []string{
		DomainHR,
		DomainFinance,
		DomainCompanySecretary,
		DomainSoftwareDev,
		DomainQATester,
		DomainManagement,
		DomainBusinessAnalyst,
		DomainFrontendDev,
		DomainBackendDev,
	}

	for _, domain := range domains {
		qs := bank.Questions(domain)
		if len(qs) != 5 {
			t.Errorf("%s: got %d questions, want 5", domain, len(qs))
		}
		for i, q := range qs {
			if strings.TrimSpace(q.Text) == "" {
				t.Errorf("%s question %d has empty text", domain, i)
			}
			if len(q.Keywords) != 5 {
				t.Errorf("%s question %d has %d keywords, want 5", domain, i, len(q.Keywords))
			}
			for _, kw := range q.Keywords {
				if kw != strings.ToLower(kw) {
					t.Errorf("%s question %d keyword %q is not lowercase", domain, i, kw)
				}
			}
		}
	}
}

func TestBankOrderStable(t *testing.T) {
	bank := NewBank()

	first := bank.Questions(DomainBackendDev)
	second := bank.Questions(DomainBackendDev)

	if !reflect.DeepEqual(first, second) {
		t.Error("question order changed between lookups")
	}
}

func TestBankUnknownDomainFallsBack(t *testing.T) {
	bank := NewBank()

	for _, domain := range []string{"Astrology", "", "software developer", "HR services"} {
		qs := bank.Questions(domain)
		if !reflect.DeepEqual(qs, bank.Default()) {
			t.Errorf("domain %q did not fall back to the default set", domain)
		}
	}

	if len(bank.Default()) != 5 {
		t.Errorf("default set has %d questions, want 5", len(bank.Default()))
	}
}

func TestBankLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.yaml")
	content := `domains:
  - domain: "Data Scientist"
    questions:
      - text: "How do you validate a model before shipping it?"
        keywords: ["VALIDATION", " holdout ", "metric"]
      - text: "Describe a data pipeline you built."
        keywords: ["pipeline", "etl"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	bank := NewBank()
	if err := bank.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	qs := bank.Questions("Data Scientist")
	if len(qs) != 2 {
		t.Fatalf("got %d questions, want 2", len(qs))
	}
	if want := []string{"validation", "holdout", "metric"}; !reflect.DeepEqual(qs[0].Keywords, want) {
		t.Errorf("keywords = %v, want normalized %v", qs[0].Keywords, want)
	}

	// Built-in domains stay intact.
	if len(bank.Questions(DomainSoftwareDev)) != 5 {
		t.Error("built-in domain lost after file load")
	}
}

func TestBankLoadFileValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"missing keywords", "domains:\n  - domain: X\n    questions:\n      - text: q1\n        keywords: []\n"},
		{"empty text", "domains:\n  - domain: X\n    questions:\n      - text: \"\"\n        keywords: [a]\n"},
		{"empty domain", "domains:\n  - domain: \"\"\n    questions:\n      - text: q1\n        keywords: [a]\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bank.yaml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if err := NewBank().LoadFile(path); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
