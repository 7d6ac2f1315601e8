package assessment

// QuestionSpec is one interview question together with the lowercase keywords
// whose presence in an answer counts as evidence of domain competency.
type QuestionSpec struct {
	Text     string   `json:"text" yaml:"text"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// InterviewResponse is a single answered question. StartTime and Duration are
// optional timing metadata captured by the interview session.
type InterviewResponse struct {
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	StartTime string `json:"startTime,omitempty"`
	Duration  int    `json:"duration,omitempty"` // seconds
}

// Profile is the candidate registration data. It is collected before the
// interview starts and not mutated afterwards.
type Profile struct {
	FullName        string `json:"fullName"`
	Phone           string `json:"phone"`
	IDNo            string `json:"idNo"`
	Domain          string `json:"domain,omitempty"`
	DomainColor     string `json:"domainColor,omitempty"`
	ExperienceLevel string `json:"experienceLevel,omitempty"`
	EducationField  string `json:"educationField,omitempty"`
	GraduationYear  string `json:"graduationYear,omitempty"`
}

// Recommendation values produced by the scoring engine.
const (
	Recommended    = "Recommended"
	NotRecommended = "Not Recommended"
)

// Result is the outcome of scoring one completed interview.
type Result struct {
	Score          int    `json:"score"`
	Recommendation string `json:"recommendation"`
	Summary        string `json:"summary"`
}

// CandidateRecord is the full persisted unit: profile, responses and result,
// stamped with an ISO timestamp at creation.
type CandidateRecord struct {
	UserData       Profile             `json:"userData"`
	Responses      []InterviewResponse `json:"responses"`
	Score          int                 `json:"score"`
	Recommendation string              `json:"recommendation"`
	Summary        string              `json:"summary"`
	Timestamp      string              `json:"timestamp"`
}
