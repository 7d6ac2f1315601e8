package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"elitehire/internal/assessment"
)

// State identifies where an interview session is in its lifecycle.
type State int

const (
	StateAwaitingQuestions State = iota
	StateAnswering
	StateSubmitting
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateAwaitingQuestions:
		return "awaiting_questions"
	case StateAnswering:
		return "answering"
	case StateSubmitting:
		return "submitting"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// minAnswerLen is the trimmed character count an answer needs before the
// candidate can advance past it.
const minAnswerLen = 6

var (
	ErrNotAnswering   = errors.New("session is not accepting answers")
	ErrAnswerTooShort = errors.New("answer is too short to advance")
	ErrAtFirstStep    = errors.New("already at the first step")
	ErrNoQuestions    = errors.New("question set is empty")
	ErrNotComplete    = errors.New("session is not complete")
	ErrAlreadyDone    = errors.New("session already complete")
)

// QuestionSource resolves the ordered question set for a domain.
type QuestionSource interface {
	Questions(domain string) []assessment.QuestionSpec
}

// Evaluator scores a completed response sequence. The deterministic engine
// never fails, but the interface allows a failing scorer so the recoverable
// error path stays testable.
type Evaluator interface {
	Evaluate(domain string, responses []assessment.InterviewResponse) (assessment.Result, error)
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func(domain string, responses []assessment.InterviewResponse) (assessment.Result, error)

func (f EvaluatorFunc) Evaluate(domain string, responses []assessment.InterviewResponse) (assessment.Result, error) {
	return f(domain, responses)
}

// EngineEvaluator wraps the assessment engine as an Evaluator.
func EngineEvaluator(engine *assessment.Engine) Evaluator {
	return EvaluatorFunc(func(domain string, responses []assessment.InterviewResponse) (assessment.Result, error) {
		return engine.Evaluate(domain, responses), nil
	})
}

// Pipeline drives one interview session: question load, step-by-step
// answering with back navigation, then a single scoring submission.
//
// A pipeline is single-writer. Callers must serialize access; it performs no
// internal locking.
type Pipeline struct {
	profile assessment.Profile
	source  QuestionSource
	eval    Evaluator
	delay   Delayer
	now     func() time.Time

	questions []assessment.QuestionSpec
	answers   []string
	started   []time.Time
	durations []time.Duration
	enteredAt time.Time

	state  State
	step   int
	err    error
	result *assessment.Result
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithDelayer replaces the artificial-latency dependency. Tests pass
// NoDelay() to run synchronously.
func WithDelayer(d Delayer) Option {
	return func(p *Pipeline) { p.delay = d }
}

// WithClock replaces the time source used for per-step timing.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// New returns a pipeline in StateAwaitingQuestions for the given candidate.
func New(profile assessment.Profile, source QuestionSource, eval Evaluator, opts ...Option) *Pipeline {
	p := &Pipeline{
		profile: profile,
		source:  source,
		eval:    eval,
		delay:   NoDelay(),
		now:     time.Now,
		state:   StateAwaitingQuestions,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start resolves the question set and moves to the first answering step. The
// configured Delayer runs first; it models the question-fetch pacing of the
// original flow and is a no-op by default.
func (p *Pipeline) Start(ctx context.Context) error {
	if p.state != StateAwaitingQuestions {
		return ErrAlreadyDone
	}

	if err := p.delay.Wait(ctx); err != nil {
		return err
	}

	questions := p.source.Questions(p.profile.Domain)
	if len(questions) == 0 {
		p.err = ErrNoQuestions
		return ErrNoQuestions
	}

	p.questions = questions
	p.answers = make([]string, len(questions))
	p.started = make([]time.Time, len(questions))
	p.durations = make([]time.Duration, len(questions))

	p.state = StateAnswering
	p.enterStep(0)
	return nil
}

// Answer stores free text for the current step, overwriting any previous
// value for that index.
func (p *Pipeline) Answer(text string) error {
	if p.state != StateAnswering {
		return ErrNotAnswering
	}
	p.answers[p.step] = text
	return nil
}

// Advance moves to the next step when the current answer passes the minimum
// length gate. On the final step it submits the interview instead.
func (p *Pipeline) Advance(ctx context.Context) error {
	if p.state == StateSubmitting {
		// Recoverable error path: retry the submission.
		return p.submit(ctx)
	}
	if p.state != StateAnswering {
		return ErrNotAnswering
	}
	if len(strings.TrimSpace(p.answers[p.step])) < minAnswerLen {
		return ErrAnswerTooShort
	}

	if p.step == len(p.questions)-1 {
		p.leaveStep()
		p.state = StateSubmitting
		return p.submit(ctx)
	}

	p.leaveStep()
	p.enterStep(p.step + 1)
	return nil
}

// Back returns to the previous step with no validation. The current answer is
// retained and can be edited after revisiting.
func (p *Pipeline) Back() error {
	if p.state != StateAnswering {
		return ErrNotAnswering
	}
	if p.step == 0 {
		return ErrAtFirstStep
	}
	p.leaveStep()
	p.enterStep(p.step - 1)
	return nil
}

// submit assembles the ordered responses and invokes the evaluator. On
// failure the pipeline stays in StateSubmitting so the caller can retry.
func (p *Pipeline) submit(ctx context.Context) error {
	if err := p.delay.Wait(ctx); err != nil {
		return err
	}

	result, err := p.eval.Evaluate(p.profile.Domain, p.Responses())
	if err != nil {
		p.err = err
		return err
	}

	p.err = nil
	p.result = &result
	p.state = StateComplete
	return nil
}

// DismissError clears a surfaced error without changing state.
func (p *Pipeline) DismissError() {
	p.err = nil
}

// Responses returns the ordered response sequence with per-step timing. The
// scoring engine always observes the complete, order-stable sequence.
func (p *Pipeline) Responses() []assessment.InterviewResponse {
	responses := make([]assessment.InterviewResponse, len(p.questions))
	for i, q := range p.questions {
		resp := assessment.InterviewResponse{
			Question: q.Text,
			Answer:   p.answers[i],
			Duration: int(p.durations[i] / time.Second),
		}
		if !p.started[i].IsZero() {
			resp.StartTime = p.started[i].UTC().Format(time.RFC3339)
		}
		responses[i] = resp
	}
	return responses
}

// Record builds the persistable CandidateRecord for a completed session.
func (p *Pipeline) Record() (assessment.CandidateRecord, error) {
	if p.state != StateComplete || p.result == nil {
		return assessment.CandidateRecord{}, ErrNotComplete
	}
	return assessment.CandidateRecord{
		UserData:       p.profile,
		Responses:      p.Responses(),
		Score:          p.result.Score,
		Recommendation: p.result.Recommendation,
		Summary:        p.result.Summary,
		Timestamp:      p.now().UTC().Format(time.RFC3339),
	}, nil
}

// State reports the current lifecycle state.
func (p *Pipeline) State() State { return p.state }

// Step reports the current answering index.
func (p *Pipeline) Step() int { return p.step }

// Steps reports the total number of questions.
func (p *Pipeline) Steps() int { return len(p.questions) }

// Question returns the text of the current step's question.
func (p *Pipeline) Question() string {
	if p.step < len(p.questions) {
		return p.questions[p.step].Text
	}
	return ""
}

// CurrentAnswer returns the stored answer for the current step.
func (p *Pipeline) CurrentAnswer() string {
	if p.step < len(p.answers) {
		return p.answers[p.step]
	}
	return ""
}

// Result returns the assessment outcome once the session is complete.
func (p *Pipeline) Result() *assessment.Result { return p.result }

// Err returns the currently surfaced recoverable error, if any.
func (p *Pipeline) Err() error { return p.err }

// Profile returns the candidate profile the session was created with.
func (p *Pipeline) Profile() assessment.Profile { return p.profile }

func (p *Pipeline) enterStep(i int) {
	p.step = i
	p.enteredAt = p.now()
	if p.started[i].IsZero() {
		p.started[i] = p.enteredAt
	}
}

func (p *Pipeline) leaveStep() {
	p.durations[p.step] += p.now().Sub(p.enteredAt)
}
