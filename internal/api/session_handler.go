package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"elitehire/internal/assessment"
	"elitehire/internal/session"

	"go.uber.org/zap"
)

type createSessionRequest struct {
	UserData assessment.Profile `json:"userData"`
}

// sessionSnapshot is the stepper state returned after every session call.
type sessionSnapshot struct {
	SessionID string             `json:"sessionId"`
	State     string             `json:"state"`
	Step      int                `json:"step"`
	Total     int                `json:"total"`
	Question  string             `json:"question,omitempty"`
	Answer    string             `json:"answer,omitempty"`
	Error     string             `json:"error,omitempty"`
	Result    *assessment.Result `json:"result,omitempty"`
}

func (a *API) snapshot(id string, p *session.Pipeline) sessionSnapshot {
	snap := sessionSnapshot{
		SessionID: id,
		State:     p.State().String(),
		Step:      p.Step(),
		Total:     p.Steps(),
		Question:  p.Question(),
		Answer:    p.CurrentAnswer(),
		Result:    p.Result(),
	}
	if err := p.Err(); err != nil {
		snap.Error = err.Error()
	}
	return snap
}

// CreateSessionHandler starts a server-driven interview session
// @Summary Start an interview session
// @Description Validates the registration data, resolves the domain question set and opens the stepper at the first question
// @Tags session
// @Accept json
// @Produce json
// @Param request body createSessionRequest true "Candidate registration"
// @Success 200 {object} sessionSnapshot
// @Failure 400 {object} map[string]string
// @Router /session [post]
func (a *API) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := validateProfile(&req.UserData); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pipeline := session.New(req.UserData, a.bank, session.EngineEvaluator(a.engine),
		session.WithDelayer(a.delay))

	if err := pipeline.Start(r.Context()); err != nil {
		a.log.Error("starting session", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load question set")
		return
	}

	id := a.sessions.Create(pipeline)
	a.log.Info("session created",
		zap.String("session_id", id),
		zap.String("domain", req.UserData.Domain),
		zap.Int("questions", pipeline.Steps()),
	)

	writeJSON(w, http.StatusOK, a.snapshot(id, pipeline))
}

// validateProfile applies the registration gates of the candidate portal.
func validateProfile(p *assessment.Profile) error {
	if len(strings.TrimSpace(p.FullName)) <= 3 {
		return errors.New("fullName must be longer than 3 characters")
	}
	if len(p.Phone) < 10 {
		return errors.New("phone must be at least 10 characters")
	}
	if len(p.IDNo) < 4 {
		return errors.New("idNo must be at least 4 characters")
	}
	return nil
}

type answerRequest struct {
	Answer string `json:"answer"`
}

// SessionAnswerHandler stores the current step's answer
// @Summary Record an answer
// @Description Stores free text for the current step, overwriting any earlier value
// @Tags session
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body answerRequest true "Answer text"
// @Success 200 {object} sessionSnapshot
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /session/{id}/answer [post]
func (a *API) SessionAnswerHandler(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	a.withSession(w, r, func(p *session.Pipeline) error {
		return p.Answer(req.Answer)
	})
}

// SessionAdvanceHandler moves forward, submitting on the final step
// @Summary Advance the stepper
// @Description Moves to the next question when the minimum answer length is met; on the final step it scores the interview and queues the record for persistence
// @Tags session
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} sessionSnapshot
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /session/{id}/next [post]
func (a *API) SessionAdvanceHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var snap sessionSnapshot
	err := a.sessions.With(id, func(p *session.Pipeline) error {
		wasComplete := p.State() == session.StateComplete
		if err := p.Advance(r.Context()); err != nil {
			return err
		}

		// Completion persists fire-and-forget: a failed write never blocks
		// or reverses this transition.
		if !wasComplete && p.State() == session.StateComplete {
			record, err := p.Record()
			if err == nil {
				a.queuePersistJob(record)
			}
		}

		snap = a.snapshot(id, p)
		return nil
	})
	if err != nil {
		a.respondSessionError(w, id, err)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

// SessionBackHandler returns to the previous step
// @Summary Step back
// @Description Moves to the previous question with no validation; answers are retained
// @Tags session
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} sessionSnapshot
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /session/{id}/back [post]
func (a *API) SessionBackHandler(w http.ResponseWriter, r *http.Request) {
	a.withSession(w, r, func(p *session.Pipeline) error {
		return p.Back()
	})
}

// withSession runs op against the addressed session and writes the resulting
// snapshot, mapping pipeline errors to status codes.
func (a *API) withSession(w http.ResponseWriter, r *http.Request, op func(*session.Pipeline) error) {
	id := r.PathValue("id")

	var snap sessionSnapshot
	err := a.sessions.With(id, func(p *session.Pipeline) error {
		if err := op(p); err != nil {
			return err
		}
		snap = a.snapshot(id, p)
		return nil
	})
	if err != nil {
		a.respondSessionError(w, id, err)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

func (a *API) respondSessionError(w http.ResponseWriter, id string, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, session.ErrAnswerTooShort),
		errors.Is(err, session.ErrAtFirstStep),
		errors.Is(err, session.ErrNotAnswering),
		errors.Is(err, session.ErrAlreadyDone):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		a.log.Error("session operation failed", zap.String("session_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
