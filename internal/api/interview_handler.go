package api

import (
	"encoding/json"
	"net/http"

	"elitehire/internal/assessment"
)

// fallbackQuestion is served when the history already covers every bank
// question for the domain.
const fallbackQuestion = "Could you tell me more about your experience in this field?"

type interviewRequest struct {
	Action   string                         `json:"action"`
	UserData assessment.Profile             `json:"userData"`
	History  []assessment.InterviewResponse `json:"history"`
}

// InterviewHandler serves the deterministic interview contract
// @Summary Generate a question or evaluate an interview
// @Description action "generateQuestion" returns the next bank question for the candidate's domain; action "evaluate" scores the supplied history
// @Tags interview
// @Accept json
// @Produce json
// @Param request body interviewRequest true "Interview action"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /interview [post]
func (a *API) InterviewHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req interviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	switch req.Action {
	case "generateQuestion":
		questions := a.bank.Questions(req.UserData.Domain)
		next := len(req.History)
		text := fallbackQuestion
		if next < len(questions) {
			text = questions[next].Text
		}
		writeJSON(w, http.StatusOK, map[string]string{"text": text})

	case "evaluate":
		result := a.engine.Evaluate(req.UserData.Domain, req.History)
		writeJSON(w, http.StatusOK, result)

	default:
		writeError(w, http.StatusBadRequest, "unknown action")
	}
}
