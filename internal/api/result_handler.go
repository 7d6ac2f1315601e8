package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"elitehire/internal/assessment"
	"elitehire/internal/storage"

	"go.uber.org/zap"
)

// saveResultRequest accepts both persisted shapes: the manual dashboard entry
// {name, score} and the full interview record with userData.
type saveResultRequest struct {
	Name  string   `json:"name"`
	Score *float64 `json:"score"`

	UserData       *assessment.Profile            `json:"userData"`
	Responses      []assessment.InterviewResponse `json:"responses"`
	Recommendation string                         `json:"recommendation"`
	Summary        string                         `json:"summary"`
	Timestamp      string                         `json:"timestamp"`
}

type saveResultResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// SaveResultHandler persists a candidate assessment
// @Summary Save assessment result
// @Description Persist a manual {name, score} entry or a full candidate record
// @Tags results
// @Accept json
// @Produce json
// @Param result body saveResultRequest true "Assessment result"
// @Success 200 {object} saveResultResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /saveResult [post]
func (a *API) SaveResultHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req saveResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.Score == nil || *req.Score < 0 || *req.Score > 100 {
		writeError(w, http.StatusBadRequest, "score must be a number between 0 and 100")
		return
	}
	score := int(*req.Score)

	row, record, err := buildResultRow(&req, score)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// The accumulating local list stays authoritative for the session even
	// when the durable write fails.
	if record != nil {
		if err := a.mirror.Append(r.Context(), *record); err != nil {
			a.log.Warn("results mirror write failed", zap.Error(err))
		}
	}

	if a.db == nil {
		writeJSON(w, http.StatusOK, saveResultResponse{
			Success: true,
			Message: "Mock success: no storage backend configured.",
		})
		return
	}

	if err := a.db.SaveResult(r.Context(), row); err != nil {
		a.log.Error("saving result", zap.String("row_key", row.RowKey), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to persist result")
		return
	}

	a.log.Info("result persisted",
		zap.String("row_key", row.RowKey),
		zap.String("type", row.EntryType),
		zap.Int("score", row.Score),
	)

	writeJSON(w, http.StatusOK, saveResultResponse{Success: true, Message: "Entry persisted."})
}

// buildResultRow validates the request and maps it onto a storage row.
// The returned record is non-nil only for the full interview shape.
func buildResultRow(req *saveResultRequest, score int) (*storage.ResultRow, *assessment.CandidateRecord, error) {
	now := time.Now().UTC()

	// Manual format takes precedence only when no userData is present.
	if req.UserData == nil {
		if strings.TrimSpace(req.Name) == "" {
			return nil, nil, fmt.Errorf("name is required for manual entries")
		}
		return &storage.ResultRow{
			RowKey:       fmt.Sprintf("manual_%d", now.UnixMilli()),
			PartitionKey: "ManualEntry",
			EntryType:    storage.EntryManual,
			FullName:     req.Name,
			Score:        score,
			CreatedAt:    now,
		}, nil, nil
	}

	user := req.UserData
	if strings.TrimSpace(user.FullName) == "" || strings.TrimSpace(user.IDNo) == "" {
		return nil, nil, fmt.Errorf("userData.fullName and userData.idNo are required")
	}

	partition := user.Domain
	if partition == "" {
		partition = "General"
	}

	timestamp := req.Timestamp
	createdAt := now
	if timestamp == "" {
		timestamp = now.Format(time.RFC3339)
	} else if parsed, err := time.Parse(time.RFC3339, timestamp); err == nil {
		createdAt = parsed
	}

	row := &storage.ResultRow{
		RowKey:         fmt.Sprintf("%s_%d", user.IDNo, now.UnixMilli()),
		PartitionKey:   partition,
		EntryType:      storage.EntryAutomatic,
		FullName:       user.FullName,
		Phone:          user.Phone,
		IDNo:           user.IDNo,
		Domain:         user.Domain,
		Score:          score,
		Recommendation: req.Recommendation,
		Summary:        req.Summary,
		Responses:      req.Responses,
		CreatedAt:      createdAt,
	}

	record := &assessment.CandidateRecord{
		UserData:       *user,
		Responses:      req.Responses,
		Score:          score,
		Recommendation: req.Recommendation,
		Summary:        req.Summary,
		Timestamp:      timestamp,
	}

	return row, record, nil
}

// ListResultsHandler returns stored results for the HR dashboard
// @Summary List assessment results
// @Description Search stored results by candidate name, ID number or domain
// @Tags results
// @Produce json
// @Param q query string false "Search term"
// @Success 200 {array} storage.ResultRow
// @Failure 500 {object} map[string]string
// @Router /results [get]
func (a *API) ListResultsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	term := r.URL.Query().Get("q")

	if a.db == nil {
		writeJSON(w, http.StatusOK, filterRecords(a.mirror.Records(), term))
		return
	}

	rows, err := a.db.SearchResults(r.Context(), term)
	if err != nil {
		a.log.Error("searching results", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "search error")
		return
	}
	if rows == nil {
		rows = []*storage.ResultRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

// filterRecords applies the dashboard search over the in-memory mirror when
// no database is configured.
func filterRecords(records []assessment.CandidateRecord, term string) []assessment.CandidateRecord {
	if term == "" {
		return records
	}
	term = strings.ToLower(term)
	out := []assessment.CandidateRecord{}
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.UserData.FullName), term) ||
			strings.Contains(strings.ToLower(rec.UserData.IDNo), term) ||
			strings.Contains(strings.ToLower(rec.UserData.Domain), term) {
			out = append(out, rec)
		}
	}
	return out
}

// StatsHandler returns dashboard aggregates
// @Summary Assessment statistics
// @Description Total candidates, average score, recommended count and per-domain breakdown
// @Tags results
// @Produce json
// @Success 200 {object} storage.Stats
// @Failure 500 {object} map[string]string
// @Router /stats [get]
func (a *API) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if a.db == nil {
		writeJSON(w, http.StatusOK, mirrorStats(a.mirror.Records()))
		return
	}

	stats, err := a.db.Stats(r.Context())
	if err != nil {
		a.log.Error("computing stats", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "stats error")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func mirrorStats(records []assessment.CandidateRecord) *storage.Stats {
	stats := &storage.Stats{ByDomain: make(map[string]int)}
	sum := 0
	for _, rec := range records {
		stats.Total++
		sum += rec.Score
		if rec.Recommendation == assessment.Recommended {
			stats.Recommended++
		}
		domain := rec.UserData.Domain
		if domain == "" {
			domain = "General"
		}
		stats.ByDomain[domain]++
	}
	if stats.Total > 0 {
		stats.AverageScore = float64(sum) / float64(stats.Total)
	}
	return stats
}
