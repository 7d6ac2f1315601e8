package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"elitehire/internal/assessment"
	"elitehire/internal/cache"
)

func newTestServer(t *testing.T) (*httptest.Server, *cache.ResultsMirror) {
	t.Helper()

	mirror := cache.NewResultsMirror(nil)
	a := NewAPI(Options{Mirror: mirror})
	srv := httptest.NewServer(NewRouter(a))
	t.Cleanup(srv.Close)
	return srv, mirror
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatal(err)
	}
}

func TestSaveResultManualRejectsEmptyName(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/saveResult", map[string]interface{}{
		"name":  "",
		"score": 50,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSaveResultScoreValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, body := range []map[string]interface{}{
		{"name": "Jo Smith"},                 // missing score
		{"name": "Jo Smith", "score": -1},    // below range
		{"name": "Jo Smith", "score": 101},   // above range
		{"name": "Jo Smith", "score": "bad"}, // not numeric
	} {
		resp := postJSON(t, srv.URL+"/api/saveResult", body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("body %v: status = %d, want 400", body, resp.StatusCode)
		}
	}
}

func TestSaveResultManualMockSuccess(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/saveResult", map[string]interface{}{
		"name":  "Jo Smith",
		"score": 50,
	})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var out struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeBody(t, resp, &out)
	if !out.Success {
		t.Error("success = false, want mock success without a storage backend")
	}
	if !strings.Contains(out.Message, "Mock success") {
		t.Errorf("message = %q, want mock-success marker", out.Message)
	}
}

func TestSaveResultFullForm(t *testing.T) {
	srv, mirror := newTestServer(t)

	record := map[string]interface{}{
		"userData": map[string]string{
			"fullName": "Ada Lovelace",
			"idNo":     "ID-42",
			"phone":    "5550001111",
			"domain":   assessment.DomainSoftwareDev,
		},
		"responses":      []map[string]string{{"question": "q1", "answer": "a1"}},
		"score":          76,
		"recommendation": assessment.Recommended,
		"summary":        "Solid performance.",
		"timestamp":      "2026-03-01T10:00:00Z",
	}

	resp := postJSON(t, srv.URL+"/api/saveResult", record)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()

	if mirror.Len() != 1 {
		t.Fatalf("mirror holds %d records, want 1", mirror.Len())
	}
	got := mirror.Records()[0]
	if got.UserData.FullName != "Ada Lovelace" || got.Score != 76 {
		t.Errorf("mirrored record = %+v", got)
	}

	// Missing idNo fails validation.
	bad := map[string]interface{}{
		"userData": map[string]string{"fullName": "Ada Lovelace"},
		"score":    76,
	}
	resp = postJSON(t, srv.URL+"/api/saveResult", bad)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for missing idNo", resp.StatusCode)
	}
}

func TestSaveResultMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/saveResult")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestInterviewGenerateQuestion(t *testing.T) {
	srv, _ := newTestServer(t)
	bank := assessment.NewBank()

	// Empty history yields the first bank question for the domain.
	resp := postJSON(t, srv.URL+"/api/interview", map[string]interface{}{
		"action":   "generateQuestion",
		"userData": map[string]string{"fullName": "Ada Lovelace", "domain": assessment.DomainSoftwareDev},
	})
	var out struct {
		Text string `json:"text"`
	}
	decodeBody(t, resp, &out)
	if want := bank.Questions(assessment.DomainSoftwareDev)[0].Text; out.Text != want {
		t.Errorf("text = %q, want %q", out.Text, want)
	}

	// Exhausted history yields the fallback question.
	history := make([]map[string]string, 5)
	for i := range history {
		history[i] = map[string]string{"question": "q", "answer": "a"}
	}
	resp = postJSON(t, srv.URL+"/api/interview", map[string]interface{}{
		"action":   "generateQuestion",
		"userData": map[string]string{"domain": assessment.DomainSoftwareDev},
		"history":  history,
	})
	decodeBody(t, resp, &out)
	if out.Text != fallbackQuestion {
		t.Errorf("text = %q, want fallback", out.Text)
	}
}

func TestInterviewEvaluate(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/interview", map[string]interface{}{
		"action":   "evaluate",
		"userData": map[string]string{"domain": "Astrology"},
		"history":  []map[string]string{},
	})

	var result assessment.Result
	decodeBody(t, resp, &result)
	if result.Score != 30 {
		t.Errorf("score = %d, want 30 for empty history", result.Score)
	}
	if result.Recommendation != assessment.NotRecommended {
		t.Errorf("recommendation = %q", result.Recommendation)
	}
}

func TestInterviewUnknownAction(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/interview", map[string]interface{}{"action": "summon"})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSessionFlow(t *testing.T) {
	srv, mirror := newTestServer(t)

	var snap struct {
		SessionID string             `json:"sessionId"`
		State     string             `json:"state"`
		Step      int                `json:"step"`
		Total     int                `json:"total"`
		Question  string             `json:"question"`
		Result    *assessment.Result `json:"result"`
	}

	resp := postJSON(t, srv.URL+"/api/session", map[string]interface{}{
		"userData": map[string]string{
			"fullName": "Ada Lovelace",
			"phone":    "5550001111",
			"idNo":     "ID-42",
			"domain":   assessment.DomainQATester,
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create: status = %d, want 200", resp.StatusCode)
	}
	decodeBody(t, resp, &snap)

	if snap.State != "answering" || snap.Total != 5 || snap.Question == "" {
		t.Fatalf("unexpected initial snapshot: %+v", snap)
	}
	base := srv.URL + "/api/session/" + snap.SessionID

	// Advancing past the gate fails with a short answer.
	resp = postJSON(t, base+"/answer", map[string]string{"answer": "nope"})
	resp.Body.Close()
	resp = postJSON(t, base+"/next", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("short answer advance: status = %d, want 400", resp.StatusCode)
	}

	// Answer every question; the final advance goes through /submit.
	for i := 0; i < 5; i++ {
		resp = postJSON(t, base+"/answer", map[string]string{
			"answer": fmt.Sprintf("a reasonably detailed answer for question %d", i+1),
		})
		resp.Body.Close()

		endpoint := base + "/next"
		if i == 4 {
			endpoint = base + "/submit"
		}
		resp = postJSON(t, endpoint, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("step %d: status = %d, want 200", i, resp.StatusCode)
		}
		decodeBody(t, resp, &snap)
	}

	if snap.State != "complete" {
		t.Fatalf("state = %q, want complete", snap.State)
	}
	if snap.Result == nil || snap.Result.Score < 0 || snap.Result.Score > 100 {
		t.Fatalf("result = %+v", snap.Result)
	}

	// Persistence is fire-and-forget through the background worker.
	deadline := time.Now().Add(2 * time.Second)
	for mirror.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if mirror.Len() != 1 {
		t.Fatalf("mirror holds %d records, want 1 after completion", mirror.Len())
	}
}

func TestSessionBackNavigation(t *testing.T) {
	srv, _ := newTestServer(t)

	var snap struct {
		SessionID string `json:"sessionId"`
		Step      int    `json:"step"`
		Answer    string `json:"answer"`
	}

	resp := postJSON(t, srv.URL+"/api/session", map[string]interface{}{
		"userData": map[string]string{
			"fullName": "Ada Lovelace",
			"phone":    "5550001111",
			"idNo":     "ID-42",
		},
	})
	decodeBody(t, resp, &snap)
	base := srv.URL + "/api/session/" + snap.SessionID

	resp = postJSON(t, base+"/answer", map[string]string{"answer": "first answer text"})
	resp.Body.Close()
	resp = postJSON(t, base+"/next", nil)
	resp.Body.Close()

	resp = postJSON(t, base+"/back", nil)
	decodeBody(t, resp, &snap)
	if snap.Step != 0 {
		t.Errorf("step after back = %d, want 0", snap.Step)
	}
	if snap.Answer != "first answer text" {
		t.Errorf("answer not retained after back: %q", snap.Answer)
	}

	// Back at the first step is rejected.
	resp = postJSON(t, base+"/back", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("back at step 0: status = %d, want 400", resp.StatusCode)
	}
}

func TestSessionValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, user := range []map[string]string{
		{"fullName": "Al", "phone": "5550001111", "idNo": "ID-42"}, // name too short
		{"fullName": "Ada Lovelace", "phone": "555", "idNo": "ID-42"},
		{"fullName": "Ada Lovelace", "phone": "5550001111", "idNo": "ID"},
	} {
		resp := postJSON(t, srv.URL+"/api/session", map[string]interface{}{"userData": user})
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("user %v: status = %d, want 400", user, resp.StatusCode)
		}
	}

	resp := postJSON(t, srv.URL+"/api/session/nope/next", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown session: status = %d, want 404", resp.StatusCode)
	}
}

func TestListResultsAndStatsFromMirror(t *testing.T) {
	srv, mirror := newTestServer(t)

	seed := []assessment.CandidateRecord{
		{
			UserData:       assessment.Profile{FullName: "Ada Lovelace", IDNo: "ID-42", Domain: assessment.DomainSoftwareDev},
			Score:          76,
			Recommendation: assessment.Recommended,
		},
		{
			UserData:       assessment.Profile{FullName: "Grace Hopper", IDNo: "ID-43", Domain: assessment.DomainQATester},
			Score:          40,
			Recommendation: assessment.NotRecommended,
		},
	}
	for _, rec := range seed {
		if err := mirror.Append(t.Context(), rec); err != nil {
			t.Fatal(err)
		}
	}

	resp, err := http.Get(srv.URL + "/api/results?q=ada")
	if err != nil {
		t.Fatal(err)
	}
	var records []assessment.CandidateRecord
	decodeBody(t, resp, &records)
	if len(records) != 1 || records[0].UserData.FullName != "Ada Lovelace" {
		t.Fatalf("filtered results = %+v", records)
	}

	resp, err = http.Get(srv.URL + "/api/stats")
	if err != nil {
		t.Fatal(err)
	}
	var stats struct {
		Total        int            `json:"total"`
		AverageScore float64        `json:"averageScore"`
		Recommended  int            `json:"recommended"`
		ByDomain     map[string]int `json:"byDomain"`
	}
	decodeBody(t, resp, &stats)

	if stats.Total != 2 || stats.Recommended != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AverageScore != 58 {
		t.Errorf("averageScore = %v, want 58", stats.AverageScore)
	}
	if stats.ByDomain[assessment.DomainSoftwareDev] != 1 {
		t.Errorf("byDomain = %v", stats.ByDomain)
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
