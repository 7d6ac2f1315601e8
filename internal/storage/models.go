package storage

import (
	"time"

	"elitehire/internal/assessment"
)

// Entry types distinguishing dashboard manual entries from completed
// interview flows.
const (
	EntryManual    = "Manual"
	EntryAutomatic = "Automatic"
)

// ResultRow is one persisted assessment outcome. PartitionKey groups rows by
// domain (or "ManualEntry"/"General"); RowKey is unique per write.
type ResultRow struct {
	RowKey         string                         `json:"rowKey"`
	PartitionKey   string                         `json:"partitionKey"`
	EntryType      string                         `json:"type"`
	FullName       string                         `json:"fullName"`
	Phone          string                         `json:"phone,omitempty"`
	IDNo           string                         `json:"idNo,omitempty"`
	Domain         string                         `json:"domain,omitempty"`
	Score          int                            `json:"score"`
	Recommendation string                         `json:"recommendation,omitempty"`
	Summary        string                         `json:"summary,omitempty"`
	Responses      []assessment.InterviewResponse `json:"responses,omitempty"`
	CreatedAt      time.Time                      `json:"timestamp"`
}

// Stats aggregates the dashboard numbers over all stored results.
type Stats struct {
	Total        int            `json:"total"`
	AverageScore float64        `json:"averageScore"`
	Recommended  int            `json:"recommended"`
	ByDomain     map[string]int `json:"byDomain"`
}
