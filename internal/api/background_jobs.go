package api

import (
	"context"
	"fmt"
	"time"

	"elitehire/internal/assessment"
	"elitehire/internal/storage"

	"go.uber.org/zap"
)

// persistJob carries one completed interview record to durable storage.
type persistJob struct {
	Record    assessment.CandidateRecord
	Timestamp time.Time
}

// persistTimeout bounds one background write attempt.
const persistTimeout = 10 * time.Second

// sweepInterval is how often abandoned sessions are reaped.
const sweepInterval = 15 * time.Minute

// StartBackgroundWorkers initializes background job workers
func (a *API) StartBackgroundWorkers() {
	go a.persistWorker()
	go a.sessionSweeper()

	a.log.Debug("background workers started")
}

// sessionSweeper reaps sessions that sat idle past their TTL.
func (a *API) sessionSweeper() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		if removed := a.sessions.Sweep(); removed > 0 {
			a.log.Info("swept idle sessions", zap.Int("removed", removed))
		}
	}
}

// persistWorker drains the persistence queue. Failures are soft: the local
// results mirror already holds the record and stays authoritative for the
// session.
func (a *API) persistWorker() {
	for job := range a.persistQueue {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)

		if err := a.mirror.Append(ctx, job.Record); err != nil {
			a.log.Warn("results mirror write failed",
				zap.String("id_no", job.Record.UserData.IDNo),
				zap.Error(err),
			)
		}

		if a.db != nil {
			row := rowFromRecord(&job.Record)
			if err := a.db.SaveResult(ctx, row); err != nil {
				a.log.Warn("durable write failed, local cache remains authoritative",
					zap.String("row_key", row.RowKey),
					zap.Error(err),
				)
			} else {
				a.log.Info("record persisted",
					zap.String("row_key", row.RowKey),
					zap.Int("score", row.Score),
					zap.Duration("queued_for", time.Since(job.Timestamp)),
				)
			}
		}

		cancel()
	}
}

// queuePersistJob enqueues a record without blocking the session transition.
func (a *API) queuePersistJob(record assessment.CandidateRecord) {
	job := persistJob{Record: record, Timestamp: time.Now()}

	select {
	case a.persistQueue <- job:
	default:
		a.log.Warn("persistence queue full, dropping record",
			zap.String("id_no", record.UserData.IDNo),
		)
	}
}

// rowFromRecord maps a candidate record onto its storage row.
func rowFromRecord(record *assessment.CandidateRecord) *storage.ResultRow {
	partition := record.UserData.Domain
	if partition == "" {
		partition = "General"
	}

	createdAt := time.Now().UTC()
	if parsed, err := time.Parse(time.RFC3339, record.Timestamp); err == nil {
		createdAt = parsed
	}

	return &storage.ResultRow{
		RowKey:         fmt.Sprintf("%s_%d", record.UserData.IDNo, time.Now().UnixMilli()),
		PartitionKey:   partition,
		EntryType:      storage.EntryAutomatic,
		FullName:       record.UserData.FullName,
		Phone:          record.UserData.Phone,
		IDNo:           record.UserData.IDNo,
		Domain:         record.UserData.Domain,
		Score:          record.Score,
		Recommendation: record.Recommendation,
		Summary:        record.Summary,
		Responses:      record.Responses,
		CreatedAt:      createdAt,
	}
}
