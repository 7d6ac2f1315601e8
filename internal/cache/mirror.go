package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"elitehire/internal/assessment"
)

// resultsKey is the fixed key the result list lives under, as a single JSON
// blob.
const resultsKey = "elitehire:results"

// ResultsMirror keeps the accumulating candidate-record list in memory and
// mirrors it to a Cache: loaded once at startup, appended to, and rewritten
// wholesale on every new result. The in-memory list is authoritative for the
// running session; cache write failures are soft.
type ResultsMirror struct {
	mu      sync.Mutex
	cache   Cache
	records []assessment.CandidateRecord
}

// NewResultsMirror wraps the given cache. A nil cache yields a purely
// in-memory mirror.
func NewResultsMirror(c Cache) *ResultsMirror {
	return &ResultsMirror{cache: c}
}

// Load reads the persisted blob once. A missing key is not an error.
func (m *ResultsMirror) Load(ctx context.Context) error {
	if m.cache == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	blob, err := m.cache.Get(ctx, resultsKey)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading results blob: %w", err)
	}

	var records []assessment.CandidateRecord
	if err := json.Unmarshal(blob, &records); err != nil {
		return fmt.Errorf("decoding results blob: %w", err)
	}
	m.records = records
	return nil
}

// Append adds a record and rewrites the whole blob. The append always
// succeeds locally; only the cache write can fail.
func (m *ResultsMirror) Append(ctx context.Context, record assessment.CandidateRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = append(m.records, record)

	if m.cache == nil {
		return nil
	}

	blob, err := json.Marshal(m.records)
	if err != nil {
		return fmt.Errorf("encoding results blob: %w", err)
	}
	if err := m.cache.Set(ctx, resultsKey, blob); err != nil {
		return fmt.Errorf("writing results blob: %w", err)
	}
	return nil
}

// Records returns a copy of the accumulated list.
func (m *ResultsMirror) Records() []assessment.CandidateRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]assessment.CandidateRecord, len(m.records))
	copy(out, m.records)
	return out
}

// Len reports how many records the mirror holds.
func (m *ResultsMirror) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}
