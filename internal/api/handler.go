package api

import (
	"encoding/json"
	"net/http"

	"elitehire/internal/assessment"
	"elitehire/internal/cache"
	"elitehire/internal/session"
	"elitehire/internal/storage"

	"go.uber.org/zap"
)

type API struct {
	db       *storage.DB // nil means no storage backend: saves mock-succeed
	bank     *assessment.Bank
	engine   *assessment.Engine
	sessions *session.Store
	mirror   *cache.ResultsMirror
	delay    session.Delayer
	log      *zap.Logger

	persistQueue chan persistJob // background queue for fire-and-forget persistence
}

// Options carries the collaborators the API needs. DB and the mirror's cache
// backend are optional.
type Options struct {
	DB     *storage.DB
	Bank   *assessment.Bank
	Mirror *cache.ResultsMirror
	Delay  session.Delayer
	Logger *zap.Logger
}

func NewAPI(opts Options) *API {
	bank := opts.Bank
	if bank == nil {
		bank = assessment.NewBank()
	}

	delay := opts.Delay
	if delay == nil {
		delay = session.NoDelay()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	mirror := opts.Mirror
	if mirror == nil {
		mirror = cache.NewResultsMirror(nil)
	}

	a := &API{
		db:           opts.DB,
		bank:         bank,
		engine:       assessment.NewEngine(bank),
		sessions:     session.NewStore(),
		mirror:       mirror,
		delay:        delay,
		log:          logger,
		persistQueue: make(chan persistJob, 50), // buffer for 50 pending writes
	}

	a.StartBackgroundWorkers()

	return a
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
