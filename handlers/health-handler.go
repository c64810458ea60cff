package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/SamarthKasar123/Primewave/store"
)

type HealthHandler struct {
	Pinger store.Pinger
}

func NewHealthHandler(pinger store.Pinger) *HealthHandler {
	return &HealthHandler{Pinger: pinger}
}

// Health reports current store connectivity by pinging it on every call;
// nothing is cached between requests.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.Pinger.Ping(r.Context()) == nil

	environment := os.Getenv("APP_ENV")
	if environment == "" {
		environment = "development"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"timestamp":   time.Now(),
		"dbConnected": dbConnected,
		"environment": environment,
	})
}

func Welcome(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Welcome to Primewave API!"))
}
