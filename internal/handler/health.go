package handler

import (
	"log/slog"
	"net/http"
)

type HealthHandler struct {
	appName string
}

func NewHealthHandler(appName string) *HealthHandler {
	return &HealthHandler{appName: appName}
}

// Live is the plain-text liveness probe.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, err := w.Write([]byte(h.appName + " checkout relay is running"))
	if err != nil {
		slog.Error("failed to write liveness response", "error", err)
	}
}
