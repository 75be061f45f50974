package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

type statusHandler struct {
	responder   Responder
	startupTime time.Time
}

func newStatusHandler(startupTime time.Time, exposeErrors bool) statusHandler {
	logger := log.With().Str("handlerName", "statusHandler").Logger()
	return statusHandler{
		responder:   NewResponder(logger, exposeErrors),
		startupTime: startupTime,
	}
}

// getStatus reports liveness and uptime.
func (h statusHandler) getStatus() http.HandlerFunc {
	type status struct {
		Status string `json:"status"`
		Uptime string `json:"uptime"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteData(w, http.StatusOK, status{
			Status: "ok",
			Uptime: time.Since(h.startupTime).Round(time.Second).String(),
		})
	}
}
