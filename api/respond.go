package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tidyhome-services/blog-backend/errs"
)

type Responder struct {
	logger       zerolog.Logger
	exposeErrors bool
}

func NewResponder(logger zerolog.Logger, exposeErrors bool) Responder {
	return Responder{logger: logger, exposeErrors: exposeErrors}
}

func (r Responder) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	jsonData, err := json.Marshal(body)
	if err != nil {
		r.logger.Error().Err(err).Msg("error marshaling response data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(jsonData); err != nil {
		r.logger.Error().Err(err).Msg("error writing response")
	}
}

// WriteData wraps a payload in the success envelope.
func (r Responder) WriteData(w http.ResponseWriter, status int, data any) {
	r.writeJSON(w, status, SuccessResponse{Success: true, Data: data})
}

// WriteList wraps one page of results in the list envelope. pages is
// ceil(total/limit).
func (r Responder) WriteList(w http.ResponseWriter, data any, count int, total int64, limit, currentPage int) {
	pages := int((total + int64(limit) - 1) / int64(limit))
	r.writeJSON(w, http.StatusOK, ListResponse{
		Success:     true,
		Count:       count,
		Total:       total,
		Pages:       pages,
		CurrentPage: currentPage,
		Data:        data,
	})
}

// WriteMessage wraps a bare success message, e.g. after a delete.
func (r Responder) WriteMessage(w http.ResponseWriter, message string) {
	r.writeJSON(w, http.StatusOK, MessageResponse{Success: true, Message: message})
}

// WriteError maps any error to the failure envelope. Non-ApiErr errors become
// opaque 500s; their detail is logged and, outside production, echoed in the
// response for debugging.
func (r Responder) WriteError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) {
		r.logger.Error().Err(err).Msg("unexpected error")
		body := ErrorResponse{Success: false, Message: "Internal Server Error"}
		if r.exposeErrors {
			body.Error = err.Error()
		}
		r.writeJSON(w, http.StatusInternalServerError, body)
		return
	}

	if apiErr.StatusCode >= http.StatusInternalServerError {
		r.logger.Error().Err(err).Msg("request failed")
	}

	body := ErrorResponse{
		Success: false,
		Message: apiErr.Message(),
		Errors:  apiErr.Fields,
	}
	if r.exposeErrors && apiErr.Cause != nil {
		body.Error = apiErr.Cause.Error()
	}

	r.writeJSON(w, apiErr.StatusCode, body)
}
