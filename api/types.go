package api

import (
	"github.com/tidyhome-services/blog-backend/errs"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	blogPostHandler blogPostHandler
	authHandler     authHandler
	statusHandler   statusHandler
}

// SuccessResponse is the uniform envelope for single-payload successes.
type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// ListResponse is the envelope for paginated listings. Count is the number of
// items on this page; Total counts every match across pages.
type ListResponse struct {
	Success     bool  `json:"success"`
	Count       int   `json:"count"`
	Total       int64 `json:"total"`
	Pages       int   `json:"pages"`
	CurrentPage int   `json:"currentPage"`
	Data        any   `json:"data"`
}

// MessageResponse is the envelope for successes that carry only a message,
// such as deletes.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the uniform failure envelope. Errors holds per-field
// validation messages when present; Error carries the underlying detail and is
// only populated outside production.
type ErrorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  []errs.FieldError `json:"errors,omitempty"`
	Error   string            `json:"error,omitempty"`
}
