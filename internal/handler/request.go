package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/roamwyth/backend/internal/middleware"
)

// callerID returns the authenticated user. It writes a 401 and returns false
// when the request reached a protected route without one.
func callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
	}
	return id, ok
}

// pathID binds the {id} path parameter as a UUID.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		badRequest(w, "id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// today returns the ?today= query date, or the current UTC date when absent.
// Clients send their local calendar date so classification follows the
// traveller's day rather than the server's.
func (s *Server) today(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	var d *openapi_types.Date
	if err := runtime.BindQueryParameter("form", true, false, "today", r.URL.Query(), &d); err != nil {
		badRequest(w, "today must be a date in YYYY-MM-DD format")
		return time.Time{}, false
	}
	if d != nil {
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), true
	}
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), true
}

// pageParams binds the optional ?page= and ?limit= query parameters.
func pageParams(w http.ResponseWriter, r *http.Request) (page, limit *int, ok bool) {
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &page); err != nil {
		badRequest(w, "page must be an integer")
		return nil, nil, false
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		badRequest(w, "limit must be an integer")
		return nil, nil, false
	}
	return page, limit, true
}

// decodeBody reads a JSON request body into dst and validates its struct tags.
// It writes the error response itself and returns false on failure.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "request_too_large", "request body too large")
		case errors.Is(err, io.EOF):
			badRequest(w, "request body is required")
		default:
			badRequest(w, "request body is not valid JSON")
		}
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		badRequest(w, validationMessage(err))
		return false
	}
	return true
}
