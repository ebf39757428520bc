package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"venomdocs/internal/docs"
	"venomdocs/internal/errors"
	"venomdocs/internal/meta"
	"venomdocs/internal/model"
)

type apiCode string

const (
	codeNotFound apiCode = "not_found"
	codeBadRoute apiCode = "invalid_route"
	codeInternal apiCode = "internal_error"
)

const (
	searchParam     = "q"
	htmlContentType = "text/html; charset=utf-8"
)

type apiError struct {
	Code    apiCode `json:"code"`
	Message string  `json:"message"`
}

type errorResponse struct {
	Error apiError `json:"error"`
}

type routeResponse struct {
	Route *model.Route `json:"route"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code apiCode, message string) {
	writeJSON(w, status, errorResponse{Error: apiError{Code: code, Message: message}})
}

// writeDomainError maps error codes onto HTTP statuses.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch errors.CodeOf(err) {
	case errors.ErrCodeNotFound:
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
	case errors.ErrCodeMissingField, errors.ErrCodeInvalidArgument:
		writeError(w, http.StatusUnprocessableEntity, codeBadRoute, err.Error())
	default:
		s.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}

// renderPage builds a fresh document, lets prepare adjust it and writes
// the result. The search query, if any, is applied last.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, prepare func(*docs.App) error) {
	app, err := s.newApp()
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if prepare != nil {
		if err := prepare(app); err != nil {
			s.writeDomainError(w, r, err)
			return
		}
	}
	if q := r.URL.Query().Get(searchParam); q != "" {
		app.Type(q)
	}

	var buf bytes.Buffer
	if err := app.Render(&buf); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", htmlContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, func(app *docs.App) error {
		if err := app.SelectFirst(); err != nil {
			s.log.Warn("first route not rendered", zap.Error(err))
		}
		return nil
	})
}

func (s *Server) handleRoutePage(w http.ResponseWriter, r *http.Request) {
	guid := chi.URLParam(r, "guid")
	s.renderPage(w, r, func(app *docs.App) error {
		return app.Select(guid)
	})
}

func (s *Server) handleListRoutes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, meta.Summarize(s.cfg.Version, s.cfg.Routes))
}

func (s *Server) handleGetRoute(w http.ResponseWriter, r *http.Request) {
	guid := chi.URLParam(r, "guid")
	route, ok := s.byGUID[guid]
	if !ok {
		s.writeDomainError(w, r, errors.NotFound("no route with guid %s", guid))
		return
	}
	writeJSON(w, http.StatusOK, routeResponse{Route: route})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
