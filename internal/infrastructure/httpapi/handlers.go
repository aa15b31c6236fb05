package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"account-automator/internal/domain/entity"

	"github.com/go-chi/chi/v5"
)

type errorResponse struct {
	Error string `json:"error"`
}

type generateRequest struct {
	entity.GenerateRequest
	Count int `json:"count,omitempty"`
}

type generateResponse struct {
	Count    int                       `json:"count"`
	Accounts []entity.GeneratedAccount `json:"accounts"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) handleListServices(w http.ResponseWriter, r *http.Request) {
	types := s.manager.SupportedTypes()
	infos := make([]entity.ServiceInfo, 0, len(types))
	for _, t := range types {
		if info, ok := s.manager.ServiceInfo(t); ok {
			infos = append(infos, info)
		}
	}
	s.respond(w, http.StatusOK, infos)
}

func (s *Server) handleServiceInfo(w http.ResponseWriter, r *http.Request) {
	t, ok := s.accountType(w, r)
	if !ok {
		return
	}
	info, _ := s.manager.ServiceInfo(t)
	s.respond(w, http.StatusOK, info)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	t, ok := s.accountType(w, r)
	if !ok {
		return
	}
	var data entity.RegistrationData
	if !s.decode(w, r, &data) {
		return
	}

	s.automation.Lock()
	defer s.automation.Unlock()
	s.respond(w, http.StatusOK, s.manager.Register(r.Context(), t, data, s.opts))
}

func (s *Server) handleRegisterGenerated(w http.ResponseWriter, r *http.Request) {
	t, ok := s.accountType(w, r)
	if !ok {
		return
	}
	var req entity.GenerateRequest
	if !s.decodeOptional(w, r, &req) {
		return
	}

	s.automation.Lock()
	defer s.automation.Unlock()
	s.respond(w, http.StatusOK, s.manager.RegisterGenerated(r.Context(), t, req, s.opts))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	t, ok := s.accountType(w, r)
	if !ok {
		return
	}
	var data entity.LoginData
	if !s.decode(w, r, &data) {
		return
	}

	s.automation.Lock()
	defer s.automation.Unlock()
	s.respond(w, http.StatusOK, s.manager.Login(r.Context(), t, data, s.opts))
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		s.respondWithError(w, http.StatusNotImplemented, "no credential generator configured")
		return
	}
	var req generateRequest
	if !s.decodeOptional(w, r, &req) {
		return
	}
	if req.Count <= 0 {
		req.Count = 1
	}
	if req.Count > maxGenerate {
		s.respondWithError(w, http.StatusBadRequest, fmt.Sprintf("count must be at most %d", maxGenerate))
		return
	}

	accounts, err := s.generator.Batch(req.Count, req.GenerateRequest)
	if err != nil {
		s.respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respond(w, http.StatusOK, generateResponse{Count: len(accounts), Accounts: accounts})
}

// accountType resolves the {type} path segment and writes a 404 when the
// type is unknown or has no automation.
func (s *Server) accountType(w http.ResponseWriter, r *http.Request) (entity.AccountType, bool) {
	raw := chi.URLParam(r, "type")
	t, err := entity.ParseAccountType(raw)
	if err != nil || !s.manager.IsSupported(t) {
		s.respondWithError(w, http.StatusNotFound, fmt.Sprintf("unsupported account type: %s", raw))
		return "", false
	}
	return t, true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	return s.decodeBody(w, r, v, false)
}

// decodeOptional accepts a missing body, chunked or not, and leaves v as is.
func (s *Server) decodeOptional(w http.ResponseWriter, r *http.Request, v any) bool {
	return s.decodeBody(w, r, v, true)
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any, optional bool) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			if optional {
				return true
			}
			err = errors.New("empty body")
		}
		s.respondWithError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

func (s *Server) respond(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) respondWithError(w http.ResponseWriter, code int, message string) {
	s.logger.Warn("Request rejected", "status", code, "error", message)
	s.respond(w, code, errorResponse{Error: message})
}
