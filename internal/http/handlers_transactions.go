package http

import (
	"errors"
	"log/slog"
	"net/http"

	"tally/internal/core"
	"tally/internal/storage"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := s.transactions.List(r.Context())
	if err != nil {
		s.writeAPIError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, buildTransactionListResponse(txns))
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	txn, err := s.transactions.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeAPIError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, buildTransactionResponse(txn))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	txn, err := parseTransactionRequest(r.Body)
	if err != nil {
		s.writeParseError(w, r, err)
		return
	}

	created, err := s.transactions.Create(r.Context(), txn)
	if err != nil {
		s.writeAPIError(w, r, err)
		return
	}

	s.responseCache.Purge()
	writeJSON(w, r, http.StatusCreated, buildTransactionResponse(created))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	txn, err := parseTransactionRequest(r.Body)
	if err != nil {
		s.writeParseError(w, r, err)
		return
	}
	txn.ID = r.PathValue("id")

	updated, err := s.transactions.Update(r.Context(), txn)
	if err != nil {
		s.writeAPIError(w, r, err)
		return
	}

	s.responseCache.Purge()
	writeJSON(w, r, http.StatusOK, buildTransactionResponse(updated))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.transactions.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeAPIError(w, r, err)
		return
	}

	s.responseCache.Purge()
	w.WriteHeader(http.StatusNoContent)
}

// writeParseError distinguishes bad values from malformed payloads.
func (s *Server) writeParseError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, core.ErrInvalidAmount) {
		status = http.StatusUnprocessableEntity
	}
	writeError(w, r, status, err.Error())
}

// writeAPIError maps domain and storage errors onto HTTP statuses.
func (s *Server) writeAPIError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not found")
	case isValidationError(err):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Request failed",
			"error", err, "method", r.Method, "url", r.URL.Path)
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		core.ErrInvalidAmount,
		core.ErrInvalidType,
		core.ErrInvalidPeriod,
		core.ErrInvalidDate,
		core.ErrInvalidCurrency,
		core.ErrEmptyCategory,
		core.ErrEmptyAccount,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
