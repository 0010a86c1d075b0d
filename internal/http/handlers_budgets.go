package http

import (
	"net/http"
)

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.budgets.List(r.Context())
	if err != nil {
		s.writeAPIError(w, r, err)
		return
	}

	out := make([]budgetResponse, len(budgets))
	for i, b := range budgets {
		out[i] = buildBudgetResponse(b)
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	budget, err := parseBudgetRequest(r.Body)
	if err != nil {
		s.writeParseError(w, r, err)
		return
	}

	created, err := s.budgets.Create(r.Context(), budget)
	if err != nil {
		s.writeAPIError(w, r, err)
		return
	}

	s.responseCache.Purge()
	writeJSON(w, r, http.StatusCreated, buildBudgetResponse(created))
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	budget, err := parseBudgetRequest(r.Body)
	if err != nil {
		s.writeParseError(w, r, err)
		return
	}
	budget.ID = r.PathValue("id")

	updated, err := s.budgets.Update(r.Context(), budget)
	if err != nil {
		s.writeAPIError(w, r, err)
		return
	}

	s.responseCache.Purge()
	writeJSON(w, r, http.StatusOK, buildBudgetResponse(updated))
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	if err := s.budgets.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeAPIError(w, r, err)
		return
	}

	s.responseCache.Purge()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBudgetSummaries(w http.ResponseWriter, r *http.Request) {
	s.serveCachedJSON(w, r, func() (any, error) {
		summaries, err := s.analytics.BudgetSummaries(r.Context())
		if err != nil {
			return nil, err
		}
		return buildBudgetSummariesResponse(summaries), nil
	})
}
