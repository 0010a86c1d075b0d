package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"tally/internal/analytics"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.serveCachedJSON(w, r, func() (any, error) {
		stats, err := s.analytics.Dashboard(r.Context())
		if err != nil {
			return nil, err
		}
		return buildDashboardResponse(stats), nil
	})
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	s.serveCachedJSON(w, r, func() (any, error) {
		report, err := s.analytics.Insights(r.Context())
		if err != nil {
			return nil, err
		}
		return buildInsightsResponse(report), nil
	})
}

func (s *Server) handleDuplicates(w http.ResponseWriter, r *http.Request) {
	s.serveCachedJSON(w, r, func() (any, error) {
		groups, err := s.analytics.DuplicateGroups(r.Context())
		if err != nil {
			return nil, err
		}
		return buildDuplicatesResponse(groups), nil
	})
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	periods := s.forecastDefaultPeriods
	if v := strings.TrimSpace(r.URL.Query().Get("periods")); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < 0 {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid periods %q", v))
			return
		}
		if p > s.forecastMaxPeriods {
			writeError(w, r, http.StatusBadRequest,
				fmt.Sprintf("periods %d exceeds maximum %d", p, s.forecastMaxPeriods))
			return
		}
		periods = p
	}

	s.serveCachedJSON(w, r, func() (any, error) {
		forecast, err := s.analytics.Forecast(r.Context(), periods)
		if err != nil {
			return nil, err
		}
		return buildForecastResponse(forecast), nil
	})
}

// serveCachedJSON serves a derived response from the LRU cache, keyed
// by the full request URI. Misses compute, marshal and store.
func (s *Server) serveCachedJSON(w http.ResponseWriter, r *http.Request, compute func() (any, error)) {
	key := r.URL.RequestURI()
	if body, ok := s.responseCache.Get(key); ok {
		w.Header().Set("X-Cache", "hit")
		writeJSONBytes(w, http.StatusOK, body)
		return
	}

	v, err := compute()
	if err != nil {
		if errors.Is(err, analytics.ErrNoHistory) {
			writeError(w, r, http.StatusUnprocessableEntity, "no transaction history to forecast from")
			return
		}
		s.writeAPIError(w, r, err)
		return
	}

	body, err := json.Marshal(v)
	if err != nil {
		s.writeAPIError(w, r, err)
		return
	}

	s.responseCache.Set(key, body)
	w.Header().Set("X-Cache", "miss")
	writeJSONBytes(w, http.StatusOK, body)
}
