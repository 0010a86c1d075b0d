// Package http serves the JSON API over the stored collections and the
// derived analytics.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"tally/internal/cache"
	"tally/internal/core"
	"tally/internal/middleware/trace"
	"tally/internal/services"
)

// Ports the server drives. The concrete implementations live in the
// services package.
type (
	TransactionAPI interface {
		Create(ctx context.Context, t core.Transaction) (core.Transaction, error)
		Update(ctx context.Context, t core.Transaction) (core.Transaction, error)
		Delete(ctx context.Context, id string) error
		Get(ctx context.Context, id string) (core.Transaction, error)
		List(ctx context.Context) ([]core.Transaction, error)
	}

	BudgetAPI interface {
		Create(ctx context.Context, b core.Budget) (core.Budget, error)
		Update(ctx context.Context, b core.Budget) (core.Budget, error)
		Delete(ctx context.Context, id string) error
		List(ctx context.Context) ([]core.Budget, error)
	}

	AnalyticsAPI interface {
		Dashboard(ctx context.Context) (core.DashboardStats, error)
		BudgetSummaries(ctx context.Context) ([]core.BudgetSummary, error)
		DuplicateGroups(ctx context.Context) ([][]core.Transaction, error)
		Forecast(ctx context.Context, periods int) (core.CashFlowForecast, error)
		Insights(ctx context.Context) (services.InsightsReport, error)
	}
)

// Deps carries everything the server needs besides its address.
type Deps struct {
	Transactions TransactionAPI
	Budgets      BudgetAPI
	Analytics    AnalyticsAPI

	CacheTTL               time.Duration
	CacheMaxSize           int
	ForecastDefaultPeriods int
	ForecastMaxPeriods     int
}

type Server struct {
	http.Server
	transactions TransactionAPI
	budgets      BudgetAPI
	analytics    AnalyticsAPI
	rateLimiter  *rateLimiter

	forecastDefaultPeriods int
	forecastMaxPeriods     int

	// Derived GET responses are cached whole; any write purges
	responseCache *cache.LRUCache[[]byte]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, deps Deps) *Server {
	mux := http.NewServeMux()

	ttl := deps.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	maxSize := deps.CacheMaxSize
	if maxSize <= 0 {
		maxSize = 64
	}

	s := &Server{
		transactions:           deps.Transactions,
		budgets:                deps.Budgets,
		analytics:              deps.Analytics,
		rateLimiter:            newRateLimiter(),
		forecastDefaultPeriods: deps.ForecastDefaultPeriods,
		forecastMaxPeriods:     deps.ForecastMaxPeriods,
		responseCache:          cache.New[[]byte](maxSize, ttl),
		stopCacheCleanup:       make(chan struct{}),
	}
	if s.forecastDefaultPeriods <= 0 {
		s.forecastDefaultPeriods = 3
	}
	if s.forecastMaxPeriods < s.forecastDefaultPeriods {
		s.forecastMaxPeriods = 24
	}

	go s.startCacheCleanup()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("GET /api/transactions/duplicates", s.handleDuplicates)
	mux.HandleFunc("GET /api/transactions/{id}", s.handleGetTransaction)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /api/budgets", s.handleListBudgets)
	mux.HandleFunc("POST /api/budgets", s.handleCreateBudget)
	mux.HandleFunc("PUT /api/budgets/{id}", s.handleUpdateBudget)
	mux.HandleFunc("DELETE /api/budgets/{id}", s.handleDeleteBudget)
	mux.HandleFunc("GET /api/budgets/summary", s.handleBudgetSummaries)

	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/insights", s.handleInsights)
	mux.HandleFunc("GET /api/forecast", s.handleForecast)

	traced := trace.NewMiddleware(clientIP)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           traced.Middleware(s.withCommonHeaders(mux)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// withCommonHeaders applies security headers and rate limiting.
func (s *Server) withCommonHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP(r)) {
			slog.WarnContext(r.Context(), "Rate limit exceeded",
				"client_ip", clientIP(r), "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.responseCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Cache cleanup completed", "entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
