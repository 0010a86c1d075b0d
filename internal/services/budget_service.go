package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"tally/internal/clock"
	"tally/internal/core"
)

// BudgetService owns budget CRUD. Budgets are local-only and never hit
// the sync queue.
type BudgetService struct {
	store BudgetStore
	clock clock.Clock
}

func NewBudgetService(store BudgetStore, clk clock.Clock) *BudgetService {
	return &BudgetService{store: store, clock: clk}
}

// Create validates and stores a new budget. A non-positive amount is
// rejected here so every stored budget can be divided by safely.
func (s *BudgetService) Create(ctx context.Context, b core.Budget) (core.Budget, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := s.clock.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}

	if err := s.store.CreateBudget(ctx, b); err != nil {
		return core.Budget{}, fmt.Errorf("save budget: %w", err)
	}
	return b, nil
}

// Update replaces an existing budget's fields, keeping its creation
// time.
func (s *BudgetService) Update(ctx context.Context, b core.Budget) (core.Budget, error) {
	current, err := s.store.GetBudget(ctx, b.ID)
	if err != nil {
		return core.Budget{}, err
	}
	b.CreatedAt = current.CreatedAt
	b.UpdatedAt = s.clock.Now()

	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}

	if err := s.store.ReplaceBudget(ctx, b); err != nil {
		return core.Budget{}, err
	}
	return b, nil
}

// Delete removes a budget.
func (s *BudgetService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteBudget(ctx, id)
}

// Get returns a single budget by ID.
func (s *BudgetService) Get(ctx context.Context, id string) (core.Budget, error) {
	return s.store.GetBudget(ctx, id)
}

// List returns all budgets.
func (s *BudgetService) List(ctx context.Context) ([]core.Budget, error) {
	return s.store.ListBudgets(ctx)
}
