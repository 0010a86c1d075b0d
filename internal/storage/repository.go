package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"tally/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a row does not exist or was soft-deleted.
var ErrNotFound = errors.New("not found")

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateTransaction inserts a new transaction in pending-sync state.
func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions
			(id, type, amount_cents, currency, date, category, account,
			 notes, description, payment_type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, string(t.Type), t.Amount.Cents, t.Currency,
		t.Date.UTC().Format(time.RFC3339), t.Category, t.Account,
		t.Notes, t.Description, string(t.PaymentType), now, now)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", t.ID,
		"type", t.Type,
		"amount_cents", t.Amount.Cents,
		"category", t.Category)

	return nil
}

// ReplaceTransaction overwrites every mutable field of an existing
// transaction, bumps its version and queues it for re-sync. The new
// version is returned for the sync message.
func (r *SQLiteRepository) ReplaceTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	var version int64
	err := r.db.QueryRowContext(ctx, `
		UPDATE transactions
		SET type = ?, amount_cents = ?, currency = ?, date = ?,
		    category = ?, account = ?, notes = ?, description = ?,
		    payment_type = ?, version = version + 1,
		    synced = 0, sync_error = 0, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
		RETURNING version`,
		string(t.Type), t.Amount.Cents, t.Currency,
		t.Date.UTC().Format(time.RFC3339), t.Category, t.Account,
		t.Notes, t.Description, string(t.PaymentType),
		time.Now().UTC().Format(time.RFC3339), t.ID).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("update transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction replaced", "id", t.ID, "version", version)
	return version, nil
}

// SoftDeleteTransaction hides a transaction from reads and queues a
// deletion for the sync worker. The row survives until the remote copy
// is confirmed gone.
func (r *SQLiteRepository) SoftDeleteTransaction(ctx context.Context, id string) (int64, error) {
	var version int64
	err := r.db.QueryRowContext(ctx, `
		UPDATE transactions
		SET deleted_at = ?, synced = 0, sync_error = 0, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
		RETURNING version`,
		time.Now().UTC().Format(time.RFC3339),
		time.Now().UTC().Format(time.RFC3339), id).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("soft delete transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction soft-deleted", "id", id, "version", version)
	return version, nil
}

// GetTransaction returns a single live transaction by ID.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, type, amount_cents, currency, date, category, account,
		       notes, description, payment_type
		FROM transactions
		WHERE id = ? AND deleted_at IS NULL`, id)

	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// ListTransactions returns all live transactions ordered by date, with
// insertion order as the tiebreak so derived views are stable.
func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, type, amount_cents, currency, date, category, account,
		       notes, description, payment_type
		FROM transactions
		WHERE deleted_at IS NULL
		ORDER BY date, rowid`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txns, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t                 core.Transaction
		typ, payment, dat string
	)
	err := row.Scan(&t.ID, &typ, &t.Amount.Cents, &t.Currency, &dat,
		&t.Category, &t.Account, &t.Notes, &t.Description, &payment)
	if err != nil {
		return core.Transaction{}, err
	}
	t.Type = core.TransactionType(typ)
	t.PaymentType = core.PaymentType(payment)
	t.Date, err = time.Parse(time.RFC3339, dat)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse date %q: %w", dat, err)
	}
	return t, nil
}

// CreateBudget inserts a new budget.
func (r *SQLiteRepository) CreateBudget(ctx context.Context, b core.Budget) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO budgets (id, name, category, amount_cents, period, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Name, b.Category, b.Amount.Cents, string(b.Period),
		b.CreatedAt.UTC().Format(time.RFC3339),
		b.UpdatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert budget: %w", err)
	}

	slog.InfoContext(ctx, "Budget saved to SQLite",
		"id", b.ID,
		"category", b.Category,
		"amount_cents", b.Amount.Cents,
		"period", b.Period)

	return nil
}

// ReplaceBudget overwrites an existing budget's mutable fields.
func (r *SQLiteRepository) ReplaceBudget(ctx context.Context, b core.Budget) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE budgets
		SET name = ?, category = ?, amount_cents = ?, period = ?, updated_at = ?
		WHERE id = ?`,
		b.Name, b.Category, b.Amount.Cents, string(b.Period),
		b.UpdatedAt.UTC().Format(time.RFC3339), b.ID)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBudget removes a budget. Budgets are local-only so this is a
// hard delete.
func (r *SQLiteRepository) DeleteBudget(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetBudget returns a single budget by ID.
func (r *SQLiteRepository) GetBudget(ctx context.Context, id string) (core.Budget, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, category, amount_cents, period, created_at, updated_at
		FROM budgets WHERE id = ?`, id)

	b, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Budget{}, ErrNotFound
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("get budget: %w", err)
	}
	return b, nil
}

// ListBudgets returns all budgets ordered by category then creation.
func (r *SQLiteRepository) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, category, amount_cents, period, created_at, updated_at
		FROM budgets
		ORDER BY category, created_at`)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []core.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return budgets, nil
}

func scanBudget(row rowScanner) (core.Budget, error) {
	var (
		b                    core.Budget
		period, created, upd string
	)
	err := row.Scan(&b.ID, &b.Name, &b.Category, &b.Amount.Cents, &period, &created, &upd)
	if err != nil {
		return core.Budget{}, err
	}
	b.Period = core.BudgetPeriod(period)
	if b.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
		return core.Budget{}, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	if b.UpdatedAt, err = time.Parse(time.RFC3339, upd); err != nil {
		return core.Budget{}, fmt.Errorf("parse updated_at %q: %w", upd, err)
	}
	return b, nil
}

// PendingSyncTransaction is the minimal row the sync worker needs to
// build a queue message.
type PendingSyncTransaction struct {
	ID        string
	Version   int64
	Deleted   bool
	CreatedAt time.Time
}

// ListPendingSync returns transactions awaiting export, oldest first.
// Soft-deleted rows are included so their remote copies get removed.
func (r *SQLiteRepository) ListPendingSync(ctx context.Context, limit int) ([]PendingSyncTransaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, version, deleted_at IS NOT NULL, created_at
		FROM transactions
		WHERE synced = 0 AND sync_error = 0
		ORDER BY created_at
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending sync: %w", err)
	}
	defer rows.Close()

	var pending []PendingSyncTransaction
	for rows.Next() {
		var (
			p       PendingSyncTransaction
			created string
		)
		if err := rows.Scan(&p.ID, &p.Version, &p.Deleted, &created); err != nil {
			return nil, fmt.Errorf("scan pending sync: %w", err)
		}
		if p.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", created, err)
		}
		pending = append(pending, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pending sync: %w", err)
	}
	return pending, nil
}

// MarkSynced records a successful export. A soft-deleted row is purged
// once its remote copy is confirmed gone.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM transactions WHERE id = ? AND deleted_at IS NOT NULL`, id)
	if err != nil {
		return fmt.Errorf("purge synced deletion: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		slog.InfoContext(ctx, "Deleted transaction purged after sync", "id", id)
		return nil
	}

	if _, err := r.db.ExecContext(ctx, `
		UPDATE transactions SET synced = 1, sync_error = 0 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark transaction synced: %w", err)
	}

	slog.InfoContext(ctx, "Transaction marked as synced", "id", id)
	return nil
}

// MarkSyncError flags a transaction so the periodic scan stops
// re-publishing it until an operator intervenes.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `
		UPDATE transactions SET sync_error = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark transaction sync error: %w", err)
	}

	slog.WarnContext(ctx, "Transaction marked with sync error", "id", id)
	return nil
}
