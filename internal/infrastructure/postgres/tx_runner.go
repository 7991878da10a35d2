package postgres

import (
	"context"
	"fmt"

	"github.com/invoicedesk/invoicedesk-api/internal/application/ports"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner runs callbacks inside a PostgreSQL transaction, handing the
// callback repositories bound to that transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, executes fn with tx-bound repos and commits.
// Any error from fn rolls the whole transaction back.
func (r *TxRunner) Run(ctx context.Context, fn func(tx ports.RepoSet) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := ports.RepoSet{
		Companies: NewCompanyRepository(tx),
		Customers: NewCustomerRepository(tx),
		Products:  NewProductRepository(tx),
		Invoices:  NewInvoiceRepository(tx),
		Sequences: NewSequenceRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
