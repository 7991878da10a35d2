package postgres

import (
	"context"
	"fmt"

	"github.com/invoicedesk/invoicedesk-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo allocates per-company invoice sequence numbers from the
// invoice_sequences table. The upsert locks the company's row, so concurrent
// creations for one company serialize and each gets a distinct number.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository builds the adapter. Pass a pool or tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// NextSequence claims and returns the next number for the company. Call it
// inside the creating transaction so a rollback releases the number's slot
// (a gap remains only if the row was already advanced by a committed tx).
func (r *SequenceRepo) NextSequence(companyID string) (int64, error) {
	query := `
		INSERT INTO invoice_sequences (company_id, last_seq)
		VALUES ($1, 1)
		ON CONFLICT (company_id)
		DO UPDATE SET last_seq = invoice_sequences.last_seq + 1
		RETURNING last_seq`
	var seq int64
	if err := r.q.QueryRow(context.Background(), query, companyID).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next invoice sequence: %w", err)
	}
	return seq, nil
}

// Peek returns the number NextSequence would hand out, without claiming it.
func (r *SequenceRepo) Peek(companyID string) (int64, error) {
	query := `SELECT COALESCE(
		(SELECT last_seq FROM invoice_sequences WHERE company_id = $1), 0) + 1`
	var seq int64
	if err := r.q.QueryRow(context.Background(), query, companyID).Scan(&seq); err != nil {
		return 0, fmt.Errorf("peek invoice sequence: %w", err)
	}
	return seq, nil
}
