package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/entity"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/repository"
	"github.com/jackc/pgx/v5"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, company_id, customer_id, sequence, invoice_number, invoice_date,
	po_number, po_date, payment_mode, transport, dispatch_from, status,
	subtotal, gst_amount, total_amount, gst_rate, created_at, updated_at`

const invoiceItemColumns = `id, invoice_id, product_id, description, quantity, unit, rate,
	discount_percent, amount, position, created_at`

// InvoiceRepo implements InvoiceRepository over PostgreSQL (pool or tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter. Pass a pool or tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persists a new invoice header.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoices (id, company_id, customer_id, sequence, invoice_number, invoice_date,
			po_number, po_date, payment_mode, transport, dispatch_from, status,
			subtotal, gst_amount, total_amount, gst_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CompanyID, invoice.CustomerID, invoice.Sequence, invoice.Number,
		invoice.Date, invoice.PONumber, invoice.PODate, invoice.PaymentMode, invoice.Transport,
		invoice.DispatchFrom, invoice.Status,
		invoice.Subtotal, invoice.GSTAmount, invoice.TotalAmount, invoice.GSTRate,
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.CompanyID, &inv.CustomerID, &inv.Sequence, &inv.Number, &inv.Date,
		&inv.PONumber, &inv.PODate, &inv.PaymentMode, &inv.Transport, &inv.DispatchFrom, &inv.Status,
		&inv.Subtotal, &inv.GSTAmount, &inv.TotalAmount, &inv.GSTRate,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetByID fetches one invoice header by ID.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetByIDForUpdate fetches one invoice taking a row lock. Must run on a
// tx-bound repository; the lock serializes mutations on the invoice.
func (r *InvoiceRepo) GetByIDForUpdate(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 FOR UPDATE`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice for update: %w", err)
	}
	return inv, nil
}

// List fetches invoices matching the filter, newest first.
func (r *InvoiceRepo) List(filter repository.InvoiceFilter) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE 1=1`
	args := []any{}
	n := 0
	add := func(clause string, v any) {
		n++
		args = append(args, v)
		query += fmt.Sprintf(clause, n)
	}
	if filter.CompanyID != "" {
		add(" AND company_id = $%d", filter.CompanyID)
	}
	if filter.CustomerID != "" {
		add(" AND customer_id = $%d", filter.CustomerID)
	}
	if filter.Status != "" {
		add(" AND status = $%d", filter.Status)
	}
	query += " ORDER BY invoice_date DESC, sequence DESC"
	if filter.Limit > 0 {
		add(" LIMIT $%d", filter.Limit)
	}
	if filter.Offset > 0 {
		add(" OFFSET $%d", filter.Offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	return collectInvoices(rows)
}

// Search matches invoice number or PO number, case-insensitive.
func (r *InvoiceRepo) Search(q string, limit int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		WHERE invoice_number ILIKE '%' || $1 || '%' OR po_number ILIKE '%' || $1 || '%'
		ORDER BY invoice_date DESC, sequence DESC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, q, limit)
	if err != nil {
		return nil, fmt.Errorf("search invoices: %w", err)
	}
	defer rows.Close()
	return collectInvoices(rows)
}

func collectInvoices(rows pgx.Rows) ([]*entity.Invoice, error) {
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// UpdateHeader rewrites the mutable header fields. company_id, sequence,
// invoice_number, status and the totals are managed elsewhere and absent.
func (r *InvoiceRepo) UpdateHeader(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET customer_id = $2, invoice_date = $3, po_number = $4, po_date = $5,
		    payment_mode = $6, transport = $7, dispatch_from = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CustomerID, invoice.Date, invoice.PONumber, invoice.PODate,
		invoice.PaymentMode, invoice.Transport, invoice.DispatchFrom, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice header: %w", err)
	}
	return nil
}

// UpdateTotals rewrites the derived amounts after a recomputation.
func (r *InvoiceRepo) UpdateTotals(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET subtotal = $2, gst_amount = $3, total_amount = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Subtotal, invoice.GSTAmount, invoice.TotalAmount, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice totals: %w", err)
	}
	return nil
}

// UpdateStatus moves the invoice to status. Transition legality is the
// workflow's job; this just persists the outcome.
func (r *InvoiceRepo) UpdateStatus(id, status string) error {
	query := `UPDATE invoices SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	return nil
}

// Delete removes the invoice and its items.
func (r *InvoiceRepo) Delete(id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, id); err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// DeleteByCompany removes all of a company's invoices and items (cascade path).
func (r *InvoiceRepo) DeleteByCompany(companyID string) error {
	ctx := context.Background()
	query := `DELETE FROM invoice_items WHERE invoice_id IN (SELECT id FROM invoices WHERE company_id = $1)`
	if _, err := r.q.Exec(ctx, query, companyID); err != nil {
		return fmt.Errorf("delete invoice items by company: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE company_id = $1`, companyID); err != nil {
		return fmt.Errorf("delete invoices by company: %w", err)
	}
	return nil
}

// CreateItem persists a new invoice line.
func (r *InvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoice_items (id, invoice_id, product_id, description, quantity, unit, rate,
			discount_percent, amount, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InvoiceID, nullIfEmpty(item.ProductID), item.Description,
		item.Quantity, item.Unit, item.Rate, item.DiscountPercent, item.Amount,
		item.Position, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

func scanInvoiceItem(row pgx.Row) (*entity.InvoiceItem, error) {
	var it entity.InvoiceItem
	var productID *string
	err := row.Scan(
		&it.ID, &it.InvoiceID, &productID, &it.Description, &it.Quantity, &it.Unit, &it.Rate,
		&it.DiscountPercent, &it.Amount, &it.Position, &it.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	it.ProductID = derefStr(productID)
	return &it, nil
}

// GetItem fetches one line by ID.
func (r *InvoiceRepo) GetItem(itemID string) (*entity.InvoiceItem, error) {
	query := `SELECT ` + invoiceItemColumns + ` FROM invoice_items WHERE id = $1`
	it, err := scanInvoiceItem(r.q.QueryRow(context.Background(), query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice item: %w", err)
	}
	return it, nil
}

// ListItems fetches an invoice's lines in display order.
func (r *InvoiceRepo) ListItems(invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `SELECT ` + invoiceItemColumns + ` FROM invoice_items WHERE invoice_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceItem
	for rows.Next() {
		it, err := scanInvoiceItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// CountItems counts an invoice's lines.
func (r *InvoiceRepo) CountItems(invoiceID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM invoice_items WHERE invoice_id = $1`, invoiceID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count invoice items: %w", err)
	}
	return n, nil
}

// UpdateItem rewrites the mutable line fields.
func (r *InvoiceRepo) UpdateItem(item *entity.InvoiceItem) error {
	query := `
		UPDATE invoice_items
		SET product_id = $2, description = $3, quantity = $4, unit = $5, rate = $6,
		    discount_percent = $7, amount = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, nullIfEmpty(item.ProductID), item.Description, item.Quantity, item.Unit,
		item.Rate, item.DiscountPercent, item.Amount,
	)
	if err != nil {
		return fmt.Errorf("update invoice item: %w", err)
	}
	return nil
}

// DeleteItem removes one line.
func (r *InvoiceRepo) DeleteItem(itemID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM invoice_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete invoice item: %w", err)
	}
	return nil
}

// Stats aggregates dashboard figures. Cancelled invoices are excluded from the
// money sums but still counted in the status breakdown.
func (r *InvoiceRepo) Stats() (*repository.InvoiceStats, error) {
	ctx := context.Background()
	stats := &repository.InvoiceStats{ByStatus: make(map[string]int64)}

	rows, err := r.q.Query(ctx, `SELECT status, count(*) FROM invoices GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("invoice status counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		stats.ByStatus[status] = n
		stats.Total += n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	query := `
		SELECT COALESCE(sum(total_amount) FILTER (WHERE status <> 'CANCELLED'), 0),
		       COALESCE(sum(total_amount) FILTER (WHERE status = 'PAID'), 0),
		       COALESCE(sum(total_amount) FILTER (WHERE status = 'SENT'), 0)
		FROM invoices`
	err = r.q.QueryRow(ctx, query).Scan(&stats.TotalInvoiced, &stats.TotalPaid, &stats.TotalOutstanding)
	if err != nil {
		return nil, fmt.Errorf("invoice amount sums: %w", err)
	}
	return stats, nil
}
