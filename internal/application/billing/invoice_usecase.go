package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/invoicedesk/invoicedesk-api/internal/application/dto"
	"github.com/invoicedesk/invoicedesk-api/internal/application/ports"
	"github.com/invoicedesk/invoicedesk-api/internal/domain"
	corebilling "github.com/invoicedesk/invoicedesk-api/internal/domain/billing"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/entity"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Config billing settings for the use case.
type Config struct {
	GSTRate decimal.Decimal // percent, snapshotted onto each new invoice
}

// InvoiceUseCase drives the invoice lifecycle: creation with sequential
// numbering, item mutation with recomputation, workflow transitions and the
// administrative override. Every mutating path runs under the transaction
// runner with a row lock on the invoice, so concurrent requests against the
// same invoice serialize.
type InvoiceUseCase struct {
	txRunner     ports.TxRunner
	invoiceRepo  repository.InvoiceRepository
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	seqRepo      repository.SequenceRepository
	cfg          Config
}

// NewInvoiceUseCase builds the use case.
func NewInvoiceUseCase(
	txRunner ports.TxRunner,
	invoiceRepo repository.InvoiceRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	seqRepo repository.SequenceRepository,
	cfg Config,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:     txRunner,
		invoiceRepo:  invoiceRepo,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		seqRepo:      seqRepo,
		cfg:          cfg,
	}
}

// resolveItem fills description, unit and rate from the referenced product
// when the request leaves them empty, then validates the line. Callers inside
// a transaction pass the tx-bound product repository so the read shares the
// mutation's snapshot.
func resolveItem(products repository.ProductRepository, companyID string, in dto.InvoiceItemRequest) (*entity.InvoiceItem, error) {
	item := &entity.InvoiceItem{
		ID:              uuid.New().String(),
		ProductID:       in.ProductID,
		Description:     in.Description,
		Quantity:        in.Quantity,
		Unit:            in.Unit,
		Rate:            in.Rate,
		DiscountPercent: in.DiscountPercent,
		CreatedAt:       time.Now(),
	}
	if in.ProductID != "" {
		product, err := products.GetByID(in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		if item.Description == "" {
			item.Description = product.DisplayName()
		}
		if item.Unit == "" {
			item.Unit = product.Unit
		}
		if item.Rate.IsZero() {
			item.Rate = product.Rate
		}
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	amount, err := corebilling.LineTotal(corebilling.LineInput{
		Quantity:        item.Quantity,
		Rate:            item.Rate,
		DiscountPercent: item.DiscountPercent,
	})
	if err != nil {
		return nil, err
	}
	item.Amount = amount
	return item, nil
}

// computeTotals recomputes the invoice money from its current items and its
// GST rate snapshot. Pure; callers persist the result.
func computeTotals(inv *entity.Invoice, items []*entity.InvoiceItem) error {
	lines := make([]corebilling.LineInput, 0, len(items))
	for _, it := range items {
		lines = append(lines, corebilling.LineInput{
			Quantity:        it.Quantity,
			Rate:            it.Rate,
			DiscountPercent: it.DiscountPercent,
		})
	}
	totals, err := corebilling.Calculate(lines, inv.GSTRate)
	if err != nil {
		return err
	}
	for i, it := range items {
		it.Amount = totals.LineTotals[i]
	}
	inv.Subtotal = totals.Subtotal
	inv.GSTAmount = totals.GSTAmount
	inv.TotalAmount = totals.Total
	return nil
}

// Create builds an invoice in DRAFT, allocating the next sequence number for
// the company inside the same transaction that persists the header and
// items. The sequence row lock serializes concurrent creations per company.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CompanyID == "" {
		return nil, domain.NewValidationError("company_id", "company is required")
	}
	if in.CustomerID == "" {
		return nil, domain.NewValidationError("customer_id", "customer is required")
	}
	company, err := uc.companyRepo.GetByID(in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != in.CompanyID {
		return nil, domain.ErrForbidden
	}

	date := time.Now()
	if in.Date != "" {
		date, err = time.ParseInLocation(dateLayout, in.Date, time.Local)
		if err != nil {
			return nil, domain.NewValidationError("invoice_date", "expected YYYY-MM-DD")
		}
	}
	var poDate *time.Time
	if in.PODate != "" {
		d, err := time.ParseInLocation(dateLayout, in.PODate, time.Local)
		if err != nil {
			return nil, domain.NewValidationError("po_date", "expected YYYY-MM-DD")
		}
		poDate = &d
	}
	paymentMode := in.PaymentMode
	if paymentMode == "" {
		paymentMode = entity.DefaultPaymentMode
	}

	// Resolve and validate items before opening the transaction (reads only).
	items := make([]*entity.InvoiceItem, 0, len(in.Items))
	for i, itemIn := range in.Items {
		item, err := resolveItem(uc.productRepo, in.CompanyID, itemIn)
		if err != nil {
			return nil, err
		}
		item.Position = i
		items = append(items, item)
	}

	now := time.Now()
	inv := &entity.Invoice{
		ID:           uuid.New().String(),
		CompanyID:    in.CompanyID,
		CustomerID:   in.CustomerID,
		Date:         date,
		PONumber:     in.PONumber,
		PODate:       poDate,
		PaymentMode:  paymentMode,
		Transport:    in.Transport,
		DispatchFrom: in.DispatchFrom,
		Status:       entity.StatusDraft,
		GSTRate:      uc.cfg.GSTRate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := computeTotals(inv, items); err != nil {
		return nil, err
	}

	err = uc.txRunner.Run(ctx, func(tx ports.RepoSet) error {
		seq, err := tx.Sequences.NextSequence(in.CompanyID)
		if err != nil {
			return err
		}
		inv.Sequence = seq
		inv.Number = entity.FormatNumber(date.Year(), seq)
		if err := inv.Validate(); err != nil {
			return err
		}
		if err := tx.Invoices.Create(inv); err != nil {
			return err
		}
		for _, item := range items {
			item.InvoiceID = inv.ID
			if err := tx.Invoices.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, items), nil
}

// Get loads an invoice with its items.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.ListItems(id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, items), nil
}

// List lists invoice headers matching the filter.
func (uc *InvoiceUseCase) List(ctx context.Context, filter repository.InvoiceFilter) (*dto.InvoiceListResponse, error) {
	if filter.Status != "" && !entity.ValidStatus(filter.Status) {
		return nil, domain.NewValidationError("status", "invalid status")
	}
	list, err := uc.invoiceRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toInvoiceResponse(inv, nil))
	}
	return &dto.InvoiceListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset},
	}, nil
}

// Search finds invoices by number or PO number.
func (uc *InvoiceUseCase) Search(ctx context.Context, query string, limit int) (*dto.InvoiceListResponse, error) {
	if query == "" {
		return nil, domain.NewValidationError("q", "search query is required")
	}
	list, err := uc.invoiceRepo.Search(query, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toInvoiceResponse(inv, nil))
	}
	return &dto.InvoiceListResponse{Items: items, Page: dto.PageResponse{Limit: limit}}, nil
}

// UpdateHeader applies header fields under the invoice row lock. The company
// reference, number and totals are untouchable; the customer may change but
// must belong to the same company.
func (uc *InvoiceUseCase) UpdateHeader(ctx context.Context, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	var out *dto.InvoiceResponse
	err := uc.txRunner.Run(ctx, func(tx ports.RepoSet) error {
		inv, err := tx.Invoices.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if in.CustomerID != nil && *in.CustomerID != inv.CustomerID {
			customer, err := tx.Customers.GetByID(*in.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return domain.ErrNotFound
			}
			if customer.CompanyID != inv.CompanyID {
				return domain.ErrForbidden
			}
			inv.CustomerID = *in.CustomerID
		}
		if in.Date != nil {
			d, err := time.ParseInLocation(dateLayout, *in.Date, time.Local)
			if err != nil {
				return domain.NewValidationError("invoice_date", "expected YYYY-MM-DD")
			}
			inv.Date = d
		}
		if in.PODate != nil {
			if *in.PODate == "" {
				inv.PODate = nil
			} else {
				d, err := time.ParseInLocation(dateLayout, *in.PODate, time.Local)
				if err != nil {
					return domain.NewValidationError("po_date", "expected YYYY-MM-DD")
				}
				inv.PODate = &d
			}
		}
		if in.PONumber != nil {
			inv.PONumber = *in.PONumber
		}
		if in.PaymentMode != nil {
			inv.PaymentMode = *in.PaymentMode
		}
		if in.Transport != nil {
			inv.Transport = *in.Transport
		}
		if in.DispatchFrom != nil {
			inv.DispatchFrom = *in.DispatchFrom
		}
		inv.UpdatedAt = time.Now()
		if err := inv.Validate(); err != nil {
			return err
		}
		if err := tx.Invoices.UpdateHeader(inv); err != nil {
			return err
		}
		items, err := tx.Invoices.ListItems(id)
		if err != nil {
			return err
		}
		out = toInvoiceResponse(inv, items)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the invoice and its items in one transaction.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(tx ports.RepoSet) error {
		inv, err := tx.Invoices.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		// Delete cascades to items in the repository.
		return tx.Invoices.Delete(id)
	})
}

// AddItem appends a line to a draft invoice and recomputes totals, all under
// the invoice row lock.
func (uc *InvoiceUseCase) AddItem(ctx context.Context, invoiceID string, in dto.InvoiceItemRequest) (*dto.InvoiceResponse, error) {
	return uc.mutateItems(ctx, invoiceID, func(tx ports.RepoSet, inv *entity.Invoice) error {
		item, err := resolveItem(tx.Products, inv.CompanyID, in)
		if err != nil {
			return err
		}
		count, err := tx.Invoices.CountItems(invoiceID)
		if err != nil {
			return err
		}
		item.InvoiceID = invoiceID
		item.Position = count
		return tx.Invoices.CreateItem(item)
	})
}

// UpdateItem replaces a line's editable fields and recomputes totals.
func (uc *InvoiceUseCase) UpdateItem(ctx context.Context, invoiceID, itemID string, in dto.InvoiceItemRequest) (*dto.InvoiceResponse, error) {
	return uc.mutateItems(ctx, invoiceID, func(tx ports.RepoSet, inv *entity.Invoice) error {
		existing, err := tx.Invoices.GetItem(itemID)
		if err != nil {
			return err
		}
		if existing == nil || existing.InvoiceID != invoiceID {
			return domain.ErrNotFound
		}
		replacement, err := resolveItem(tx.Products, inv.CompanyID, in)
		if err != nil {
			return err
		}
		replacement.ID = existing.ID
		replacement.InvoiceID = invoiceID
		replacement.Position = existing.Position
		replacement.CreatedAt = existing.CreatedAt
		return tx.Invoices.UpdateItem(replacement)
	})
}

// DeleteItem removes a line and recomputes totals.
func (uc *InvoiceUseCase) DeleteItem(ctx context.Context, invoiceID, itemID string) (*dto.InvoiceResponse, error) {
	return uc.mutateItems(ctx, invoiceID, func(tx ports.RepoSet, inv *entity.Invoice) error {
		existing, err := tx.Invoices.GetItem(itemID)
		if err != nil {
			return err
		}
		if existing == nil || existing.InvoiceID != invoiceID {
			return domain.ErrNotFound
		}
		return tx.Invoices.DeleteItem(itemID)
	})
}

// Recalculate recomputes totals from the current items under the row lock.
// Calling it on an unchanged invoice is a no-op by construction.
func (uc *InvoiceUseCase) Recalculate(ctx context.Context, invoiceID string) (*dto.InvoiceResponse, error) {
	var out *dto.InvoiceResponse
	err := uc.txRunner.Run(ctx, func(tx ports.RepoSet) error {
		inv, err := tx.Invoices.GetByIDForUpdate(invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		items, err := tx.Invoices.ListItems(invoiceID)
		if err != nil {
			return err
		}
		if err := computeTotals(inv, items); err != nil {
			return err
		}
		inv.UpdatedAt = time.Now()
		if err := tx.Invoices.UpdateTotals(inv); err != nil {
			return err
		}
		out = toInvoiceResponse(inv, items)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// mutateItems is the shared skeleton for item mutations: lock the invoice,
// refuse unless it is still a draft, apply the mutation, recompute and
// persist totals. One transaction, so a failure anywhere leaves nothing.
func (uc *InvoiceUseCase) mutateItems(
	ctx context.Context,
	invoiceID string,
	mutate func(tx ports.RepoSet, inv *entity.Invoice) error,
) (*dto.InvoiceResponse, error) {
	var out *dto.InvoiceResponse
	err := uc.txRunner.Run(ctx, func(tx ports.RepoSet) error {
		inv, err := tx.Invoices.GetByIDForUpdate(invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if err := corebilling.GuardItemMutation(inv.Status); err != nil {
			return err
		}
		if err := mutate(tx, inv); err != nil {
			return err
		}
		items, err := tx.Invoices.ListItems(invoiceID)
		if err != nil {
			return err
		}
		if err := computeTotals(inv, items); err != nil {
			return err
		}
		inv.UpdatedAt = time.Now()
		if err := tx.Invoices.UpdateTotals(inv); err != nil {
			return err
		}
		out = toInvoiceResponse(inv, items)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus applies a workflow transition under the invoice row lock.
// With override (admin only, enforced at the boundary) the transition table
// is bypassed and any valid status may be set.
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, invoiceID string, in dto.UpdateInvoiceStatusRequest) (*dto.InvoiceResponse, error) {
	if !entity.ValidStatus(in.Status) {
		return nil, domain.NewValidationError("status", "invalid status")
	}
	var out *dto.InvoiceResponse
	err := uc.txRunner.Run(ctx, func(tx ports.RepoSet) error {
		inv, err := tx.Invoices.GetByIDForUpdate(invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		newStatus := in.Status
		if !in.Override {
			count, err := tx.Invoices.CountItems(invoiceID)
			if err != nil {
				return err
			}
			newStatus, err = corebilling.Transition(inv.Status, in.Status, count)
			if err != nil {
				return err
			}
		}
		if err := tx.Invoices.UpdateStatus(invoiceID, newStatus); err != nil {
			return err
		}
		inv.Status = newStatus
		inv.UpdatedAt = time.Now()
		items, err := tx.Invoices.ListItems(invoiceID)
		if err != nil {
			return err
		}
		out = toInvoiceResponse(inv, items)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Duplicate creates a fresh DRAFT copy of an invoice with a new sequence
// number and today's date.
func (uc *InvoiceUseCase) Duplicate(ctx context.Context, invoiceID string) (*dto.InvoiceResponse, error) {
	src, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, domain.ErrNotFound
	}
	srcItems, err := uc.invoiceRepo.ListItems(invoiceID)
	if err != nil {
		return nil, err
	}

	in := dto.CreateInvoiceRequest{
		CompanyID:    src.CompanyID,
		CustomerID:   src.CustomerID,
		PONumber:     src.PONumber,
		PaymentMode:  src.PaymentMode,
		Transport:    src.Transport,
		DispatchFrom: src.DispatchFrom,
	}
	if src.PODate != nil {
		in.PODate = src.PODate.Format(dateLayout)
	}
	for _, it := range srcItems {
		in.Items = append(in.Items, dto.InvoiceItemRequest{
			ProductID:       it.ProductID,
			Description:     it.Description,
			Quantity:        it.Quantity,
			Unit:            it.Unit,
			Rate:            it.Rate,
			DiscountPercent: it.DiscountPercent,
		})
	}
	return uc.Create(ctx, in)
}

// NextNumber previews the next invoice number for a company without
// allocating it.
func (uc *InvoiceUseCase) NextNumber(ctx context.Context, companyID string) (*dto.NextNumberResponse, error) {
	if companyID == "" {
		return nil, domain.NewValidationError("company_id", "company is required")
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	next, err := uc.seqRepo.Peek(companyID)
	if err != nil {
		return nil, err
	}
	return &dto.NextNumberResponse{
		CompanyID: companyID,
		Number:    entity.FormatNumber(time.Now().Year(), next),
	}, nil
}

// Stats returns aggregate invoice figures.
func (uc *InvoiceUseCase) Stats(ctx context.Context) (*dto.InvoiceStatsResponse, error) {
	s, err := uc.invoiceRepo.Stats()
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceStatsResponse{
		Total:            s.Total,
		ByStatus:         s.ByStatus,
		TotalInvoiced:    s.TotalInvoiced,
		TotalPaid:        s.TotalPaid,
		TotalOutstanding: s.TotalOutstanding,
	}, nil
}

func toInvoiceResponse(inv *entity.Invoice, items []*entity.InvoiceItem) *dto.InvoiceResponse {
	if inv == nil {
		return nil
	}
	out := &dto.InvoiceResponse{
		ID:           inv.ID,
		CompanyID:    inv.CompanyID,
		CustomerID:   inv.CustomerID,
		Number:       inv.Number,
		Date:         inv.Date.Format(dateLayout),
		PONumber:     inv.PONumber,
		PaymentMode:  inv.PaymentMode,
		Transport:    inv.Transport,
		DispatchFrom: inv.DispatchFrom,
		Status:       inv.Status,
		Subtotal:     inv.Subtotal,
		GSTAmount:    inv.GSTAmount,
		TotalAmount:  inv.TotalAmount,
		GSTRate:      inv.GSTRate,
		Items:        make([]dto.InvoiceItemResponse, 0, len(items)),
		CreatedAt:    inv.CreatedAt,
		UpdatedAt:    inv.UpdatedAt,
	}
	if inv.PODate != nil {
		out.PODate = inv.PODate.Format(dateLayout)
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.InvoiceItemResponse{
			ID:              it.ID,
			InvoiceID:       it.InvoiceID,
			ProductID:       it.ProductID,
			Description:     it.Description,
			Quantity:        it.Quantity,
			Unit:            it.Unit,
			Rate:            it.Rate,
			DiscountPercent: it.DiscountPercent,
			Amount:          it.Amount,
		})
	}
	return out
}
