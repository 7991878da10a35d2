package billing_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicedesk/invoicedesk-api/internal/application/billing"
	"github.com/invoicedesk/invoicedesk-api/internal/application/dto"
	"github.com/invoicedesk/invoicedesk-api/internal/application/ports"
	"github.com/invoicedesk/invoicedesk-api/internal/domain"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/entity"
	"github.com/invoicedesk/invoicedesk-api/internal/domain/repository"
)

// ── in-memory fakes ──────────────────────────────────────────────────────────

// memStore is the shared backing state of all fakes. One mutex guards
// everything; it stands in for the row locks of the real database.
type memStore struct {
	mu        sync.Mutex
	companies map[string]entity.Company
	customers map[string]entity.Customer
	products  map[string]entity.Product
	invoices  map[string]entity.Invoice
	items     map[string]entity.InvoiceItem
	seqs      map[string]int64
}

func newMemStore() *memStore {
	return &memStore{
		companies: make(map[string]entity.Company),
		customers: make(map[string]entity.Customer),
		products:  make(map[string]entity.Product),
		invoices:  make(map[string]entity.Invoice),
		items:     make(map[string]entity.InvoiceItem),
		seqs:      make(map[string]int64),
	}
}

type fakeCompanyRepo struct {
	repository.CompanyRepository
	s *memStore
}

func (r *fakeCompanyRepo) GetByID(id string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.companies[id]; ok {
		return &c, nil
	}
	return nil, nil
}

type fakeCustomerRepo struct {
	repository.CustomerRepository
	s *memStore
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.customers[id]; ok {
		return &c, nil
	}
	return nil, nil
}

type fakeProductRepo struct {
	repository.ProductRepository
	s *memStore
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

type fakeInvoiceRepo struct {
	repository.InvoiceRepository
	s *memStore
}

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.invoices[inv.ID] = *inv
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if inv, ok := r.s.invoices[id]; ok {
		return &inv, nil
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) GetByIDForUpdate(id string) (*entity.Invoice, error) {
	return r.GetByID(id)
}

func (r *fakeInvoiceRepo) UpdateHeader(inv *entity.Invoice) error { return r.put(inv) }
func (r *fakeInvoiceRepo) UpdateTotals(inv *entity.Invoice) error { return r.put(inv) }

func (r *fakeInvoiceRepo) put(inv *entity.Invoice) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.invoices[inv.ID] = *inv
	return nil
}

func (r *fakeInvoiceRepo) UpdateStatus(id, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv := r.s.invoices[id]
	inv.Status = status
	r.s.invoices[id] = inv
	return nil
}

func (r *fakeInvoiceRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.invoices, id)
	for itemID, it := range r.s.items {
		if it.InvoiceID == id {
			delete(r.s.items, itemID)
		}
	}
	return nil
}

func (r *fakeInvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.items[item.ID] = *item
	return nil
}

func (r *fakeInvoiceRepo) GetItem(itemID string) (*entity.InvoiceItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if it, ok := r.s.items[itemID]; ok {
		return &it, nil
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) ListItems(invoiceID string) ([]*entity.InvoiceItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.InvoiceItem
	for _, it := range r.s.items {
		if it.InvoiceID == invoiceID {
			cp := it
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Position < list[j].Position })
	return list, nil
}

func (r *fakeInvoiceRepo) CountItems(invoiceID string) (int, error) {
	items, _ := r.ListItems(invoiceID)
	return len(items), nil
}

func (r *fakeInvoiceRepo) UpdateItem(item *entity.InvoiceItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.items[item.ID] = *item
	return nil
}

func (r *fakeInvoiceRepo) DeleteItem(itemID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.items, itemID)
	return nil
}

type fakeSeqRepo struct {
	s *memStore
}

func (r *fakeSeqRepo) NextSequence(companyID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.seqs[companyID]++
	return r.s.seqs[companyID], nil
}

func (r *fakeSeqRepo) Peek(companyID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.seqs[companyID] + 1, nil
}

// fakeTxRunner runs the callback directly against the shared fakes. There is
// no rollback; tests only exercise happy paths and pre-persistence failures.
type fakeTxRunner struct {
	set ports.RepoSet
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(tx ports.RepoSet) error) error {
	return fn(r.set)
}

// ── fixture ──────────────────────────────────────────────────────────────────

type fixture struct {
	store *memStore
	uc    *billing.InvoiceUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := newMemStore()
	s.companies["co1"] = entity.Company{ID: "co1", Name: "Acme Traders"}
	s.companies["co2"] = entity.Company{ID: "co2", Name: "Other Corp"}
	s.customers["cu1"] = entity.Customer{ID: "cu1", CompanyID: "co1", Name: "Buyer & Co"}
	s.customers["cu2"] = entity.Customer{ID: "cu2", CompanyID: "co2", Name: "Foreign Buyer"}
	s.products["p1"] = entity.Product{
		ID: "p1", CompanyID: "co1", Name: "Steel Rod", Category: "Steel",
		Unit: "KG", Rate: decimal.NewFromInt(100), HSNCode: "7214",
	}

	companies := &fakeCompanyRepo{s: s}
	customers := &fakeCustomerRepo{s: s}
	products := &fakeProductRepo{s: s}
	invoices := &fakeInvoiceRepo{s: s}
	seqs := &fakeSeqRepo{s: s}
	tx := &fakeTxRunner{set: ports.RepoSet{
		Companies: companies,
		Customers: customers,
		Products:  products,
		Invoices:  invoices,
		Sequences: seqs,
	}}

	uc := billing.NewInvoiceUseCase(
		tx, invoices, companies, customers, products, seqs,
		billing.Config{GSTRate: decimal.NewFromInt(18)},
	)
	return &fixture{store: s, uc: uc}
}

func dec2(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func draftRequest() dto.CreateInvoiceRequest {
	return dto.CreateInvoiceRequest{
		CompanyID:  "co1",
		CustomerID: "cu1",
		Items: []dto.InvoiceItemRequest{
			{Description: "Steel Rod 12mm", Quantity: dec2("10"), Unit: "KG", Rate: dec2("100"), DiscountPercent: dec2("10")},
			{Description: "Binding Wire", Quantity: dec2("2"), Unit: "KG", Rate: dec2("50")},
		},
	}
}

// ── tests ────────────────────────────────────────────────────────────────────

func TestCreateInvoice(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Create(context.Background(), draftRequest())
	require.NoError(t, err)

	assert.Equal(t, entity.StatusDraft, out.Status)
	assert.Equal(t, entity.FormatNumber(time.Now().Year(), 1), out.Number)
	assert.Equal(t, entity.DefaultPaymentMode, out.PaymentMode)
	assert.True(t, out.Subtotal.Equal(dec2("1000")), "subtotal %s", out.Subtotal)
	assert.True(t, out.GSTAmount.Equal(dec2("180")))
	assert.True(t, out.TotalAmount.Equal(dec2("1180")))
	require.Len(t, out.Items, 2)
	assert.True(t, out.Items[0].Amount.Equal(dec2("900")))
	assert.True(t, out.Items[1].Amount.Equal(dec2("100")))
}

func TestCreateInvoiceResolvesProductDefaults(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CompanyID:  "co1",
		CustomerID: "cu1",
		Items: []dto.InvoiceItemRequest{
			{ProductID: "p1", Quantity: dec2("3")},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Steel - Steel Rod", out.Items[0].Description)
	assert.Equal(t, "KG", out.Items[0].Unit)
	assert.True(t, out.Items[0].Rate.Equal(dec2("100")))
	assert.True(t, out.Items[0].Amount.Equal(dec2("300")))
}

func TestCreateInvoiceRejectsCrossCompanyCustomer(t *testing.T) {
	f := newFixture(t)

	in := draftRequest()
	in.CustomerID = "cu2" // belongs to co2
	_, err := f.uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateInvoiceRejectsFutureDate(t *testing.T) {
	f := newFixture(t)

	in := draftRequest()
	in.Date = time.Now().AddDate(0, 0, 2).Format("2006-01-02")
	_, err := f.uc.Create(context.Background(), in)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestConcurrentCreatesGetDistinctNumbers(t *testing.T) {
	f := newFixture(t)

	const n = 20
	var wg sync.WaitGroup
	numbers := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := f.uc.Create(context.Background(), draftRequest())
			if err == nil {
				numbers <- out.Number
			}
		}()
	}
	wg.Wait()
	close(numbers)

	seen := make(map[string]bool)
	count := 0
	for num := range numbers {
		assert.False(t, seen[num], "duplicate invoice number %s", num)
		seen[num] = true
		count++
	}
	assert.Equal(t, n, count)
}

func TestAddItemRecomputesTotals(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.Create(context.Background(), draftRequest())
	require.NoError(t, err)

	out, err := f.uc.AddItem(context.Background(), created.ID, dto.InvoiceItemRequest{
		Description: "Freight", Quantity: dec2("1"), Unit: "LOT", Rate: dec2("500"),
	})
	require.NoError(t, err)
	require.Len(t, out.Items, 3)
	assert.True(t, out.Subtotal.Equal(dec2("1500")))
	assert.True(t, out.TotalAmount.Equal(dec2("1770")))
}

func TestAddItemReadsProductInsideTransaction(t *testing.T) {
	// The tx-bound product repo sees the product; the pool-bound one does
	// not. Item mutations must resolve through the transaction's repo set.
	s := newMemStore()
	s.companies["co1"] = entity.Company{ID: "co1", Name: "Acme Traders"}
	s.customers["cu1"] = entity.Customer{ID: "cu1", CompanyID: "co1", Name: "Buyer & Co"}
	s.products["p1"] = entity.Product{
		ID: "p1", CompanyID: "co1", Name: "Steel Rod", Category: "Steel",
		Unit: "KG", Rate: decimal.NewFromInt(100), HSNCode: "7214",
	}

	companies := &fakeCompanyRepo{s: s}
	customers := &fakeCustomerRepo{s: s}
	invoices := &fakeInvoiceRepo{s: s}
	seqs := &fakeSeqRepo{s: s}
	tx := &fakeTxRunner{set: ports.RepoSet{
		Companies: companies,
		Customers: customers,
		Products:  &fakeProductRepo{s: s},
		Invoices:  invoices,
		Sequences: seqs,
	}}
	uc := billing.NewInvoiceUseCase(
		tx, invoices, companies, customers, &fakeProductRepo{s: newMemStore()}, seqs,
		billing.Config{GSTRate: decimal.NewFromInt(18)},
	)

	created, err := uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CompanyID:  "co1",
		CustomerID: "cu1",
		Items: []dto.InvoiceItemRequest{
			{Description: "Freight", Quantity: dec2("1"), Unit: "LOT", Rate: dec2("500")},
		},
	})
	require.NoError(t, err)

	out, err := uc.AddItem(context.Background(), created.ID, dto.InvoiceItemRequest{
		ProductID: "p1", Quantity: dec2("2"),
	})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Steel - Steel Rod", out.Items[1].Description)
	assert.True(t, out.Items[1].Rate.Equal(dec2("100")))
}

func TestItemMutationRefusedAfterSend(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.Create(context.Background(), draftRequest())
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(context.Background(), created.ID, dto.UpdateInvoiceStatusRequest{Status: entity.StatusSent})
	require.NoError(t, err)

	_, err = f.uc.AddItem(context.Background(), created.ID, dto.InvoiceItemRequest{
		Description: "Late addition", Quantity: dec2("1"), Unit: "PC", Rate: dec2("10"),
	})
	var ie *domain.ImmutableInvoiceError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, entity.StatusSent, ie.Status)

	itemID := created.Items[0].ID
	_, err = f.uc.DeleteItem(context.Background(), created.ID, itemID)
	assert.ErrorAs(t, err, &ie)
}

func TestStatusWorkflow(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.Create(context.Background(), draftRequest())
	require.NoError(t, err)

	// DRAFT -> PAID is illegal.
	_, err = f.uc.UpdateStatus(context.Background(), created.ID, dto.UpdateInvoiceStatusRequest{Status: entity.StatusPaid})
	var te *domain.InvalidTransitionError
	require.ErrorAs(t, err, &te)

	out, err := f.uc.UpdateStatus(context.Background(), created.ID, dto.UpdateInvoiceStatusRequest{Status: entity.StatusSent})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSent, out.Status)

	out, err = f.uc.UpdateStatus(context.Background(), created.ID, dto.UpdateInvoiceStatusRequest{Status: entity.StatusPaid})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaid, out.Status)
}

func TestEmptyInvoiceCannotLeaveDraft(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.Create(context.Background(), dto.CreateInvoiceRequest{
		CompanyID: "co1", CustomerID: "cu1",
	})
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(context.Background(), created.ID, dto.UpdateInvoiceStatusRequest{Status: entity.StatusSent})
	var ee *domain.EmptyInvoiceError
	assert.ErrorAs(t, err, &ee)
}

func TestStatusOverride(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.Create(context.Background(), draftRequest())
	require.NoError(t, err)

	// Within the workflow CANCELLED is unreachable...
	_, err = f.uc.UpdateStatus(context.Background(), created.ID, dto.UpdateInvoiceStatusRequest{Status: entity.StatusCancelled})
	require.Error(t, err)

	// ...but the administrative override may set it.
	out, err := f.uc.UpdateStatus(context.Background(), created.ID, dto.UpdateInvoiceStatusRequest{
		Status: entity.StatusCancelled, Override: true,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, out.Status)
}

func TestDuplicate(t *testing.T) {
	f := newFixture(t)
	src, err := f.uc.Create(context.Background(), draftRequest())
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(context.Background(), src.ID, dto.UpdateInvoiceStatusRequest{Status: entity.StatusSent})
	require.NoError(t, err)

	dup, err := f.uc.Duplicate(context.Background(), src.ID)
	require.NoError(t, err)

	assert.NotEqual(t, src.ID, dup.ID)
	assert.NotEqual(t, src.Number, dup.Number)
	assert.Equal(t, entity.StatusDraft, dup.Status)
	assert.True(t, dup.TotalAmount.Equal(src.TotalAmount))
	assert.Len(t, dup.Items, len(src.Items))
}

func TestNextNumberDoesNotAllocate(t *testing.T) {
	f := newFixture(t)

	first, err := f.uc.NextNumber(context.Background(), "co1")
	require.NoError(t, err)
	second, err := f.uc.NextNumber(context.Background(), "co1")
	require.NoError(t, err)
	assert.Equal(t, first.Number, second.Number)

	created, err := f.uc.Create(context.Background(), draftRequest())
	require.NoError(t, err)
	assert.Equal(t, first.Number, created.Number)
}

func TestUpdateHeaderKeepsCompanyAndTotals(t *testing.T) {
	f := newFixture(t)
	created, err := f.uc.Create(context.Background(), draftRequest())
	require.NoError(t, err)

	po := "PO-778"
	out, err := f.uc.UpdateHeader(context.Background(), created.ID, dto.UpdateInvoiceRequest{PONumber: &po})
	require.NoError(t, err)
	assert.Equal(t, "PO-778", out.PONumber)
	assert.Equal(t, created.CompanyID, out.CompanyID)
	assert.True(t, out.TotalAmount.Equal(created.TotalAmount))

	// Switching to a customer of another company is refused.
	foreign := "cu2"
	_, err = f.uc.UpdateHeader(context.Background(), created.ID, dto.UpdateInvoiceRequest{CustomerID: &foreign})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
