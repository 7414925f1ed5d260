package settlement_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sepatuhub/pos-api/internal/application/dto"
	"github.com/sepatuhub/pos-api/internal/application/settlement"
	"github.com/sepatuhub/pos-api/internal/domain"
	"github.com/sepatuhub/pos-api/internal/domain/entity"
	"github.com/sepatuhub/pos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// El fakeRunner clona todo el estado antes de ejecutar la función y lo
// restaura si falla: así los tests verifican la atomicidad real del motor
// (una línea sin stock revierte la venta completa).
// ──────────────────────────────────────────────────────────────────────────────

type store struct {
	products map[string]*entity.Product
	sizes    map[string]*entity.ProductSize
	txns     map[string]*entity.Transaction
	items    []entity.TransactionItem
	audits   []*entity.AuditLog
}

func newStore() *store {
	return &store{
		products: map[string]*entity.Product{},
		sizes:    map[string]*entity.ProductSize{},
		txns:     map[string]*entity.Transaction{},
	}
}

func (s *store) clone() *store {
	c := newStore()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, ps := range s.sizes {
		cps := *ps
		c.sizes[id] = &cps
	}
	for id, txn := range s.txns {
		ct := *txn
		c.txns[id] = &ct
	}
	c.items = append(c.items, s.items...)
	c.audits = append(c.audits, s.audits...)
	return c
}

func (s *store) restore(from *store) {
	s.products = from.products
	s.sizes = from.sizes
	s.txns = from.txns
	s.items = from.items
	s.audits = from.audits
}

type productRepo struct{ s *store }

func (r *productRepo) Create(p *entity.Product) error { cp := *p; r.s.products[p.ID] = &cp; return nil }

func (r *productRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *productRepo) GetByNama(string) (*entity.Product, error) { return nil, nil }

func (r *productRepo) List(string, int, int) ([]*entity.Product, int, error) { return nil, 0, nil }

func (r *productRepo) Update(*entity.Product) error { return nil }

func (r *productRepo) UpdateStock(productID string, stock int) error {
	p, ok := r.s.products[productID]
	if !ok {
		return &domain.NotFoundError{Entity: "Product", ID: productID}
	}
	p.Stock = stock
	return nil
}

func (r *productRepo) Delete(string) error { return nil }

func (r *productRepo) ListIDs() ([]string, error) { return nil, nil }

func (r *productRepo) ListLowStock() ([]*entity.Product, error) { return nil, nil }

func (r *productRepo) ListOutOfStock() ([]*entity.Product, error) { return nil, nil }

func (r *productRepo) ListRestockedWithAlerts() ([]*entity.Product, error) { return nil, nil }

type psRepo struct{ s *store }

func (r *psRepo) Create(ps *entity.ProductSize) error { cps := *ps; r.s.sizes[ps.ID] = &cps; return nil }

func (r *psRepo) GetByID(id string) (*entity.ProductSize, error) {
	ps, ok := r.s.sizes[id]
	if !ok {
		return nil, nil
	}
	cps := *ps
	return &cps, nil
}

func (r *psRepo) GetByProductAndSize(productID, sizeID string) (*entity.ProductSize, error) {
	for _, ps := range r.s.sizes {
		if ps.ProductID == productID && ps.SizeID == sizeID {
			cps := *ps
			return &cps, nil
		}
	}
	return nil, nil
}

func (r *psRepo) GetForUpdate(productID, sizeID string) (*entity.ProductSize, error) {
	return r.GetByProductAndSize(productID, sizeID)
}

func (r *psRepo) GetForUpdateByID(id string) (*entity.ProductSize, error) { return r.GetByID(id) }

func (r *psRepo) UpdateQuantity(id string, quantity int) error {
	ps, ok := r.s.sizes[id]
	if !ok {
		return &domain.NotFoundError{Entity: "ProductSize", ID: id}
	}
	ps.Quantity = quantity
	return nil
}

func (r *psRepo) Delete(id string) error { delete(r.s.sizes, id); return nil }

func (r *psRepo) ListByProduct(productID string) ([]*entity.ProductSize, error) {
	var out []*entity.ProductSize
	for _, ps := range r.s.sizes {
		if ps.ProductID == productID {
			cps := *ps
			out = append(out, &cps)
		}
	}
	return out, nil
}

func (r *psRepo) List() ([]*entity.ProductSize, error) { return nil, nil }

func (r *psRepo) SumByProduct(productID string) (int, error) {
	total := 0
	for _, ps := range r.s.sizes {
		if ps.ProductID == productID {
			total += ps.Quantity
		}
	}
	return total, nil
}

type auditRepo struct{ s *store }

func (r *auditRepo) Create(log *entity.AuditLog) error {
	cl := *log
	r.s.audits = append(r.s.audits, &cl)
	return nil
}

func (r *auditRepo) List(string, int, int) ([]*entity.AuditLog, int, error) {
	return r.s.audits, len(r.s.audits), nil
}

type txnRepo struct{ s *store }

func (r *txnRepo) Create(txn *entity.Transaction) error {
	ct := *txn
	ct.Items = nil
	r.s.txns[txn.ID] = &ct
	return nil
}

func (r *txnRepo) CreateItems(items []entity.TransactionItem) error {
	r.s.items = append(r.s.items, items...)
	return nil
}

func (r *txnRepo) GetByID(id string) (*entity.Transaction, error) {
	txn, ok := r.s.txns[id]
	if !ok {
		return nil, nil
	}
	ct := *txn
	ct.Items = nil
	return &ct, nil
}

func (r *txnRepo) GetForUpdate(id string) (*entity.Transaction, error) { return r.GetByID(id) }

func (r *txnRepo) ListItems(transactionID string) ([]entity.TransactionItem, error) {
	var out []entity.TransactionItem
	for _, it := range r.s.items {
		if it.TransactionID == transactionID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *txnRepo) List(limit, offset int) ([]*entity.Transaction, int, error) {
	var out []*entity.Transaction
	for _, txn := range r.s.txns {
		ct := *txn
		out = append(out, &ct)
	}
	return out, len(out), nil
}

func (r *txnRepo) UpdateHeader(txn *entity.Transaction) error {
	existing, ok := r.s.txns[txn.ID]
	if !ok {
		return &domain.NotFoundError{Entity: "Transaction", ID: txn.ID}
	}
	ct := *txn
	ct.Items = nil
	ct.CreatedAt = existing.CreatedAt
	r.s.txns[txn.ID] = &ct
	return nil
}

func (r *txnRepo) DeleteItems(transactionID string) error {
	kept := r.s.items[:0:0]
	for _, it := range r.s.items {
		if it.TransactionID != transactionID {
			kept = append(kept, it)
		}
	}
	r.s.items = kept
	return nil
}

func (r *txnRepo) Delete(id string) error { delete(r.s.txns, id); return nil }

type fakeRunner struct{ s *store }

func (f *fakeRunner) RunSettlement(_ context.Context, fn func(
	txnRepo repository.TransactionRepository,
	psRepo repository.ProductSizeRepository,
	productRepo repository.ProductRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	snapshot := f.s.clone()
	err := fn(&txnRepo{f.s}, &psRepo{f.s}, &productRepo{f.s}, &auditRepo{f.s})
	if err != nil {
		f.s.restore(snapshot)
	}
	return err
}

// lockedRunner modela el FOR UPDATE de la fila de stock: dos liquidaciones
// sobre la misma variante se serializan, la segunda ve lo que la primera
// escribió. La misma exclusión cubre las lecturas fuera de transacción.
type lockedRunner struct {
	mu    *sync.Mutex
	inner *fakeRunner
}

func (l *lockedRunner) RunSettlement(ctx context.Context, fn func(
	txnRepo repository.TransactionRepository,
	psRepo repository.ProductSizeRepository,
	productRepo repository.ProductRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.RunSettlement(ctx, fn)
}

type lockedTxnRepo struct {
	mu    *sync.Mutex
	inner repository.TransactionRepository
}

func (l *lockedTxnRepo) Create(txn *entity.Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Create(txn)
}

func (l *lockedTxnRepo) CreateItems(items []entity.TransactionItem) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.CreateItems(items)
}

func (l *lockedTxnRepo) GetByID(id string) (*entity.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.GetByID(id)
}

func (l *lockedTxnRepo) GetForUpdate(id string) (*entity.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.GetForUpdate(id)
}

func (l *lockedTxnRepo) ListItems(transactionID string) ([]entity.TransactionItem, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.ListItems(transactionID)
}

func (l *lockedTxnRepo) List(limit, offset int) ([]*entity.Transaction, int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.List(limit, offset)
}

func (l *lockedTxnRepo) UpdateHeader(txn *entity.Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.UpdateHeader(txn)
}

func (l *lockedTxnRepo) DeleteItems(transactionID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.DeleteItems(transactionID)
}

func (l *lockedTxnRepo) Delete(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Delete(id)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	kasirID    = "user-kasir"
	prodNikeID = "prod-nike"
	prodVansID = "prod-vans"
)

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func seed() *store {
	s := newStore()
	s.products[prodNikeID] = &entity.Product{
		ID: prodNikeID, Nama: "Nike Air", Stock: 10,
		HargaJual: dec("500000"), HargaBeli: dec("300000"),
	}
	s.products[prodVansID] = &entity.Product{
		ID: prodVansID, Nama: "Vans Old Skool", Stock: 3,
		HargaJual: dec("400000"), HargaBeli: dec("250000"),
	}
	s.sizes["ps-nike-40"] = &entity.ProductSize{ID: "ps-nike-40", ProductID: prodNikeID, SizeID: "size-40", Quantity: 10, SizeLabel: "40"}
	s.sizes["ps-vans-42"] = &entity.ProductSize{ID: "ps-vans-42", ProductID: prodVansID, SizeID: "size-42", Quantity: 3, SizeLabel: "42"}
	return s
}

func newEngine(s *store) *settlement.UseCase {
	return settlement.New(&fakeRunner{s}, &txnRepo{s}, nil)
}

func saleRequest() dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items: []dto.SaleItemRequest{
			{ProductID: prodNikeID, SizeID: "size-40", Quantity: 2},
			{ProductID: prodVansID, SizeID: "size-42", Quantity: 1},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateSale
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_DebitaSnapshoteaYTotaliza(t *testing.T) {
	s := seed()
	uc := newEngine(s)

	sale, err := uc.CreateSale(context.Background(), kasirID, saleRequest())
	require.NoError(t, err)

	// Stock debitado y agregados recalculados.
	assert.Equal(t, 8, s.sizes["ps-nike-40"].Quantity)
	assert.Equal(t, 2, s.sizes["ps-vans-42"].Quantity)
	assert.Equal(t, 8, s.products[prodNikeID].Stock)
	assert.Equal(t, 2, s.products[prodVansID].Stock)

	// Totales: 2*500000 + 1*400000 = 1.400.000; profit 2*200000 + 1*150000 = 550.000.
	assert.True(t, dec("1400000").Equal(sale.TotalAmount), "total: %s", sale.TotalAmount)
	assert.True(t, dec("550000").Equal(sale.Profit), "profit: %s", sale.Profit)

	// Precios snapshoteados del producto, nunca del request.
	require.Len(t, sale.Items, 2)
	assert.True(t, dec("500000").Equal(sale.Items[0].HargaJual))
	assert.True(t, dec("300000").Equal(sale.Items[0].HargaBeli))

	// Auditoría: un UPDATE de stock por línea + un CREATE de la venta.
	require.Len(t, s.audits, 3)
	assert.Equal(t, "Transaction", s.audits[2].Entity)
	assert.Equal(t, entity.QuantityChange{Before: 0, After: 3}, s.audits[2].Changes)
}

func TestCreateSale_DescuentoPlanoSeRestaUnaVez(t *testing.T) {
	s := seed()
	uc := newEngine(s)

	req := saleRequest()
	req.Diskon = dec("100000")
	req.Items[0].Diskon = dec("50000")

	sale, err := uc.CreateSale(context.Background(), kasirID, req)
	require.NoError(t, err)

	// total = (1.000.000 - 50.000) + 400.000 - 100.000 = 1.250.000
	assert.True(t, dec("1250000").Equal(sale.TotalAmount), "total: %s", sale.TotalAmount)
	// profit = (400.000 - 50.000) + 150.000 - 100.000 = 400.000
	assert.True(t, dec("400000").Equal(sale.Profit), "profit: %s", sale.Profit)
}

func TestCreateSale_SinStockRevierteTodo(t *testing.T) {
	s := seed()
	uc := newEngine(s)

	req := saleRequest()
	req.Items[1].Quantity = 4 // Vans solo tiene 3

	_, err := uc.CreateSale(context.Background(), kasirID, req)
	require.Error(t, err)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "Vans Old Skool", insufficient.ProductName)
	assert.Equal(t, 3, insufficient.Available)
	assert.Equal(t, 4, insufficient.Requested)

	// La primera línea (Nike, con stock de sobra) también se revirtió.
	assert.Equal(t, 10, s.sizes["ps-nike-40"].Quantity)
	assert.Equal(t, 3, s.sizes["ps-vans-42"].Quantity)
	assert.Empty(t, s.txns, "ninguna venta debe persistirse")
	assert.Empty(t, s.items)
	assert.Empty(t, s.audits)
}

func TestCreateSale_ValidacionDeEntrada(t *testing.T) {
	uc := newEngine(seed())
	ctx := context.Background()

	_, err := uc.CreateSale(ctx, kasirID, dto.CreateSaleRequest{PaymentMethod: entity.PaymentCash})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "venta sin líneas")

	req := saleRequest()
	req.Diskon = dec("-1")
	_, err = uc.CreateSale(ctx, kasirID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "diskon negativo")

	req = saleRequest()
	req.Items[0].Quantity = 0
	_, err = uc.CreateSale(ctx, kasirID, req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")
}

func TestCreateSale_SnapshotInmuneACambiosPosteriores(t *testing.T) {
	s := seed()
	uc := newEngine(s)

	sale, err := uc.CreateSale(context.Background(), kasirID, saleRequest())
	require.NoError(t, err)

	// El producto sube de precio después de la venta.
	s.products[prodNikeID].HargaJual = dec("900000")

	reloaded, err := uc.GetByID(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.True(t, dec("500000").Equal(reloaded.Items[0].HargaJual),
		"los ítems históricos conservan el precio del momento de la venta")
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateSale
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateSale_ReversionPermiteReusarElStockPropio(t *testing.T) {
	s := seed()
	uc := newEngine(s)

	req := dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.SaleItemRequest{{ProductID: prodNikeID, SizeID: "size-40", Quantity: 3}},
	}
	sale, err := uc.CreateSale(context.Background(), kasirID, req)
	require.NoError(t, err)
	require.Equal(t, 7, s.sizes["ps-nike-40"].Quantity)

	// Nueva composición: 9 unidades. Solo quedan 7 sueltas, pero la reversión
	// de las 3 originales libera 10 dentro de la misma transacción.
	upd := dto.UpdateSaleRequest{
		PaymentMethod: entity.PaymentTransfer,
		Items:         []dto.SaleItemRequest{{ProductID: prodNikeID, SizeID: "size-40", Quantity: 9}},
	}
	updated, err := uc.UpdateSale(context.Background(), kasirID, sale.ID, upd)
	require.NoError(t, err)

	assert.Equal(t, 1, s.sizes["ps-nike-40"].Quantity)
	assert.Equal(t, 1, s.products[prodNikeID].Stock)
	assert.Equal(t, entity.PaymentTransfer, updated.PaymentMethod)
	assert.True(t, dec("4500000").Equal(updated.TotalAmount), "total: %s", updated.TotalAmount)
}

func TestUpdateSale_ResnapshoteaPreciosVigentes(t *testing.T) {
	s := seed()
	uc := newEngine(s)

	sale, err := uc.CreateSale(context.Background(), kasirID, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.SaleItemRequest{{ProductID: prodNikeID, SizeID: "size-40", Quantity: 1}},
	})
	require.NoError(t, err)

	// Cambia el precio del producto antes de la edición.
	s.products[prodNikeID].HargaJual = dec("600000")

	updated, err := uc.UpdateSale(context.Background(), kasirID, sale.ID, dto.UpdateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.SaleItemRequest{{ProductID: prodNikeID, SizeID: "size-40", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.True(t, dec("600000").Equal(updated.Items[0].HargaJual),
		"la edición re-snapshotea el precio vigente")
}

func TestUpdateSale_SinStockParaNuevaComposicionDejaTodoIntacto(t *testing.T) {
	s := seed()
	uc := newEngine(s)

	sale, err := uc.CreateSale(context.Background(), kasirID, saleRequest())
	require.NoError(t, err)
	originalTotal := sale.TotalAmount

	// Pide más Vans de los que existen incluso tras revertir la venta (2+1=3 < 5).
	_, err = uc.UpdateSale(context.Background(), kasirID, sale.ID, dto.UpdateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.SaleItemRequest{{ProductID: prodVansID, SizeID: "size-42", Quantity: 5}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// La venta original sigue intacta, con su stock debitado.
	reloaded, err := uc.GetByID(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.True(t, originalTotal.Equal(reloaded.TotalAmount))
	require.Len(t, reloaded.Items, 2)
	assert.Equal(t, 8, s.sizes["ps-nike-40"].Quantity)
	assert.Equal(t, 2, s.sizes["ps-vans-42"].Quantity)
}

func TestUpdateSale_InexistenteNotFound(t *testing.T) {
	uc := newEngine(seed())

	_, err := uc.UpdateSale(context.Background(), kasirID, "txn-fantasma", dto.UpdateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.SaleItemRequest{{ProductID: prodNikeID, SizeID: "size-40", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// DeleteSale
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteSale_RestauraElStockDebitado(t *testing.T) {
	s := seed()
	uc := newEngine(s)

	sale, err := uc.CreateSale(context.Background(), kasirID, saleRequest())
	require.NoError(t, err)
	require.Equal(t, 8, s.sizes["ps-nike-40"].Quantity)

	err = uc.DeleteSale(context.Background(), kasirID, sale.ID)
	require.NoError(t, err)

	assert.Equal(t, 10, s.sizes["ps-nike-40"].Quantity)
	assert.Equal(t, 3, s.sizes["ps-vans-42"].Quantity)
	assert.Equal(t, 10, s.products[prodNikeID].Stock)
	assert.Empty(t, s.txns)
	assert.Empty(t, s.items)

	// Último audit: DELETE de la cabecera con las unidades restauradas.
	last := s.audits[len(s.audits)-1]
	assert.Equal(t, entity.AuditActionDelete, last.Action)
	assert.Equal(t, "Transaction", last.Entity)
	assert.Equal(t, entity.QuantityChange{Before: 3, After: 0}, last.Changes)
}

func TestDeleteSale_InexistenteNotFound(t *testing.T) {
	uc := newEngine(seed())
	err := uc.DeleteSale(context.Background(), kasirID, "txn-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// Dos ventas simultáneas de 3 unidades sobre una variante con 5: el lock de
// fila hace que exactamente una gane y la otra falle por stock insuficiente.
func TestCreateSale_VentasConcurrentesSoloUnaGana(t *testing.T) {
	s := newStore()
	s.products[prodNikeID] = &entity.Product{
		ID: prodNikeID, Nama: "Nike Air", Stock: 5,
		HargaJual: dec("500000"), HargaBeli: dec("300000"),
	}
	s.sizes["ps-nike-40"] = &entity.ProductSize{ID: "ps-nike-40", ProductID: prodNikeID, SizeID: "size-40", Quantity: 5, SizeLabel: "40"}

	var mu sync.Mutex
	uc := settlement.New(
		&lockedRunner{mu: &mu, inner: &fakeRunner{s}},
		&lockedTxnRepo{mu: &mu, inner: &txnRepo{s}},
		nil,
	)

	req := dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentCash,
		Items:         []dto.SaleItemRequest{{ProductID: prodNikeID, SizeID: "size-40", Quantity: 3}},
	}

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.CreateSale(context.Background(), kasirID, req)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var wins, losses int
	for err := range errs {
		if err == nil {
			wins++
			continue
		}
		losses++
		var insufficient *domain.InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, 2, insufficient.Available, "la perdedora ve el stock ya debitado")
		assert.Equal(t, 3, insufficient.Requested)
	}
	assert.Equal(t, 1, wins, "exactamente una venta debe liquidarse")
	assert.Equal(t, 1, losses)

	assert.Equal(t, 2, s.sizes["ps-nike-40"].Quantity)
	assert.Equal(t, 2, s.products[prodNikeID].Stock)
	assert.Len(t, s.txns, 1)
}
