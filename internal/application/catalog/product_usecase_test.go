package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sepatuhub/pos-api/internal/application/catalog"
	"github.com/sepatuhub/pos-api/internal/application/dto"
	"github.com/sepatuhub/pos-api/internal/domain"
	"github.com/sepatuhub/pos-api/internal/domain/entity"
	"github.com/sepatuhub/pos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El runner clona el estado antes de ejecutar y lo restaura
// si fn falla, para que los tests verifiquen atomicidad real del alta.
// ──────────────────────────────────────────────────────────────────────────────

type catStore struct {
	products map[string]*entity.Product
	sizes    map[string]*entity.ProductSize
	audits   []*entity.AuditLog
}

func newCatStore() *catStore {
	return &catStore{products: map[string]*entity.Product{}, sizes: map[string]*entity.ProductSize{}}
}

func (s *catStore) clone() *catStore {
	c := newCatStore()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, ps := range s.sizes {
		cps := *ps
		c.sizes[id] = &cps
	}
	c.audits = append([]*entity.AuditLog(nil), s.audits...)
	return c
}

func (s *catStore) restore(from *catStore) {
	s.products = from.products
	s.sizes = from.sizes
	s.audits = from.audits
}

type catProductRepo struct{ s *catStore }

func (r *catProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *catProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *catProductRepo) GetByNama(nama string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.Nama == nama {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *catProductRepo) List(string, int, int) ([]*entity.Product, int, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		cp := *p
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (r *catProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *catProductRepo) UpdateStock(productID string, stock int) error {
	p, ok := r.s.products[productID]
	if !ok {
		return nil
	}
	p.Stock = stock
	return nil
}

func (r *catProductRepo) Delete(id string) error {
	delete(r.s.products, id)
	for psID, ps := range r.s.sizes {
		if ps.ProductID == id {
			delete(r.s.sizes, psID)
		}
	}
	return nil
}

func (r *catProductRepo) ListIDs() ([]string, error) {
	var out []string
	for id := range r.s.products {
		out = append(out, id)
	}
	return out, nil
}

func (r *catProductRepo) ListLowStock() ([]*entity.Product, error) { return nil, nil }

func (r *catProductRepo) ListOutOfStock() ([]*entity.Product, error) { return nil, nil }

func (r *catProductRepo) ListRestockedWithAlerts() ([]*entity.Product, error) { return nil, nil }

type catPSRepo struct{ s *catStore }

func (r *catPSRepo) Create(ps *entity.ProductSize) error {
	cps := *ps
	r.s.sizes[ps.ID] = &cps
	return nil
}

func (r *catPSRepo) GetByID(id string) (*entity.ProductSize, error) {
	ps, ok := r.s.sizes[id]
	if !ok {
		return nil, nil
	}
	cps := *ps
	return &cps, nil
}

func (r *catPSRepo) GetByProductAndSize(productID, sizeID string) (*entity.ProductSize, error) {
	for _, ps := range r.s.sizes {
		if ps.ProductID == productID && ps.SizeID == sizeID {
			cps := *ps
			return &cps, nil
		}
	}
	return nil, nil
}

func (r *catPSRepo) GetForUpdate(productID, sizeID string) (*entity.ProductSize, error) {
	return r.GetByProductAndSize(productID, sizeID)
}

func (r *catPSRepo) GetForUpdateByID(id string) (*entity.ProductSize, error) { return r.GetByID(id) }

func (r *catPSRepo) UpdateQuantity(id string, quantity int) error {
	if ps, ok := r.s.sizes[id]; ok {
		ps.Quantity = quantity
	}
	return nil
}

func (r *catPSRepo) Delete(id string) error {
	delete(r.s.sizes, id)
	return nil
}

func (r *catPSRepo) ListByProduct(productID string) ([]*entity.ProductSize, error) {
	var out []*entity.ProductSize
	for _, ps := range r.s.sizes {
		if ps.ProductID == productID {
			cps := *ps
			out = append(out, &cps)
		}
	}
	return out, nil
}

func (r *catPSRepo) List() ([]*entity.ProductSize, error) {
	var out []*entity.ProductSize
	for _, ps := range r.s.sizes {
		cps := *ps
		out = append(out, &cps)
	}
	return out, nil
}

func (r *catPSRepo) SumByProduct(productID string) (int, error) {
	sum := 0
	for _, ps := range r.s.sizes {
		if ps.ProductID == productID {
			sum += ps.Quantity
		}
	}
	return sum, nil
}

type catAuditRepo struct{ s *catStore }

func (r *catAuditRepo) Create(log *entity.AuditLog) error {
	cl := *log
	r.s.audits = append(r.s.audits, &cl)
	return nil
}

func (r *catAuditRepo) List(string, int, int) ([]*entity.AuditLog, int, error) {
	return r.s.audits, len(r.s.audits), nil
}

type catRunner struct{ s *catStore }

func (t *catRunner) Run(ctx context.Context, fn func(
	psRepo repository.ProductSizeRepository,
	productRepo repository.ProductRepository,
	auditRepo repository.AuditLogRepository,
) error) error {
	snapshot := t.s.clone()
	err := fn(&catPSRepo{s: t.s}, &catProductRepo{s: t.s}, &catAuditRepo{s: t.s})
	if err != nil {
		t.s.restore(snapshot)
	}
	return err
}

type fakeMedia struct{ removed chan string }

func (m *fakeMedia) Remove(ctx context.Context, path string) error {
	m.removed <- path
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const catActor = "user-1"

func newProductUC(store *catStore, media catalog.MediaStore) *catalog.ProductUseCase {
	return catalog.NewProductUseCase(&catRunner{s: store}, &catProductRepo{s: store}, &catPSRepo{s: store}, media)
}

func createReq() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Nama:          "Air Zoom Pegasus",
		HargaBeli:     decimal.RequireFromString("300000"),
		HargaJual:     decimal.RequireFromString("500000"),
		MinStock:      3,
		CategoryID:    1,
		BrandID:       1,
		ProductTypeID: "type-1",
		Sizes: []dto.SizeQuantity{
			{SizeID: "size-40", Quantity: 10},
			{SizeID: "size-41", Quantity: 5},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_SincronizaStockConLasVariantes(t *testing.T) {
	store := newCatStore()
	uc := newProductUC(store, nil)

	out, err := uc.Create(context.Background(), catActor, createReq())
	require.NoError(t, err)

	// El agregado nace ya recalculado desde las hijas.
	assert.Equal(t, 15, out.Stock)
	assert.Len(t, out.Sizes, 2)
	assert.Equal(t, entity.KondisiBaru, out.Kondisi)

	// Un log CREATE por variante.
	require.Len(t, store.audits, 2)
	for _, a := range store.audits {
		assert.Equal(t, entity.AuditActionCreate, a.Action)
		assert.Equal(t, "ProductSize", a.Entity)
		assert.Equal(t, 0, a.Changes.Before)
	}
}

func TestCreateProduct_SinActorNoAudita(t *testing.T) {
	store := newCatStore()
	uc := newProductUC(store, nil)

	_, err := uc.Create(context.Background(), "", createReq())
	require.NoError(t, err)
	assert.Empty(t, store.audits)
}

func TestCreateProduct_TallaRepetidaValidation(t *testing.T) {
	store := newCatStore()
	uc := newProductUC(store, nil)

	req := createReq()
	req.Sizes[1].SizeID = "size-40"

	_, err := uc.Create(context.Background(), catActor, req)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "sizes[1].sizeId", verr.Field)
	assert.Empty(t, store.products)
}

func TestCreateProduct_CantidadNegativaValidation(t *testing.T) {
	store := newCatStore()
	uc := newProductUC(store, nil)

	req := createReq()
	req.Sizes[0].Quantity = -1

	_, err := uc.Create(context.Background(), catActor, req)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "sizes[0].quantity", verr.Field)
}

func TestCreateProduct_NamaDuplicadoRevierteTodo(t *testing.T) {
	store := newCatStore()
	uc := newProductUC(store, nil)
	ctx := context.Background()

	_, err := uc.Create(ctx, catActor, createReq())
	require.NoError(t, err)

	_, err = uc.Create(ctx, catActor, createReq())
	assert.ErrorIs(t, err, domain.ErrConflict)

	// El rollback no deja ni producto ni variantes ni logs del segundo intento.
	assert.Len(t, store.products, 1)
	assert.Len(t, store.sizes, 2)
	assert.Len(t, store.audits, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateProduct_ParcialConservaElResto(t *testing.T) {
	store := newCatStore()
	uc := newProductUC(store, nil)
	ctx := context.Background()

	created, err := uc.Create(ctx, catActor, createReq())
	require.NoError(t, err)

	nuevoPrecio := decimal.RequireFromString("550000")
	out, err := uc.Update(ctx, catActor, created.ID, dto.UpdateProductRequest{HargaJual: &nuevoPrecio})
	require.NoError(t, err)

	assert.True(t, out.HargaJual.Equal(nuevoPrecio))
	assert.Equal(t, "Air Zoom Pegasus", out.Nama)
	assert.Equal(t, 15, out.Stock)
}

func TestUpdateProduct_RenombreAOtroExistenteConflict(t *testing.T) {
	store := newCatStore()
	uc := newProductUC(store, nil)
	ctx := context.Background()

	_, err := uc.Create(ctx, catActor, createReq())
	require.NoError(t, err)

	otro := createReq()
	otro.Nama = "Old Skool"
	otroOut, err := uc.Create(ctx, catActor, otro)
	require.NoError(t, err)

	nama := "Air Zoom Pegasus"
	_, err = uc.Update(ctx, catActor, otroOut.ID, dto.UpdateProductRequest{Nama: &nama})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateProduct_NoExisteNotFound(t *testing.T) {
	uc := newProductUC(newCatStore(), nil)

	_, err := uc.Update(context.Background(), catActor, "nope", dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteProduct_AuditaYBorraLaImagenPostCommit(t *testing.T) {
	store := newCatStore()
	media := &fakeMedia{removed: make(chan string, 1)}
	uc := newProductUC(store, media)
	ctx := context.Background()

	req := createReq()
	req.Image = "media/pegasus.jpg"
	created, err := uc.Create(ctx, catActor, req)
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, catActor, created.ID))
	assert.Empty(t, store.products)

	// El log DELETE registra el stock agregado que tenía el producto.
	last := store.audits[len(store.audits)-1]
	assert.Equal(t, entity.AuditActionDelete, last.Action)
	assert.Equal(t, "Product", last.Entity)
	assert.Equal(t, entity.QuantityChange{Before: 15, After: 0}, last.Changes)

	// El borrado de la imagen es asíncrono.
	select {
	case path := <-media.removed:
		assert.Equal(t, "media/pegasus.jpg", path)
	case <-time.After(time.Second):
		t.Fatal("Remove no fue invocado")
	}
}

func TestDeleteProduct_SinImagenNoTocaMedia(t *testing.T) {
	store := newCatStore()
	media := &fakeMedia{removed: make(chan string, 1)}
	uc := newProductUC(store, media)
	ctx := context.Background()

	created, err := uc.Create(ctx, catActor, createReq())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, catActor, created.ID))

	select {
	case path := <-media.removed:
		t.Fatalf("Remove inesperado: %s", path)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDeleteProduct_NoExisteNotFound(t *testing.T) {
	uc := newProductUC(newCatStore(), nil)

	err := uc.Delete(context.Background(), catActor, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
