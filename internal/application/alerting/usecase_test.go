package alerting_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sepatuhub/pos-api/internal/application/alerting"
	"github.com/sepatuhub/pos-api/internal/domain/entity"
	"github.com/sepatuhub/pos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeProducts struct {
	byID map[string]*entity.Product
}

func (f *fakeProducts) Create(*entity.Product) error { return nil }

func (f *fakeProducts) GetByID(id string) (*entity.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (f *fakeProducts) GetByNama(string) (*entity.Product, error) { return nil, nil }

func (f *fakeProducts) List(string, int, int) ([]*entity.Product, int, error) { return nil, 0, nil }

func (f *fakeProducts) Update(*entity.Product) error { return nil }

func (f *fakeProducts) UpdateStock(string, int) error { return nil }

func (f *fakeProducts) Delete(string) error { return nil }

func (f *fakeProducts) ListIDs() ([]string, error) { return nil, nil }

func (f *fakeProducts) ListLowStock() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.byID {
		if p.Stock > 0 && p.Stock <= p.MinStock {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProducts) ListOutOfStock() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.byID {
		if p.Stock == 0 {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProducts) ListRestockedWithAlerts() ([]*entity.Product, error) { return nil, nil }

type fakeMarkers struct {
	rows []*entity.NotificationLog
}

func (f *fakeMarkers) Create(log *entity.NotificationLog) error {
	cl := *log
	f.rows = append(f.rows, &cl)
	return nil
}

func (f *fakeMarkers) ExistsForProduct(productID, status string) (bool, error) {
	for _, r := range f.rows {
		if r.ProductID == productID && r.Status == status {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMarkers) DeleteForProduct(productID string, statuses ...string) error {
	match := func(status string) bool {
		if len(statuses) == 0 {
			return true
		}
		for _, s := range statuses {
			if s == status {
				return true
			}
		}
		return false
	}
	kept := f.rows[:0:0]
	for _, r := range f.rows {
		if r.ProductID == productID && match(r.Status) {
			continue
		}
		kept = append(kept, r)
	}
	f.rows = kept
	return nil
}

func (f *fakeMarkers) DeleteForProducts(productIDs []string) error {
	for _, id := range productIDs {
		if err := f.DeleteForProduct(id); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeMarkers) statuses(productID string) []string {
	var out []string
	for _, r := range f.rows {
		if r.ProductID == productID {
			out = append(out, r.Status)
		}
	}
	return out
}

type fakeNotifier struct {
	lowCalls int
	outCalls int
	fail     bool
}

func (f *fakeNotifier) NotifyLowStock(_ context.Context, _ *entity.Product) error {
	if f.fail {
		return errors.New("canal de notificación caído")
	}
	f.lowCalls++
	return nil
}

func (f *fakeNotifier) NotifyOutOfStock(_ context.Context, _ *entity.Product) error {
	if f.fail {
		return errors.New("canal de notificación caído")
	}
	f.outCalls++
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func setup(stock, minStock int) (*fakeProducts, *fakeMarkers, *fakeNotifier, *alerting.UseCase) {
	products := &fakeProducts{byID: map[string]*entity.Product{
		"prod-1": {ID: "prod-1", Nama: "Air Zoom", Stock: stock, MinStock: minStock},
	}}
	markers := &fakeMarkers{}
	notifier := &fakeNotifier{}
	uc := alerting.New(products, markers, notifier, testLogger())
	return products, markers, notifier, uc
}

func TestCheckProduct_StockBajoAlertaUnaSolaVez(t *testing.T) {
	_, markers, notifier, uc := setup(2, 5)
	ctx := context.Background()

	uc.CheckProduct(ctx, "prod-1")
	uc.CheckProduct(ctx, "prod-1")
	uc.CheckProduct(ctx, "prod-1")

	assert.Equal(t, 1, notifier.lowCalls, "el marcador deduplica las alertas repetidas")
	assert.Equal(t, []string{entity.StockStatusLow}, markers.statuses("prod-1"))
}

func TestCheckProduct_AgotadoReemplazaElMarcadorDeBajo(t *testing.T) {
	products, markers, notifier, uc := setup(2, 5)
	ctx := context.Background()

	uc.CheckProduct(ctx, "prod-1")
	require.Equal(t, 1, notifier.lowCalls)

	// El producto se agota: la alerta OUT_OF_STOCK reemplaza a LOW_STOCK.
	products.byID["prod-1"].Stock = 0
	uc.CheckProduct(ctx, "prod-1")

	assert.Equal(t, 1, notifier.outCalls)
	assert.Equal(t, []string{entity.StockStatusOut}, markers.statuses("prod-1"))
}

func TestCheckProduct_ReposicionLimpiaMarcadoresYPermiteRealertar(t *testing.T) {
	products, markers, notifier, uc := setup(2, 5)
	ctx := context.Background()

	uc.CheckProduct(ctx, "prod-1")
	require.Len(t, markers.statuses("prod-1"), 1)

	// Reposición por encima del mínimo: los marcadores se limpian.
	products.byID["prod-1"].Stock = 20
	uc.CheckProduct(ctx, "prod-1")
	assert.Empty(t, markers.statuses("prod-1"))

	// Vuelve a caer: puede alertar otra vez.
	products.byID["prod-1"].Stock = 1
	uc.CheckProduct(ctx, "prod-1")
	assert.Equal(t, 2, notifier.lowCalls)
}

func TestCheckProduct_FalloDeEntregaNoDejaMarcador(t *testing.T) {
	_, markers, notifier, uc := setup(2, 5)
	notifier.fail = true
	ctx := context.Background()

	uc.CheckProduct(ctx, "prod-1")
	assert.Empty(t, markers.statuses("prod-1"),
		"sin entrega exitosa no hay marcador: el próximo chequeo reintenta")

	// El canal se recupera y el siguiente chequeo sí alerta.
	notifier.fail = false
	uc.CheckProduct(ctx, "prod-1")
	assert.Equal(t, 1, notifier.lowCalls)
	assert.Len(t, markers.statuses("prod-1"), 1)
}

func TestCheckProduct_ProductoInexistenteNoHaceNada(t *testing.T) {
	_, markers, notifier, uc := setup(2, 5)

	uc.CheckProduct(context.Background(), "prod-fantasma")
	assert.Zero(t, notifier.lowCalls)
	assert.Zero(t, notifier.outCalls)
	assert.Empty(t, markers.rows)
}

func TestCheckAll_CuentaAlertasYDeduplica(t *testing.T) {
	products := &fakeProducts{byID: map[string]*entity.Product{
		"low-1": {ID: "low-1", Nama: "Bajo", Stock: 1, MinStock: 3},
		"out-1": {ID: "out-1", Nama: "Agotado", Stock: 0, MinStock: 3},
		"ok-1":  {ID: "ok-1", Nama: "Sano", Stock: 50, MinStock: 3},
	}}
	markers := &fakeMarkers{}
	notifier := &fakeNotifier{}
	uc := alerting.New(products, markers, notifier, testLogger())

	result, err := uc.CheckAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.LowStockAlerts)
	assert.Equal(t, 1, result.OutOfStockAlerts)

	// Segunda pasada: todo ya marcado, no se reenvía nada.
	result, err = uc.CheckAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.LowStockAlerts)
	assert.Zero(t, result.OutOfStockAlerts)
	assert.Equal(t, 1, notifier.lowCalls)
	assert.Equal(t, 1, notifier.outCalls)
}
