package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/sepatuhub/pos-api/internal/application/dto"
	"github.com/sepatuhub/pos-api/internal/domain"
	"github.com/sepatuhub/pos-api/internal/domain/entity"
	"github.com/sepatuhub/pos-api/internal/domain/repository"
)

// SupportUseCase CRUD de lotes de compra y clientes.
type SupportUseCase struct {
	batchRepo    repository.StockBatchRepository
	customerRepo repository.CustomerRepository
}

// NewSupportUseCase construye el caso de uso de lotes y clientes.
func NewSupportUseCase(batchRepo repository.StockBatchRepository, customerRepo repository.CustomerRepository) *SupportUseCase {
	return &SupportUseCase{batchRepo: batchRepo, customerRepo: customerRepo}
}

// --- Stock batches ---

func (uc *SupportUseCase) CreateStockBatch(ctx context.Context, req dto.StockBatchRequest) (*dto.StockBatchResponse, error) {
	batch := &entity.StockBatch{
		ID:           uuid.New().String(),
		Nama:         req.Nama,
		TotalHarga:   req.TotalHarga,
		JumlahSepatu: req.JumlahSepatu,
	}
	if err := uc.batchRepo.Create(batch); err != nil {
		return nil, err
	}
	resp := toStockBatchResponse(batch)
	return &resp, nil
}

func (uc *SupportUseCase) GetStockBatch(ctx context.Context, id string) (*dto.StockBatchResponse, error) {
	batch, err := uc.batchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, &domain.NotFoundError{Entity: "StockBatch", ID: id}
	}
	resp := toStockBatchResponse(batch)
	return &resp, nil
}

func (uc *SupportUseCase) ListStockBatches(ctx context.Context) ([]dto.StockBatchResponse, error) {
	batches, err := uc.batchRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockBatchResponse, 0, len(batches))
	for _, b := range batches {
		out = append(out, toStockBatchResponse(b))
	}
	return out, nil
}

func (uc *SupportUseCase) UpdateStockBatch(ctx context.Context, id string, req dto.StockBatchRequest) (*dto.StockBatchResponse, error) {
	batch, err := uc.batchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, &domain.NotFoundError{Entity: "StockBatch", ID: id}
	}
	batch.Nama = req.Nama
	batch.TotalHarga = req.TotalHarga
	batch.JumlahSepatu = req.JumlahSepatu
	if err := uc.batchRepo.Update(batch); err != nil {
		return nil, err
	}
	resp := toStockBatchResponse(batch)
	return &resp, nil
}

func (uc *SupportUseCase) DeleteStockBatch(ctx context.Context, id string) error {
	batch, err := uc.batchRepo.GetByID(id)
	if err != nil {
		return err
	}
	if batch == nil {
		return &domain.NotFoundError{Entity: "StockBatch", ID: id}
	}
	return uc.batchRepo.Delete(id)
}

// --- Customers ---

func (uc *SupportUseCase) CreateCustomer(ctx context.Context, req dto.CustomerRequest) (*dto.CustomerResponse, error) {
	customer := &entity.Customer{
		ID:      uuid.New().String(),
		Nama:    req.Nama,
		Telepon: req.Telepon,
		Alamat:  req.Alamat,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	resp := toCustomerResponse(customer)
	return &resp, nil
}

func (uc *SupportUseCase) GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, &domain.NotFoundError{Entity: "Customer", ID: id}
	}
	resp := toCustomerResponse(customer)
	return &resp, nil
}

func (uc *SupportUseCase) ListCustomers(ctx context.Context, search string, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	page.DefaultPage()
	customers, total, err := uc.customerRepo.List(search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Data: out,
		Meta: dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func (uc *SupportUseCase) UpdateCustomer(ctx context.Context, id string, req dto.CustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, &domain.NotFoundError{Entity: "Customer", ID: id}
	}
	customer.Nama = req.Nama
	customer.Telepon = req.Telepon
	customer.Alamat = req.Alamat
	if err := uc.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	resp := toCustomerResponse(customer)
	return &resp, nil
}

// DeleteCustomer elimina el cliente; las ventas pasadas quedan con el campo
// customer en NULL (la venta es anónima a partir de ahí).
func (uc *SupportUseCase) DeleteCustomer(ctx context.Context, id string) error {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return &domain.NotFoundError{Entity: "Customer", ID: id}
	}
	return uc.customerRepo.Delete(id)
}

func toStockBatchResponse(b *entity.StockBatch) dto.StockBatchResponse {
	return dto.StockBatchResponse{ID: b.ID, Nama: b.Nama, TotalHarga: b.TotalHarga, JumlahSepatu: b.JumlahSepatu}
}

func toCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{ID: c.ID, Nama: c.Nama, Telepon: c.Telepon, Alamat: c.Alamat}
}
