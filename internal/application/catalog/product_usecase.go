package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sepatuhub/pos-api/internal/application/dto"
	"github.com/sepatuhub/pos-api/internal/application/ledger"
	"github.com/sepatuhub/pos-api/internal/domain"
	"github.com/sepatuhub/pos-api/internal/domain/entity"
	"github.com/sepatuhub/pos-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos. El alta crea las variantes de talla en la
// misma unidad atómica y deja product.stock ya sincronizado con sus hijas.
type ProductUseCase struct {
	txRunner    ledger.TxRunner
	productRepo repository.ProductRepository // lecturas fuera de transacción
	psRepo      repository.ProductSizeRepository
	media       MediaStore // opcional
}

// NewProductUseCase construye el caso de uso de productos.
func NewProductUseCase(
	txRunner ledger.TxRunner,
	productRepo repository.ProductRepository,
	psRepo repository.ProductSizeRepository,
	media MediaStore,
) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, productRepo: productRepo, psRepo: psRepo, media: media}
}

// Create da de alta el producto junto con sus variantes iniciales.
// Nama duplicado devuelve ConflictError; tallas repetidas en el request,
// ValidationError.
func (uc *ProductUseCase) Create(ctx context.Context, actorID string, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if req.Kondisi == "" {
		req.Kondisi = entity.KondisiBaru
	}
	seen := map[string]struct{}{}
	for i, sq := range req.Sizes {
		if sq.Quantity < 0 {
			return nil, &domain.ValidationError{Field: fmt.Sprintf("sizes[%d].quantity", i), Detail: "no puede ser negativa"}
		}
		if _, dup := seen[sq.SizeID]; dup {
			return nil, &domain.ValidationError{Field: fmt.Sprintf("sizes[%d].sizeId", i), Detail: "talla repetida"}
		}
		seen[sq.SizeID] = struct{}{}
	}
	productID := uuid.New().String()
	err := uc.txRunner.Run(ctx, func(
		psRepo repository.ProductSizeRepository,
		productRepo repository.ProductRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		existing, err := productRepo.GetByNama(req.Nama)
		if err != nil {
			return err
		}
		if existing != nil {
			return &domain.ConflictError{Entity: "Product", Detail: fmt.Sprintf("ya existe un producto con nama %q", req.Nama)}
		}
		product := &entity.Product{
			ID:            productID,
			Nama:          req.Nama,
			Deskripsi:     req.Deskripsi,
			Image:         req.Image,
			HargaBeli:     req.HargaBeli,
			HargaJual:     req.HargaJual,
			MinStock:      req.MinStock,
			Kondisi:       req.Kondisi,
			CategoryID:    req.CategoryID,
			BrandID:       req.BrandID,
			ProductTypeID: req.ProductTypeID,
			StockBatchID:  req.StockBatchID,
		}
		if err := productRepo.Create(product); err != nil {
			return err
		}
		for _, sq := range req.Sizes {
			ps := &entity.ProductSize{
				ID:        uuid.New().String(),
				ProductID: productID,
				SizeID:    sq.SizeID,
				Quantity:  sq.Quantity,
			}
			if err := psRepo.Create(ps); err != nil {
				return err
			}
			if err := recordAudit(auditRepo, actorID, entity.AuditActionCreate, "ProductSize", ps.ID, 0, sq.Quantity,
				fmt.Sprintf("alta de producto %q", req.Nama)); err != nil {
				return err
			}
		}
		_, err = ledger.SyncProductStock(psRepo, productRepo, productID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, productID)
}

// GetByID devuelve el producto con sus variantes.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.NotFoundError{Entity: "Product", ID: id}
	}
	sizes, err := uc.psRepo.ListByProduct(id)
	if err != nil {
		return nil, err
	}
	resp := toProductResponse(product, sizes)
	return &resp, nil
}

// List devuelve productos paginados con búsqueda por nama.
func (uc *ProductUseCase) List(ctx context.Context, search string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, total, err := uc.productRepo.List(search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p, nil))
	}
	return &dto.ProductListResponse{
		Data: out,
		Meta: dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Update modifica los campos escalares presentes en el request. Los precios
// son editables: los snapshots de ventas pasadas no se tocan. Las cantidades
// por talla se gestionan por el ledger, nunca desde aquí.
func (uc *ProductUseCase) Update(ctx context.Context, actorID, id string, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	err := uc.txRunner.Run(ctx, func(
		_ repository.ProductSizeRepository,
		productRepo repository.ProductRepository,
		_ repository.AuditLogRepository,
	) error {
		product, err := productRepo.GetByID(id)
		if err != nil {
			return err
		}
		if product == nil {
			return &domain.NotFoundError{Entity: "Product", ID: id}
		}
		if req.Nama != nil && *req.Nama != product.Nama {
			existing, err := productRepo.GetByNama(*req.Nama)
			if err != nil {
				return err
			}
			if existing != nil {
				return &domain.ConflictError{Entity: "Product", Detail: fmt.Sprintf("ya existe un producto con nama %q", *req.Nama)}
			}
			product.Nama = *req.Nama
		}
		if req.Deskripsi != nil {
			product.Deskripsi = *req.Deskripsi
		}
		if req.Image != nil {
			product.Image = *req.Image
		}
		if req.HargaBeli != nil {
			product.HargaBeli = *req.HargaBeli
		}
		if req.HargaJual != nil {
			product.HargaJual = *req.HargaJual
		}
		if req.MinStock != nil {
			product.MinStock = *req.MinStock
		}
		if req.Kondisi != nil {
			product.Kondisi = *req.Kondisi
		}
		if req.CategoryID != nil {
			product.CategoryID = *req.CategoryID
		}
		if req.BrandID != nil {
			product.BrandID = *req.BrandID
		}
		if req.ProductTypeID != nil {
			product.ProductTypeID = *req.ProductTypeID
		}
		if req.StockBatchID != nil {
			product.StockBatchID = req.StockBatchID
		}
		return productRepo.Update(product)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete elimina el producto. Las variantes de talla y los logs de alerta
// caen por cascade; los ítems de ventas pasadas conservan sus snapshots y el
// reporting muestra el placeholder de producto eliminado. La imagen se borra
// del almacenamiento después del commit.
func (uc *ProductUseCase) Delete(ctx context.Context, actorID, id string) error {
	var image string
	err := uc.txRunner.Run(ctx, func(
		_ repository.ProductSizeRepository,
		productRepo repository.ProductRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		product, err := productRepo.GetByID(id)
		if err != nil {
			return err
		}
		if product == nil {
			return &domain.NotFoundError{Entity: "Product", ID: id}
		}
		image = product.Image
		if err := productRepo.Delete(id); err != nil {
			return err
		}
		return recordAudit(auditRepo, actorID, entity.AuditActionDelete, "Product", id, product.Stock, 0,
			fmt.Sprintf("baja de producto %q", product.Nama))
	})
	if err != nil {
		return err
	}
	if uc.media != nil && image != "" {
		go uc.media.Remove(context.Background(), image) //nolint:errcheck
	}
	return nil
}

// recordAudit mismo criterio que el ledger: sin actor no hay entrada.
func recordAudit(auditRepo repository.AuditLogRepository, actorID, action, entityName, entityID string, before, after int, detail string) error {
	if actorID == "" {
		return nil
	}
	return auditRepo.Create(&entity.AuditLog{
		ID:       uuid.New().String(),
		UserID:   actorID,
		Action:   action,
		Entity:   entityName,
		EntityID: entityID,
		Changes:  entity.QuantityChange{Before: before, After: after},
		Detail:   detail,
	})
}

func toProductResponse(p *entity.Product, sizes []*entity.ProductSize) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:            p.ID,
		Nama:          p.Nama,
		Deskripsi:     p.Deskripsi,
		Image:         p.Image,
		HargaBeli:     p.HargaBeli,
		HargaJual:     p.HargaJual,
		Stock:         p.Stock,
		MinStock:      p.MinStock,
		Kondisi:       p.Kondisi,
		CategoryID:    p.CategoryID,
		BrandID:       p.BrandID,
		ProductTypeID: p.ProductTypeID,
		StockBatchID:  p.StockBatchID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	for _, ps := range sizes {
		resp.Sizes = append(resp.Sizes, dto.ProductSizeResponse{
			ID:        ps.ID,
			ProductID: ps.ProductID,
			SizeID:    ps.SizeID,
			SizeLabel: ps.SizeLabel,
			Quantity:  ps.Quantity,
		})
	}
	return resp
}
