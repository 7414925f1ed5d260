package catalog

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/sepatuhub/pos-api/internal/application/dto"
	"github.com/sepatuhub/pos-api/internal/domain"
	"github.com/sepatuhub/pos-api/internal/domain/entity"
	"github.com/sepatuhub/pos-api/internal/domain/repository"
)

// TaxonomyUseCase CRUD de marcas, categorías, tipos de producto y tallas.
// Los borrados están protegidos: mientras existan productos (o variantes, en
// el caso de tallas) referenciando el registro, se responde DependencyInUse.
type TaxonomyUseCase struct {
	brandRepo    repository.BrandRepository
	categoryRepo repository.CategoryRepository
	typeRepo     repository.ProductTypeRepository
	sizeRepo     repository.SizeRepository
}

// NewTaxonomyUseCase construye el caso de uso de taxonomía.
func NewTaxonomyUseCase(
	brandRepo repository.BrandRepository,
	categoryRepo repository.CategoryRepository,
	typeRepo repository.ProductTypeRepository,
	sizeRepo repository.SizeRepository,
) *TaxonomyUseCase {
	return &TaxonomyUseCase{brandRepo: brandRepo, categoryRepo: categoryRepo, typeRepo: typeRepo, sizeRepo: sizeRepo}
}

// --- Brands ---

func (uc *TaxonomyUseCase) CreateBrand(ctx context.Context, req dto.NamedRequest) (*dto.BrandResponse, error) {
	existing, err := uc.brandRepo.GetByNama(req.Nama)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.ConflictError{Entity: "Brand", Detail: fmt.Sprintf("ya existe la marca %q", req.Nama)}
	}
	brand := &entity.Brand{Nama: req.Nama, Image: req.Image}
	if err := uc.brandRepo.Create(brand); err != nil {
		return nil, err
	}
	resp := toBrandResponse(brand)
	return &resp, nil
}

func (uc *TaxonomyUseCase) GetBrand(ctx context.Context, id int64) (*dto.BrandResponse, error) {
	brand, err := uc.brandRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, &domain.NotFoundError{Entity: "Brand", ID: strconv.FormatInt(id, 10)}
	}
	resp := toBrandResponse(brand)
	return &resp, nil
}

func (uc *TaxonomyUseCase) ListBrands(ctx context.Context, search string, page dto.PageRequest) (*dto.BrandListResponse, error) {
	page.DefaultPage()
	brands, total, err := uc.brandRepo.List(search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BrandResponse, 0, len(brands))
	for _, b := range brands {
		out = append(out, toBrandResponse(b))
	}
	return &dto.BrandListResponse{
		Data: out,
		Meta: dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func (uc *TaxonomyUseCase) UpdateBrand(ctx context.Context, id int64, req dto.NamedRequest) (*dto.BrandResponse, error) {
	brand, err := uc.brandRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, &domain.NotFoundError{Entity: "Brand", ID: strconv.FormatInt(id, 10)}
	}
	if req.Nama != brand.Nama {
		existing, err := uc.brandRepo.GetByNama(req.Nama)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, &domain.ConflictError{Entity: "Brand", Detail: fmt.Sprintf("ya existe la marca %q", req.Nama)}
		}
	}
	brand.Nama = req.Nama
	brand.Image = req.Image
	if err := uc.brandRepo.Update(brand); err != nil {
		return nil, err
	}
	resp := toBrandResponse(brand)
	return &resp, nil
}

func (uc *TaxonomyUseCase) DeleteBrand(ctx context.Context, id int64) error {
	brand, err := uc.brandRepo.GetByID(id)
	if err != nil {
		return err
	}
	if brand == nil {
		return &domain.NotFoundError{Entity: "Brand", ID: strconv.FormatInt(id, 10)}
	}
	refs, err := uc.brandRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return &domain.DependencyInUseError{Entity: "Brand", ID: strconv.FormatInt(id, 10), References: refs}
	}
	return uc.brandRepo.Delete(id)
}

// --- Categories ---

func (uc *TaxonomyUseCase) CreateCategory(ctx context.Context, req dto.NamedRequest) (*dto.CategoryResponse, error) {
	existing, err := uc.categoryRepo.GetByNama(req.Nama)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.ConflictError{Entity: "Category", Detail: fmt.Sprintf("ya existe la categoría %q", req.Nama)}
	}
	category := &entity.Category{Nama: req.Nama}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	resp := toCategoryResponse(category)
	return &resp, nil
}

func (uc *TaxonomyUseCase) GetCategory(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, &domain.NotFoundError{Entity: "Category", ID: strconv.FormatInt(id, 10)}
	}
	resp := toCategoryResponse(category)
	return &resp, nil
}

func (uc *TaxonomyUseCase) ListCategories(ctx context.Context, search string, page dto.PageRequest) (*dto.CategoryListResponse, error) {
	page.DefaultPage()
	categories, total, err := uc.categoryRepo.List(search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{
		Data: out,
		Meta: dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

func (uc *TaxonomyUseCase) UpdateCategory(ctx context.Context, id int64, req dto.NamedRequest) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, &domain.NotFoundError{Entity: "Category", ID: strconv.FormatInt(id, 10)}
	}
	if req.Nama != category.Nama {
		existing, err := uc.categoryRepo.GetByNama(req.Nama)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, &domain.ConflictError{Entity: "Category", Detail: fmt.Sprintf("ya existe la categoría %q", req.Nama)}
		}
	}
	category.Nama = req.Nama
	if err := uc.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	resp := toCategoryResponse(category)
	return &resp, nil
}

func (uc *TaxonomyUseCase) DeleteCategory(ctx context.Context, id int64) error {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return &domain.NotFoundError{Entity: "Category", ID: strconv.FormatInt(id, 10)}
	}
	refs, err := uc.categoryRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return &domain.DependencyInUseError{Entity: "Category", ID: strconv.FormatInt(id, 10), References: refs}
	}
	return uc.categoryRepo.Delete(id)
}

// --- Product types ---

func (uc *TaxonomyUseCase) CreateProductType(ctx context.Context, req dto.NamedRequest) (*dto.ProductTypeResponse, error) {
	existing, err := uc.typeRepo.GetByNama(req.Nama)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.ConflictError{Entity: "ProductType", Detail: fmt.Sprintf("ya existe el tipo %q", req.Nama)}
	}
	pt := &entity.ProductType{ID: uuid.New().String(), Nama: req.Nama}
	if err := uc.typeRepo.Create(pt); err != nil {
		return nil, err
	}
	return &dto.ProductTypeResponse{ID: pt.ID, Nama: pt.Nama}, nil
}

func (uc *TaxonomyUseCase) ListProductTypes(ctx context.Context) ([]dto.ProductTypeResponse, error) {
	types, err := uc.typeRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductTypeResponse, 0, len(types))
	for _, pt := range types {
		out = append(out, dto.ProductTypeResponse{ID: pt.ID, Nama: pt.Nama})
	}
	return out, nil
}

func (uc *TaxonomyUseCase) UpdateProductType(ctx context.Context, id string, req dto.NamedRequest) (*dto.ProductTypeResponse, error) {
	pt, err := uc.typeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if pt == nil {
		return nil, &domain.NotFoundError{Entity: "ProductType", ID: id}
	}
	if req.Nama != pt.Nama {
		existing, err := uc.typeRepo.GetByNama(req.Nama)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, &domain.ConflictError{Entity: "ProductType", Detail: fmt.Sprintf("ya existe el tipo %q", req.Nama)}
		}
	}
	pt.Nama = req.Nama
	if err := uc.typeRepo.Update(pt); err != nil {
		return nil, err
	}
	return &dto.ProductTypeResponse{ID: pt.ID, Nama: pt.Nama}, nil
}

func (uc *TaxonomyUseCase) DeleteProductType(ctx context.Context, id string) error {
	pt, err := uc.typeRepo.GetByID(id)
	if err != nil {
		return err
	}
	if pt == nil {
		return &domain.NotFoundError{Entity: "ProductType", ID: id}
	}
	refs, err := uc.typeRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return &domain.DependencyInUseError{Entity: "ProductType", ID: id, References: refs}
	}
	return uc.typeRepo.Delete(id)
}

// --- Sizes ---

func (uc *TaxonomyUseCase) CreateSize(ctx context.Context, req dto.SizeRequest) (*dto.SizeResponse, error) {
	existing, err := uc.sizeRepo.GetByLabel(req.Label)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.ConflictError{Entity: "Size", Detail: fmt.Sprintf("ya existe la talla %q", req.Label)}
	}
	size := &entity.Size{ID: uuid.New().String(), Label: req.Label}
	if err := uc.sizeRepo.Create(size); err != nil {
		return nil, err
	}
	return &dto.SizeResponse{ID: size.ID, Label: size.Label}, nil
}

func (uc *TaxonomyUseCase) ListSizes(ctx context.Context) ([]dto.SizeResponse, error) {
	sizes, err := uc.sizeRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.SizeResponse, 0, len(sizes))
	for _, s := range sizes {
		out = append(out, dto.SizeResponse{ID: s.ID, Label: s.Label})
	}
	return out, nil
}

// DeleteSize bloquea el borrado mientras alguna variante use la talla: las
// filas ProductSize son la fuente de verdad del stock y no deben quedar
// huérfanas de etiqueta.
func (uc *TaxonomyUseCase) DeleteSize(ctx context.Context, id string) error {
	size, err := uc.sizeRepo.GetByID(id)
	if err != nil {
		return err
	}
	if size == nil {
		return &domain.NotFoundError{Entity: "Size", ID: id}
	}
	refs, err := uc.sizeRepo.CountProductSizes(id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return &domain.DependencyInUseError{Entity: "Size", ID: id, References: refs}
	}
	return uc.sizeRepo.Delete(id)
}

func toBrandResponse(b *entity.Brand) dto.BrandResponse {
	return dto.BrandResponse{ID: b.ID, Nama: b.Nama, Image: b.Image}
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Nama: c.Nama}
}
