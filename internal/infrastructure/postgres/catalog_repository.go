package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sepatuhub/pos-api/internal/domain"
	"github.com/sepatuhub/pos-api/internal/domain/entity"
	"github.com/sepatuhub/pos-api/internal/domain/repository"
)

var _ repository.ProductTypeRepository = (*ProductTypeRepo)(nil)
var _ repository.SizeRepository = (*SizeRepo)(nil)
var _ repository.StockBatchRepository = (*StockBatchRepo)(nil)

// ProductTypeRepo implementación del puerto ProductTypeRepository sobre PostgreSQL.
type ProductTypeRepo struct {
	q Querier
}

// NewProductTypeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductTypeRepository(q Querier) *ProductTypeRepo {
	return &ProductTypeRepo{q: q}
}

func (r *ProductTypeRepo) Create(pt *entity.ProductType) error {
	query := `
		INSERT INTO product_types (id, nama, created_at, updated_at)
		VALUES ($1, $2, now(), now())`
	_, err := r.q.Exec(context.Background(), query, pt.ID, pt.Nama)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Entity: "ProductType", Detail: fmt.Sprintf("nama %q duplicado", pt.Nama)}
		}
		return fmt.Errorf("create product type: %w", err)
	}
	return nil
}

func (r *ProductTypeRepo) GetByID(id string) (*entity.ProductType, error) {
	var pt entity.ProductType
	err := r.q.QueryRow(context.Background(),
		`SELECT id, nama, created_at, updated_at FROM product_types WHERE id = $1`, id).Scan(
		&pt.ID, &pt.Nama, &pt.CreatedAt, &pt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product type: %w", err)
	}
	return &pt, nil
}

func (r *ProductTypeRepo) GetByNama(nama string) (*entity.ProductType, error) {
	var pt entity.ProductType
	err := r.q.QueryRow(context.Background(),
		`SELECT id, nama, created_at, updated_at FROM product_types WHERE nama = $1`, nama).Scan(
		&pt.ID, &pt.Nama, &pt.CreatedAt, &pt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product type by nama: %w", err)
	}
	return &pt, nil
}

func (r *ProductTypeRepo) List() ([]*entity.ProductType, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, nama, created_at, updated_at FROM product_types ORDER BY nama`)
	if err != nil {
		return nil, fmt.Errorf("list product types: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductType
	for rows.Next() {
		var pt entity.ProductType
		if err := rows.Scan(&pt.ID, &pt.Nama, &pt.CreatedAt, &pt.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product type: %w", err)
		}
		list = append(list, &pt)
	}
	return list, rows.Err()
}

func (r *ProductTypeRepo) Update(pt *entity.ProductType) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE product_types SET nama = $2, updated_at = now() WHERE id = $1`, pt.ID, pt.Nama)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Entity: "ProductType", Detail: fmt.Sprintf("nama %q duplicado", pt.Nama)}
		}
		return fmt.Errorf("update product type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "ProductType", ID: pt.ID}
	}
	return nil
}

func (r *ProductTypeRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM product_types WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return &domain.DependencyInUseError{Entity: "ProductType", ID: id, References: 1}
		}
		return fmt.Errorf("delete product type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "ProductType", ID: id}
	}
	return nil
}

func (r *ProductTypeRepo) CountProducts(id string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products WHERE product_type_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count product type products: %w", err)
	}
	return count, nil
}

// SizeRepo implementación del puerto SizeRepository sobre PostgreSQL.
type SizeRepo struct {
	q Querier
}

// NewSizeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSizeRepository(q Querier) *SizeRepo {
	return &SizeRepo{q: q}
}

func (r *SizeRepo) Create(size *entity.Size) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO sizes (id, label) VALUES ($1, $2)`, size.ID, size.Label)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Entity: "Size", Detail: fmt.Sprintf("label %q duplicado", size.Label)}
		}
		return fmt.Errorf("create size: %w", err)
	}
	return nil
}

func (r *SizeRepo) GetByID(id string) (*entity.Size, error) {
	var s entity.Size
	err := r.q.QueryRow(context.Background(),
		`SELECT id, label FROM sizes WHERE id = $1`, id).Scan(&s.ID, &s.Label)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get size: %w", err)
	}
	return &s, nil
}

func (r *SizeRepo) GetByLabel(label string) (*entity.Size, error) {
	var s entity.Size
	err := r.q.QueryRow(context.Background(),
		`SELECT id, label FROM sizes WHERE label = $1`, label).Scan(&s.ID, &s.Label)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get size by label: %w", err)
	}
	return &s, nil
}

func (r *SizeRepo) List() ([]*entity.Size, error) {
	rows, err := r.q.Query(context.Background(), `SELECT id, label FROM sizes ORDER BY label`)
	if err != nil {
		return nil, fmt.Errorf("list sizes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Size
	for rows.Next() {
		var s entity.Size
		if err := rows.Scan(&s.ID, &s.Label); err != nil {
			return nil, fmt.Errorf("scan size: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *SizeRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM sizes WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return &domain.DependencyInUseError{Entity: "Size", ID: id, References: 1}
		}
		return fmt.Errorf("delete size: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "Size", ID: id}
	}
	return nil
}

// CountProductSizes cuenta variantes que usan la talla (guard de borrado).
func (r *SizeRepo) CountProductSizes(id string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM product_sizes WHERE size_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count size variants: %w", err)
	}
	return count, nil
}

// StockBatchRepo implementación del puerto StockBatchRepository sobre PostgreSQL.
type StockBatchRepo struct {
	q Querier
}

// NewStockBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockBatchRepository(q Querier) *StockBatchRepo {
	return &StockBatchRepo{q: q}
}

func (r *StockBatchRepo) Create(batch *entity.StockBatch) error {
	query := `
		INSERT INTO stock_batches (id, nama, total_harga, jumlah_sepatu, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.Nama, batch.TotalHarga, batch.JumlahSepatu)
	if err != nil {
		return fmt.Errorf("create stock batch: %w", err)
	}
	return nil
}

func (r *StockBatchRepo) GetByID(id string) (*entity.StockBatch, error) {
	var b entity.StockBatch
	err := r.q.QueryRow(context.Background(),
		`SELECT id, nama, total_harga, jumlah_sepatu, created_at, updated_at FROM stock_batches WHERE id = $1`, id).Scan(
		&b.ID, &b.Nama, &b.TotalHarga, &b.JumlahSepatu, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock batch: %w", err)
	}
	return &b, nil
}

func (r *StockBatchRepo) List() ([]*entity.StockBatch, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, nama, total_harga, jumlah_sepatu, created_at, updated_at FROM stock_batches ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list stock batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockBatch
	for rows.Next() {
		var b entity.StockBatch
		if err := rows.Scan(&b.ID, &b.Nama, &b.TotalHarga, &b.JumlahSepatu, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

func (r *StockBatchRepo) Update(batch *entity.StockBatch) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE stock_batches SET nama = $2, total_harga = $3, jumlah_sepatu = $4, updated_at = now() WHERE id = $1`,
		batch.ID, batch.Nama, batch.TotalHarga, batch.JumlahSepatu)
	if err != nil {
		return fmt.Errorf("update stock batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "StockBatch", ID: batch.ID}
	}
	return nil
}

func (r *StockBatchRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM stock_batches WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return &domain.DependencyInUseError{Entity: "StockBatch", ID: id, References: 1}
		}
		return fmt.Errorf("delete stock batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "StockBatch", ID: id}
	}
	return nil
}
