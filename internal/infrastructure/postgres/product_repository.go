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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, nama, deskripsi, image, harga_beli, harga_jual, stock, min_stock,
		kondisi, category_id, brand_id, product_type_id, stock_batch_id, created_at, updated_at`

// Create persiste un producto nuevo. Stock arranca en 0: lo fija el recálculo
// del agregado cuando se crean las variantes.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, nama, deskripsi, image, harga_beli, harga_jual, stock, min_stock,
			kondisi, category_id, brand_id, product_type_id, stock_batch_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8, $9, $10, $11, $12, now(), now())`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Nama, product.Deskripsi, product.Image,
		product.HargaBeli, product.HargaJual, product.MinStock, product.Kondisi,
		product.CategoryID, product.BrandID, product.ProductTypeID, product.StockBatchID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Entity: "Product", Detail: fmt.Sprintf("nama %q duplicado", product.Nama)}
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por su ID. Devuelve nil si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByNama busca por nombre exacto (chequeo de unicidad).
func (r *ProductRepo) GetByNama(nama string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE nama = $1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, nama))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by nama: %w", err)
	}
	return p, nil
}

// List devuelve productos paginados, con búsqueda opcional por nombre.
func (r *ProductRepo) List(search string, limit, offset int) ([]*entity.Product, int, error) {
	args := []any{}
	where := ""
	if search != "" {
		where = " WHERE nama ILIKE $1"
		args = append(args, "%"+search+"%")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM products` + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	pos := len(args) + 1
	query := `SELECT ` + productColumns + ` FROM products` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// Update persiste los campos escalares del producto. No toca stock.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET nama = $2, deskripsi = $3, image = $4, harga_beli = $5,
			harga_jual = $6, min_stock = $7, kondisi = $8, category_id = $9,
			brand_id = $10, product_type_id = $11, stock_batch_id = $12, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		product.ID, product.Nama, product.Deskripsi, product.Image,
		product.HargaBeli, product.HargaJual, product.MinStock, product.Kondisi,
		product.CategoryID, product.BrandID, product.ProductTypeID, product.StockBatchID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Entity: "Product", Detail: fmt.Sprintf("nama %q duplicado", product.Nama)}
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "Product", ID: product.ID}
	}
	return nil
}

// UpdateStock escribe el agregado recalculado. Solo debe invocarse desde el
// recálculo en la misma transacción que mutó las variantes.
func (r *ProductRepo) UpdateStock(productID string, stock int) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`, productID, stock)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "Product", ID: productID}
	}
	return nil
}

// Delete elimina el producto. Variantes y marcadores de alerta caen por cascade.
func (r *ProductRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "Product", ID: id}
	}
	return nil
}

// ListIDs devuelve todos los IDs (para el resync batch de agregados).
func (r *ProductRepo) ListIDs() ([]string, error) {
	rows, err := r.q.Query(context.Background(), `SELECT id FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list product ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan product id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListLowStock productos con 0 < stock <= min_stock.
func (r *ProductRepo) ListLowStock() ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE stock > 0 AND stock <= min_stock`
	return r.listByQuery(query)
}

// ListOutOfStock productos con stock agotado.
func (r *ProductRepo) ListOutOfStock() ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE stock = 0`
	return r.listByQuery(query)
}

// ListRestockedWithAlerts productos repuestos (stock > min_stock) que todavía
// tienen marcadores de alerta pendientes de limpiar.
func (r *ProductRepo) ListRestockedWithAlerts() ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + ` FROM products p
		WHERE p.stock > p.min_stock
		  AND EXISTS (SELECT 1 FROM notification_logs nl WHERE nl.product_id = p.id)`
	return r.listByQuery(query)
}

func (r *ProductRepo) listByQuery(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Nama, &p.Deskripsi, &p.Image, &p.HargaBeli, &p.HargaJual,
		&p.Stock, &p.MinStock, &p.Kondisi, &p.CategoryID, &p.BrandID,
		&p.ProductTypeID, &p.StockBatchID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
