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

var _ repository.ProductSizeRepository = (*ProductSizeRepo)(nil)

// ProductSizeRepo implementación del puerto ProductSizeRepository sobre
// PostgreSQL (usable con pool o tx). Las variantes *ForUpdate emiten
// SELECT ... FOR UPDATE sobre product_sizes; el label de la talla se resuelve
// en una lectura aparte para no bloquear también la fila de sizes.
type ProductSizeRepo struct {
	q Querier
}

// NewProductSizeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductSizeRepository(q Querier) *ProductSizeRepo {
	return &ProductSizeRepo{q: q}
}

const productSizeSelect = `
	SELECT ps.id, ps.product_id, ps.size_id, ps.quantity, s.label, p.nama, ps.created_at, ps.updated_at
	FROM product_sizes ps
	JOIN sizes s ON s.id = ps.size_id
	JOIN products p ON p.id = ps.product_id`

// Create persiste una variante nueva. El par (product_id, size_id) es único.
func (r *ProductSizeRepo) Create(ps *entity.ProductSize) error {
	query := `
		INSERT INTO product_sizes (id, product_id, size_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())`
	_, err := r.q.Exec(context.Background(), query, ps.ID, ps.ProductID, ps.SizeID, ps.Quantity)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Entity: "ProductSize", Detail: "el par producto-talla ya existe"}
		}
		if isForeignKeyViolation(err) {
			return &domain.NotFoundError{Entity: "Size", ID: ps.SizeID}
		}
		return fmt.Errorf("create product size: %w", err)
	}
	return nil
}

// GetByID obtiene la variante por ID, con label y nombre resueltos. nil si no existe.
func (r *ProductSizeRepo) GetByID(id string) (*entity.ProductSize, error) {
	ps, err := scanProductSize(r.q.QueryRow(context.Background(), productSizeSelect+` WHERE ps.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product size: %w", err)
	}
	return ps, nil
}

// GetByProductAndSize obtiene la variante del par. nil si no existe.
func (r *ProductSizeRepo) GetByProductAndSize(productID, sizeID string) (*entity.ProductSize, error) {
	ps, err := scanProductSize(r.q.QueryRow(context.Background(),
		productSizeSelect+` WHERE ps.product_id = $1 AND ps.size_id = $2`, productID, sizeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product size by pair: %w", err)
	}
	return ps, nil
}

// GetForUpdate bloquea la fila del par y la devuelve. nil si no existe.
// El chequeo de disponibilidad y el débito posterior son un solo paso atómico
// mientras dure la transacción.
func (r *ProductSizeRepo) GetForUpdate(productID, sizeID string) (*entity.ProductSize, error) {
	query := `
		SELECT id, product_id, size_id, quantity, created_at, updated_at
		FROM product_sizes WHERE product_id = $1 AND size_id = $2
		FOR UPDATE`
	var ps entity.ProductSize
	err := r.q.QueryRow(context.Background(), query, productID, sizeID).Scan(
		&ps.ID, &ps.ProductID, &ps.SizeID, &ps.Quantity, &ps.CreatedAt, &ps.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product size for update: %w", err)
	}
	if err := r.fillSizeLabel(&ps); err != nil {
		return nil, err
	}
	return &ps, nil
}

// GetForUpdateByID igual que GetForUpdate pero por ID de la variante.
func (r *ProductSizeRepo) GetForUpdateByID(id string) (*entity.ProductSize, error) {
	query := `
		SELECT id, product_id, size_id, quantity, created_at, updated_at
		FROM product_sizes WHERE id = $1
		FOR UPDATE`
	var ps entity.ProductSize
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&ps.ID, &ps.ProductID, &ps.SizeID, &ps.Quantity, &ps.CreatedAt, &ps.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product size for update: %w", err)
	}
	if err := r.fillSizeLabel(&ps); err != nil {
		return nil, err
	}
	return &ps, nil
}

// UpdateQuantity escribe la cantidad de la variante.
func (r *ProductSizeRepo) UpdateQuantity(id string, quantity int) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE product_sizes SET quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("update product size quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "ProductSize", ID: id}
	}
	return nil
}

// Delete elimina la variante.
func (r *ProductSizeRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM product_sizes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product size: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "ProductSize", ID: id}
	}
	return nil
}

// ListByProduct devuelve las variantes de un producto ordenadas por label.
func (r *ProductSizeRepo) ListByProduct(productID string) ([]*entity.ProductSize, error) {
	rows, err := r.q.Query(context.Background(),
		productSizeSelect+` WHERE ps.product_id = $1 ORDER BY s.label`, productID)
	if err != nil {
		return nil, fmt.Errorf("list product sizes: %w", err)
	}
	defer rows.Close()
	return collectProductSizes(rows)
}

// List devuelve todas las variantes.
func (r *ProductSizeRepo) List() ([]*entity.ProductSize, error) {
	rows, err := r.q.Query(context.Background(), productSizeSelect+` ORDER BY p.nama, s.label`)
	if err != nil {
		return nil, fmt.Errorf("list product sizes: %w", err)
	}
	defer rows.Close()
	return collectProductSizes(rows)
}

// SumByProduct agrega SUM(quantity) de las variantes del producto. Dentro de
// una transacción lee las filas recién escritas, nunca un snapshot viejo.
func (r *ProductSizeRepo) SumByProduct(productID string) (int, error) {
	var sum int
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0) FROM product_sizes WHERE product_id = $1`, productID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum product sizes: %w", err)
	}
	return sum, nil
}

// fillSizeLabel resuelve label y nombre denormalizados con lecturas simples.
// Una fila ausente deja el campo vacío; cualquier otro fallo se propaga.
func (r *ProductSizeRepo) fillSizeLabel(ps *entity.ProductSize) error {
	err := r.q.QueryRow(context.Background(), `SELECT label FROM sizes WHERE id = $1`, ps.SizeID).Scan(&ps.SizeLabel)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("resolve size label: %w", err)
	}
	err = r.q.QueryRow(context.Background(), `SELECT nama FROM products WHERE id = $1`, ps.ProductID).Scan(&ps.ProductName)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("resolve product name: %w", err)
	}
	return nil
}

func collectProductSizes(rows pgx.Rows) ([]*entity.ProductSize, error) {
	var list []*entity.ProductSize
	for rows.Next() {
		ps, err := scanProductSize(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product size: %w", err)
		}
		list = append(list, ps)
	}
	return list, rows.Err()
}

func scanProductSize(row pgx.Row) (*entity.ProductSize, error) {
	var ps entity.ProductSize
	err := row.Scan(
		&ps.ID, &ps.ProductID, &ps.SizeID, &ps.Quantity,
		&ps.SizeLabel, &ps.ProductName, &ps.CreatedAt, &ps.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ps, nil
}
