package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/sepatuhub/pos-api/internal/domain"
	"github.com/sepatuhub/pos-api/internal/domain/entity"
	"github.com/sepatuhub/pos-api/internal/domain/repository"
)

var _ repository.BrandRepository = (*BrandRepo)(nil)

// BrandRepo implementación del puerto BrandRepository sobre PostgreSQL.
// El ID es secuencial (serial), como en el esquema legado.
type BrandRepo struct {
	q Querier
}

// NewBrandRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBrandRepository(q Querier) *BrandRepo {
	return &BrandRepo{q: q}
}

// Create inserta la marca y completa el ID generado.
func (r *BrandRepo) Create(brand *entity.Brand) error {
	query := `
		INSERT INTO brands (nama, image, created_at, updated_at)
		VALUES ($1, $2, now(), now())
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(context.Background(), query, brand.Nama, brand.Image).Scan(
		&brand.ID, &brand.CreatedAt, &brand.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Entity: "Brand", Detail: fmt.Sprintf("nama %q duplicado", brand.Nama)}
		}
		return fmt.Errorf("create brand: %w", err)
	}
	return nil
}

func (r *BrandRepo) GetByID(id int64) (*entity.Brand, error) {
	var b entity.Brand
	err := r.q.QueryRow(context.Background(),
		`SELECT id, nama, image, created_at, updated_at FROM brands WHERE id = $1`, id).Scan(
		&b.ID, &b.Nama, &b.Image, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return &b, nil
}

func (r *BrandRepo) GetByNama(nama string) (*entity.Brand, error) {
	var b entity.Brand
	err := r.q.QueryRow(context.Background(),
		`SELECT id, nama, image, created_at, updated_at FROM brands WHERE nama = $1`, nama).Scan(
		&b.ID, &b.Nama, &b.Image, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand by nama: %w", err)
	}
	return &b, nil
}

func (r *BrandRepo) List(search string, limit, offset int) ([]*entity.Brand, int, error) {
	args := []any{}
	where := ""
	if search != "" {
		where = " WHERE nama ILIKE $1"
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM brands`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count brands: %w", err)
	}

	pos := len(args) + 1
	query := `SELECT id, nama, image, created_at, updated_at FROM brands` + where +
		fmt.Sprintf(" ORDER BY nama LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var list []*entity.Brand
	for rows.Next() {
		var b entity.Brand
		if err := rows.Scan(&b.ID, &b.Nama, &b.Image, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan brand: %w", err)
		}
		list = append(list, &b)
	}
	return list, total, rows.Err()
}

func (r *BrandRepo) Update(brand *entity.Brand) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE brands SET nama = $2, image = $3, updated_at = now() WHERE id = $1`,
		brand.ID, brand.Nama, brand.Image)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Entity: "Brand", Detail: fmt.Sprintf("nama %q duplicado", brand.Nama)}
		}
		return fmt.Errorf("update brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "Brand", ID: strconv.FormatInt(brand.ID, 10)}
	}
	return nil
}

func (r *BrandRepo) Delete(id int64) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return &domain.DependencyInUseError{Entity: "Brand", ID: strconv.FormatInt(id, 10), References: 1}
		}
		return fmt.Errorf("delete brand: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "Brand", ID: strconv.FormatInt(id, 10)}
	}
	return nil
}

// CountProducts cuenta productos que referencian la marca (guard de borrado).
func (r *BrandRepo) CountProducts(id int64) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products WHERE brand_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count brand products: %w", err)
	}
	return count, nil
}
