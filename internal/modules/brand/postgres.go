package brand

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL brand repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, b *Brand) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO brands (id, name, logo_url, description, is_active)
		VALUES ($1,$2,$3,$4,$5)`,
		b.ID, b.Name, b.LogoURL, b.Description, b.IsActive)
	return err
}

func scanBrand(scan func(...interface{}) error) (*Brand, error) {
	b := &Brand{}
	err := scan(&b.ID, &b.Name, &b.LogoURL, &b.Description, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Brand, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return scanBrand(r.db.QueryRowContext(ctx, `
		SELECT id, name, logo_url, description, is_active, created_at, updated_at
		FROM brands WHERE id=$1`, uid).Scan)
}

func (r *postgresRepo) List(ctx context.Context, activeOnly bool) ([]*Brand, error) {
	query := `SELECT id, name, logo_url, description, is_active, created_at, updated_at FROM brands`
	if activeOnly {
		query += ` WHERE is_active=true`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var brands []*Brand
	for rows.Next() {
		b, err := scanBrand(rows.Scan)
		if err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, b *Brand) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE brands
		SET name=$1, logo_url=$2, description=$3, is_active=$4, updated_at=NOW()
		WHERE id=$5`,
		b.Name, b.LogoURL, b.Description, b.IsActive, b.ID)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM brands WHERE id=$1`, uid)
	return err
}
