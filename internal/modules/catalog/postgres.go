package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL catalog repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// Create inserts the product and all its variants inside a single transaction.
func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	media, err := json.Marshal(p.Media)
	if err != nil {
		return fmt.Errorf("marshal media: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO products (id, name, description, category, supplier, brand_id, media)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		p.ID, p.Name, p.Description, p.Category, p.Supplier, p.BrandID, media)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	for _, v := range p.Variants {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO product_variants (id, product_id, name, price, import_price, stock_qty)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			v.ID, p.ID, v.Name, v.Price, v.ImportPrice, v.StockQty)
		if err != nil {
			return fmt.Errorf("insert variant: %w", err)
		}
	}

	return tx.Commit()
}

func scanProduct(scan func(...interface{}) error) (*Product, error) {
	p := &Product{}
	var media []byte
	err := scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Supplier,
		&p.BrandID, &media, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(media) > 0 {
		if err := json.Unmarshal(media, &p.Media); err != nil {
			return nil, fmt.Errorf("unmarshal media: %w", err)
		}
	}
	return p, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	p, err := scanProduct(r.db.QueryRowContext(ctx, `
		SELECT id,name,description,category,supplier,brand_id,media,created_at,updated_at
		FROM products WHERE id=$1`, uid).Scan)
	if err != nil {
		return nil, err
	}
	p.Variants, err = r.listVariants(ctx, p.ID)
	return p, err
}

func (r *postgresRepo) List(ctx context.Context, category string) ([]*Product, error) {
	query := `SELECT id,name,description,category,supplier,brand_id,media,created_at,updated_at
	          FROM products`
	args := []interface{}{}
	if category != "" {
		query += ` WHERE category=$1`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	byID := map[uuid.UUID]*Product{}
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return products, nil
	}

	vrows, err := r.db.QueryContext(ctx, `
		SELECT id,product_id,name,price,import_price,stock_qty,created_at
		FROM product_variants ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer vrows.Close()
	for vrows.Next() {
		v := &Variant{}
		if err := vrows.Scan(&v.ID, &v.ProductID, &v.Name, &v.Price, &v.ImportPrice, &v.StockQty, &v.CreatedAt); err != nil {
			return nil, err
		}
		if p, ok := byID[v.ProductID]; ok {
			p.Variants = append(p.Variants, v)
		}
	}
	return products, vrows.Err()
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]*Product, error) {
	return r.List(ctx, "")
}

// Update rewrites the product row and replaces its variant set wholesale,
// mirroring how the admin UI submits the whole product document at once.
func (r *postgresRepo) Update(ctx context.Context, p *Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	media, err := json.Marshal(p.Media)
	if err != nil {
		return fmt.Errorf("marshal media: %w", err)
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE products
		SET name=$1, description=$2, category=$3, supplier=$4, brand_id=$5, media=$6, updated_at=NOW()
		WHERE id=$7`,
		p.Name, p.Description, p.Category, p.Supplier, p.BrandID, media, p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_variants WHERE product_id=$1`, p.ID); err != nil {
		return fmt.Errorf("clear variants: %w", err)
	}
	for _, v := range p.Variants {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO product_variants (id, product_id, name, price, import_price, stock_qty)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			v.ID, p.ID, v.Name, v.Price, v.ImportPrice, v.StockQty)
		if err != nil {
			return fmt.Errorf("insert variant: %w", err)
		}
	}

	return tx.Commit()
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	// product_variants rows go with the product via ON DELETE CASCADE
	_, err = r.db.ExecContext(ctx, `DELETE FROM products WHERE id=$1`, uid)
	return err
}

func (r *postgresRepo) listVariants(ctx context.Context, productID uuid.UUID) ([]*Variant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id,product_id,name,price,import_price,stock_qty,created_at
		FROM product_variants WHERE product_id=$1 ORDER BY created_at, id`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []*Variant
	for rows.Next() {
		v := &Variant{}
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.Price, &v.ImportPrice, &v.StockQty, &v.CreatedAt); err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}
