package inventory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL inventory repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Upsert(ctx context.Context, item *Item) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO inventory_items
		  (product_id, variant_id, variant_name, stock_qty, price, import_price, supplier, brand_id, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (product_id, variant_id) DO UPDATE SET
		  variant_name=EXCLUDED.variant_name,
		  stock_qty=EXCLUDED.stock_qty,
		  price=EXCLUDED.price,
		  import_price=EXCLUDED.import_price,
		  supplier=EXCLUDED.supplier,
		  brand_id=EXCLUDED.brand_id,
		  updated_at=EXCLUDED.updated_at`,
		item.ProductID, item.VariantID, item.VariantName, item.StockQty,
		item.Price, item.ImportPrice, item.Supplier, item.BrandID, item.UpdatedAt)
	return err
}

func (r *postgresRepo) Get(ctx context.Context, productID, variantID string) (*Item, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, err
	}
	vid, err := uuid.Parse(variantID)
	if err != nil {
		return nil, err
	}
	item := &Item{}
	err = r.db.QueryRowContext(ctx, `
		SELECT product_id, variant_id, variant_name, stock_qty, price, import_price, supplier, brand_id, updated_at
		FROM inventory_items WHERE product_id=$1 AND variant_id=$2`, pid, vid).Scan(
		&item.ProductID, &item.VariantID, &item.VariantName, &item.StockQty,
		&item.Price, &item.ImportPrice, &item.Supplier, &item.BrandID, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]*Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, variant_id, variant_name, stock_qty, price, import_price, supplier, brand_id, updated_at
		FROM inventory_items ORDER BY product_id, variant_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item := &Item{}
		if err := rows.Scan(&item.ProductID, &item.VariantID, &item.VariantName, &item.StockQty,
			&item.Price, &item.ImportPrice, &item.Supplier, &item.BrandID, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *postgresRepo) AdjustStock(ctx context.Context, productID, variantID string, delta int) error {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return err
	}
	vid, err := uuid.Parse(variantID)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE inventory_items
		SET stock_qty = GREATEST(stock_qty + $3, 0), updated_at = NOW()
		WHERE product_id=$1 AND variant_id=$2`, pid, vid, delta)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("inventory record %s/%s not found", productID, variantID)
	}
	return nil
}
