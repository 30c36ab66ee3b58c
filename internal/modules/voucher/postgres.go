package voucher

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL voucher repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const voucherColumns = `id, code, type, value, min_order, starts_at, expires_at, usage_limit, used_count, is_active, created_at, updated_at`

func scanVoucher(scan func(...interface{}) error) (*Voucher, error) {
	v := &Voucher{}
	err := scan(&v.ID, &v.Code, &v.Type, &v.Value, &v.MinOrder, &v.StartsAt,
		&v.ExpiresAt, &v.UsageLimit, &v.UsedCount, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *postgresRepo) Create(ctx context.Context, v *Voucher) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vouchers (id, code, type, value, min_order, starts_at, expires_at, usage_limit, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		v.ID, v.Code, v.Type, v.Value, v.MinOrder, v.StartsAt, v.ExpiresAt, v.UsageLimit, v.IsActive)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Voucher, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return scanVoucher(r.db.QueryRowContext(ctx,
		`SELECT `+voucherColumns+` FROM vouchers WHERE id=$1`, uid).Scan)
}

func (r *postgresRepo) GetByCode(ctx context.Context, code string) (*Voucher, error) {
	return scanVoucher(r.db.QueryRowContext(ctx,
		`SELECT `+voucherColumns+` FROM vouchers WHERE code=$1`, strings.ToUpper(code)).Scan)
}

func (r *postgresRepo) List(ctx context.Context, activeOnly bool) ([]*Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers`
	if activeOnly {
		query += ` WHERE is_active=true`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vouchers []*Voucher
	for rows.Next() {
		v, err := scanVoucher(rows.Scan)
		if err != nil {
			return nil, err
		}
		vouchers = append(vouchers, v)
	}
	return vouchers, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, v *Voucher) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE vouchers
		SET code=$1, type=$2, value=$3, min_order=$4, starts_at=$5, expires_at=$6,
		    usage_limit=$7, is_active=$8, updated_at=NOW()
		WHERE id=$9`,
		v.Code, v.Type, v.Value, v.MinOrder, v.StartsAt, v.ExpiresAt,
		v.UsageLimit, v.IsActive, v.ID)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM vouchers WHERE id=$1`, uid)
	return err
}

func (r *postgresRepo) IncrementUsage(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE vouchers SET used_count = used_count + 1, updated_at=NOW() WHERE id=$1`, uid)
	return err
}
