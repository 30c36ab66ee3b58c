package document

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL document repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, d *Document) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO documents (id, name, kind, url, mime_type, size_bytes, provider, provider_ref)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		d.ID, d.Name, d.Kind, d.URL, d.MimeType, d.SizeBytes, d.Provider, d.ProviderRef)
	return err
}

func scanDocument(scan func(...interface{}) error) (*Document, error) {
	d := &Document{}
	err := scan(&d.ID, &d.Name, &d.Kind, &d.URL, &d.MimeType, &d.SizeBytes,
		&d.Provider, &d.ProviderRef, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Document, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return scanDocument(r.db.QueryRowContext(ctx, `
		SELECT id, name, kind, url, mime_type, size_bytes, provider, provider_ref, created_at
		FROM documents WHERE id=$1`, uid).Scan)
}

func (r *postgresRepo) List(ctx context.Context, kind string) ([]*Document, error) {
	query := `SELECT id, name, kind, url, mime_type, size_bytes, provider, provider_ref, created_at
	          FROM documents`
	args := []interface{}{}
	if kind != "" {
		query += ` WHERE kind=$1`
		args = append(args, kind)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*Document
	for rows.Next() {
		d, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM documents WHERE id=$1`, uid)
	return err
}
