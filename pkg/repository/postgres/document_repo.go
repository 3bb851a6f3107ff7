package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/document"
)

// DocumentRepository stores uploaded document metadata and extracted text.
type DocumentRepository struct {
	pool *pgxpool.Pool
}

func NewDocumentRepository(pool *pgxpool.Pool) (*DocumentRepository, error) {
	r := &DocumentRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *DocumentRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS documents (
	id UUID PRIMARY KEY,
	owner_id UUID NOT NULL,
	filename TEXT NOT NULL,
	mime_type TEXT NOT NULL,
	size_bytes BIGINT NOT NULL,
	storage_key TEXT NOT NULL,
	chunks INT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS parsed_documents (
	document_id UUID PRIMARY KEY REFERENCES documents(id) ON DELETE CASCADE,
	text TEXT NOT NULL
);
`)
	return err
}

func (r *DocumentRepository) Create(ctx context.Context, d document.Document) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO documents (id, owner_id, filename, mime_type, size_bytes, storage_key, chunks, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, d.ID, d.OwnerID, d.Filename, d.MimeType, d.Size, d.StorageKey, d.Chunks, d.CreatedAt)
	return err
}

func (r *DocumentRepository) SaveParsed(ctx context.Context, p document.Parsed) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO parsed_documents (document_id, text)
VALUES ($1, $2)
ON CONFLICT (document_id) DO UPDATE SET text = EXCLUDED.text
`, p.DocumentID, p.Text)
	return err
}

func (r *DocumentRepository) GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (document.Document, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, owner_id, filename, mime_type, size_bytes, storage_key, chunks, created_at
FROM documents WHERE id = $1 AND owner_id = $2
`, id, ownerID)
	return scanDocument(row)
}

func (r *DocumentRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]document.Document, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, owner_id, filename, mime_type, size_bytes, storage_key, chunks, created_at
FROM documents WHERE owner_id = $3
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []document.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, d)
	}
	return res, nil
}

func (r *DocumentRepository) ListParsed(ctx context.Context) ([]document.Parsed, error) {
	rows, err := r.pool.Query(ctx, `
SELECT p.document_id, d.owner_id, p.text
FROM parsed_documents p
JOIN documents d ON d.id = p.document_id
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []document.Parsed
	for rows.Next() {
		var p document.Parsed
		if err := rows.Scan(&p.DocumentID, &p.OwnerID, &p.Text); err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, nil
}

func (r *DocumentRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (document.Document, error) {
	row := r.pool.QueryRow(ctx, `
DELETE FROM documents WHERE id = $1 AND owner_id = $2
RETURNING id, owner_id, filename, mime_type, size_bytes, storage_key, chunks, created_at
`, id, ownerID)
	return scanDocument(row)
}

func scanDocument(row pgx.Row) (document.Document, error) {
	var d document.Document
	var created time.Time
	if err := row.Scan(&d.ID, &d.OwnerID, &d.Filename, &d.MimeType, &d.Size, &d.StorageKey, &d.Chunks, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return document.Document{}, document.ErrNotFound
		}
		return document.Document{}, err
	}
	d.CreatedAt = created.UTC()
	return d, nil
}
