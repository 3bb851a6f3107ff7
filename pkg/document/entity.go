package document

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrUnsupportedFormat = errors.New("unsupported file format: only pdf, txt, csv and md are allowed")
	ErrEmptyDocument     = errors.New("document has no extractable text")
)

// Document holds metadata of an uploaded knowledge file.
type Document struct {
	ID         uuid.UUID `json:"id"`
	OwnerID    uuid.UUID `json:"ownerId"`
	Filename   string    `json:"filename"`
	MimeType   string    `json:"mimeType"`
	Size       int64     `json:"size"`
	StorageKey string    `json:"storageKey,omitempty"`
	Chunks     int       `json:"chunks"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Parsed holds the text extracted from a document. OwnerID is carried so the
// vector index can be rebuilt with the right visibility after a restart.
type Parsed struct {
	DocumentID uuid.UUID
	OwnerID    uuid.UUID
	Text       string
}

// Repository is the persistence port for document metadata and parsed text.
type Repository interface {
	Create(ctx context.Context, d Document) error
	SaveParsed(ctx context.Context, p Parsed) error
	GetForOwner(ctx context.Context, ownerID, id uuid.UUID) (Document, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Document, error)
	// ListParsed returns every stored parsed text; used to rebuild the vector
	// store on boot.
	ListParsed(ctx context.Context) ([]Parsed, error)
	// DeleteForOwner returns the deleted meta for storage cleanup.
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) (Document, error)
}
