package port

import (
	"context"

	"github.com/anthanhphan/go-files-manager/internal/api/domain"
	"go.mongodb.org/mongo-driver/v2/bson"
)

//go:generate mockgen -destination=../service/mocks/ports_mock.go -package=mocks -source=repository.go

// PageSize is the fixed page length for FileRepository.List.
const PageSize = 20

// FileRepository is the document-store view of the files collection.
// Lookups return ErrNotFound for absence; it is a normal outcome.
type FileRepository interface {
	// Insert persists a new record and returns the store-assigned id.
	Insert(ctx context.Context, rec *domain.FileRecord) (bson.ObjectID, error)

	// FindByID looks a record up regardless of owner.
	FindByID(ctx context.Context, id bson.ObjectID) (*domain.FileRecord, error)

	// FindByIDForOwner looks a record up scoped to the owning user.
	FindByIDForOwner(ctx context.Context, id, ownerID bson.ObjectID) (*domain.FileRecord, error)

	// SetPublic updates the isPublic flag on a single record.
	SetPublic(ctx context.Context, id bson.ObjectID, public bool) error

	// List returns up to PageSize records whose parentId equals parentID,
	// skipping page*PageSize, in stable insertion order.
	List(ctx context.Context, parentID string, page int64) ([]domain.FileRecord, error)

	// Count returns the total number of file records.
	Count(ctx context.Context) (int64, error)
}

// UserRepository reads the externally-owned users collection.
type UserRepository interface {
	FindByID(ctx context.Context, id bson.ObjectID) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

// TokenStore resolves opaque bearer tokens to user id strings. Expiry is
// managed by whoever issues the tokens; this side only reads.
type TokenStore interface {
	// UserIDForToken returns the user id mapped to token, or ErrNotFound.
	UserIDForToken(ctx context.Context, token string) (string, error)

	Ping(ctx context.Context) error
}

// BlobStore persists raw file content on durable storage.
type BlobStore interface {
	// Write decodes the base64 payload and stores it under a fresh
	// identifier, returning the full path of the blob.
	Write(ctx context.Context, encoded string) (string, error)

	// Read returns the bytes at path, or at path_<size> when size is
	// non-empty. A missing blob yields ErrNotFound.
	Read(ctx context.Context, path, size string) ([]byte, error)
}

// JobQueue hands thumbnail jobs to the background processing pipeline.
// Delivery is at-least-once; no result is awaited.
type JobQueue interface {
	Enqueue(ctx context.Context, job domain.ThumbnailJob) error
}

// Pinger reports reachability of a backing store for the status endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}
