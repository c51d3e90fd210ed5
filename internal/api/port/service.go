package port

import (
	"context"
	"errors"

	"github.com/anthanhphan/go-files-manager/internal/api/domain"
)

var (
	// ErrUnauthorized means the request carried no resolvable identity.
	ErrUnauthorized = errors.New("unauthorized")

	// Validation failures for upload input. Each maps to a distinct
	// caller-visible outcome; none carries internal detail.
	ErrMissingName     = errors.New("missing name")
	ErrInvalidType     = errors.New("missing or invalid type")
	ErrMissingData     = errors.New("missing data")
	ErrInvalidData     = errors.New("invalid data encoding")
	ErrParentNotFound  = errors.New("parent not found")
	ErrParentNotFolder = errors.New("parent is not a folder")

	// ErrNotFound covers a truly absent record, an owner mismatch, and a
	// private record requested without ownership. The three are deliberately
	// indistinguishable so callers cannot probe for other users' records.
	ErrNotFound = errors.New("not found")

	// ErrFolderHasNoContent rejects downloads of folder records.
	ErrFolderHasNoContent = errors.New("a folder doesn't have content")
)

// UploadInput is the caller-supplied shape for the upload operation.
// Data holds the base64-encoded payload for file/image types and is
// ignored for folders. ParentID accepts "" and "0" as the root sentinel.
type UploadInput struct {
	Name     string
	Type     string
	Data     string
	IsPublic bool
	ParentID string
}

// DownloadResult carries the raw bytes of a stored file together with the
// content type inferred from the record name.
type DownloadResult struct {
	Data     []byte
	MIMEType string
}

// Status reports reachability of the two backing stores.
type Status struct {
	Redis bool `json:"redis"`
	DB    bool `json:"db"`
}

// Stats reports collection counts.
type Stats struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}

// FileService defines the business operations of the files manager.
// Every method except Download requires the token to resolve to a user;
// Download degrades an absent or invalid token to an anonymous requester.
type FileService interface {
	// Upload validates and persists a new record. For file/image types the
	// payload is written to blob storage before the metadata insert, and a
	// thumbnail job is enqueued after it.
	Upload(ctx context.Context, token string, in UploadInput) (*domain.FileRecord, error)

	// Show returns the record with the given id if it belongs to the caller.
	Show(ctx context.Context, token, fileID string) (*domain.FileRecord, error)

	// List returns up to one page of records under parentID, unfiltered by
	// owner. Pages beyond the end yield an empty slice.
	List(ctx context.Context, token, parentID string, page int64) ([]domain.FileRecord, error)

	// SetVisibility flips isPublic on a record owned by the caller.
	SetVisibility(ctx context.Context, token, fileID string, public bool) (*domain.FileRecord, error)

	// Download returns the stored bytes of a record, optionally a size
	// variant, subject to the visibility rules.
	Download(ctx context.Context, token, fileID, size string) (*DownloadResult, error)

	// Status and Stats back the unauthenticated health endpoints.
	Status(ctx context.Context) Status
	Stats(ctx context.Context) (Stats, error)
}
