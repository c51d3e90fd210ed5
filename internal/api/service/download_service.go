package service

import (
	"context"
	"mime"
	"path/filepath"

	"github.com/anthanhphan/go-files-manager/internal/api/domain"
	"github.com/anthanhphan/go-files-manager/internal/api/port"
	"github.com/anthanhphan/gosdk/logger"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const defaultMIMEType = "application/octet-stream"

// downloadService serves stored bytes under the visibility rules.
type downloadService struct {
	auth  *authService
	files port.FileRepository
	blobs port.BlobStore
}

// newDownloadService creates the download use-case service.
func newDownloadService(auth *authService, files port.FileRepository, blobs port.BlobStore) *downloadService {
	return &downloadService{auth: auth, files: files, blobs: blobs}
}

// download fetches a record by id without owner scoping, decides access
// from visibility and requester identity, and reads the blob. A token
// that fails to resolve demotes the requester to anonymous rather than
// failing the request; public files must stay reachable without one.
func (s *downloadService) download(ctx context.Context, token, fileID, size string) (*port.DownloadResult, error) {
	oid, err := bson.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, port.ErrNotFound
	}

	rec, err := s.files.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	requester, err := s.auth.resolve(ctx, token)
	if err != nil {
		logger.Warnw("Requester resolution failed, treating as anonymous", "error", err.Error())
		requester = nil
	}

	isOwner := requester != nil && rec.IsOwnedBy(requester.ID)
	if !rec.IsPublic && !isOwner {
		// Existence of private records is not disclosed.
		return nil, port.ErrNotFound
	}

	if rec.Type == domain.FileTypeFolder {
		return nil, port.ErrFolderHasNoContent
	}

	data, err := s.blobs.Read(ctx, rec.LocalPath, size)
	if err != nil {
		return nil, err
	}

	return &port.DownloadResult{Data: data, MIMEType: contentTypeForName(rec.Name)}, nil
}

// contentTypeForName infers the content type from the record's display
// name extension, not from the stored bytes.
func contentTypeForName(name string) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return defaultMIMEType
}
