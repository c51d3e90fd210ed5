package service

import (
	"context"

	"github.com/anthanhphan/go-files-manager/internal/api/domain"
	"github.com/anthanhphan/go-files-manager/internal/api/port"
	"github.com/anthanhphan/gosdk/logger"
)

// uploadService orchestrates validation, blob storage, metadata insert,
// and the background job handoff.
type uploadService struct {
	tree  *treeService
	files port.FileRepository
	blobs port.BlobStore
	queue port.JobQueue
}

// newUploadService creates the upload use-case service.
func newUploadService(tree *treeService, files port.FileRepository, blobs port.BlobStore, queue port.JobQueue) *uploadService {
	return &uploadService{tree: tree, files: files, blobs: blobs, queue: queue}
}

// upload runs the full creation workflow for an authenticated owner.
// Folders are metadata-only. For file/image records the bytes are written
// first; if that write fails no metadata record is created. The reverse
// gap (blob durable, insert lost to a crash) is accepted, there is no
// cross-store transaction to close it.
func (s *uploadService) upload(ctx context.Context, owner *domain.User, in port.UploadInput) (*domain.FileRecord, error) {
	rec, err := s.tree.validateCreate(ctx, in, owner.ID)
	if err != nil {
		return nil, err
	}

	if rec.Type.HasContent() {
		path, err := s.blobs.Write(ctx, in.Data)
		if err != nil {
			logger.Errorw("Blob write failed", "name", rec.Name, "error", err.Error())
			return nil, err
		}
		rec.LocalPath = path
	}

	id, err := s.files.Insert(ctx, rec)
	if err != nil {
		return nil, err
	}
	rec.ID = id

	if rec.Type.HasContent() {
		job := domain.ThumbnailJob{UserID: rec.UserID.Hex(), FileID: id.Hex()}
		if err := s.queue.Enqueue(ctx, job); err != nil {
			// The record is already durable; the workers will simply never
			// see this file. Surfacing a 5xx now would be worse.
			logger.Warnw("Thumbnail job enqueue failed", "file_id", job.FileID, "error", err.Error())
		}
	}

	logger.Infow("Upload completed", "file_id", rec.ID.Hex(), "type", string(rec.Type), "parent_id", rec.ParentID)
	return rec, nil
}
