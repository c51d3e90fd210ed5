package service

import (
	"context"

	"github.com/anthanhphan/go-files-manager/internal/api/domain"
	"github.com/anthanhphan/go-files-manager/internal/api/port"
)

// FileServiceImpl is the facade that wires use-case services for the
// files-manager operations. It holds no mutable state of its own; every
// request runs independently against the external stores.
type FileServiceImpl struct {
	authUseCase     *authService
	treeUseCase     *treeService
	uploadUseCase   *uploadService
	downloadUseCase *downloadService
	statsUseCase    *statsService
}

// Ensure FileServiceImpl implements port.FileService.
var _ port.FileService = (*FileServiceImpl)(nil)

// NewFileService builds the facade and all use-case services.
func NewFileService(
	files port.FileRepository,
	users port.UserRepository,
	tokens port.TokenStore,
	blobs port.BlobStore,
	queue port.JobQueue,
	dbHealth port.Pinger,
) *FileServiceImpl {
	auth := newAuthService(tokens, users)
	tree := newTreeService(files)

	return &FileServiceImpl{
		authUseCase:     auth,
		treeUseCase:     tree,
		uploadUseCase:   newUploadService(tree, files, blobs, queue),
		downloadUseCase: newDownloadService(auth, files, blobs),
		statsUseCase:    newStatsService(files, users, tokens, dbHealth),
	}
}

// Upload authenticates the caller and runs the creation workflow.
func (s *FileServiceImpl) Upload(ctx context.Context, token string, in port.UploadInput) (*domain.FileRecord, error) {
	owner, err := s.authUseCase.requireUser(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.uploadUseCase.upload(ctx, owner, in)
}

// Show returns a record owned by the caller.
func (s *FileServiceImpl) Show(ctx context.Context, token, fileID string) (*domain.FileRecord, error) {
	owner, err := s.authUseCase.requireUser(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.treeUseCase.findForOwner(ctx, fileID, owner.ID)
}

// List returns one page of records under a parent.
func (s *FileServiceImpl) List(ctx context.Context, token, parentID string, page int64) ([]domain.FileRecord, error) {
	if _, err := s.authUseCase.requireUser(ctx, token); err != nil {
		return nil, err
	}
	return s.treeUseCase.list(ctx, parentID, page)
}

// SetVisibility publishes or unpublishes a record owned by the caller.
func (s *FileServiceImpl) SetVisibility(ctx context.Context, token, fileID string, public bool) (*domain.FileRecord, error) {
	owner, err := s.authUseCase.requireUser(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.treeUseCase.setPublic(ctx, fileID, owner.ID, public)
}

// Download serves stored bytes; authentication is optional here.
func (s *FileServiceImpl) Download(ctx context.Context, token, fileID, size string) (*port.DownloadResult, error) {
	return s.downloadUseCase.download(ctx, token, fileID, size)
}

// Status reports backing-store reachability.
func (s *FileServiceImpl) Status(ctx context.Context) port.Status {
	return s.statsUseCase.status(ctx)
}

// Stats reports collection counts.
func (s *FileServiceImpl) Stats(ctx context.Context) (port.Stats, error) {
	return s.statsUseCase.stats(ctx)
}
