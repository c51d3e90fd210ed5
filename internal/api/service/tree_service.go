package service

import (
	"context"
	"errors"

	"github.com/anthanhphan/go-files-manager/internal/api/domain"
	"github.com/anthanhphan/go-files-manager/internal/api/port"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// treeService owns the structural rules of the file tree: what may be
// created where, how records are looked up, and how visibility changes.
type treeService struct {
	files port.FileRepository
}

// newTreeService creates the tree use-case service.
func newTreeService(files port.FileRepository) *treeService {
	return &treeService{files: files}
}

// normalizeParent maps every accepted root spelling to the sentinel.
func normalizeParent(raw string) string {
	if raw == "" || raw == domain.RootParentID {
		return domain.RootParentID
	}
	return raw
}

// validateCreate checks a proposed record against the tree invariants and
// returns the unsaved record on success. Parent problems are rejected
// here, before any byte is written.
func (s *treeService) validateCreate(ctx context.Context, in port.UploadInput, ownerID bson.ObjectID) (*domain.FileRecord, error) {
	if in.Name == "" {
		return nil, port.ErrMissingName
	}

	fileType := domain.FileType(in.Type)
	if !fileType.Valid() {
		return nil, port.ErrInvalidType
	}

	if fileType.HasContent() && in.Data == "" {
		return nil, port.ErrMissingData
	}

	parentID := normalizeParent(in.ParentID)
	if parentID != domain.RootParentID {
		pid, err := bson.ObjectIDFromHex(parentID)
		if err != nil {
			return nil, port.ErrParentNotFound
		}
		parent, err := s.files.FindByID(ctx, pid)
		if err != nil {
			if errors.Is(err, port.ErrNotFound) {
				return nil, port.ErrParentNotFound
			}
			return nil, err
		}
		if parent.Type != domain.FileTypeFolder {
			return nil, port.ErrParentNotFolder
		}
	}

	return &domain.FileRecord{
		UserID:   ownerID,
		Name:     in.Name,
		Type:     fileType,
		IsPublic: in.IsPublic,
		ParentID: parentID,
	}, nil
}

// findForOwner resolves a record scoped to its owner. A malformed id is
// the same NotFound as a missing or foreign record.
func (s *treeService) findForOwner(ctx context.Context, fileID string, ownerID bson.ObjectID) (*domain.FileRecord, error) {
	oid, err := bson.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, port.ErrNotFound
	}
	return s.files.FindByIDForOwner(ctx, oid, ownerID)
}

// list returns one page of records under parentID. The parent filter is
// global across owners. Beyond-the-end pages come back empty.
func (s *treeService) list(ctx context.Context, parentID string, page int64) ([]domain.FileRecord, error) {
	if page < 0 {
		page = 0
	}
	return s.files.List(ctx, normalizeParent(parentID), page)
}

// setPublic flips visibility on a record owned by ownerID and returns the
// updated record. Repeated calls with the same value are no-ops.
func (s *treeService) setPublic(ctx context.Context, fileID string, ownerID bson.ObjectID, public bool) (*domain.FileRecord, error) {
	rec, err := s.findForOwner(ctx, fileID, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.files.SetPublic(ctx, rec.ID, public); err != nil {
		return nil, err
	}
	rec.IsPublic = public
	return rec, nil
}
