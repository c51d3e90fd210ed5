package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthanhphan/go-files-manager/internal/api/domain"
	"github.com/anthanhphan/go-files-manager/internal/api/port"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const filesCollection = "files"

// FileRepository implements port.FileRepository on a MongoDB collection.
type FileRepository struct {
	coll *mongo.Collection
}

// Ensure FileRepository implements port.FileRepository.
var _ port.FileRepository = (*FileRepository)(nil)

// NewFileRepository binds the repository to the files collection of db.
func NewFileRepository(db *mongo.Database) *FileRepository {
	return &FileRepository{coll: db.Collection(filesCollection)}
}

// Insert persists rec and returns the id assigned by the store.
func (r *FileRepository) Insert(ctx context.Context, rec *domain.FileRecord) (bson.ObjectID, error) {
	res, err := r.coll.InsertOne(ctx, rec)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("insert file record: %w", err)
	}

	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

// FindByID returns the record with the given id, unscoped by owner.
func (r *FileRepository) FindByID(ctx context.Context, id bson.ObjectID) (*domain.FileRecord, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByIDForOwner returns the record only when it belongs to ownerID.
// An owner mismatch is reported as port.ErrNotFound, same as absence.
func (r *FileRepository) FindByIDForOwner(ctx context.Context, id, ownerID bson.ObjectID) (*domain.FileRecord, error) {
	return r.findOne(ctx, bson.M{"_id": id, "userId": ownerID})
}

func (r *FileRepository) findOne(ctx context.Context, filter bson.M) (*domain.FileRecord, error) {
	var rec domain.FileRecord
	if err := r.coll.FindOne(ctx, filter).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, port.ErrNotFound
		}
		return nil, fmt.Errorf("find file record: %w", err)
	}
	return &rec, nil
}

// SetPublic flips the isPublic flag on a single record. Single-document
// updates are atomic; concurrent flips are last-write-wins.
func (r *FileRepository) SetPublic(ctx context.Context, id bson.ObjectID, public bool) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"isPublic": public}})
	if err != nil {
		return fmt.Errorf("update file visibility: %w", err)
	}
	if res.MatchedCount == 0 {
		return port.ErrNotFound
	}
	return nil
}

// List pages through records under parentID with a match/skip/limit
// pipeline. Insertion order is the stable order. No owner filter is
// applied; listing is global by parent.
func (r *FileRepository) List(ctx context.Context, parentID string, page int64) ([]domain.FileRecord, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "parentId", Value: parentID}}}},
		bson.D{{Key: "$skip", Value: page * port.PageSize}},
		bson.D{{Key: "$limit", Value: int64(port.PageSize)}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list file records: %w", err)
	}
	defer cursor.Close(ctx)

	records := make([]domain.FileRecord, 0, port.PageSize)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode file records: %w", err)
	}
	return records, nil
}

// Count returns the size of the files collection.
func (r *FileRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count file records: %w", err)
	}
	return n, nil
}
