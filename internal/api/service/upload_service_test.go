package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/anthanhphan/go-files-manager/internal/api/domain"
	"github.com/anthanhphan/go-files-manager/internal/api/port"
	"github.com/anthanhphan/go-files-manager/internal/api/service/mocks"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/mock/gomock"
)

func TestUploadService_Upload(t *testing.T) {
	ownerID := bson.NewObjectID()
	owner := &domain.User{ID: ownerID, Email: "a@example.com"}
	insertedID := bson.NewObjectID()

	type testMocks struct {
		files *mocks.MockFileRepository
		blobs *mocks.MockBlobStore
		queue *mocks.MockJobQueue
	}

	tests := []struct {
		name        string
		input       port.UploadInput
		setup       func(m testMocks)
		wantErr     error
		errContains string
		check       func(t *testing.T, rec *domain.FileRecord)
	}{
		{
			name:  "file upload writes blob then metadata then enqueues",
			input: port.UploadInput{Name: "cat.png", Type: "image", Data: "aGVsbG8="},
			setup: func(m testMocks) {
				write := m.blobs.EXPECT().
					Write(gomock.Any(), "aGVsbG8=").
					Return("/tmp/files_manager/blob-1", nil)

				insert := m.files.EXPECT().
					Insert(gomock.Any(), gomock.AssignableToTypeOf(&domain.FileRecord{})).
					DoAndReturn(func(_ context.Context, rec *domain.FileRecord) (bson.ObjectID, error) {
						if rec.LocalPath != "/tmp/files_manager/blob-1" {
							t.Fatalf("insert saw localPath %q", rec.LocalPath)
						}
						return insertedID, nil
					}).
					After(write)

				m.queue.EXPECT().
					Enqueue(gomock.Any(), domain.ThumbnailJob{UserID: ownerID.Hex(), FileID: insertedID.Hex()}).
					Return(nil).
					After(insert)
			},
			check: func(t *testing.T, rec *domain.FileRecord) {
				if rec.ID != insertedID {
					t.Fatalf("record id = %s, expected %s", rec.ID.Hex(), insertedID.Hex())
				}
				if rec.IsPublic {
					t.Fatal("record should default to private")
				}
			},
		},
		{
			name:  "folder upload is metadata only",
			input: port.UploadInput{Name: "Photos", Type: "folder"},
			setup: func(m testMocks) {
				m.files.EXPECT().
					Insert(gomock.Any(), gomock.AssignableToTypeOf(&domain.FileRecord{})).
					DoAndReturn(func(_ context.Context, rec *domain.FileRecord) (bson.ObjectID, error) {
						if rec.LocalPath != "" {
							t.Fatalf("folder must not carry a localPath, got %q", rec.LocalPath)
						}
						return insertedID, nil
					})
			},
			check: func(t *testing.T, rec *domain.FileRecord) {
				if rec.Type != domain.FileTypeFolder {
					t.Fatalf("record type = %s", rec.Type)
				}
			},
		},
		{
			name:  "blob write failure creates no metadata record",
			input: port.UploadInput{Name: "cat.png", Type: "image", Data: "aGVsbG8="},
			setup: func(m testMocks) {
				m.blobs.EXPECT().
					Write(gomock.Any(), "aGVsbG8=").
					Return("", errors.New("disk full"))
			},
			errContains: "disk full",
		},
		{
			name:    "missing data touches neither store nor queue",
			input:   port.UploadInput{Name: "cat.png", Type: "image"},
			setup:   func(m testMocks) {},
			wantErr: port.ErrMissingData,
		},
		{
			name:  "enqueue failure does not fail the upload",
			input: port.UploadInput{Name: "dog.png", Type: "image", Data: "d29vZg=="},
			setup: func(m testMocks) {
				m.blobs.EXPECT().Write(gomock.Any(), "d29vZg==").Return("/tmp/files_manager/blob-2", nil)
				m.files.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(insertedID, nil)
				m.queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(errors.New("queue down"))
			},
			check: func(t *testing.T, rec *domain.FileRecord) {
				if rec.ID != insertedID {
					t.Fatal("upload should have succeeded despite the enqueue failure")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := testMocks{
				files: mocks.NewMockFileRepository(ctrl),
				blobs: mocks.NewMockBlobStore(ctrl),
				queue: mocks.NewMockJobQueue(ctrl),
			}
			tc.setup(m)

			svc := newUploadService(newTreeService(m.files), m.files, m.blobs, m.queue)
			rec, err := svc.upload(context.Background(), owner, tc.input)

			if tc.errContains != "" {
				if err == nil || !strings.Contains(err.Error(), tc.errContains) {
					t.Fatalf("upload error = %v, expected to contain %q", err, tc.errContains)
				}
				return
			}
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("upload error = %v, expected %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("upload returned error: %v", err)
			}
			if tc.check != nil {
				tc.check(t, rec)
			}
		})
	}
}
