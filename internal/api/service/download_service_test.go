package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/anthanhphan/go-files-manager/internal/api/domain"
	"github.com/anthanhphan/go-files-manager/internal/api/port"
	"github.com/anthanhphan/go-files-manager/internal/api/service/mocks"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/mock/gomock"
)

func TestDownloadService_Download(t *testing.T) {
	ownerID := bson.NewObjectID()
	strangerID := bson.NewObjectID()
	fileID := bson.NewObjectID()

	privateImage := &domain.FileRecord{
		ID:        fileID,
		UserID:    ownerID,
		Name:      "cat.png",
		Type:      domain.FileTypeImage,
		IsPublic:  false,
		ParentID:  domain.RootParentID,
		LocalPath: "/tmp/files_manager/blob-1",
	}
	publicImage := &domain.FileRecord{
		ID:        fileID,
		UserID:    ownerID,
		Name:      "cat.png",
		Type:      domain.FileTypeImage,
		IsPublic:  true,
		ParentID:  domain.RootParentID,
		LocalPath: "/tmp/files_manager/blob-1",
	}
	folder := &domain.FileRecord{
		ID:       fileID,
		UserID:   ownerID,
		Name:     "Photos",
		Type:     domain.FileTypeFolder,
		IsPublic: true,
		ParentID: domain.RootParentID,
	}

	type testMocks struct {
		files  *mocks.MockFileRepository
		users  *mocks.MockUserRepository
		tokens *mocks.MockTokenStore
		blobs  *mocks.MockBlobStore
	}

	expectResolve := func(m testMocks, token string, userID bson.ObjectID) {
		m.tokens.EXPECT().UserIDForToken(gomock.Any(), token).Return(userID.Hex(), nil)
		m.users.EXPECT().FindByID(gomock.Any(), userID).Return(&domain.User{ID: userID}, nil)
	}

	tests := []struct {
		name     string
		token    string
		fileID   string
		size     string
		setup    func(m testMocks)
		wantErr  error
		wantData []byte
		wantMIME string
	}{
		{
			name:   "owner reads private file",
			token:  "tok-owner",
			fileID: fileID.Hex(),
			setup: func(m testMocks) {
				m.files.EXPECT().FindByID(gomock.Any(), fileID).Return(privateImage, nil)
				expectResolve(m, "tok-owner", ownerID)
				m.blobs.EXPECT().Read(gomock.Any(), "/tmp/files_manager/blob-1", "").Return([]byte("hello"), nil)
			},
			wantData: []byte("hello"),
			wantMIME: "image/png",
		},
		{
			name:   "anonymous cannot see a private file",
			token:  "",
			fileID: fileID.Hex(),
			setup: func(m testMocks) {
				m.files.EXPECT().FindByID(gomock.Any(), fileID).Return(privateImage, nil)
			},
			wantErr: port.ErrNotFound,
		},
		{
			name:   "other user cannot see a private file",
			token:  "tok-stranger",
			fileID: fileID.Hex(),
			setup: func(m testMocks) {
				m.files.EXPECT().FindByID(gomock.Any(), fileID).Return(privateImage, nil)
				expectResolve(m, "tok-stranger", strangerID)
			},
			wantErr: port.ErrNotFound,
		},
		{
			name:   "anonymous reads public file",
			token:  "",
			fileID: fileID.Hex(),
			setup: func(m testMocks) {
				m.files.EXPECT().FindByID(gomock.Any(), fileID).Return(publicImage, nil)
				m.blobs.EXPECT().Read(gomock.Any(), "/tmp/files_manager/blob-1", "").Return([]byte("hello"), nil)
			},
			wantData: []byte("hello"),
			wantMIME: "image/png",
		},
		{
			name:   "invalid token degrades to anonymous",
			token:  "tok-expired",
			fileID: fileID.Hex(),
			setup: func(m testMocks) {
				m.files.EXPECT().FindByID(gomock.Any(), fileID).Return(publicImage, nil)
				m.tokens.EXPECT().UserIDForToken(gomock.Any(), "tok-expired").Return("", port.ErrNotFound)
				m.blobs.EXPECT().Read(gomock.Any(), "/tmp/files_manager/blob-1", "").Return([]byte("hello"), nil)
			},
			wantData: []byte("hello"),
			wantMIME: "image/png",
		},
		{
			name:   "size variant path",
			token:  "",
			fileID: fileID.Hex(),
			size:   "250",
			setup: func(m testMocks) {
				m.files.EXPECT().FindByID(gomock.Any(), fileID).Return(publicImage, nil)
				m.blobs.EXPECT().Read(gomock.Any(), "/tmp/files_manager/blob-1", "250").Return([]byte("thumb"), nil)
			},
			wantData: []byte("thumb"),
			wantMIME: "image/png",
		},
		{
			name:   "folder has no content even for its owner",
			token:  "tok-owner",
			fileID: fileID.Hex(),
			setup: func(m testMocks) {
				m.files.EXPECT().FindByID(gomock.Any(), fileID).Return(folder, nil)
				expectResolve(m, "tok-owner", ownerID)
			},
			wantErr: port.ErrFolderHasNoContent,
		},
		{
			name:    "malformed id",
			token:   "",
			fileID:  "zzz",
			setup:   func(m testMocks) {},
			wantErr: port.ErrNotFound,
		},
		{
			name:   "record absent",
			token:  "",
			fileID: fileID.Hex(),
			setup: func(m testMocks) {
				m.files.EXPECT().FindByID(gomock.Any(), fileID).Return(nil, port.ErrNotFound)
			},
			wantErr: port.ErrNotFound,
		},
		{
			name:   "bytes missing on disk",
			token:  "",
			fileID: fileID.Hex(),
			setup: func(m testMocks) {
				m.files.EXPECT().FindByID(gomock.Any(), fileID).Return(publicImage, nil)
				m.blobs.EXPECT().Read(gomock.Any(), "/tmp/files_manager/blob-1", "").Return(nil, port.ErrNotFound)
			},
			wantErr: port.ErrNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := testMocks{
				files:  mocks.NewMockFileRepository(ctrl),
				users:  mocks.NewMockUserRepository(ctrl),
				tokens: mocks.NewMockTokenStore(ctrl),
				blobs:  mocks.NewMockBlobStore(ctrl),
			}
			tc.setup(m)

			svc := newDownloadService(newAuthService(m.tokens, m.users), m.files, m.blobs)
			res, err := svc.download(context.Background(), tc.token, tc.fileID, tc.size)

			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("download error = %v, expected %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("download returned error: %v", err)
			}
			if !bytes.Equal(res.Data, tc.wantData) {
				t.Fatalf("download data = %q, expected %q", res.Data, tc.wantData)
			}
			if res.MIMEType != tc.wantMIME {
				t.Fatalf("mime type = %q, expected %q", res.MIMEType, tc.wantMIME)
			}
		})
	}
}

func TestContentTypeForName(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     string
	}{
		{name: "png", fileName: "cat.png", want: "image/png"},
		{name: "no extension", fileName: "README", want: "application/octet-stream"},
		{name: "unknown extension", fileName: "data.qz9", want: "application/octet-stream"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := contentTypeForName(tc.fileName); got != tc.want {
				t.Fatalf("contentTypeForName(%q) = %q, expected %q", tc.fileName, got, tc.want)
			}
		})
	}
}
