package domain

import "go.mongodb.org/mongo-driver/v2/bson"

// RootParentID is the sentinel parent value for records placed at the top
// level of the tree. The transport layer accepts 0 and "0" interchangeably;
// the store always holds the string form.
const RootParentID = "0"

// FileType enumerates the kinds of records the tree can hold.
type FileType string

const (
	FileTypeFolder FileType = "folder"
	FileTypeFile   FileType = "file"
	FileTypeImage  FileType = "image"
)

// Valid reports whether t is one of the three accepted record types.
func (t FileType) Valid() bool {
	switch t {
	case FileTypeFolder, FileTypeFile, FileTypeImage:
		return true
	}
	return false
}

// HasContent reports whether records of this type carry stored bytes.
func (t FileType) HasContent() bool {
	return t == FileTypeFile || t == FileTypeImage
}

// FileRecord is the metadata document for a file or folder.
//
// UserID and Type are fixed at creation. IsPublic is the only mutable
// field; it changes exclusively through the publish/unpublish operations.
// LocalPath is set only for file/image records, never for folders.
type FileRecord struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    bson.ObjectID `bson:"userId" json:"userId"`
	Name      string        `bson:"name" json:"name"`
	Type      FileType      `bson:"type" json:"type"`
	IsPublic  bool          `bson:"isPublic" json:"isPublic"`
	ParentID  string        `bson:"parentId" json:"parentId"`
	LocalPath string        `bson:"localPath,omitempty" json:"-"`
}

// IsOwnedBy reports whether the record belongs to the given user.
func (r *FileRecord) IsOwnedBy(userID bson.ObjectID) bool {
	return r.UserID == userID
}
