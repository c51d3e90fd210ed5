package domain

import "go.mongodb.org/mongo-driver/v2/bson"

// User is the externally-owned identity referenced by FileRecord.UserID.
// This service only reads users; account creation lives elsewhere.
type User struct {
	ID    bson.ObjectID `bson:"_id" json:"id"`
	Email string        `bson:"email" json:"email"`
}
