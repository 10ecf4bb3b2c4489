package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an admin credential record. PasswordHash is a bcrypt hash, the
// plaintext is never stored.
type User struct {
	MongoID      primitive.ObjectID `bson:"_id" json:"-"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"password" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"-"`
}
