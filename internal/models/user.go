package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an application account in the document store. The commerce tables
// reference it by the hex object id.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName    string             `bson:"firstName" json:"first_name"`
	LastName     string             `bson:"lastName" json:"last_name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"created_at"`
}
