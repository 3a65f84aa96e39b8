package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RefreshToken is a single-use rotating credential. Only a sha256 hash of the
// issued token string is stored; the hash never leaves the server.
type RefreshToken struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID  `bson:"userId" json:"user_id"`
	TokenHash       string              `bson:"tokenHash" json:"-"`
	ExpiresAt       time.Time           `bson:"expiresAt" json:"expires_at"`
	Revoked         bool                `bson:"revoked" json:"revoked"`
	CreatedAt       time.Time           `bson:"createdAt" json:"created_at"`
	ReplacedByToken *primitive.ObjectID `bson:"replacedByToken,omitempty" json:"replaced_by_token,omitempty"`
}

// Expired reports whether the token is past its expiry at the given instant.
func (t RefreshToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
