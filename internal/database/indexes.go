package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureUserIndexes: creating email_unique index")
	if _, err := db.Collection("users").Indexes().CreateOne(ctx, emailIndex); err != nil {
		log.Println("EnsureUserIndexes: email index error:", err)
		return err
	}
	return nil
}

func EnsureRefreshTokenIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	hashIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "tokenHash", Value: 1}},
		Options: options.Index().
			SetName("tokenHash_unique").
			SetUnique(true),
	}
	expiryIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetName("expiresAt_ttl").SetExpireAfterSeconds(0),
	}

	log.Println("EnsureRefreshTokenIndexes: creating tokenHash_unique and expiresAt_ttl indexes")
	if _, err := db.Collection("refresh_tokens").Indexes().CreateMany(ctx, []mongo.IndexModel{hashIndex, expiryIndex}); err != nil {
		log.Println("EnsureRefreshTokenIndexes: index error:", err)
		return err
	}
	return nil
}
