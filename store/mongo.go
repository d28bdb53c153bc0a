package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-marketplace/apperrors"
)

// Connect dials MongoDB, verifies the connection, and wires the four named
// collections. A unique index on users.email backs the login-is-upsert
// invariant.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, apperrors.StoreUnavailable("mongo connect failed", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, apperrors.StoreUnavailable("mongo ping failed", err)
	}

	db := client.Database(database)
	users := db.Collection("users")

	_, err = users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, apperrors.StoreUnavailable("users email index failed", err)
	}

	return &Store{
		Users:      &mongoCollection{col: users},
		Categories: &mongoCollection{col: db.Collection("categories")},
		Products:   &mongoCollection{col: db.Collection("products")},
		Orders:     &mongoCollection{col: db.Collection("orders")},
		disconnect: client.Disconnect,
	}, nil
}

type mongoCollection struct {
	col *mongo.Collection
}

func (c *mongoCollection) FindOne(ctx context.Context, filter bson.M, out interface{}) (bool, error) {
	err := c.col.FindOne(ctx, filter).Decode(out)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, apperrors.StoreUnavailable("find failed", err)
	}
	return true, nil
}

func (c *mongoCollection) FindAll(ctx context.Context, filter bson.M, out interface{}) error {
	cursor, err := c.col.Find(ctx, filter)
	if err != nil {
		return apperrors.StoreUnavailable("find failed", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return apperrors.StoreUnavailable("cursor read failed", err)
	}
	return nil
}

func (c *mongoCollection) InsertOne(ctx context.Context, doc interface{}) (string, error) {
	result, err := c.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicateKey
		}
		return "", apperrors.StoreUnavailable("insert failed", err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return "", nil
}

func (c *mongoCollection) UpdateOne(ctx context.Context, filter, set bson.M, upsert bool) (*UpdateResult, error) {
	opts := options.Update().SetUpsert(upsert)
	result, err := c.col.UpdateOne(ctx, filter, bson.M{"$set": set}, opts)
	if err != nil {
		return nil, apperrors.StoreUnavailable("update failed", err)
	}
	return toUpdateResult(result), nil
}

func (c *mongoCollection) UpdateMany(ctx context.Context, filter, set bson.M) (*UpdateResult, error) {
	result, err := c.col.UpdateMany(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return nil, apperrors.StoreUnavailable("update failed", err)
	}
	return toUpdateResult(result), nil
}

func (c *mongoCollection) DeleteOne(ctx context.Context, filter bson.M) (*DeleteResult, error) {
	result, err := c.col.DeleteOne(ctx, filter)
	if err != nil {
		return nil, apperrors.StoreUnavailable("delete failed", err)
	}
	return &DeleteResult{DeletedCount: result.DeletedCount}, nil
}

func (c *mongoCollection) DeleteMany(ctx context.Context, filter bson.M) (*DeleteResult, error) {
	result, err := c.col.DeleteMany(ctx, filter)
	if err != nil {
		return nil, apperrors.StoreUnavailable("delete failed", err)
	}
	return &DeleteResult{DeletedCount: result.DeletedCount}, nil
}

func toUpdateResult(r *mongo.UpdateResult) *UpdateResult {
	out := &UpdateResult{
		MatchedCount:  r.MatchedCount,
		ModifiedCount: r.ModifiedCount,
	}
	if oid, ok := r.UpsertedID.(primitive.ObjectID); ok {
		out.UpsertedID = oid.Hex()
	}
	return out
}
