package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"viet_commerce/internal/logger"
)

// indexSpec mô tả một index cần đảm bảo tồn tại cho một collection.
type indexSpec struct {
	collection string
	keys       bson.D
	unique     bool
	sparse     bool
}

// EnsureIndexes tạo các indexes cần thiết cho các collection nghiệp vụ.
// Gọi một lần lúc khởi động; CreateOne là idempotent với index trùng định nghĩa.
func EnsureIndexes(db *mongo.Database) error {
	specs := []indexSpec{
		{collection: "users", keys: bson.D{{Key: "email", Value: 1}}, unique: true},
		{collection: "roles", keys: bson.D{{Key: "type", Value: 1}, {Key: "field", Value: 1}}},
		{collection: "user_roles", keys: bson.D{{Key: "userId", Value: 1}, {Key: "roleId", Value: 1}}, unique: true},
		{collection: "products", keys: bson.D{{Key: "userId", Value: 1}}},
		{collection: "products", keys: bson.D{{Key: "categoryId", Value: 1}}},
		{collection: "products", keys: bson.D{{Key: "brandId", Value: 1}}},
		{collection: "reviews", keys: bson.D{{Key: "productId", Value: 1}, {Key: "userId", Value: 1}}, unique: true},
		{collection: "addresses", keys: bson.D{{Key: "userId", Value: 1}}},
		{collection: "cart_items", keys: bson.D{{Key: "userId", Value: 1}, {Key: "productId", Value: 1}}},
		{collection: "orders", keys: bson.D{{Key: "userId", Value: 1}}},
		{collection: "posts", keys: bson.D{{Key: "userId", Value: 1}}},
		{collection: "posts", keys: bson.D{{Key: "slug", Value: 1}}, unique: true},
		{collection: "files", keys: bson.D{{Key: "key", Value: 1}}, unique: true},
		{collection: "provinces", keys: bson.D{{Key: "code", Value: 1}}, unique: true},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, spec := range specs {
		opts := options.Index().SetUnique(spec.unique).SetSparse(spec.sparse)
		_, err := db.Collection(spec.collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    spec.keys,
			Options: opts,
		})
		if err != nil {
			logger.GetAppLogger().WithError(err).WithField("collection", spec.collection).
				Error("Failed to create index")
			return err
		}
	}

	logger.GetAppLogger().Info("All indexes ensured")
	return nil
}
