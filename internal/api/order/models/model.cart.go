package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem một dòng trong giỏ hàng. Mỗi cặp (userId, productId) chỉ có
// một dòng, thêm trùng sẽ cộng dồn số lượng.
type CartItem struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId" index:"single:1"`
	ProductID primitive.ObjectID `json:"productId" bson:"productId" index:"single:1"`
	Quantity  int64              `json:"quantity" bson:"quantity"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}

// CartItemDetail dòng giỏ hàng kèm sản phẩm join qua aggregation, chỉ dùng
// cho đọc.
type CartItemDetail struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	Quantity  int64              `json:"quantity" bson:"quantity"`
	Product   CartProduct        `json:"product" bson:"product"`
}

// CartProduct phần sản phẩm được project trong CartItemDetail.
type CartProduct struct {
	ID    primitive.ObjectID `json:"id" bson:"_id"`
	Name  string             `json:"name" bson:"name"`
	Price int64              `json:"price" bson:"price"`
	Stock int64              `json:"stock" bson:"stock"`
}
