package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem snapshot một dòng hàng tại thời điểm đặt. Giá và tên được
// chụp lại từ sản phẩm, không đổi theo catalog về sau.
type OrderItem struct {
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	Name      string             `json:"name" bson:"name"`
	Price     int64              `json:"price" bson:"price"`
	Quantity  int64              `json:"quantity" bson:"quantity"`
}

// Order đơn hàng. UserID là người đặt, AddressID trỏ tới địa chỉ giao
// thuộc cùng user.
type Order struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId" index:"single:1"`
	AddressID primitive.ObjectID `json:"addressId" bson:"addressId"`
	Items     []OrderItem        `json:"items" bson:"items"`
	Total     int64              `json:"total" bson:"total"`
	Status    OrderStatus        `json:"status" bson:"status" index:"single:1"`
	Note      string             `json:"note,omitempty" bson:"note,omitempty"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}

// OrderDetail đơn hàng kèm địa chỉ giao join qua aggregation, chỉ dùng cho đọc.
type OrderDetail struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Items     []OrderItem        `json:"items" bson:"items"`
	Total     int64              `json:"total" bson:"total"`
	Status    OrderStatus        `json:"status" bson:"status"`
	Note      string             `json:"note,omitempty" bson:"note,omitempty"`
	Address   Address            `json:"address" bson:"address"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
