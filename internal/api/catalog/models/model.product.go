package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product sản phẩm trong catalog. UserID là chủ sở hữu (người tạo), dùng
// cho ownership check khi update/delete. Giá lưu theo đơn vị nhỏ nhất (đồng).
type Product struct {
	_Relationships struct{}           `relationship:"collection:reviews,field:productId,message:Không thể xóa sản phẩm vì có %d đánh giá thuộc sản phẩm này.|collection:cart_items,field:productId,message:Không thể xóa sản phẩm vì có %d giỏ hàng đang chứa sản phẩm này."`
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Describe       string             `json:"describe,omitempty" bson:"describe,omitempty"`
	Price          int64              `json:"price" bson:"price"`
	Stock          int64              `json:"stock" bson:"stock"`
	CategoryID     primitive.ObjectID `json:"categoryId" bson:"categoryId" index:"single:1"`
	BrandID        primitive.ObjectID `json:"brandId,omitempty" bson:"brandId,omitempty" index:"single:1"`
	UserID         primitive.ObjectID `json:"userId" bson:"userId" index:"single:1"`
	ImageURLs      []string           `json:"imageUrls,omitempty" bson:"imageUrls,omitempty"`
	ReviewCount    int64              `json:"reviewCount" bson:"reviewCount"`
	RatingSum      int64              `json:"ratingSum" bson:"ratingSum"`
	CreatedAt      int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt      int64              `json:"updatedAt" bson:"updatedAt"`
}

// Review đánh giá sản phẩm của một khách hàng. UserID là chủ sở hữu,
// mỗi user chỉ có một review trên một sản phẩm.
type Review struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ProductID primitive.ObjectID `json:"productId" bson:"productId" index:"single:1"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId" index:"single:1"`
	Rating    int64              `json:"rating" bson:"rating"`
	Content   string             `json:"content,omitempty" bson:"content,omitempty"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
