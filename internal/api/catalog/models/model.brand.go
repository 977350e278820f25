// Package models chứa các model của domain catalog.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Brand thương hiệu sản phẩm. Không xóa được khi còn sản phẩm tham chiếu.
type Brand struct {
	_Relationships struct{}           `relationship:"collection:products,field:brandId,message:Không thể xóa brand vì có %d sản phẩm thuộc brand này."`
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name" index:"unique"`
	Describe       string             `json:"describe,omitempty" bson:"describe,omitempty"`
	LogoURL        string             `json:"logoUrl,omitempty" bson:"logoUrl,omitempty"`
	CreatedAt      int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt      int64              `json:"updatedAt" bson:"updatedAt"`
}
