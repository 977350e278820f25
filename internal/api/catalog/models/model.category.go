package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category danh mục sản phẩm, có thể lồng một cấp qua ParentID.
type Category struct {
	_Relationships struct{}           `relationship:"collection:products,field:categoryId,message:Không thể xóa category vì có %d sản phẩm thuộc category này."`
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name" index:"unique"`
	Describe       string             `json:"describe,omitempty" bson:"describe,omitempty"`
	ParentID       primitive.ObjectID `json:"parentId,omitempty" bson:"parentId,omitempty"`
	CreatedAt      int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt      int64              `json:"updatedAt" bson:"updatedAt"`
}
