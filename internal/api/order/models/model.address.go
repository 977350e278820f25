package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Province tỉnh/thành, dữ liệu tham chiếu seed lúc khởi động (IsSystem).
type Province struct {
	_Relationships struct{}           `relationship:"collection:addresses,field:provinceId,message:Không thể xóa tỉnh/thành vì có %d địa chỉ thuộc tỉnh/thành này."`
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name" index:"unique"`
	Code           int64              `json:"code" bson:"code" index:"unique"`
	IsSystem       bool               `json:"isSystem" bson:"isSystem"`
	CreatedAt      int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt      int64              `json:"updatedAt" bson:"updatedAt"`
}

// Address địa chỉ giao hàng. UserID là chủ sở hữu, dùng cho ownership check.
type Address struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID     primitive.ObjectID `json:"userId" bson:"userId" index:"single:1"`
	FullName   string             `json:"fullName" bson:"fullName"`
	Phone      string             `json:"phone" bson:"phone"`
	Street     string             `json:"street" bson:"street"`
	Ward       string             `json:"ward,omitempty" bson:"ward,omitempty"`
	District   string             `json:"district,omitempty" bson:"district,omitempty"`
	ProvinceID primitive.ObjectID `json:"provinceId" bson:"provinceId" index:"single:1"`
	IsDefault  bool               `json:"isDefault" bson:"isDefault"`
	CreatedAt  int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64              `json:"updatedAt" bson:"updatedAt"`
}
