package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role một quyền trong hệ thống: cặp (Type, Field) xác định thao tác trên
// nhóm tài nguyên. Cặp này là unique trong collection roles. Role mặc định
// được seed lúc init mang IsSystem = true và không xóa được qua API.
type Role struct {
	_Relationships struct{}           `relationship:"collection:user_roles,field:roleId,message:Không thể xóa role vì có %d user đang sử dụng role này. Vui lòng gỡ role khỏi các user trước."`
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Type           RoleType           `json:"type" bson:"type"`
	Field          RoleField          `json:"field" bson:"field"`
	Name           string             `json:"name" bson:"name"`
	Describe       string             `json:"describe,omitempty" bson:"describe,omitempty"`
	UserID         primitive.ObjectID `json:"userId,omitempty" bson:"userId,omitempty"`
	IsSystem       bool               `json:"-" bson:"isSystem"`
	CreatedAt      int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt      int64              `json:"updatedAt" bson:"updatedAt"`
}

// Grants kiểm tra role này cấp quyền cho thao tác trên nhóm tài nguyên.
func (r Role) Grants(t RoleType, f RoleField) bool {
	return r.Type == t && r.Field == f
}
