package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User người dùng của hệ thống. Password đã hash bcrypt, không bao giờ
// trả ra ngoài qua JSON.
type User struct {
	_Relationships struct{}         `relationship:"collection:user_roles,field:userId,message:Không thể xóa user vì có %d role đang được gán cho user này. Vui lòng gỡ các role trước.|collection:orders,field:userId,message:Không thể xóa user vì có %d đơn hàng thuộc user này."`
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email" index:"unique"`
	Password     string             `json:"-" bson:"password"`
	Phone        string             `json:"phone,omitempty" bson:"phone,omitempty"`
	AvatarURL    string             `json:"avatarUrl,omitempty" bson:"avatarUrl,omitempty"`
	UserType     UserType           `json:"userType" bson:"userType"`
	Status       UserStatus         `json:"status" bson:"status"`
	VerifyStatus VerifyStatus       `json:"verifyStatus" bson:"verifyStatus"`
	BlockNote    string             `json:"-" bson:"blockNote,omitempty"`
	IsSystem     bool               `json:"isSystem,omitempty" bson:"isSystem,omitempty"`
	CreatedAt    int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64              `json:"updatedAt" bson:"updatedAt"`
}
