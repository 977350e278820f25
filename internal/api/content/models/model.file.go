package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// File metadata của một file đã upload. Key là tên lưu trong object storage,
// Name là tên gốc client gửi lên. UserID là người upload.
type File struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID      primitive.ObjectID `json:"userId" bson:"userId" index:"single:1"`
	Key         string             `json:"key" bson:"key" index:"unique"`
	Name        string             `json:"name" bson:"name"`
	ContentType string             `json:"contentType" bson:"contentType"`
	Size        int64              `json:"size" bson:"size"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}
