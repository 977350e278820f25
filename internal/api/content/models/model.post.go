package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post bài viết. UserID là tác giả, dùng cho ownership check khi sửa/xóa.
type Post struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Slug      string             `json:"slug" bson:"slug" index:"unique"`
	Content   string             `json:"content" bson:"content"`
	CoverURL  string             `json:"coverUrl,omitempty" bson:"coverUrl,omitempty"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId" index:"single:1"`
	Published bool               `json:"published" bson:"published" index:"single:1"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
