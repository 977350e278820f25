// Package contentdto chứa các DTO cho domain content.
package contentdto

// PostCreateInput dữ liệu tạo bài viết. Slug sinh từ title nếu bỏ trống.
type PostCreateInput struct {
	Title    string `json:"title" validate:"required,min=2,max=200,no_xss"`
	Slug     string `json:"slug,omitempty" validate:"omitempty,min=2,max=200"`
	Content  string `json:"content" validate:"required"`
	CoverURL string `json:"coverUrl,omitempty" validate:"omitempty,url"`
}

// PostUpdateInput dữ liệu cập nhật bài viết.
type PostUpdateInput struct {
	Title     string `json:"title,omitempty" bson:"title,omitempty" validate:"omitempty,min=2,max=200,no_xss"`
	Content   string `json:"content,omitempty" bson:"content,omitempty"`
	CoverURL  string `json:"coverUrl,omitempty" bson:"coverUrl,omitempty" validate:"omitempty,url"`
	Published *bool  `json:"published,omitempty" bson:"published,omitempty"`
}

// FileUpdateInput dữ liệu cập nhật metadata file, chỉ đổi được tên hiển thị.
type FileUpdateInput struct {
	Name string `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,min=1,max=255,no_xss"`
}
