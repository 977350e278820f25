// Package catalogdto chứa các DTO cho domain catalog.
package catalogdto

// BrandCreateInput dữ liệu tạo brand.
type BrandCreateInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100,no_xss"`
	Describe string `json:"describe,omitempty" validate:"omitempty,max=500,no_xss"`
	LogoURL  string `json:"logoUrl,omitempty" validate:"omitempty,url"`
}

// BrandUpdateInput dữ liệu cập nhật brand.
type BrandUpdateInput struct {
	Name     string `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,min=2,max=100,no_xss"`
	Describe string `json:"describe,omitempty" bson:"describe,omitempty" validate:"omitempty,max=500,no_xss"`
	LogoURL  string `json:"logoUrl,omitempty" bson:"logoUrl,omitempty" validate:"omitempty,url"`
}

// CategoryCreateInput dữ liệu tạo category.
type CategoryCreateInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100,no_xss"`
	Describe string `json:"describe,omitempty" validate:"omitempty,max=500,no_xss"`
	ParentID string `json:"parentId,omitempty" validate:"omitempty,object_id"`
}

// CategoryUpdateInput dữ liệu cập nhật category.
type CategoryUpdateInput struct {
	Name     string `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,min=2,max=100,no_xss"`
	Describe string `json:"describe,omitempty" bson:"describe,omitempty" validate:"omitempty,max=500,no_xss"`
}

// ProductCreateInput dữ liệu tạo sản phẩm. CategoryID/BrandID là hex string,
// được schema của route coerce và kiểm tra tồn tại trước khi vào handler.
type ProductCreateInput struct {
	Name       string   `json:"name" validate:"required,min=2,max=200,no_xss"`
	Describe   string   `json:"describe,omitempty" validate:"omitempty,max=2000,no_xss"`
	Price      int64    `json:"price" validate:"min=0"`
	Stock      int64    `json:"stock" validate:"min=0"`
	CategoryID string   `json:"categoryId" validate:"required,object_id"`
	BrandID    string   `json:"brandId,omitempty" validate:"omitempty,object_id"`
	ImageURLs  []string `json:"imageUrls,omitempty" validate:"omitempty,dive,url"`
}

// ProductUpdateInput dữ liệu cập nhật sản phẩm.
type ProductUpdateInput struct {
	Name      string   `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,min=2,max=200,no_xss"`
	Describe  string   `json:"describe,omitempty" bson:"describe,omitempty" validate:"omitempty,max=2000,no_xss"`
	Price     *int64   `json:"price,omitempty" bson:"price,omitempty" validate:"omitempty,min=0"`
	Stock     *int64   `json:"stock,omitempty" bson:"stock,omitempty" validate:"omitempty,min=0"`
	ImageURLs []string `json:"imageUrls,omitempty" bson:"imageUrls,omitempty" validate:"omitempty,dive,url"`
}

// ReviewCreateInput dữ liệu tạo đánh giá sản phẩm.
type ReviewCreateInput struct {
	ProductID string `json:"productId" validate:"required,object_id"`
	Rating    int64  `json:"rating" validate:"min=1,max=5"`
	Content   string `json:"content,omitempty" validate:"omitempty,max=2000,no_xss"`
}

// ReviewUpdateInput dữ liệu cập nhật đánh giá.
type ReviewUpdateInput struct {
	Rating  *int64 `json:"rating,omitempty" bson:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Content string `json:"content,omitempty" bson:"content,omitempty" validate:"omitempty,max=2000,no_xss"`
}
