// Package orderdto chứa các DTO cho domain order.
package orderdto

// AddressCreateInput dữ liệu tạo địa chỉ giao hàng.
type AddressCreateInput struct {
	FullName   string `json:"fullName" validate:"required,min=2,max=100,no_xss"`
	Phone      string `json:"phone" validate:"required,vn_phone"`
	Street     string `json:"street" validate:"required,min=2,max=200,no_xss"`
	Ward       string `json:"ward,omitempty" validate:"omitempty,max=100,no_xss"`
	District   string `json:"district,omitempty" validate:"omitempty,max=100,no_xss"`
	ProvinceID string `json:"provinceId" validate:"required,object_id"`
	IsDefault  bool   `json:"isDefault,omitempty"`
}

// AddressUpdateInput dữ liệu cập nhật địa chỉ.
type AddressUpdateInput struct {
	FullName  string `json:"fullName,omitempty" bson:"fullName,omitempty" validate:"omitempty,min=2,max=100,no_xss"`
	Phone     string `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,vn_phone"`
	Street    string `json:"street,omitempty" bson:"street,omitempty" validate:"omitempty,min=2,max=200,no_xss"`
	Ward      string `json:"ward,omitempty" bson:"ward,omitempty" validate:"omitempty,max=100,no_xss"`
	District  string `json:"district,omitempty" bson:"district,omitempty" validate:"omitempty,max=100,no_xss"`
	IsDefault *bool  `json:"isDefault,omitempty" bson:"isDefault,omitempty"`
}

// CartAddInput dữ liệu thêm sản phẩm vào giỏ.
type CartAddInput struct {
	ProductID string `json:"productId" validate:"required,object_id"`
	Quantity  int64  `json:"quantity" validate:"min=1"`
}

// CartUpdateInput dữ liệu đổi số lượng một dòng giỏ hàng.
type CartUpdateInput struct {
	Quantity int64 `json:"quantity" validate:"min=1"`
}

// OrderCreateInput dữ liệu đặt hàng. Các dòng hàng lấy từ giỏ của user,
// không nhận từ client.
type OrderCreateInput struct {
	AddressID string `json:"addressId" validate:"required,object_id"`
	Note      string `json:"note,omitempty" validate:"omitempty,max=1000,no_xss"`
}

// OrderUpdateStatusInput dữ liệu chuyển trạng thái đơn hàng.
type OrderUpdateStatusInput struct {
	Status int `json:"status" validate:"min=0,max=4"`
}
