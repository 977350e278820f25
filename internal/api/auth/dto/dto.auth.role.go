package authdto

// RoleCreateInput dữ liệu tạo role mới. Type và Field phải nằm trong tập
// enum đóng, kiểm tra bởi schema của route.
type RoleCreateInput struct {
	Type     int    `json:"type"`
	Field    int    `json:"field"`
	Name     string `json:"name" validate:"required,min=2,max=100,no_xss"`
	Describe string `json:"describe,omitempty" validate:"omitempty,max=500,no_xss"`
}

// RoleUpdateInput dữ liệu cập nhật role (chỉ phần mô tả, cặp type/field bất biến).
type RoleUpdateInput struct {
	Name     string `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,min=2,max=100,no_xss"`
	Describe string `json:"describe,omitempty" bson:"describe,omitempty" validate:"omitempty,max=500,no_xss"`
}

// UserRoleCreateInput dữ liệu gán role cho user.
type UserRoleCreateInput struct {
	UserID string `json:"userId" validate:"required,object_id"`
	RoleID string `json:"roleId" validate:"required,object_id"`
}

// UserRoleUpdateInput dữ liệu cập nhật bản ghi gán role.
type UserRoleUpdateInput struct {
	RoleID string `json:"roleId,omitempty" bson:"roleId,omitempty" validate:"omitempty,object_id"`
}
