// Package authdto chứa các DTO cho domain auth.
package authdto

// UserRegisterInput dữ liệu đầu vào khi đăng ký tài khoản.
type UserRegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100,no_xss"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strong_password"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,vn_phone"`
}

// UserLoginInput dữ liệu đầu vào khi đăng nhập.
type UserLoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserChangePasswordInput dữ liệu đầu vào khi đổi mật khẩu.
type UserChangePasswordInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,strong_password"`
}

// UserUpdateProfileInput dữ liệu người dùng tự cập nhật hồ sơ.
type UserUpdateProfileInput struct {
	Name      string `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,min=2,max=100,no_xss"`
	Phone     string `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,vn_phone"`
	AvatarURL string `json:"avatarUrl,omitempty" bson:"avatarUrl,omitempty" validate:"omitempty,url"`
}

// UserCreateInput dữ liệu tạo user qua API quản trị.
type UserCreateInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100,no_xss"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strong_password"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,vn_phone"`
	UserType int    `json:"userType" validate:"min=0,max=2"`
}

// UserUpdateInput dữ liệu cập nhật user qua API quản trị.
type UserUpdateInput struct {
	Name      string `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,min=2,max=100,no_xss"`
	Phone     string `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,vn_phone"`
	AvatarURL string `json:"avatarUrl,omitempty" bson:"avatarUrl,omitempty" validate:"omitempty,url"`
	UserType  *int   `json:"userType,omitempty" bson:"userType,omitempty" validate:"omitempty,min=0,max=2"`
	Status    *int   `json:"status,omitempty" bson:"status,omitempty" validate:"omitempty,min=0,max=1"`
}

// UserBlockInput dữ liệu khóa/mở khóa tài khoản.
type UserBlockInput struct {
	Block bool   `json:"block"`
	Note  string `json:"note,omitempty" validate:"omitempty,max=500,no_xss"`
}
