// Package models - các model và enum thuộc domain auth.
package models

// RoleType là thao tác mà một role cấp quyền. Tập giá trị đóng: thêm thao
// tác mới phải sửa đúng một chỗ tại đây, validator và authorizer cùng dùng.
type RoleType int

const (
	RoleTypeCreate RoleType = iota
	RoleTypeRead
	RoleTypeUpdate
	RoleTypeDelete
)

func (t RoleType) String() string {
	switch t {
	case RoleTypeCreate:
		return "create"
	case RoleTypeRead:
		return "read"
	case RoleTypeUpdate:
		return "update"
	case RoleTypeDelete:
		return "delete"
	}
	return "unknown"
}

// IsValid kiểm tra giá trị nằm trong tập đóng.
func (t RoleType) IsValid() bool {
	return t >= RoleTypeCreate && t <= RoleTypeDelete
}

// RoleField là nhóm tài nguyên mà role áp lên.
type RoleField int

const (
	RoleFieldProduct RoleField = iota
	RoleFieldPost
	RoleFieldOrder
)

func (f RoleField) String() string {
	switch f {
	case RoleFieldProduct:
		return "product"
	case RoleFieldPost:
		return "post"
	case RoleFieldOrder:
		return "order"
	}
	return "unknown"
}

func (f RoleField) IsValid() bool {
	return f >= RoleFieldProduct && f <= RoleFieldOrder
}

// UserType là loại tài khoản. Admin được bỏ qua mọi role check; Staff và
// Customer chỉ khác nhau qua role được gán, không hardcode thêm.
type UserType int

const (
	UserTypeAdmin UserType = iota
	UserTypeStaff
	UserTypeCustomer
)

func (u UserType) String() string {
	switch u {
	case UserTypeAdmin:
		return "admin"
	case UserTypeStaff:
		return "staff"
	case UserTypeCustomer:
		return "customer"
	}
	return "unknown"
}

func (u UserType) IsValid() bool {
	return u >= UserTypeAdmin && u <= UserTypeCustomer
}

// UserStatus trạng thái hoạt động của tài khoản.
type UserStatus int

const (
	UserStatusActive UserStatus = iota
	UserStatusBlocked
)

func (s UserStatus) String() string {
	switch s {
	case UserStatusActive:
		return "active"
	case UserStatusBlocked:
		return "blocked"
	}
	return "unknown"
}

// VerifyStatus trạng thái xác thực email của tài khoản.
type VerifyStatus int

const (
	VerifyStatusUnverified VerifyStatus = iota
	VerifyStatusVerified
)

func (s VerifyStatus) String() string {
	switch s {
	case VerifyStatusUnverified:
		return "unverified"
	case VerifyStatusVerified:
		return "verified"
	}
	return "unknown"
}
