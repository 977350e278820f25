// Package common định nghĩa hệ thống lỗi dùng chung cho toàn bộ ứng dụng:
// mã lỗi phân cấp, lỗi mang HTTP status và thông điệp song ngữ (en/vi).
package common

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP Status Code Constants
const (
	// Success Codes (2xx)
	StatusOK        = 200 // Thành công
	StatusCreated   = 201 // Tạo mới thành công
	StatusNoContent = 204 // Thành công nhưng không có nội dung trả về

	// Client Error Codes (4xx)
	StatusBadRequest          = 400 // Yêu cầu không hợp lệ
	StatusUnauthorized        = 401 // Chưa xác thực
	StatusForbidden           = 403 // Không có quyền truy cập
	StatusNotFound            = 404 // Không tìm thấy tài nguyên
	StatusConflict            = 409 // Xung đột dữ liệu
	StatusUnprocessableEntity = 422 // Dữ liệu không qua được validation
	StatusTooManyRequests     = 429 // Quá nhiều yêu cầu

	// Server Error Codes (5xx)
	StatusInternalServerError = 500 // Lỗi server
	StatusServiceUnavailable  = 503 // Dịch vụ không khả dụng
)

// Locale là mã ngôn ngữ của response trả về cho client.
type Locale string

const (
	LocaleEN Locale = "en" // Tiếng Anh
	LocaleVI Locale = "vi" // Tiếng Việt
)

// Message là cặp thông điệp song ngữ. Mọi lỗi trả về cho người dùng đều mang
// cặp này; ngôn ngữ cụ thể chỉ được chọn tại biên response, không gắn vào
// danh tính của lỗi.
type Message struct {
	En string `json:"en"`
	Vi string `json:"vi"`
}

// Pick chọn thông điệp theo locale. Locale không nhận diện được thì trả về tiếng Anh.
func (m Message) Pick(l Locale) string {
	if l == LocaleVI {
		return m.Vi
	}
	return m.En
}

// Msg tạo nhanh một Message từ cặp en/vi.
func Msg(en, vi string) Message {
	return Message{En: en, Vi: vi}
}

// Các Message dùng chung
var (
	MsgSuccess         = Msg("Success", "Thao tác thành công")
	MsgCreated         = Msg("Created successfully", "Tạo mới thành công")
	MsgBadRequest      = Msg("Bad request", "Yêu cầu không hợp lệ")
	MsgUnauthorized    = Msg("Please log in", "Vui lòng đăng nhập")
	MsgForbidden       = Msg("Permission denied", "Không có quyền truy cập")
	MsgNotFound        = Msg("Resource not found", "Không tìm thấy tài nguyên")
	MsgConflict        = Msg("Data conflict", "Xung đột dữ liệu")
	MsgValidationError = Msg("Validation error", "Dữ liệu không hợp lệ")
	MsgInternalError   = Msg("Internal server error", "Lỗi hệ thống")

	MsgTokenMissing = Msg("Missing access token", "Thiếu token xác thực")
	MsgTokenInvalid = Msg("Invalid access token", "Token không hợp lệ")
	MsgTokenExpired = Msg("Access token has expired", "Token đã hết hạn")
)

// ErrorCode định nghĩa mã lỗi chi tiết
type ErrorCode struct {
	Code        string // Mã lỗi (ví dụ: AUTH_001)
	Category    string // Phân loại lỗi (ví dụ: Authentication)
	Description string // Mô tả chi tiết
}

// Định nghĩa các mã lỗi theo hệ thống phân cấp
var (
	// System Errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{Code: "SYS_001", Category: "System", Description: "Lỗi hệ thống nội bộ"}

	// Authentication Errors (AUTH_xxx)
	ErrCodeAuthToken       = ErrorCode{Code: "AUTH_001", Category: "Authentication", Description: "Lỗi liên quan đến token"}
	ErrCodeAuthCredentials = ErrorCode{Code: "AUTH_002", Category: "Authentication", Description: "Lỗi thông tin đăng nhập"}
	ErrCodeAuthRole        = ErrorCode{Code: "AUTH_003", Category: "Authentication", Description: "Lỗi phân quyền theo vai trò"}
	ErrCodeAuthOwnership   = ErrorCode{Code: "AUTH_004", Category: "Authentication", Description: "Lỗi quyền sở hữu tài nguyên"}

	// Validation Errors (VAL_xxx)
	ErrCodeValidationInput  = ErrorCode{Code: "VAL_001", Category: "Validation", Description: "Lỗi dữ liệu đầu vào"}
	ErrCodeValidationFormat = ErrorCode{Code: "VAL_002", Category: "Validation", Description: "Lỗi định dạng dữ liệu"}
	ErrCodeValidationEntity = ErrorCode{Code: "VAL_003", Category: "Validation", Description: "Lỗi validation theo từng field"}

	// Database Errors (DB_xxx)
	ErrCodeDatabase           = ErrorCode{Code: "DB", Category: "Database", Description: "Lỗi cơ sở dữ liệu chung"}
	ErrCodeDatabaseConnection = ErrorCode{Code: "DB_001", Category: "Database", Description: "Lỗi kết nối cơ sở dữ liệu"}
	ErrCodeDatabaseQuery      = ErrorCode{Code: "DB_002", Category: "Database", Description: "Lỗi truy vấn dữ liệu"}

	// Business Logic Errors (BIZ_xxx)
	ErrCodeBusinessState     = ErrorCode{Code: "BIZ_001", Category: "Business", Description: "Lỗi trạng thái nghiệp vụ"}
	ErrCodeBusinessOperation = ErrorCode{Code: "BIZ_002", Category: "Business", Description: "Lỗi thao tác nghiệp vụ"}
)

// Error là lỗi mang HTTP status và thông điệp song ngữ. Đây là loại lỗi duy
// nhất mà responder cuối pipeline nhận diện; lỗi không phải *Error sẽ bị coi
// là lỗi hệ thống (500) với thông điệp chung.
type Error struct {
	Code       ErrorCode // Mã lỗi chi tiết
	Message    Message   // Thông điệp song ngữ
	StatusCode int       // HTTP status code
	Details    any       // Thông tin chi tiết thêm về lỗi
}

// Error trả về message tiếng Anh của lỗi (phục vụ interface error và log).
func (e *Error) Error() string {
	return e.Message.En
}

// Is hỗ trợ errors.Is: hai *Error bằng nhau khi cùng mã lỗi và cùng message.
func (e *Error) Is(target error) bool {
	targetErr, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code.Code == targetErr.Code.Code && e.Message == targetErr.Message
}

// NewError tạo một error mới với đầy đủ thông tin
func NewError(code ErrorCode, message Message, statusCode int, details any) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// EntityError là lỗi validation tổng hợp theo field (HTTP 422). Mỗi field chỉ
// mang đúng một thông điệp, là thông điệp của check đầu tiên bị fail.
type EntityError struct {
	Code       ErrorCode
	Message    Message
	StatusCode int
	Fields     map[string]Message // field name → thông điệp lỗi của field đó
}

// Error trả về message tiếng Anh của lỗi (phục vụ interface error và log).
func (e *EntityError) Error() string {
	return e.Message.En
}

// NewEntityError tạo EntityError (status cố định 422) từ map field → message.
func NewEntityError(fields map[string]Message) *EntityError {
	return &EntityError{
		Code:       ErrCodeValidationEntity,
		Message:    MsgValidationError,
		StatusCode: StatusUnprocessableEntity,
		Fields:     fields,
	}
}

// Custom errors
var (
	// Authentication Errors
	ErrInvalidCredentials = NewError(ErrCodeAuthCredentials, Msg("Email or password is incorrect", "Email hoặc mật khẩu không chính xác"), StatusUnauthorized, nil)
	ErrTokenExpired       = NewError(ErrCodeAuthToken, MsgTokenExpired, StatusUnauthorized, nil)
	ErrTokenInvalid       = NewError(ErrCodeAuthToken, MsgTokenInvalid, StatusUnauthorized, nil)
	ErrTokenMissing       = NewError(ErrCodeAuthToken, MsgTokenMissing, StatusUnauthorized, nil)
	ErrPermissionDenied   = NewError(ErrCodeAuthRole, MsgForbidden, StatusForbidden, nil)
	ErrNotResourceOwner   = NewError(ErrCodeAuthOwnership, Msg("You are not the owner of this resource", "Bạn không phải chủ sở hữu tài nguyên này"), StatusForbidden, nil)
	ErrUserNotFound       = NewError(ErrCodeAuthCredentials, Msg("User not found", "Không tìm thấy thông tin người dùng"), StatusNotFound, nil)
	ErrUserBlocked        = NewError(ErrCodeAuthCredentials, Msg("Account has been blocked", "Tài khoản đã bị khóa"), StatusForbidden, nil)

	// Validation Errors
	ErrInvalidInput  = NewError(ErrCodeValidationInput, Msg("Invalid input data", "Dữ liệu đầu vào không hợp lệ"), StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, Msg("Invalid data format", "Định dạng dữ liệu không hợp lệ"), StatusBadRequest, nil)

	// Database Errors
	ErrNotFound    = NewError(ErrCodeDatabaseQuery, Msg("Data not found", "Không tìm thấy dữ liệu"), StatusNotFound, nil)
	ErrDuplicate   = NewError(ErrCodeDatabaseQuery, Msg("Data already exists", "Dữ liệu đã tồn tại"), StatusConflict, nil)
	ErrConnection  = NewError(ErrCodeDatabaseConnection, Msg("Database connection error", "Lỗi kết nối cơ sở dữ liệu"), StatusServiceUnavailable, nil)
	ErrInternal    = NewError(ErrCodeInternalServer, MsgInternalError, StatusInternalServerError, nil)

	// Business Logic Errors
	ErrInvalidState     = NewError(ErrCodeBusinessState, Msg("Invalid state", "Trạng thái không hợp lệ"), StatusBadRequest, nil)
	ErrInvalidOperation = NewError(ErrCodeBusinessOperation, Msg("Invalid operation", "Thao tác không hợp lệ"), StatusBadRequest, nil)
)

// ConvertMongoError chuyển đổi lỗi MongoDB driver sang lỗi hệ thống.
// ErrNotFound đã được map ở tầng service thì giữ nguyên, không convert tiếp.
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrNotFound) {
		return err
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	// Giữ nguyên các lỗi đã được phân loại
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}

	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return ErrConnection
	}

	// Không nhận diện được: degrade về lỗi hệ thống chung, không leak chi tiết
	// driver ra response (chi tiết nằm trong Details để log).
	return NewError(ErrCodeDatabase, MsgInternalError, StatusInternalServerError, err)
}
