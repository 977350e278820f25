package pipeline

import (
	"fmt"
	"net/mail"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"viet_commerce/internal/common"
)

// Section xác định field được đọc từ đâu trên request.
type Section string

const (
	SectionBody   Section = "body"
	SectionParams Section = "params"
	SectionQuery  Section = "query"
)

// CustomFunc là check tuỳ biến cho một field. Hàm nhận giá trị hiện tại
// (sau các check trước đó) và trả về giá trị mới (có thể coerce) cùng lỗi.
// Trả về *common.Error với status khác 422 để báo lỗi cấu trúc (404, 401...)
// cần dừng toàn bộ schema; lỗi thường được gom vào EntityError của field.
type CustomFunc func(c fiber.Ctx, ex *Exchange, value any) (any, error)

type checkKind int

const (
	checkTrim checkKind = iota
	checkRequired
	checkEmail
	checkObjectID
	checkURL
	checkStrLen
	checkNonNegInt
	checkPosInt
	checkIntRange
	checkCustom
)

// Check là một bước kiểm tra trong chuỗi check của FieldRule. Check chạy
// theo đúng thứ tự khai báo; check đầu tiên fail sẽ dừng chuỗi của field đó.
type Check struct {
	kind     checkKind
	min, max int64
	fn       CustomFunc
	message  *common.Message
}

// WithMessage thay message mặc định của check bằng message song ngữ riêng.
func (ck Check) WithMessage(msg common.Message) Check {
	ck.message = &msg
	return ck
}

// Trim cắt khoảng trắng đầu cuối của giá trị string. Không bao giờ fail.
func Trim() Check { return Check{kind: checkTrim} }

// Required yêu cầu field có mặt và không rỗng.
func Required() Check { return Check{kind: checkRequired} }

// IsEmail kiểm tra giá trị là địa chỉ email hợp lệ.
func IsEmail() Check { return Check{kind: checkEmail} }

// IsObjectID kiểm tra giá trị là ObjectID hex hợp lệ và coerce về
// primitive.ObjectID trong Exchange.
func IsObjectID() Check { return Check{kind: checkObjectID} }

// IsURL kiểm tra giá trị là URL http/https hợp lệ.
func IsURL() Check { return Check{kind: checkURL} }

// StrLen kiểm tra độ dài string nằm trong [min, max].
func StrLen(min, max int) Check {
	return Check{kind: checkStrLen, min: int64(min), max: int64(max)}
}

// IsNonNegInt kiểm tra giá trị là số nguyên >= 0, coerce về int64.
func IsNonNegInt() Check { return Check{kind: checkNonNegInt} }

// IsPosInt kiểm tra giá trị là số nguyên > 0, coerce về int64.
func IsPosInt() Check { return Check{kind: checkPosInt} }

// IntRange kiểm tra giá trị là số nguyên trong [min, max], coerce về int64.
func IntRange(min, max int64) Check {
	return Check{kind: checkIntRange, min: min, max: max}
}

// Custom chạy một check tuỳ biến do caller cung cấp.
func Custom(fn CustomFunc) Check { return Check{kind: checkCustom, fn: fn} }

// FieldRule khai báo chuỗi check cho một field trên request.
type FieldRule struct {
	Field    string
	Section  Section
	Optional bool
	Checks   []Check
}

// BodyField tạo rule cho field trong request body.
func BodyField(name string, checks ...Check) FieldRule {
	return FieldRule{Field: name, Section: SectionBody, Checks: checks}
}

// ParamField tạo rule cho path parameter.
func ParamField(name string, checks ...Check) FieldRule {
	return FieldRule{Field: name, Section: SectionParams, Checks: checks}
}

// QueryField tạo rule cho query parameter. Query luôn là optional trừ khi
// caller gọi AsRequired.
func QueryField(name string, checks ...Check) FieldRule {
	return FieldRule{Field: name, Section: SectionQuery, Optional: true, Checks: checks}
}

// AsOptional đánh dấu field là optional: field vắng mặt thì bỏ qua toàn bộ
// chuỗi check mà không báo lỗi.
func (r FieldRule) AsOptional() FieldRule {
	r.Optional = true
	return r
}

// AsRequired bỏ cờ optional của field.
func (r FieldRule) AsRequired() FieldRule {
	r.Optional = false
	return r
}

func (ck Check) defaultMessage(field string) common.Message {
	switch ck.kind {
	case checkRequired:
		return common.Msg(
			fmt.Sprintf("%s is required", field),
			fmt.Sprintf("%s là bắt buộc", field),
		)
	case checkEmail:
		return common.Msg(
			fmt.Sprintf("%s must be a valid email address", field),
			fmt.Sprintf("%s phải là địa chỉ email hợp lệ", field),
		)
	case checkObjectID:
		return common.Msg(
			fmt.Sprintf("%s must be a valid id", field),
			fmt.Sprintf("%s phải là id hợp lệ", field),
		)
	case checkURL:
		return common.Msg(
			fmt.Sprintf("%s must be a valid URL", field),
			fmt.Sprintf("%s phải là URL hợp lệ", field),
		)
	case checkStrLen:
		return common.Msg(
			fmt.Sprintf("%s must be between %d and %d characters", field, ck.min, ck.max),
			fmt.Sprintf("%s phải dài từ %d đến %d ký tự", field, ck.min, ck.max),
		)
	case checkNonNegInt:
		return common.Msg(
			fmt.Sprintf("%s must be a non-negative integer", field),
			fmt.Sprintf("%s phải là số nguyên không âm", field),
		)
	case checkPosInt:
		return common.Msg(
			fmt.Sprintf("%s must be a positive integer", field),
			fmt.Sprintf("%s phải là số nguyên dương", field),
		)
	case checkIntRange:
		return common.Msg(
			fmt.Sprintf("%s must be an integer between %d and %d", field, ck.min, ck.max),
			fmt.Sprintf("%s phải là số nguyên từ %d đến %d", field, ck.min, ck.max),
		)
	}
	return common.Msg(
		fmt.Sprintf("%s is invalid", field),
		fmt.Sprintf("%s không hợp lệ", field),
	)
}

// fieldFailure là lỗi một check trả về cho field của nó, mang message song
// ngữ để gom vào EntityError.
type fieldFailure struct {
	message common.Message
}

func (f *fieldFailure) Error() string { return f.message.En }

// FieldError tạo lỗi field-level với message song ngữ, dùng trong CustomFunc
// khi muốn lỗi được gom vào EntityError thay vì dừng cả schema.
func FieldError(msg common.Message) error {
	return &fieldFailure{message: msg}
}

// coerceInt đưa giá trị về int64. JSON number là float64, params/query là
// string; số thập phân không nguyên bị từ chối.
func coerceInt(value any) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// run chạy một check trên giá trị hiện tại, trả về giá trị mới (có thể đã
// coerce) và lỗi nếu check fail.
func (ck Check) run(c fiber.Ctx, ex *Exchange, field string, value any) (any, error) {
	fail := func() error {
		if ck.message != nil {
			return &fieldFailure{message: *ck.message}
		}
		return &fieldFailure{message: ck.defaultMessage(field)}
	}

	switch ck.kind {
	case checkTrim:
		if s, ok := value.(string); ok {
			return strings.TrimSpace(s), nil
		}
		return value, nil

	case checkRequired:
		if value == nil {
			return nil, fail()
		}
		if s, ok := value.(string); ok && s == "" {
			return nil, fail()
		}
		return value, nil

	case checkEmail:
		s, ok := value.(string)
		if !ok {
			return nil, fail()
		}
		if _, err := mail.ParseAddress(s); err != nil {
			return nil, fail()
		}
		return s, nil

	case checkObjectID:
		s, ok := value.(string)
		if !ok {
			return nil, fail()
		}
		oid, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return nil, fail()
		}
		return oid, nil

	case checkURL:
		s, ok := value.(string)
		if !ok {
			return nil, fail()
		}
		u, err := url.Parse(s)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fail()
		}
		return s, nil

	case checkStrLen:
		s, ok := value.(string)
		if !ok {
			return nil, fail()
		}
		n := int64(len([]rune(s)))
		if n < ck.min || n > ck.max {
			return nil, fail()
		}
		return s, nil

	case checkNonNegInt:
		n, ok := coerceInt(value)
		if !ok || n < 0 {
			return nil, fail()
		}
		return n, nil

	case checkPosInt:
		n, ok := coerceInt(value)
		if !ok || n <= 0 {
			return nil, fail()
		}
		return n, nil

	case checkIntRange:
		n, ok := coerceInt(value)
		if !ok || n < ck.min || n > ck.max {
			return nil, fail()
		}
		return n, nil

	case checkCustom:
		next, err := ck.fn(c, ex, value)
		if err != nil {
			var appErr *common.Error
			if ferr, isField := err.(*fieldFailure); isField {
				return nil, ferr
			}
			ok := asError(err, &appErr)
			if ok && appErr.StatusCode != common.StatusUnprocessableEntity {
				// Lỗi cấu trúc (not found, unauthorized...) dừng cả schema.
				return nil, appErr
			}
			if ck.message != nil {
				return nil, &fieldFailure{message: *ck.message}
			}
			if ok {
				return nil, &fieldFailure{message: appErr.Message}
			}
			return nil, &fieldFailure{message: common.Msg(err.Error(), err.Error())}
		}
		return next, nil
	}
	return value, nil
}
