package pipeline

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"viet_commerce/internal/common"
)

// exchangeKey là key lưu Exchange trong Locals của request.
const exchangeKey = "pipeline_exchange"

// Exchange giữ dữ liệu per-request của pipeline: body đã parse, các giá trị
// field đã qua validation (đã coerce), và các entity đã lookup từ storage để
// handler phía sau không phải query lại. Exchange sống trong phạm vi một
// request và bị bỏ đi sau khi response được ghi.
type Exchange struct {
	body       map[string]any
	bodyParsed bool
	values     map[string]any
	entities   map[string]any
}

// CurrentExchange lấy Exchange của request hiện tại, tạo mới nếu chưa có.
func CurrentExchange(c fiber.Ctx) *Exchange {
	if ex, ok := c.Locals(exchangeKey).(*Exchange); ok {
		return ex
	}
	ex := &Exchange{
		values:   make(map[string]any),
		entities: make(map[string]any),
	}
	c.Locals(exchangeKey, ex)
	return ex
}

// Body trả về request body đã parse thành map. Parse một lần duy nhất;
// body rỗng trả về map rỗng, body không phải JSON hợp lệ trả về lỗi 400.
func (ex *Exchange) Body(c fiber.Ctx) (map[string]any, error) {
	if ex.bodyParsed {
		return ex.body, nil
	}
	ex.body = make(map[string]any)
	raw := c.Body()
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &ex.body); err != nil {
			return nil, common.NewError(
				common.ErrCodeValidationFormat,
				common.Msg("Request body is not valid JSON", "Request body không phải JSON hợp lệ"),
				common.StatusBadRequest,
				err,
			)
		}
	}
	ex.bodyParsed = true
	return ex.body, nil
}

// SetValue lưu giá trị field đã validate/coerce.
func (ex *Exchange) SetValue(field string, value any) {
	ex.values[field] = value
}

// Value lấy giá trị field đã validate.
func (ex *Exchange) Value(field string) (any, bool) {
	v, ok := ex.values[field]
	return v, ok
}

// String lấy giá trị field đã validate dưới dạng string (rỗng nếu không có).
func (ex *Exchange) String(field string) string {
	if v, ok := ex.values[field]; ok {
		if s, isStr := v.(string); isStr {
			return s
		}
	}
	return ""
}

// Int lấy giá trị field đã validate dưới dạng int64.
func (ex *Exchange) Int(field string) (int64, bool) {
	v, ok := ex.values[field]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}

// SetEntity cache một entity đã lookup (ví dụ resource load trong custom
// check) để stage sau và handler dùng lại, tránh query lặp.
func (ex *Exchange) SetEntity(key string, entity any) {
	ex.entities[key] = entity
}

// Entity lấy entity đã cache theo key.
func (ex *Exchange) Entity(key string) (any, bool) {
	e, ok := ex.entities[key]
	return e, ok
}

// FilterBody trả về một stage lọc body: chỉ giữ lại các key được khai báo,
// loại bỏ mọi field lạ trước khi domain validators chạy. Body không phải
// JSON hợp lệ thì fail với lỗi 400.
func FilterBody(allowed ...string) Stage {
	allowedSet := make(map[string]bool, len(allowed))
	for _, key := range allowed {
		allowedSet[key] = true
	}
	return func(c fiber.Ctx) error {
		ex := CurrentExchange(c)
		body, err := ex.Body(c)
		if err != nil {
			return err
		}
		for key := range body {
			if !allowedSet[key] {
				delete(body, key)
			}
		}
		return nil
	}
}
