package pipeline

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"viet_commerce/internal/common"
)

// Schema là một validator khai báo: danh sách FieldRule chạy tuần tự trên
// request. Mỗi field dừng ở check fail đầu tiên của nó; lỗi của các field
// được gom thành một EntityError 422 duy nhất. Riêng lỗi cấu trúc (status
// khác 422, ví dụ 404 khi lookup entity) được trả về ngay một mình, không
// gom chung với lỗi field.
type Schema struct {
	Rules []FieldRule
}

// NewSchema tạo Schema từ danh sách rule.
func NewSchema(rules ...FieldRule) *Schema {
	return &Schema{Rules: rules}
}

func asError(err error, target **common.Error) bool {
	return errors.As(err, target)
}

// isEmptyValue coi nil (JSON null) và chuỗi rỗng là giá trị vắng mặt.
func isEmptyValue(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}

// readField lấy giá trị thô của field theo section. Trả về (nil, false) khi
// field vắng mặt trên request.
func readField(c fiber.Ctx, ex *Exchange, rule FieldRule) (any, bool, error) {
	switch rule.Section {
	case SectionParams:
		s := c.Params(rule.Field)
		return s, s != "", nil
	case SectionQuery:
		s := c.Query(rule.Field)
		return s, s != "", nil
	default:
		body, err := ex.Body(c)
		if err != nil {
			return nil, false, err
		}
		v, present := body[rule.Field]
		return v, present, nil
	}
}

// Run chạy toàn bộ rule của schema trên request hiện tại.
func (s *Schema) Run(c fiber.Ctx) error {
	ex := CurrentExchange(c)
	fieldErrors := make(map[string]common.Message)

	for _, rule := range s.Rules {
		value, present, err := readField(c, ex, rule)
		if err != nil {
			return err
		}
		if !present {
			if rule.Optional {
				continue
			}
			// Field bắt buộc vắng mặt: fail như check Required.
			fieldErrors[rule.Field] = Required().defaultMessage(rule.Field)
			continue
		}
		// Optional có mặt nhưng giá trị rỗng coi như vắng mặt, bỏ qua chuỗi
		// check. Params/query rỗng đã được readField coi là vắng mặt.
		if rule.Optional && isEmptyValue(value) {
			continue
		}

		failed := false
		for _, ck := range rule.Checks {
			value, err = ck.run(c, ex, rule.Field, value)
			if err == nil {
				continue
			}
			var ferr *fieldFailure
			if errors.As(err, &ferr) {
				fieldErrors[rule.Field] = ferr.message
				failed = true
				break
			}
			// Lỗi cấu trúc: dừng schema, trả về một mình.
			return err
		}
		if !failed {
			ex.SetValue(rule.Field, value)
		}
	}

	if len(fieldErrors) > 0 {
		return common.NewEntityError(fieldErrors)
	}
	return nil
}

// Stage chuyển Schema thành một stage của pipeline.
func (s *Schema) Stage() Stage {
	return s.Run
}
