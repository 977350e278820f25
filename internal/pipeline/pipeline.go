package pipeline

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"viet_commerce/internal/common"
	"viet_commerce/internal/logger"
)

// State là trạng thái của một request khi đi qua pipeline. Request bắt đầu
// ở Pending, đi qua Validating → Authorizing → Handling, và kết thúc ở
// Responded. Failed là trạng thái kết thúc khi bất kỳ stage nào trả lỗi;
// response lỗi luôn do terminal responder ghi, mỗi request đúng một lần.
type State int

const (
	StatePending State = iota
	StateValidating
	StateAuthorizing
	StateHandling
	StateResponded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateValidating:
		return "validating"
	case StateAuthorizing:
		return "authorizing"
	case StateHandling:
		return "handling"
	case StateResponded:
		return "responded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// stateKey lưu trạng thái cuối của request trong Locals, phục vụ test và log.
const stateKey = "pipeline_state"

// StateOf trả về trạng thái pipeline hiện tại của request.
func StateOf(c fiber.Ctx) State {
	if s, ok := c.Locals(stateKey).(State); ok {
		return s
	}
	return StatePending
}

// Stage là một bước của pipeline: trả lỗi để chuyển request sang Failed.
type Stage func(c fiber.Ctx) error

// Pipeline ghép các stage validation và authorization với handler nghiệp vụ
// thành một fiber.Handler duy nhất. Thứ tự cố định: toàn bộ Validators chạy
// trước, rồi Authorizers, rồi Handler. Stage đầu tiên trả lỗi sẽ dừng
// pipeline; lỗi đi vào terminal responder.
type Pipeline struct {
	Validators  []Stage
	Authorizers []Stage
	Handler     fiber.Handler
}

// New tạo Pipeline rỗng quanh một handler.
func New(handler fiber.Handler) *Pipeline {
	return &Pipeline{Handler: handler}
}

// Validate thêm các stage validation theo thứ tự khai báo.
func (p *Pipeline) Validate(stages ...Stage) *Pipeline {
	p.Validators = append(p.Validators, stages...)
	return p
}

// Authorize thêm các stage authorization theo thứ tự khai báo.
func (p *Pipeline) Authorize(stages ...Stage) *Pipeline {
	p.Authorizers = append(p.Authorizers, stages...)
	return p
}

// Compile trả về fiber.Handler chạy toàn bộ pipeline.
func (p *Pipeline) Compile() fiber.Handler {
	return func(c fiber.Ctx) error {
		move := func(s State) { c.Locals(stateKey, s) }

		move(StateValidating)
		for _, stage := range p.Validators {
			if err := stage(c); err != nil {
				move(StateFailed)
				return Respond(c, err)
			}
		}

		move(StateAuthorizing)
		for _, stage := range p.Authorizers {
			if err := stage(c); err != nil {
				move(StateFailed)
				return Respond(c, err)
			}
		}

		move(StateHandling)
		if err := p.Handler(c); err != nil {
			move(StateFailed)
			return Respond(c, err)
		}
		move(StateResponded)
		return nil
	}
}

// LocaleOf chọn locale cho response: query ?lang= trước, rồi header
// Accept-Language; mặc định tiếng Anh.
func LocaleOf(c fiber.Ctx) common.Locale {
	switch strings.ToLower(c.Query("lang")) {
	case "vi":
		return common.LocaleVI
	case "en":
		return common.LocaleEN
	}
	if strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderAcceptLanguage)), "vi") {
		return common.LocaleVI
	}
	return common.LocaleEN
}

// JSONResponse ghi response JSON với status code cho trước.
func JSONResponse(c fiber.Ctx, statusCode int, data any) error {
	return c.Status(statusCode).JSON(data)
}

// Respond là terminal responder của pipeline: điểm duy nhất ghi response
// lỗi. EntityError thành 422 với map field → message theo locale; *Error
// giữ nguyên status của nó; lỗi không nhận diện được thành 500 với message
// chung, chi tiết chỉ ghi log.
func Respond(c fiber.Ctx, err error) error {
	loc := LocaleOf(c)

	var entityErr *common.EntityError
	if errors.As(err, &entityErr) {
		fields := make(map[string]string, len(entityErr.Fields))
		for name, msg := range entityErr.Fields {
			fields[name] = msg.Pick(loc)
		}
		return JSONResponse(c, entityErr.StatusCode, fiber.Map{
			"message": entityErr.Message.Pick(loc),
			"errors":  fields,
		})
	}

	var appErr *common.Error
	if errors.As(err, &appErr) {
		return JSONResponse(c, appErr.StatusCode, fiber.Map{
			"message": appErr.Message.Pick(loc),
		})
	}

	logger.GetAppLogger().WithFields(map[string]any{
		"path":   c.Path(),
		"method": c.Method(),
		"state":  StateOf(c).String(),
	}).WithError(err).Error("unhandled error in request pipeline")
	return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
		"message": common.MsgInternalError.Pick(loc),
	})
}
