package basehdl

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"

	"viet_commerce/internal/common"
	"viet_commerce/internal/logger"
	"viet_commerce/internal/pipeline"
)

// SafeHandler bọc handler với recover để server luôn trả về response cho
// client, kể cả khi có panic xảy ra.
func (h *BaseHandler[T, CreateInput, UpdateInput]) SafeHandler(c fiber.Ctx, handler func() error) error {
	defer func() {
		if r := recover(); r != nil {
			logger.GetAppLogger().WithFields(map[string]any{
				"path":   c.Path(),
				"method": c.Method(),
				"stack":  string(debug.Stack()),
			}).Error(fmt.Sprintf("panic trong handler: %v", r))

			_ = pipeline.Respond(c, common.ErrInternal)
		}
	}()
	return handler()
}

// HandleResponse chuẩn hóa response trả về cho client. Lỗi đi qua terminal
// responder của pipeline; thành công trả về message theo locale kèm data.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleResponse(c fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		return pipeline.Respond(c, err)
	}
	return pipeline.JSONResponse(c, common.StatusOK, fiber.Map{
		"message": common.MsgSuccess.Pick(pipeline.LocaleOf(c)),
		"data":    data,
	})
}

// HandleCreated như HandleResponse nhưng trả về 201 cho thao tác tạo mới.
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleCreated(c fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		return pipeline.Respond(c, err)
	}
	return pipeline.JSONResponse(c, common.StatusCreated, fiber.Map{
		"message": common.MsgCreated.Pick(pipeline.LocaleOf(c)),
		"data":    data,
	})
}
