package middleware

import (
	"github.com/gofiber/fiber/v3"

	"viet_commerce/internal/pipeline"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
// Helper function này đảm bảo tất cả JSON responses đều có charset=utf-8 để hỗ trợ UTF-8 encoding đúng cách
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	// Set Content-Type với charset=utf-8 trước khi gọi JSON
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// HandleErrorResponse xử lý và trả về error response cho client từ middleware
// chạy ngoài pipeline (ví dụ auth middleware). Dùng chung terminal responder
// với pipeline để body lỗi luôn một shape, một locale.
func HandleErrorResponse(c fiber.Ctx, err error) {
	pipeline.Respond(c, err)
}
