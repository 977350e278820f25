package basehdl

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"viet_commerce/internal/common"
	"viet_commerce/internal/global"
	"viet_commerce/internal/pipeline"
)

// SystemHandler xử lý các route hệ thống (health check).
type SystemHandler struct{}

// NewSystemHandler tạo một instance mới của SystemHandler.
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// HandleHealth kiểm tra trạng thái của API và kết nối database.
// Trả về 200 khi hệ thống hoạt động bình thường, 503 khi database lỗi.
func (h *SystemHandler) HandleHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	services := fiber.Map{"api": "ok"}
	healthData := fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"services":  services,
	}

	if global.MongoDB_Session == nil {
		healthData["status"] = "degraded"
		services["database"] = "not_initialized"
		return pipeline.JSONResponse(c, common.StatusServiceUnavailable, healthData)
	}

	if err := global.MongoDB_Session.Ping(ctx, nil); err != nil {
		healthData["status"] = "degraded"
		services["database"] = "error"
		return pipeline.JSONResponse(c, common.StatusServiceUnavailable, healthData)
	}

	services["database"] = "ok"
	return pipeline.JSONResponse(c, common.StatusOK, healthData)
}
