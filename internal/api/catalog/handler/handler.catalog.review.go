package cataloghdl

import (
	"github.com/gofiber/fiber/v3"

	catalogdto "viet_commerce/internal/api/catalog/dto"
	catalogsvc "viet_commerce/internal/api/catalog/service"
	models "viet_commerce/internal/api/catalog/models"
	basehdl "viet_commerce/internal/api/base/handler"
	"viet_commerce/internal/api/middleware"
	"viet_commerce/internal/common"
)

// ReviewHandler xử lý đánh giá sản phẩm. Sửa/xóa yêu cầu ownership, kiểm tra
// bởi authorizer stage của route.
type ReviewHandler struct {
	*basehdl.BaseHandler[models.Review, catalogdto.ReviewCreateInput, catalogdto.ReviewUpdateInput]
	reviewService *catalogsvc.ReviewService
}

// NewReviewHandler tạo instance mới của ReviewHandler.
func NewReviewHandler() (*ReviewHandler, error) {
	reviewService, err := catalogsvc.NewReviewService()
	if err != nil {
		return nil, err
	}
	return &ReviewHandler{
		BaseHandler:   basehdl.NewBaseHandler[models.Review, catalogdto.ReviewCreateInput, catalogdto.ReviewUpdateInput](reviewService),
		reviewService: reviewService,
	}, nil
}

// Service trả về ReviewService, dùng bởi router khi build owner resolver.
func (h *ReviewHandler) Service() *catalogsvc.ReviewService {
	return h.reviewService
}

// HandleCreate tạo đánh giá mới của user đang đăng nhập.
func (h *ReviewHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		payload, ok := middleware.CurrentPayload(c)
		if !ok {
			return h.HandleResponse(c, nil, common.ErrTokenMissing)
		}
		userID, err := payload.UserObjectID()
		if err != nil {
			return h.HandleResponse(c, nil, common.ErrTokenInvalid)
		}

		var input catalogdto.ReviewCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}

		review, err := h.reviewService.Create(c.Context(), &input, userID)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}
		return h.HandleCreated(c, review, nil)
	})
}

// HandleUpdate cập nhật đánh giá của chính user.
func (h *ReviewHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		reviewID, err := h.ParseObjectID(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		var input catalogdto.ReviewUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}

		review, err := h.reviewService.Update(c.Context(), reviewID, &input)
		return h.HandleResponse(c, review, err)
	})
}

// HandleDelete xóa đánh giá của chính user.
func (h *ReviewHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		reviewID, err := h.ParseObjectID(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		if err := h.reviewService.Delete(c.Context(), reviewID); err != nil {
			return h.HandleResponse(c, nil, err)
		}
		return h.HandleResponse(c, fiber.Map{"deleted": true}, nil)
	})
}

// HandleListByProduct liệt kê đánh giá của một sản phẩm.
func (h *ReviewHandler) HandleListByProduct(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		productID, err := h.ParseObjectID(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		page, limit := h.ParsePagination(c)
		result, err := h.reviewService.FindByProduct(c.Context(), productID, page, limit)
		return h.HandleResponse(c, result, err)
	})
}
