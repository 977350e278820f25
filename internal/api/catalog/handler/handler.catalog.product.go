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

// ProductHandler xử lý CRUD sản phẩm: tạo/sửa/xóa gắn với owner, đọc công khai
// cho user đã đăng nhập.
type ProductHandler struct {
	*basehdl.BaseHandler[models.Product, catalogdto.ProductCreateInput, catalogdto.ProductUpdateInput]
	productService *catalogsvc.ProductService
}

// NewProductHandler tạo instance mới của ProductHandler.
func NewProductHandler() (*ProductHandler, error) {
	productService, err := catalogsvc.NewProductService()
	if err != nil {
		return nil, err
	}
	return &ProductHandler{
		BaseHandler:    basehdl.NewBaseHandler[models.Product, catalogdto.ProductCreateInput, catalogdto.ProductUpdateInput](productService),
		productService: productService,
	}, nil
}

// Service trả về ProductService, dùng bởi router khi build schema check và
// owner resolver.
func (h *ProductHandler) Service() *catalogsvc.ProductService {
	return h.productService
}

// HandleCreate tạo sản phẩm mới thuộc về user đang đăng nhập.
func (h *ProductHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		payload, ok := middleware.CurrentPayload(c)
		if !ok {
			return h.HandleResponse(c, nil, common.ErrTokenMissing)
		}
		ownerID, err := payload.UserObjectID()
		if err != nil {
			return h.HandleResponse(c, nil, common.ErrTokenInvalid)
		}

		var input catalogdto.ProductCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}

		product, err := h.productService.Create(c.Context(), &input, ownerID)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}
		return h.HandleCreated(c, product, nil)
	})
}

// HandleUpdate cập nhật sản phẩm. Role và ownership đã được các authorizer
// stage của route kiểm tra trước khi vào đây.
func (h *ProductHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		productID, err := h.ParseObjectID(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		var input catalogdto.ProductUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}
		updateMap, err := h.TransformUpdateInputToMap(&input)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		product, err := h.productService.UpdateById(c.Context(), productID, updateMap)
		return h.HandleResponse(c, product, err)
	})
}

// HandleDelete xóa sản phẩm nếu không còn review hay giỏ hàng tham chiếu.
func (h *ProductHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		productID, err := h.ParseObjectID(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		if err := h.productService.DeleteById(c.Context(), productID); err != nil {
			return h.HandleResponse(c, nil, err)
		}
		return h.HandleResponse(c, fiber.Map{"deleted": true}, nil)
	})
}

// HandleAdjustStock tăng/giảm tồn kho của sản phẩm một lượng delta.
func (h *ProductHandler) HandleAdjustStock(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		productID, err := h.ParseObjectID(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		var input struct {
			Delta int64 `json:"delta" validate:"required"`
		}
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}

		product, err := h.productService.AdjustStock(c.Context(), productID, input.Delta)
		return h.HandleResponse(c, product, err)
	})
}
