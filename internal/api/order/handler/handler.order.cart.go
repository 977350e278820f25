package orderhdl

import (
	"github.com/gofiber/fiber/v3"

	orderdto "viet_commerce/internal/api/order/dto"
	ordersvc "viet_commerce/internal/api/order/service"
	models "viet_commerce/internal/api/order/models"
	basehdl "viet_commerce/internal/api/base/handler"
	"viet_commerce/internal/api/middleware"
	"viet_commerce/internal/common"
	"viet_commerce/internal/utility"
)

// CartHandler xử lý giỏ hàng của user đang đăng nhập.
type CartHandler struct {
	*basehdl.BaseHandler[models.CartItem, orderdto.CartAddInput, orderdto.CartUpdateInput]
	cartService *ordersvc.CartService
}

// NewCartHandler tạo instance mới của CartHandler.
func NewCartHandler() (*CartHandler, error) {
	cartService, err := ordersvc.NewCartService()
	if err != nil {
		return nil, err
	}
	return &CartHandler{
		BaseHandler: basehdl.NewBaseHandler[models.CartItem, orderdto.CartAddInput, orderdto.CartUpdateInput](cartService),
		cartService: cartService,
	}, nil
}

// Service trả về CartService, dùng bởi router khi build owner resolver.
func (h *CartHandler) Service() *ordersvc.CartService {
	return h.cartService
}

// HandleAddItem thêm sản phẩm vào giỏ, cộng dồn nếu đã có.
func (h *CartHandler) HandleAddItem(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		payload, ok := middleware.CurrentPayload(c)
		if !ok {
			return h.HandleResponse(c, nil, common.ErrTokenMissing)
		}
		ownerID, err := payload.UserObjectID()
		if err != nil {
			return h.HandleResponse(c, nil, common.ErrTokenInvalid)
		}

		var input orderdto.CartAddInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}

		item, err := h.cartService.AddItem(c.Context(), ownerID, utility.String2ObjectID(input.ProductID), input.Quantity)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}
		return h.HandleCreated(c, item, nil)
	})
}

// HandleUpdateQuantity đặt lại số lượng một dòng giỏ hàng.
func (h *CartHandler) HandleUpdateQuantity(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		itemID, err := h.ParseObjectID(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		var input orderdto.CartUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}

		item, err := h.cartService.UpdateQuantity(c.Context(), itemID, input.Quantity)
		return h.HandleResponse(c, item, err)
	})
}

// HandleRemoveItem xóa một dòng khỏi giỏ.
func (h *CartHandler) HandleRemoveItem(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		itemID, err := h.ParseObjectID(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		if err := h.cartService.RemoveItem(c.Context(), itemID); err != nil {
			return h.HandleResponse(c, nil, err)
		}
		return h.HandleResponse(c, fiber.Map{"deleted": true}, nil)
	})
}

// HandleListMine liệt kê giỏ hàng của user đang đăng nhập kèm sản phẩm.
func (h *CartHandler) HandleListMine(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		payload, ok := middleware.CurrentPayload(c)
		if !ok {
			return h.HandleResponse(c, nil, common.ErrTokenMissing)
		}
		ownerID, err := payload.UserObjectID()
		if err != nil {
			return h.HandleResponse(c, nil, common.ErrTokenInvalid)
		}

		items, err := h.cartService.ItemsOfUser(c.Context(), ownerID)
		return h.HandleResponse(c, items, err)
	})
}
