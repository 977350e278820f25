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

// OrderHandler xử lý đơn hàng: khách đặt/xem đơn của mình, staff có role
// Order quản lý toàn bộ.
type OrderHandler struct {
	*basehdl.BaseHandler[models.Order, orderdto.OrderCreateInput, orderdto.OrderUpdateStatusInput]
	orderService *ordersvc.OrderService
}

// NewOrderHandler tạo instance mới của OrderHandler.
func NewOrderHandler() (*OrderHandler, error) {
	orderService, err := ordersvc.NewOrderService()
	if err != nil {
		return nil, err
	}
	return &OrderHandler{
		BaseHandler:  basehdl.NewBaseHandler[models.Order, orderdto.OrderCreateInput, orderdto.OrderUpdateStatusInput](orderService),
		orderService: orderService,
	}, nil
}

// Service trả về OrderService, dùng bởi router khi build owner resolver.
func (h *OrderHandler) Service() *ordersvc.OrderService {
	return h.orderService
}

// HandleCreate đặt hàng từ giỏ của user đang đăng nhập.
func (h *OrderHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		payload, ok := middleware.CurrentPayload(c)
		if !ok {
			return h.HandleResponse(c, nil, common.ErrTokenMissing)
		}
		ownerID, err := payload.UserObjectID()
		if err != nil {
			return h.HandleResponse(c, nil, common.ErrTokenInvalid)
		}

		var input orderdto.OrderCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}

		order, err := h.orderService.Create(c.Context(), ownerID, utility.String2ObjectID(input.AddressID), input.Note)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}
		return h.HandleCreated(c, order, nil)
	})
}

// HandleListMine liệt kê đơn của user đang đăng nhập với phân trang.
func (h *OrderHandler) HandleListMine(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		payload, ok := middleware.CurrentPayload(c)
		if !ok {
			return h.HandleResponse(c, nil, common.ErrTokenMissing)
		}
		ownerID, err := payload.UserObjectID()
		if err != nil {
			return h.HandleResponse(c, nil, common.ErrTokenInvalid)
		}

		page, limit := h.ParsePagination(c)
		result, err := h.orderService.ListByUser(c.Context(), ownerID, page, limit)
		return h.HandleResponse(c, result, err)
	})
}

// HandleDetail trả về đơn hàng kèm địa chỉ giao. Ownership đã được
// authorizer stage của route kiểm tra.
func (h *OrderHandler) HandleDetail(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		orderID, err := h.ParseObjectID(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		detail, err := h.orderService.Detail(c.Context(), orderID)
		return h.HandleResponse(c, detail, err)
	})
}

// HandleUpdateStatus chuyển trạng thái đơn, dành cho staff có role Order.
func (h *OrderHandler) HandleUpdateStatus(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		orderID, err := h.ParseObjectID(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		var input orderdto.OrderUpdateStatusInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}

		order, err := h.orderService.UpdateStatus(c.Context(), orderID, models.OrderStatus(input.Status))
		return h.HandleResponse(c, order, err)
	})
}
