// Package orderhdl - handler cho domain order.
package orderhdl

import (
	"github.com/gofiber/fiber/v3"

	orderdto "viet_commerce/internal/api/order/dto"
	ordersvc "viet_commerce/internal/api/order/service"
	models "viet_commerce/internal/api/order/models"
	basehdl "viet_commerce/internal/api/base/handler"
	"viet_commerce/internal/api/middleware"
	"viet_commerce/internal/common"
)

// ProvinceHandler đọc dữ liệu tham chiếu tỉnh/thành.
type ProvinceHandler struct {
	*basehdl.BaseHandler[models.Province, struct{}, struct{}]
}

// NewProvinceHandler tạo instance mới của ProvinceHandler.
func NewProvinceHandler() (*ProvinceHandler, error) {
	provinceService, err := ordersvc.NewProvinceService()
	if err != nil {
		return nil, err
	}
	return &ProvinceHandler{
		BaseHandler: basehdl.NewBaseHandler[models.Province, struct{}, struct{}](provinceService),
	}, nil
}

// AddressHandler xử lý địa chỉ giao hàng. Sửa/xóa yêu cầu ownership, kiểm tra
// bởi authorizer stage của route.
type AddressHandler struct {
	*basehdl.BaseHandler[models.Address, orderdto.AddressCreateInput, orderdto.AddressUpdateInput]
	addressService *ordersvc.AddressService
}

// NewAddressHandler tạo instance mới của AddressHandler.
func NewAddressHandler() (*AddressHandler, error) {
	addressService, err := ordersvc.NewAddressService()
	if err != nil {
		return nil, err
	}
	return &AddressHandler{
		BaseHandler:    basehdl.NewBaseHandler[models.Address, orderdto.AddressCreateInput, orderdto.AddressUpdateInput](addressService),
		addressService: addressService,
	}, nil
}

// Service trả về AddressService, dùng bởi router khi build owner resolver.
func (h *AddressHandler) Service() *ordersvc.AddressService {
	return h.addressService
}

// HandleCreate tạo địa chỉ mới thuộc về user đang đăng nhập.
func (h *AddressHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		payload, ok := middleware.CurrentPayload(c)
		if !ok {
			return h.HandleResponse(c, nil, common.ErrTokenMissing)
		}
		ownerID, err := payload.UserObjectID()
		if err != nil {
			return h.HandleResponse(c, nil, common.ErrTokenInvalid)
		}

		var input orderdto.AddressCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}

		address, err := h.addressService.Create(c.Context(), &input, ownerID)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}
		return h.HandleCreated(c, address, nil)
	})
}

// HandleUpdate cập nhật địa chỉ của chính user.
func (h *AddressHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		addressID, err := h.ParseObjectID(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		var input orderdto.AddressUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}
		updateMap, err := h.TransformUpdateInputToMap(&input)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		address, err := h.addressService.UpdateById(c.Context(), addressID, updateMap)
		return h.HandleResponse(c, address, err)
	})
}

// HandleDelete xóa địa chỉ của chính user.
func (h *AddressHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		addressID, err := h.ParseObjectID(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		if err := h.addressService.DeleteById(c.Context(), addressID); err != nil {
			return h.HandleResponse(c, nil, err)
		}
		return h.HandleResponse(c, fiber.Map{"deleted": true}, nil)
	})
}

// HandleSetDefault chuyển địa chỉ thành mặc định cho user đang đăng nhập.
func (h *AddressHandler) HandleSetDefault(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		payload, ok := middleware.CurrentPayload(c)
		if !ok {
			return h.HandleResponse(c, nil, common.ErrTokenMissing)
		}
		ownerID, err := payload.UserObjectID()
		if err != nil {
			return h.HandleResponse(c, nil, common.ErrTokenInvalid)
		}
		addressID, err := h.ParseObjectID(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		address, err := h.addressService.SetDefault(c.Context(), ownerID, addressID)
		return h.HandleResponse(c, address, err)
	})
}

// HandleListMine liệt kê địa chỉ của user đang đăng nhập.
func (h *AddressHandler) HandleListMine(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		payload, ok := middleware.CurrentPayload(c)
		if !ok {
			return h.HandleResponse(c, nil, common.ErrTokenMissing)
		}
		ownerID, err := payload.UserObjectID()
		if err != nil {
			return h.HandleResponse(c, nil, common.ErrTokenInvalid)
		}

		addresses, err := h.addressService.FindByUser(c.Context(), ownerID)
		return h.HandleResponse(c, addresses, err)
	})
}
