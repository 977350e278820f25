package authhdl

import (
	"github.com/gofiber/fiber/v3"

	authdto "viet_commerce/internal/api/auth/dto"
	authsvc "viet_commerce/internal/api/auth/service"
	models "viet_commerce/internal/api/auth/models"
	basehdl "viet_commerce/internal/api/base/handler"
	"viet_commerce/internal/api/middleware"
	"viet_commerce/internal/utility"
)

// UserRoleHandler xử lý gán/gỡ role cho user.
type UserRoleHandler struct {
	*basehdl.BaseHandler[models.UserRole, authdto.UserRoleCreateInput, authdto.UserRoleUpdateInput]
	userRoleService *authsvc.UserRoleService
}

// NewUserRoleHandler tạo instance mới của UserRoleHandler.
func NewUserRoleHandler() (*UserRoleHandler, error) {
	userRoleService, err := authsvc.NewUserRoleService()
	if err != nil {
		return nil, err
	}
	return &UserRoleHandler{
		BaseHandler:     basehdl.NewBaseHandler[models.UserRole, authdto.UserRoleCreateInput, authdto.UserRoleUpdateInput](userRoleService),
		userRoleService: userRoleService,
	}, nil
}

// HandleAssign gán role cho user và xóa cache grant của user đó.
func (h *UserRoleHandler) HandleAssign(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.UserRoleCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}

		userID := utility.String2ObjectID(input.UserID)
		roleID := utility.String2ObjectID(input.RoleID)

		userRole, err := h.userRoleService.Assign(c.Context(), userID, roleID)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		middleware.GetAuthManager().InvalidateGrants(input.UserID)
		return h.HandleCreated(c, userRole, nil)
	})
}

// HandleRevoke gỡ role khỏi user và xóa cache grant của user đó.
func (h *UserRoleHandler) HandleRevoke(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.UserRoleCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}

		userID := utility.String2ObjectID(input.UserID)
		roleID := utility.String2ObjectID(input.RoleID)

		if err := h.userRoleService.Revoke(c.Context(), userID, roleID); err != nil {
			return h.HandleResponse(c, nil, err)
		}

		middleware.GetAuthManager().InvalidateGrants(input.UserID)
		return h.HandleResponse(c, fiber.Map{"revoked": true}, nil)
	})
}

// HandleRolesOfUser liệt kê các role đã gán cho một user.
func (h *UserRoleHandler) HandleRolesOfUser(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		roles, err := h.userRoleService.RolesOfUserID(c.Context(), c.Params("id"))
		return h.HandleResponse(c, roles, err)
	})
}
