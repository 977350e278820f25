package authhdl

import (
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authdto "viet_commerce/internal/api/auth/dto"
	authsvc "viet_commerce/internal/api/auth/service"
	models "viet_commerce/internal/api/auth/models"
	basehdl "viet_commerce/internal/api/base/handler"
	"viet_commerce/internal/api/middleware"
)

// RoleHandler xử lý CRUD role.
type RoleHandler struct {
	*basehdl.BaseHandler[models.Role, authdto.RoleCreateInput, authdto.RoleUpdateInput]
	roleService *authsvc.RoleService
}

// NewRoleHandler tạo instance mới của RoleHandler.
func NewRoleHandler() (*RoleHandler, error) {
	roleService, err := authsvc.NewRoleService()
	if err != nil {
		return nil, err
	}
	return &RoleHandler{
		BaseHandler: basehdl.NewBaseHandler[models.Role, authdto.RoleCreateInput, authdto.RoleUpdateInput](roleService),
		roleService: roleService,
	}, nil
}

// HandleCreate tạo role mới. Type/field đã được schema của route kiểm tra
// nằm trong tập enum; role trùng là lỗi nghiệp vụ.
func (h *RoleHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.RoleCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}

		creatorID := primitive.NilObjectID
		if payload, ok := middleware.CurrentPayload(c); ok {
			if id, err := payload.UserObjectID(); err == nil {
				creatorID = id
			}
		}

		role, err := h.roleService.Create(c.Context(), &input, creatorID)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}
		return h.HandleCreated(c, role, nil)
	})
}
