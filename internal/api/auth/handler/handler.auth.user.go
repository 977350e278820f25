// Package authhdl xử lý các request xác thực và quản lý người dùng.
package authhdl

import (
	"github.com/gofiber/fiber/v3"

	authdto "viet_commerce/internal/api/auth/dto"
	authsvc "viet_commerce/internal/api/auth/service"
	models "viet_commerce/internal/api/auth/models"
	basehdl "viet_commerce/internal/api/base/handler"
	"viet_commerce/internal/api/middleware"
	"viet_commerce/internal/common"
	"viet_commerce/internal/utility"
)

// UserHandler xử lý đăng ký, đăng nhập, hồ sơ và quản trị người dùng.
type UserHandler struct {
	*basehdl.BaseHandler[models.User, authdto.UserCreateInput, authdto.UserUpdateInput]
	userService *authsvc.UserService
}

// NewUserHandler tạo instance mới của UserHandler.
func NewUserHandler() (*UserHandler, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, err
	}
	return &UserHandler{
		BaseHandler: basehdl.NewBaseHandler[models.User, authdto.UserCreateInput, authdto.UserUpdateInput](userService),
		userService: userService,
	}, nil
}

// HandleRegister đăng ký tài khoản Customer mới.
func (h *UserHandler) HandleRegister(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.UserRegisterInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}

		user, err := h.userService.Register(c.Context(), &input)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}
		return h.HandleCreated(c, user, nil)
	})
}

// HandleLogin đăng nhập và phát hành access token.
func (h *UserHandler) HandleLogin(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.UserLoginInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}

		user, token, err := h.userService.Login(c.Context(), &input)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}
		return h.HandleResponse(c, fiber.Map{
			"token": token,
			"user":  user,
		}, nil)
	})
}

// HandleProfile trả về hồ sơ của user đang đăng nhập.
func (h *UserHandler) HandleProfile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		payload, ok := middleware.CurrentPayload(c)
		if !ok {
			return h.HandleResponse(c, nil, common.ErrTokenMissing)
		}
		userID, err := payload.UserObjectID()
		if err != nil {
			return h.HandleResponse(c, nil, common.ErrTokenInvalid)
		}

		user, err := h.userService.FindOneById(c.Context(), userID)
		return h.HandleResponse(c, user, err)
	})
}

// HandleUpdateProfile cập nhật hồ sơ của user đang đăng nhập.
func (h *UserHandler) HandleUpdateProfile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		payload, ok := middleware.CurrentPayload(c)
		if !ok {
			return h.HandleResponse(c, nil, common.ErrTokenMissing)
		}
		userID, err := payload.UserObjectID()
		if err != nil {
			return h.HandleResponse(c, nil, common.ErrTokenInvalid)
		}

		var input authdto.UserUpdateProfileInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}
		updateMap, err := utility.ToMap(&input)
		if err != nil {
			return h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err))
		}

		user, err := h.userService.UpdateById(c.Context(), userID, updateMap)
		return h.HandleResponse(c, user, err)
	})
}

// HandleChangePassword đổi mật khẩu của user đang đăng nhập.
func (h *UserHandler) HandleChangePassword(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		payload, ok := middleware.CurrentPayload(c)
		if !ok {
			return h.HandleResponse(c, nil, common.ErrTokenMissing)
		}
		userID, err := payload.UserObjectID()
		if err != nil {
			return h.HandleResponse(c, nil, common.ErrTokenInvalid)
		}

		var input authdto.UserChangePasswordInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}

		if err := h.userService.ChangePassword(c.Context(), userID, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}
		return h.HandleResponse(c, fiber.Map{"changed": true}, nil)
	})
}

// HandleBlockUser khóa hoặc mở khóa một tài khoản (chỉ Admin).
func (h *UserHandler) HandleBlockUser(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.ParseObjectID(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		var input authdto.UserBlockInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}

		user, err := h.userService.SetBlocked(c.Context(), userID, input.Block, input.Note)
		return h.HandleResponse(c, user, err)
	})
}
