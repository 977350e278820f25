// Package router đăng ký các route thuộc domain auth: đăng ký/đăng nhập,
// hồ sơ, quản trị user, role và gán role.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "viet_commerce/internal/api/auth/handler"
	models "viet_commerce/internal/api/auth/models"
	basehdl "viet_commerce/internal/api/base/handler"
	"viet_commerce/internal/api/middleware"
	apirouter "viet_commerce/internal/api/router"
	"viet_commerce/internal/common"
	"viet_commerce/internal/pipeline"
)

// registerSchema ràng buộc body của POST /auth/register.
var registerSchema = pipeline.NewSchema(
	pipeline.BodyField("name", pipeline.Trim(), pipeline.Required(), pipeline.StrLen(2, 100)),
	pipeline.BodyField("email", pipeline.Trim(), pipeline.Required(), pipeline.IsEmail()),
	pipeline.BodyField("password", pipeline.Required(), pipeline.StrLen(8, 72)),
	pipeline.BodyField("phone", pipeline.Trim()).AsOptional(),
)

// loginSchema ràng buộc body của POST /auth/login.
var loginSchema = pipeline.NewSchema(
	pipeline.BodyField("email", pipeline.Trim(), pipeline.Required(), pipeline.IsEmail()),
	pipeline.BodyField("password", pipeline.Required()),
)

// roleCreateSchema ràng buộc body của POST /roles: type và field phải nằm
// trong tập enum đóng, name bắt buộc.
var roleCreateSchema = pipeline.NewSchema(
	pipeline.BodyField("type",
		pipeline.IntRange(int64(models.RoleTypeCreate), int64(models.RoleTypeDelete)).
			WithMessage(common.Msg("type is out of the allowed range", "type nằm ngoài tập giá trị cho phép"))),
	pipeline.BodyField("field",
		pipeline.IntRange(int64(models.RoleFieldProduct), int64(models.RoleFieldOrder)).
			WithMessage(common.Msg("field is out of the allowed range", "field nằm ngoài tập giá trị cho phép"))),
	pipeline.BodyField("name", pipeline.Trim(), pipeline.Required(), pipeline.StrLen(2, 100)),
	pipeline.BodyField("describe", pipeline.Trim(), pipeline.StrLen(0, 500)).AsOptional(),
)

// userRoleSchema ràng buộc body gán/gỡ role.
var userRoleSchema = pipeline.NewSchema(
	pipeline.BodyField("userId", pipeline.Trim(), pipeline.Required(), pipeline.IsObjectID()),
	pipeline.BodyField("roleId", pipeline.Trim(), pipeline.Required(), pipeline.IsObjectID()),
)

// Register đăng ký tất cả route auth lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	if err := registerSystemRoutes(v1); err != nil {
		return err
	}
	if err := registerAuthRoutes(v1); err != nil {
		return err
	}
	if err := registerUserAdminRoutes(v1, r); err != nil {
		return err
	}
	if err := registerRoleRoutes(v1, r); err != nil {
		return err
	}
	return nil
}

func registerSystemRoutes(router fiber.Router) error {
	systemHandler := basehdl.NewSystemHandler()
	router.Get("/system/health", systemHandler.HandleHealth)
	return nil
}

func registerAuthRoutes(router fiber.Router) error {
	userHandler, err := authhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("failed to create user handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()

	// Route công khai: đăng ký và đăng nhập
	router.Post("/auth/register", pipeline.New(userHandler.HandleRegister).
		Validate(
			pipeline.FilterBody("name", "email", "password", "phone"),
			registerSchema.Stage(),
		).Compile())
	router.Post("/auth/login", pipeline.New(userHandler.HandleLogin).
		Validate(
			pipeline.FilterBody("email", "password"),
			loginSchema.Stage(),
		).Compile())

	// Route cần đăng nhập: hồ sơ cá nhân
	auth := []fiber.Handler{authMiddleware}
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "GET", "/profile", auth, userHandler.HandleProfile)
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "PUT", "/profile", auth,
		pipeline.New(userHandler.HandleUpdateProfile).
			Validate(pipeline.FilterBody("name", "phone", "avatarUrl")).Compile())
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "PUT", "/change-password", auth,
		pipeline.New(userHandler.HandleChangePassword).
			Validate(pipeline.FilterBody("oldPassword", "newPassword")).Compile())

	return nil
}

func registerUserAdminRoutes(router fiber.Router, r *apirouter.Router) error {
	userHandler, err := authhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("failed to create user handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	r.RegisterCRUDRoutes(router, "/users", userHandler, apirouter.ReadWriteConfig, apirouter.AdminGuard())
	apirouter.RegisterRouteWithMiddleware(router, "/users", "PUT", "/block/:id", []fiber.Handler{authMiddleware},
		pipeline.New(userHandler.HandleBlockUser).
			Authorize(middleware.RequireAdmin()).Compile())
	return nil
}

func registerRoleRoutes(router fiber.Router, r *apirouter.Router) error {
	roleHandler, err := authhdl.NewRoleHandler()
	if err != nil {
		return fmt.Errorf("failed to create role handler: %w", err)
	}
	userRoleHandler, err := authhdl.NewUserRoleHandler()
	if err != nil {
		return fmt.Errorf("failed to create user role handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	auth := []fiber.Handler{authMiddleware}

	// Tạo role đi qua schema enum, các thao tác còn lại là CRUD quản trị
	apirouter.RegisterRouteWithMiddleware(router, "/roles", "POST", "/", auth,
		pipeline.New(roleHandler.HandleCreate).
			Validate(
				pipeline.FilterBody("type", "field", "name", "describe"),
				roleCreateSchema.Stage(),
			).
			Authorize(middleware.RequireAdmin()).Compile())
	r.RegisterCRUDRoutes(router, "/roles", roleHandler, apirouter.ReadOnlyConfig, apirouter.AdminGuard())

	// Gán/gỡ role cho user
	apirouter.RegisterRouteWithMiddleware(router, "/user-roles", "POST", "/", auth,
		pipeline.New(userRoleHandler.HandleAssign).
			Validate(
				pipeline.FilterBody("userId", "roleId"),
				userRoleSchema.Stage(),
			).
			Authorize(middleware.RequireAdmin()).Compile())
	apirouter.RegisterRouteWithMiddleware(router, "/user-roles", "DELETE", "/", auth,
		pipeline.New(userRoleHandler.HandleRevoke).
			Validate(
				pipeline.FilterBody("userId", "roleId"),
				userRoleSchema.Stage(),
			).
			Authorize(middleware.RequireAdmin()).Compile())
	apirouter.RegisterRouteWithMiddleware(router, "/user-roles", "GET", "/of-user/:id", auth,
		pipeline.New(userRoleHandler.HandleRolesOfUser).
			Authorize(middleware.RequireAdmin()).Compile())

	return nil
}
