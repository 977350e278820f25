package router

import (
	"github.com/gofiber/fiber/v3"

	models "viet_commerce/internal/api/auth/models"
	"viet_commerce/internal/api/middleware"
	"viet_commerce/internal/pipeline"
)

// LƯU Ý: Fiber v3 không gọi middleware khi truyền trực tiếp vào route
// (router.Get(path, middleware, handler)). Mọi route cần middleware phải
// đăng ký qua RegisterRouteWithMiddleware, middleware gắn bằng .Use() trên
// group riêng của route.

// CRUDHandler định nghĩa interface cho các handler CRUD generic.
type CRUDHandler interface {
	// Create
	InsertOne(c fiber.Ctx) error
	InsertMany(c fiber.Ctx) error

	// Read
	Find(c fiber.Ctx) error
	FindOne(c fiber.Ctx) error
	FindOneById(c fiber.Ctx) error
	FindManyByIds(c fiber.Ctx) error
	FindWithPagination(c fiber.Ctx) error

	// Update
	UpdateOne(c fiber.Ctx) error
	UpdateMany(c fiber.Ctx) error
	UpdateById(c fiber.Ctx) error

	// Delete
	DeleteOne(c fiber.Ctx) error
	DeleteMany(c fiber.Ctx) error
	DeleteById(c fiber.Ctx) error

	// Other
	CountDocuments(c fiber.Ctx) error
	Distinct(c fiber.Ctx) error
}

// Router quản lý việc định tuyến cho API.
type Router struct {
	app *fiber.App
}

// CRUDConfig cấu hình các operation được phép cho mỗi collection.
type CRUDConfig struct {
	// Create
	InsOne  bool // Insert One
	InsMany bool // Insert Many

	// Read
	Find     bool // Find All
	FindOne  bool // Find One
	FindById bool // Find By Id
	FindIds  bool // Find Many By Ids
	Paginate bool // Find With Pagination

	// Update
	UpdOne  bool // Update One
	UpdMany bool // Update Many
	UpdById bool // Update By Id

	// Delete
	DelOne  bool // Delete One
	DelMany bool // Delete Many
	DelById bool // Delete By Id

	// Other
	Count    bool // Count Documents
	Distinct bool // Distinct
}

// Config dùng chung cho các collection.
var (
	// ReadOnlyConfig chỉ cho phép đọc (find, count, distinct).
	ReadOnlyConfig = CRUDConfig{
		Find: true, FindOne: true, FindById: true,
		FindIds: true, Paginate: true,
		Count: true, Distinct: true,
	}

	// ReadWriteConfig cho phép đầy đủ CRUD.
	ReadWriteConfig = CRUDConfig{
		InsOne: true, InsMany: true,
		Find: true, FindOne: true, FindById: true,
		FindIds: true, Paginate: true,
		UpdOne: true, UpdMany: true, UpdById: true,
		DelOne: true, DelMany: true, DelById: true,
		Count: true, Distinct: true,
	}
)

// GuardFunc trả về authorizer stage cho một thao tác CRUD. nil nghĩa là
// chỉ cần đăng nhập, không cần role cụ thể.
type GuardFunc func(op models.RoleType) pipeline.Stage

// RoleGuard yêu cầu role khớp đúng cặp (thao tác, nhóm tài nguyên).
func RoleGuard(field models.RoleField) GuardFunc {
	return func(op models.RoleType) pipeline.Stage {
		return middleware.RequireRole(op, field)
	}
}

// AdminGuard chỉ cho phép Admin với mọi thao tác.
func AdminGuard() GuardFunc {
	return func(op models.RoleType) pipeline.Stage {
		return middleware.RequireAdmin()
	}
}

// AuthOnlyGuard chỉ yêu cầu đăng nhập.
func AuthOnlyGuard() GuardFunc {
	return func(op models.RoleType) pipeline.Stage {
		return nil
	}
}

// RoutePrefix chứa các prefix cơ bản cho API.
type RoutePrefix struct {
	Base string // Prefix cơ bản (/api)
	V1   string // Prefix cho API version 1 (/api/v1)
}

// NewRoutePrefix tạo mới một instance của RoutePrefix với giá trị mặc định.
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// NewRouter tạo mới một instance của Router.
func NewRouter(app *fiber.App) *Router {
	return &Router{
		app: app,
	}
}

// RegisterRouteWithMiddleware đăng ký route với middleware qua .Use() trên
// group riêng (cách duy nhất hoạt động đúng trong Fiber v3, xem lưu ý đầu file).
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}

	switch method {
	case "GET":
		routeGroup.Get(path, handler)
	case "POST":
		routeGroup.Post(path, handler)
	case "PUT":
		routeGroup.Put(path, handler)
	case "DELETE":
		routeGroup.Delete(path, handler)
	}
}

// compileGuarded bọc handler vào pipeline với authorizer stage (nếu có).
func compileGuarded(stage pipeline.Stage, handler fiber.Handler) fiber.Handler {
	p := pipeline.New(handler)
	if stage != nil {
		p.Authorize(stage)
	}
	return p.Compile()
}

// RegisterCRUDRoutes đăng ký các route CRUD cho một collection. Mọi route đều
// yêu cầu đăng nhập; guard quyết định role cần cho từng thao tác.
func (r *Router) RegisterCRUDRoutes(router fiber.Router, prefix string, h CRUDHandler, config CRUDConfig, guard GuardFunc) {
	authMiddleware := middleware.AuthMiddleware()
	auth := []fiber.Handler{authMiddleware}

	// Create operations
	if config.InsOne {
		RegisterRouteWithMiddleware(router, prefix, "POST", "/insert-one", auth, compileGuarded(guard(models.RoleTypeCreate), h.InsertOne))
	}
	if config.InsMany {
		RegisterRouteWithMiddleware(router, prefix, "POST", "/insert-many", auth, compileGuarded(guard(models.RoleTypeCreate), h.InsertMany))
	}

	// Read operations
	if config.Find {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/find", auth, compileGuarded(guard(models.RoleTypeRead), h.Find))
	}
	if config.FindOne {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/find-one", auth, compileGuarded(guard(models.RoleTypeRead), h.FindOne))
	}
	if config.FindById {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/find-by-id/:id", auth, compileGuarded(guard(models.RoleTypeRead), h.FindOneById))
	}
	if config.FindIds {
		RegisterRouteWithMiddleware(router, prefix, "POST", "/find-by-ids", auth, compileGuarded(guard(models.RoleTypeRead), h.FindManyByIds))
	}
	if config.Paginate {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/find-with-pagination", auth, compileGuarded(guard(models.RoleTypeRead), h.FindWithPagination))
	}

	// Update operations
	if config.UpdOne {
		RegisterRouteWithMiddleware(router, prefix, "PUT", "/update-one", auth, compileGuarded(guard(models.RoleTypeUpdate), h.UpdateOne))
	}
	if config.UpdMany {
		RegisterRouteWithMiddleware(router, prefix, "PUT", "/update-many", auth, compileGuarded(guard(models.RoleTypeUpdate), h.UpdateMany))
	}
	if config.UpdById {
		RegisterRouteWithMiddleware(router, prefix, "PUT", "/update-by-id/:id", auth, compileGuarded(guard(models.RoleTypeUpdate), h.UpdateById))
	}

	// Delete operations
	if config.DelOne {
		RegisterRouteWithMiddleware(router, prefix, "DELETE", "/delete-one", auth, compileGuarded(guard(models.RoleTypeDelete), h.DeleteOne))
	}
	if config.DelMany {
		RegisterRouteWithMiddleware(router, prefix, "DELETE", "/delete-many", auth, compileGuarded(guard(models.RoleTypeDelete), h.DeleteMany))
	}
	if config.DelById {
		RegisterRouteWithMiddleware(router, prefix, "DELETE", "/delete-by-id/:id", auth, compileGuarded(guard(models.RoleTypeDelete), h.DeleteById))
	}

	// Other operations
	if config.Count {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/count", auth, compileGuarded(guard(models.RoleTypeRead), h.CountDocuments))
	}
	if config.Distinct {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/distinct", auth, compileGuarded(guard(models.RoleTypeRead), h.Distinct))
	}
}

// RegisterFunc là hàm đăng ký route của một domain (do domain/router export).
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes thiết lập tất cả các route cho ứng dụng. Caller truyền lần lượt
// Register của từng domain để tránh import cycle.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)
	r := NewRouter(app)
	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return err
		}
	}
	return nil
}
