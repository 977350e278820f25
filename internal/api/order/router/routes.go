// Package router đăng ký các route thuộc domain order: province, address,
// cart và order.
package router

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "viet_commerce/internal/api/auth/models"
	catalogsvc "viet_commerce/internal/api/catalog/service"
	orderhdl "viet_commerce/internal/api/order/handler"
	ordersvc "viet_commerce/internal/api/order/service"
	models "viet_commerce/internal/api/order/models"
	"viet_commerce/internal/api/middleware"
	apirouter "viet_commerce/internal/api/router"
	"viet_commerce/internal/common"
	"viet_commerce/internal/pipeline"
)

// loadEntity trả về một custom check load document theo id và cache vào
// Exchange. Không tìm thấy là lỗi cấu trúc 404, dừng toàn bộ schema.
func loadEntity[T any](find func(c fiber.Ctx, id primitive.ObjectID) (T, error), entityKey string, notFound common.Message) pipeline.CustomFunc {
	return func(c fiber.Ctx, ex *pipeline.Exchange, value any) (any, error) {
		id, ok := value.(primitive.ObjectID)
		if !ok {
			return nil, common.ErrInvalidFormat
		}
		entity, err := find(c, id)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil, common.NewError(common.ErrCodeBusinessOperation, notFound, common.StatusNotFound, nil)
			}
			return nil, err
		}
		ex.SetEntity(entityKey, entity)
		return id, nil
	}
}

// ownerFromEntity trả về một resolver đọc owner id từ entity đã cache.
func ownerFromEntity[T any](entityKey string, ownerOf func(T) primitive.ObjectID) middleware.OwnerResolver {
	return func(c fiber.Ctx, ex *pipeline.Exchange) (primitive.ObjectID, error) {
		entity, ok := ex.Entity(entityKey)
		if !ok {
			return primitive.NilObjectID, common.ErrNotFound
		}
		typed, ok := entity.(T)
		if !ok {
			return primitive.NilObjectID, common.ErrNotFound
		}
		return ownerOf(typed), nil
	}
}

// Register đăng ký tất cả route order lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	if err := registerProvinceRoutes(v1, r); err != nil {
		return err
	}
	if err := registerAddressRoutes(v1, r); err != nil {
		return err
	}
	if err := registerCartRoutes(v1, r); err != nil {
		return err
	}
	if err := registerOrderRoutes(v1, r); err != nil {
		return err
	}
	return nil
}

func registerProvinceRoutes(router fiber.Router, r *apirouter.Router) error {
	provinceHandler, err := orderhdl.NewProvinceHandler()
	if err != nil {
		return fmt.Errorf("failed to create province handler: %w", err)
	}
	r.RegisterCRUDRoutes(router, "/provinces", provinceHandler, apirouter.ReadOnlyConfig, apirouter.AuthOnlyGuard())
	return nil
}

func registerAddressRoutes(router fiber.Router, r *apirouter.Router) error {
	addressHandler, err := orderhdl.NewAddressHandler()
	if err != nil {
		return fmt.Errorf("failed to create address handler: %w", err)
	}
	provinceService, err := ordersvc.NewProvinceService()
	if err != nil {
		return err
	}
	addressService := addressHandler.Service()

	createSchema := pipeline.NewSchema(
		pipeline.BodyField("fullName", pipeline.Trim(), pipeline.Required(), pipeline.StrLen(2, 100)),
		pipeline.BodyField("phone", pipeline.Trim(), pipeline.Required()),
		pipeline.BodyField("street", pipeline.Trim(), pipeline.Required(), pipeline.StrLen(2, 200)),
		pipeline.BodyField("provinceId", pipeline.Trim(), pipeline.Required(), pipeline.IsObjectID(),
			pipeline.Custom(loadEntity(func(c fiber.Ctx, id primitive.ObjectID) (models.Province, error) {
				return provinceService.FindOneById(c.Context(), id)
			}, "province", common.Msg("Province does not exist", "Tỉnh/thành không tồn tại")))),
	)

	paramSchema := pipeline.NewSchema(
		pipeline.ParamField("id", pipeline.Required(), pipeline.IsObjectID(),
			pipeline.Custom(loadEntity(func(c fiber.Ctx, id primitive.ObjectID) (models.Address, error) {
				return addressService.FindOneById(c.Context(), id)
			}, "address", common.Msg("Address not found", "Không tìm thấy địa chỉ")))),
	)

	resolveOwner := ownerFromEntity("address", func(a models.Address) primitive.ObjectID { return a.UserID })

	auth := []fiber.Handler{middleware.AuthMiddleware()}

	apirouter.RegisterRouteWithMiddleware(router, "/addresses", "GET", "/mine", auth,
		pipeline.New(addressHandler.HandleListMine).Compile())
	apirouter.RegisterRouteWithMiddleware(router, "/addresses", "POST", "/", auth,
		pipeline.New(addressHandler.HandleCreate).
			Validate(
				pipeline.FilterBody("fullName", "phone", "street", "ward", "district", "provinceId", "isDefault"),
				createSchema.Stage(),
			).
			Compile())
	apirouter.RegisterRouteWithMiddleware(router, "/addresses", "PUT", "/:id", auth,
		pipeline.New(addressHandler.HandleUpdate).
			Validate(paramSchema.Stage()).
			Authorize(middleware.RequireOwner(resolveOwner)).
			Compile())
	apirouter.RegisterRouteWithMiddleware(router, "/addresses", "PUT", "/default/:id", auth,
		pipeline.New(addressHandler.HandleSetDefault).
			Validate(paramSchema.Stage()).
			Authorize(middleware.RequireOwner(resolveOwner)).
			Compile())
	apirouter.RegisterRouteWithMiddleware(router, "/addresses", "DELETE", "/:id", auth,
		pipeline.New(addressHandler.HandleDelete).
			Validate(paramSchema.Stage()).
			Authorize(middleware.RequireOwner(resolveOwner)).
			Compile())

	return nil
}

func registerCartRoutes(router fiber.Router, r *apirouter.Router) error {
	cartHandler, err := orderhdl.NewCartHandler()
	if err != nil {
		return fmt.Errorf("failed to create cart handler: %w", err)
	}
	productService, err := catalogsvc.NewProductService()
	if err != nil {
		return err
	}
	cartService := cartHandler.Service()

	addSchema := pipeline.NewSchema(
		pipeline.BodyField("productId", pipeline.Trim(), pipeline.Required(), pipeline.IsObjectID(),
			pipeline.Custom(func(c fiber.Ctx, ex *pipeline.Exchange, value any) (any, error) {
				id, ok := value.(primitive.ObjectID)
				if !ok {
					return nil, common.ErrInvalidFormat
				}
				product, err := productService.FindOneById(c.Context(), id)
				if err != nil {
					if errors.Is(err, common.ErrNotFound) {
						return nil, pipeline.FieldError(common.Msg("Product does not exist", "Sản phẩm không tồn tại"))
					}
					return nil, err
				}
				ex.SetEntity("product", product)
				return id, nil
			})),
		pipeline.BodyField("quantity", pipeline.IsPosInt()),
	)

	updateSchema := pipeline.NewSchema(
		pipeline.ParamField("id", pipeline.Required(), pipeline.IsObjectID(),
			pipeline.Custom(loadEntity(func(c fiber.Ctx, id primitive.ObjectID) (models.CartItem, error) {
				return cartService.FindOneById(c.Context(), id)
			}, "cartItem", common.Msg("Cart item not found", "Không tìm thấy dòng giỏ hàng")))),
	)

	resolveOwner := ownerFromEntity("cartItem", func(i models.CartItem) primitive.ObjectID { return i.UserID })

	auth := []fiber.Handler{middleware.AuthMiddleware()}

	apirouter.RegisterRouteWithMiddleware(router, "/cart", "GET", "/", auth,
		pipeline.New(cartHandler.HandleListMine).Compile())
	apirouter.RegisterRouteWithMiddleware(router, "/cart", "POST", "/items", auth,
		pipeline.New(cartHandler.HandleAddItem).
			Validate(
				pipeline.FilterBody("productId", "quantity"),
				addSchema.Stage(),
			).
			Compile())
	apirouter.RegisterRouteWithMiddleware(router, "/cart", "PUT", "/items/:id", auth,
		pipeline.New(cartHandler.HandleUpdateQuantity).
			Validate(updateSchema.Stage()).
			Authorize(middleware.RequireOwner(resolveOwner)).
			Compile())
	apirouter.RegisterRouteWithMiddleware(router, "/cart", "DELETE", "/items/:id", auth,
		pipeline.New(cartHandler.HandleRemoveItem).
			Validate(updateSchema.Stage()).
			Authorize(middleware.RequireOwner(resolveOwner)).
			Compile())

	return nil
}

func registerOrderRoutes(router fiber.Router, r *apirouter.Router) error {
	orderHandler, err := orderhdl.NewOrderHandler()
	if err != nil {
		return fmt.Errorf("failed to create order handler: %w", err)
	}
	orderService := orderHandler.Service()

	// Ownership của địa chỉ giao được service kiểm tra lúc đặt, schema chỉ
	// lo shape.
	createSchema := pipeline.NewSchema(
		pipeline.BodyField("addressId", pipeline.Trim(), pipeline.Required(), pipeline.IsObjectID()),
		pipeline.BodyField("note", pipeline.Trim(), pipeline.StrLen(0, 1000)).AsOptional(),
	)

	paramSchema := pipeline.NewSchema(
		pipeline.ParamField("id", pipeline.Required(), pipeline.IsObjectID(),
			pipeline.Custom(loadEntity(func(c fiber.Ctx, id primitive.ObjectID) (models.Order, error) {
				return orderService.FindOneById(c.Context(), id)
			}, "order", common.Msg("Order not found", "Không tìm thấy đơn hàng")))),
	)

	resolveOwner := ownerFromEntity("order", func(o models.Order) primitive.ObjectID { return o.UserID })

	auth := []fiber.Handler{middleware.AuthMiddleware()}

	// Staff có role Order đọc toàn bộ đơn qua các route CRUD
	r.RegisterCRUDRoutes(router, "/orders", orderHandler, apirouter.ReadOnlyConfig, apirouter.RoleGuard(authmodels.RoleFieldOrder))

	apirouter.RegisterRouteWithMiddleware(router, "/orders", "POST", "/", auth,
		pipeline.New(orderHandler.HandleCreate).
			Validate(
				pipeline.FilterBody("addressId", "note"),
				createSchema.Stage(),
			).
			Compile())
	apirouter.RegisterRouteWithMiddleware(router, "/orders", "GET", "/mine", auth,
		pipeline.New(orderHandler.HandleListMine).Compile())
	apirouter.RegisterRouteWithMiddleware(router, "/orders", "GET", "/detail/:id", auth,
		pipeline.New(orderHandler.HandleDetail).
			Validate(paramSchema.Stage()).
			Authorize(middleware.RequireOwner(resolveOwner)).
			Compile())
	apirouter.RegisterRouteWithMiddleware(router, "/orders", "PUT", "/status/:id", auth,
		pipeline.New(orderHandler.HandleUpdateStatus).
			Validate(paramSchema.Stage()).
			Authorize(middleware.RequireRole(authmodels.RoleTypeUpdate, authmodels.RoleFieldOrder)).
			Compile())

	return nil
}
