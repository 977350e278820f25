// Package router đăng ký các route thuộc domain catalog: brand, category,
// product và review.
package router

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "viet_commerce/internal/api/auth/models"
	cataloghdl "viet_commerce/internal/api/catalog/handler"
	catalogsvc "viet_commerce/internal/api/catalog/service"
	models "viet_commerce/internal/api/catalog/models"
	"viet_commerce/internal/api/middleware"
	apirouter "viet_commerce/internal/api/router"
	"viet_commerce/internal/common"
	"viet_commerce/internal/pipeline"
)

// productExists trả về một custom check xác nhận sản phẩm tồn tại và cache
// entity đã load vào Exchange. Không tìm thấy là lỗi cấu trúc 404, dừng
// toàn bộ schema.
func productExists(svc *catalogsvc.ProductService, entityKey string) pipeline.CustomFunc {
	return func(c fiber.Ctx, ex *pipeline.Exchange, value any) (any, error) {
		id, ok := value.(primitive.ObjectID)
		if !ok {
			return nil, common.ErrInvalidFormat
		}
		product, err := svc.FindOneById(c.Context(), id)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil, common.NewError(
					common.ErrCodeBusinessOperation,
					common.Msg("Product not found", "Không tìm thấy sản phẩm"),
					common.StatusNotFound,
					nil,
				)
			}
			return nil, err
		}
		ex.SetEntity(entityKey, product)
		return id, nil
	}
}

func categoryExists(svc *catalogsvc.CategoryService) pipeline.CustomFunc {
	return func(c fiber.Ctx, ex *pipeline.Exchange, value any) (any, error) {
		id, ok := value.(primitive.ObjectID)
		if !ok {
			return nil, common.ErrInvalidFormat
		}
		category, err := svc.FindOneById(c.Context(), id)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil, pipeline.FieldError(common.Msg("Category does not exist", "Category không tồn tại"))
			}
			return nil, err
		}
		ex.SetEntity("category", category)
		return id, nil
	}
}

func brandExists(svc *catalogsvc.BrandService) pipeline.CustomFunc {
	return func(c fiber.Ctx, ex *pipeline.Exchange, value any) (any, error) {
		id, ok := value.(primitive.ObjectID)
		if !ok {
			return nil, common.ErrInvalidFormat
		}
		brand, err := svc.FindOneById(c.Context(), id)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil, pipeline.FieldError(common.Msg("Brand does not exist", "Brand không tồn tại"))
			}
			return nil, err
		}
		ex.SetEntity("brand", brand)
		return id, nil
	}
}

// productOwner đọc owner id từ entity product đã được schema load vào Exchange.
func productOwner(ex *pipeline.Exchange) (primitive.ObjectID, error) {
	entity, ok := ex.Entity("product")
	if !ok {
		return primitive.NilObjectID, common.ErrNotFound
	}
	product, ok := entity.(models.Product)
	if !ok {
		return primitive.NilObjectID, common.ErrNotFound
	}
	return product.UserID, nil
}

// reviewOwner đọc owner id từ entity review đã được schema load vào Exchange.
func reviewOwner(ex *pipeline.Exchange) (primitive.ObjectID, error) {
	entity, ok := ex.Entity("review")
	if !ok {
		return primitive.NilObjectID, common.ErrNotFound
	}
	review, ok := entity.(models.Review)
	if !ok {
		return primitive.NilObjectID, common.ErrNotFound
	}
	return review.UserID, nil
}

// Register đăng ký tất cả route catalog lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	if err := registerBrandCategoryRoutes(v1, r); err != nil {
		return err
	}
	if err := registerProductRoutes(v1, r); err != nil {
		return err
	}
	if err := registerReviewRoutes(v1, r); err != nil {
		return err
	}
	return nil
}

func registerBrandCategoryRoutes(router fiber.Router, r *apirouter.Router) error {
	brandHandler, err := cataloghdl.NewBrandHandler()
	if err != nil {
		return fmt.Errorf("failed to create brand handler: %w", err)
	}
	categoryHandler, err := cataloghdl.NewCategoryHandler()
	if err != nil {
		return fmt.Errorf("failed to create category handler: %w", err)
	}

	r.RegisterCRUDRoutes(router, "/brands", brandHandler, apirouter.ReadWriteConfig, apirouter.AdminGuard())
	r.RegisterCRUDRoutes(router, "/categories", categoryHandler, apirouter.ReadWriteConfig, apirouter.AdminGuard())
	return nil
}

func registerProductRoutes(router fiber.Router, r *apirouter.Router) error {
	productHandler, err := cataloghdl.NewProductHandler()
	if err != nil {
		return fmt.Errorf("failed to create product handler: %w", err)
	}
	categoryService, err := catalogsvc.NewCategoryService()
	if err != nil {
		return err
	}
	brandService, err := catalogsvc.NewBrandService()
	if err != nil {
		return err
	}
	productService := productHandler.Service()

	// Schema cho body tạo sản phẩm: tồn tại của category/brand kiểm tra ngay
	// trong chuỗi check, entity được cache cho handler.
	createSchema := pipeline.NewSchema(
		pipeline.BodyField("name", pipeline.Trim(), pipeline.Required(), pipeline.StrLen(2, 200)),
		pipeline.BodyField("price", pipeline.IsNonNegInt()),
		pipeline.BodyField("stock", pipeline.IsNonNegInt()),
		pipeline.BodyField("categoryId", pipeline.Trim(), pipeline.Required(), pipeline.IsObjectID(),
			pipeline.Custom(categoryExists(categoryService))),
		pipeline.BodyField("brandId", pipeline.Trim(), pipeline.IsObjectID(),
			pipeline.Custom(brandExists(brandService))).AsOptional(),
	)

	// Schema cho params: load sản phẩm một lần, các authorizer phía sau đọc
	// entity từ Exchange.
	paramSchema := pipeline.NewSchema(
		pipeline.ParamField("id", pipeline.Required(), pipeline.IsObjectID(),
			pipeline.Custom(productExists(productService, "product"))),
	)

	resolveOwner := func(c fiber.Ctx, ex *pipeline.Exchange) (primitive.ObjectID, error) {
		return productOwner(ex)
	}

	authMiddleware := middleware.AuthMiddleware()
	auth := []fiber.Handler{authMiddleware}

	// Đọc công khai cho user đã đăng nhập
	r.RegisterCRUDRoutes(router, "/products", productHandler, apirouter.ReadOnlyConfig, apirouter.AuthOnlyGuard())

	// Ghi gắn với role Product và ownership
	apirouter.RegisterRouteWithMiddleware(router, "/products", "POST", "/", auth,
		pipeline.New(productHandler.HandleCreate).
			Validate(
				pipeline.FilterBody("name", "describe", "price", "stock", "categoryId", "brandId", "imageUrls"),
				createSchema.Stage(),
			).
			Authorize(middleware.RequireRole(authmodels.RoleTypeCreate, authmodels.RoleFieldProduct)).
			Compile())
	apirouter.RegisterRouteWithMiddleware(router, "/products", "PUT", "/:id", auth,
		pipeline.New(productHandler.HandleUpdate).
			Validate(paramSchema.Stage()).
			Authorize(
				middleware.RequireRole(authmodels.RoleTypeUpdate, authmodels.RoleFieldProduct),
				middleware.RequireProductOwner(resolveOwner),
			).
			Compile())
	apirouter.RegisterRouteWithMiddleware(router, "/products", "PUT", "/stock/:id", auth,
		pipeline.New(productHandler.HandleAdjustStock).
			Validate(paramSchema.Stage()).
			Authorize(
				middleware.RequireRole(authmodels.RoleTypeUpdate, authmodels.RoleFieldProduct),
				middleware.RequireProductOwner(resolveOwner),
			).
			Compile())
	apirouter.RegisterRouteWithMiddleware(router, "/products", "DELETE", "/:id", auth,
		pipeline.New(productHandler.HandleDelete).
			Validate(paramSchema.Stage()).
			Authorize(
				middleware.RequireRole(authmodels.RoleTypeDelete, authmodels.RoleFieldProduct),
				middleware.RequireProductOwner(resolveOwner),
			).
			Compile())

	return nil
}

func registerReviewRoutes(router fiber.Router, r *apirouter.Router) error {
	reviewHandler, err := cataloghdl.NewReviewHandler()
	if err != nil {
		return fmt.Errorf("failed to create review handler: %w", err)
	}
	productService, err := catalogsvc.NewProductService()
	if err != nil {
		return err
	}
	reviewService := reviewHandler.Service()

	createSchema := pipeline.NewSchema(
		pipeline.BodyField("productId", pipeline.Trim(), pipeline.Required(), pipeline.IsObjectID(),
			pipeline.Custom(productExists(productService, "product"))),
		pipeline.BodyField("rating", pipeline.IntRange(1, 5)),
		pipeline.BodyField("content", pipeline.Trim(), pipeline.StrLen(0, 2000)).AsOptional(),
	)

	paramSchema := pipeline.NewSchema(
		pipeline.ParamField("id", pipeline.Required(), pipeline.IsObjectID(),
			pipeline.Custom(func(c fiber.Ctx, ex *pipeline.Exchange, value any) (any, error) {
				id, ok := value.(primitive.ObjectID)
				if !ok {
					return nil, common.ErrInvalidFormat
				}
				review, err := reviewService.FindOneById(c.Context(), id)
				if err != nil {
					if errors.Is(err, common.ErrNotFound) {
						return nil, common.NewError(
							common.ErrCodeBusinessOperation,
							common.Msg("Review not found", "Không tìm thấy đánh giá"),
							common.StatusNotFound,
							nil,
						)
					}
					return nil, err
				}
				ex.SetEntity("review", review)
				return id, nil
			})),
	)

	resolveOwner := func(c fiber.Ctx, ex *pipeline.Exchange) (primitive.ObjectID, error) {
		return reviewOwner(ex)
	}

	authMiddleware := middleware.AuthMiddleware()
	auth := []fiber.Handler{authMiddleware}

	apirouter.RegisterRouteWithMiddleware(router, "/reviews", "GET", "/of-product/:id", auth,
		pipeline.New(reviewHandler.HandleListByProduct).Compile())
	apirouter.RegisterRouteWithMiddleware(router, "/reviews", "POST", "/", auth,
		pipeline.New(reviewHandler.HandleCreate).
			Validate(
				pipeline.FilterBody("productId", "rating", "content"),
				createSchema.Stage(),
			).
			Compile())
	apirouter.RegisterRouteWithMiddleware(router, "/reviews", "PUT", "/:id", auth,
		pipeline.New(reviewHandler.HandleUpdate).
			Validate(paramSchema.Stage()).
			Authorize(middleware.RequireOwner(resolveOwner)).
			Compile())
	apirouter.RegisterRouteWithMiddleware(router, "/reviews", "DELETE", "/:id", auth,
		pipeline.New(reviewHandler.HandleDelete).
			Validate(paramSchema.Stage()).
			Authorize(middleware.RequireOwner(resolveOwner)).
			Compile())

	return nil
}
