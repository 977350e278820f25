// Package router đăng ký các route thuộc domain content: post và file upload.
package router

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "viet_commerce/internal/api/auth/models"
	contenthdl "viet_commerce/internal/api/content/handler"
	contentsvc "viet_commerce/internal/api/content/service"
	models "viet_commerce/internal/api/content/models"
	"viet_commerce/internal/api/middleware"
	apirouter "viet_commerce/internal/api/router"
	"viet_commerce/internal/common"
	"viet_commerce/internal/global"
	"viet_commerce/internal/pipeline"
	"viet_commerce/internal/storage"
)

// Register đăng ký tất cả route content lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	if err := registerPostRoutes(v1, r); err != nil {
		return err
	}
	if err := registerFileRoutes(v1, r); err != nil {
		return err
	}
	return nil
}

func registerPostRoutes(router fiber.Router, r *apirouter.Router) error {
	postHandler, err := contenthdl.NewPostHandler()
	if err != nil {
		return fmt.Errorf("failed to create post handler: %w", err)
	}
	postService := postHandler.Service()

	createSchema := pipeline.NewSchema(
		pipeline.BodyField("title", pipeline.Trim(), pipeline.Required(), pipeline.StrLen(2, 200)),
		pipeline.BodyField("content", pipeline.Trim(), pipeline.Required()),
		pipeline.BodyField("slug", pipeline.Trim(), pipeline.StrLen(2, 200)).AsOptional(),
		pipeline.BodyField("coverUrl", pipeline.Trim(), pipeline.IsURL()).AsOptional(),
	)

	paramSchema := pipeline.NewSchema(
		pipeline.ParamField("id", pipeline.Required(), pipeline.IsObjectID(),
			pipeline.Custom(func(c fiber.Ctx, ex *pipeline.Exchange, value any) (any, error) {
				id, ok := value.(primitive.ObjectID)
				if !ok {
					return nil, common.ErrInvalidFormat
				}
				post, err := postService.FindOneById(c.Context(), id)
				if err != nil {
					if errors.Is(err, common.ErrNotFound) {
						return nil, common.NewError(
							common.ErrCodeBusinessOperation,
							common.Msg("Post not found", "Không tìm thấy bài viết"),
							common.StatusNotFound,
							nil,
						)
					}
					return nil, err
				}
				ex.SetEntity("post", post)
				return id, nil
			})),
	)

	resolveOwner := func(c fiber.Ctx, ex *pipeline.Exchange) (primitive.ObjectID, error) {
		entity, ok := ex.Entity("post")
		if !ok {
			return primitive.NilObjectID, common.ErrNotFound
		}
		post, ok := entity.(models.Post)
		if !ok {
			return primitive.NilObjectID, common.ErrNotFound
		}
		return post.UserID, nil
	}

	auth := []fiber.Handler{middleware.AuthMiddleware()}

	// Đọc quản trị gắn với role Post, đọc công khai qua published/slug
	r.RegisterCRUDRoutes(router, "/posts", postHandler, apirouter.ReadOnlyConfig, apirouter.RoleGuard(authmodels.RoleFieldPost))

	apirouter.RegisterRouteWithMiddleware(router, "/posts", "GET", "/published", auth,
		pipeline.New(postHandler.HandleListPublished).Compile())
	apirouter.RegisterRouteWithMiddleware(router, "/posts", "GET", "/slug/:slug", auth,
		pipeline.New(postHandler.HandleFindBySlug).Compile())
	apirouter.RegisterRouteWithMiddleware(router, "/posts", "POST", "/", auth,
		pipeline.New(postHandler.HandleCreate).
			Validate(
				pipeline.FilterBody("title", "slug", "content", "coverUrl"),
				createSchema.Stage(),
			).
			Authorize(middleware.RequireRole(authmodels.RoleTypeCreate, authmodels.RoleFieldPost)).
			Compile())
	apirouter.RegisterRouteWithMiddleware(router, "/posts", "PUT", "/:id", auth,
		pipeline.New(postHandler.HandleUpdate).
			Validate(paramSchema.Stage()).
			Authorize(
				middleware.RequireRole(authmodels.RoleTypeUpdate, authmodels.RoleFieldPost),
				middleware.RequireOwner(resolveOwner),
			).
			Compile())
	apirouter.RegisterRouteWithMiddleware(router, "/posts", "DELETE", "/:id", auth,
		pipeline.New(postHandler.HandleDelete).
			Validate(paramSchema.Stage()).
			Authorize(
				middleware.RequireRole(authmodels.RoleTypeDelete, authmodels.RoleFieldPost),
				middleware.RequireOwner(resolveOwner),
			).
			Compile())

	return nil
}

func registerFileRoutes(router fiber.Router, r *apirouter.Router) error {
	store, err := storage.NewLocalStorage(global.MongoDB_ServerConfig.UploadDir)
	if err != nil {
		return fmt.Errorf("failed to init local storage: %w", err)
	}
	fileService, err := contentsvc.NewFileService(store, global.MongoDB_ServerConfig.UploadMaxBytes)
	if err != nil {
		return err
	}
	fileHandler := contenthdl.NewFileHandler(fileService)

	paramSchema := pipeline.NewSchema(
		pipeline.ParamField("id", pipeline.Required(), pipeline.IsObjectID(),
			pipeline.Custom(func(c fiber.Ctx, ex *pipeline.Exchange, value any) (any, error) {
				id, ok := value.(primitive.ObjectID)
				if !ok {
					return nil, common.ErrInvalidFormat
				}
				file, err := fileService.FindOneById(c.Context(), id)
				if err != nil {
					if errors.Is(err, common.ErrNotFound) {
						return nil, common.NewError(
							common.ErrCodeBusinessOperation,
							common.Msg("File not found", "Không tìm thấy file"),
							common.StatusNotFound,
							nil,
						)
					}
					return nil, err
				}
				ex.SetEntity("file", file)
				return id, nil
			})),
	)

	resolveOwner := func(c fiber.Ctx, ex *pipeline.Exchange) (primitive.ObjectID, error) {
		entity, ok := ex.Entity("file")
		if !ok {
			return primitive.NilObjectID, common.ErrNotFound
		}
		file, ok := entity.(models.File)
		if !ok {
			return primitive.NilObjectID, common.ErrNotFound
		}
		return file.UserID, nil
	}

	auth := []fiber.Handler{middleware.AuthMiddleware()}

	apirouter.RegisterRouteWithMiddleware(router, "/files", "POST", "/upload", auth,
		pipeline.New(fileHandler.HandleUpload).Compile())
	apirouter.RegisterRouteWithMiddleware(router, "/files", "GET", "/mine", auth,
		pipeline.New(fileHandler.HandleListMine).Compile())
	apirouter.RegisterRouteWithMiddleware(router, "/files", "GET", "/download/:id", auth,
		pipeline.New(fileHandler.HandleDownload).
			Validate(paramSchema.Stage()).
			Compile())
	apirouter.RegisterRouteWithMiddleware(router, "/files", "DELETE", "/:id", auth,
		pipeline.New(fileHandler.HandleDelete).
			Validate(paramSchema.Stage()).
			Authorize(middleware.RequireOwner(resolveOwner)).
			Compile())

	return nil
}
