// Package contenthdl - handler cho domain content.
package contenthdl

import (
	"github.com/gofiber/fiber/v3"

	contentdto "viet_commerce/internal/api/content/dto"
	contentsvc "viet_commerce/internal/api/content/service"
	models "viet_commerce/internal/api/content/models"
	basehdl "viet_commerce/internal/api/base/handler"
	"viet_commerce/internal/api/middleware"
	"viet_commerce/internal/common"
)

// PostHandler xử lý bài viết: tạo/sửa/xóa gắn với role Post và ownership.
type PostHandler struct {
	*basehdl.BaseHandler[models.Post, contentdto.PostCreateInput, contentdto.PostUpdateInput]
	postService *contentsvc.PostService
}

// NewPostHandler tạo instance mới của PostHandler.
func NewPostHandler() (*PostHandler, error) {
	postService, err := contentsvc.NewPostService()
	if err != nil {
		return nil, err
	}
	return &PostHandler{
		BaseHandler: basehdl.NewBaseHandler[models.Post, contentdto.PostCreateInput, contentdto.PostUpdateInput](postService),
		postService: postService,
	}, nil
}

// Service trả về PostService, dùng bởi router khi build owner resolver.
func (h *PostHandler) Service() *contentsvc.PostService {
	return h.postService
}

// HandleCreate tạo bài viết mới của user đang đăng nhập.
func (h *PostHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		payload, ok := middleware.CurrentPayload(c)
		if !ok {
			return h.HandleResponse(c, nil, common.ErrTokenMissing)
		}
		ownerID, err := payload.UserObjectID()
		if err != nil {
			return h.HandleResponse(c, nil, common.ErrTokenInvalid)
		}

		var input contentdto.PostCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}

		post, err := h.postService.Create(c.Context(), &input, ownerID)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}
		return h.HandleCreated(c, post, nil)
	})
}

// HandleUpdate cập nhật bài viết. Role và ownership đã được các authorizer
// stage của route kiểm tra.
func (h *PostHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		postID, err := h.ParseObjectID(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		var input contentdto.PostUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}
		updateMap, err := h.TransformUpdateInputToMap(&input)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		post, err := h.postService.UpdateById(c.Context(), postID, updateMap)
		return h.HandleResponse(c, post, err)
	})
}

// HandleDelete xóa bài viết.
func (h *PostHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		postID, err := h.ParseObjectID(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		if err := h.postService.DeleteById(c.Context(), postID); err != nil {
			return h.HandleResponse(c, nil, err)
		}
		return h.HandleResponse(c, fiber.Map{"deleted": true}, nil)
	})
}

// HandleFindBySlug tìm bài viết theo slug, dùng cho đường dẫn công khai.
func (h *PostHandler) HandleFindBySlug(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		slug := c.Params("slug")
		if slug == "" {
			return h.HandleResponse(c, nil, common.ErrInvalidInput)
		}

		post, err := h.postService.FindBySlug(c.Context(), slug)
		return h.HandleResponse(c, post, err)
	})
}

// HandleListPublished liệt kê bài viết đã publish với phân trang.
func (h *PostHandler) HandleListPublished(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		page, limit := h.ParsePagination(c)
		result, err := h.postService.FindPublished(c.Context(), page, limit)
		return h.HandleResponse(c, result, err)
	})
}
