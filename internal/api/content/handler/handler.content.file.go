package contenthdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"

	contentdto "viet_commerce/internal/api/content/dto"
	contentsvc "viet_commerce/internal/api/content/service"
	models "viet_commerce/internal/api/content/models"
	basehdl "viet_commerce/internal/api/base/handler"
	"viet_commerce/internal/api/middleware"
	"viet_commerce/internal/common"
)

// FileHandler xử lý upload/download file. Xóa yêu cầu ownership, kiểm tra
// bởi authorizer stage của route.
type FileHandler struct {
	*basehdl.BaseHandler[models.File, struct{}, contentdto.FileUpdateInput]
	fileService *contentsvc.FileService
}

// NewFileHandler tạo instance mới của FileHandler trên fileService đã cho.
func NewFileHandler(fileService *contentsvc.FileService) *FileHandler {
	return &FileHandler{
		BaseHandler: basehdl.NewBaseHandler[models.File, struct{}, contentdto.FileUpdateInput](fileService),
		fileService: fileService,
	}
}

// Service trả về FileService, dùng bởi router khi build owner resolver.
func (h *FileHandler) Service() *contentsvc.FileService {
	return h.fileService
}

// HandleUpload nhận multipart field "file" và lưu cho user đang đăng nhập.
func (h *FileHandler) HandleUpload(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		payload, ok := middleware.CurrentPayload(c)
		if !ok {
			return h.HandleResponse(c, nil, common.ErrTokenMissing)
		}
		ownerID, err := payload.UserObjectID()
		if err != nil {
			return h.HandleResponse(c, nil, common.ErrTokenInvalid)
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				common.Msg("Missing multipart field 'file'", "Thiếu trường multipart 'file'"),
				common.StatusBadRequest,
				nil,
			))
		}

		source, err := fileHeader.Open()
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}
		defer source.Close()

		file, err := h.fileService.Upload(
			c.Context(),
			ownerID,
			fileHeader.Filename,
			fileHeader.Header.Get("Content-Type"),
			fileHeader.Size,
			source,
		)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}
		return h.HandleCreated(c, file, nil)
	})
}

// HandleDownload stream nội dung file theo id metadata.
func (h *FileHandler) HandleDownload(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		fileID, err := h.ParseObjectID(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		file, reader, err := h.fileService.Open(c.Context(), fileID)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		if file.ContentType != "" {
			c.Set(fiber.HeaderContentType, file.ContentType)
		}
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Name))
		return c.SendStream(reader, int(file.Size))
	})
}

// HandleDelete xóa file của chính user.
func (h *FileHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		fileID, err := h.ParseObjectID(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		if err := h.fileService.Delete(c.Context(), fileID); err != nil {
			return h.HandleResponse(c, nil, err)
		}
		return h.HandleResponse(c, fiber.Map{"deleted": true}, nil)
	})
}

// HandleListMine liệt kê file của user đang đăng nhập với phân trang.
func (h *FileHandler) HandleListMine(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		payload, ok := middleware.CurrentPayload(c)
		if !ok {
			return h.HandleResponse(c, nil, common.ErrTokenMissing)
		}
		ownerID, err := payload.UserObjectID()
		if err != nil {
			return h.HandleResponse(c, nil, common.ErrTokenInvalid)
		}

		page, limit := h.ParsePagination(c)
		result, err := h.fileService.FindWithPagination(c.Context(), bson.M{"userId": ownerID}, page, limit, nil)
		return h.HandleResponse(c, result, err)
	})
}
