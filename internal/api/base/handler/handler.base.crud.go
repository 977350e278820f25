package basehdl

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	"viet_commerce/internal/common"
	"viet_commerce/internal/utility"
)

// InsertOne parse CreateInput từ body, transform sang model và insert.
func (h *BaseHandler[T, CreateInput, UpdateInput]) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input CreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}

		model, err := h.TransformCreateInputToModel(&input)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		data, err := h.BaseService.InsertOne(c.Context(), *model)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}
		return h.HandleCreated(c, data, nil)
	})
}

// InsertMany parse mảng CreateInput từ body và insert hàng loạt.
func (h *BaseHandler[T, CreateInput, UpdateInput]) InsertMany(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var inputs []CreateInput
		if err := h.ParseRequestBody(c, &inputs); err != nil {
			return h.HandleResponse(c, nil, err)
		}
		if len(inputs) == 0 {
			return h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				common.Msg("Request body must contain at least one item", "Body phải chứa ít nhất một phần tử"),
				common.StatusBadRequest,
				nil,
			))
		}

		models := make([]T, 0, len(inputs))
		for i := range inputs {
			model, err := h.TransformCreateInputToModel(&inputs[i])
			if err != nil {
				return h.HandleResponse(c, nil, err)
			}
			models = append(models, *model)
		}

		data, err := h.BaseService.InsertMany(c.Context(), models)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}
		return h.HandleCreated(c, data, nil)
	})
}

// FindOne tìm một document theo filter từ query string.
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		options, err := h.processMongoOptions(c, true)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		data, err := h.BaseService.FindOne(c.Context(), filter, options.(*mongoopts.FindOneOptions))
		return h.HandleResponse(c, data, err)
	})
}

// FindOneById tìm một document theo ID trong URI params.
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindOneById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseObjectID(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		data, err := h.BaseService.FindOneById(c.Context(), id)
		return h.HandleResponse(c, data, err)
	})
}

// FindManyByIds tìm nhiều document theo danh sách ID trong body.
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindManyByIds(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input struct {
			IDs []string `json:"ids"`
		}
		if err := json.Unmarshal(c.Body(), &input); err != nil {
			return h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err))
		}
		if len(input.IDs) == 0 {
			return h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				common.Msg("ids must contain at least one item", "ids phải chứa ít nhất một phần tử"),
				common.StatusBadRequest,
				nil,
			))
		}

		objectIds := make([]primitive.ObjectID, len(input.IDs))
		for i, id := range input.IDs {
			if !primitive.IsValidObjectID(id) {
				return h.HandleResponse(c, nil, common.NewError(
					common.ErrCodeValidationFormat,
					common.Msg("Invalid id format: "+id, "Định dạng id không hợp lệ: "+id),
					common.StatusBadRequest,
					nil,
				))
			}
			objectIds[i] = utility.String2ObjectID(id)
		}

		data, err := h.BaseService.FindManyByIds(c.Context(), objectIds)
		return h.HandleResponse(c, data, err)
	})
}

// FindWithPagination tìm document theo filter với phân trang.
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindWithPagination(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		options, err := h.processMongoOptions(c, false)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		page, limit := h.ParsePagination(c)
		data, err := h.BaseService.FindWithPagination(c.Context(), filter, page, limit, options.(*mongoopts.FindOptions))
		return h.HandleResponse(c, data, err)
	})
}

// Find tìm tất cả document khớp filter, không phân trang.
func (h *BaseHandler[T, CreateInput, UpdateInput]) Find(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		options, err := h.processMongoOptions(c, false)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		data, err := h.BaseService.Find(c.Context(), filter, options.(*mongoopts.FindOptions))
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}
		if data == nil {
			data = []T{}
		}
		return h.HandleResponse(c, data, nil)
	})
}

// UpdateById cập nhật một document theo ID với UpdateInput từ body.
func (h *BaseHandler[T, CreateInput, UpdateInput]) UpdateById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseObjectID(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		var input UpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}

		updateMap, err := h.TransformUpdateInputToMap(&input)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		data, err := h.BaseService.UpdateById(c.Context(), id, updateMap)
		return h.HandleResponse(c, data, err)
	})
}

// UpdateOne cập nhật một document theo filter với UpdateInput từ body.
func (h *BaseHandler[T, CreateInput, UpdateInput]) UpdateOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		var input UpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}

		updateMap, err := h.TransformUpdateInputToMap(&input)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		data, err := h.BaseService.UpdateOne(c.Context(), filter, updateMap, nil)
		return h.HandleResponse(c, data, err)
	})
}

// UpdateMany cập nhật nhiều document khớp filter với UpdateInput từ body.
func (h *BaseHandler[T, CreateInput, UpdateInput]) UpdateMany(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		var input UpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return h.HandleResponse(c, nil, err)
		}

		updateMap, err := h.TransformUpdateInputToMap(&input)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		count, err := h.BaseService.UpdateMany(c.Context(), filter, updateMap, nil)
		return h.HandleResponse(c, fiber.Map{"modifiedCount": count}, err)
	})
}

// DeleteById xóa một document theo ID trong URI params.
func (h *BaseHandler[T, CreateInput, UpdateInput]) DeleteById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseObjectID(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		if err := h.BaseService.DeleteById(c.Context(), id); err != nil {
			return h.HandleResponse(c, nil, err)
		}
		return h.HandleResponse(c, fiber.Map{"deleted": true}, nil)
	})
}

// DeleteOne xóa một document theo filter từ query string.
func (h *BaseHandler[T, CreateInput, UpdateInput]) DeleteOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		if err := h.BaseService.DeleteOne(c.Context(), filter); err != nil {
			return h.HandleResponse(c, nil, err)
		}
		return h.HandleResponse(c, fiber.Map{"deleted": true}, nil)
	})
}

// DeleteMany xóa nhiều document khớp filter.
func (h *BaseHandler[T, CreateInput, UpdateInput]) DeleteMany(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		count, err := h.BaseService.DeleteMany(c.Context(), filter)
		return h.HandleResponse(c, fiber.Map{"deletedCount": count}, err)
	})
}

// CountDocuments đếm số document khớp filter.
func (h *BaseHandler[T, CreateInput, UpdateInput]) CountDocuments(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		count, err := h.BaseService.CountDocuments(c.Context(), filter)
		return h.HandleResponse(c, fiber.Map{"count": count}, err)
	})
}

// Distinct lấy danh sách giá trị duy nhất của một trường theo filter.
func (h *BaseHandler[T, CreateInput, UpdateInput]) Distinct(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		field := c.Query("field", "")
		if field == "" {
			return h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				common.Msg("Missing field in query", "Thiếu tham số field trong query"),
				common.StatusBadRequest,
				nil,
			))
		}
		if utility.Contains(h.filterOptions.DeniedFields, field) {
			return h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				common.Msg("Field '"+field+"' is not allowed", "Trường '"+field+"' không được phép sử dụng"),
				common.StatusBadRequest,
				nil,
			))
		}

		filter, err := h.ProcessFilter(c)
		if err != nil {
			return h.HandleResponse(c, nil, err)
		}

		data, err := h.BaseService.Distinct(c.Context(), field, filter)
		return h.HandleResponse(c, data, err)
	})
}
