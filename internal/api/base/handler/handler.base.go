// Package basehdl cung cấp BaseHandler generic cho các Fiber handler CRUD.
package basehdl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	basesvc "viet_commerce/internal/api/base/service"
	"viet_commerce/internal/common"
	"viet_commerce/internal/global"
	"viet_commerce/internal/utility"
)

// FilterOptions cấu hình cho việc validate filter từ query string.
type FilterOptions struct {
	DeniedFields     []string // Các trường bị cấm filter
	AllowedOperators []string // Các operator MongoDB được phép
	MaxFields        int      // Số lượng field tối đa trong một filter
}

func defaultFilterOptions() FilterOptions {
	return FilterOptions{
		DeniedFields: []string{
			"password",
			"token",
			"secret",
			"key",
			"hash",
		},
		AllowedOperators: []string{
			"$eq",
			"$gt",
			"$gte",
			"$lt",
			"$lte",
			"$in",
			"$nin",
			"$exists",
		},
		MaxFields: 10,
	}
}

// BaseHandler là base handler cho các Fiber handler, cung cấp các chức năng
// CRUD cơ bản trên một collection.
//
// Type parameters:
// - T: Kiểu dữ liệu của model
// - CreateInput: Kiểu dữ liệu của input khi tạo mới
// - UpdateInput: Kiểu dữ liệu của input khi cập nhật
type BaseHandler[T any, CreateInput any, UpdateInput any] struct {
	BaseService   basesvc.BaseServiceMongo[T] // Service xử lý nghiệp vụ với MongoDB
	filterOptions FilterOptions               // Cấu hình validate filter
}

// NewBaseHandler tạo mới một BaseHandler với BaseService được cung cấp.
func NewBaseHandler[T any, CreateInput any, UpdateInput any](baseService basesvc.BaseServiceMongo[T]) *BaseHandler[T, CreateInput, UpdateInput] {
	return &BaseHandler[T, CreateInput, UpdateInput]{
		BaseService:   baseService,
		filterOptions: defaultFilterOptions(),
	}
}

// ParseRequestBody parse dữ liệu từ request body vào input.
// Dùng json.Decoder với UseNumber() để giữ chính xác các giá trị số.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestBody(c fiber.Ctx, input interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return h.ValidateInput(input)
}

// ValidateInput validate input theo các tag validate khai báo trên struct.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ValidateInput(input interface{}) error {
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return nil
}

// TransformCreateInputToModel chuyển CreateInput (DTO) sang Model (T) thông qua
// JSON round-trip: các field được map theo json tag, string hex 24 ký tự decode
// thẳng vào primitive.ObjectID nhờ UnmarshalJSON của driver.
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformCreateInputToModel(input *CreateInput) (*T, error) {
	raw, err := json.Marshal(input)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}
	model := new(T)
	if err := json.Unmarshal(raw, model); err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return model, nil
}

// TransformUpdateInputToMap chuyển UpdateInput (DTO) sang map các trường cần
// update (theo bson tag), bỏ _id để tránh ghi đè khóa chính.
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformUpdateInputToMap(input *UpdateInput) (map[string]interface{}, error) {
	data, err := utility.ToMap(input)
	if err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}
	delete(data, "_id")
	return data, nil
}

// ProcessFilter parse và validate filter JSON từ query string (?filter={...}).
func (h *BaseHandler[T, CreateInput, UpdateInput]) ProcessFilter(c fiber.Ctx) (map[string]interface{}, error) {
	var filter map[string]interface{}

	filterStr := c.Query("filter", "{}")
	if err := json.Unmarshal([]byte(filterStr), &filter); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			common.Msg(
				fmt.Sprintf("Filter is not valid JSON: %v", err),
				fmt.Sprintf("Filter không đúng định dạng JSON: %v", err),
			),
			common.StatusBadRequest,
			err,
		)
	}

	// Chuyển các string dạng ObjectId thành ObjectID trước khi query
	filter = h.normalizeFilter(filter)

	if err := h.validateFilter(filter); err != nil {
		return nil, err
	}
	return filter, nil
}

// normalizeFilter chuyển đổi các string có format ObjectId thành ObjectID.
// Áp dụng cho các trường có tên kết thúc bằng "Id"/"ID" và key "_id".
func (h *BaseHandler[T, CreateInput, UpdateInput]) normalizeFilter(filter map[string]interface{}) map[string]interface{} {
	if filter == nil {
		return filter
	}
	normalized := make(map[string]interface{}, len(filter))
	for field, value := range filter {
		fieldLower := strings.ToLower(field)
		isIDField := field == "_id" || (strings.HasSuffix(fieldLower, "id") && len(fieldLower) > 2)
		normalized[field] = h.normalizeFilterValue(value, isIDField)
	}
	return normalized
}

// normalizeFilterValue xử lý đệ quy giá trị trong filter, hỗ trợ mảng và
// các operator map ($in, $eq...), kể cả Extended JSON {"$oid": "..."}.
func (h *BaseHandler[T, CreateInput, UpdateInput]) normalizeFilterValue(value interface{}, isIDField bool) interface{} {
	switch v := value.(type) {
	case string:
		if isIDField && primitive.IsValidObjectID(v) {
			if objID, err := primitive.ObjectIDFromHex(v); err == nil {
				return objID
			}
		}
		return v
	case []interface{}:
		normalized := make([]interface{}, len(v))
		for i, item := range v {
			normalized[i] = h.normalizeFilterValue(item, isIDField)
		}
		return normalized
	case map[string]interface{}:
		if oidValue, hasOid := v["$oid"]; hasOid {
			if oidStr, ok := oidValue.(string); ok && primitive.IsValidObjectID(oidStr) {
				if objID, err := primitive.ObjectIDFromHex(oidStr); err == nil {
					return objID
				}
			}
			return v
		}
		normalized := make(map[string]interface{}, len(v))
		for key, val := range v {
			normalized[key] = h.normalizeFilterValue(val, isIDField)
		}
		return normalized
	default:
		return value
	}
}

// validateFilter kiểm tra tính hợp lệ của filter: số lượng trường, trường bị
// cấm và các operator MongoDB được phép.
func (h *BaseHandler[T, CreateInput, UpdateInput]) validateFilter(filter map[string]interface{}) error {
	opts := h.filterOptions
	if opts.MaxFields == 0 {
		opts = defaultFilterOptions()
	}

	if len(filter) > opts.MaxFields {
		return common.NewError(
			common.ErrCodeValidationFormat,
			common.Msg(
				fmt.Sprintf("Filter exceeds the maximum of %d fields", opts.MaxFields),
				fmt.Sprintf("Filter vượt quá số lượng trường cho phép, tối đa %d trường", opts.MaxFields),
			),
			common.StatusBadRequest,
			nil,
		)
	}

	for field, value := range filter {
		if utility.Contains(opts.DeniedFields, field) {
			return common.NewError(
				common.ErrCodeValidationFormat,
				common.Msg(
					fmt.Sprintf("Field '%s' is not allowed in filter", field),
					fmt.Sprintf("Trường '%s' không được phép sử dụng trong filter", field),
				),
				common.StatusBadRequest,
				nil,
			)
		}

		if mapValue, ok := value.(map[string]interface{}); ok {
			for op := range mapValue {
				if strings.HasPrefix(op, "$") && !utility.Contains(opts.AllowedOperators, op) {
					return common.NewError(
						common.ErrCodeValidationFormat,
						common.Msg(
							fmt.Sprintf("MongoDB operator '%s' is not allowed", op),
							fmt.Sprintf("Toán tử MongoDB '%s' không được phép sử dụng", op),
						),
						common.StatusBadRequest,
						nil,
					)
				}
			}
		}
	}
	return nil
}

// processMongoOptions parse options từ query string (?options={...}) và chuyển
// sang MongoDB options. Hỗ trợ projection, sort, limit, skip.
func (h *BaseHandler[T, CreateInput, UpdateInput]) processMongoOptions(c fiber.Ctx, isFindOne bool) (interface{}, error) {
	var rawOptions map[string]interface{}

	optionsStr := c.Query("options", "{}")
	if err := json.Unmarshal([]byte(optionsStr), &rawOptions); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			common.Msg(
				fmt.Sprintf("Options is not valid JSON: %v", err),
				fmt.Sprintf("Options không đúng định dạng JSON: %v", err),
			),
			common.StatusBadRequest,
			err,
		)
	}

	if err := h.validateMongoOptions(rawOptions); err != nil {
		return nil, err
	}

	sortBson := parseSortOrdered(optionsStr)

	if isFindOne {
		opts := mongoopts.FindOne()
		if projection, ok := rawOptions["projection"].(map[string]interface{}); ok {
			opts.SetProjection(projection)
		}
		if len(sortBson) > 0 {
			opts.SetSort(sortBson)
		}
		return opts, nil
	}

	opts := mongoopts.Find()
	if projection, ok := rawOptions["projection"].(map[string]interface{}); ok {
		opts.SetProjection(projection)
	}
	if len(sortBson) > 0 {
		opts.SetSort(sortBson)
	}
	if limit, ok := rawOptions["limit"].(float64); ok {
		opts.SetLimit(int64(limit))
	}
	if skip, ok := rawOptions["skip"].(float64); ok {
		opts.SetSkip(int64(skip))
	}
	return opts, nil
}

// parseSortOrdered parse phần sort từ JSON string gốc bằng json.Decoder theo
// từng token, giữ nguyên thứ tự các key (map Go không đảm bảo thứ tự).
func parseSortOrdered(optionsJSON string) bson.D {
	sortBson := bson.D{}

	var tempOptions map[string]json.RawMessage
	if err := json.Unmarshal([]byte(optionsJSON), &tempOptions); err != nil {
		return sortBson
	}
	sortRaw, ok := tempOptions["sort"]
	if !ok {
		return sortBson
	}

	decoder := json.NewDecoder(bytes.NewReader(sortRaw))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil || token != json.Delim('{') {
		return sortBson
	}
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			break
		}
		field, ok := keyToken.(string)
		if !ok {
			continue
		}
		valueToken, err := decoder.Token()
		if err != nil {
			break
		}
		num, ok := valueToken.(json.Number)
		if !ok {
			continue
		}
		sortValue, err := num.Int64()
		if err != nil {
			continue
		}
		// Chỉ chấp nhận 1 (tăng dần) hoặc -1 (giảm dần)
		if sortValue != 1 && sortValue != -1 {
			continue
		}
		sortBson = append(sortBson, bson.E{Key: field, Value: int(sortValue)})
	}
	return sortBson
}

// validateMongoOptions kiểm tra tính hợp lệ của các options.
func (h *BaseHandler[T, CreateInput, UpdateInput]) validateMongoOptions(options map[string]interface{}) error {
	opts := h.filterOptions
	if opts.MaxFields == 0 {
		opts = defaultFilterOptions()
	}

	allowedOptions := map[string]bool{
		"projection": true,
		"sort":       true,
		"limit":      true,
		"skip":       true,
	}
	for key := range options {
		if !allowedOptions[key] {
			return common.NewError(
				common.ErrCodeValidationFormat,
				common.Msg(
					fmt.Sprintf("Option '%s' is not supported, allowed: projection, sort, limit, skip", key),
					fmt.Sprintf("Option '%s' không được hỗ trợ, chỉ chấp nhận: projection, sort, limit, skip", key),
				),
				common.StatusBadRequest,
				nil,
			)
		}
	}

	if projection, ok := options["projection"].(map[string]interface{}); ok {
		for field := range projection {
			if utility.Contains(opts.DeniedFields, field) {
				return common.NewError(
					common.ErrCodeValidationFormat,
					common.Msg(
						fmt.Sprintf("Field '%s' is not allowed in projection", field),
						fmt.Sprintf("Trường '%s' không được phép sử dụng trong projection", field),
					),
					common.StatusBadRequest,
					nil,
				)
			}
		}
	}

	if sort, ok := options["sort"].(map[string]interface{}); ok {
		for field, value := range sort {
			if utility.Contains(opts.DeniedFields, field) {
				return common.NewError(
					common.ErrCodeValidationFormat,
					common.Msg(
						fmt.Sprintf("Field '%s' is not allowed in sort", field),
						fmt.Sprintf("Trường '%s' không được phép sử dụng trong sort", field),
					),
					common.StatusBadRequest,
					nil,
				)
			}
			if v, ok := value.(float64); !ok || (v != 1 && v != -1) {
				return common.NewError(
					common.ErrCodeValidationFormat,
					common.Msg(
						fmt.Sprintf("Sort value for field '%s' must be 1 or -1", field),
						fmt.Sprintf("Giá trị sort cho trường '%s' phải là 1 hoặc -1", field),
					),
					common.StatusBadRequest,
					nil,
				)
			}
		}
	}

	if limit, ok := options["limit"].(float64); ok {
		if limit <= 0 || limit > 1000 {
			return common.NewError(
				common.ErrCodeValidationFormat,
				common.Msg(
					"Limit must be between 1 and 1000",
					"Giá trị limit phải nằm trong khoảng 1 đến 1000",
				),
				common.StatusBadRequest,
				nil,
			)
		}
	}

	if skip, ok := options["skip"].(float64); ok && skip < 0 {
		return common.NewError(
			common.ErrCodeValidationFormat,
			common.Msg(
				"Skip must not be negative",
				"Giá trị skip không được âm",
			),
			common.StatusBadRequest,
			nil,
		)
	}

	return nil
}

// ParsePagination parse thông tin phân trang từ request.
// page mặc định 1, limit mặc định 10.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParsePagination(c fiber.Ctx) (int64, int64) {
	page := utility.P2Int64(c.Query("page", "1"))
	if page <= 0 {
		page = 1
	}
	limit := utility.P2Int64(c.Query("limit", "10"))
	if limit <= 0 {
		limit = 10
	}
	return page, limit
}

// GetIDFromContext lấy ID từ URI params của request.
func (h *BaseHandler[T, CreateInput, UpdateInput]) GetIDFromContext(c fiber.Ctx) string {
	return c.Params("id")
}

// ParseObjectID lấy ID từ URI params và validate định dạng ObjectID.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseObjectID(c fiber.Ctx) (primitive.ObjectID, error) {
	id := c.Params("id")
	if id == "" {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationInput,
			common.Msg("Missing id in request", "Thiếu id trong request"),
			common.StatusBadRequest,
			nil,
		)
	}
	if !primitive.IsValidObjectID(id) {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			common.Msg("Invalid id format", "Định dạng id không hợp lệ"),
			common.StatusBadRequest,
			nil,
		)
	}
	return utility.String2ObjectID(id), nil
}
