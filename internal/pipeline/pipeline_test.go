package pipeline

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viet_commerce/internal/common"
)

// doRequest chạy một request qua app và parse body JSON thành map.
func doRequest(t *testing.T, app *fiber.App, method, target, body string, header map[string]string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	require.NoError(t, err, "app.Test không được lỗi")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	parsed := make(map[string]any)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed), "response body phải là JSON")
	}
	return resp.StatusCode, parsed
}

func okHandler(c fiber.Ctx) error {
	return JSONResponse(c, common.StatusOK, fiber.Map{"message": "ok"})
}

// TestSchemaAggregatesFieldErrors: nhiều field fail phải gom thành đúng một
// response 422 với map errors chứa message của từng field.
func TestSchemaAggregatesFieldErrors(t *testing.T) {
	app := fiber.New()
	schema := NewSchema(
		BodyField("email", Trim(), Required(), IsEmail()),
		BodyField("name", Trim(), Required(), StrLen(2, 50)),
	)
	app.Post("/items", New(okHandler).Validate(schema.Stage()).Compile())

	status, body := doRequest(t, app, http.MethodPost, "/items",
		`{"email":"not-an-email","name":"a"}`, nil)

	assert.Equal(t, common.StatusUnprocessableEntity, status)
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok, "response 422 phải có map errors")
	assert.Len(t, errs, 2)
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "name")
}

// TestSchemaFieldShortCircuit: một field chỉ báo lỗi của check fail đầu
// tiên, các check sau của field đó không chạy.
func TestSchemaFieldShortCircuit(t *testing.T) {
	app := fiber.New()
	customRan := false
	schema := NewSchema(
		BodyField("email",
			Trim(),
			Required(),
			IsEmail(),
			Custom(func(c fiber.Ctx, ex *Exchange, v any) (any, error) {
				customRan = true
				return v, nil
			}),
		),
	)
	app.Post("/items", New(okHandler).Validate(schema.Stage()).Compile())

	status, body := doRequest(t, app, http.MethodPost, "/items", `{"email":""}`, nil)

	assert.Equal(t, common.StatusUnprocessableEntity, status)
	errs := body["errors"].(map[string]any)
	assert.Equal(t, "email is required", errs["email"], "phải là lỗi của Required, không phải IsEmail")
	assert.False(t, customRan, "check sau check fail không được chạy")
}

// TestSchemaOptionalFieldSkipped: field optional vắng mặt thì bỏ qua toàn bộ
// check, field có mặt thì check chạy bình thường.
func TestSchemaOptionalFieldSkipped(t *testing.T) {
	app := fiber.New()
	schema := NewSchema(
		BodyField("photo", IsURL()).AsOptional(),
	)
	app.Post("/items", New(okHandler).Validate(schema.Stage()).Compile())

	status, _ := doRequest(t, app, http.MethodPost, "/items", `{}`, nil)
	assert.Equal(t, common.StatusOK, status, "field optional vắng mặt không được fail")

	status, body := doRequest(t, app, http.MethodPost, "/items", `{"photo":"not a url"}`, nil)
	assert.Equal(t, common.StatusUnprocessableEntity, status, "field optional có mặt vẫn phải qua check")
	assert.Contains(t, body["errors"].(map[string]any), "photo")
}

// TestSchemaOptionalEmptyValueSkipped: field optional có mặt trong body nhưng
// giá trị rỗng (chuỗi rỗng hoặc null) coi như vắng mặt, chuỗi check không chạy.
func TestSchemaOptionalEmptyValueSkipped(t *testing.T) {
	app := fiber.New()
	schema := NewSchema(
		BodyField("brandId", Trim(), IsObjectID()).AsOptional(),
	)
	app.Post("/items", New(okHandler).Validate(schema.Stage()).Compile())

	for _, payload := range []string{
		`{"brandId":""}`,
		`{"brandId":null}`,
	} {
		status, _ := doRequest(t, app, http.MethodPost, "/items", payload, nil)
		assert.Equal(t, common.StatusOK, status, "payload %s không được fail", payload)
	}

	status, body := doRequest(t, app, http.MethodPost, "/items",
		`{"brandId":"not-hex"}`, nil)
	assert.Equal(t, common.StatusUnprocessableEntity, status, "giá trị khác rỗng vẫn phải qua check")
	assert.Contains(t, body["errors"].(map[string]any), "brandId")
}

// TestSchemaCustomEntityStatusAggregates: custom check trả *common.Error với
// status 422 phải được gom vào map errors với message của lỗi, không dừng
// các field khác.
func TestSchemaCustomEntityStatusAggregates(t *testing.T) {
	app := fiber.New()
	schema := NewSchema(
		BodyField("slug", Required(),
			Custom(func(c fiber.Ctx, ex *Exchange, v any) (any, error) {
				return nil, common.NewError(common.ErrCodeValidationEntity,
					common.Msg("slug is taken", "slug đã được dùng"),
					common.StatusUnprocessableEntity, nil)
			}),
		),
		BodyField("name", Required()),
	)
	app.Post("/items", New(okHandler).Validate(schema.Stage()).Compile())

	status, body := doRequest(t, app, http.MethodPost, "/items", `{"slug":"x"}`, nil)

	assert.Equal(t, common.StatusUnprocessableEntity, status)
	errs := body["errors"].(map[string]any)
	assert.Equal(t, "slug is taken", errs["slug"])
	assert.Contains(t, errs, "name", "field khác vẫn phải được check độc lập")
}

// TestSchemaStructuralErrorPropagatesAlone: custom check trả *common.Error
// với status khác 422 phải dừng cả schema và giữ nguyên status, không gom
// chung với lỗi field khác.
func TestSchemaStructuralErrorPropagatesAlone(t *testing.T) {
	app := fiber.New()
	schema := NewSchema(
		BodyField("productId", Trim(), Required(),
			Custom(func(c fiber.Ctx, ex *Exchange, v any) (any, error) {
				return nil, common.ErrNotFound
			}),
		),
		BodyField("name", Required()),
	)
	app.Post("/items", New(okHandler).Validate(schema.Stage()).Compile())

	status, body := doRequest(t, app, http.MethodPost, "/items",
		`{"productId":"abc"}`, nil)

	assert.Equal(t, common.StatusNotFound, status)
	assert.NotContains(t, body, "errors", "lỗi cấu trúc không được mang theo map errors")
}

// TestSchemaCoercesValues: Trim và các check số phải ghi giá trị đã coerce
// vào Exchange cho handler dùng.
func TestSchemaCoercesValues(t *testing.T) {
	app := fiber.New()
	schema := NewSchema(
		BodyField("name", Trim(), Required()),
		BodyField("quantity", Required(), IsPosInt()),
	)
	handler := func(c fiber.Ctx) error {
		ex := CurrentExchange(c)
		name := ex.String("name")
		qty, ok := ex.Int("quantity")
		require.True(t, ok)
		return JSONResponse(c, common.StatusOK, fiber.Map{"name": name, "quantity": qty})
	}
	app.Post("/items", New(handler).Validate(schema.Stage()).Compile())

	status, body := doRequest(t, app, http.MethodPost, "/items",
		`{"name":"  iPhone 15  ","quantity":3}`, nil)

	assert.Equal(t, common.StatusOK, status)
	assert.Equal(t, "iPhone 15", body["name"])
	assert.Equal(t, float64(3), body["quantity"])
}

// TestSchemaRejectsNonIntegerNumbers: số thập phân và chuỗi không phải số
// đều fail check số nguyên.
func TestSchemaRejectsNonIntegerNumbers(t *testing.T) {
	app := fiber.New()
	schema := NewSchema(BodyField("quantity", Required(), IsPosInt()))
	app.Post("/items", New(okHandler).Validate(schema.Stage()).Compile())

	for _, payload := range []string{
		`{"quantity":1.5}`,
		`{"quantity":"abc"}`,
		`{"quantity":0}`,
		`{"quantity":-2}`,
	} {
		status, _ := doRequest(t, app, http.MethodPost, "/items", payload, nil)
		assert.Equal(t, common.StatusUnprocessableEntity, status, "payload %s phải bị từ chối", payload)
	}
}

// TestPipelineStopsBeforeHandlerOnFailure: stage fail thì handler không
// được chạy và request kết thúc ở trạng thái failed.
func TestPipelineStopsBeforeHandlerOnFailure(t *testing.T) {
	app := fiber.New()
	handlerRan := false
	var finalState State
	deny := func(c fiber.Ctx) error { return common.ErrPermissionDenied }
	handler := func(c fiber.Ctx) error {
		handlerRan = true
		return okHandler(c)
	}
	p := New(handler).Authorize(deny)
	compiled := p.Compile()
	app.Get("/items", func(c fiber.Ctx) error {
		err := compiled(c)
		finalState = StateOf(c)
		return err
	})

	status, _ := doRequest(t, app, http.MethodGet, "/items", "", nil)

	assert.Equal(t, common.StatusForbidden, status)
	assert.False(t, handlerRan, "handler không được chạy khi authorizer fail")
	assert.Equal(t, StateFailed, finalState)
}

// TestPipelineReachesResponded: request hợp lệ đi hết pipeline và kết thúc
// ở trạng thái responded.
func TestPipelineReachesResponded(t *testing.T) {
	app := fiber.New()
	var finalState State
	pass := func(c fiber.Ctx) error { return nil }
	p := New(okHandler).Validate(pass).Authorize(pass)
	compiled := p.Compile()
	app.Get("/items", func(c fiber.Ctx) error {
		err := compiled(c)
		finalState = StateOf(c)
		return err
	})

	status, body := doRequest(t, app, http.MethodGet, "/items", "", nil)

	assert.Equal(t, common.StatusOK, status)
	assert.Equal(t, "ok", body["message"])
	assert.Equal(t, StateResponded, finalState)
}

// TestUnknownErrorBecomesGeneric500: lỗi không nhận diện được phải thành
// 500 với message chung, không lộ chi tiết lỗi gốc.
func TestUnknownErrorBecomesGeneric500(t *testing.T) {
	app := fiber.New()
	handler := func(c fiber.Ctx) error {
		return assert.AnError
	}
	app.Get("/items", New(handler).Compile())

	status, body := doRequest(t, app, http.MethodGet, "/items", "", nil)

	assert.Equal(t, common.StatusInternalServerError, status)
	assert.Equal(t, common.MsgInternalError.En, body["message"])
	assert.NotContains(t, body["message"], assert.AnError.Error())
}

// TestRespondPicksLocale: ?lang=vi và Accept-Language: vi phải trả message
// tiếng Việt, mặc định trả tiếng Anh.
func TestRespondPicksLocale(t *testing.T) {
	app := fiber.New()
	deny := func(c fiber.Ctx) error { return common.ErrPermissionDenied }
	app.Get("/items", New(okHandler).Authorize(deny).Compile())

	status, body := doRequest(t, app, http.MethodGet, "/items?lang=vi", "", nil)
	assert.Equal(t, common.StatusForbidden, status)
	assert.Equal(t, common.ErrPermissionDenied.Message.Vi, body["message"])

	_, body = doRequest(t, app, http.MethodGet, "/items", "",
		map[string]string{fiber.HeaderAcceptLanguage: "vi-VN,vi;q=0.9"})
	assert.Equal(t, common.ErrPermissionDenied.Message.Vi, body["message"])

	_, body = doRequest(t, app, http.MethodGet, "/items", "", nil)
	assert.Equal(t, common.ErrPermissionDenied.Message.En, body["message"])
}

// TestFilterBodyDropsUnknownKeys: FilterBody phải loại field lạ khỏi body
// trước khi schema chạy.
func TestFilterBodyDropsUnknownKeys(t *testing.T) {
	app := fiber.New()
	handler := func(c fiber.Ctx) error {
		ex := CurrentExchange(c)
		body, err := ex.Body(c)
		require.NoError(t, err)
		return JSONResponse(c, common.StatusOK, fiber.Map{"keys": len(body)})
	}
	app.Post("/items", New(handler).Validate(FilterBody("name", "price")).Compile())

	status, body := doRequest(t, app, http.MethodPost, "/items",
		`{"name":"x","price":1,"isAdmin":true,"role":"hacker"}`, nil)

	assert.Equal(t, common.StatusOK, status)
	assert.Equal(t, float64(2), body["keys"], "field lạ phải bị loại")
}

// TestMalformedBodyRejected: body không phải JSON hợp lệ trả về 400.
func TestMalformedBodyRejected(t *testing.T) {
	app := fiber.New()
	schema := NewSchema(BodyField("name", Required()))
	app.Post("/items", New(okHandler).Validate(schema.Stage()).Compile())

	status, _ := doRequest(t, app, http.MethodPost, "/items", `{"name":`, nil)
	assert.Equal(t, common.StatusBadRequest, status)
}
