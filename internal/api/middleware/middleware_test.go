package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "viet_commerce/internal/api/auth/models"
	"viet_commerce/internal/common"
	"viet_commerce/internal/pipeline"
)

var testSecret = []byte("test-secret")

type stubUsers struct {
	user models.User
	err  error
}

func (s *stubUsers) FindUserByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	if s.err != nil {
		return models.User{}, s.err
	}
	return s.user, nil
}

type stubGrants struct {
	grants []models.Role
	err    error
	calls  int
}

func (s *stubGrants) GrantsForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Role, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.grants, nil
}

// signToken tạo access token hợp lệ cho test.
func signToken(t *testing.T, payload *models.TokenPayload) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)
	return signed
}

func newPayload(userType models.UserType) *models.TokenPayload {
	return &models.TokenPayload{
		UserID:   primitive.NewObjectID().Hex(),
		UserType: userType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func doAuthed(t *testing.T, app *fiber.App, target, token string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := make(map[string]any)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body))
	}
	return resp.StatusCode, body
}

func okHandler(c fiber.Ctx) error {
	return pipeline.JSONResponse(c, common.StatusOK, fiber.Map{"message": "ok"})
}

// withPayload gắn sẵn TokenPayload lên mọi request của app, bỏ qua bước
// verify token để test authorizer độc lập.
func withPayload(app *fiber.App, p *models.TokenPayload) {
	app.Use(func(c fiber.Ctx) error {
		SetPayload(c, p)
		return c.Next()
	})
}

// TestAuthMiddlewareTokenFlow: thiếu token, token hỏng và token hợp lệ.
func TestAuthMiddlewareTokenFlow(t *testing.T) {
	payload := newPayload(models.UserTypeStaff)
	userID, _ := primitive.ObjectIDFromHex(payload.UserID)
	InitAuthManager(&stubUsers{user: models.User{ID: userID, Status: models.UserStatusActive}}, &stubGrants{}, testSecret)

	app := fiber.New()
	app.Use(AuthMiddleware())
	app.Get("/me", func(c fiber.Ctx) error {
		got, ok := CurrentPayload(c)
		require.True(t, ok, "handler phải thấy payload sau auth")
		return pipeline.JSONResponse(c, common.StatusOK, fiber.Map{"userId": got.UserID})
	})

	status, _ := doAuthed(t, app, "/me", "")
	assert.Equal(t, common.StatusUnauthorized, status, "thiếu token phải trả 401")

	status, _ = doAuthed(t, app, "/me", "not-a-jwt")
	assert.Equal(t, common.StatusUnauthorized, status, "token hỏng phải trả 401")

	status, body := doAuthed(t, app, "/me", signToken(t, payload))
	assert.Equal(t, common.StatusOK, status)
	assert.Equal(t, payload.UserID, body["userId"])
}

// TestAuthMiddlewareExpiredToken: token hết hạn trả 401 với message riêng.
func TestAuthMiddlewareExpiredToken(t *testing.T) {
	payload := newPayload(models.UserTypeStaff)
	payload.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	InitAuthManager(&stubUsers{}, &stubGrants{}, testSecret)

	app := fiber.New()
	app.Use(AuthMiddleware())
	app.Get("/me", okHandler)

	status, body := doAuthed(t, app, "/me", signToken(t, payload))
	assert.Equal(t, common.StatusUnauthorized, status)
	assert.Equal(t, common.ErrTokenExpired.Message.En, body["message"])
}

// TestAuthMiddlewareBlockedUser: tài khoản bị khóa sau khi phát hành token
// vẫn phải bị chặn.
func TestAuthMiddlewareBlockedUser(t *testing.T) {
	payload := newPayload(models.UserTypeCustomer)
	userID, _ := primitive.ObjectIDFromHex(payload.UserID)
	InitAuthManager(&stubUsers{user: models.User{ID: userID, Status: models.UserStatusBlocked}}, &stubGrants{}, testSecret)

	app := fiber.New()
	app.Use(AuthMiddleware())
	app.Get("/me", okHandler)

	status, _ := doAuthed(t, app, "/me", signToken(t, payload))
	assert.Equal(t, common.StatusForbidden, status)
}

// TestRequireRoleMatrix: Admin qua vô điều kiện, user khác phải có đúng
// role (type, field) được gán.
func TestRequireRoleMatrix(t *testing.T) {
	createProduct := models.Role{
		ID:    primitive.NewObjectID(),
		Type:  models.RoleTypeCreate,
		Field: models.RoleFieldProduct,
	}

	cases := []struct {
		name       string
		userType   models.UserType
		grants     []models.Role
		wantStatus int
	}{
		{"admin không cần role", models.UserTypeAdmin, nil, common.StatusOK},
		{"staff có đúng role", models.UserTypeStaff, []models.Role{createProduct}, common.StatusOK},
		{"staff không có role", models.UserTypeStaff, nil, common.StatusForbidden},
		{"staff role sai field", models.UserTypeStaff, []models.Role{{Type: models.RoleTypeCreate, Field: models.RoleFieldPost}}, common.StatusForbidden},
		{"staff role sai type", models.UserTypeStaff, []models.Role{{Type: models.RoleTypeRead, Field: models.RoleFieldProduct}}, common.StatusForbidden},
		{"customer không có role", models.UserTypeCustomer, nil, common.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			grants := &stubGrants{grants: tc.grants}
			InitAuthManager(&stubUsers{}, grants, testSecret)

			app := fiber.New()
			withPayload(app, newPayload(tc.userType))
			stage := RequireRole(models.RoleTypeCreate, models.RoleFieldProduct)
			app.Get("/products", pipeline.New(okHandler).Authorize(stage).Compile())

			status, _ := doAuthed(t, app, "/products", "")
			assert.Equal(t, tc.wantStatus, status)

			if tc.userType == models.UserTypeAdmin {
				assert.Zero(t, grants.calls, "admin bypass không được query role")
			}
		})
	}
}

// TestRequireRoleCachesGrants: hai request liên tiếp của cùng user chỉ
// query role một lần.
func TestRequireRoleCachesGrants(t *testing.T) {
	grants := &stubGrants{grants: []models.Role{{Type: models.RoleTypeRead, Field: models.RoleFieldOrder}}}
	InitAuthManager(&stubUsers{}, grants, testSecret)

	app := fiber.New()
	withPayload(app, newPayload(models.UserTypeStaff))
	stage := RequireRole(models.RoleTypeRead, models.RoleFieldOrder)
	app.Get("/orders", pipeline.New(okHandler).Authorize(stage).Compile())

	for i := 0; i < 3; i++ {
		status, _ := doAuthed(t, app, "/orders", "")
		assert.Equal(t, common.StatusOK, status)
	}
	assert.Equal(t, 1, grants.calls, "grants phải được cache giữa các request")
}

// TestRequireOwner: bằng owner thì qua, khác thì 403.
func TestRequireOwner(t *testing.T) {
	payload := newPayload(models.UserTypeCustomer)
	ownerID, _ := primitive.ObjectIDFromHex(payload.UserID)
	otherID := primitive.NewObjectID()
	InitAuthManager(&stubUsers{}, &stubGrants{}, testSecret)

	build := func(owner primitive.ObjectID) *fiber.App {
		app := fiber.New()
		withPayload(app, payload)
		stage := RequireOwner(func(c fiber.Ctx, ex *pipeline.Exchange) (primitive.ObjectID, error) {
			return owner, nil
		})
		app.Get("/addresses/1", pipeline.New(okHandler).Authorize(stage).Compile())
		return app
	}

	status, _ := doAuthed(t, build(ownerID), "/addresses/1", "")
	assert.Equal(t, common.StatusOK, status, "chủ sở hữu phải được qua")

	status, body := doAuthed(t, build(otherID), "/addresses/1", "")
	assert.Equal(t, common.StatusForbidden, status)
	assert.Equal(t, common.ErrNotResourceOwner.Message.En, body["message"])
}

// TestRequireProductOwnerThreeWay: Admin qua, Customer bị từ chối kể cả khi
// trùng owner id, loại còn lại so sánh owner như thường.
func TestRequireProductOwnerThreeWay(t *testing.T) {
	InitAuthManager(&stubUsers{}, &stubGrants{}, testSecret)

	build := func(p *models.TokenPayload, owner primitive.ObjectID) *fiber.App {
		app := fiber.New()
		withPayload(app, p)
		stage := RequireProductOwner(func(c fiber.Ctx, ex *pipeline.Exchange) (primitive.ObjectID, error) {
			return owner, nil
		})
		app.Get("/products/1", pipeline.New(okHandler).Authorize(stage).Compile())
		return app
	}

	t.Run("admin qua không cần so sánh", func(t *testing.T) {
		status, _ := doAuthed(t, build(newPayload(models.UserTypeAdmin), primitive.NewObjectID()), "/products/1", "")
		assert.Equal(t, common.StatusOK, status)
	})

	t.Run("customer bị từ chối kể cả khi là owner", func(t *testing.T) {
		payload := newPayload(models.UserTypeCustomer)
		ownerID, _ := primitive.ObjectIDFromHex(payload.UserID)
		status, _ := doAuthed(t, build(payload, ownerID), "/products/1", "")
		assert.Equal(t, common.StatusForbidden, status)
	})

	t.Run("staff so sánh owner id", func(t *testing.T) {
		payload := newPayload(models.UserTypeStaff)
		ownerID, _ := primitive.ObjectIDFromHex(payload.UserID)

		status, _ := doAuthed(t, build(payload, ownerID), "/products/1", "")
		assert.Equal(t, common.StatusOK, status, "staff sở hữu product phải được sửa")

		status, _ = doAuthed(t, build(payload, primitive.NewObjectID()), "/products/1", "")
		assert.Equal(t, common.StatusForbidden, status, "staff không sở hữu phải bị chặn")
	})
}
