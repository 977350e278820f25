package middleware

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "viet_commerce/internal/api/auth/models"
	"viet_commerce/internal/common"
	"viet_commerce/internal/logger"
	"viet_commerce/internal/utility"
)

// tokenPayloadKey là key lưu TokenPayload trong Locals của request.
const tokenPayloadKey = "token_payload"

// UserSource cung cấp thông tin user cho middleware auth. Tách interface
// để test có thể stub mà không cần MongoDB.
type UserSource interface {
	FindUserByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
}

// GrantSource cung cấp danh sách role đã gán cho user (join qua user_roles).
type GrantSource interface {
	GrantsForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Role, error)
}

// AuthManager quản lý xác thực và phân quyền người dùng
type AuthManager struct {
	Users     UserSource
	Grants    GrantSource
	JwtSecret []byte
	Cache     *utility.Cache
}

var (
	authManagerInstance *AuthManager
	authManagerMu       sync.Mutex
)

// InitAuthManager khởi tạo singleton AuthManager. Gọi một lần lúc boot,
// trước khi đăng ký route.
func InitAuthManager(users UserSource, grants GrantSource, jwtSecret []byte) *AuthManager {
	authManagerMu.Lock()
	defer authManagerMu.Unlock()
	if authManagerInstance != nil && authManagerInstance.Cache != nil {
		authManagerInstance.Cache.Stop()
	}
	authManagerInstance = &AuthManager{
		Users:     users,
		Grants:    grants,
		JwtSecret: jwtSecret,
		// Cache role grants 5 phút, dọn dẹp 10 phút
		Cache: utility.NewCache(5*time.Minute, 10*time.Minute),
	}
	return authManagerInstance
}

// GetAuthManager trả về instance duy nhất của AuthManager (singleton pattern)
func GetAuthManager() *AuthManager {
	authManagerMu.Lock()
	defer authManagerMu.Unlock()
	if authManagerInstance == nil {
		panic("auth manager chưa được khởi tạo, gọi InitAuthManager trước")
	}
	return authManagerInstance
}

// ParseToken verify chữ ký và expiry của access token, trả về payload.
func (am *AuthManager) ParseToken(tokenString string) (*models.TokenPayload, error) {
	payload := new(models.TokenPayload)
	token, err := jwt.ParseWithClaims(tokenString, payload, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrTokenInvalid
		}
		return am.JwtSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, common.ErrTokenInvalid
	}
	return payload, nil
}

// AuthMiddleware middleware xác thực cho Fiber: verify Bearer token, kiểm
// tra trạng thái tài khoản rồi gắn TokenPayload lên request. Các stage
// authorization phía sau chỉ đọc payload, không query lại user.
func AuthMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		am := GetAuthManager()

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Missing Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		payload, err := am.ParseToken(parts[1])
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("❌ [AUTH] Token verification failed")
			HandleErrorResponse(c, err)
			return nil
		}

		// Trạng thái trong payload là snapshot lúc phát hành token; tài
		// khoản bị khóa sau đó vẫn phải bị chặn ngay.
		userID, err := payload.UserObjectID()
		if err != nil {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}
		user, err := am.Users.FindUserByID(c.Context(), userID)
		if err != nil {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}
		if user.Status == models.UserStatusBlocked {
			HandleErrorResponse(c, common.ErrUserBlocked)
			return nil
		}

		c.Locals(tokenPayloadKey, payload)
		return c.Next()
	}
}

// CurrentPayload lấy TokenPayload đã được auth middleware gắn lên request.
func CurrentPayload(c fiber.Ctx) (*models.TokenPayload, bool) {
	p, ok := c.Locals(tokenPayloadKey).(*models.TokenPayload)
	return p, ok
}

// SetPayload gắn TokenPayload lên request, dùng trong test và các flow
// không đi qua AuthMiddleware.
func SetPayload(c fiber.Ctx, p *models.TokenPayload) {
	c.Locals(tokenPayloadKey, p)
}
