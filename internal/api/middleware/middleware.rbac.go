package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	models "viet_commerce/internal/api/auth/models"
	"viet_commerce/internal/common"
	"viet_commerce/internal/logger"
	"viet_commerce/internal/pipeline"
)

// grantsForUser lấy danh sách role của user từ cache hoặc database.
func (am *AuthManager) grantsForUser(c fiber.Ctx, payload *models.TokenPayload) ([]models.Role, error) {
	cacheKey := "user_grants:" + payload.UserID
	if cached, found := am.Cache.Get(cacheKey); found {
		return cached.([]models.Role), nil
	}

	userID, err := payload.UserObjectID()
	if err != nil {
		return nil, common.ErrTokenInvalid
	}
	grants, err := am.Grants.GrantsForUser(c.Context(), userID)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	am.Cache.Set(cacheKey, grants)
	return grants, nil
}

// InvalidateGrants xóa cache role của một user, gọi khi gán/gỡ role.
func (am *AuthManager) InvalidateGrants(userID string) {
	am.Cache.Delete("user_grants:" + userID)
}

// RequireRole trả về một authorizer stage: user loại Admin được cho qua vô
// điều kiện; user khác phải có ít nhất một role gán khớp đúng cặp
// (roleType, roleField), nếu không bị từ chối với 403. Phân biệt
// Staff/Customer chỉ nằm ở role được gán, không hardcode theo loại user.
func RequireRole(roleType models.RoleType, roleField models.RoleField) pipeline.Stage {
	return func(c fiber.Ctx) error {
		payload, ok := CurrentPayload(c)
		if !ok {
			return common.ErrTokenMissing
		}

		if payload.UserType == models.UserTypeAdmin {
			return nil
		}

		am := GetAuthManager()
		grants, err := am.grantsForUser(c, payload)
		if err != nil {
			return err
		}
		for _, role := range grants {
			if role.Grants(roleType, roleField) {
				return nil
			}
		}

		logger.GetAppLogger().WithFields(logrus.Fields{
			"user_id":    payload.UserID,
			"user_type":  payload.UserType.String(),
			"role_type":  roleType.String(),
			"role_field": roleField.String(),
			"path":       c.Path(),
		}).Warn("❌ [AUTH] User does not have required role")
		return common.ErrPermissionDenied
	}
}

// RequireAdmin trả về một authorizer stage chỉ cho phép user loại Admin,
// dùng cho các collection quản trị không nằm trong hệ role theo field.
func RequireAdmin() pipeline.Stage {
	return func(c fiber.Ctx) error {
		payload, ok := CurrentPayload(c)
		if !ok {
			return common.ErrTokenMissing
		}
		if payload.UserType != models.UserTypeAdmin {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"user_id":   payload.UserID,
				"user_type": payload.UserType.String(),
				"path":      c.Path(),
			}).Warn("❌ [AUTH] Admin role required")
			return common.ErrPermissionDenied
		}
		return nil
	}
}
