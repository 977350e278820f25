package authsvc

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "viet_commerce/internal/api/auth/models"
	basesvc "viet_commerce/internal/api/base/service"
	"viet_commerce/internal/common"
	"viet_commerce/internal/global"
	"viet_commerce/internal/utility"
)

// UserRoleService quản lý bản ghi gán role cho user.
type UserRoleService struct {
	*basesvc.BaseServiceMongoImpl[models.UserRole]
	roleService *basesvc.BaseServiceMongoImpl[models.Role]
	userService *basesvc.BaseServiceMongoImpl[models.User]
}

// NewUserRoleService tạo mới UserRoleService.
func NewUserRoleService() (*UserRoleService, error) {
	userRoleCollection, exist := global.RegistryCollections.Get(global.ColNames.UserRoles)
	if !exist {
		return nil, fmt.Errorf("failed to get user_roles collection: %v", common.ErrNotFound)
	}
	roleCollection, exist := global.RegistryCollections.Get(global.ColNames.Roles)
	if !exist {
		return nil, fmt.Errorf("failed to get roles collection: %v", common.ErrNotFound)
	}
	userCollection, exist := global.RegistryCollections.Get(global.ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}
	return &UserRoleService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.UserRole](userRoleCollection),
		roleService:          basesvc.NewBaseServiceMongo[models.Role](roleCollection),
		userService:          basesvc.NewBaseServiceMongo[models.User](userCollection),
	}, nil
}

// Assign gán một role cho một user. User và role phải tồn tại; gán trùng
// trả về lỗi nghiệp vụ 409.
func (s *UserRoleService) Assign(ctx context.Context, userID, roleID primitive.ObjectID) (models.UserRole, error) {
	var zero models.UserRole

	if _, err := s.userService.FindOneById(ctx, userID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return zero, common.NewError(
				common.ErrCodeBusinessOperation,
				common.Msg("User does not exist", "User không tồn tại"),
				common.StatusNotFound,
				nil,
			)
		}
		return zero, err
	}
	if _, err := s.roleService.FindOneById(ctx, roleID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return zero, common.NewError(
				common.ErrCodeBusinessOperation,
				common.Msg("Role does not exist", "Role không tồn tại"),
				common.StatusNotFound,
				nil,
			)
		}
		return zero, err
	}

	exists, err := s.DocumentExists(ctx, bson.M{"userId": userID, "roleId": roleID})
	if err != nil {
		return zero, err
	}
	if exists {
		return zero, common.NewError(
			common.ErrCodeBusinessOperation,
			common.Msg("Role is already assigned to this user", "Role đã được gán cho user này"),
			common.StatusConflict,
			nil,
		)
	}

	return s.InsertOne(ctx, models.UserRole{UserID: userID, RoleID: roleID})
}

// Revoke gỡ một role khỏi một user.
func (s *UserRoleService) Revoke(ctx context.Context, userID, roleID primitive.ObjectID) error {
	return s.DeleteOne(ctx, bson.M{"userId": userID, "roleId": roleID})
}

// GrantsForUser trả về danh sách role đã gán cho user, join user_roles với
// roles bằng một aggregation $lookup duy nhất. Auth middleware dùng hàm này
// làm GrantSource.
func (s *UserRoleService) GrantsForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Role, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"userId": userID}},
		{"$lookup": bson.M{
			"from":         global.ColNames.Roles,
			"localField":   "roleId",
			"foreignField": "_id",
			"as":           "role",
		}},
		{"$unwind": "$role"},
		{"$replaceRoot": bson.M{"newRoot": "$role"}},
	}

	var roles []models.Role
	if err := s.Aggregate(ctx, pipeline, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// RolesOfUserID biến thể nhận chuỗi hex, tiện cho handler đọc query param.
func (s *UserRoleService) RolesOfUserID(ctx context.Context, userID string) ([]models.Role, error) {
	if !primitive.IsValidObjectID(userID) {
		return nil, common.ErrInvalidFormat
	}
	return s.GrantsForUser(ctx, utility.String2ObjectID(userID))
}
