package authsvc

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authdto "viet_commerce/internal/api/auth/dto"
	models "viet_commerce/internal/api/auth/models"
	basesvc "viet_commerce/internal/api/base/service"
	"viet_commerce/internal/common"
	"viet_commerce/internal/global"
)

// RoleService là cấu trúc chứa các phương thức liên quan đến role.
type RoleService struct {
	*basesvc.BaseServiceMongoImpl[models.Role]
}

// NewRoleService tạo mới RoleService.
func NewRoleService() (*RoleService, error) {
	roleCollection, exist := global.RegistryCollections.Get(global.ColNames.Roles)
	if !exist {
		return nil, fmt.Errorf("failed to get roles collection: %v", common.ErrNotFound)
	}
	return &RoleService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Role](roleCollection),
	}, nil
}

// Create tạo role mới. Cặp (type, field) kết hợp với name là duy nhất;
// role trùng trả về lỗi nghiệp vụ 409.
func (s *RoleService) Create(ctx context.Context, input *authdto.RoleCreateInput, creatorID primitive.ObjectID) (models.Role, error) {
	var zero models.Role

	filter := bson.M{"type": input.Type, "field": input.Field, "name": input.Name}
	_, err := s.FindOne(ctx, filter, nil)
	if err == nil {
		return zero, common.NewError(
			common.ErrCodeBusinessOperation,
			common.Msg("Role already exists", "Role đã tồn tại"),
			common.StatusConflict,
			nil,
		)
	}
	if !errors.Is(err, common.ErrNotFound) {
		return zero, err
	}

	role := models.Role{
		Type:     models.RoleType(input.Type),
		Field:    models.RoleField(input.Field),
		Name:     input.Name,
		Describe: input.Describe,
		UserID:   creatorID,
	}
	return s.InsertOne(ctx, role)
}

// EnsureDefaultRoles seed đầy đủ 12 role mặc định (4 thao tác × 3 nhóm tài
// nguyên) với IsSystem = true. Idempotent, gọi lúc khởi động.
func (s *RoleService) EnsureDefaultRoles(ctx context.Context) error {
	ctx = basesvc.WithSeedDataWriteAllowed(ctx)

	for _, t := range []models.RoleType{models.RoleTypeCreate, models.RoleTypeRead, models.RoleTypeUpdate, models.RoleTypeDelete} {
		for _, f := range []models.RoleField{models.RoleFieldProduct, models.RoleFieldPost, models.RoleFieldOrder} {
			name := t.String() + "." + f.String()
			exists, err := s.DocumentExists(ctx, bson.M{"type": t, "field": f, "isSystem": true})
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			_, err = s.InsertOne(ctx, models.Role{
				Type:     t,
				Field:    f,
				Name:     name,
				Describe: "Role hệ thống: " + name,
				IsSystem: true,
			})
			if err != nil && !errors.Is(err, common.ErrDuplicate) {
				return err
			}
		}
	}
	return nil
}
