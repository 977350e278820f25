package ordersvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	orderdto "viet_commerce/internal/api/order/dto"
	models "viet_commerce/internal/api/order/models"
	basesvc "viet_commerce/internal/api/base/service"
	"viet_commerce/internal/common"
	"viet_commerce/internal/global"
	"viet_commerce/internal/utility"
)

// AddressService quản lý địa chỉ giao hàng của user.
type AddressService struct {
	*basesvc.BaseServiceMongoImpl[models.Address]
}

// NewAddressService tạo mới AddressService.
func NewAddressService() (*AddressService, error) {
	collection, exist := global.RegistryCollections.Get(global.ColNames.Addresses)
	if !exist {
		return nil, fmt.Errorf("failed to get addresses collection: %v", common.ErrNotFound)
	}
	return &AddressService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Address](collection),
	}, nil
}

// Create tạo địa chỉ mới thuộc về ownerID. Tồn tại của province đã được
// schema của route kiểm tra. Địa chỉ đầu tiên của user tự động thành mặc định.
func (s *AddressService) Create(ctx context.Context, input *orderdto.AddressCreateInput, ownerID primitive.ObjectID) (models.Address, error) {
	var zero models.Address

	count, err := s.CountDocuments(ctx, bson.M{"userId": ownerID})
	if err != nil {
		return zero, err
	}

	address := models.Address{
		UserID:     ownerID,
		FullName:   input.FullName,
		Phone:      input.Phone,
		Street:     input.Street,
		Ward:       input.Ward,
		District:   input.District,
		ProvinceID: utility.String2ObjectID(input.ProvinceID),
		IsDefault:  input.IsDefault || count == 0,
	}

	if address.IsDefault && count > 0 {
		if err := s.clearDefault(ctx, ownerID); err != nil {
			return zero, err
		}
	}
	return s.InsertOne(ctx, address)
}

// SetDefault chuyển cờ mặc định sang địa chỉ addressID của ownerID.
func (s *AddressService) SetDefault(ctx context.Context, ownerID, addressID primitive.ObjectID) (models.Address, error) {
	var zero models.Address

	if err := s.clearDefault(ctx, ownerID); err != nil {
		return zero, err
	}
	address, err := s.UpdateById(ctx, addressID, bson.M{"isDefault": true})
	if err != nil {
		return zero, err
	}
	return address, nil
}

// clearDefault bỏ cờ mặc định trên toàn bộ địa chỉ của user.
func (s *AddressService) clearDefault(ctx context.Context, ownerID primitive.ObjectID) error {
	_, err := s.UpdateMany(ctx, bson.M{"userId": ownerID, "isDefault": true}, bson.M{"isDefault": false}, nil)
	return err
}

// FindByUser liệt kê địa chỉ của một user, mặc định xếp trước.
func (s *AddressService) FindByUser(ctx context.Context, ownerID primitive.ObjectID) ([]models.Address, error) {
	opts := options.Find().SetSort(bson.D{{Key: "isDefault", Value: -1}, {Key: "createdAt", Value: -1}})
	return s.Find(ctx, bson.M{"userId": ownerID}, opts)
}
