package ordersvc

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "viet_commerce/internal/api/order/models"
	basesvc "viet_commerce/internal/api/base/service"
	"viet_commerce/internal/common"
	"viet_commerce/internal/global"
)

// CartService quản lý giỏ hàng. Mỗi user một giỏ, mỗi sản phẩm một dòng.
type CartService struct {
	*basesvc.BaseServiceMongoImpl[models.CartItem]
}

// NewCartService tạo mới CartService.
func NewCartService() (*CartService, error) {
	collection, exist := global.RegistryCollections.Get(global.ColNames.Carts)
	if !exist {
		return nil, fmt.Errorf("failed to get cart_items collection: %v", common.ErrNotFound)
	}
	return &CartService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.CartItem](collection),
	}, nil
}

// AddItem thêm sản phẩm vào giỏ của ownerID. Sản phẩm đã có trong giỏ thì
// cộng dồn số lượng bằng $inc thay vì tạo dòng mới.
func (s *CartService) AddItem(ctx context.Context, ownerID, productID primitive.ObjectID, quantity int64) (models.CartItem, error) {
	var zero models.CartItem

	filter := bson.M{"userId": ownerID, "productId": productID}
	existing, err := s.FindOne(ctx, filter, nil)
	if err == nil {
		return s.UpdateById(ctx, existing.ID, &basesvc.UpdateData{
			Inc: map[string]interface{}{"quantity": quantity},
		})
	}
	if !errors.Is(err, common.ErrNotFound) {
		return zero, err
	}

	return s.InsertOne(ctx, models.CartItem{
		UserID:    ownerID,
		ProductID: productID,
		Quantity:  quantity,
	})
}

// UpdateQuantity đặt lại số lượng cho một dòng giỏ hàng.
func (s *CartService) UpdateQuantity(ctx context.Context, itemID primitive.ObjectID, quantity int64) (models.CartItem, error) {
	return s.UpdateById(ctx, itemID, bson.M{"quantity": quantity})
}

// RemoveItem xóa một dòng khỏi giỏ.
func (s *CartService) RemoveItem(ctx context.Context, itemID primitive.ObjectID) error {
	return s.DeleteById(ctx, itemID)
}

// ItemsOfUser liệt kê giỏ hàng của user kèm sản phẩm join qua $lookup.
func (s *CartService) ItemsOfUser(ctx context.Context, ownerID primitive.ObjectID) ([]models.CartItemDetail, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"userId": ownerID}},
		{"$lookup": bson.M{
			"from":         global.ColNames.Products,
			"localField":   "productId",
			"foreignField": "_id",
			"as":           "product",
		}},
		{"$unwind": "$product"},
		{"$sort": bson.M{"createdAt": -1}},
	}

	items := make([]models.CartItemDetail, 0)
	if err := s.Aggregate(ctx, pipeline, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ClearUser xóa toàn bộ giỏ của user, gọi sau khi đặt hàng thành công.
func (s *CartService) ClearUser(ctx context.Context, ownerID primitive.ObjectID) error {
	_, err := s.DeleteMany(ctx, bson.M{"userId": ownerID})
	return err
}
