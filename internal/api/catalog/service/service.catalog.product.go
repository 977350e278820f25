package catalogsvc

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	catalogdto "viet_commerce/internal/api/catalog/dto"
	models "viet_commerce/internal/api/catalog/models"
	basesvc "viet_commerce/internal/api/base/service"
	"viet_commerce/internal/common"
	"viet_commerce/internal/global"
	"viet_commerce/internal/utility"
)

// ProductService quản lý sản phẩm.
type ProductService struct {
	*basesvc.BaseServiceMongoImpl[models.Product]
}

// NewProductService tạo mới ProductService.
func NewProductService() (*ProductService, error) {
	collection, exist := global.RegistryCollections.Get(global.ColNames.Products)
	if !exist {
		return nil, fmt.Errorf("failed to get products collection: %v", common.ErrNotFound)
	}
	return &ProductService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Product](collection),
	}, nil
}

// Create tạo sản phẩm mới thuộc về ownerID. Tồn tại của category/brand đã
// được schema của route kiểm tra trước khi vào đây.
func (s *ProductService) Create(ctx context.Context, input *catalogdto.ProductCreateInput, ownerID primitive.ObjectID) (models.Product, error) {
	product := models.Product{
		Name:       input.Name,
		Describe:   input.Describe,
		Price:      input.Price,
		Stock:      input.Stock,
		CategoryID: utility.String2ObjectID(input.CategoryID),
		UserID:     ownerID,
		ImageURLs:  input.ImageURLs,
	}
	if input.BrandID != "" {
		product.BrandID = utility.String2ObjectID(input.BrandID)
	}
	return s.InsertOne(ctx, product)
}

// stockAdjustFilter build filter cho thao tác chỉnh kho. Trừ kho thì điều
// kiện đủ hàng nằm ngay trong filter của lệnh $inc.
func stockAdjustFilter(productID primitive.ObjectID, delta int64) bson.M {
	filter := bson.M{"_id": productID}
	if delta < 0 {
		filter["stock"] = bson.M{"$gte": -delta}
	}
	return filter
}

// AdjustStock tăng/giảm tồn kho. Khi trừ kho, điều kiện stock >= |delta| nằm
// ngay trong filter của $inc nên hai đơn hàng song song không thể cùng trừ
// quá số lượng còn lại.
func (s *ProductService) AdjustStock(ctx context.Context, productID primitive.ObjectID, delta int64) (models.Product, error) {
	var zero models.Product

	product, err := s.FindOneAndUpdate(ctx, stockAdjustFilter(productID, delta), &basesvc.UpdateData{
		Inc: map[string]interface{}{"stock": delta},
	}, options.FindOneAndUpdate().SetReturnDocument(options.After))
	if err == nil {
		return product, nil
	}
	if !errors.Is(err, common.ErrNotFound) || delta >= 0 {
		return zero, err
	}

	// Không match: phân biệt sản phẩm không tồn tại với kho không đủ.
	exists, existsErr := s.DocumentExists(ctx, bson.M{"_id": productID})
	if existsErr != nil {
		return zero, existsErr
	}
	if !exists {
		return zero, common.ErrNotFound
	}
	return zero, common.NewError(
		common.ErrCodeBusinessState,
		common.Msg("Not enough stock", "Không đủ hàng trong kho"),
		common.StatusConflict,
		nil,
	)
}

// applyReviewDelta cập nhật bộ đếm review trên sản phẩm bằng $inc.
func (s *ProductService) applyReviewDelta(ctx context.Context, productID primitive.ObjectID, countDelta, ratingDelta int64) error {
	_, err := s.UpdateById(ctx, productID, &basesvc.UpdateData{
		Inc: map[string]interface{}{
			"reviewCount": countDelta,
			"ratingSum":   ratingDelta,
		},
	})
	return err
}

// FindByCategory liệt kê sản phẩm theo category với phân trang.
func (s *ProductService) FindByCategory(ctx context.Context, categoryID primitive.ObjectID, page, limit int64) (interface{}, error) {
	return s.FindWithPagination(ctx, bson.M{"categoryId": categoryID}, page, limit, nil)
}
