package catalogsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	catalogdto "viet_commerce/internal/api/catalog/dto"
	models "viet_commerce/internal/api/catalog/models"
	basesvc "viet_commerce/internal/api/base/service"
	"viet_commerce/internal/common"
	"viet_commerce/internal/global"
	"viet_commerce/internal/utility"
)

// ReviewService quản lý đánh giá sản phẩm. Mọi thao tác ghi đều cập nhật
// bộ đếm reviewCount/ratingSum trên sản phẩm tương ứng.
type ReviewService struct {
	*basesvc.BaseServiceMongoImpl[models.Review]
	productService *ProductService
}

// NewReviewService tạo mới ReviewService.
func NewReviewService() (*ReviewService, error) {
	collection, exist := global.RegistryCollections.Get(global.ColNames.Reviews)
	if !exist {
		return nil, fmt.Errorf("failed to get reviews collection: %v", common.ErrNotFound)
	}
	productService, err := NewProductService()
	if err != nil {
		return nil, err
	}
	return &ReviewService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Review](collection),
		productService:       productService,
	}, nil
}

// Create tạo đánh giá mới. Mỗi user chỉ được đánh giá một sản phẩm một lần.
func (s *ReviewService) Create(ctx context.Context, input *catalogdto.ReviewCreateInput, userID primitive.ObjectID) (models.Review, error) {
	var zero models.Review

	productID := utility.String2ObjectID(input.ProductID)
	exists, err := s.DocumentExists(ctx, bson.M{"productId": productID, "userId": userID})
	if err != nil {
		return zero, err
	}
	if exists {
		return zero, common.NewError(
			common.ErrCodeBusinessOperation,
			common.Msg("You have already reviewed this product", "Bạn đã đánh giá sản phẩm này rồi"),
			common.StatusConflict,
			nil,
		)
	}

	review, err := s.InsertOne(ctx, models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    input.Rating,
		Content:   input.Content,
	})
	if err != nil {
		return zero, err
	}

	if err := s.productService.applyReviewDelta(ctx, productID, 1, input.Rating); err != nil {
		return zero, err
	}
	return review, nil
}

// Update cập nhật đánh giá, điều chỉnh ratingSum theo chênh lệch rating.
func (s *ReviewService) Update(ctx context.Context, reviewID primitive.ObjectID, input *catalogdto.ReviewUpdateInput) (models.Review, error) {
	var zero models.Review

	existing, err := s.FindOneById(ctx, reviewID)
	if err != nil {
		return zero, err
	}

	set := map[string]interface{}{}
	var ratingDelta int64
	if input.Rating != nil {
		set["rating"] = *input.Rating
		ratingDelta = *input.Rating - existing.Rating
	}
	if input.Content != "" {
		set["content"] = input.Content
	}
	if len(set) == 0 {
		return existing, nil
	}

	updated, err := s.UpdateById(ctx, reviewID, &basesvc.UpdateData{Set: set})
	if err != nil {
		return zero, err
	}
	if ratingDelta != 0 {
		if err := s.productService.applyReviewDelta(ctx, existing.ProductID, 0, ratingDelta); err != nil {
			return zero, err
		}
	}
	return updated, nil
}

// Delete xóa đánh giá và trừ bộ đếm trên sản phẩm.
func (s *ReviewService) Delete(ctx context.Context, reviewID primitive.ObjectID) error {
	existing, err := s.FindOneById(ctx, reviewID)
	if err != nil {
		return err
	}
	if err := s.DeleteById(ctx, reviewID); err != nil {
		return err
	}
	return s.productService.applyReviewDelta(ctx, existing.ProductID, -1, -existing.Rating)
}

// FindByProduct liệt kê đánh giá của một sản phẩm với phân trang.
func (s *ReviewService) FindByProduct(ctx context.Context, productID primitive.ObjectID, page, limit int64) (interface{}, error) {
	return s.FindWithPagination(ctx, bson.M{"productId": productID}, page, limit, nil)
}
