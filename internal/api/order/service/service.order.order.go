package ordersvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"github.com/sirupsen/logrus"

	catalogsvc "viet_commerce/internal/api/catalog/service"
	models "viet_commerce/internal/api/order/models"
	basesvc "viet_commerce/internal/api/base/service"
	"viet_commerce/internal/common"
	"viet_commerce/internal/global"
)

// OrderService quản lý đơn hàng. Đặt hàng lấy dòng hàng từ giỏ của user,
// chụp snapshot giá/tên và trừ tồn kho ngay lúc đặt.
type OrderService struct {
	*basesvc.BaseServiceMongoImpl[models.Order]
	cartService    *CartService
	addressService *AddressService
	productService *catalogsvc.ProductService
}

// NewOrderService tạo mới OrderService.
func NewOrderService() (*OrderService, error) {
	collection, exist := global.RegistryCollections.Get(global.ColNames.Orders)
	if !exist {
		return nil, fmt.Errorf("failed to get orders collection: %v", common.ErrNotFound)
	}
	cartService, err := NewCartService()
	if err != nil {
		return nil, err
	}
	addressService, err := NewAddressService()
	if err != nil {
		return nil, err
	}
	productService, err := catalogsvc.NewProductService()
	if err != nil {
		return nil, err
	}
	return &OrderService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Order](collection),
		cartService:          cartService,
		addressService:       addressService,
		productService:       productService,
	}, nil
}

// Create đặt hàng từ giỏ của ownerID. Địa chỉ giao phải thuộc chính user,
// giỏ không được rỗng và từng dòng phải còn đủ tồn kho. Đặt thành công thì
// trừ kho và xóa giỏ.
func (s *OrderService) Create(ctx context.Context, ownerID, addressID primitive.ObjectID, note string) (models.Order, error) {
	var zero models.Order

	address, err := s.addressService.FindOneById(ctx, addressID)
	if err != nil {
		return zero, err
	}
	if address.UserID != ownerID {
		return zero, common.ErrNotResourceOwner
	}

	items, err := s.cartService.ItemsOfUser(ctx, ownerID)
	if err != nil {
		return zero, err
	}
	if len(items) == 0 {
		return zero, common.NewError(
			common.ErrCodeBusinessState,
			common.Msg("Cart is empty", "Giỏ hàng đang trống"),
			common.StatusBadRequest,
			nil,
		)
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	var total int64
	for _, item := range items {
		if item.Product.Stock < item.Quantity {
			return zero, common.NewError(
				common.ErrCodeBusinessState,
				common.Msg(
					fmt.Sprintf("Not enough stock for %s", item.Product.Name),
					fmt.Sprintf("Không đủ hàng trong kho cho %s", item.Product.Name),
				),
				common.StatusConflict,
				nil,
			)
		}
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Product.Name,
			Price:     item.Product.Price,
			Quantity:  item.Quantity,
		})
		total += item.Product.Price * item.Quantity
	}

	for _, item := range orderItems {
		if _, err := s.productService.AdjustStock(ctx, item.ProductID, -item.Quantity); err != nil {
			return zero, err
		}
	}

	order, err := s.InsertOne(ctx, models.Order{
		UserID:    ownerID,
		AddressID: addressID,
		Items:     orderItems,
		Total:     total,
		Status:    models.OrderStatusPending,
		Note:      note,
	})
	if err != nil {
		return zero, err
	}

	if err := s.cartService.ClearUser(ctx, ownerID); err != nil {
		logrus.WithError(err).WithField("orderId", order.ID.Hex()).Warn("⚠️ [ORDER] Không xóa được giỏ hàng sau khi đặt")
	}

	logrus.WithFields(logrus.Fields{
		"orderId": order.ID.Hex(),
		"userId":  ownerID.Hex(),
		"total":   total,
	}).Info("✅ [ORDER] Đặt hàng thành công")
	return order, nil
}

// UpdateStatus chuyển trạng thái đơn. Đơn đã hoàn thành/hủy không đổi nữa;
// hủy đơn chưa giao thì hoàn lại tồn kho.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status models.OrderStatus) (models.Order, error) {
	var zero models.Order

	if !status.IsValid() {
		return zero, common.ErrInvalidState
	}
	order, err := s.FindOneById(ctx, orderID)
	if err != nil {
		return zero, err
	}
	if order.Status.IsTerminal() {
		return zero, common.NewError(
			common.ErrCodeBusinessState,
			common.Msg("Order is already finalized", "Đơn hàng đã kết thúc, không thể đổi trạng thái"),
			common.StatusConflict,
			nil,
		)
	}

	if status == models.OrderStatusCancelled {
		for _, item := range order.Items {
			if _, err := s.productService.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
				return zero, err
			}
		}
	}

	return s.UpdateById(ctx, orderID, bson.M{"status": status})
}

// ListByUser liệt kê đơn của một user với phân trang, mới nhất trước.
func (s *OrderService) ListByUser(ctx context.Context, ownerID primitive.ObjectID, page, limit int64) (interface{}, error) {
	return s.FindWithPagination(ctx, bson.M{"userId": ownerID}, page, limit, nil)
}

// Detail trả về đơn hàng kèm địa chỉ giao join qua $lookup.
func (s *OrderService) Detail(ctx context.Context, orderID primitive.ObjectID) (models.OrderDetail, error) {
	var zero models.OrderDetail

	pipeline := []bson.M{
		{"$match": bson.M{"_id": orderID}},
		{"$lookup": bson.M{
			"from":         global.ColNames.Addresses,
			"localField":   "addressId",
			"foreignField": "_id",
			"as":           "address",
		}},
		{"$unwind": bson.M{"path": "$address", "preserveNullAndEmptyArrays": true}},
	}

	results := make([]models.OrderDetail, 0, 1)
	if err := s.Aggregate(ctx, pipeline, &results); err != nil {
		return zero, err
	}
	if len(results) == 0 {
		return zero, common.ErrNotFound
	}
	return results[0], nil
}
