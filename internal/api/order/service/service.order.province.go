// Package ordersvc - service cho domain order.
package ordersvc

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	models "viet_commerce/internal/api/order/models"
	basesvc "viet_commerce/internal/api/base/service"
	"viet_commerce/internal/common"
	"viet_commerce/internal/global"
)

// ProvinceService quản lý dữ liệu tham chiếu tỉnh/thành, chỉ đọc sau khi seed.
type ProvinceService struct {
	*basesvc.BaseServiceMongoImpl[models.Province]
}

// NewProvinceService tạo mới ProvinceService.
func NewProvinceService() (*ProvinceService, error) {
	collection, exist := global.RegistryCollections.Get(global.ColNames.Provinces)
	if !exist {
		return nil, fmt.Errorf("failed to get provinces collection: %v", common.ErrNotFound)
	}
	return &ProvinceService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Province](collection),
	}, nil
}

// seedProvinces danh sách 63 tỉnh/thành theo mã hành chính.
var seedProvinces = []models.Province{
	{Name: "Hà Nội", Code: 1}, {Name: "Hà Giang", Code: 2}, {Name: "Cao Bằng", Code: 4},
	{Name: "Bắc Kạn", Code: 6}, {Name: "Tuyên Quang", Code: 8}, {Name: "Lào Cai", Code: 10},
	{Name: "Điện Biên", Code: 11}, {Name: "Lai Châu", Code: 12}, {Name: "Sơn La", Code: 14},
	{Name: "Yên Bái", Code: 15}, {Name: "Hoà Bình", Code: 17}, {Name: "Thái Nguyên", Code: 19},
	{Name: "Lạng Sơn", Code: 20}, {Name: "Quảng Ninh", Code: 22}, {Name: "Bắc Giang", Code: 24},
	{Name: "Phú Thọ", Code: 25}, {Name: "Vĩnh Phúc", Code: 26}, {Name: "Bắc Ninh", Code: 27},
	{Name: "Hải Dương", Code: 30}, {Name: "Hải Phòng", Code: 31}, {Name: "Hưng Yên", Code: 33},
	{Name: "Thái Bình", Code: 34}, {Name: "Hà Nam", Code: 35}, {Name: "Nam Định", Code: 36},
	{Name: "Ninh Bình", Code: 37}, {Name: "Thanh Hóa", Code: 38}, {Name: "Nghệ An", Code: 40},
	{Name: "Hà Tĩnh", Code: 42}, {Name: "Quảng Bình", Code: 44}, {Name: "Quảng Trị", Code: 45},
	{Name: "Thừa Thiên Huế", Code: 46}, {Name: "Đà Nẵng", Code: 48}, {Name: "Quảng Nam", Code: 49},
	{Name: "Quảng Ngãi", Code: 51}, {Name: "Bình Định", Code: 52}, {Name: "Phú Yên", Code: 54},
	{Name: "Khánh Hòa", Code: 56}, {Name: "Ninh Thuận", Code: 58}, {Name: "Bình Thuận", Code: 60},
	{Name: "Kon Tum", Code: 62}, {Name: "Gia Lai", Code: 64}, {Name: "Đắk Lắk", Code: 66},
	{Name: "Đắk Nông", Code: 67}, {Name: "Lâm Đồng", Code: 68}, {Name: "Bình Phước", Code: 70},
	{Name: "Tây Ninh", Code: 72}, {Name: "Bình Dương", Code: 74}, {Name: "Đồng Nai", Code: 75},
	{Name: "Bà Rịa - Vũng Tàu", Code: 77}, {Name: "Hồ Chí Minh", Code: 79}, {Name: "Long An", Code: 80},
	{Name: "Tiền Giang", Code: 82}, {Name: "Bến Tre", Code: 83}, {Name: "Trà Vinh", Code: 84},
	{Name: "Vĩnh Long", Code: 86}, {Name: "Đồng Tháp", Code: 87}, {Name: "An Giang", Code: 89},
	{Name: "Kiên Giang", Code: 91}, {Name: "Cần Thơ", Code: 92}, {Name: "Hậu Giang", Code: 93},
	{Name: "Sóc Trăng", Code: 94}, {Name: "Bạc Liêu", Code: 95}, {Name: "Cà Mau", Code: 96},
}

// EnsureProvinces seed danh sách tỉnh/thành với IsSystem = true. Idempotent,
// gọi lúc khởi động.
func (s *ProvinceService) EnsureProvinces(ctx context.Context) error {
	ctx = basesvc.WithSeedDataWriteAllowed(ctx)

	for _, p := range seedProvinces {
		exists, err := s.DocumentExists(ctx, bson.M{"code": p.Code, "isSystem": true})
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		p.IsSystem = true
		_, err = s.InsertOne(ctx, p)
		if err != nil && !errors.Is(err, common.ErrDuplicate) {
			return err
		}
	}
	return nil
}
