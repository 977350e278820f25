// Package global giữ các biến toàn cục của ứng dụng: cấu hình, phiên kết nối
// MongoDB, validator và registry các collections.
package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"viet_commerce/config"
	"viet_commerce/internal/registry"
)

// CollectionNames chứa tên các collection trong MongoDB.
type CollectionNames struct {
	Users     string // Người dùng
	Roles     string // Vai trò (catalog entry, không gắn trực tiếp user)
	UserRoles string // Join user ↔ role
	Products  string // Sản phẩm
	Categories string // Danh mục sản phẩm
	Brands    string // Thương hiệu
	Reviews   string // Đánh giá sản phẩm
	Carts     string // Giỏ hàng (cart items)
	Orders    string // Đơn hàng
	Addresses string // Địa chỉ giao hàng
	Provinces string // Tỉnh/thành (dữ liệu tham chiếu)
	Posts     string // Bài viết
	Files     string // Metadata file upload
}

// Các biến toàn cục
var Validate *validator.Validate              // Validator xác thực DTO
var MongoDB_Session *mongo.Client             // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration // Cấu hình của server

// ColNames tên các collection, gán cố định lúc khởi động.
var ColNames = CollectionNames{
	Users:      "users",
	Roles:      "roles",
	UserRoles:  "user_roles",
	Products:   "products",
	Categories: "categories",
	Brands:     "brands",
	Reviews:    "reviews",
	Carts:      "cart_items",
	Orders:     "orders",
	Addresses:  "addresses",
	Provinces:  "provinces",
	Posts:      "posts",
	Files:      "files",
}

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases

// GetCollection lấy collection theo tên từ registry.
func GetCollection(name string) (*mongo.Collection, bool) {
	return RegistryCollections.Get(name)
}
