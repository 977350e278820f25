package basesvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"viet_commerce/internal/common"
	"viet_commerce/internal/global"
)

// RelationshipCheck dinh nghia mot quan he can kiem tra
type RelationshipCheck struct {
	CollectionName string
	FieldName      string
	ErrorMessage   string
	Optional       bool
}

// CheckRelationshipExists kiem tra co record nao trong collection khac dang tro toi record nay khong
func CheckRelationshipExists(ctx context.Context, recordID primitive.ObjectID, checks []RelationshipCheck) error {
	for _, check := range checks {
		collection, exists := global.RegistryCollections.Get(check.CollectionName)
		if !exists {
			if check.Optional {
				continue
			}
			return common.NewError(
				common.ErrCodeInternalServer,
				common.Msg(
					fmt.Sprintf("Collection '%s' not registered for relationship check", check.CollectionName),
					fmt.Sprintf("Không tìm thấy collection '%s' để kiểm tra quan hệ", check.CollectionName),
				),
				common.StatusInternalServerError,
				nil,
			)
		}
		filter := bson.M{check.FieldName: recordID}
		count, err := collection.CountDocuments(ctx, filter)
		if err != nil {
			return common.ConvertMongoError(err)
		}
		if count > 0 {
			viMsg := check.ErrorMessage
			if viMsg == "" {
				viMsg = fmt.Sprintf("Không thể xóa vì có %d bản ghi trong '%s' đang tham chiếu tới bản ghi này", count, check.CollectionName)
			} else {
				viMsg = fmt.Sprintf(check.ErrorMessage, count)
			}
			enMsg := fmt.Sprintf("Cannot delete: %d records in '%s' still reference this record", count, check.CollectionName)
			return common.NewError(common.ErrCodeBusinessOperation, common.Msg(enMsg, viMsg), common.StatusConflict, nil)
		}
	}
	return nil
}

// GetRelationshipCount tra ve so luong record dang tham chieu toi record nay
func GetRelationshipCount(ctx context.Context, recordID primitive.ObjectID, collectionName, fieldName string) (int64, error) {
	collection, exists := global.RegistryCollections.Get(collectionName)
	if !exists {
		return 0, common.NewError(
			common.ErrCodeInternalServer,
			common.Msg(
				fmt.Sprintf("Collection '%s' not registered", collectionName),
				fmt.Sprintf("Không tìm thấy collection '%s'", collectionName),
			),
			common.StatusInternalServerError,
			nil,
		)
	}
	filter := bson.M{fieldName: recordID}
	return collection.CountDocuments(ctx, filter)
}

// ValidateBeforeDeleteUser kiem tra cac quan he cua User truoc khi xoa
func ValidateBeforeDeleteUser(ctx context.Context, userID primitive.ObjectID) error {
	checks := []RelationshipCheck{
		{CollectionName: global.ColNames.UserRoles, FieldName: "userId", ErrorMessage: "Không thể xóa user vì có %d role đang được gán cho user này. Vui lòng gỡ các role trước."},
		{CollectionName: global.ColNames.Orders, FieldName: "userId", ErrorMessage: "Không thể xóa user vì có %d đơn hàng thuộc user này."},
	}
	return CheckRelationshipExists(ctx, userID, checks)
}

// ValidateBeforeDeleteRole kiem tra cac quan he cua Role truoc khi xoa
func ValidateBeforeDeleteRole(ctx context.Context, roleID primitive.ObjectID) error {
	checks := []RelationshipCheck{
		{CollectionName: global.ColNames.UserRoles, FieldName: "roleId", ErrorMessage: "Không thể xóa role vì có %d user đang sử dụng role này. Vui lòng gỡ role khỏi các user trước."},
	}
	return CheckRelationshipExists(ctx, roleID, checks)
}

// ValidateBeforeDeleteProduct kiem tra cac quan he cua Product truoc khi xoa
func ValidateBeforeDeleteProduct(ctx context.Context, productID primitive.ObjectID) error {
	checks := []RelationshipCheck{
		{CollectionName: global.ColNames.Reviews, FieldName: "productId", ErrorMessage: "Không thể xóa sản phẩm vì có %d đánh giá đang tham chiếu tới sản phẩm này."},
		{CollectionName: global.ColNames.Carts, FieldName: "productId", ErrorMessage: "Không thể xóa sản phẩm vì có %d giỏ hàng đang chứa sản phẩm này."},
	}
	return CheckRelationshipExists(ctx, productID, checks)
}

// ValidateBeforeDeleteCategory kiem tra cac quan he cua Category truoc khi xoa
func ValidateBeforeDeleteCategory(ctx context.Context, categoryID primitive.ObjectID) error {
	checks := []RelationshipCheck{
		{CollectionName: global.ColNames.Products, FieldName: "categoryId", ErrorMessage: "Không thể xóa danh mục vì có %d sản phẩm thuộc danh mục này."},
	}
	return CheckRelationshipExists(ctx, categoryID, checks)
}

// ValidateBeforeDeleteBrand kiem tra cac quan he cua Brand truoc khi xoa
func ValidateBeforeDeleteBrand(ctx context.Context, brandID primitive.ObjectID) error {
	checks := []RelationshipCheck{
		{CollectionName: global.ColNames.Products, FieldName: "brandId", ErrorMessage: "Không thể xóa thương hiệu vì có %d sản phẩm thuộc thương hiệu này."},
	}
	return CheckRelationshipExists(ctx, brandID, checks)
}
