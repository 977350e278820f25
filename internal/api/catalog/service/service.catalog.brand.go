// Package catalogsvc - service cho domain catalog.
package catalogsvc

import (
	"fmt"

	models "viet_commerce/internal/api/catalog/models"
	basesvc "viet_commerce/internal/api/base/service"
	"viet_commerce/internal/common"
	"viet_commerce/internal/global"
)

// BrandService quản lý brand.
type BrandService struct {
	*basesvc.BaseServiceMongoImpl[models.Brand]
}

// NewBrandService tạo mới BrandService.
func NewBrandService() (*BrandService, error) {
	collection, exist := global.RegistryCollections.Get(global.ColNames.Brands)
	if !exist {
		return nil, fmt.Errorf("failed to get brands collection: %v", common.ErrNotFound)
	}
	return &BrandService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Brand](collection),
	}, nil
}

// CategoryService quản lý category.
type CategoryService struct {
	*basesvc.BaseServiceMongoImpl[models.Category]
}

// NewCategoryService tạo mới CategoryService.
func NewCategoryService() (*CategoryService, error) {
	collection, exist := global.RegistryCollections.Get(global.ColNames.Categories)
	if !exist {
		return nil, fmt.Errorf("failed to get categories collection: %v", common.ErrNotFound)
	}
	return &CategoryService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Category](collection),
	}, nil
}
