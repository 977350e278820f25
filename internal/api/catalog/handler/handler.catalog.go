// Package cataloghdl xử lý các request của domain catalog.
package cataloghdl

import (
	catalogdto "viet_commerce/internal/api/catalog/dto"
	catalogsvc "viet_commerce/internal/api/catalog/service"
	models "viet_commerce/internal/api/catalog/models"
	basehdl "viet_commerce/internal/api/base/handler"
)

// BrandHandler xử lý CRUD brand qua BaseHandler.
type BrandHandler struct {
	*basehdl.BaseHandler[models.Brand, catalogdto.BrandCreateInput, catalogdto.BrandUpdateInput]
}

// NewBrandHandler tạo instance mới của BrandHandler.
func NewBrandHandler() (*BrandHandler, error) {
	brandService, err := catalogsvc.NewBrandService()
	if err != nil {
		return nil, err
	}
	return &BrandHandler{
		BaseHandler: basehdl.NewBaseHandler[models.Brand, catalogdto.BrandCreateInput, catalogdto.BrandUpdateInput](brandService),
	}, nil
}

// CategoryHandler xử lý CRUD category qua BaseHandler.
type CategoryHandler struct {
	*basehdl.BaseHandler[models.Category, catalogdto.CategoryCreateInput, catalogdto.CategoryUpdateInput]
}

// NewCategoryHandler tạo instance mới của CategoryHandler.
func NewCategoryHandler() (*CategoryHandler, error) {
	categoryService, err := catalogsvc.NewCategoryService()
	if err != nil {
		return nil, err
	}
	return &CategoryHandler{
		BaseHandler: basehdl.NewBaseHandler[models.Category, catalogdto.CategoryCreateInput, catalogdto.CategoryUpdateInput](categoryService),
	}, nil
}
