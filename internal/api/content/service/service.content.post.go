// Package contentsvc - service cho domain content.
package contentsvc

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	contentdto "viet_commerce/internal/api/content/dto"
	models "viet_commerce/internal/api/content/models"
	basesvc "viet_commerce/internal/api/base/service"
	"viet_commerce/internal/common"
	"viet_commerce/internal/global"
)

// PostService quản lý bài viết.
type PostService struct {
	*basesvc.BaseServiceMongoImpl[models.Post]
}

// NewPostService tạo mới PostService.
func NewPostService() (*PostService, error) {
	collection, exist := global.RegistryCollections.Get(global.ColNames.Posts)
	if !exist {
		return nil, fmt.Errorf("failed to get posts collection: %v", common.ErrNotFound)
	}
	return &PostService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Post](collection),
	}, nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify chuyển title thành slug url-safe.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// Create tạo bài viết mới của ownerID. Slug trống thì sinh từ title, slug
// trùng được nối thêm hậu tố ngắn để giữ unique.
func (s *PostService) Create(ctx context.Context, input *contentdto.PostCreateInput, ownerID primitive.ObjectID) (models.Post, error) {
	var zero models.Post

	slug := input.Slug
	if slug == "" {
		slug = Slugify(input.Title)
	}
	exists, err := s.DocumentExists(ctx, bson.M{"slug": slug})
	if err != nil {
		return zero, err
	}
	if exists {
		slug = slug + "-" + uuid.NewString()[:8]
	}

	return s.InsertOne(ctx, models.Post{
		Title:    input.Title,
		Slug:     slug,
		Content:  input.Content,
		CoverURL: input.CoverURL,
		UserID:   ownerID,
	})
}

// FindBySlug tìm bài viết theo slug.
func (s *PostService) FindBySlug(ctx context.Context, slug string) (models.Post, error) {
	return s.FindOne(ctx, bson.M{"slug": slug}, nil)
}

// FindPublished liệt kê bài viết đã publish với phân trang.
func (s *PostService) FindPublished(ctx context.Context, page, limit int64) (interface{}, error) {
	return s.FindWithPagination(ctx, bson.M{"published": true}, page, limit, nil)
}
