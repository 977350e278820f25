package contentsvc

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "viet_commerce/internal/api/content/models"
	basesvc "viet_commerce/internal/api/base/service"
	"viet_commerce/internal/common"
	"viet_commerce/internal/global"
	"viet_commerce/internal/storage"
)

// FileService quản lý file upload: nội dung nằm trong object storage, metadata
// nằm trong collection files.
type FileService struct {
	*basesvc.BaseServiceMongoImpl[models.File]
	storage  storage.ObjectStorage
	maxBytes int64
}

// NewFileService tạo mới FileService trên backend storage đã cho.
func NewFileService(store storage.ObjectStorage, maxBytes int64) (*FileService, error) {
	collection, exist := global.RegistryCollections.Get(global.ColNames.Files)
	if !exist {
		return nil, fmt.Errorf("failed to get files collection: %v", common.ErrNotFound)
	}
	return &FileService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.File](collection),
		storage:              store,
		maxBytes:             maxBytes,
	}, nil
}

// Upload ghi nội dung vào storage dưới tên ngẫu nhiên giữ lại phần mở rộng,
// rồi lưu metadata. Vượt kích thước cho phép trả lỗi nghiệp vụ 400.
func (s *FileService) Upload(ctx context.Context, ownerID primitive.ObjectID, name, contentType string, size int64, reader io.Reader) (models.File, error) {
	var zero models.File

	if s.maxBytes > 0 && size > s.maxBytes {
		return zero, common.NewError(
			common.ErrCodeValidationInput,
			common.Msg(
				fmt.Sprintf("File exceeds the %d byte limit", s.maxBytes),
				fmt.Sprintf("File vượt quá giới hạn %d byte", s.maxBytes),
			),
			common.StatusBadRequest,
			nil,
		)
	}

	key := uuid.NewString() + filepath.Ext(name)
	written, err := s.storage.Put(ctx, key, reader)
	if err != nil {
		return zero, err
	}

	file, err := s.InsertOne(ctx, models.File{
		UserID:      ownerID,
		Key:         key,
		Name:        name,
		ContentType: contentType,
		Size:        written,
	})
	if err != nil {
		// Metadata không ghi được thì dọn luôn object vừa ghi
		if cleanupErr := s.storage.Delete(ctx, key); cleanupErr != nil {
			logrus.WithError(cleanupErr).WithField("key", key).Warn("⚠️ [FILE] Không dọn được object sau khi ghi metadata thất bại")
		}
		return zero, err
	}
	return file, nil
}

// Open mở nội dung file theo id metadata. Caller chịu trách nhiệm Close.
func (s *FileService) Open(ctx context.Context, fileID primitive.ObjectID) (models.File, io.ReadCloser, error) {
	var zero models.File

	file, err := s.FindOneById(ctx, fileID)
	if err != nil {
		return zero, nil, err
	}
	reader, err := s.storage.Get(ctx, file.Key)
	if err != nil {
		return zero, nil, common.ErrNotFound
	}
	return file, reader, nil
}

// Delete xóa metadata rồi xóa object trong storage.
func (s *FileService) Delete(ctx context.Context, fileID primitive.ObjectID) error {
	file, err := s.FindOneById(ctx, fileID)
	if err != nil {
		return err
	}
	if err := s.DeleteById(ctx, fileID); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, file.Key); err != nil {
		logrus.WithError(err).WithField("key", file.Key).Warn("⚠️ [FILE] Không xóa được object trong storage")
	}
	return nil
}
