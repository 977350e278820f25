// Package storage trừu tượng hóa nơi lưu file upload. Hệ thống chỉ cần
// put/get/delete theo key, backend cụ thể (đĩa cục bộ, object storage) là
// chi tiết triển khai.
package storage

import (
	"context"
	"io"
)

// ObjectStorage là collaborator lưu trữ file.
type ObjectStorage interface {
	// Put ghi nội dung reader dưới key, trả về kích thước đã ghi.
	Put(ctx context.Context, key string, reader io.Reader) (int64, error)
	// Get mở nội dung của key. Caller chịu trách nhiệm Close.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete xóa key. Key không tồn tại không phải lỗi.
	Delete(ctx context.Context, key string) error
}
