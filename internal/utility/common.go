// Package utility chứa các hàm tiện ích dùng chung: chuyển đổi dữ liệu,
// ObjectID, timestamp, mật khẩu.
package utility

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// CurrentTimeInMilli trả về timestamp hiện tại tính bằng mili giây.
// Các field createdAt/updatedAt trong models đều dùng đơn vị này.
func CurrentTimeInMilli() int64 {
	return time.Now().UnixMilli()
}

// String2ObjectID chuyển chuỗi hex sang ObjectID. Chuỗi không hợp lệ trả về
// NilObjectID; caller cần validate trước bằng primitive.IsValidObjectID.
func String2ObjectID(s string) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID
	}
	return id
}

// ToMap chuyển một struct (có bson tag) thành map[string]interface{} thông qua
// BSON marshal/unmarshal, dùng khi build update document cho MongoDB.
func ToMap(data interface{}) (map[string]interface{}, error) {
	raw, err := bson.Marshal(data)
	if err != nil {
		return nil, err
	}
	var result map[string]interface{}
	if err := bson.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	// _id để driver tự sinh khi insert, không đưa zero value vào document
	if id, ok := result["_id"]; ok {
		if oid, isOid := id.(primitive.ObjectID); isOid && oid.IsZero() {
			delete(result, "_id")
		}
	}
	return result, nil
}

// Contains kiểm tra một phần tử có nằm trong slice hay không.
func Contains[T comparable](items []T, target T) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

// P2Int64 parse chuỗi sang int64, chuỗi không hợp lệ trả về 0.
func P2Int64(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// HashPassword băm mật khẩu bằng bcrypt với cost mặc định.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword so sánh mật khẩu thô với hash đã lưu.
func ComparePassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
