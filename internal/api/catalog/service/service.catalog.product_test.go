package catalogsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestStockAdjustFilter: trừ kho phải mang điều kiện đủ hàng ngay trong
// filter để lệnh $inc là atomic; cộng kho thì không có điều kiện.
func TestStockAdjustFilter(t *testing.T) {
	id := primitive.NewObjectID()

	filter := stockAdjustFilter(id, -3)
	assert.Equal(t, id, filter["_id"])
	assert.Equal(t, bson.M{"$gte": int64(3)}, filter["stock"],
		"trừ 3 phải yêu cầu stock >= 3 trong cùng lệnh update")

	filter = stockAdjustFilter(id, 5)
	assert.Equal(t, id, filter["_id"])
	_, hasGuard := filter["stock"]
	assert.False(t, hasGuard, "cộng kho không cần điều kiện tồn kho")

	filter = stockAdjustFilter(id, 0)
	_, hasGuard = filter["stock"]
	assert.False(t, hasGuard)
}
