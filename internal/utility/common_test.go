package utility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestString2ObjectID: hex hợp lệ round-trip, chuỗi rác trả về NilObjectID.
func TestString2ObjectID(t *testing.T) {
	id := primitive.NewObjectID()
	assert.Equal(t, id, String2ObjectID(id.Hex()))
	assert.Equal(t, primitive.NilObjectID, String2ObjectID("not-a-hex"))
	assert.Equal(t, primitive.NilObjectID, String2ObjectID(""))
}

// TestToMapDropsZeroID: _id zero phải bị loại khỏi map để driver tự sinh,
// _id có sẵn phải được giữ nguyên.
func TestToMapDropsZeroID(t *testing.T) {
	type doc struct {
		ID   primitive.ObjectID `bson:"_id,omitempty"`
		Name string             `bson:"name"`
	}

	m, err := ToMap(doc{Name: "áo thun"})
	require.NoError(t, err)
	_, hasID := m["_id"]
	assert.False(t, hasID, "_id zero không được đưa vào document")
	assert.Equal(t, "áo thun", m["name"])

	id := primitive.NewObjectID()
	m, err = ToMap(doc{ID: id, Name: "áo thun"})
	require.NoError(t, err)
	assert.Equal(t, id, m["_id"])
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"a", "b"}, "b"))
	assert.False(t, Contains([]string{"a", "b"}, "c"))
	assert.False(t, Contains([]int{}, 1))
}

func TestP2Int64(t *testing.T) {
	assert.Equal(t, int64(42), P2Int64("42"))
	assert.Equal(t, int64(-7), P2Int64("-7"))
	assert.Equal(t, int64(0), P2Int64("abc"))
	assert.Equal(t, int64(0), P2Int64(""))
}

// TestHashAndComparePassword: hash phải verify được với đúng mật khẩu và
// từ chối mật khẩu sai.
func TestHashAndComparePassword(t *testing.T) {
	hashed, err := HashPassword("S3cret!pass")
	require.NoError(t, err)
	assert.NotEqual(t, "S3cret!pass", hashed)
	assert.True(t, ComparePassword(hashed, "S3cret!pass"))
	assert.False(t, ComparePassword(hashed, "wrong"))
}
