package basesvc

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseRelationshipTag: tag nhiều quan hệ ngăn cách bởi "|" phải được
// tách đúng, quan hệ thiếu collection/field bị bỏ qua, message mặc định
// được sinh khi không khai báo.
func TestParseRelationshipTag(t *testing.T) {
	type product struct {
		Name           string `bson:"name"`
		_Relationships any    `relationship:"collection:reviews,field:productId,cascade:true|collection:cart_items,field:productId,msg:Sản phẩm đang nằm trong giỏ hàng|field:orphan"`
	}

	rels := ParseRelationshipTag(reflect.TypeOf(product{}))
	require.Len(t, rels, 2, "quan hệ thiếu collection phải bị bỏ qua")

	assert.Equal(t, "reviews", rels[0].CollectionName)
	assert.Equal(t, "productId", rels[0].FieldName)
	assert.True(t, rels[0].Cascade)
	assert.Contains(t, rels[0].ErrorMessage, "reviews", "message mặc định phải nêu tên collection")

	assert.Equal(t, "cart_items", rels[1].CollectionName)
	assert.Equal(t, "Sản phẩm đang nằm trong giỏ hàng", rels[1].ErrorMessage)
	assert.False(t, rels[1].Cascade)
}
