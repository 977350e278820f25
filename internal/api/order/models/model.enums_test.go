package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestOrderStatusString: mỗi trạng thái map đúng sang nhãn, giá trị ngoài
// dải trả về unknown.
func TestOrderStatusString(t *testing.T) {
	cases := []struct {
		status OrderStatus
		want   string
	}{
		{OrderStatusPending, "pending"},
		{OrderStatusConfirmed, "confirmed"},
		{OrderStatusShipping, "shipping"},
		{OrderStatusCompleted, "completed"},
		{OrderStatusCancelled, "cancelled"},
		{OrderStatus(99), "unknown"},
		{OrderStatus(-1), "unknown"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.status.String())
	}
}

// TestOrderStatusIsValid: chỉ các giá trị trong dải khai báo là hợp lệ.
func TestOrderStatusIsValid(t *testing.T) {
	for s := OrderStatusPending; s <= OrderStatusCancelled; s++ {
		assert.True(t, s.IsValid(), "trạng thái %v phải hợp lệ", s)
	}
	assert.False(t, OrderStatus(-1).IsValid())
	assert.False(t, OrderStatus(5).IsValid())
}

// TestOrderStatusIsTerminal: completed và cancelled là trạng thái cuối,
// các trạng thái còn lại vẫn được phép chuyển tiếp.
func TestOrderStatusIsTerminal(t *testing.T) {
	assert.True(t, OrderStatusCompleted.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusConfirmed.IsTerminal())
	assert.False(t, OrderStatusShipping.IsTerminal())
}
