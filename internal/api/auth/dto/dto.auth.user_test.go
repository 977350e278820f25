package authdto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"viet_commerce/internal/utility"
)

// TestUserUpdateProfileInputToMap: DTO tự cập nhật hồ sơ phải chuyển được
// thành map update theo bson tag, field rỗng không được đưa vào map để
// update là partial.
func TestUserUpdateProfileInputToMap(t *testing.T) {
	input := UserUpdateProfileInput{
		Name:  "Nguyễn Văn A",
		Phone: "0912345678",
	}

	data, err := utility.ToMap(&input)
	require.NoError(t, err)

	assert.Equal(t, "Nguyễn Văn A", data["name"])
	assert.Equal(t, "0912345678", data["phone"])
	_, hasAvatar := data["avatarUrl"]
	assert.False(t, hasAvatar, "field rỗng không được ghi đè giá trị đang có")
	_, hasID := data["_id"]
	assert.False(t, hasID)
}
