package global

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type xssInput struct {
	Content string `validate:"no_xss"`
}

type passwordInput struct {
	Password string `validate:"strong_password"`
}

type idInput struct {
	RefID string `validate:"object_id"`
}

type phoneInput struct {
	Phone string `validate:"vn_phone"`
}

// TestValidateNoXSS: text chứa pattern nguy hiểm phải bị chặn, text thường
// đi qua bình thường.
func TestValidateNoXSS(t *testing.T) {
	InitValidator()

	assert.NoError(t, Validate.Struct(xssInput{Content: "Áo thun cotton 100%"}))
	assert.NoError(t, Validate.Struct(xssInput{Content: "giá < 500k > 100k"}))

	bad := []string{
		`<script>alert(1)</script>`,
		`<SCRIPT src=x>`,
		`javascript:void(0)`,
		`<img onerror=alert(1)>`,
		`<iframe src=x>`,
	}
	for _, content := range bad {
		assert.Error(t, Validate.Struct(xssInput{Content: content}), "phải chặn %q", content)
	}
}

// TestValidateStrongPassword: đạt ít nhất 3 trong 4 nhóm ký tự và tối thiểu
// 8 ký tự.
func TestValidateStrongPassword(t *testing.T) {
	InitValidator()

	assert.NoError(t, Validate.Struct(passwordInput{Password: "Abcdef12"}))
	assert.NoError(t, Validate.Struct(passwordInput{Password: "abcdef1!"}))

	assert.Error(t, Validate.Struct(passwordInput{Password: "Ab1!"}), "quá ngắn")
	assert.Error(t, Validate.Struct(passwordInput{Password: "abcdefgh"}), "chỉ một nhóm ký tự")
	assert.Error(t, Validate.Struct(passwordInput{Password: "abcdefg1"}), "chỉ hai nhóm ký tự")
}

// TestValidateObjectID: hex 24 ký tự hợp lệ, chuỗi rỗng pass để kết hợp
// với omitempty.
func TestValidateObjectID(t *testing.T) {
	InitValidator()

	assert.NoError(t, Validate.Struct(idInput{RefID: primitive.NewObjectID().Hex()}))
	assert.NoError(t, Validate.Struct(idInput{RefID: ""}))
	assert.Error(t, Validate.Struct(idInput{RefID: "xyz"}))
	assert.Error(t, Validate.Struct(idInput{RefID: "123"}))
}

// TestValidateVNPhone: số điện thoại 10 số đầu 0.
func TestValidateVNPhone(t *testing.T) {
	InitValidator()

	assert.NoError(t, Validate.Struct(phoneInput{Phone: "0912345678"}))
	assert.NoError(t, Validate.Struct(phoneInput{Phone: ""}))
	assert.Error(t, Validate.Struct(phoneInput{Phone: "0123"}))
	assert.Error(t, Validate.Struct(phoneInput{Phone: "8412345678"}))
	assert.Error(t, Validate.Struct(phoneInput{Phone: "09123456789"}))
}
