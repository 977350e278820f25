package contentsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSlugify: title tiếng Anh lẫn ký tự đặc biệt phải ra slug url-safe,
// không bắt đầu hay kết thúc bằng dấu gạch.
func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Summer Sale 2026!  ", "summer-sale-2026"},
		{"Go/Fiber & MongoDB", "go-fiber-mongodb"},
		{"---already---dashed---", "already-dashed"},
		{"UPPER lower 123", "upper-lower-123"},
		{"", ""},
		{"!!!", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Slugify(c.title), "Slugify(%q)", c.title)
	}
}
