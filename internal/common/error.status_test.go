package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEntityErrorSatisfiesError: *EntityError phải dùng được như một error
// thường, đi qua errors.As và giữ nguyên map field.
func TestEntityErrorSatisfiesError(t *testing.T) {
	fields := map[string]Message{
		"email": Msg("email must be a valid email address", "email phải là địa chỉ email hợp lệ"),
	}
	var err error = NewEntityError(fields)

	assert.Equal(t, MsgValidationError.En, err.Error())

	wrapped := fmt.Errorf("request failed: %w", err)
	var entityErr *EntityError
	require.True(t, errors.As(wrapped, &entityErr), "errors.As phải tìm thấy *EntityError qua wrap")
	assert.Equal(t, StatusUnprocessableEntity, entityErr.StatusCode)
	assert.Equal(t, ErrCodeValidationEntity, entityErr.Code)
	assert.Equal(t, fields, entityErr.Fields)
}

// TestErrorIs: hai *Error cùng mã và message là một, khác message thì không.
func TestErrorIs(t *testing.T) {
	assert.True(t, errors.Is(fmt.Errorf("ctx: %w", ErrNotFound), ErrNotFound))
	assert.False(t, errors.Is(ErrNotFound, ErrDuplicate))
}
