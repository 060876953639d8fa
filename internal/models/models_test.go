package models

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserFullName(t *testing.T) {
	user := &User{FirstName: "Jane", LastName: "Doe"}
	assert.Equal(t, "Jane Doe", user.FullName())
}

func TestPostFriendlyDate(t *testing.T) {
	post := &Post{CreatedAt: time.Date(2024, 1, 5, 15, 4, 0, 0, time.UTC)}
	assert.Equal(t, "Fri Jan 5 2024, 3:04 PM", post.FriendlyDate())
}

func TestAppError(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		err := NewNotFoundError("User", 42)
		assert.Equal(t, "NOT_FOUND", err.Code)
		assert.Equal(t, "User with ID 42 not found", err.Error())
		assert.True(t, IsNotFound(err))
	})

	t.Run("wrapped not found", func(t *testing.T) {
		err := fmt.Errorf("loading page: %w", NewNotFoundError("Post", 7))
		assert.True(t, IsNotFound(err))
	})

	t.Run("internal wraps cause", func(t *testing.T) {
		cause := errors.New("disk full")
		err := NewInternalError(cause)
		assert.False(t, IsNotFound(err))
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "disk full")
	})
}
