package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewUser(t *testing.T) {
	// Setup
	strongPassword := "correct-horse-battery-staple"

	t.Run("valid configuration", func(t *testing.T) {
		id := uuid.New()
		user, err := NewUser(UserConfig{
			ID:            id,
			Username:      "maze_runner_7",
			PlainPassword: strongPassword,
		})
		assert.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "maze_runner_7", user.Username)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NotEqual(t, strongPassword, user.PasswordHash)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("username too short", func(t *testing.T) {
		_, err := NewUser(UserConfig{
			ID:            uuid.New(),
			Username:      "ab",
			PlainPassword: strongPassword,
		})
		assert.Error(t, err)
	})

	t.Run("username too long", func(t *testing.T) {
		_, err := NewUser(UserConfig{
			ID:            uuid.New(),
			Username:      "abcdefghijklmnopqrstu",
			PlainPassword: strongPassword,
		})
		assert.Error(t, err)
	})

	t.Run("username with invalid characters", func(t *testing.T) {
		_, err := NewUser(UserConfig{
			ID:            uuid.New(),
			Username:      "maze runner!",
			PlainPassword: strongPassword,
		})
		assert.Error(t, err)
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := NewUser(UserConfig{
			ID:            uuid.New(),
			Username:      "maze_runner_7",
			PlainPassword: "password",
		})
		assert.Error(t, err)
	})

	t.Run("verify password round trip", func(t *testing.T) {
		user, err := NewUser(UserConfig{
			ID:            uuid.New(),
			Username:      "maze_runner_7",
			PlainPassword: strongPassword,
		})
		assert.NoError(t, err)
		assert.True(t, user.VerifyPassword(strongPassword))
		assert.False(t, user.VerifyPassword("wrong-password"))
	})
}
