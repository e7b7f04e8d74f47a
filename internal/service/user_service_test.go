package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "orphancare/internal/errors"
	"orphancare/internal/model"
)

// fakeUserCache is an in-memory stand-in for the redis-backed cache.
type fakeUserCache struct {
	store map[string][]byte
}

func newFakeUserCache() *fakeUserCache {
	return &fakeUserCache{store: map[string][]byte{}}
}

func (c *fakeUserCache) Get(ctx context.Context, key string) ([]byte, error) {
	return c.store[key], nil
}

func (c *fakeUserCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.store[key] = value
	return nil
}

func (c *fakeUserCache) Delete(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

func TestGetUser(t *testing.T) {
	userID := uuid.New()
	code := "123456"
	user := &model.User{
		ID:               userID,
		FirstName:        "Jane",
		LastName:         "Doe",
		Email:            "jane@x.com",
		PasswordHash:     "$2a$10$not-a-real-hash",
		Role:             model.RoleStaff,
		IsVerified:       true,
		VerificationCode: &code,
	}

	t.Run("caches the profile projection only", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(user, nil).Once()
		cache := newFakeUserCache()

		svc := NewUserService(mockRepo, cache)

		profile, err := svc.GetUser(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, "Jane", profile.FirstName)
		assert.Equal(t, model.RoleStaff, profile.Role)
		assert.True(t, profile.IsVerified)

		// Credentials and transient codes never enter the cache.
		payload := cache.store["user:"+userID.String()]
		require.NotNil(t, payload)
		assert.NotContains(t, string(payload), user.PasswordHash)
		assert.NotContains(t, string(payload), code)

		// A cache hit returns the same complete profile without touching
		// the repository again.
		again, err := svc.GetUser(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, profile.ID, again.ID)
		assert.Equal(t, profile.Email, again.Email)
		assert.Equal(t, profile.Role, again.Role)
		assert.Equal(t, profile.IsVerified, again.IsVerified)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown id", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(mockRepo, newFakeUserCache())
		_, err := svc.GetUser(context.Background(), userID)
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestUpdateUserInvalidatesCache(t *testing.T) {
	userID := uuid.New()
	user := &model.User{ID: userID, FirstName: "Jane", LastName: "Doe", Email: "jane@x.com", Role: model.RoleStaff}

	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, userID).Return(user, nil)
	mockRepo.On("Update", mock.Anything, user).Return(nil)
	cache := newFakeUserCache()

	svc := NewUserService(mockRepo, cache)

	_, err := svc.GetUser(context.Background(), userID)
	require.NoError(t, err)
	require.Contains(t, cache.store, "user:"+userID.String())

	updated, err := svc.UpdateUser(context.Background(), userID, "", "", "", model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, updated.Role)
	assert.NotContains(t, cache.store, "user:"+userID.String())
}
