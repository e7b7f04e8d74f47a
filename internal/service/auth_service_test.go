package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"orphancare/internal/auth"
	apperrors "orphancare/internal/errors"
	"orphancare/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByResetToken(ctx context.Context, email, tokenHash string, now time.Time) (*model.User, error) {
	args := m.Called(ctx, email, tokenHash, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMailer is a mock implementation of mail.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(to, subject, textBody, htmlBody string) error {
	args := m.Called(to, subject, textBody, htmlBody)
	return args.Error(0)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

// stubLimiter reports a fixed send count. Zero behaves like an absent
// redis, which fails open.
type stubLimiter struct {
	count int64
}

func (l *stubLimiter) IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	return l.count, nil
}

func newAuthService(repo *MockUserRepository, mailer *MockMailer) AuthService {
	return newAuthServiceWithLimiter(repo, mailer, &stubLimiter{})
}

func newAuthServiceWithLimiter(repo *MockUserRepository, mailer *MockMailer, limiter codeEmailLimiter) AuthService {
	jwtService := auth.NewJWTService("test-secret")
	return NewAuthService(repo, jwtService, mailer, limiter, "http://localhost:5173")
}

var codePattern = regexp.MustCompile(`\b(\d{6})\b`)

func TestSignUp(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		setupMock     func(repo *MockUserRepository)
		expectedError error
	}{
		{
			name:  "success",
			email: "jane@x.com",
			setupMock: func(repo *MockUserRepository) {
				repo.On("FindByEmail", mock.Anything, "jane@x.com").Return(nil, gorm.ErrRecordNotFound)
				repo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "duplicate email",
			email: "taken@x.com",
			setupMock: func(repo *MockUserRepository) {
				repo.On("FindByEmail", mock.Anything, "taken@x.com").Return(&model.User{Email: "taken@x.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockMailer := new(MockMailer)
			tt.setupMock(mockRepo)

			service := newAuthService(mockRepo, mockMailer)
			user, err := service.SignUp(context.Background(), "Jane", "Doe", tt.email, "pw123456")

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
				mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, "Jane", user.FirstName)
				assert.Equal(t, model.RoleStaff, user.Role)
				assert.False(t, user.IsVerified)
				assert.NotEqual(t, "pw123456", user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw123456")))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestLoginStoresCodeBeforeEmail(t *testing.T) {
	userID := uuid.New()
	user := &model.User{
		ID:           userID,
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        "jane@x.com",
		PasswordHash: hashPassword(t, "pw123"),
		Role:         model.RoleStaff,
	}

	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)

	var events []string
	mockRepo.On("FindByEmail", mock.Anything, "jane@x.com").Return(user, nil)
	mockRepo.On("Update", mock.Anything, user).Run(func(args mock.Arguments) {
		events = append(events, "store")
	}).Return(nil)
	mockMailer.On("Send", "jane@x.com", "Login Verification Code", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		events = append(events, "email")
	}).Return(nil)

	service := newAuthService(mockRepo, mockMailer)
	gotID, err := service.Login(context.Background(), "jane@x.com", "pw123")

	assert.NoError(t, err)
	assert.Equal(t, userID, gotID)

	// The code is persisted before the email is attempted.
	assert.Equal(t, []string{"store", "email"}, events)

	// A fresh 6-digit code in the permitted range is stored and mailed.
	assert.NotNil(t, user.VerificationCode)
	assert.Regexp(t, `^\d{6}$`, *user.VerificationCode)
	assert.GreaterOrEqual(t, *user.VerificationCode, "100000")

	textBody := mockMailer.Calls[0].Arguments.String(2)
	assert.Contains(t, textBody, *user.VerificationCode)

	mockRepo.AssertExpectations(t)
	mockMailer.AssertExpectations(t)
}

func TestLoginEmailFailureIsNonFatal(t *testing.T) {
	user := &model.User{
		ID:           uuid.New(),
		Email:        "jane@x.com",
		PasswordHash: hashPassword(t, "pw123"),
		Role:         model.RoleStaff,
	}

	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)
	mockRepo.On("FindByEmail", mock.Anything, "jane@x.com").Return(user, nil)
	mockRepo.On("Update", mock.Anything, user).Return(nil)
	mockMailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	service := newAuthService(mockRepo, mockMailer)
	gotID, err := service.Login(context.Background(), "jane@x.com", "pw123")

	// The code is already stored; email is best-effort.
	assert.NoError(t, err)
	assert.Equal(t, user.ID, gotID)
	assert.NotNil(t, user.VerificationCode)
}

func TestLoginOverEmailLimitStillPendsVerification(t *testing.T) {
	user := &model.User{
		ID:           uuid.New(),
		Email:        "jane@x.com",
		PasswordHash: hashPassword(t, "pw123"),
		Role:         model.RoleStaff,
	}

	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)
	mockRepo.On("FindByEmail", mock.Anything, "jane@x.com").Return(user, nil)
	mockRepo.On("Update", mock.Anything, user).Return(nil)

	service := newAuthServiceWithLimiter(mockRepo, mockMailer, &stubLimiter{count: maxCodeEmails + 1})
	gotID, err := service.Login(context.Background(), "jane@x.com", "pw123")

	// Exceeding the email limit suppresses the email only. The login
	// outcome and the stored code are unchanged.
	assert.NoError(t, err)
	assert.Equal(t, user.ID, gotID)
	assert.NotNil(t, user.VerificationCode)
	assert.Regexp(t, `^\d{6}$`, *user.VerificationCode)
	mockMailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestLoginFailures(t *testing.T) {
	staleCode := "111111"

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(repo *MockUserRepository) *model.User
		expectedError error
	}{
		{
			name:     "user not found",
			email:    "ghost@x.com",
			password: "pw123",
			setupMock: func(repo *MockUserRepository) *model.User {
				repo.On("FindByEmail", mock.Anything, "ghost@x.com").Return(nil, gorm.ErrRecordNotFound)
				return nil
			},
			expectedError: apperrors.ErrUserNotFound,
		},
		{
			name:     "wrong password",
			email:    "jane@x.com",
			password: "wrong",
			setupMock: func(repo *MockUserRepository) *model.User {
				user := &model.User{
					ID:               uuid.New(),
					Email:            "jane@x.com",
					PasswordHash:     hashPassword(t, "pw123"),
					VerificationCode: &staleCode,
				}
				repo.On("FindByEmail", mock.Anything, "jane@x.com").Return(user, nil)
				return user
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockMailer := new(MockMailer)
			user := tt.setupMock(mockRepo)

			service := newAuthService(mockRepo, mockMailer)
			gotID, err := service.Login(context.Background(), tt.email, tt.password)

			assert.Error(t, err)
			assert.Equal(t, tt.expectedError, err)
			assert.Equal(t, uuid.Nil, gotID)

			// A failed login never mutates the stored verification code.
			mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			mockMailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			if user != nil && user.VerificationCode != nil {
				assert.Equal(t, staleCode, *user.VerificationCode)
			}
		})
	}
}

func TestVerifyCode(t *testing.T) {
	userID := uuid.New()
	code := "123456"

	t.Run("user not found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		service := newAuthService(mockRepo, new(MockMailer))
		token, user, err := service.VerifyCode(context.Background(), userID, code)

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		assert.Empty(t, token)
		assert.Nil(t, user)
	})

	t.Run("wrong code keeps stored code", func(t *testing.T) {
		stored := "654321"
		user := &model.User{ID: userID, Email: "jane@x.com", Role: model.RoleStaff, VerificationCode: &stored}

		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(user, nil)

		service := newAuthService(mockRepo, new(MockMailer))
		token, _, err := service.VerifyCode(context.Background(), userID, code)

		assert.ErrorIs(t, err, apperrors.ErrInvalidCode)
		assert.Empty(t, token)
		// The stored code survives failed attempts so the user can retry.
		assert.NotNil(t, user.VerificationCode)
		assert.Equal(t, stored, *user.VerificationCode)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("no pending code", func(t *testing.T) {
		user := &model.User{ID: userID, Email: "jane@x.com", Role: model.RoleStaff}

		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(user, nil)

		service := newAuthService(mockRepo, new(MockMailer))
		_, _, err := service.VerifyCode(context.Background(), userID, code)

		assert.ErrorIs(t, err, apperrors.ErrInvalidCode)
	})

	t.Run("success clears code and issues token", func(t *testing.T) {
		stored := code
		user := &model.User{
			ID:               userID,
			FirstName:        "Jane",
			LastName:         "Doe",
			Email:            "jane@x.com",
			Role:             model.RoleAdmin,
			VerificationCode: &stored,
		}

		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(user, nil)
		mockRepo.On("Update", mock.Anything, user).Run(func(args mock.Arguments) {
			// Code is cleared and the user marked verified before the
			// session token is issued.
			u := args.Get(1).(*model.User)
			assert.Nil(t, u.VerificationCode)
			assert.True(t, u.IsVerified)
		}).Return(nil)

		service := newAuthService(mockRepo, new(MockMailer))
		token, got, err := service.VerifyCode(context.Background(), userID, code)

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, user, got)

		claims, err := auth.NewJWTService("test-secret").ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "jane@x.com", claims.Email)
		assert.Equal(t, model.RoleAdmin, claims.Role)

		mockRepo.AssertExpectations(t)
	})
}

func TestLoginVerifyRoundTrip(t *testing.T) {
	userID := uuid.New()
	user := &model.User{
		ID:           userID,
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        "jane@x.com",
		PasswordHash: hashPassword(t, "pw123"),
		Role:         model.RoleStaff,
	}

	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)
	mockRepo.On("FindByEmail", mock.Anything, "jane@x.com").Return(user, nil)
	mockRepo.On("FindByID", mock.Anything, userID).Return(user, nil)
	mockRepo.On("Update", mock.Anything, user).Return(nil)

	var mailedCode string
	mockMailer.On("Send", "jane@x.com", "Login Verification Code", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		if m := codePattern.FindStringSubmatch(args.String(2)); m != nil {
			mailedCode = m[1]
		}
	}).Return(nil)

	service := newAuthService(mockRepo, mockMailer)

	gotID, err := service.Login(context.Background(), "jane@x.com", "pw123")
	assert.NoError(t, err)
	assert.Equal(t, userID, gotID)
	assert.NotEmpty(t, mailedCode)

	// Wrong code fails and leaves the stored code intact.
	_, _, err = service.VerifyCode(context.Background(), userID, "000000")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCode)
	assert.NotNil(t, user.VerificationCode)

	// The mailed code succeeds exactly once.
	token, verified, err := service.VerifyCode(context.Background(), userID, mailedCode)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, verified.IsVerified)
	assert.Nil(t, verified.VerificationCode)

	// Replaying the consumed code fails.
	_, _, err = service.VerifyCode(context.Background(), userID, mailedCode)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCode)
}

func TestForgotPassword(t *testing.T) {
	t.Run("unknown email acknowledges without side effects", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockMailer := new(MockMailer)
		mockRepo.On("FindByEmail", mock.Anything, "ghost@x.com").Return(nil, gorm.ErrRecordNotFound)

		service := newAuthService(mockRepo, mockMailer)
		err := service.ForgotPassword(context.Background(), "ghost@x.com")

		assert.NoError(t, err)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		mockMailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("known email stores hashed token and mails plaintext", func(t *testing.T) {
		user := &model.User{ID: uuid.New(), Email: "jane@x.com", Role: model.RoleStaff}

		mockRepo := new(MockUserRepository)
		mockMailer := new(MockMailer)
		mockRepo.On("FindByEmail", mock.Anything, "jane@x.com").Return(user, nil)
		mockRepo.On("Update", mock.Anything, user).Return(nil)

		var mailedText string
		mockMailer.On("Send", "jane@x.com", "Password Reset Request", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			mailedText = args.String(2)
		}).Return(nil)

		service := newAuthService(mockRepo, mockMailer)
		before := time.Now()
		err := service.ForgotPassword(context.Background(), "jane@x.com")
		assert.NoError(t, err)

		assert.NotNil(t, user.ResetPasswordToken)
		assert.NotNil(t, user.ResetPasswordExpires)

		// One hour expiry window.
		assert.WithinDuration(t, before.Add(time.Hour), *user.ResetPasswordExpires, 5*time.Second)

		// The mailed link carries the plaintext token; only its SHA-256 is stored.
		tokenPattern := regexp.MustCompile(`token=([0-9a-f]{64})`)
		m := tokenPattern.FindStringSubmatch(mailedText)
		assert.NotNil(t, m)
		sum := sha256.Sum256([]byte(m[1]))
		assert.Equal(t, hex.EncodeToString(sum[:]), *user.ResetPasswordToken)
		assert.NotEqual(t, m[1], *user.ResetPasswordToken)
		assert.Contains(t, mailedText, "email=jane@x.com")

		mockRepo.AssertExpectations(t)
		mockMailer.AssertExpectations(t)
	})

	t.Run("send failure still acknowledges", func(t *testing.T) {
		user := &model.User{ID: uuid.New(), Email: "jane@x.com"}

		mockRepo := new(MockUserRepository)
		mockMailer := new(MockMailer)
		mockRepo.On("FindByEmail", mock.Anything, "jane@x.com").Return(user, nil)
		mockRepo.On("Update", mock.Anything, user).Return(nil)
		mockMailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

		service := newAuthService(mockRepo, mockMailer)
		assert.NoError(t, service.ForgotPassword(context.Background(), "jane@x.com"))
	})
}

func TestResetPassword(t *testing.T) {
	token := "a3f1" + hex.EncodeToString(make([]byte, 30))
	sum := sha256.Sum256([]byte(token))
	tokenHash := hex.EncodeToString(sum[:])

	t.Run("wrong or expired token", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByResetToken", mock.Anything, "jane@x.com", tokenHash, mock.AnythingOfType("time.Time")).
			Return(nil, gorm.ErrRecordNotFound)

		service := newAuthService(mockRepo, new(MockMailer))
		err := service.ResetPassword(context.Background(), "jane@x.com", token, "newpw123")

		// Wrong and expired tokens are indistinguishable.
		assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)
	})

	t.Run("success replaces password and clears token", func(t *testing.T) {
		oldHash := hashPassword(t, "pw123")
		expires := time.Now().Add(30 * time.Minute)
		user := &model.User{
			ID:                   uuid.New(),
			Email:                "jane@x.com",
			PasswordHash:         oldHash,
			ResetPasswordToken:   &tokenHash,
			ResetPasswordExpires: &expires,
		}

		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByResetToken", mock.Anything, "jane@x.com", tokenHash, mock.AnythingOfType("time.Time")).
			Return(user, nil)
		mockRepo.On("Update", mock.Anything, user).Return(nil)

		service := newAuthService(mockRepo, new(MockMailer))
		err := service.ResetPassword(context.Background(), "jane@x.com", token, "newpw123")

		assert.NoError(t, err)
		assert.NotEqual(t, oldHash, user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpw123")))
		assert.Error(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw123")))
		assert.Nil(t, user.ResetPasswordToken)
		assert.Nil(t, user.ResetPasswordExpires)

		mockRepo.AssertExpectations(t)
	})
}
