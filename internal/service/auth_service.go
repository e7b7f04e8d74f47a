package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"orphancare/internal/auth"
	apperrors "orphancare/internal/errors"
	"orphancare/internal/mail"
	"orphancare/internal/model"
	"orphancare/internal/repository"
)

const bcryptCost = 10

const (
	// resetTokenTTL is how long a password reset link stays valid.
	resetTokenTTL = time.Hour

	// Verification code emails are throttled per user. The limiter only
	// suppresses the email; the login outcome is never affected, and it
	// fails open when redis is unavailable.
	codeEmailWindow = 15 * time.Minute
	maxCodeEmails   = 5
)

// codeEmailLimiter counts verification code emails per user inside a
// rolling window. *cache.Client satisfies it.
type codeEmailLimiter interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// AuthService orchestrates signup, login with email verification, and
// password reset.
type AuthService interface {
	SignUp(ctx context.Context, firstName, lastName, email, password string) (*model.User, error)
	// Login checks the password and emails a one-time code. It never
	// returns a session token; the caller must complete VerifyCode.
	Login(ctx context.Context, email, password string) (uuid.UUID, error)
	VerifyCode(ctx context.Context, userID uuid.UUID, code string) (token string, user *model.User, err error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, token, newPassword string) error
}

type authService struct {
	users          repository.UserRepository
	jwtService     *auth.JWTService
	mailer         mail.Mailer
	limiter        codeEmailLimiter
	frontendOrigin string
}

// NewAuthService creates a new authentication service. The mailer is an
// injected capability; dispatch failures never fail the calling workflow.
func NewAuthService(
	users repository.UserRepository,
	jwtService *auth.JWTService,
	mailer mail.Mailer,
	limiter codeEmailLimiter,
	frontendOrigin string,
) AuthService {
	return &authService{
		users:          users,
		jwtService:     jwtService,
		mailer:         mailer,
		limiter:        limiter,
		frontendOrigin: frontendOrigin,
	}
}

// SignUp creates a new unverified user with a hashed password.
func (s *authService) SignUp(ctx context.Context, firstName, lastName, email, password string) (*model.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         model.RoleStaff,
		IsVerified:   false,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies the password, stores a fresh 6-digit code on the user
// record and emails it. The code is persisted before the email is
// attempted so a verify call can never race ahead of a stored code.
func (s *authService) Login(ctx context.Context, email, password string) (uuid.UUID, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, apperrors.ErrUserNotFound
		}
		return uuid.Nil, fmt.Errorf("find user: %w", err)
	}

	// bcrypt comparison is constant-time; a mismatch must not touch the
	// stored verification code.
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return uuid.Nil, apperrors.ErrInvalidCredentials
	}

	code, err := generateVerificationCode()
	if err != nil {
		return uuid.Nil, fmt.Errorf("generate verification code: %w", err)
	}

	// Overwrites any unconsumed code from an earlier login; the last
	// writer wins and a stale code fails verification.
	user.VerificationCode = &code
	if err := s.users.Update(ctx, user); err != nil {
		return uuid.Nil, fmt.Errorf("store verification code: %w", err)
	}

	// The limiter only suppresses the email. A correct password always
	// leaves the login pending verification; the fresh code is stored
	// either way.
	if sends, _ := s.limiter.IncrWithTTL(ctx, "login_code:"+user.ID.String(), codeEmailWindow); sends > maxCodeEmails {
		log.Printf("login: verification code email to %s suppressed, send limit reached", user.Email)
		return user.ID, nil
	}

	if err := s.mailer.Send(
		user.Email,
		"Login Verification Code",
		fmt.Sprintf("Your verification code is: %s", code),
		fmt.Sprintf("<p>Your verification code is: <strong>%s</strong></p>", code),
	); err != nil {
		// Best-effort notification: the code is already stored, so the
		// login still counts as pending verification.
		log.Printf("login: sending verification code to %s failed: %v", user.Email, err)
	}

	return user.ID, nil
}

// VerifyCode completes a login. On match the code is cleared before a
// session token is issued, making it single-use.
func (s *authService) VerifyCode(ctx context.Context, userID uuid.UUID, code string) (string, *model.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrUserNotFound
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	// A failed attempt keeps the stored code so the user can retry.
	if user.VerificationCode == nil || *user.VerificationCode != code {
		return "", nil, apperrors.ErrInvalidCode
	}

	user.VerificationCode = nil
	user.IsVerified = true
	if err := s.users.Update(ctx, user); err != nil {
		return "", nil, fmt.Errorf("clear verification code: %w", err)
	}

	token, err := s.jwtService.GenerateSessionToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("issue session token: %w", err)
	}

	return token, user, nil
}

// ForgotPassword emails a reset link. The acknowledgment is identical
// whether or not the email is registered.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Do not reveal whether the account exists.
			return nil
		}
		return fmt.Errorf("find user: %w", err)
	}

	token, err := generateResetToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	hashed := hashResetToken(token)
	expires := time.Now().Add(resetTokenTTL)
	user.ResetPasswordToken = &hashed
	user.ResetPasswordExpires = &expires
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s&email=%s", s.frontendOrigin, token, user.Email)
	if err := s.mailer.Send(
		user.Email,
		"Password Reset Request",
		fmt.Sprintf("You requested a password reset. Click the link below to reset your password:\n\n%s\n\nIf you didn't request this, please ignore this email.", resetURL),
		fmt.Sprintf("<h1>Password Reset Request</h1><p>You requested a password reset. Click the link below to reset your password:</p><p><a href=%q>Reset Password</a></p><p>If you didn't request this, please ignore this email.</p><p>This link will expire in 1 hour.</p>", resetURL),
	); err != nil {
		// Same outcome to the caller either way.
		log.Printf("forgot password: sending reset link to %s failed: %v", user.Email, err)
	}

	return nil
}

// ResetPassword replaces the password when the token matches and has not
// expired. Wrong and expired tokens produce the same error.
func (s *authService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	hashed := hashResetToken(token)

	user, err := s.users.FindByResetToken(ctx, email, hashed, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return fmt.Errorf("find reset token: %w", err)
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user.PasswordHash = string(newHash)
	user.ResetPasswordToken = nil
	user.ResetPasswordExpires = nil
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return nil
}

// generateVerificationCode returns a 6-digit code uniformly distributed
// over 100000-999999.
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// generateResetToken returns 256 bits of entropy, hex-encoded. The
// plaintext goes into the email; only its hash is stored.
func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
