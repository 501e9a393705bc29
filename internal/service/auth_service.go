package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"todoapi/internal/mail"
	"todoapi/internal/model"
	"todoapi/internal/repository"
)

const minPasswordLen = 6

// AuthService owns accounts, sessions and the password-reset flow.
type AuthService struct {
	userRepo  *repository.UserRepository
	tokenRepo *repository.TokenRepository
	mailer    mail.Mailer

	sessionSecret []byte
	sessionTTL    time.Duration
	resetTokenTTL time.Duration
	siteURL       string
}

func NewAuthService(
	userRepo *repository.UserRepository,
	tokenRepo *repository.TokenRepository,
	mailer mail.Mailer,
	sessionSecret string,
	sessionTTL, resetTokenTTL time.Duration,
	siteURL string,
) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		tokenRepo:     tokenRepo,
		mailer:        mailer,
		sessionSecret: []byte(sessionSecret),
		sessionTTL:    sessionTTL,
		resetTokenTTL: resetTokenTTL,
		siteURL:       strings.TrimRight(siteURL, "/"),
	}
}

// SignUp creates an active account. The email is stored lowercased.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, validationf("A valid email is required")
	}
	if len(password) < minPasswordLen {
		return nil, validationf("Password must be at least %d characters long", minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, &user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &user, nil
}

// SignIn checks the credentials and returns the account. An unknown
// email and a wrong password report the same error.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueSession mints a signed session token for the user.
func (s *AuthService) IssueSession(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.sessionSecret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// Authenticate resolves a session token to the account it was issued
// for. Any parse, signature or lookup failure is ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, tokenStr string) (*model.User, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.sessionSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// SessionTTL is the lifetime handlers use for the session cookie.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// IssuePasswordReset creates a single-use recovery code and mails the
// callback link. An unknown email is not an error, so the endpoint
// cannot be used to probe for accounts.
func (s *AuthService) IssuePasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("find user: %w", err)
	}

	code, err := newResetCode()
	if err != nil {
		return err
	}
	token := model.PasswordResetToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: hashResetCode(code),
		ExpiresAt: time.Now().Add(s.resetTokenTTL),
	}
	if err := s.tokenRepo.Create(ctx, &token); err != nil {
		return err
	}

	link := s.siteURL + "/api/auth/password-reset-callback?token=" + url.QueryEscape(code) + "&type=recovery"
	body := "A password reset was requested for your account.\n\n" +
		"Open the link below to choose a new password:\n" + link + "\n\n" +
		"If you did not request this, you can ignore this email."
	if err := s.mailer.Send(ctx, user.Email, "Reset your password", body); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}

// ResetPassword consumes the recovery code and replaces the credential.
func (s *AuthService) ResetPassword(ctx context.Context, code, password string) error {
	if len(password) < minPasswordLen {
		return validationf("Password must be at least %d characters long", minPasswordLen)
	}

	now := time.Now()
	token, err := s.tokenRepo.FindActive(ctx, hashResetCode(code), now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetCode
		}
		return fmt.Errorf("find reset token: %w", err)
	}
	if err := s.tokenRepo.MarkUsed(ctx, token, now); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.userRepo.UpdatePasswordHash(ctx, token.UserID, string(hash))
}

func newResetCode() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reset code: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func hashResetCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
