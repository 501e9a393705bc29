package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"todoapi/internal/model"
)

// TokenRepository stores password-reset tokens.
type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Create(ctx context.Context, token *model.PasswordResetToken) error {
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return fmt.Errorf("create reset token: %w", err)
	}
	return nil
}

// FindActive returns the unused, unexpired token matching the hash.
func (r *TokenRepository) FindActive(ctx context.Context, tokenHash string, now time.Time) (*model.PasswordResetToken, error) {
	var token model.PasswordResetToken
	if err := r.db.WithContext(ctx).
		Where("token_hash = ? AND used_at IS NULL AND expires_at > ?", tokenHash, now).
		First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// MarkUsed consumes the token so it cannot be replayed.
func (r *TokenRepository) MarkUsed(ctx context.Context, token *model.PasswordResetToken, usedAt time.Time) error {
	token.UsedAt = &usedAt
	if err := r.db.WithContext(ctx).Save(token).Error; err != nil {
		return fmt.Errorf("mark token used: %w", err)
	}
	return nil
}

// DeleteStale removes tokens that are expired or already used.
func (r *TokenRepository) DeleteStale(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("used_at IS NOT NULL OR expires_at <= ?", now).
		Delete(&model.PasswordResetToken{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete stale tokens: %w", res.Error)
	}
	return res.RowsAffected, nil
}
