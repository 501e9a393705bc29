package model

import "time"

// PasswordResetToken is a single-use recovery code. Only the SHA-256 of
// the opaque code is stored; the plaintext goes out in the reset email.
type PasswordResetToken struct {
	ID        string     `json:"id" gorm:"primaryKey"`
	UserID    string     `json:"user_id" gorm:"index;not null"`
	TokenHash string     `json:"-" gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time  `json:"created_at"`
}
