package model

import "time"

// Profile keeps the public-facing details of a user. Its primary key is
// the owning user's id; the row is created lazily on first access.
type Profile struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	FullName  string    `json:"full_name"`
	Bio       string    `json:"bio"`
	Website   string    `json:"website"`
	Location  string    `json:"location"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
