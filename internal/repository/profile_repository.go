package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"todoapi/internal/model"
)

// ProfileRepository manages user profiles keyed on the owner's id.
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetOrCreate returns the profile for the user, creating an empty row on
// first access.
func (r *ProfileRepository) GetOrCreate(ctx context.Context, userID string) (*model.Profile, error) {
	var profile model.Profile
	db := r.db.WithContext(ctx)
	err := db.Where("id = ?", userID).First(&profile).Error
	switch {
	case err == nil:
		return &profile, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = model.Profile{ID: userID}
		if err := db.Create(&profile).Error; err != nil {
			return nil, fmt.Errorf("create profile: %w", err)
		}
		return &profile, nil
	default:
		return nil, fmt.Errorf("find profile: %w", err)
	}
}

// Update applies the given column values to the user's profile and
// returns the fresh row. The row is created first if it does not exist.
func (r *ProfileRepository) Update(ctx context.Context, userID string, updates map[string]interface{}) (*model.Profile, error) {
	if _, err := r.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}
	db := r.db.WithContext(ctx)
	if err := db.Model(&model.Profile{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	var profile model.Profile
	if err := db.Where("id = ?", userID).First(&profile).Error; err != nil {
		return nil, fmt.Errorf("reload profile: %w", err)
	}
	return &profile, nil
}
