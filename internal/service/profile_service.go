package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"todoapi/internal/model"
	"todoapi/internal/repository"
	"todoapi/internal/storage"
)

// MaxAvatarBytes caps avatar uploads at 5 MiB.
const MaxAvatarBytes = 5 << 20

const avatarBucket = "avatars"

// ProfileUpdate carries a partial profile update; nil fields are
// untouched.
type ProfileUpdate struct {
	FullName *string
	Bio      *string
	Website  *string
	Location *string
}

// ProfileService owns profile rows and avatar uploads.
type ProfileService struct {
	profileRepo *repository.ProfileRepository
	store       storage.ObjectStore
}

func NewProfileService(profileRepo *repository.ProfileRepository, store storage.ObjectStore) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, store: store}
}

// Get returns the user's profile, creating an empty one on first access.
func (s *ProfileService) Get(ctx context.Context, userID string) (*model.Profile, error) {
	return s.profileRepo.GetOrCreate(ctx, userID)
}

// Update applies the present fields to the user's profile.
func (s *ProfileService) Update(ctx context.Context, userID string, update ProfileUpdate) (*model.Profile, error) {
	updates := map[string]interface{}{}
	if update.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*update.FullName)
	}
	if update.Bio != nil {
		updates["bio"] = strings.TrimSpace(*update.Bio)
	}
	if update.Website != nil {
		updates["website"] = strings.TrimSpace(*update.Website)
	}
	if update.Location != nil {
		updates["location"] = strings.TrimSpace(*update.Location)
	}
	if len(updates) == 0 {
		return nil, validationf("At least one field is required")
	}
	return s.profileRepo.Update(ctx, userID, updates)
}

// UploadAvatar stores the image and points the profile's avatar_url at
// it. Only image MIME types up to MaxAvatarBytes are accepted.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID, filename, contentType string, size int64, r io.Reader) (*model.Profile, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, validationf("Avatar must be an image file")
	}
	if size > MaxAvatarBytes {
		return nil, validationf("Avatar must be smaller than 5MB")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".img"
	}
	objectPath := fmt.Sprintf("%s-%d%s", userID, time.Now().Unix(), ext)

	// Guard against a lying Content-Length.
	url, err := s.store.Put(ctx, avatarBucket, objectPath, io.LimitReader(r, MaxAvatarBytes+1))
	if err != nil {
		return nil, fmt.Errorf("store avatar: %w", err)
	}

	return s.profileRepo.Update(ctx, userID, map[string]interface{}{"avatar_url": url})
}
