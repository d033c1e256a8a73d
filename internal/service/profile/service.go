package profile

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"

	"devsa-jobs/internal/config"
	"devsa-jobs/internal/domain"
	"devsa-jobs/internal/repository"
	"devsa-jobs/internal/service/helpers"
)

const MaxImageSize = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ObjectStorage is the subset of *minio.Client used for profile images.
type ObjectStorage interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

type Service interface {
	Get(ctx context.Context, subjectID string) (*domain.Profile, error)
	Create(ctx context.Context, actor *domain.Actor, input domain.CreateProfileInput) (*domain.Profile, error)
	Update(ctx context.Context, actor *domain.Actor, input domain.UpdateProfileInput) (*domain.Profile, error)
	UploadImage(ctx context.Context, actor *domain.Actor, contentType string, size int64, reader io.Reader) (*domain.Profile, error)
}

type service struct {
	profileRepo repository.ProfileRepository
	storage     ObjectStorage
	cfg         *config.Config
}

// NewService builds the profile service. storage may be nil when object
// storage is unavailable; image uploads then fail.
func NewService(profileRepo repository.ProfileRepository, storage ObjectStorage, cfg *config.Config) Service {
	return &service{
		profileRepo: profileRepo,
		storage:     storage,
		cfg:         cfg,
	}
}

func (s *service) Get(ctx context.Context, subjectID string) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetBySubjectID(ctx, subjectID)
	if err != nil {
		return nil, domain.Internal("Failed to load profile", err)
	}
	if profile == nil {
		return nil, domain.NotFound("Profile not found")
	}
	return profile, nil
}

func (s *service) Create(ctx context.Context, actor *domain.Actor, input domain.CreateProfileInput) (*domain.Profile, error) {
	if actor.Profile != nil {
		return nil, domain.Conflict("Profile already exists")
	}
	if !input.Role.IsValid() {
		return nil, domain.InvalidArgument("role must be hiring or open-to-work")
	}

	profile := &domain.Profile{
		SubjectID:   actor.SubjectID,
		Email:       actor.Email,
		Role:        input.Role,
		DisplayName: helpers.PlainText(input.DisplayName),
		FirstName:   helpers.PlainText(input.FirstName),
		LastName:    helpers.PlainText(input.LastName),
		IsActive:    true,
	}
	if profile.FirstName == "" || profile.LastName == "" {
		return nil, domain.InvalidArgument("firstName and lastName are required")
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.Conflict("Profile already exists")
		}
		return nil, domain.Internal("Failed to create profile", err)
	}
	return profile, nil
}

// Update edits the caller's own profile. Role is fixed at onboarding.
func (s *service) Update(ctx context.Context, actor *domain.Actor, input domain.UpdateProfileInput) (*domain.Profile, error) {
	if actor.Profile == nil {
		return nil, domain.PreconditionFailed("Profile required. Complete onboarding first")
	}
	profile := *actor.Profile

	if input.DisplayName != nil {
		profile.DisplayName = helpers.PlainText(*input.DisplayName)
	}
	if input.FirstName != nil {
		profile.FirstName = helpers.PlainText(*input.FirstName)
	}
	if input.LastName != nil {
		profile.LastName = helpers.PlainText(*input.LastName)
	}
	if input.IsActive != nil {
		profile.IsActive = *input.IsActive
	}
	if profile.FirstName == "" || profile.LastName == "" {
		return nil, domain.InvalidArgument("firstName and lastName cannot be empty")
	}

	if err := s.profileRepo.Update(ctx, &profile); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NotFound("Profile not found")
		}
		return nil, domain.Internal("Failed to update profile", err)
	}
	return &profile, nil
}

func (s *service) UploadImage(ctx context.Context, actor *domain.Actor, contentType string, size int64, reader io.Reader) (*domain.Profile, error) {
	if actor.Profile == nil {
		return nil, domain.PreconditionFailed("Profile required. Complete onboarding first")
	}
	if s.storage == nil {
		return nil, domain.Internal("Image storage is unavailable", nil)
	}

	contentType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, domain.InvalidArgument("Image must be JPEG, PNG, WebP or GIF")
	}
	if size <= 0 || size > MaxImageSize {
		return nil, domain.InvalidArgument(fmt.Sprintf("Image must be between 1 byte and %d MB", MaxImageSize>>20))
	}

	objectName := path.Join(strings.TrimSuffix(config.ProfileImagePrefix, "/"), subjectSegment(actor.SubjectID), helpers.NewObjectKey()+ext)

	if _, err := s.storage.PutObject(ctx, s.cfg.MinIOBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return nil, domain.Internal("Failed to upload image", err)
	}

	imageURL := s.cfg.PublicObjectURL(objectName)
	if err := s.profileRepo.SetImage(ctx, actor.SubjectID, imageURL); err != nil {
		_ = s.storage.RemoveObject(ctx, s.cfg.MinIOBucket, objectName, minio.RemoveObjectOptions{})
		return nil, domain.Internal("Failed to save profile image", err)
	}

	profile := *actor.Profile
	profile.ProfileImage = &imageURL
	return &profile, nil
}

// subjectSegment turns a subject id into exactly one object path segment so
// uploads always stay under the profile image prefix.
func subjectSegment(subjectID string) string {
	segment := url.PathEscape(subjectID)
	if segment == "" || segment == "." || segment == ".." {
		sum := sha256.Sum256([]byte(subjectID))
		return hex.EncodeToString(sum[:8])
	}
	return segment
}
