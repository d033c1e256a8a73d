package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"devsa-jobs/internal/domain"
)

type ProfileRepository interface {
	GetBySubjectID(ctx context.Context, subjectID string) (*domain.Profile, error)
	Create(ctx context.Context, profile *domain.Profile) error
	Update(ctx context.Context, profile *domain.Profile) error
	SetImage(ctx context.Context, subjectID string, imageURL string) error
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetBySubjectID(ctx context.Context, subjectID string) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT * FROM profiles WHERE subject_id = $1`

	err := r.db.GetContext(ctx, &profile, query, subjectID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (subject_id, email, role, display_name, first_name, last_name, profile_image, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		profile.SubjectID, profile.Email, profile.Role, profile.DisplayName,
		profile.FirstName, profile.LastName, profile.ProfileImage, profile.IsActive,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET display_name = $2, first_name = $3, last_name = $4, is_active = $5, updated_at = NOW()
		WHERE subject_id = $1
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		profile.SubjectID, profile.DisplayName, profile.FirstName, profile.LastName, profile.IsActive,
	).Scan(&profile.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *profileRepository) SetImage(ctx context.Context, subjectID string, imageURL string) error {
	query := `UPDATE profiles SET profile_image = $2, updated_at = NOW() WHERE subject_id = $1`
	res, err := r.db.ExecContext(ctx, query, subjectID, imageURL)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
