package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"homequote.backend/internal/domain/entities"
	"homequote.backend/internal/infrastructure/models"
)

// UserProfileRepository implements user profile operations
type UserProfileRepository struct {
	db *gorm.DB
}

// NewUserProfileRepository creates a new user profile repository
func NewUserProfileRepository(db *gorm.DB) *UserProfileRepository {
	return &UserProfileRepository{db: db}
}

// GetByUserID gets the profile of an identity-provider user
func (r *UserProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserProfile, error) {
	var m models.UserProfile
	if err := GetDB(ctx, r.db).Where("user_id = ?", userID).First(&m).Error; err != nil {
		return nil, translateError(err)
	}
	return &entities.UserProfile{
		UserID:    m.UserID,
		Email:     m.Email,
		Role:      entities.UserRole(m.Role),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

// Upsert creates the profile or refreshes its email and role
func (r *UserProfileRepository) Upsert(ctx context.Context, profile *entities.UserProfile) error {
	now := time.Now()
	m := &models.UserProfile{
		UserID:    profile.UserID,
		Email:     profile.Email,
		Role:      string(profile.Role),
		CreatedAt: now,
		UpdatedAt: now,
	}
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "role", "updated_at"}),
	}).Create(m).Error
}
