package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ider-17/Bondly/internal/model"
)

// ProfileRepository 用户资料数据访问接口
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *model.UserProfile) error
	GetByUserID(ctx context.Context, userID string) (*model.UserProfile, error)
	ListByRole(ctx context.Context, role string) ([]model.UserProfile, error)
}

// profileRepo ProfileRepository 的 GORM 实现
type profileRepo struct {
	db *gorm.DB
}

// NewProfileRepo 创建 ProfileRepository 实例
func NewProfileRepo(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

// Upsert 按 user_id 插入或覆盖资料
// onboarding 可重复执行，覆盖 interests/experience 等字段
func (r *profileRepo) Upsert(ctx context.Context, profile *model.UserProfile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "interests", "experience", "goals", "avatar_url", "email", "updated_at",
			}),
		}).
		Create(profile).Error
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) ListByRole(ctx context.Context, role string) ([]model.UserProfile, error) {
	var profiles []model.UserProfile
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
