package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ider-17/Bondly/internal/model"
)

// ChallengeRepository 挑战数据访问接口（只读，数据由迁移种子维护）
type ChallengeRepository interface {
	GetByID(ctx context.Context, id string) (*model.Challenge, error)
	List(ctx context.Context, weekNumber *int) ([]model.Challenge, error)
}

// challengeRepo ChallengeRepository 的 GORM 实现
type challengeRepo struct {
	db *gorm.DB
}

// NewChallengeRepo 创建 ChallengeRepository 实例
func NewChallengeRepo(db *gorm.DB) ChallengeRepository {
	return &challengeRepo{db: db}
}

func (r *challengeRepo) GetByID(ctx context.Context, id string) (*model.Challenge, error) {
	var challenge model.Challenge
	err := r.db.WithContext(ctx).
		Where("challenge_id = ?", id).
		First(&challenge).Error
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (r *challengeRepo) List(ctx context.Context, weekNumber *int) ([]model.Challenge, error) {
	var challenges []model.Challenge

	db := r.db.WithContext(ctx).Model(&model.Challenge{})
	if weekNumber != nil {
		db = db.Where("week_number = ?", *weekNumber)
	}

	err := db.Order("week_number ASC, difficulty ASC, created_at ASC").
		Find(&challenges).Error
	if err != nil {
		return nil, err
	}
	return challenges, nil
}
