package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/ider-17/Bondly/internal/model"
	pkgerrors "github.com/ider-17/Bondly/pkg/errors"
)

// SubmissionRepository 挑战提交数据访问接口
type SubmissionRepository interface {
	Create(ctx context.Context, submission *model.Submission) error
	GetByID(ctx context.Context, id string) (*model.Submission, error)
	ListByUser(ctx context.Context, userID string) ([]model.Submission, error)
	ListPending(ctx context.Context) ([]model.Submission, error)
	ListAll(ctx context.Context) ([]model.Submission, error)
	// UpdateStatus 条件更新：仅 pending 状态可推进到 approved/declined。
	// 记录不存在返回 gorm.ErrRecordNotFound；已被审批返回 ErrAlreadyReviewed。
	UpdateStatus(ctx context.Context, id, status, reviewerID string) (*model.Submission, error)
}

// submissionRepo SubmissionRepository 的 GORM 实现
type submissionRepo struct {
	db *gorm.DB
}

// NewSubmissionRepo 创建 SubmissionRepository 实例
func NewSubmissionRepo(db *gorm.DB) SubmissionRepository {
	return &submissionRepo{db: db}
}

func (r *submissionRepo) Create(ctx context.Context, submission *model.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*model.Submission, error) {
	var submission model.Submission
	err := r.db.WithContext(ctx).
		Preload("Challenge").
		Where("submission_id = ?", id).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepo) ListByUser(ctx context.Context, userID string) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.db.WithContext(ctx).
		Preload("Challenge").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *submissionRepo) ListPending(ctx context.Context) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.db.WithContext(ctx).
		Preload("Challenge").
		Preload("Profile").
		Where("status = ?", model.SubmissionPending).
		Order("created_at DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *submissionRepo) ListAll(ctx context.Context) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

// UpdateStatus 以条件 UPDATE 保证状态单调：WHERE status='pending' 未命中即冲突
func (r *submissionRepo) UpdateStatus(ctx context.Context, id, status, reviewerID string) (*model.Submission, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.Submission{}).
		Where("submission_id = ? AND status = ?", id, model.SubmissionPending).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewer_id": reviewerID,
			"reviewed_at": now,
			"updated_at":  now,
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		// 区分“不存在”与“已被审批”
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&model.Submission{}).
			Where("submission_id = ?", id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, pkgerrors.ErrAlreadyReviewed
	}

	return r.GetByID(ctx, id)
}
