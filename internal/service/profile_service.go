package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ider-17/Bondly/internal/dto"
	"github.com/ider-17/Bondly/internal/model"
	"github.com/ider-17/Bondly/internal/repository"
)

// onboarding 兴趣标签数量约束（与前端选择器一致）
const (
	minInterests = 3
	maxInterests = 6
)

var (
	ErrProfileNotFound  = errors.New("用户资料不存在，请先完成 onboarding")
	ErrInterestCount    = errors.New("兴趣标签数量须在 3 到 6 个之间")
	ErrInterestDuplicate = errors.New("兴趣标签不能重复")
)

// ProfileService onboarding / 用户资料业务接口
type ProfileService interface {
	// Upsert 创建或覆盖当前用户的资料；角色字段不受本接口影响
	Upsert(ctx context.Context, userID string, req *dto.UpsertProfileRequest) (*dto.ProfileResponse, error)
	Get(ctx context.Context, userID string) (*dto.ProfileResponse, error)
}

type profileService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProfileService 创建 ProfileService 实例
func NewProfileService(repo *repository.Repository, logger *zap.Logger) ProfileService {
	return &profileService{repo: repo, logger: logger}
}

func (s *profileService) Upsert(ctx context.Context, userID string, req *dto.UpsertProfileRequest) (*dto.ProfileResponse, error) {
	// 1. 兴趣标签校验：数量 3–6，无重复
	if len(req.Interests) < minInterests || len(req.Interests) > maxInterests {
		return nil, ErrInterestCount
	}
	seen := make(map[string]bool, len(req.Interests))
	for _, tag := range req.Interests {
		if seen[tag] {
			return nil, ErrInterestDuplicate
		}
		seen[tag] = true
	}

	profile := &model.UserProfile{
		UserID:     userID,
		Name:       req.Name,
		Role:       model.RoleNewbie, // 仅首次插入生效，Upsert 不覆盖已有角色
		Interests:  model.StringArray(req.Interests),
		Experience: req.Experience,
		Goals:      req.Goals,
		AvatarURL:  req.AvatarURL,
		Email:      req.Email,
	}

	// 2. 写入（insert or update，onboarding 可重复执行）
	if err := s.repo.Profile.Upsert(ctx, profile); err != nil {
		s.logger.Error("保存用户资料失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	// 3. 回读（角色等字段可能保留了旧值）
	return s.Get(ctx, userID)
}

func (s *profileService) Get(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	profile, err := s.repo.Profile.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		s.logger.Error("查询用户资料失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return &dto.ProfileResponse{
		UserID:     profile.UserID,
		Name:       profile.Name,
		Role:       profile.Role,
		Interests:  profile.Interests,
		Experience: profile.Experience,
		Goals:      profile.Goals,
		AvatarURL:  profile.AvatarURL,
		Email:      profile.Email,
	}, nil
}
