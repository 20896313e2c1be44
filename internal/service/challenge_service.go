package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ider-17/Bondly/internal/model"
	"github.com/ider-17/Bondly/internal/repository"
)

var ErrChallengeNotFound = errors.New("挑战不存在")

// ChallengeService 挑战查询业务接口（只读）
type ChallengeService interface {
	List(ctx context.Context, weekNumber *int) ([]model.Challenge, error)
	Get(ctx context.Context, id string) (*model.Challenge, error)
}

type challengeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewChallengeService 创建 ChallengeService 实例
func NewChallengeService(repo *repository.Repository, logger *zap.Logger) ChallengeService {
	return &challengeService{repo: repo, logger: logger}
}

func (s *challengeService) List(ctx context.Context, weekNumber *int) ([]model.Challenge, error) {
	challenges, err := s.repo.Challenge.List(ctx, weekNumber)
	if err != nil {
		s.logger.Error("查询挑战列表失败", zap.Error(err))
		return nil, err
	}
	return challenges, nil
}

func (s *challengeService) Get(ctx context.Context, id string) (*model.Challenge, error) {
	challenge, err := s.repo.Challenge.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChallengeNotFound
		}
		s.logger.Error("查询挑战失败", zap.String("challenge_id", id), zap.Error(err))
		return nil, err
	}
	return challenge, nil
}
