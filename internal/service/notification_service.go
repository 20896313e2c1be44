package service

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ider-17/Bondly/internal/dto"
	"github.com/ider-17/Bondly/internal/model"
	"github.com/ider-17/Bondly/internal/repository"
)

// 通知中心单次拉取上限（与前端约定）
const notificationListLimit = 20

var ErrNotificationNotFound = errors.New("通知不存在")

// NotificationService 通知中心业务接口
type NotificationService interface {
	// List 返回最近 20 条通知，新的在前
	List(ctx context.Context, userID string) ([]dto.NotificationResponse, error)
	UnreadCount(ctx context.Context, userID string) (*dto.UnreadCountResponse, error)
	// MarkRead 置已读，幂等；仅收件人本人可操作
	MarkRead(ctx context.Context, notificationID, userID string) error
	// Dispatch 批量落库并逐条推送到实时通道
	// 落库失败返回错误；推送失败只记日志（best-effort）
	Dispatch(ctx context.Context, notifications []model.Notification) error
}

type notificationService struct {
	repo      *repository.Repository
	publisher NotificationPublisher
	logger    *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(
	repo *repository.Repository,
	publisher NotificationPublisher,
	logger *zap.Logger,
) NotificationService {
	return &notificationService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *notificationService) List(ctx context.Context, userID string) ([]dto.NotificationResponse, error) {
	notifications, err := s.repo.Notification.ListByUser(ctx, userID, notificationListLimit)
	if err != nil {
		s.logger.Error("查询通知列表失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		result = append(result, dto.NewNotificationResponse(&notifications[i]))
	}
	return result, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (*dto.UnreadCountResponse, error) {
	count, err := s.repo.Notification.CountUnread(ctx, userID)
	if err != nil {
		s.logger.Error("查询未读数失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}

func (s *notificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	err := s.repo.Notification.MarkRead(ctx, notificationID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		s.logger.Error("置已读失败",
			zap.String("notification_id", notificationID),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *notificationService) Dispatch(ctx context.Context, notifications []model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	if err := s.repo.Notification.BatchCreate(ctx, notifications); err != nil {
		return err
	}

	// 实时推送：无 Redis 或发布失败都不影响落库结果
	if s.publisher == nil {
		return nil
	}
	for i := range notifications {
		n := &notifications[i]
		payload, err := json.Marshal(dto.NewNotificationResponse(n))
		if err != nil {
			s.logger.Warn("序列化通知失败", zap.String("notification_id", n.NotificationID), zap.Error(err))
			continue
		}
		if err := s.publisher.PublishNotification(ctx, n.UserID, payload); err != nil {
			s.logger.Warn("推送通知失败",
				zap.String("notification_id", n.NotificationID),
				zap.String("user_id", n.UserID),
				zap.Error(err),
			)
		}
	}
	return nil
}
