package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ider-17/Bondly/config"
	"github.com/ider-17/Bondly/internal/repository"
	"github.com/ider-17/Bondly/pkg/jwt"
	"github.com/ider-17/Bondly/pkg/mailer"
	"github.com/ider-17/Bondly/pkg/redis"
)

// Mailer 邮件发送依赖（best-effort，失败只记日志）
type Mailer interface {
	Send(to, name, subject, message string) error
}

// NotificationPublisher 通知实时推送依赖
// Redis 不可用时为 nil，推送退化为空操作
type NotificationPublisher interface {
	PublishNotification(ctx context.Context, userID string, payload []byte) error
}

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	Profile      ProfileService
	Challenge    ChallengeService
	Submission   SubmissionService
	Notification NotificationService
	Export       ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	// rdb 为具体类型，nil 时不能直接塞进接口变量
	var publisher NotificationPublisher
	if rdb != nil {
		publisher = rdb
	}

	var m Mailer
	if cfg.Feature.EmailEnabled {
		m = mailer.NewMailer(&cfg.Mail)
	}

	notificationSvc := NewNotificationService(repo, publisher, logger)

	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Profile:      NewProfileService(repo, logger),
		Challenge:    NewChallengeService(repo, logger),
		Submission:   NewSubmissionService(repo, notificationSvc, m, logger),
		Notification: notificationSvc,
		Export:       NewExportService(repo, logger),
	}
}
