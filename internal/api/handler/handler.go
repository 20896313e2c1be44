package handler

import (
	"github.com/ider-17/Bondly/internal/service"
	"github.com/ider-17/Bondly/pkg/redis"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	Profile      *ProfileHandler
	Challenge    *ChallengeHandler
	Submission   *SubmissionHandler
	Notification *NotificationHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
// rdb 供通知 SSE 订阅使用，可为 nil（实时推送降级不可用）
func NewHandler(svc *service.Service, rdb *redis.Client) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Profile:      NewProfileHandler(svc.Profile),
		Challenge:    NewChallengeHandler(svc.Challenge),
		Submission:   NewSubmissionHandler(svc.Submission),
		Notification: NewNotificationHandler(svc.Notification, rdb),
		Export:       NewExportHandler(svc.Export),
	}
}
