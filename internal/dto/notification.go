package dto

import (
	"time"

	"github.com/ider-17/Bondly/internal/model"
)

// ── 通知中心 DTO ──

// NotificationResponse 通知条目
type NotificationResponse struct {
	NotificationID string                      `json:"notification_id"`
	UserID         string                      `json:"user_id"`
	Title          string                      `json:"title"`
	Message        string                      `json:"message"`
	Type           string                      `json:"type"`
	IsRead         bool                        `json:"is_read"`
	Metadata       *model.NotificationMetadata `json:"metadata,omitempty"`
	CreatedAt      time.Time                   `json:"created_at"`
}

// UnreadCountResponse 未读数量
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// NewNotificationResponse 从模型构造通知 DTO
func NewNotificationResponse(n *model.Notification) NotificationResponse {
	resp := NotificationResponse{
		NotificationID: n.NotificationID,
		UserID:         n.UserID,
		Title:          n.Title,
		Message:        n.Message,
		Type:           n.Type,
		IsRead:         n.IsRead,
		CreatedAt:      n.CreatedAt,
	}
	if n.Metadata != nil {
		meta := n.Metadata.Data()
		resp.Metadata = &meta
	}
	return resp
}
