package model

import (
	"time"

	"gorm.io/datatypes"
)

// ── 通知类型常量 ──

const (
	NotifyApprovalRequest = "challenge_approval_request"
	NotifyApproved        = "challenge_approved"
	NotifyDeclined        = "challenge_declined"
	NotifyGeneral         = "general"
)

// NotificationMetadata 通知附加信息（JSONB）
type NotificationMetadata struct {
	ChallengeID   string `json:"challenge_id,omitempty"`
	SubmissionID  string `json:"submission_id,omitempty"`
	RequesterName string `json:"requester_name,omitempty"`
}

// Notification 通知消息表 — 对应 notifications
// 只追加与置已读，从不删除；is_read 单向翻转 false → true
type Notification struct {
	NotificationID string                                       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	UserID         string                                       `gorm:"type:uuid;not null"                             json:"user_id"`
	Title          string                                       `gorm:"type:varchar(200);not null"                     json:"title"`
	Message        string                                       `gorm:"type:text;not null"                             json:"message"`
	Type           string                                       `gorm:"type:varchar(50);not null;default:'general'"    json:"type"`
	IsRead         bool                                         `gorm:"not null;default:false"                         json:"is_read"`
	Metadata       *datatypes.JSONType[NotificationMetadata]    `gorm:"type:jsonb"                                     json:"metadata,omitempty"`
	CreatedAt      time.Time                                    `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Notification) TableName() string { return "notifications" }
