package model

import "time"

// ── 提交状态常量 ──
// 状态单向推进：pending → approved | declined，之后不再变更

const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionDeclined = "declined"
)

// Submission 挑战提交表 — 对应 submissions
type Submission struct {
	SubmissionID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"submission_id"`
	UserID       string     `gorm:"type:uuid;not null"                             json:"user_id"`
	ChallengeID  string     `gorm:"type:uuid;not null"                             json:"challenge_id"`
	Content      string     `gorm:"type:text;not null"                             json:"content"`
	Status       string     `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	ReviewerID   *string    `gorm:"type:uuid"                                      json:"reviewer_id,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	BaseModel

	// 关联
	Challenge *Challenge   `gorm:"foreignKey:ChallengeID;references:ChallengeID" json:"challenge,omitempty"`
	Profile   *UserProfile `gorm:"foreignKey:UserID;references:UserID"           json:"profile,omitempty"`
}

// TableName 指定表名
func (Submission) TableName() string { return "submissions" }
