package dto

import "time"

// ── 挑战提交 / 审批模块 DTO ──

// SubmitChallengeRequest 挑战提交请求
type SubmitChallengeRequest struct {
	ChallengeID string `json:"challenge_id" binding:"required,uuid"`
	Content     string `json:"content"      binding:"required,max=5000"`
}

// ReviewSubmissionRequest 审批请求
type ReviewSubmissionRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approved declined"`
}

// SubmissionResponse 提交记录
type SubmissionResponse struct {
	SubmissionID string     `json:"submission_id"`
	UserID       string     `json:"user_id"`
	ChallengeID  string     `json:"challenge_id"`
	Content      string     `json:"content"`
	Status       string     `json:"status"`
	ReviewerID   *string    `json:"reviewer_id,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// PendingSubmissionResponse 审批队列条目（带挑战与提交者信息）
type PendingSubmissionResponse struct {
	SubmissionResponse
	ChallengeTitle      string  `json:"challenge_title"`
	ChallengeDifficulty string  `json:"challenge_difficulty"`
	SubmitterName       string  `json:"submitter_name"`
	SubmitterAvatarURL  *string `json:"submitter_avatar_url,omitempty"`
}
