package model

import "time"

// ── 难度常量 ──

const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Challenge 挑战表 — 对应 challenges
// 由运营侧按周次维护，应用只读
type Challenge struct {
	ChallengeID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"challenge_id"`
	Title       string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Difficulty  string    `gorm:"type:varchar(20);not null;default:'Easy'"       json:"difficulty"` // Easy | Medium | Hard
	WeekNumber  int       `gorm:"not null;default:1"                             json:"week_number"`
	Points      int       `gorm:"not null;default:10"                            json:"points"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Challenge) TableName() string { return "challenges" }
