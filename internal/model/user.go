package model

// ── 角色常量 ──

const (
	RoleNewbie = "newbie"
	RoleSenior = "senior"
)

// User 账号表 — 对应 users
// 仅承载登录凭据；展示信息与角色在 user_profiles 中
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// UserProfile 用户资料表 — 对应 user_profiles（与 users 1:1，onboarding 时创建）
type UserProfile struct {
	UserID     string      `gorm:"type:uuid;primaryKey"                       json:"user_id"`
	Name       string      `gorm:"type:varchar(100);not null"                 json:"name"`
	Role       string      `gorm:"type:varchar(20);not null;default:'newbie'" json:"role"` // newbie | senior
	Interests  StringArray `gorm:"type:text[];not null;default:'{}'"          json:"interests"`
	Experience string      `gorm:"type:text;not null;default:''"              json:"experience"`
	Goals      string      `gorm:"type:text;not null;default:''"              json:"goals"`
	AvatarURL  *string     `gorm:"type:varchar(500)"                          json:"avatar_url,omitempty"`
	Email      *string     `gorm:"type:varchar(255)"                          json:"email,omitempty"`
	BaseModel
}

// TableName 指定表名
func (UserProfile) TableName() string { return "user_profiles" }
