package dto

// ── Onboarding / 资料模块 DTO ──

// UpsertProfileRequest onboarding 提交请求
// interests 数量限制 3–6 在 Service 层校验（与前端约定一致）
type UpsertProfileRequest struct {
	Name       string   `json:"name"       binding:"required,min=2,max=50"`
	Interests  []string `json:"interests"  binding:"required"`
	Experience string   `json:"experience" binding:"max=2000"`
	Goals      string   `json:"goals"      binding:"max=2000"`
	AvatarURL  *string  `json:"avatar_url" binding:"omitempty,url"`
	Email      *string  `json:"email"      binding:"omitempty,email"`
}

// ProfileResponse 用户资料
type ProfileResponse struct {
	UserID     string   `json:"user_id"`
	Name       string   `json:"name"`
	Role       string   `json:"role"`
	Interests  []string `json:"interests"`
	Experience string   `json:"experience"`
	Goals      string   `json:"goals"`
	AvatarURL  *string  `json:"avatar_url,omitempty"`
	Email      *string  `json:"email,omitempty"`
}
