package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ider-17/Bondly/internal/dto"
	"github.com/ider-17/Bondly/internal/service"
	"github.com/ider-17/Bondly/pkg/response"
)

// ProfileHandler onboarding / 用户资料 HTTP 处理器
type ProfileHandler struct {
	profileSvc service.ProfileService
}

// NewProfileHandler 创建 ProfileHandler
func NewProfileHandler(profileSvc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileSvc: profileSvc}
}

// Upsert onboarding 提交（可重复执行）
// PUT /api/v1/profile
func (h *ProfileHandler) Upsert(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.profileSvc.Upsert(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInterestCount):
			response.BadRequest(c, 12001, "兴趣标签数量须在 3 到 6 个之间")
		case errors.Is(err, service.ErrInterestDuplicate):
			response.BadRequest(c, 12002, "兴趣标签不能重复")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Get 当前用户资料
// GET /api/v1/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.profileSvc.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			response.NotFound(c, 12003, "用户资料不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
