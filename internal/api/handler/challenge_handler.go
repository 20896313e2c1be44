package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ider-17/Bondly/internal/service"
	"github.com/ider-17/Bondly/pkg/response"
)

// ChallengeHandler 挑战模块 HTTP 处理器
type ChallengeHandler struct {
	challengeSvc service.ChallengeService
}

// NewChallengeHandler 创建 ChallengeHandler
func NewChallengeHandler(challengeSvc service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{challengeSvc: challengeSvc}
}

// List 挑战列表（可按周次过滤）
// GET /api/v1/challenges?week=1
func (h *ChallengeHandler) List(c *gin.Context) {
	var weekNumber *int
	if w := c.Query("week"); w != "" {
		n, err := strconv.Atoi(w)
		if err != nil || n < 1 {
			response.BadRequest(c, 10001, "week 参数无效")
			return
		}
		weekNumber = &n
	}

	result, err := h.challengeSvc.List(c.Request.Context(), weekNumber)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Get 挑战详情
// GET /api/v1/challenges/:id
func (h *ChallengeHandler) Get(c *gin.Context) {
	result, err := h.challengeSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrChallengeNotFound) {
			response.NotFound(c, 13001, "挑战不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
