package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ider-17/Bondly/internal/dto"
	"github.com/ider-17/Bondly/internal/service"
	"github.com/ider-17/Bondly/pkg/response"
)

// SubmissionHandler 挑战提交 / 审批模块 HTTP 处理器
type SubmissionHandler struct {
	submissionSvc service.SubmissionService
}

// NewSubmissionHandler 创建 SubmissionHandler
func NewSubmissionHandler(submissionSvc service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionSvc: submissionSvc}
}

// Submit 提交挑战并发起审批
// POST /api/v1/submissions
func (h *SubmissionHandler) Submit(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.submissionSvc.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyContent):
			response.BadRequest(c, 14001, "提交内容不能为空")
		case errors.Is(err, service.ErrProfileNotFound):
			response.BadRequest(c, 14002, "请先完成 onboarding")
		case errors.Is(err, service.ErrChallengeNotFound):
			response.NotFound(c, 13001, "挑战不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// Review 审批提交（仅 senior）
// PUT /api/v1/submissions/:id/review
func (h *SubmissionHandler) Review(c *gin.Context) {
	reviewerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ReviewSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.submissionSvc.Review(c.Request.Context(), c.Param("id"), req.Decision, reviewerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDecision):
			response.BadRequest(c, 14003, "审批结果只能是 approved 或 declined")
		case errors.Is(err, service.ErrSubmissionNotFound):
			response.NotFound(c, 14004, "提交记录不存在")
		case errors.Is(err, service.ErrSubmissionAlreadyReviewed):
			response.Conflict(c, 14005, "该提交已被审批")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// ListMine 我的提交记录
// GET /api/v1/submissions/me
func (h *SubmissionHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.submissionSvc.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ListPending 审批队列（仅 senior）
// GET /api/v1/submissions/pending
func (h *SubmissionHandler) ListPending(c *gin.Context) {
	result, err := h.submissionSvc.ListPending(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
