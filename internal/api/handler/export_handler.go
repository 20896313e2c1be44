package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ider-17/Bondly/internal/service"
	"github.com/ider-17/Bondly/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// Progress 导出挑战进度报表（仅 senior）
// GET /api/v1/export/progress
func (h *ExportHandler) Progress(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportProgress(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrExportNoChallenges) {
			response.NotFound(c, 16001, "暂无挑战数据可导出")
			return
		}
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

// ChallengeCalendar 挑战周历（iCalendar 订阅源）
// GET /api/v1/export/challenges.ics?start=2026-09-07
//
// start 缺省为今天所在周
func (h *ExportHandler) ChallengeCalendar(c *gin.Context) {
	start := time.Now()
	if s := c.Query("start"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			response.BadRequest(c, 10001, "start 参数格式应为 YYYY-MM-DD")
			return
		}
		start = parsed
	}

	content, err := h.exportSvc.ChallengeCalendar(c.Request.Context(), start)
	if err != nil {
		if errors.Is(err, service.ErrExportNoChallenges) {
			response.NotFound(c, 16001, "暂无挑战数据可导出")
			return
		}
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="bondly_challenges.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(content))
}
