package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ider-17/Bondly/internal/service"
	"github.com/ider-17/Bondly/pkg/redis"
	"github.com/ider-17/Bondly/pkg/response"
)

// SSE 心跳间隔，保持代理/浏览器连接不被闲置断开
const streamHeartbeat = 30 * time.Second

// NotificationHandler 通知中心 HTTP 处理器
type NotificationHandler struct {
	notificationSvc service.NotificationService
	rdb             *redis.Client // 为 nil 时 Stream 返回 503
}

// NewNotificationHandler 创建 NotificationHandler
func NewNotificationHandler(notificationSvc service.NotificationService, rdb *redis.Client) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc, rdb: rdb}
}

// List 最近 20 条通知
// GET /api/v1/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.notificationSvc.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// UnreadCount 未读数量
// GET /api/v1/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.notificationSvc.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// MarkRead 置已读（幂等）
// PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	err := h.notificationSvc.MarkRead(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			response.NotFound(c, 15001, "通知不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// Stream 实时通知推送（SSE）
// GET /api/v1/notifications/stream
//
// 客户端断开即取消订阅；Redis 不可用时返回 503，
// 客户端退化为轮询 List/UnreadCount
func (h *NotificationHandler) Stream(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if h.rdb == nil {
		response.Error(c, http.StatusServiceUnavailable, 15002, "实时推送暂不可用")
		return
	}

	messages, cancel, err := h.rdb.SubscribeNotifications(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusServiceUnavailable, 15002, "实时推送暂不可用")
		return
	}
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	heartbeat := time.NewTicker(streamHeartbeat)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, open := <-messages:
			if !open {
				return false
			}
			c.SSEvent("notification", msg.Payload)
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
