package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ider-17/Bondly/config"
	"github.com/ider-17/Bondly/internal/api/handler"
	"github.com/ider-17/Bondly/internal/api/middleware"
	"github.com/ider-17/Bondly/internal/model"
	"github.com/ider-17/Bondly/pkg/jwt"
	"github.com/ider-17/Bondly/pkg/redis"
)

const maxBodySize = 1 << 20 // 1MB

// Setup 组装 Gin 引擎：全局中间件 + 所有业务路由
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodySize))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Format(time.RFC3339)})
	})

	v1 := r.Group("/api/v1")

	// 公开路由
	auth := v1.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}

	// 需要登录的路由
	authorized := v1.Group("")
	authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		authorized.POST("/auth/logout", h.Auth.Logout)
		authorized.GET("/auth/me", h.Auth.Me)

		authorized.GET("/profile", h.Profile.Get)
		authorized.PUT("/profile", h.Profile.Upsert)

		authorized.GET("/challenges", h.Challenge.List)
		authorized.GET("/challenges/:id", h.Challenge.Get)

		authorized.POST("/submissions", h.Submission.Submit)
		authorized.GET("/submissions/me", h.Submission.ListMine)

		authorized.GET("/notifications", h.Notification.List)
		authorized.GET("/notifications/unread-count", h.Notification.UnreadCount)
		authorized.PUT("/notifications/:id/read", h.Notification.MarkRead)
		authorized.GET("/notifications/stream", h.Notification.Stream)

		// 仅导师可用
		senior := authorized.Group("")
		senior.Use(middleware.RoleAuth(model.RoleSenior))
		{
			senior.GET("/submissions/pending", h.Submission.ListPending)
			senior.PUT("/submissions/:id/review", h.Submission.Review)
			senior.GET("/export/progress", h.Export.Progress)
		}

		authorized.GET("/export/challenges.ics", h.Export.ChallengeCalendar)
	}

	return r
}
