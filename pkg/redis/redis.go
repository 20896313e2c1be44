package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ider-17/Bondly/config"
)

// Client Redis 客户端封装
// 承担三类职责：Token 黑名单、登录限流、通知实时推送（Pub/Sub）
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── Token 黑名单 ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken 将 JWT ID 加入黑名单，TTL 与 Token 剩余有效期一致
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // Token 已过期，无需加入黑名单
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted 检查 JWT ID 是否在黑名单中
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── 速率限制 ──

// CheckRateLimit 固定窗口计数限流
// 窗口内第一次请求创建计数键并设置过期时间，超过 limit 返回 false
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(limit), nil
}

// ── 通知实时推送（Pub/Sub） ──

const notifyChannelPrefix = "notify:user:"

// NotifyChannel 指定用户的通知频道名
func NotifyChannel(userID string) string {
	return notifyChannelPrefix + userID
}

// PublishNotification 将通知 JSON 发布到用户频道
// 无订阅者时发布为空操作，调用方无需关心在线状态
func (c *Client) PublishNotification(ctx context.Context, userID string, payload []byte) error {
	return c.rdb.Publish(ctx, NotifyChannel(userID), payload).Err()
}

// SubscribeNotifications 订阅用户通知频道
// 返回消息通道与取消函数；调用取消函数后通道随订阅关闭
func (c *Client) SubscribeNotifications(ctx context.Context, userID string) (<-chan *goredis.Message, func(), error) {
	sub := c.rdb.Subscribe(ctx, NotifyChannel(userID))

	// 确认订阅建立，失败时立即返回错误
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, nil, err
	}

	cancel := func() {
		if err := sub.Close(); err != nil {
			c.logger.Warn("关闭通知订阅失败", zap.String("user_id", userID), zap.Error(err))
		}
	}

	return sub.Channel(), cancel, nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
