package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/ider-17/Bondly/internal/model"
	"github.com/ider-17/Bondly/internal/repository"
)

// ── 测试辅助 ──

func setupNotificationTest() (NotificationService, *mockNotificationRepo, *mockPublisher) {
	notifications := newMockNotificationRepo()
	publisher := newMockPublisher()
	repo := &repository.Repository{
		User:         newMockUserRepo(),
		Profile:      newMockProfileRepo(),
		Challenge:    newMockChallengeRepo(),
		Submission:   newMockSubmissionRepo(nil, nil),
		Notification: notifications,
	}
	svc := NewNotificationService(repo, publisher, zap.NewNop())
	return svc, notifications, publisher
}

func seedNotifications(t *testing.T, svc NotificationService, userID string, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		err := svc.Dispatch(context.Background(), []model.Notification{{
			UserID:  userID,
			Title:   fmt.Sprintf("Title %d", i),
			Message: fmt.Sprintf("Message %d", i),
			Type:    model.NotifyGeneral,
		}})
		if err != nil {
			t.Fatalf("Dispatch 应成功: %v", err)
		}
	}
}

// ── List 测试 ──

func TestNotificationService_List_NewestFirst(t *testing.T) {
	svc, _, _ := setupNotificationTest()
	seedNotifications(t, svc, "u1", 3)

	result, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(result) != 3 {
		t.Fatalf("期望 3 条，实际=%d", len(result))
	}
	if result[0].Title != "Title 2" || result[2].Title != "Title 0" {
		t.Errorf("应按时间倒序: %s … %s", result[0].Title, result[2].Title)
	}
}

func TestNotificationService_List_LimitTwenty(t *testing.T) {
	svc, _, _ := setupNotificationTest()
	seedNotifications(t, svc, "u1", 25)

	result, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(result) != 20 {
		t.Errorf("单次拉取上限 20 条，实际=%d", len(result))
	}
	// 最新的一条应在首位
	if result[0].Title != "Title 24" {
		t.Errorf("首条应为最新通知，实际=%s", result[0].Title)
	}
}

func TestNotificationService_List_OnlyOwn(t *testing.T) {
	svc, _, _ := setupNotificationTest()
	seedNotifications(t, svc, "u1", 2)
	seedNotifications(t, svc, "u2", 3)

	result, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(result) != 2 {
		t.Errorf("只应返回本人通知，期望 2 条，实际=%d", len(result))
	}
}

// ── UnreadCount / MarkRead 测试 ──

func TestNotificationService_UnreadCount(t *testing.T) {
	svc, notifications, _ := setupNotificationTest()
	seedNotifications(t, svc, "u1", 3)

	resp, err := svc.UnreadCount(context.Background(), "u1")
	if err != nil {
		t.Fatalf("UnreadCount 应成功: %v", err)
	}
	if resp.Count != 3 {
		t.Errorf("期望未读数=3，实际=%d", resp.Count)
	}

	// 置读 1 条后未读数应减 1
	id := notifications.forUser("u1")[0].NotificationID
	if err := svc.MarkRead(context.Background(), id, "u1"); err != nil {
		t.Fatalf("MarkRead 应成功: %v", err)
	}
	resp, _ = svc.UnreadCount(context.Background(), "u1")
	if resp.Count != 2 {
		t.Errorf("置读后期望未读数=2，实际=%d", resp.Count)
	}
}

func TestNotificationService_MarkRead_Idempotent(t *testing.T) {
	svc, notifications, _ := setupNotificationTest()
	seedNotifications(t, svc, "u1", 1)
	id := notifications.forUser("u1")[0].NotificationID

	if err := svc.MarkRead(context.Background(), id, "u1"); err != nil {
		t.Fatalf("首次置读应成功: %v", err)
	}
	if err := svc.MarkRead(context.Background(), id, "u1"); err != nil {
		t.Errorf("重复置读应幂等成功: %v", err)
	}
}

func TestNotificationService_MarkRead_NotOwner(t *testing.T) {
	svc, notifications, _ := setupNotificationTest()
	seedNotifications(t, svc, "u1", 1)
	id := notifications.forUser("u1")[0].NotificationID

	err := svc.MarkRead(context.Background(), id, "u2")
	if !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("非本人置读应返回 ErrNotificationNotFound，实际=%v", err)
	}
}

func TestNotificationService_MarkRead_NotFound(t *testing.T) {
	svc, _, _ := setupNotificationTest()

	err := svc.MarkRead(context.Background(), "notif-missing", "u1")
	if !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("期望 ErrNotificationNotFound，实际=%v", err)
	}
}

// ── Dispatch 测试 ──

func TestNotificationService_Dispatch_PublishesEach(t *testing.T) {
	svc, _, publisher := setupNotificationTest()

	err := svc.Dispatch(context.Background(), []model.Notification{
		{UserID: "u1", Title: "A", Message: "a", Type: model.NotifyGeneral},
		{UserID: "u2", Title: "B", Message: "b", Type: model.NotifyGeneral},
	})
	if err != nil {
		t.Fatalf("Dispatch 应成功: %v", err)
	}

	if len(publisher.published["u1"]) != 1 || len(publisher.published["u2"]) != 1 {
		t.Error("每个收件人应收到 1 条推送")
	}

	// 推送内容应为可解析的通知 JSON
	var payload map[string]any
	if err := json.Unmarshal(publisher.published["u1"][0], &payload); err != nil {
		t.Fatalf("推送 payload 应为合法 JSON: %v", err)
	}
	if payload["title"] != "A" {
		t.Errorf("payload 标题错误: %v", payload["title"])
	}
}

func TestNotificationService_Dispatch_Empty(t *testing.T) {
	svc, notifications, _ := setupNotificationTest()

	if err := svc.Dispatch(context.Background(), nil); err != nil {
		t.Errorf("空批次应直接成功: %v", err)
	}
	if len(notifications.notifications) != 0 {
		t.Error("空批次不应写入任何记录")
	}
}

func TestNotificationService_Dispatch_PublishFailureIgnored(t *testing.T) {
	svc, notifications, publisher := setupNotificationTest()
	publisher.failAll = true

	err := svc.Dispatch(context.Background(), []model.Notification{
		{UserID: "u1", Title: "A", Message: "a", Type: model.NotifyGeneral},
	})
	if err != nil {
		t.Fatalf("推送失败不应影响落库结果: %v", err)
	}
	if len(notifications.forUser("u1")) != 1 {
		t.Error("通知仍应落库")
	}
}

func TestNotificationService_Dispatch_CreateFailurePropagates(t *testing.T) {
	svc, notifications, publisher := setupNotificationTest()
	notifications.createErr = errors.New("db: write failed")

	err := svc.Dispatch(context.Background(), []model.Notification{
		{UserID: "u1", Title: "A", Message: "a", Type: model.NotifyGeneral},
	})
	if err == nil {
		t.Fatal("落库失败应返回错误")
	}
	if len(publisher.published) != 0 {
		t.Error("落库失败后不应推送")
	}
}

// ── nil publisher（Redis 不可用）──

func TestNotificationService_Dispatch_NilPublisher(t *testing.T) {
	notifications := newMockNotificationRepo()
	repo := &repository.Repository{Notification: notifications}
	svc := NewNotificationService(repo, nil, zap.NewNop())

	err := svc.Dispatch(context.Background(), []model.Notification{
		{UserID: "u1", Title: "A", Message: "a", Type: model.NotifyGeneral},
	})
	if err != nil {
		t.Fatalf("无 publisher 时 Dispatch 仍应成功: %v", err)
	}
	if len(notifications.forUser("u1")) != 1 {
		t.Error("通知仍应落库")
	}
}
