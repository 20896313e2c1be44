package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ider-17/Bondly/internal/model"
	"github.com/ider-17/Bondly/internal/repository"
)

// ── 测试辅助 ──

type exportFixture struct {
	svc         ExportService
	profiles    *mockProfileRepo
	challenges  *mockChallengeRepo
	submissions *mockSubmissionRepo
}

func setupExportTest() *exportFixture {
	profiles := newMockProfileRepo()
	challenges := newMockChallengeRepo()
	submissions := newMockSubmissionRepo(challenges, profiles)
	repo := &repository.Repository{
		User:         newMockUserRepo(),
		Profile:      profiles,
		Challenge:    challenges,
		Submission:   submissions,
		Notification: newMockNotificationRepo(),
	}
	svc := NewExportService(repo, zap.NewNop())
	return &exportFixture{
		svc:         svc,
		profiles:    profiles,
		challenges:  challenges,
		submissions: submissions,
	}
}

// ── ExportProgress 测试 ──

func TestExportService_ExportProgress(t *testing.T) {
	f := setupExportTest()
	f.challenges.challenges["c1"] = &model.Challenge{
		ChallengeID: "c1", Title: "Intro Challenge", Difficulty: model.DifficultyEasy, WeekNumber: 1,
	}
	f.profiles.profiles["u1"] = &model.UserProfile{UserID: "u1", Name: "Ann", Role: model.RoleNewbie}
	f.profiles.profiles["s1"] = &model.UserProfile{UserID: "s1", Name: "Bayar", Role: model.RoleSenior}
	f.submissions.Create(context.Background(), &model.Submission{ //nolint:errcheck
		UserID: "u1", ChallengeID: "c1", Content: "done", Status: model.SubmissionApproved,
	})

	buf, filename, err := f.svc.ExportProgress(context.Background())
	if err != nil {
		t.Fatalf("ExportProgress 应成功: %v", err)
	}
	if !strings.HasPrefix(filename, "bondly_progress_") || !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名格式错误: %s", filename)
	}

	// 回读校验内容
	xf, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("输出应为合法 xlsx: %v", err)
	}
	defer xf.Close()

	rows, err := xf.GetRows("Progress")
	if err != nil {
		t.Fatalf("读取 Progress sheet 失败: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("期望表头+1 行数据，实际=%d 行", len(rows))
	}
	if rows[0][0] != "Name" || !strings.Contains(rows[0][1], "Intro Challenge") {
		t.Errorf("表头错误: %v", rows[0])
	}
	if rows[1][0] != "Ann" || rows[1][1] != model.SubmissionApproved {
		t.Errorf("数据行错误: %v", rows[1])
	}
}

func TestExportService_ExportProgress_NoSubmissionDash(t *testing.T) {
	f := setupExportTest()
	f.challenges.challenges["c1"] = &model.Challenge{
		ChallengeID: "c1", Title: "Intro Challenge", WeekNumber: 1,
	}
	f.profiles.profiles["u1"] = &model.UserProfile{UserID: "u1", Name: "Ann", Role: model.RoleNewbie}

	buf, _, err := f.svc.ExportProgress(context.Background())
	if err != nil {
		t.Fatalf("ExportProgress 应成功: %v", err)
	}

	xf, _ := excelize.OpenReader(buf)
	defer xf.Close()
	rows, _ := xf.GetRows("Progress")
	if rows[1][1] != "-" {
		t.Errorf("无提交时单元格应为 \"-\"，实际=%s", rows[1][1])
	}
}

func TestExportService_ExportProgress_NoChallenges(t *testing.T) {
	f := setupExportTest()

	_, _, err := f.svc.ExportProgress(context.Background())
	if !errors.Is(err, ErrExportNoChallenges) {
		t.Errorf("期望 ErrExportNoChallenges，实际=%v", err)
	}
}

// ── ChallengeCalendar 测试 ──

func TestExportService_ChallengeCalendar(t *testing.T) {
	f := setupExportTest()
	f.challenges.challenges["c1"] = &model.Challenge{
		ChallengeID: "c1", Title: "Intro Challenge", Difficulty: model.DifficultyEasy, WeekNumber: 1, Points: 10,
	}
	f.challenges.challenges["c2"] = &model.Challenge{
		ChallengeID: "c2", Title: "Design Critique", Difficulty: model.DifficultyMedium, WeekNumber: 2, Points: 20,
	}

	// 2026-09-02 是周三，第 1 周周一应为 2026-08-31
	start := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	out, err := f.svc.ChallengeCalendar(context.Background(), start)
	if err != nil {
		t.Fatalf("ChallengeCalendar 应成功: %v", err)
	}

	if !strings.Contains(out, "BEGIN:VCALENDAR") || !strings.Contains(out, "END:VCALENDAR") {
		t.Error("输出应为合法 iCalendar")
	}
	if !strings.Contains(out, "SUMMARY:Intro Challenge") || !strings.Contains(out, "SUMMARY:Design Critique") {
		t.Error("每个挑战应有一个事件")
	}
	if !strings.Contains(out, "20260831") {
		t.Error("第 1 周事件应落在起始周周一 2026-08-31")
	}
	if !strings.Contains(out, "20260907") {
		t.Error("第 2 周事件应落在 2026-09-07")
	}
}

func TestExportService_ChallengeCalendar_NoChallenges(t *testing.T) {
	f := setupExportTest()

	_, err := f.svc.ChallengeCalendar(context.Background(), time.Now())
	if !errors.Is(err, ErrExportNoChallenges) {
		t.Errorf("期望 ErrExportNoChallenges，实际=%v", err)
	}
}
