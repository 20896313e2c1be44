package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/ider-17/Bondly/internal/dto"
	"github.com/ider-17/Bondly/internal/model"
	"github.com/ider-17/Bondly/internal/repository"
)

// ── 测试辅助 ──

func setupProfileTest() (ProfileService, *mockProfileRepo) {
	profiles := newMockProfileRepo()
	repo := &repository.Repository{
		User:         newMockUserRepo(),
		Profile:      profiles,
		Challenge:    newMockChallengeRepo(),
		Submission:   newMockSubmissionRepo(nil, nil),
		Notification: newMockNotificationRepo(),
	}
	svc := NewProfileService(repo, zap.NewNop())
	return svc, profiles
}

func validUpsertRequest() *dto.UpsertProfileRequest {
	return &dto.UpsertProfileRequest{
		Name:       "Ann",
		Interests:  []string{"UI Design", "Frontend", "Product"},
		Experience: "2 years in design",
		Goals:      "Grow into a senior designer",
	}
}

// ── Upsert 测试 ──

func TestProfileService_Upsert_Create(t *testing.T) {
	svc, _ := setupProfileTest()

	result, err := svc.Upsert(context.Background(), "u1", validUpsertRequest())
	if err != nil {
		t.Fatalf("Upsert 应成功: %v", err)
	}
	if result.Name != "Ann" {
		t.Errorf("期望Name=Ann，实际=%s", result.Name)
	}
	if result.Role != model.RoleNewbie {
		t.Errorf("首次创建角色应为 newbie，实际=%s", result.Role)
	}
	if len(result.Interests) != 3 {
		t.Errorf("期望 3 个兴趣标签，实际=%d", len(result.Interests))
	}
}

func TestProfileService_Upsert_UpdateKeepsRole(t *testing.T) {
	svc, profiles := setupProfileTest()

	// 运营侧已将该用户设为 senior
	profiles.profiles["s1"] = &model.UserProfile{
		UserID: "s1",
		Name:   "Bayar",
		Role:   model.RoleSenior,
	}

	req := validUpsertRequest()
	req.Name = "Bayar B."
	result, err := svc.Upsert(context.Background(), "s1", req)
	if err != nil {
		t.Fatalf("Upsert 应成功: %v", err)
	}
	if result.Role != model.RoleSenior {
		t.Errorf("Upsert 不应覆盖已有角色，期望=senior，实际=%s", result.Role)
	}
	if result.Name != "Bayar B." {
		t.Errorf("其余字段应被更新，实际Name=%s", result.Name)
	}
}

func TestProfileService_Upsert_InterestCount(t *testing.T) {
	svc, _ := setupProfileTest()

	cases := []struct {
		name      string
		interests []string
		wantErr   bool
	}{
		{"两个太少", []string{"UI Design", "Frontend"}, true},
		{"三个下限", []string{"UI Design", "Frontend", "Product"}, false},
		{"六个上限", []string{"a", "b", "c", "d", "e", "f"}, false},
		{"七个太多", []string{"a", "b", "c", "d", "e", "f", "g"}, true},
		{"空列表", nil, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validUpsertRequest()
			req.Interests = tc.interests
			_, err := svc.Upsert(context.Background(), "u1", req)
			if tc.wantErr && !errors.Is(err, ErrInterestCount) {
				t.Errorf("期望 ErrInterestCount，实际=%v", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("应成功，实际=%v", err)
			}
		})
	}
}

func TestProfileService_Upsert_DuplicateInterests(t *testing.T) {
	svc, _ := setupProfileTest()

	req := validUpsertRequest()
	req.Interests = []string{"UI Design", "Frontend", "UI Design"}
	_, err := svc.Upsert(context.Background(), "u1", req)
	if !errors.Is(err, ErrInterestDuplicate) {
		t.Errorf("期望 ErrInterestDuplicate，实际=%v", err)
	}
}

// ── Get 测试 ──

func TestProfileService_Get_NotFound(t *testing.T) {
	svc, _ := setupProfileTest()

	_, err := svc.Get(context.Background(), "u-ghost")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("期望 ErrProfileNotFound，实际=%v", err)
	}
}

func TestProfileService_Get_AfterUpsert(t *testing.T) {
	svc, _ := setupProfileTest()

	if _, err := svc.Upsert(context.Background(), "u1", validUpsertRequest()); err != nil {
		t.Fatalf("Upsert 应成功: %v", err)
	}

	result, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Get 应成功: %v", err)
	}
	if result.UserID != "u1" || result.Goals != "Grow into a senior designer" {
		t.Errorf("回读资料不一致: %+v", result)
	}
}
