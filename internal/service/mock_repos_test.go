package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ider-17/Bondly/internal/model"
	pkgerrors "github.com/ider-17/Bondly/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users   map[string]*model.User
	nextSeq int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.nextSeq++
		user.UserID = fmt.Sprintf("user-%03d", m.nextSeq)
	}
	user.CreatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock ProfileRepository ──

type mockProfileRepo struct {
	profiles map[string]*model.UserProfile
	listErr  error
	getErr   error
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[string]*model.UserProfile)}
}

func (m *mockProfileRepo) Upsert(_ context.Context, profile *model.UserProfile) error {
	if existing, ok := m.profiles[profile.UserID]; ok {
		// 更新路径不覆盖角色，与 GORM OnConflict DoUpdates 行为一致
		profile.Role = existing.Role
	}
	cp := *profile
	m.profiles[profile.UserID] = &cp
	return nil
}

func (m *mockProfileRepo) GetByUserID(_ context.Context, userID string) (*model.UserProfile, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if p, ok := m.profiles[userID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfileRepo) ListByRole(_ context.Context, role string) ([]model.UserProfile, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []model.UserProfile
	for _, p := range m.profiles {
		if p.Role == role {
			result = append(result, *p)
		}
	}
	return result, nil
}

// ── Mock ChallengeRepository ──

type mockChallengeRepo struct {
	challenges map[string]*model.Challenge
}

func newMockChallengeRepo() *mockChallengeRepo {
	return &mockChallengeRepo{challenges: make(map[string]*model.Challenge)}
}

func (m *mockChallengeRepo) GetByID(_ context.Context, id string) (*model.Challenge, error) {
	if c, ok := m.challenges[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockChallengeRepo) List(_ context.Context, weekNumber *int) ([]model.Challenge, error) {
	var result []model.Challenge
	for _, c := range m.challenges {
		if weekNumber != nil && c.WeekNumber != *weekNumber {
			continue
		}
		result = append(result, *c)
	}
	return result, nil
}

// ── Mock SubmissionRepository ──

type mockSubmissionRepo struct {
	submissions map[string]*model.Submission
	order       []string // 插入顺序，模拟 created_at 排序
	challenges  *mockChallengeRepo
	profiles    *mockProfileRepo
	nextSeq     int
	createErr   error
}

func newMockSubmissionRepo(challenges *mockChallengeRepo, profiles *mockProfileRepo) *mockSubmissionRepo {
	return &mockSubmissionRepo{
		submissions: make(map[string]*model.Submission),
		challenges:  challenges,
		profiles:    profiles,
	}
}

func (m *mockSubmissionRepo) Create(_ context.Context, submission *model.Submission) error {
	if m.createErr != nil {
		return m.createErr
	}
	if submission.SubmissionID == "" {
		m.nextSeq++
		submission.SubmissionID = fmt.Sprintf("sub-%03d", m.nextSeq)
	}
	submission.CreatedAt = time.Now()
	m.submissions[submission.SubmissionID] = submission
	m.order = append(m.order, submission.SubmissionID)
	return nil
}

// preload 填充关联，模拟 GORM Preload
func (m *mockSubmissionRepo) preload(sub *model.Submission) *model.Submission {
	cp := *sub
	if m.challenges != nil {
		if c, ok := m.challenges.challenges[sub.ChallengeID]; ok {
			cp.Challenge = c
		}
	}
	if m.profiles != nil {
		if p, ok := m.profiles.profiles[sub.UserID]; ok {
			cp.Profile = p
		}
	}
	return &cp
}

func (m *mockSubmissionRepo) GetByID(_ context.Context, id string) (*model.Submission, error) {
	if s, ok := m.submissions[id]; ok {
		return m.preload(s), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubmissionRepo) ListByUser(_ context.Context, userID string) ([]model.Submission, error) {
	var result []model.Submission
	// 新的在前
	for i := len(m.order) - 1; i >= 0; i-- {
		s := m.submissions[m.order[i]]
		if s.UserID == userID {
			result = append(result, *m.preload(s))
		}
	}
	return result, nil
}

func (m *mockSubmissionRepo) ListPending(_ context.Context) ([]model.Submission, error) {
	var result []model.Submission
	for i := len(m.order) - 1; i >= 0; i-- {
		s := m.submissions[m.order[i]]
		if s.Status == model.SubmissionPending {
			result = append(result, *m.preload(s))
		}
	}
	return result, nil
}

func (m *mockSubmissionRepo) ListAll(_ context.Context) ([]model.Submission, error) {
	var result []model.Submission
	for _, id := range m.order {
		result = append(result, *m.preload(m.submissions[id]))
	}
	return result, nil
}

func (m *mockSubmissionRepo) UpdateStatus(ctx context.Context, id, status, reviewerID string) (*model.Submission, error) {
	s, ok := m.submissions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if s.Status != model.SubmissionPending {
		return nil, pkgerrors.ErrAlreadyReviewed
	}
	now := time.Now()
	s.Status = status
	s.ReviewerID = &reviewerID
	s.ReviewedAt = &now
	return m.GetByID(ctx, id)
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications []*model.Notification
	nextSeq       int
	createErr     error
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func (m *mockNotificationRepo) BatchCreate(_ context.Context, notifications []model.Notification) error {
	if m.createErr != nil {
		return m.createErr
	}
	for i := range notifications {
		m.nextSeq++
		notifications[i].NotificationID = fmt.Sprintf("notif-%03d", m.nextSeq)
		notifications[i].CreatedAt = time.Now()
		cp := notifications[i]
		m.notifications = append(m.notifications, &cp)
	}
	return nil
}

func (m *mockNotificationRepo) ListByUser(_ context.Context, userID string, limit int) ([]model.Notification, error) {
	var result []model.Notification
	for i := len(m.notifications) - 1; i >= 0 && len(result) < limit; i-- {
		if m.notifications[i].UserID == userID {
			result = append(result, *m.notifications[i])
		}
	}
	return result, nil
}

func (m *mockNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, notificationID, userID string) error {
	for _, n := range m.notifications {
		if n.NotificationID == notificationID && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// forUser 按收件人过滤，测试断言用
func (m *mockNotificationRepo) forUser(userID string) []*model.Notification {
	var result []*model.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			result = append(result, n)
		}
	}
	return result
}

// ── Mock NotificationPublisher ──

type mockPublisher struct {
	published map[string][][]byte // userID -> payloads
	failAll   bool
}

func newMockPublisher() *mockPublisher {
	return &mockPublisher{published: make(map[string][][]byte)}
}

func (m *mockPublisher) PublishNotification(_ context.Context, userID string, payload []byte) error {
	if m.failAll {
		return errors.New("redis: connection refused")
	}
	m.published[userID] = append(m.published[userID], payload)
	return nil
}

// ── Mock Mailer ──

type sentMail struct {
	To      string
	Name    string
	Subject string
	Message string
}

type mockMailer struct {
	sent    []sentMail
	failAll bool
}

func (m *mockMailer) Send(to, name, subject, message string) error {
	if m.failAll {
		return errors.New("smtp: connection timed out")
	}
	m.sent = append(m.sent, sentMail{To: to, Name: name, Subject: subject, Message: message})
	return nil
}
