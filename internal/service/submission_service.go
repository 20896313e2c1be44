package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ider-17/Bondly/internal/dto"
	"github.com/ider-17/Bondly/internal/model"
	"github.com/ider-17/Bondly/internal/repository"
	pkgerrors "github.com/ider-17/Bondly/pkg/errors"
)

var (
	ErrSubmissionNotFound        = errors.New("提交记录不存在")
	ErrSubmissionAlreadyReviewed = errors.New("该提交已被审批")
	ErrInvalidDecision           = errors.New("审批结果只能是 approved 或 declined")
	ErrEmptyContent              = errors.New("提交内容不能为空")
)

// SubmissionService 挑战提交与审批业务接口
type SubmissionService interface {
	// Submit 创建提交并向所有 senior 发起审批请求通知。
	// 提交落库失败或挑战不存在时整体失败；通知环节失败只记日志。
	// 无幂等键：重复提交会产生第二条 pending 记录，属预期行为。
	Submit(ctx context.Context, userID string, req *dto.SubmitChallengeRequest) (*dto.SubmissionResponse, error)
	// Review 审批提交并通知提交者，邮件推送 best-effort。
	// 状态只能从 pending 推进一次；重复审批返回 ErrSubmissionAlreadyReviewed。
	Review(ctx context.Context, submissionID, decision, reviewerID string) (*dto.SubmissionResponse, error)
	ListMine(ctx context.Context, userID string) ([]dto.SubmissionResponse, error)
	// ListPending 审批队列：所有 pending 提交，新的在前，带挑战与提交者信息
	ListPending(ctx context.Context) ([]dto.PendingSubmissionResponse, error)
}

type submissionService struct {
	repo     *repository.Repository
	notifier NotificationService
	mailer   Mailer
	logger   *zap.Logger
}

// NewSubmissionService 创建 SubmissionService 实例
func NewSubmissionService(
	repo *repository.Repository,
	notifier NotificationService,
	mailer Mailer,
	logger *zap.Logger,
) SubmissionService {
	return &submissionService{
		repo:     repo,
		notifier: notifier,
		mailer:   mailer,
		logger:   logger,
	}
}

// ═══════════════════════════════════════════════════════════
// Submit — 挑战提交 + 审批请求扩散
// ═══════════════════════════════════════════════════════════
//
// 步骤（非原子，中途失败保留已完成部分）：
//   1. 创建 pending 提交         — 失败则整体失败
//   2. 查询挑战标题              — 不存在则整体失败（提交已落库，接受该部分状态）
//   3. 查询所有 senior           — 失败或为空仅告警，提交仍算成功
//   4. 批量写入审批请求通知并推送 — 失败仅告警

func (s *submissionService) Submit(ctx context.Context, userID string, req *dto.SubmitChallengeRequest) (*dto.SubmissionResponse, error) {
	if req.Content == "" {
		return nil, ErrEmptyContent
	}

	// 提交者资料：通知文案需要展示名，未完成 onboarding 不能提交
	profile, err := s.repo.Profile.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		s.logger.Error("查询提交者资料失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	// 1. 创建提交
	submission := &model.Submission{
		UserID:      userID,
		ChallengeID: req.ChallengeID,
		Content:     req.Content,
		Status:      model.SubmissionPending,
	}
	if err := s.repo.Submission.Create(ctx, submission); err != nil {
		s.logger.Error("创建提交失败",
			zap.String("user_id", userID),
			zap.String("challenge_id", req.ChallengeID),
			zap.Error(err),
		)
		return nil, err
	}

	// 2. 查询挑战标题（用于通知文案）
	challenge, err := s.repo.Challenge.GetByID(ctx, req.ChallengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChallengeNotFound
		}
		s.logger.Error("查询挑战失败", zap.String("challenge_id", req.ChallengeID), zap.Error(err))
		return nil, err
	}

	// 3. 查询审批人：role=senior 的全部资料
	//    查询失败或没有 senior 时提交本身已成功，只告警
	seniors, err := s.repo.Profile.ListByRole(ctx, model.RoleSenior)
	if err != nil {
		s.logger.Warn("查询 senior 列表失败，跳过审批通知", zap.Error(err))
		return newSubmissionResponse(submission), nil
	}
	if len(seniors) == 0 {
		s.logger.Warn("没有可用的 senior，跳过审批通知",
			zap.String("submission_id", submission.SubmissionID))
		return newSubmissionResponse(submission), nil
	}

	// 4. 批量生成审批请求通知
	notifications := make([]model.Notification, 0, len(seniors))
	for _, senior := range seniors {
		meta := datatypes.NewJSONType(model.NotificationMetadata{
			ChallengeID:   req.ChallengeID,
			SubmissionID:  submission.SubmissionID,
			RequesterName: profile.Name,
		})
		notifications = append(notifications, model.Notification{
			UserID:   senior.UserID,
			Title:    "New Challenge Approval Request",
			Message:  fmt.Sprintf("%s has submitted %q for approval", profile.Name, challenge.Title),
			Type:     model.NotifyApprovalRequest,
			Metadata: &meta,
		})
	}
	if err := s.notifier.Dispatch(ctx, notifications); err != nil {
		s.logger.Warn("写入审批请求通知失败",
			zap.String("submission_id", submission.SubmissionID),
			zap.Error(err),
		)
	}

	return newSubmissionResponse(submission), nil
}

// ═══════════════════════════════════════════════════════════
// Review — 审批 + 结果通知 + best-effort 邮件
// ═══════════════════════════════════════════════════════════

func (s *submissionService) Review(ctx context.Context, submissionID, decision, reviewerID string) (*dto.SubmissionResponse, error) {
	// 1. 校验审批结果取值
	if decision != model.SubmissionApproved && decision != model.SubmissionDeclined {
		return nil, ErrInvalidDecision
	}

	// 2. 条件更新状态：pending → approved|declined，单向一次
	submission, err := s.repo.Submission.UpdateStatus(ctx, submissionID, decision, reviewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		if errors.Is(err, pkgerrors.ErrAlreadyReviewed) {
			return nil, ErrSubmissionAlreadyReviewed
		}
		s.logger.Error("更新提交状态失败", zap.String("submission_id", submissionID), zap.Error(err))
		return nil, err
	}

	// 3. 组装结果通知（文案按结果区分）
	reviewerName := s.lookupName(ctx, reviewerID)
	challengeTitle := submission.ChallengeID
	if submission.Challenge != nil {
		challengeTitle = submission.Challenge.Title
	}

	var title, message, notifyType string
	if decision == model.SubmissionApproved {
		title = "Challenge Approved!"
		message = fmt.Sprintf("Great job! Your %q challenge has been approved by %s 🎉", challengeTitle, reviewerName)
		notifyType = model.NotifyApproved
	} else {
		title = "Challenge Needs Revision"
		message = fmt.Sprintf("Your %q challenge needs some revisions. Please check the feedback and resubmit.", challengeTitle)
		notifyType = model.NotifyDeclined
	}

	meta := datatypes.NewJSONType(model.NotificationMetadata{
		ChallengeID:  submission.ChallengeID,
		SubmissionID: submission.SubmissionID,
	})
	notification := model.Notification{
		UserID:   submission.UserID,
		Title:    title,
		Message:  message,
		Type:     notifyType,
		Metadata: &meta,
	}
	if err := s.notifier.Dispatch(ctx, []model.Notification{notification}); err != nil {
		// 审批已生效，通知失败不回滚
		s.logger.Warn("写入审批结果通知失败",
			zap.String("submission_id", submissionID),
			zap.Error(err),
		)
	}

	// 4. best-effort 邮件：任何失败只记日志
	s.sendOutcomeEmail(ctx, submission.UserID, title, message)

	return newSubmissionResponse(submission), nil
}

func (s *submissionService) ListMine(ctx context.Context, userID string) ([]dto.SubmissionResponse, error) {
	submissions, err := s.repo.Submission.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询提交记录失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.SubmissionResponse, 0, len(submissions))
	for i := range submissions {
		result = append(result, *newSubmissionResponse(&submissions[i]))
	}
	return result, nil
}

func (s *submissionService) ListPending(ctx context.Context) ([]dto.PendingSubmissionResponse, error) {
	submissions, err := s.repo.Submission.ListPending(ctx)
	if err != nil {
		s.logger.Error("查询审批队列失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.PendingSubmissionResponse, 0, len(submissions))
	for i := range submissions {
		sub := &submissions[i]
		item := dto.PendingSubmissionResponse{
			SubmissionResponse: *newSubmissionResponse(sub),
		}
		if sub.Challenge != nil {
			item.ChallengeTitle = sub.Challenge.Title
			item.ChallengeDifficulty = sub.Challenge.Difficulty
		}
		if sub.Profile != nil {
			item.SubmitterName = sub.Profile.Name
			item.SubmitterAvatarURL = sub.Profile.AvatarURL
		}
		result = append(result, item)
	}
	return result, nil
}

// ── 辅助 ──

// lookupName 审批人展示名；查不到时使用兜底文案
func (s *submissionService) lookupName(ctx context.Context, userID string) string {
	profile, err := s.repo.Profile.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("查询审批人资料失败", zap.String("user_id", userID), zap.Error(err))
		}
		return "your buddy"
	}
	return profile.Name
}

// sendOutcomeEmail 审批结果邮件，收件人无邮箱或发送失败都不影响审批结果
func (s *submissionService) sendOutcomeEmail(ctx context.Context, userID, subject, message string) {
	if s.mailer == nil {
		return
	}

	profile, err := s.repo.Profile.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Warn("查询收件人资料失败，跳过邮件", zap.String("user_id", userID), zap.Error(err))
		return
	}
	if profile.Email == nil || *profile.Email == "" {
		s.logger.Info("收件人未设置邮箱，跳过邮件", zap.String("user_id", userID))
		return
	}

	if err := s.mailer.Send(*profile.Email, profile.Name, subject, message); err != nil {
		s.logger.Warn("发送审批结果邮件失败",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}
}

func newSubmissionResponse(sub *model.Submission) *dto.SubmissionResponse {
	return &dto.SubmissionResponse{
		SubmissionID: sub.SubmissionID,
		UserID:       sub.UserID,
		ChallengeID:  sub.ChallengeID,
		Content:      sub.Content,
		Status:       sub.Status,
		ReviewerID:   sub.ReviewerID,
		ReviewedAt:   sub.ReviewedAt,
		CreatedAt:    sub.CreatedAt,
	}
}
