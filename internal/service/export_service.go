package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ider-17/Bondly/internal/model"
	"github.com/ider-17/Bondly/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoChallenges = errors.New("暂无挑战数据可导出")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 进度报表导出为 Excel (.xlsx)：行=newbie，列=挑战，单元格=最新提交状态
//   - 挑战日历导出为 iCalendar：每个挑战映射为所属周的全天事件
//   - Excel 以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportProgress 导出所有 newbie 的挑战进度报表
	ExportProgress(ctx context.Context) (*bytes.Buffer, string, error)
	// ChallengeCalendar 以 programStart 所在周为第 1 周生成挑战日历
	ChallengeCalendar(ctx context.Context, programStart time.Time) (string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportProgress — 挑战进度报表
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 表头: | Name | <挑战1标题> | <挑战2标题> | … |
//   - 每行一个 newbie，单元格为该挑战的最新提交状态（无提交为 "-"）
//   - 同一挑战多次提交时以最近一次为准（ListAll 按 created_at 升序，后者覆盖前者）

func (s *exportService) ExportProgress(ctx context.Context) (*bytes.Buffer, string, error) {
	// 1. 查询挑战（列）
	challenges, err := s.repo.Challenge.List(ctx, nil)
	if err != nil {
		s.logger.Error("查询挑战列表失败", zap.Error(err))
		return nil, "", err
	}
	if len(challenges) == 0 {
		return nil, "", ErrExportNoChallenges
	}

	// 2. 查询 newbie（行）
	newbies, err := s.repo.Profile.ListByRole(ctx, model.RoleNewbie)
	if err != nil {
		s.logger.Error("查询 newbie 列表失败", zap.Error(err))
		return nil, "", err
	}

	// 3. 查询全部提交并建立索引: "userID:challengeID" → status
	submissions, err := s.repo.Submission.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询提交记录失败", zap.Error(err))
		return nil, "", err
	}
	statusIndex := make(map[string]string)
	for _, sub := range submissions {
		statusIndex[sub.UserID+":"+sub.ChallengeID] = sub.Status
	}

	// 4. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Progress"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		s.logger.Error("创建 Sheet 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#22C55E"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 表头
	f.SetColWidth(sheetName, "A", "A", 20)
	f.SetCellValue(sheetName, "A1", "Name")
	for i, ch := range challenges {
		col, _ := excelize.ColumnNumberToName(2 + i)
		f.SetColWidth(sheetName, col, col, 24)
		f.SetCellValue(sheetName, fmt.Sprintf("%s1", col),
			fmt.Sprintf("W%d · %s", ch.WeekNumber, ch.Title))
	}
	lastCol, _ := excelize.ColumnNumberToName(1 + len(challenges))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", headerStyle)

	// 数据行
	for r, newbie := range newbies {
		row := r + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), newbie.Name)
		for i, ch := range challenges {
			col, _ := excelize.ColumnNumberToName(2 + i)
			status, ok := statusIndex[newbie.UserID+":"+ch.ChallengeID]
			if !ok {
				status = "-"
			}
			f.SetCellValue(sheetName, fmt.Sprintf("%s%d", col, row), status)
		}
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("bondly_progress_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ChallengeCalendar — 挑战周历（iCalendar）
// ═══════════════════════════════════════════════════════════

func (s *exportService) ChallengeCalendar(ctx context.Context, programStart time.Time) (string, error) {
	challenges, err := s.repo.Challenge.List(ctx, nil)
	if err != nil {
		s.logger.Error("查询挑战列表失败", zap.Error(err))
		return "", err
	}
	if len(challenges) == 0 {
		return "", ErrExportNoChallenges
	}

	// 对齐到所在周的周一
	weekday := int(programStart.Weekday())
	if weekday == 0 {
		weekday = 7 // 周日按 ISO 习惯归入上一周
	}
	weekStart := programStart.AddDate(0, 0, 1-weekday)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Bondly//Challenge Calendar//EN")

	now := time.Now()
	for _, ch := range challenges {
		// 第 N 周的挑战 → 该周周一的全天事件
		day := weekStart.AddDate(0, 0, (ch.WeekNumber-1)*7)

		event := cal.AddEvent(fmt.Sprintf("challenge-%s@bondly", ch.ChallengeID))
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetAllDayStartAt(day)
		event.SetAllDayEndAt(day.AddDate(0, 0, 1))
		event.SetSummary(ch.Title)
		event.SetDescription(fmt.Sprintf("Week %d · %s · %d pts", ch.WeekNumber, ch.Difficulty, ch.Points))
	}

	return cal.Serialize(), nil
}
