package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"ielts-center/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoBookings   = errors.New("该场次暂无有效报名")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 花名册按报名时间排序，口语/模考场次附带口语时段三列
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportRoster 导出场次花名册为 Excel
	ExportRoster(ctx context.Context, sessionID string) (*bytes.Buffer, string, error)
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
// ExportRoster — 导出场次花名册为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 行头: | 序号 | 姓名 | 类型 | 报名日期 | 口语日期 | 口语时段 | 考场 |
//   - 仅包含未取消报名
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportRoster(ctx context.Context, sessionID string) (*bytes.Buffer, string, error) {
	session, err := s.repo.Session.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrSessionNotFound
		}
		s.logger.Error("查询场次失败", zap.Error(err))
		return nil, "", err
	}

	bookings, err := s.repo.Booking.ListBySession(ctx, sessionID)
	if err != nil {
		s.logger.Error("查询场次报名失败", zap.Error(err))
		return nil, "", err
	}
	if len(bookings) == 0 {
		return nil, "", ErrExportNoBookings
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "花名册"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 6)
	f.SetColWidth(sheetName, "B", "B", 16)
	f.SetColWidth(sheetName, "C", "D", 12)
	f.SetColWidth(sheetName, "E", "G", 14)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	title := fmt.Sprintf("%s %s %s — 花名册", session.TestDate, session.TimeLabel, moduleLabel(session.ModuleType))
	f.SetCellValue(sheetName, "A1", title)
	f.MergeCell(sheetName, "A1", "G1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	headers := []string{"序号", "姓名", "类型", "报名日期", "口语日期", "口语时段", "考场"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, fmt.Sprintf("%s2", col), h)
	}

	// 数据行
	row := 3
	for i := range bookings {
		b := &bookings[i]
		kind := "学员"
		if b.IsGuest {
			kind = "散客"
		}
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), row-2)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), b.SubjectName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), kind)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), b.BookingDate)
		if b.HasSpeakingSlot() {
			f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), b.SpeakingDate)
			f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), b.SpeakingTime)
			f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), b.SpeakingRoom)
		} else {
			f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), "-")
			f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), "-")
			f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), "-")
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("花名册_%s_%s.xlsx", session.TestDate, moduleLabel(session.ModuleType))
	return buf, filename, nil
}

// ── 辅助函数 ──

func moduleLabel(moduleType string) string {
	labels := map[string]string{
		"listening": "听力",
		"reading":   "阅读",
		"writing":   "写作",
		"speaking":  "口语",
		"mock":      "模考",
	}
	if l, ok := labels[moduleType]; ok {
		return l
	}
	return moduleType
}
