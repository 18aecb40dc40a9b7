package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"presence-hub/backend/config"
	"presence-hub/backend/internal/model"
)

func testImportConfig() *config.ImportConfig {
	return &config.ImportConfig{
		MaxRows:         1000,
		DayColumnOffset: 2,
	}
}

// setupTestImportService 装配班次目录（早/晚）与一名员工 E001
func setupTestImportService() (ScheduleImportService, *testRepos) {
	repos := newTestRepos()
	repos.shift.add(&model.Shift{Name: "早班", StartTime: "08:00", EndTime: "16:00", IsActive: true})
	repos.shift.add(&model.Shift{Name: "晚班", StartTime: "16:00", EndTime: "24:00", IsActive: true})
	repos.employee.add(&model.Employee{
		EmployeeNumber: "E001",
		Name:           "张三",
		IsActive:       true,
	})
	svc := NewScheduleImportService(testImportConfig(), repos.repository(), zap.NewNop())
	return svc, repos
}

func scheduleRow(rowNum int, number, name string, cells ...DayCell) ScheduleRow {
	return ScheduleRow{
		RowNum:         rowNum,
		EmployeeNumber: number,
		DisplayName:    name,
		Cells:          cells,
	}
}

// ── ImportSchedule 测试 ──

func TestScheduleImport_DominantMorning(t *testing.T) {
	svc, repos := setupTestImportService()
	morningID := repos.shift.shifts[0].ShiftID

	rows := []ScheduleRow{
		scheduleRow(2, "E001", "张三",
			DayCell{Day: 1, Raw: "S"},
			DayCell{Day: 2, Raw: "S"},
			DayCell{Day: 3, Raw: "OF"},
		),
	}

	result, err := svc.ImportSchedule(context.Background(), rows, 7, 2025)
	if err != nil {
		t.Fatalf("ImportSchedule 应成功: %v", err)
	}
	if result.ImportedCount != 3 {
		t.Errorf("期望导入 3 条，实际=%d", result.ImportedCount)
	}
	if result.ErrorCount != 0 {
		t.Errorf("期望无错误，实际=%d: %+v", result.ErrorCount, result.Errors)
	}

	assignments := repos.shiftAssignment.assignments
	if len(assignments) != 3 {
		t.Fatalf("期望 3 条排班记录，实际=%d", len(assignments))
	}
	if assignments[0].ShiftCode != "MORNING" || assignments[0].AssignedDate.Format("2006-01-02") != "2025-07-01" {
		t.Errorf("第 1 条应为 2025-07-01 MORNING，实际=%s %s",
			assignments[0].AssignedDate.Format("2006-01-02"), assignments[0].ShiftCode)
	}
	if assignments[0].ShiftID == nil || *assignments[0].ShiftID != morningID {
		t.Error("早班排班应关联早班班次 ID")
	}
	if assignments[2].ShiftCode != "OFF" {
		t.Errorf("第 3 条应为 OFF，实际=%s", assignments[2].ShiftCode)
	}
	if assignments[2].ShiftID != nil {
		t.Error("休息日不应关联班次 ID")
	}

	// 早班 2 次 > 晚班 0 次 → 默认班次覆写为早班
	emp := repos.employee.employees[0]
	if emp.DefaultShiftID == nil || *emp.DefaultShiftID != morningID {
		t.Error("主导班次应更新为早班")
	}
}

func TestScheduleImport_DominantEvening(t *testing.T) {
	svc, repos := setupTestImportService()
	eveningID := repos.shift.shifts[1].ShiftID

	rows := []ScheduleRow{
		scheduleRow(2, "E001", "张三",
			DayCell{Day: 1, Raw: "A"},
			DayCell{Day: 2, Raw: "A"},
			DayCell{Day: 3, Raw: "S"},
		),
	}

	if _, err := svc.ImportSchedule(context.Background(), rows, 7, 2025); err != nil {
		t.Fatalf("ImportSchedule 应成功: %v", err)
	}

	emp := repos.employee.employees[0]
	if emp.DefaultShiftID == nil || *emp.DefaultShiftID != eveningID {
		t.Error("主导班次应更新为晚班")
	}
}

func TestScheduleImport_TieKeepsDefault(t *testing.T) {
	svc, repos := setupTestImportService()

	rows := []ScheduleRow{
		scheduleRow(2, "E001", "张三",
			DayCell{Day: 1, Raw: "S"},
			DayCell{Day: 2, Raw: "A"},
		),
	}

	if _, err := svc.ImportSchedule(context.Background(), rows, 7, 2025); err != nil {
		t.Fatalf("ImportSchedule 应成功: %v", err)
	}

	if repos.employee.employees[0].DefaultShiftID != nil {
		t.Error("早晚持平时不应覆写默认班次")
	}
}

func TestScheduleImport_OffOnlyKeepsDefault(t *testing.T) {
	svc, repos := setupTestImportService()

	rows := []ScheduleRow{
		scheduleRow(2, "E001", "张三",
			DayCell{Day: 1, Raw: "OF"},
			DayCell{Day: 2, Raw: "Ç"},
		),
	}

	result, err := svc.ImportSchedule(context.Background(), rows, 7, 2025)
	if err != nil {
		t.Fatalf("ImportSchedule 应成功: %v", err)
	}
	if result.ImportedCount != 2 {
		t.Errorf("期望导入 2 条，实际=%d", result.ImportedCount)
	}
	if repos.employee.employees[0].DefaultShiftID != nil {
		t.Error("无早晚班时不应覆写默认班次")
	}
}

func TestScheduleImport_DuplicateRowsAggregated(t *testing.T) {
	svc, repos := setupTestImportService()
	eveningID := repos.shift.shifts[1].ShiftID

	// 同一工号出现两行：单行看早班占优（1:0），跨行汇总晚班占优（1:2）
	rows := []ScheduleRow{
		scheduleRow(2, "E001", "张三", DayCell{Day: 1, Raw: "S"}),
		scheduleRow(3, "E001", "张三",
			DayCell{Day: 2, Raw: "A"},
			DayCell{Day: 3, Raw: "A"},
		),
	}

	result, err := svc.ImportSchedule(context.Background(), rows, 7, 2025)
	if err != nil {
		t.Fatalf("ImportSchedule 应成功: %v", err)
	}
	if result.ImportedCount != 3 {
		t.Errorf("两行的单元格都应导入，实际=%d", result.ImportedCount)
	}

	if repos.employee.updateCalls != 1 {
		t.Errorf("每名员工每次导入至多更新一次默认班次，实际调用=%d 次", repos.employee.updateCalls)
	}
	emp := repos.employee.employees[0]
	if emp.DefaultShiftID == nil || *emp.DefaultShiftID != eveningID {
		t.Error("跨行汇总后主导班次应为晚班")
	}
}

func TestScheduleImport_UnknownEmployeeRowIsolated(t *testing.T) {
	svc, repos := setupTestImportService()

	rows := []ScheduleRow{
		scheduleRow(2, "E999", "李四", DayCell{Day: 1, Raw: "S"}),
		scheduleRow(3, "E001", "张三", DayCell{Day: 1, Raw: "S"}),
	}

	result, err := svc.ImportSchedule(context.Background(), rows, 7, 2025)
	if err != nil {
		t.Fatalf("ImportSchedule 应成功: %v", err)
	}
	if result.ImportedCount != 1 {
		t.Errorf("已知员工的行应正常导入，实际=%d", result.ImportedCount)
	}
	if result.ErrorCount != 1 {
		t.Fatalf("未知员工应记 1 条错误，实际=%d", result.ErrorCount)
	}
	if result.Errors[0].EmployeeNumber != "E999" {
		t.Errorf("错误应归属 E999，实际=%s", result.Errors[0].EmployeeNumber)
	}
	if len(repos.shiftAssignment.assignments) != 1 {
		t.Errorf("未知员工不应产生排班记录，实际=%d 条", len(repos.shiftAssignment.assignments))
	}
}

func TestScheduleImport_UnrecognizedCode(t *testing.T) {
	svc, repos := setupTestImportService()

	rows := []ScheduleRow{
		scheduleRow(2, "E001", "张三",
			DayCell{Day: 1, Raw: "S"},
			DayCell{Day: 2, Raw: "X"},
			DayCell{Day: 3, Raw: "A"},
		),
	}

	result, err := svc.ImportSchedule(context.Background(), rows, 7, 2025)
	if err != nil {
		t.Fatalf("ImportSchedule 应成功: %v", err)
	}
	if result.ImportedCount != 2 {
		t.Errorf("可识别单元格应照常导入，实际=%d", result.ImportedCount)
	}
	if result.ErrorCount != 1 {
		t.Fatalf("未识别代码应记 1 条错误，实际=%d", result.ErrorCount)
	}
	if !strings.Contains(result.Errors[0].Reason, `"X"`) {
		t.Errorf("错误信息应包含原始代码，实际=%s", result.Errors[0].Reason)
	}
	if len(repos.shiftAssignment.assignments) != 2 {
		t.Errorf("未识别单元格不应落库，实际=%d 条", len(repos.shiftAssignment.assignments))
	}
}

func TestScheduleImport_LeaveMarkerSkipped(t *testing.T) {
	svc, repos := setupTestImportService()

	rows := []ScheduleRow{
		scheduleRow(2, "E001", "张三",
			DayCell{Day: 1, Raw: "İZİN"},
			DayCell{Day: 2, Raw: "rapor"},
			DayCell{Day: 3, Raw: "Yıllık İzin"}, // 标题格式也须跳过
			DayCell{Day: 4, Raw: "S"},
		),
	}

	result, err := svc.ImportSchedule(context.Background(), rows, 7, 2025)
	if err != nil {
		t.Fatalf("ImportSchedule 应成功: %v", err)
	}
	if result.ErrorCount != 0 {
		t.Errorf("请假标记不应计错误，实际=%d: %+v", result.ErrorCount, result.Errors)
	}
	if result.ImportedCount != 1 {
		t.Errorf("仅 S 单元格应导入，实际=%d", result.ImportedCount)
	}
	if len(repos.shiftAssignment.assignments) != 1 {
		t.Errorf("请假标记不应落库，实际=%d 条", len(repos.shiftAssignment.assignments))
	}
}

func TestScheduleImport_RepeatAppends(t *testing.T) {
	svc, repos := setupTestImportService()

	rows := []ScheduleRow{
		scheduleRow(2, "E001", "张三", DayCell{Day: 1, Raw: "S"}),
	}

	if _, err := svc.ImportSchedule(context.Background(), rows, 7, 2025); err != nil {
		t.Fatalf("首次导入应成功: %v", err)
	}
	if _, err := svc.ImportSchedule(context.Background(), rows, 7, 2025); err != nil {
		t.Fatalf("二次导入应成功: %v", err)
	}

	// 追加语义：重复导入产生重复排班行
	if len(repos.shiftAssignment.assignments) != 2 {
		t.Errorf("重复导入应追加行，实际=%d 条", len(repos.shiftAssignment.assignments))
	}
}

func TestScheduleImport_WriteFailureCounted(t *testing.T) {
	svc, repos := setupTestImportService()
	repos.shiftAssignment.failFor[repos.employee.employees[0].EmployeeID] = errors.New("insert failed")

	rows := []ScheduleRow{
		scheduleRow(2, "E001", "张三", DayCell{Day: 1, Raw: "S"}),
	}

	result, err := svc.ImportSchedule(context.Background(), rows, 7, 2025)
	if err != nil {
		t.Fatalf("单条写入失败不应中断导入: %v", err)
	}
	if result.ImportedCount != 0 {
		t.Errorf("写入失败不应计入导入数，实际=%d", result.ImportedCount)
	}
	if result.ErrorCount != 1 {
		t.Errorf("写入失败应记 1 条错误，实际=%d", result.ErrorCount)
	}
}

func TestScheduleImport_BadMonth(t *testing.T) {
	svc, _ := setupTestImportService()

	_, err := svc.ImportSchedule(context.Background(), []ScheduleRow{scheduleRow(2, "E001", "张三")}, 13, 2025)
	if !errors.Is(err, ErrImportBadMonth) {
		t.Errorf("期望 ErrImportBadMonth，实际: %v", err)
	}
}

// ── ParseScheduleFile 测试 ──

// buildScheduleWorkbook 在内存中构造一个排班表
// headerCells 为日期列表头（C 列起），rows 为 [工号, 姓名, 单元格...]
func buildScheduleWorkbook(t *testing.T, headerCells []interface{}, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	_ = f.SetCellValue(sheet, "A1", "工号")
	_ = f.SetCellValue(sheet, "B1", "姓名")
	for i, v := range headerCells {
		cell, _ := excelize.CoordinatesToCellName(3+i, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("构造测试工作簿失败: %v", err)
	}
	return buf
}

func TestParseScheduleFile_NumericHeaders(t *testing.T) {
	svc, _ := setupTestImportService()

	buf := buildScheduleWorkbook(t,
		[]interface{}{1, 2, 3},
		[][]interface{}{
			{"E001", "张三", "S", "A", "OF"},
		},
	)

	rows, err := svc.ParseScheduleFile(buf, 7, 2025)
	if err != nil {
		t.Fatalf("解析应成功: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("期望 1 行，实际=%d", len(rows))
	}
	if rows[0].EmployeeNumber != "E001" {
		t.Errorf("期望工号=E001，实际=%s", rows[0].EmployeeNumber)
	}
	if len(rows[0].Cells) != 3 {
		t.Fatalf("期望 3 个日期单元格，实际=%d", len(rows[0].Cells))
	}
	if rows[0].Cells[1].Day != 2 || rows[0].Cells[1].Raw != "A" {
		t.Errorf("第 2 列应为 2 日 A，实际=%+v", rows[0].Cells[1])
	}
}

func TestParseScheduleFile_BlankCellsSkipped(t *testing.T) {
	svc, _ := setupTestImportService()

	buf := buildScheduleWorkbook(t,
		[]interface{}{1, 2, 3},
		[][]interface{}{
			{"E001", "张三", "S", "", "OF"},
		},
	)

	rows, err := svc.ParseScheduleFile(buf, 7, 2025)
	if err != nil {
		t.Fatalf("解析应成功: %v", err)
	}
	if len(rows[0].Cells) != 2 {
		t.Fatalf("空白单元格应跳过，实际=%d 个", len(rows[0].Cells))
	}
	if rows[0].Cells[1].Day != 3 {
		t.Errorf("跳过空白后下一个单元格应为 3 日，实际=%d", rows[0].Cells[1].Day)
	}
}

func TestParseScheduleFile_BadMonth(t *testing.T) {
	svc, _ := setupTestImportService()

	buf := buildScheduleWorkbook(t, []interface{}{1}, [][]interface{}{{"E001", "张三", "S"}})
	if _, err := svc.ParseScheduleFile(buf, 0, 2025); !errors.Is(err, ErrImportBadMonth) {
		t.Errorf("期望 ErrImportBadMonth，实际: %v", err)
	}
}

func TestParseScheduleFile_NoData(t *testing.T) {
	svc, _ := setupTestImportService()

	buf := buildScheduleWorkbook(t, []interface{}{1, 2, 3}, nil)
	if _, err := svc.ParseScheduleFile(buf, 7, 2025); !errors.Is(err, ErrImportNoData) {
		t.Errorf("期望 ErrImportNoData，实际: %v", err)
	}
}

func TestParseScheduleFile_TooManyRows(t *testing.T) {
	repos := newTestRepos()
	cfg := &config.ImportConfig{MaxRows: 2, DayColumnOffset: 2}
	svc := NewScheduleImportService(cfg, repos.repository(), zap.NewNop())

	var dataRows [][]interface{}
	for i := 0; i < 3; i++ {
		dataRows = append(dataRows, []interface{}{fmt.Sprintf("E%03d", i+1), "员工", "S"})
	}
	buf := buildScheduleWorkbook(t, []interface{}{1}, dataRows)

	if _, err := svc.ParseScheduleFile(buf, 7, 2025); !errors.Is(err, ErrImportTooManyRows) {
		t.Errorf("期望 ErrImportTooManyRows，实际: %v", err)
	}
}

// ── resolveDayColumns 测试 ──

func TestResolveDayColumns_Numeric(t *testing.T) {
	// C 列起：1, 2, 3
	header := []string{"工号", "姓名", "1", "2", "3"}
	got := resolveDayColumns(header, 2, 31)

	for col, want := range map[int]int{2: 1, 3: 2, 4: 3} {
		if got[col] != want {
			t.Errorf("列 %d 期望日号=%d，实际=%d", col, want, got[col])
		}
	}
}

func TestResolveDayColumns_DateSerial(t *testing.T) {
	// 45839 = 2025-07-01，45840 = 2025-07-02
	header := []string{"工号", "姓名", "45839", "45840"}
	got := resolveDayColumns(header, 2, 31)

	if got[2] != 1 {
		t.Errorf("序列号 45839 应解析为 1 日，实际=%d", got[2])
	}
	if got[3] != 2 {
		t.Errorf("序列号 45840 应解析为 2 日，实际=%d", got[3])
	}
}

func TestResolveDayColumns_PositionalFallback(t *testing.T) {
	// 表头无法解析为数字：回退到列位置，第一个日期列 = 1 日
	header := []string{"工号", "姓名", "周二", "周三", "周四"}
	got := resolveDayColumns(header, 2, 31)

	for col, want := range map[int]int{2: 1, 3: 2, 4: 3} {
		if got[col] != want {
			t.Errorf("列 %d 期望日号=%d，实际=%d", col, want, got[col])
		}
	}
}

func TestResolveDayColumns_OutOfMonthDropped(t *testing.T) {
	// 2 月只有 28 天：29/30/31 列丢弃
	header := []string{"工号", "姓名", "28", "29", "30", "31"}
	got := resolveDayColumns(header, 2, 28)

	if got[2] != 28 {
		t.Errorf("28 日应保留，实际=%d", got[2])
	}
	for _, col := range []int{3, 4, 5} {
		if _, ok := got[col]; ok {
			t.Errorf("超出当月天数的列 %d 应丢弃", col)
		}
	}
}

// ── BuildTemplate 测试 ──

func TestBuildTemplate(t *testing.T) {
	svc, _ := setupTestImportService()

	buf, filename, err := svc.BuildTemplate()
	if err != nil {
		t.Fatalf("BuildTemplate 应成功: %v", err)
	}
	if filename != "schedule_template.xlsx" {
		t.Errorf("期望文件名=schedule_template.xlsx，实际=%s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("模板应为合法 xlsx: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	a1, _ := f.GetCellValue(sheet, "A1")
	if a1 != "工号" {
		t.Errorf("期望 A1=工号，实际=%s", a1)
	}
	c1, _ := f.GetCellValue(sheet, "C1")
	if c1 != "1" {
		t.Errorf("期望 C1=1，实际=%s", c1)
	}
}
