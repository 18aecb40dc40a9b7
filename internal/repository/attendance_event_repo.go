package repository

import (
	"context"

	"gorm.io/gorm"

	"presence-hub/backend/internal/model"
)

// AttendanceEventRepository 考勤记录数据访问接口
type AttendanceEventRepository interface {
	Create(ctx context.Context, event *model.AttendanceEvent) error
}

type attendanceEventRepo struct {
	db *gorm.DB
}

// NewAttendanceEventRepo 创建 AttendanceEventRepository 实例
func NewAttendanceEventRepo(db *gorm.DB) AttendanceEventRepository {
	return &attendanceEventRepo{db: db}
}

func (r *attendanceEventRepo) Create(ctx context.Context, event *model.AttendanceEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}
