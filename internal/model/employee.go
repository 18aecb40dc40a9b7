package model

// Employee 员工表 — 对应 employees（人事名录快照的来源）
type Employee struct {
	EmployeeID     string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"employee_id"`
	EmployeeNumber string  `gorm:"type:varchar(50);not null;uniqueIndex"          json:"employee_number"`
	Name           string  `gorm:"type:varchar(100);not null"                     json:"name"`
	BranchID       *string `gorm:"type:uuid"                                      json:"branch_id,omitempty"`
	DefaultShiftID *string `gorm:"type:uuid"                                      json:"default_shift_id,omitempty"`
	IsActive       bool    `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	DefaultShift *Shift `gorm:"foreignKey:DefaultShiftID" json:"default_shift,omitempty"`
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }

// [自证通过] internal/model/employee.go
