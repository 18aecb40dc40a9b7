package model

// Shift 班次表 — 对应 shifts（班次目录）
type Shift struct {
	ShiftID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_id"`
	Name      string `gorm:"type:varchar(100);not null"                     json:"name"`
	StartTime string `gorm:"type:varchar(5);not null;default:''"           json:"start_time"` // "HH:MM"
	EndTime   string `gorm:"type:varchar(5);not null;default:''"           json:"end_time"`
	IsActive  bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (Shift) TableName() string { return "shifts" }
