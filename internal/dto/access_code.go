package dto

// ── 考勤码模块 DTO ──

// CreateManualCodeRequest 手动发码请求
type CreateManualCodeRequest struct {
	BranchID   string `json:"branch_id"   binding:"required,uuid"`
	TTLMinutes int    `json:"ttl_minutes" binding:"required,min=1"`
}

// AccessCodeResponse 考勤码响应
type AccessCodeResponse struct {
	AccessCodeID string `json:"access_code_id"`
	CodeValue    string `json:"code_value"`
	BranchID     string `json:"branch_id"`
	KioskID      string `json:"kiosk_id,omitempty"`
	ExpiresAt    string `json:"expires_at"` // RFC 3339
}
