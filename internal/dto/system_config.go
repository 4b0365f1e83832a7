package dto

// ── 系统配置 DTO ──

// UpdateSystemConfigRequest 更新系统配置请求
type UpdateSystemConfigRequest struct {
	MaintenanceLocked *bool   `json:"maintenance_locked"`
	Announcement      *string `json:"announcement" binding:"omitempty,max=2000"`
}

// SystemConfigResponse 系统配置响应
type SystemConfigResponse struct {
	MaintenanceLocked bool   `json:"maintenance_locked"`
	Announcement      string `json:"announcement"`
	UpdatedAt         string `json:"updated_at"`
}
