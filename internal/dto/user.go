package dto

// ── 员工账号 DTO ──

// CreateUserRequest 创建员工账号请求（仅管理员）
type CreateUserRequest struct {
	Name     string `json:"name"     binding:"required,min=2,max=100"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8,max=20"`
	Role     string `json:"role"     binding:"required,oneof=admin staff"`
}

// UserResponse 员工信息响应（脱敏）
type UserResponse struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}
