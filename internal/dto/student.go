package dto

// ── 考生模块 DTO ──

// CreateStudentRequest 创建考生请求
type CreateStudentRequest struct {
	Name     string `json:"name"     binding:"required,min=2,max=100"`
	Phone    string `json:"phone"    binding:"required,max=20"`
	Email    string `json:"email"    binding:"omitempty,email"`
	Password string `json:"password" binding:"required,min=8,max=20"`
}

// UpdateStudentRequest 更新考生请求
type UpdateStudentRequest struct {
	Name  *string `json:"name"  binding:"omitempty,min=2,max=100"`
	Phone *string `json:"phone" binding:"omitempty,max=20"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// TopUpRequest 余额充值请求（按模块加次数）
type TopUpRequest struct {
	ModuleType string `json:"module_type" binding:"required,oneof=listening reading writing speaking mock"`
	Count      int    `json:"count"       binding:"required,min=1,max=100"`
}

// StudentListRequest 考生列表查询参数
type StudentListRequest struct {
	Keyword string `form:"keyword" binding:"omitempty,max=100"` // 姓名/手机号模糊匹配
	PaginationRequest
}

// ── 响应 ──

// StudentResponse 考生信息响应
type StudentResponse struct {
	StudentID string          `json:"student_id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone"`
	Email     string          `json:"email,omitempty"`
	Balance   BalanceResponse `json:"balance"`
	CreatedAt string          `json:"created_at"`
}

// BalanceResponse 各模块余额响应
type BalanceResponse struct {
	Listening int `json:"listening"`
	Reading   int `json:"reading"`
	Writing   int `json:"writing"`
	Speaking  int `json:"speaking"`
	Mock      int `json:"mock"`
}
