package repository

import (
	"context"

	"gorm.io/gorm"

	"ielts-center/backend/internal/model"
)

// ResultRepository 成绩数据访问接口
type ResultRepository interface {
	Create(ctx context.Context, result *model.TestResult) error
	GetByBooking(ctx context.Context, bookingID string) (*model.TestResult, error)
	ListBySubject(ctx context.Context, subjectID string) ([]model.TestResult, error)
}

// resultRepo ResultRepository 的 GORM 实现
type resultRepo struct {
	db *gorm.DB
}

// NewResultRepo 创建 ResultRepository 实例
func NewResultRepo(db *gorm.DB) ResultRepository {
	return &resultRepo{db: db}
}

func (r *resultRepo) Create(ctx context.Context, result *model.TestResult) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *resultRepo) GetByBooking(ctx context.Context, bookingID string) (*model.TestResult, error) {
	var result model.TestResult
	err := r.db.WithContext(ctx).
		Preload("Booking").Preload("Booking.Session").
		Where("booking_id = ?", bookingID).
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *resultRepo) ListBySubject(ctx context.Context, subjectID string) ([]model.TestResult, error) {
	var results []model.TestResult
	err := r.db.WithContext(ctx).
		Preload("Booking").Preload("Booking.Session").
		Where("subject_id = ?", subjectID).
		Order("created_at DESC").
		Find(&results).Error
	return results, err
}
