package repository

import (
	"context"

	"gorm.io/gorm"

	"ielts-center/backend/internal/model"
)

// SystemConfigRepository 系统配置数据访问接口（单行表）
type SystemConfigRepository interface {
	Get(ctx context.Context) (*model.SystemConfig, error)
	Update(ctx context.Context, cfg *model.SystemConfig) error
}

// systemConfigRepo SystemConfigRepository 的 GORM 实现
type systemConfigRepo struct {
	db *gorm.DB
}

// NewSystemConfigRepo 创建 SystemConfigRepository 实例
func NewSystemConfigRepo(db *gorm.DB) SystemConfigRepository {
	return &systemConfigRepo{db: db}
}

func (r *systemConfigRepo) Get(ctx context.Context) (*model.SystemConfig, error) {
	var cfg model.SystemConfig
	err := r.db.WithContext(ctx).
		Where("singleton = ?", true).
		First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *systemConfigRepo) Update(ctx context.Context, cfg *model.SystemConfig) error {
	cfg.Singleton = true
	return r.db.WithContext(ctx).
		Model(&model.SystemConfig{}).
		Where("singleton = ?", true).
		Updates(map[string]interface{}{
			"maintenance_locked": cfg.MaintenanceLocked,
			"announcement":       cfg.Announcement,
			"updated_by":         cfg.UpdatedBy,
		}).Error
}
