package model

// SystemConfig 系统配置单例 — 对应 system_config
// Singleton 恒为 true，表内仅一行；维护锁开启时学生端报名写操作被拒绝
type SystemConfig struct {
	Singleton         bool   `gorm:"primaryKey;default:true"       json:"-"`
	MaintenanceLocked bool   `gorm:"not null;default:false"        json:"maintenance_locked"`
	Announcement      string `gorm:"type:text;not null;default:''" json:"announcement"`
	BaseModel
}

func (SystemConfig) TableName() string { return "system_config" }
