package middleware

import (
	"github.com/gin-gonic/gin"

	"ielts-center/backend/internal/service"
	"ielts-center/backend/pkg/response"
)

// MaintenanceLock 维护锁中间件
// 维护锁开启期间拒绝学生端报名写操作，员工操作不受影响。
// 配置读取失败时放行，避免配置表故障放大为全站不可用。
func MaintenanceLock(configSvc service.SystemConfigService) gin.HandlerFunc {
	return func(c *gin.Context) {
		locked, err := configSvc.IsMaintenanceLocked(c.Request.Context())
		if err != nil {
			c.Next()
			return
		}
		if locked {
			response.ServiceUnavailable(c, 17001, "系统维护中，暂停线上报名")
			c.Abort()
			return
		}

		c.Next()
	}
}
