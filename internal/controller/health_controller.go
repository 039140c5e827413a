package controller

import (
	"cacei_stats_backend/internal/service"
	"cacei_stats_backend/internal/util"
	"cacei_stats_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HealthController struct {
	HealthService *service.HealthService
}

func NewHealthController(healthService *service.HealthService) *HealthController {
	return &HealthController{HealthService: healthService}
}

// @Summary 健康检查
// @Description 检查数据库连接并列出可见的库
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response{data=model.HealthStatus}
// @Failure 503 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	status, err := c.HealthService.Check(ctx.Request.Context())
	if err != nil {
		logger.Log.Warn("Health check failed", zap.Error(err))
		util.ServiceUnavailable(ctx, "Database unavailable")
		return
	}
	util.Success(ctx, status)
}
