package app

import (
	"cacei_stats_backend/docs"
	"cacei_stats_backend/internal/util"
	"cacei_stats_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.NoRoute(util.NotFound)

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		meta := api.Group("/meta")
		{
			meta.GET("/programas", c.meta.Programs)
			meta.GET("/cohortes", c.meta.Cohorts)
			meta.GET("/variantes", c.meta.Variants)
		}

		// 成绩评估
		api.GET("/reprobacion", c.stats.FailureByCycle)
		api.GET("/reprobacion_detalle", c.stats.FailureBySubject)
		api.GET("/cedula_322_detalle", c.stats.SubjectAverages)

		// 学籍与入学周期
		api.GET("/inscritos_por_ciclo", c.stats.EnrollmentByCycle)
		api.GET("/desercion", c.stats.DropoutByCycle)
		api.GET("/desercion_escolar", c.stats.DropoutByCohort)
		api.GET("/cohorte", c.stats.CohortTracking)
		api.GET("/seguimiento_cohorte_resumen", c.stats.CohortSummary)
		api.GET("/cedula_322", c.stats.StatusBreakdown)
	}
}
