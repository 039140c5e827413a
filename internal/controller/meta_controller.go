package controller

import (
	"cacei_stats_backend/internal/service"
	"cacei_stats_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MetaController struct {
	MetaService *service.MetaService
}

func NewMetaController(metaService *service.MetaService) *MetaController {
	return &MetaController{MetaService: metaService}
}

// @Summary 程序列表
// @Tags 元数据
// @Produce json
// @Param limit query int false "最多返回条数 (1-1000)" default(200)
// @Success 200 {object} util.Response{data=[]string}
// @Failure 400 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /api/meta/programas [get]
func (c *MetaController) Programs(ctx *gin.Context) {
	limit, err := util.QueryInt(ctx, "limit", util.DefaultProgramLimit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	programs, err := c.MetaService.Programs(ctx.Request.Context(), limit)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, programs)
}

// @Summary 入学周期列表
// @Tags 元数据
// @Produce json
// @Param programa_like query string false "程序名称（包含匹配）" default(AEROESPACIAL)
// @Success 200 {object} util.Response{data=[]string}
// @Failure 500 {object} util.Response
// @Router /api/meta/cohortes [get]
func (c *MetaController) Cohorts(ctx *gin.Context) {
	cohorts, err := c.MetaService.Cohorts(ctx.Request.Context(), ctx.Query("programa_like"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, cohorts)
}

// @Summary 评估变体列表
// @Tags 元数据
// @Produce json
// @Success 200 {object} util.Response{data=[]service.VariantInfo}
// @Router /api/meta/variantes [get]
func (c *MetaController) Variants(ctx *gin.Context) {
	util.Success(ctx, c.MetaService.Variants())
}
