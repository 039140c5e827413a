package controller

import (
	"cacei_stats_backend/internal/service"
	"cacei_stats_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	StatsService *service.StatsService
}

func NewStatsController(statsService *service.StatsService) *StatsController {
	return &StatsController{StatsService: statsService}
}

// failureParams 解析不及格率接口共用的查询参数
func failureParams(ctx *gin.Context) (service.FailureParams, error) {
	threshold, err := util.QueryFloat(ctx, "aprobatoria")
	if err != nil {
		return service.FailureParams{}, err
	}
	countNonNumeric, err := util.QueryBool(ctx, "contar_no_numericas")
	if err != nil {
		return service.FailureParams{}, err
	}
	return service.FailureParams{
		Program:               ctx.Query("programa_like"),
		Cycle:                 ctx.Query("ciclo"),
		Threshold:             threshold,
		CountNonNumericAsFail: countNonNumeric,
		Variant:               ctx.Query("variante"),
	}, nil
}

// @Summary 各周期不及格率
// @Description 同一学生同一科目同一周期取最高成绩，阈值按数据量纲自动换算
// @Tags 统计
// @Produce json
// @Param programa_like query string false "程序名称（包含匹配）" default(AEROESPACIAL)
// @Param aprobatoria query number false "及格线" default(6)
// @Param contar_no_numericas query bool false "非数字成绩计为不及格" default(false)
// @Param variante query string false "评估变体" Enums(best_attempt, strict_decimal, fixed_scale)
// @Success 200 {object} util.Response{data=model.FailureReport}
// @Failure 400 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /api/reprobacion [get]
func (c *StatsController) FailureByCycle(ctx *gin.Context) {
	params, err := failureParams(ctx)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	params.Cycle = ""

	report, err := c.StatsService.FailureByCycle(ctx.Request.Context(), params)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// @Summary 各科目不及格率
// @Tags 统计
// @Produce json
// @Param programa_like query string false "程序名称（包含匹配）" default(AEROESPACIAL)
// @Param aprobatoria query number false "及格线" default(6)
// @Param ciclo query string false "只统计该周期"
// @Param contar_no_numericas query bool false "非数字成绩计为不及格" default(false)
// @Param variante query string false "评估变体" Enums(best_attempt, strict_decimal, fixed_scale)
// @Success 200 {object} util.Response{data=model.SubjectFailureReport}
// @Failure 400 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /api/reprobacion_detalle [get]
func (c *StatsController) FailureBySubject(ctx *gin.Context) {
	params, err := failureParams(ctx)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	report, err := c.StatsService.FailureBySubject(ctx.Request.Context(), params)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// @Summary 各周期在册人数
// @Tags 统计
// @Produce json
// @Param programa_like query string false "程序名称（包含匹配）" default(AEROESPACIAL)
// @Success 200 {object} util.Response{data=[]model.EnrollmentRow}
// @Failure 500 {object} util.Response
// @Router /api/inscritos_por_ciclo [get]
func (c *StatsController) EnrollmentByCycle(ctx *gin.Context) {
	rows, err := c.StatsService.EnrollmentByCycle(ctx.Request.Context(), ctx.Query("programa_like"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// @Summary 各周期退学率
// @Tags 统计
// @Produce json
// @Param programa_like query string false "程序名称（包含匹配）" default(AEROESPACIAL)
// @Success 200 {object} util.Response{data=[]model.DropoutRow}
// @Failure 500 {object} util.Response
// @Router /api/desercion [get]
func (c *StatsController) DropoutByCycle(ctx *gin.Context) {
	rows, err := c.StatsService.DropoutByCycle(ctx.Request.Context(), ctx.Query("programa_like"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// @Summary 各入学周期退学代码统计
// @Tags 统计
// @Produce json
// @Param programa_like query string false "程序名称（包含匹配）" default(AEROESPACIAL)
// @Param restar_ri query bool false "退学总数减去复学人数" default(true)
// @Success 200 {object} util.Response{data=[]model.CohortDropoutRow}
// @Failure 400 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /api/desercion_escolar [get]
func (c *StatsController) DropoutByCohort(ctx *gin.Context) {
	subtract, err := util.QueryBool(ctx, "restar_ri")
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	subtractRI := true
	if subtract != nil {
		subtractRI = *subtract
	}

	rows, err := c.StatsService.DropoutByCohort(ctx.Request.Context(), ctx.Query("programa_like"), subtractRI)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// @Summary 入学周期跟踪
// @Tags 统计
// @Produce json
// @Param ciclo_ingreso query string true "入学周期"
// @Param programa_like query string false "程序名称（包含匹配）" default(AEROESPACIAL)
// @Success 200 {object} util.Response{data=[]model.CohortActivityRow}
// @Failure 400 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /api/cohorte [get]
func (c *StatsController) CohortTracking(ctx *gin.Context) {
	cohort, err := util.RequiredQuery(ctx, "ciclo_ingreso")
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	rows, err := c.StatsService.CohortTracking(ctx.Request.Context(), ctx.Query("programa_like"), cohort)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// @Summary 入学周期留存汇总
// @Tags 统计
// @Produce json
// @Param programa_like query string false "程序名称（包含匹配）" default(AEROESPACIAL)
// @Param cohorte query string false "只统计该入学周期"
// @Param max_semestres query int false "学期数" default(9)
// @Success 200 {object} util.Response{data=[]model.CohortSummary}
// @Failure 400 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /api/seguimiento_cohorte_resumen [get]
func (c *StatsController) CohortSummary(ctx *gin.Context) {
	maxSemesters, err := util.QueryInt(ctx, "max_semestres", 0)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	rows, err := c.StatsService.CohortSummary(ctx.Request.Context(), ctx.Query("programa_like"), ctx.Query("cohorte"), maxSemesters)
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// @Summary 按性别和学籍状态统计
// @Tags 统计
// @Produce json
// @Param programa_like query string false "程序名称（包含匹配）" default(AEROESPACIAL)
// @Success 200 {object} util.Response{data=[]model.StatusBreakdownRow}
// @Failure 500 {object} util.Response
// @Router /api/cedula_322 [get]
func (c *StatsController) StatusBreakdown(ctx *gin.Context) {
	rows, err := c.StatsService.StatusBreakdown(ctx.Request.Context(), ctx.Query("programa_like"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// @Summary 某周期各科目平均分
// @Tags 统计
// @Produce json
// @Param ciclo query string true "周期"
// @Param programa_like query string false "程序名称（包含匹配）" default(AEROESPACIAL)
// @Param variante query string false "评估变体" Enums(best_attempt, strict_decimal, fixed_scale)
// @Success 200 {object} util.Response{data=[]model.SubjectAverageRow}
// @Failure 400 {object} util.Response
// @Failure 500 {object} util.Response
// @Router /api/cedula_322_detalle [get]
func (c *StatsController) SubjectAverages(ctx *gin.Context) {
	cyc, err := util.RequiredQuery(ctx, "ciclo")
	if err != nil {
		util.RespondError(ctx, err)
		return
	}

	rows, err := c.StatsService.SubjectAverages(ctx.Request.Context(), ctx.Query("programa_like"), cyc, ctx.Query("variante"))
	if err != nil {
		util.RespondError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}
