package controller

import (
	"errors"

	"aitutor_backend/internal/service"
	"aitutor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PlanController struct {
	PlannerService *service.PlannerService
}

func NewPlanController(plannerService *service.PlannerService) *PlanController {
	return &PlanController{PlannerService: plannerService}
}

// Generate godoc
// @Summary 生成学习计划
// @Description 基于各科目最新诊断结果排期复习和练习动作
// @Tags 学习计划
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.GeneratePlanRequest false "排期参数"
// @Success 200 {object} util.Response{data=service.PlanResult}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "未认证"
// @Router /api/plan/generate [post]
func (c *PlanController) Generate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.GeneratePlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.PlannerService.Generate(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// Latest godoc
// @Summary 最近一次学习计划
// @Tags 学习计划
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.PlanResult}
// @Failure 401 {object} util.Response "未认证"
// @Failure 404 {object} util.Response "暂无计划"
// @Router /api/plan/latest [get]
func (c *PlanController) Latest(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.PlannerService.Latest(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrPlanNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// Export godoc
// @Summary 导出学习计划报告
// @Description 把最近的计划导出为JSON报告并返回下载地址
// @Tags 学习计划
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=object}
// @Failure 401 {object} util.Response "未认证"
// @Failure 404 {object} util.Response "暂无计划"
// @Router /api/plan/export [post]
func (c *PlanController) Export(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	url, err := c.PlannerService.Export(ctx.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrPlanNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"reportUrl": url})
}
