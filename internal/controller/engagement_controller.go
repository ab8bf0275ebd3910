package controller

import (
	"errors"

	"aitutor_backend/internal/service"
	"aitutor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EngagementController struct {
	EngagementService *service.EngagementService
}

func NewEngagementController(engagementService *service.EngagementService) *EngagementController {
	return &EngagementController{EngagementService: engagementService}
}

// RecordEvent godoc
// @Summary 上报参与度事件
// @Description 记录一条学习行为事件并返回重算后的参与度画像
// @Tags 参与度
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.RecordEventRequest true "事件内容"
// @Success 200 {object} util.Response{data=model.EngagementProfile}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "未认证"
// @Router /api/engagement/events [post]
func (c *EngagementController) RecordEvent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.RecordEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, err := c.EngagementService.RecordEvent(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		if errors.Is(err, service.ErrUnknownEventType) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, profile)
}

// Profile godoc
// @Summary 获取参与度画像
// @Description 返回当前用户的参与度画像、风险因子与干预建议
// @Tags 参与度
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.EngagementReport}
// @Failure 401 {object} util.Response "未认证"
// @Failure 404 {object} util.Response "暂无画像"
// @Router /api/engagement/profile [get]
func (c *EngagementController) Profile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	report, err := c.EngagementService.Profile(ctx.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrProfileNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, report)
}
