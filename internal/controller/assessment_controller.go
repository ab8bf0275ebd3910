package controller

import (
	"errors"
	"strconv"

	"aitutor_backend/internal/service"
	"aitutor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// Grade godoc
// @Summary 提交整卷评分
// @Description 对一组作答逐题评分，返回逐题反馈与整体表现指标
// @Tags 测评
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.GradeRequest true "作答列表"
// @Success 200 {object} util.Response{data=service.GradeResult} "评分结果"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 401 {object} util.Response "未认证"
// @Router /api/assessments/grade [post]
func (c *AssessmentController) Grade(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AssessmentService.Grade(claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrNoResponses) {
			util.BadRequest(ctx, "no answers to grade")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// History godoc
// @Summary 测评历史
// @Description 分页返回当前用户的历史提交
// @Tags 测评
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "页码" default(1)
// @Param   pageSize query int false "每页数量" default(10)
// @Success 200 {object} util.PageResponse{data=[]model.AssessmentSubmission}
// @Failure 401 {object} util.Response "未认证"
// @Router /api/assessments/history [get]
func (c *AssessmentController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("pageSize", "10"))

	submissions, total, err := c.AssessmentService.History(claims.UserID, page, pageSize)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.SuccessPage(ctx, submissions, total, page, pageSize)
}
