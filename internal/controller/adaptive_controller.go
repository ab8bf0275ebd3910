package controller

import (
	"errors"

	"aitutor_backend/internal/scoring"
	"aitutor_backend/internal/service"
	"aitutor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdaptiveController struct {
	AdaptiveService *service.AdaptiveService
}

func NewAdaptiveController(adaptiveService *service.AdaptiveService) *AdaptiveController {
	return &AdaptiveController{AdaptiveService: adaptiveService}
}

// Difficulty godoc
// @Summary 难度调整建议
// @Description 按科目分析近期成绩走势，给出升降难度建议；不传subject时返回所有科目
// @Tags 自适应
// @Produce  json
// @Security BearerAuth
// @Param   subject query string false "科目"
// @Param   currentLevel query string false "当前难度" Enums(beginner, intermediate, advanced) default(intermediate)
// @Success 200 {object} util.Response{data=[]service.SubjectDiagnosis}
// @Failure 401 {object} util.Response "未认证"
// @Router /api/adaptive/difficulty [get]
func (c *AdaptiveController) Difficulty(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	currentLevel := scoring.Level(ctx.DefaultQuery("currentLevel", string(scoring.LevelIntermediate)))
	switch currentLevel {
	case scoring.LevelBeginner, scoring.LevelIntermediate, scoring.LevelAdvanced:
	default:
		util.BadRequest(ctx, "invalid currentLevel")
		return
	}

	if subject := ctx.Query("subject"); subject != "" {
		diagnosis, err := c.AdaptiveService.DiagnoseSubject(claims.UserID, subject, currentLevel)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		util.Success(ctx, []service.SubjectDiagnosis{*diagnosis})
		return
	}

	diagnoses, err := c.AdaptiveService.DiagnoseAll(claims.UserID, currentLevel)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, diagnoses)
}

// NextAssessment godoc
// @Summary 下次测评建议
// @Description 给出某科目的下次测评时间与预估通过率
// @Tags 自适应
// @Produce  json
// @Security BearerAuth
// @Param   subject query string true "科目"
// @Success 200 {object} util.Response{data=service.NextAssessmentAdvice}
// @Failure 400 {object} util.Response "缺少subject或暂无观测数据"
// @Failure 401 {object} util.Response "未认证"
// @Router /api/adaptive/next-assessment [get]
func (c *AdaptiveController) NextAssessment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	subject := ctx.Query("subject")
	if subject == "" {
		util.BadRequest(ctx, "subject is required")
		return
	}

	advice, err := c.AdaptiveService.NextAssessment(claims.UserID, subject)
	if err != nil {
		if errors.Is(err, util.ErrNoResponses) {
			util.BadRequest(ctx, "no observations recorded for this subject yet")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, advice)
}
