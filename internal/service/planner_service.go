package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"aitutor_backend/internal/config"
	"aitutor_backend/internal/model"
	"aitutor_backend/internal/repository"
	"aitutor_backend/internal/scoring"
	"aitutor_backend/internal/util"
	"aitutor_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 知识点均分低于该值视为薄弱
const weakTopicThreshold = 0.6

type PlannerService struct {
	PlanRepo        *repository.PlanRepository
	ObservationRepo *repository.ObservationRepository
	Adaptive        *AdaptiveService
	Storage         *StorageService
	Pipeline        *config.PipelineParams
	Logger          *zap.Logger
}

func NewPlannerService(
	planRepo *repository.PlanRepository,
	observationRepo *repository.ObservationRepository,
	adaptive *AdaptiveService,
	storage *StorageService,
	pipeline *config.PipelineParams,
	logger *zap.Logger,
) *PlannerService {
	return &PlannerService{
		PlanRepo:        planRepo,
		ObservationRepo: observationRepo,
		Adaptive:        adaptive,
		Storage:         storage,
		Pipeline:        pipeline,
		Logger:          logger,
	}
}

type GeneratePlanRequest struct {
	TimeBudgetMinutes int           `json:"timeBudgetMinutes" binding:"omitempty,min=0,max=480"`
	CurrentLevel      scoring.Level `json:"currentLevel" binding:"omitempty,oneof=beginner intermediate advanced"`
}

type PlanResult struct {
	PlanID            uint                        `json:"planId"`
	TimeBudgetMinutes int                         `json:"timeBudgetMinutes"`
	TotalMinutes      int                         `json:"totalMinutes"`
	Actions           []scoring.RecommendedAction `json:"actions"`
	GeneratedAt       time.Time                   `json:"generatedAt"`
}

// Generate 诊断所有科目，排期学习动作并落库
func (s *PlannerService) Generate(userID uint, req GeneratePlanRequest) (*PlanResult, error) {
	budget := req.TimeBudgetMinutes
	if budget == 0 {
		budget = s.Pipeline.Load().DefaultTimeBudgetMinutes
	}
	currentLevel := req.CurrentLevel
	if currentLevel == "" {
		currentLevel = scoring.LevelIntermediate
	}

	diagnoses, err := s.Adaptive.DiagnoseAll(userID, currentLevel)
	if err != nil {
		return nil, err
	}

	candidates := make([]scoring.PlanCandidate, 0, len(diagnoses))
	for _, d := range diagnoses {
		weakTopics, err := s.weakTopics(userID, d.Subject)
		if err != nil {
			s.Logger.Error("Failed to load weak topics",
				zap.Uint("userId", userID),
				zap.String("subject", d.Subject),
				zap.Error(err))
		}
		candidates = append(candidates, scoring.PlanCandidate{
			Subject:    d.Subject,
			WeakTopics: weakTopics,
			Difficulty: d.Adjustment,
		})
	}

	actions := scoring.ComposePlan(candidates, budget)
	total := 0
	for _, a := range actions {
		total += a.EstimatedMinutes
	}

	actionsJSON, err := json.Marshal(actions)
	if err != nil {
		return nil, err
	}

	plan := &model.StudyPlan{
		UserID:            userID,
		TimeBudgetMinutes: budget,
		TotalMinutes:      total,
		Actions:           actionsJSON,
	}
	if err := s.PlanRepo.Create(plan); err != nil {
		return nil, err
	}

	monitoring.ComposedPlans.Inc()

	s.Logger.Info("Study plan composed",
		zap.Uint("userId", userID),
		zap.Int("budget", budget),
		zap.Int("totalMinutes", total),
		zap.Int("actions", len(actions)))

	return &PlanResult{
		PlanID:            plan.ID,
		TimeBudgetMinutes: budget,
		TotalMinutes:      total,
		Actions:           actions,
		GeneratedAt:       plan.CreatedAt,
	}, nil
}

// Latest 返回最近一次生成的计划
func (s *PlannerService) Latest(userID uint) (*PlanResult, error) {
	plan, err := s.PlanRepo.FindLatestByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPlanNotFound
		}
		return nil, err
	}

	var actions []scoring.RecommendedAction
	if len(plan.Actions) > 0 {
		if err := json.Unmarshal(plan.Actions, &actions); err != nil {
			return nil, err
		}
	}

	return &PlanResult{
		PlanID:            plan.ID,
		TimeBudgetMinutes: plan.TimeBudgetMinutes,
		TotalMinutes:      plan.TotalMinutes,
		Actions:           actions,
		GeneratedAt:       plan.CreatedAt,
	}, nil
}

// Export 把最近的计划导出为JSON报告写入存储，URL回填到计划记录
func (s *PlannerService) Export(ctx context.Context, userID uint) (string, error) {
	plan, err := s.PlanRepo.FindLatestByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrPlanNotFound
		}
		return "", err
	}

	report := map[string]interface{}{
		"planId":            plan.ID,
		"userId":            plan.UserID,
		"timeBudgetMinutes": plan.TimeBudgetMinutes,
		"totalMinutes":      plan.TotalMinutes,
		"actions":           json.RawMessage(plan.Actions),
		"generatedAt":       plan.CreatedAt,
		"exportedAt":        time.Now(),
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("plans/%d/plan_%d_%s.json", userID, plan.ID, model.GenerateUUID())
	url, err := s.Storage.Save(ctx, objectName, data, "application/json")
	if err != nil {
		return "", err
	}

	plan.ReportURL = url
	if err := s.PlanRepo.Update(plan); err != nil {
		return "", err
	}
	return url, nil
}

func (s *PlannerService) weakTopics(userID uint, subject string) ([]string, error) {
	means, err := s.ObservationRepo.TopicMeans(userID, subject, 5)
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, m := range means {
		if m.Mean < weakTopicThreshold {
			topics = append(topics, m.Topic)
		}
	}
	return topics, nil
}
