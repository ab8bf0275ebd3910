package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
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

type EngagementService struct {
	EngagementRepo  *repository.EngagementRepository
	ObservationRepo *repository.ObservationRepository
	Pipeline        *config.PipelineParams
	Logger          *zap.Logger
}

func NewEngagementService(
	engagementRepo *repository.EngagementRepository,
	observationRepo *repository.ObservationRepository,
	pipeline *config.PipelineParams,
	logger *zap.Logger,
) *EngagementService {
	return &EngagementService{
		EngagementRepo:  engagementRepo,
		ObservationRepo: observationRepo,
		Pipeline:        pipeline,
		Logger:          logger,
	}
}

type RecordEventRequest struct {
	EventType  string                 `json:"eventType" binding:"required"`
	EventData  map[string]interface{} `json:"eventData"`
	OccurredAt *time.Time             `json:"occurredAt"`
}

type EngagementReport struct {
	Profile       *model.EngagementProfile `json:"profile"`
	RiskFactors   []string                 `json:"riskFactors"`
	Interventions []model.Intervention     `json:"interventions"`
}

var validEventTypes = map[string]bool{
	model.EventSessionStart:    true,
	model.EventSessionEnd:      true,
	model.EventHelpRequested:   true,
	model.EventHintUsed:        true,
	model.EventQuestionRetried: true,
}

var ErrUnknownEventType = errors.New("unknown event type")

// RecordEvent 落库一条参与度事件并触发画像重算
func (s *EngagementService) RecordEvent(ctx context.Context, userID uint, req RecordEventRequest) (*model.EngagementProfile, error) {
	if !validEventTypes[req.EventType] {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEventType, req.EventType)
	}

	occurredAt := time.Now()
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	var data []byte
	if req.EventData != nil {
		var err error
		data, err = json.Marshal(req.EventData)
		if err != nil {
			return nil, err
		}
	}

	event := &model.EngagementEvent{
		UserID:     userID,
		EventType:  req.EventType,
		EventData:  data,
		OccurredAt: occurredAt,
	}
	if err := s.EngagementRepo.CreateEvent(event); err != nil {
		return nil, err
	}

	report, err := s.Recompute(ctx, userID)
	if err != nil {
		return nil, err
	}
	return report.Profile, nil
}

// pipeline 每次调用取一份完整快照
func (s *EngagementService) pipeline() config.PipelineConfig {
	if s.Pipeline == nil {
		return config.PipelineConfig{}
	}
	return s.Pipeline.Load()
}

// Recompute 聚合窗口内的事件与观测，重算参与度画像
func (s *EngagementService) Recompute(ctx context.Context, userID uint) (*EngagementReport, error) {
	windowDays := s.pipeline().EngagementWindowDays
	if windowDays <= 0 {
		windowDays = 30
	}
	since := time.Now().AddDate(0, 0, -windowDays)

	events, err := s.EngagementRepo.FindEventsSince(userID, since)
	if err != nil {
		return nil, err
	}
	observations, err := s.ObservationRepo.FindSince(userID, since)
	if err != nil {
		return nil, err
	}

	signals, streakDays := s.buildSignals(events, observations, windowDays)
	score := scoring.ScoreEngagement(signals)
	level := scoring.ClassifyEngagement(score)
	risk := scoring.DisengagementRisk(score)

	riskFactors := s.riskFactors(signals, observations, events)
	needed := scoring.InterventionNeeded(len(riskFactors))

	profile := &model.EngagementProfile{
		UserID:             userID,
		Score:              score,
		Level:              string(level),
		DisengagementRisk:  risk,
		InterventionNeeded: needed,
		StreakDays:         streakDays,
		RiskFactors:        strings.Join(riskFactors, ";"),
	}
	if err := s.EngagementRepo.UpsertProfile(ctx, profile); err != nil {
		return nil, err
	}

	monitoring.EngagementScoreGauge.WithLabelValues(string(level)).Set(score)

	s.Logger.Info("Engagement profile recomputed",
		zap.Uint("userId", userID),
		zap.Float64("score", score),
		zap.String("level", string(level)),
		zap.Int("riskFactors", len(riskFactors)))

	var interventions []model.Intervention
	if needed {
		interventions = s.interventions(riskFactors, streakDays)
	}

	return &EngagementReport{
		Profile:       profile,
		RiskFactors:   riskFactors,
		Interventions: interventions,
	}, nil
}

// Profile 读画像，优先走缓存
func (s *EngagementService) Profile(ctx context.Context, userID uint) (*EngagementReport, error) {
	profile, err := s.EngagementRepo.FindProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProfileNotFound
		}
		return nil, err
	}

	var riskFactors []string
	if profile.RiskFactors != "" {
		riskFactors = strings.Split(profile.RiskFactors, ";")
	}

	var interventions []model.Intervention
	if profile.InterventionNeeded {
		interventions = s.interventions(riskFactors, profile.StreakDays)
	}

	return &EngagementReport{
		Profile:       profile,
		RiskFactors:   riskFactors,
		Interventions: interventions,
	}, nil
}

// buildSignals 把原始事件和观测聚合为参与度打分所需的四个信号
func (s *EngagementService) buildSignals(
	events []model.EngagementEvent,
	observations []model.ScoredObservation,
	windowDays int,
) (scoring.EngagementSignals, int) {
	sessionStarts := 0
	helpEvents := 0
	activeDays := make(map[string]bool)

	for _, e := range events {
		activeDays[e.OccurredAt.Format("2006-01-02")] = true
		switch e.EventType {
		case model.EventSessionStart:
			sessionStarts++
		case model.EventHelpRequested, model.EventHintUsed:
			helpEvents++
		}
	}

	series := make([]float64, len(observations))
	for i, o := range observations {
		series[i] = o.Value
	}

	totalInteractions := len(events)
	helpFrequency := 0.0
	if totalInteractions > 0 {
		helpFrequency = float64(helpEvents) / float64(totalInteractions)
	}

	signals := scoring.EngagementSignals{
		SessionConsistency:   dayCoverage(activeDays, windowDays),
		AveragePerformance:   scoring.Mean(series),
		DailySessionRate:     float64(sessionStarts) / float64(windowDays),
		HelpSeekingFrequency: helpFrequency,
	}

	return signals, streakDays(activeDays)
}

func dayCoverage(activeDays map[string]bool, windowDays int) float64 {
	if windowDays <= 0 {
		return 0
	}
	coverage := float64(len(activeDays)) / float64(windowDays)
	return scoring.Clamp01(coverage)
}

// streakDays 从今天往回数连续活跃天数
func streakDays(activeDays map[string]bool) int {
	streak := 0
	day := time.Now()
	for {
		if !activeDays[day.Format("2006-01-02")] {
			// 今天还没活跃不打断昨天起的连续
			if streak == 0 && activeDays[day.AddDate(0, 0, -1).Format("2006-01-02")] {
				day = day.AddDate(0, 0, -1)
				continue
			}
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// riskFactors 逐项检查脱离风险信号
func (s *EngagementService) riskFactors(
	signals scoring.EngagementSignals,
	observations []model.ScoredObservation,
	events []model.EngagementEvent,
) []string {
	var factors []string

	if signals.SessionConsistency < 0.3 {
		factors = append(factors, "irregular study schedule")
	}
	if signals.AveragePerformance < 0.4 && len(observations) > 0 {
		factors = append(factors, "consistently low performance")
	}
	if signals.DailySessionRate < 0.2 {
		factors = append(factors, "infrequent study sessions")
	}
	if signals.HelpSeekingFrequency > 0.5 {
		factors = append(factors, "excessive reliance on hints")
	}

	// 严格阈值下的下降趋势才算风险，阈值可配置
	series := make([]float64, len(observations))
	for i, o := range observations {
		series[i] = o.Value
	}
	threshold := s.pipeline().StrictTrendSlopeThreshold
	if threshold <= 0 {
		threshold = scoring.StrictSlopeThreshold
	}
	analyzer := scoring.NewAnalyzer(threshold)
	if analyzer.AnalyzeTrend(series).Direction == scoring.TrendDeclining {
		factors = append(factors, "declining performance trend")
	}

	if len(events) == 0 {
		factors = append(factors, "no recent activity")
	}

	sort.Strings(factors)
	return factors
}

// interventions 按风险因子生成干预建议
func (s *EngagementService) interventions(riskFactors []string, streakDays int) []model.Intervention {
	var out []model.Intervention

	for _, factor := range riskFactors {
		switch factor {
		case "consistently low performance", "declining performance trend":
			out = append(out, model.Intervention{
				Type:            "encouragement",
				Message:         "You're making progress with every attempt. Let's revisit the basics together.",
				EstimatedImpact: 0.3,
			})
		case "irregular study schedule", "infrequent study sessions":
			out = append(out, model.Intervention{
				Type:            "goal_setting",
				Message:         "Set a small daily goal, like one 15-minute session, to build a routine.",
				EstimatedImpact: 0.4,
			})
		case "excessive reliance on hints":
			out = append(out, model.Intervention{
				Type:            "break_suggestion",
				Message:         "Take a short break, then try the next question without hints first.",
				EstimatedImpact: 0.2,
			})
		}
	}

	if streakDays >= 3 {
		out = append(out, model.Intervention{
			Type:            "reward",
			Message:         fmt.Sprintf("Great job studying %d days in a row! Keep the streak alive.", streakDays),
			EstimatedImpact: 0.3,
		})
	}

	return dedupeInterventions(out)
}

func dedupeInterventions(interventions []model.Intervention) []model.Intervention {
	seen := make(map[string]bool)
	out := interventions[:0]
	for _, iv := range interventions {
		if seen[iv.Type] {
			continue
		}
		seen[iv.Type] = true
		out = append(out, iv)
	}
	return out
}
