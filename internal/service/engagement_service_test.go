package service

import (
	"testing"
	"time"

	"aitutor_backend/internal/config"
	"aitutor_backend/internal/model"
	"aitutor_backend/internal/scoring"

	"github.com/stretchr/testify/assert"
)

func TestDayCoverage(t *testing.T) {
	days := map[string]bool{"2026-08-01": true, "2026-08-02": true, "2026-08-03": true}
	assert.InDelta(t, 0.1, dayCoverage(days, 30), 1e-9)
	assert.Equal(t, 0.0, dayCoverage(days, 0))
}

func TestStreakDaysCountsBackFromToday(t *testing.T) {
	days := map[string]bool{}
	for i := 0; i < 4; i++ {
		days[time.Now().AddDate(0, 0, -i).Format("2006-01-02")] = true
	}
	assert.Equal(t, 4, streakDays(days))
}

func TestStreakDaysAllowsInactiveToday(t *testing.T) {
	days := map[string]bool{}
	for i := 1; i <= 3; i++ {
		days[time.Now().AddDate(0, 0, -i).Format("2006-01-02")] = true
	}
	assert.Equal(t, 3, streakDays(days))
}

func TestStreakDaysBrokenByGap(t *testing.T) {
	days := map[string]bool{
		time.Now().Format("2006-01-02"):                  true,
		time.Now().AddDate(0, 0, -2).Format("2006-01-02"): true,
	}
	assert.Equal(t, 1, streakDays(days))
}

func TestRiskFactorsHealthyStudent(t *testing.T) {
	s := &EngagementService{}
	signals := scoring.EngagementSignals{
		SessionConsistency:   0.8,
		AveragePerformance:   0.7,
		DailySessionRate:     1.0,
		HelpSeekingFrequency: 0.2,
	}
	obs := []model.ScoredObservation{{Value: 0.7}, {Value: 0.7}, {Value: 0.7}}
	events := []model.EngagementEvent{{EventType: model.EventSessionStart}}

	assert.Empty(t, s.riskFactors(signals, obs, events))
}

func TestRiskFactorsStrugglingStudent(t *testing.T) {
	s := &EngagementService{}
	signals := scoring.EngagementSignals{
		SessionConsistency:   0.1,
		AveragePerformance:   0.2,
		DailySessionRate:     0.1,
		HelpSeekingFrequency: 0.7,
	}
	// 明显下降的序列
	obs := []model.ScoredObservation{
		{Value: 0.9}, {Value: 0.7}, {Value: 0.5}, {Value: 0.3}, {Value: 0.1},
	}

	factors := s.riskFactors(signals, obs, nil)
	assert.Contains(t, factors, "irregular study schedule")
	assert.Contains(t, factors, "consistently low performance")
	assert.Contains(t, factors, "infrequent study sessions")
	assert.Contains(t, factors, "excessive reliance on hints")
	assert.Contains(t, factors, "declining performance trend")
	assert.Contains(t, factors, "no recent activity")
}

func TestRiskFactorsMildDeclineIgnoredUnderStrictThreshold(t *testing.T) {
	s := &EngagementService{}
	signals := scoring.EngagementSignals{
		SessionConsistency:   0.8,
		AveragePerformance:   0.7,
		DailySessionRate:     1.0,
		HelpSeekingFrequency: 0.2,
	}
	// 斜率约-0.03，低于严格阈值0.05，不算下降
	obs := []model.ScoredObservation{
		{Value: 0.72}, {Value: 0.69}, {Value: 0.66}, {Value: 0.63},
	}
	events := []model.EngagementEvent{{EventType: model.EventSessionStart}}

	assert.NotContains(t, s.riskFactors(signals, obs, events), "declining performance trend")
}

func TestRiskFactorsDeclineThresholdConfigurable(t *testing.T) {
	signals := scoring.EngagementSignals{
		SessionConsistency:   0.8,
		AveragePerformance:   0.7,
		DailySessionRate:     1.0,
		HelpSeekingFrequency: 0.2,
	}
	// 斜率-0.1：默认严格阈值0.05下算下降
	obs := []model.ScoredObservation{
		{Value: 0.9}, {Value: 0.8}, {Value: 0.7}, {Value: 0.6},
	}
	events := []model.EngagementEvent{{EventType: model.EventSessionStart}}

	relaxed := &EngagementService{
		Pipeline: config.NewPipelineParams(config.PipelineConfig{StrictTrendSlopeThreshold: 0.25}),
	}
	assert.NotContains(t, relaxed.riskFactors(signals, obs, events), "declining performance trend")

	sensitive := &EngagementService{
		Pipeline: config.NewPipelineParams(config.PipelineConfig{StrictTrendSlopeThreshold: 0.08}),
	}
	assert.Contains(t, sensitive.riskFactors(signals, obs, events), "declining performance trend")

	// 未配置时回落到常量0.05
	unset := &EngagementService{}
	assert.Contains(t, unset.riskFactors(signals, obs, events), "declining performance trend")
}

func TestInterventionsForRiskFactors(t *testing.T) {
	s := &EngagementService{}
	factors := []string{"consistently low performance", "irregular study schedule", "excessive reliance on hints"}

	interventions := s.interventions(factors, 0)
	types := make([]string, len(interventions))
	for i, iv := range interventions {
		types[i] = iv.Type
	}
	assert.Contains(t, types, "encouragement")
	assert.Contains(t, types, "goal_setting")
	assert.Contains(t, types, "break_suggestion")
	assert.NotContains(t, types, "reward")
}

func TestInterventionsRewardForStreak(t *testing.T) {
	s := &EngagementService{}
	interventions := s.interventions(nil, 5)
	assert.Len(t, interventions, 1)
	assert.Equal(t, "reward", interventions[0].Type)
	assert.Contains(t, interventions[0].Message, "5 days")
}

func TestInterventionsDeduplicated(t *testing.T) {
	s := &EngagementService{}
	factors := []string{"consistently low performance", "declining performance trend"}

	interventions := s.interventions(factors, 0)
	assert.Len(t, interventions, 1)
	assert.Equal(t, "encouragement", interventions[0].Type)
}

func TestBuildSignalsAggregatesEvents(t *testing.T) {
	s := &EngagementService{}
	now := time.Now()
	events := []model.EngagementEvent{
		{EventType: model.EventSessionStart, OccurredAt: now},
		{EventType: model.EventSessionEnd, OccurredAt: now},
		{EventType: model.EventHelpRequested, OccurredAt: now},
		{EventType: model.EventHintUsed, OccurredAt: now.AddDate(0, 0, -1)},
	}
	obs := []model.ScoredObservation{{Value: 0.4}, {Value: 0.6}}

	signals, _ := s.buildSignals(events, obs, 10)
	assert.InDelta(t, 0.2, signals.SessionConsistency, 1e-9) // 2活跃天/10天窗口
	assert.InDelta(t, 0.5, signals.AveragePerformance, 1e-9)
	assert.InDelta(t, 0.1, signals.DailySessionRate, 1e-9) // 1次session/10天
	assert.InDelta(t, 0.5, signals.HelpSeekingFrequency, 1e-9)
}
