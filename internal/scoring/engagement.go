package scoring

// EngagementLevel 参与度五档分类
type EngagementLevel string

const (
	EngagementVeryLow  EngagementLevel = "very_low"
	EngagementLow      EngagementLevel = "low"
	EngagementModerate EngagementLevel = "moderate"
	EngagementHigh     EngagementLevel = "high"
	EngagementVeryHigh EngagementLevel = "very_high"
)

// EngagementSignals 参与度打分的输入信号，均由上游事件聚合器算出
type EngagementSignals struct {
	SessionConsistency   float64 `json:"sessionConsistency"`   // 活跃天数占比 [0,1]
	AveragePerformance   float64 `json:"averagePerformance"`   // 窗口内平均成绩 [0,1]
	DailySessionRate     float64 `json:"dailySessionRate"`     // 日均学习会话次数
	HelpSeekingFrequency float64 `json:"helpSeekingFrequency"` // 求助事件占交互比例 [0,1]
}

// ScoreEngagement 各信号线性叠加到 0.5 的基准分上，结果收拢到 [0,1]
func ScoreEngagement(signals EngagementSignals) float64 {
	score := 0.5

	score += Clamp01(signals.SessionConsistency) * 0.2
	score += (Clamp01(signals.AveragePerformance) - 0.5) * 0.2

	rate := signals.DailySessionRate / 3.0 // 每天3次会话视为满额
	if rate > 1.0 {
		rate = 1.0
	}
	if rate < 0 {
		rate = 0
	}
	score += rate * 0.1

	// 适度求助（10%~30%）是健康的学习行为，给予奖励
	if signals.HelpSeekingFrequency >= 0.1 && signals.HelpSeekingFrequency <= 0.3 {
		score += 0.1
	}

	return Clamp01(score)
}

// ClassifyEngagement 固定分界点：0.8/0.6/0.4/0.2
func ClassifyEngagement(score float64) EngagementLevel {
	switch {
	case score >= 0.8:
		return EngagementVeryHigh
	case score >= 0.6:
		return EngagementHigh
	case score >= 0.4:
		return EngagementModerate
	case score >= 0.2:
		return EngagementLow
	default:
		return EngagementVeryLow
	}
}

// DisengagementRisk 流失风险是参与度的补
func DisengagementRisk(score float64) float64 {
	return 1.0 - Clamp01(score)
}

// InterventionNeeded 风险因素超过2条即需要干预，与分数本身无关
func InterventionNeeded(riskFactorCount int) bool {
	return riskFactorCount > 2
}
