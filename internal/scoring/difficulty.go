package scoring

import "fmt"

// Level 内容难度档位
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Weights 难度调整的加权系数，各项独立可调，不要求和为1
type Weights struct {
	Accuracy    float64 `json:"accuracy" mapstructure:"accuracy"`
	Trend       float64 `json:"trend" mapstructure:"trend"`
	Consistency float64 `json:"consistency" mapstructure:"consistency"`
}

func DefaultWeights() Weights {
	return Weights{Accuracy: 0.4, Trend: 0.2, Consistency: 0.2}
}

type DifficultyAdjustment struct {
	Subject          string             `json:"subject"`
	CurrentLevel     Level              `json:"currentLevel"`
	RecommendedLevel Level              `json:"recommendedLevel"`
	Confidence       float64            `json:"confidence"`
	Rationale        string             `json:"rationale"`
	Factors          map[string]float64 `json:"factors"`
}

// RecommendDifficulty 由准确率、趋势、稳定度加权决定单步的难度升降
func RecommendDifficulty(
	subject string,
	currentLevel Level,
	meanAccuracy float64,
	trend TrendResult,
	consistency ConsistencyResult,
	weights Weights,
) DifficultyAdjustment {
	meanAccuracy = Clamp01(meanAccuracy)

	trendFactor := 0.0
	switch trend.Direction {
	case TrendImproving:
		trendFactor = 1.0
	case TrendDeclining:
		trendFactor = -1.0
	}

	weighted := meanAccuracy*weights.Accuracy +
		(trendFactor+1)/2*weights.Trend +
		consistency.ConsistencyScore*weights.Consistency

	recommended := currentLevel
	confidence := 0.5
	rationale := fmt.Sprintf("Maintaining current difficulty level (score: %.2f)", meanAccuracy)

	switch {
	case weighted > 0.8 && currentLevel != LevelAdvanced:
		recommended = nextLevel(currentLevel)
		confidence = weighted
		if confidence > 0.9 {
			confidence = 0.9
		}
		rationale = fmt.Sprintf("Strong performance (score: %.2f) suggests readiness for increased difficulty", meanAccuracy)

	case weighted < 0.4 && currentLevel != LevelBeginner:
		recommended = previousLevel(currentLevel)
		confidence = 1.0 - weighted
		if confidence > 0.9 {
			confidence = 0.9
		}
		rationale = fmt.Sprintf("Struggling performance (score: %.2f) suggests need for easier content", meanAccuracy)
	}

	return DifficultyAdjustment{
		Subject:          subject,
		CurrentLevel:     currentLevel,
		RecommendedLevel: recommended,
		Confidence:       confidence,
		Rationale:        rationale,
		Factors: map[string]float64{
			"accuracy":    meanAccuracy,
			"trend":       trendFactor,
			"consistency": consistency.ConsistencyScore,
		},
	}
}

func nextLevel(level Level) Level {
	switch level {
	case LevelBeginner:
		return LevelIntermediate
	case LevelIntermediate:
		return LevelAdvanced
	}
	return level
}

func previousLevel(level Level) Level {
	switch level {
	case LevelAdvanced:
		return LevelIntermediate
	case LevelIntermediate:
		return LevelBeginner
	}
	return level
}

// MasteryLevel 按总体得分归档掌握程度
func MasteryLevel(overallScore float64) Level {
	if overallScore >= 0.8 {
		return LevelAdvanced
	}
	if overallScore >= 0.6 {
		return LevelIntermediate
	}
	return LevelBeginner
}

// Clamp01 把数值收拢到 [0,1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
