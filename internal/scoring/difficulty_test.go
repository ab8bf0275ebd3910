package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecommendDifficultyMaintain(t *testing.T) {
	// 0.9*0.4 + 1.0*0.2 + 0.8*0.2 = 0.76，落在维持区间
	adj := RecommendDifficulty(
		"Math",
		LevelIntermediate,
		0.9,
		TrendResult{Direction: TrendImproving},
		ConsistencyResult{ConsistencyScore: 0.8},
		DefaultWeights(),
	)

	assert.Equal(t, LevelIntermediate, adj.RecommendedLevel)
	assert.Equal(t, 0.5, adj.Confidence)
	assert.Contains(t, adj.Rationale, "0.90")
}

func TestRecommendDifficultyPromote(t *testing.T) {
	weights := Weights{Accuracy: 0.5, Trend: 0.2, Consistency: 0.2}
	adj := RecommendDifficulty(
		"Science",
		LevelBeginner,
		1.0,
		TrendResult{Direction: TrendImproving},
		ConsistencyResult{ConsistencyScore: 1.0},
		weights,
	)

	assert.Equal(t, LevelIntermediate, adj.RecommendedLevel)
	assert.InDelta(t, 0.9, adj.Confidence, 1e-9)
	assert.Contains(t, adj.Rationale, "1.00")
}

func TestRecommendDifficultyDemote(t *testing.T) {
	adj := RecommendDifficulty(
		"English",
		LevelIntermediate,
		0.1,
		TrendResult{Direction: TrendDeclining},
		ConsistencyResult{ConsistencyScore: 0.3},
		DefaultWeights(),
	)

	assert.Equal(t, LevelBeginner, adj.RecommendedLevel)
	assert.Equal(t, 0.9, adj.Confidence)
	assert.Contains(t, adj.Rationale, "0.10")
}

func TestRecommendDifficultyNoTierAboveAdvanced(t *testing.T) {
	weights := Weights{Accuracy: 0.5, Trend: 0.2, Consistency: 0.2}
	adj := RecommendDifficulty(
		"Math",
		LevelAdvanced,
		1.0,
		TrendResult{Direction: TrendImproving},
		ConsistencyResult{ConsistencyScore: 1.0},
		weights,
	)

	assert.Equal(t, LevelAdvanced, adj.RecommendedLevel)
	assert.Equal(t, 0.5, adj.Confidence)
}

func TestRecommendDifficultyNoTierBelowBeginner(t *testing.T) {
	adj := RecommendDifficulty(
		"Math",
		LevelBeginner,
		0.0,
		TrendResult{Direction: TrendDeclining},
		ConsistencyResult{ConsistencyScore: 0.0},
		DefaultWeights(),
	)

	assert.Equal(t, LevelBeginner, adj.RecommendedLevel)
	assert.Equal(t, 0.5, adj.Confidence)
}

func TestRecommendDifficultySingleStepOnly(t *testing.T) {
	levels := []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}
	trends := []TrendDirection{TrendImproving, TrendDeclining, TrendStable, TrendInsufficientData}

	for _, current := range levels {
		for _, direction := range trends {
			for _, accuracy := range []float64{0.0, 0.25, 0.5, 0.75, 1.0} {
				adj := RecommendDifficulty(
					"Math", current, accuracy,
					TrendResult{Direction: direction},
					ConsistencyResult{ConsistencyScore: accuracy},
					DefaultWeights(),
				)

				gap := levelRank(adj.RecommendedLevel) - levelRank(adj.CurrentLevel)
				if gap < 0 {
					gap = -gap
				}
				assert.LessOrEqual(t, gap, 1)
				assert.GreaterOrEqual(t, adj.Confidence, 0.0)
				assert.LessOrEqual(t, adj.Confidence, 1.0)
			}
		}
	}
}

func TestRecommendDifficultyClampsAccuracy(t *testing.T) {
	adj := RecommendDifficulty(
		"Math", LevelIntermediate, 1.7,
		TrendResult{Direction: TrendStable},
		ConsistencyResult{ConsistencyScore: 0.5},
		DefaultWeights(),
	)
	assert.Equal(t, 1.0, adj.Factors["accuracy"])
}

func TestMasteryLevel(t *testing.T) {
	assert.Equal(t, LevelAdvanced, MasteryLevel(0.8))
	assert.Equal(t, LevelIntermediate, MasteryLevel(0.6))
	assert.Equal(t, LevelIntermediate, MasteryLevel(0.79))
	assert.Equal(t, LevelBeginner, MasteryLevel(0.59))
}
