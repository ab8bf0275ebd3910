package service

import (
	"testing"

	"aitutor_backend/internal/scoring"

	"github.com/stretchr/testify/assert"
)

func TestAssessmentIntervalStable(t *testing.T) {
	hours, _ := assessmentInterval(scoring.TrendStable, 0.6)
	assert.Equal(t, 24.0, hours)
}

func TestAssessmentIntervalImproving(t *testing.T) {
	hours, rationale := assessmentInterval(scoring.TrendImproving, 0.6)
	assert.Equal(t, 18.0, hours)
	assert.Contains(t, rationale, "improving")
}

func TestAssessmentIntervalDeclining(t *testing.T) {
	hours, _ := assessmentInterval(scoring.TrendDeclining, 0.6)
	assert.Equal(t, 12.0, hours)
}

func TestAssessmentIntervalLowMeanOverridesTrend(t *testing.T) {
	hours, _ := assessmentInterval(scoring.TrendImproving, 0.3)
	assert.Equal(t, 8.0, hours)
}

func TestAssessmentIntervalHighMeanExtends(t *testing.T) {
	hours, _ := assessmentInterval(scoring.TrendDeclining, 0.9)
	assert.Equal(t, 48.0, hours)
}

func unchangedAdjustment() scoring.DifficultyAdjustment {
	return scoring.DifficultyAdjustment{
		CurrentLevel:     scoring.LevelIntermediate,
		RecommendedLevel: scoring.LevelIntermediate,
		Confidence:       0.5,
	}
}

func TestSuccessProbabilityBaseline(t *testing.T) {
	trend := scoring.TrendResult{Direction: scoring.TrendStable}
	consistency := scoring.ConsistencyResult{ConsistencyScore: 0.5}
	assert.InDelta(t, 0.7, successProbability(trend, consistency, unchangedAdjustment()), 1e-9)
}

func TestSuccessProbabilityImprovingBoost(t *testing.T) {
	trend := scoring.TrendResult{Direction: scoring.TrendImproving}
	consistency := scoring.ConsistencyResult{ConsistencyScore: 0.5}
	assert.InDelta(t, 0.85, successProbability(trend, consistency, unchangedAdjustment()), 1e-9)
}

func TestSuccessProbabilityDecliningPenalty(t *testing.T) {
	trend := scoring.TrendResult{Direction: scoring.TrendDeclining}
	consistency := scoring.ConsistencyResult{ConsistencyScore: 0.5}
	assert.InDelta(t, 0.55, successProbability(trend, consistency, unchangedAdjustment()), 1e-9)
}

func TestSuccessProbabilityConsistencyCentered(t *testing.T) {
	trend := scoring.TrendResult{Direction: scoring.TrendStable}
	consistency := scoring.ConsistencyResult{ConsistencyScore: 1.0}
	assert.InDelta(t, 0.8, successProbability(trend, consistency, unchangedAdjustment()), 1e-9)
}

func TestSuccessProbabilityDifficultyAdjustments(t *testing.T) {
	trend := scoring.TrendResult{Direction: scoring.TrendStable}
	consistency := scoring.ConsistencyResult{ConsistencyScore: 0.5}

	demoted := scoring.DifficultyAdjustment{
		CurrentLevel:     scoring.LevelIntermediate,
		RecommendedLevel: scoring.LevelBeginner,
		Confidence:       0.8,
	}
	assert.InDelta(t, 0.78, successProbability(trend, consistency, demoted), 1e-9)

	promoted := scoring.DifficultyAdjustment{
		CurrentLevel:     scoring.LevelIntermediate,
		RecommendedLevel: scoring.LevelAdvanced,
		Confidence:       0.8,
	}
	assert.InDelta(t, 0.66, successProbability(trend, consistency, promoted), 1e-9)
}

func TestSuccessProbabilityClamped(t *testing.T) {
	trend := scoring.TrendResult{Direction: scoring.TrendImproving}
	consistency := scoring.ConsistencyResult{ConsistencyScore: 1.0}
	demoted := scoring.DifficultyAdjustment{
		CurrentLevel:     scoring.LevelIntermediate,
		RecommendedLevel: scoring.LevelBeginner,
		Confidence:       0.9,
	}
	assert.Equal(t, 0.95, successProbability(trend, consistency, demoted))

	trend = scoring.TrendResult{Direction: scoring.TrendDeclining}
	consistency = scoring.ConsistencyResult{ConsistencyScore: 0.0}
	promoted := scoring.DifficultyAdjustment{
		CurrentLevel:     scoring.LevelIntermediate,
		RecommendedLevel: scoring.LevelAdvanced,
		Confidence:       0.9,
	}
	assert.InDelta(t, 0.405, successProbability(trend, consistency, promoted), 1e-9)
}

func TestAdaptiveWeightsFallBackToDefaults(t *testing.T) {
	s := &AdaptiveService{}
	assert.Equal(t, scoring.DefaultWeights(), s.weights())
}
