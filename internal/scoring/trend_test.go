package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeTrendImproving(t *testing.T) {
	analyzer := NewAnalyzer(DefaultSlopeThreshold)
	result := analyzer.AnalyzeTrend([]float64{0.4, 0.5, 0.6, 0.7, 0.8})

	assert.Equal(t, TrendImproving, result.Direction)
	assert.InDelta(t, 0.1, result.Slope, 1e-9)
	assert.InDelta(t, 1.0, result.Confidence, 1e-9)
}

func TestAnalyzeTrendDeclining(t *testing.T) {
	analyzer := NewAnalyzer(DefaultSlopeThreshold)
	result := analyzer.AnalyzeTrend([]float64{0.9, 0.7, 0.5, 0.3})

	assert.Equal(t, TrendDeclining, result.Direction)
	assert.Less(t, result.Slope, 0.0)
}

func TestAnalyzeTrendConstantSeries(t *testing.T) {
	analyzer := NewAnalyzer(DefaultSlopeThreshold)
	for _, x := range []float64{0.0, 0.3, 0.77, 1.0} {
		result := analyzer.AnalyzeTrend([]float64{x, x, x, x})
		assert.Equal(t, TrendStable, result.Direction)
		assert.InDelta(t, 0.0, result.Slope, 1e-9)
	}
}

func TestAnalyzeTrendInsufficientData(t *testing.T) {
	analyzer := NewAnalyzer(DefaultSlopeThreshold)

	for _, series := range [][]float64{nil, {}, {0.5}} {
		result := analyzer.AnalyzeTrend(series)
		assert.Equal(t, TrendInsufficientData, result.Direction)
		assert.Equal(t, 0.0, result.Slope)
		assert.Equal(t, 0.0, result.Confidence)
	}
}

func TestAnalyzeTrendThresholdProfiles(t *testing.T) {
	// 斜率0.03：默认阈值判上升，严格阈值判平稳
	series := []float64{0.50, 0.53, 0.56, 0.59}

	loose := NewAnalyzer(DefaultSlopeThreshold).AnalyzeTrend(series)
	strict := NewAnalyzer(StrictSlopeThreshold).AnalyzeTrend(series)

	assert.Equal(t, TrendImproving, loose.Direction)
	assert.Equal(t, TrendStable, strict.Direction)
	assert.InDelta(t, loose.Slope, strict.Slope, 1e-9)
}

func TestAnalyzeTrendDeterministic(t *testing.T) {
	analyzer := NewAnalyzer(DefaultSlopeThreshold)
	series := []float64{0.2, 0.9, 0.4, 0.6, 0.8}

	first := analyzer.AnalyzeTrend(series)
	second := analyzer.AnalyzeTrend(series)
	assert.Equal(t, first, second)
}

func TestAnalyzeConsistencySteadySeries(t *testing.T) {
	analyzer := NewAnalyzer(DefaultSlopeThreshold)
	result := analyzer.AnalyzeConsistency([]float64{0.5, 0.5, 0.5})

	assert.Equal(t, 1.0, result.ConsistencyScore)
	assert.Equal(t, 0.0, result.StandardDeviation)
	assert.Equal(t, 0.5, result.Mean)
}

func TestAnalyzeConsistencyShortSeries(t *testing.T) {
	analyzer := NewAnalyzer(DefaultSlopeThreshold)

	result := analyzer.AnalyzeConsistency([]float64{0.7})
	assert.Equal(t, 1.0, result.ConsistencyScore)
	assert.Equal(t, 0.7, result.Mean)

	empty := analyzer.AnalyzeConsistency(nil)
	assert.Equal(t, 1.0, empty.ConsistencyScore)
	assert.Equal(t, 0.0, empty.Mean)
}

func TestAnalyzeConsistencyVolatileSeries(t *testing.T) {
	analyzer := NewAnalyzer(DefaultSlopeThreshold)
	result := analyzer.AnalyzeConsistency([]float64{0.2, 0.8})

	assert.InDelta(t, 0.5, result.Mean, 1e-9)
	assert.Greater(t, result.StandardDeviation, 0.0)
	assert.GreaterOrEqual(t, result.ConsistencyScore, 0.0)
	assert.Less(t, result.ConsistencyScore, 0.5)
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.InDelta(t, 0.5, Mean([]float64{0.4, 0.6}), 1e-9)
}
