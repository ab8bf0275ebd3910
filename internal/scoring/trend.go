package scoring

import "math"

// TrendDirection 成绩序列的走向分类
type TrendDirection string

const (
	TrendImproving        TrendDirection = "improving"
	TrendDeclining        TrendDirection = "declining"
	TrendStable           TrendDirection = "stable"
	TrendInsufficientData TrendDirection = "insufficient_data"
)

// 两套斜率阈值对应系统中的两类调用方：
// 难度策略用 0.02，参与度风险分析用更保守的 0.05
const (
	DefaultSlopeThreshold = 0.02
	StrictSlopeThreshold  = 0.05
)

type TrendResult struct {
	Direction  TrendDirection `json:"direction"`
	Slope      float64        `json:"slope"`
	Confidence float64        `json:"confidence"`
}

type ConsistencyResult struct {
	ConsistencyScore  float64 `json:"consistencyScore"`
	StandardDeviation float64 `json:"standardDeviation"`
	Mean              float64 `json:"mean"`
}

// Analyzer 趋势分析器，斜率阈值由调用方显式注入
type Analyzer struct {
	SlopeThreshold float64
}

func NewAnalyzer(slopeThreshold float64) Analyzer {
	if slopeThreshold <= 0 {
		slopeThreshold = DefaultSlopeThreshold
	}
	return Analyzer{SlopeThreshold: slopeThreshold}
}

// AnalyzeTrend 对序列按索引做最小二乘拟合并分类走向
func (a Analyzer) AnalyzeTrend(series []float64) TrendResult {
	n := len(series)
	if n < 2 {
		return TrendResult{Direction: TrendInsufficientData, Slope: 0, Confidence: 0}
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range series {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	slope := 0.0
	denom := float64(n)*sumX2 - sumX*sumX
	if denom != 0 {
		slope = (float64(n)*sumXY - sumX*sumY) / denom
	}

	direction := TrendStable
	if slope > a.SlopeThreshold {
		direction = TrendImproving
	} else if slope < -a.SlopeThreshold {
		direction = TrendDeclining
	}

	confidence := math.Abs(slope) * 10
	if confidence > 1.0 {
		confidence = 1.0
	}

	return TrendResult{Direction: direction, Slope: slope, Confidence: confidence}
}

// AnalyzeConsistency 序列的稳定度：1 - 标准差/均值，均值下限 0.1 防止除零
func (a Analyzer) AnalyzeConsistency(series []float64) ConsistencyResult {
	if len(series) < 2 {
		mean := 0.0
		if len(series) == 1 {
			mean = series[0]
		}
		return ConsistencyResult{ConsistencyScore: 1.0, StandardDeviation: 0, Mean: mean}
	}

	mean := Mean(series)

	var sumSq float64
	for _, v := range series {
		d := v - mean
		sumSq += d * d
	}
	std := math.Sqrt(sumSq / float64(len(series)-1))

	denom := mean
	if denom < 0.1 {
		denom = 0.1
	}
	consistency := 1.0 - std/denom
	if consistency < 0 {
		consistency = 0
	}

	return ConsistencyResult{ConsistencyScore: consistency, StandardDeviation: std, Mean: mean}
}

// Mean 算术平均，空序列返回 0
func Mean(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	var sum float64
	for _, v := range series {
		sum += v
	}
	return sum / float64(len(series))
}
