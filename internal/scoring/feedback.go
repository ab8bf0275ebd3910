package scoring

// 判定"答对"的分数线是显式参数，二元题型与部分给分题型使用不同的阈值
const (
	BinaryCorrectThreshold   = 0.5
	FreeTextCorrectThreshold = 0.6
)

// ScoreThreshold 返回指定评分模式的正确性分数线
func ScoreThreshold(mode Mode) float64 {
	if mode == ModeFreeText {
		return FreeTextCorrectThreshold
	}
	return BinaryCorrectThreshold
}

// IsCorrect 按显式阈值把分数归类为对/错
func IsCorrect(score, threshold float64) bool {
	return score >= threshold
}
