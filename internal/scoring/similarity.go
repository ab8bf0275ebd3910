package scoring

import (
	"regexp"
	"strings"
)

// Mode 答题评分模式
type Mode string

const (
	ModeExact     Mode = "exact"      // 精确匹配（选择、判断题）
	ModeFillBlank Mode = "fill_blank" // 填空题，按词集合重叠给部分分
	ModeFreeText  Mode = "free_text"  // 主观题，关键词覆盖+篇幅合理性
)

// 关键词提取时过滤的英文停用词
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "being": {}, "have": {}, "has": {}, "had": {},
	"do": {}, "does": {}, "did": {}, "will": {}, "would": {}, "could": {}, "should": {},
}

var wordPattern = regexp.MustCompile(`\b\w+\b`)

// Similarity 计算作答与参考答案的相似度得分，范围 [0,1]
func Similarity(candidate, reference string, mode Mode) float64 {
	switch mode {
	case ModeFillBlank:
		return fillBlankScore(candidate, reference)
	case ModeFreeText:
		return freeTextScore(candidate, reference)
	default:
		return exactScore(candidate, reference)
	}
}

func exactScore(candidate, reference string) float64 {
	if strings.EqualFold(strings.TrimSpace(candidate), strings.TrimSpace(reference)) {
		return 1.0
	}
	return 0.0
}

// fillBlankScore 词集合的 Jaccard 系数
func fillBlankScore(candidate, reference string) float64 {
	candidateWords := wordSet(candidate)
	referenceWords := wordSet(reference)

	if len(referenceWords) == 0 {
		if len(candidateWords) == 0 {
			return 1.0
		}
		return 0.0
	}

	intersection := 0
	union := len(referenceWords)
	for w := range candidateWords {
		if _, ok := referenceWords[w]; ok {
			intersection++
		} else {
			union++
		}
	}

	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

// freeTextScore 关键词覆盖率 80% + 篇幅合理性 20%
func freeTextScore(candidate, reference string) float64 {
	candidateKeywords := ExtractKeywords(candidate)
	referenceKeywords := ExtractKeywords(reference)

	if len(referenceKeywords) == 0 {
		if len(candidateKeywords) == 0 {
			return 1.0
		}
		return 0.0
	}

	common := 0
	for w := range candidateKeywords {
		if _, ok := referenceKeywords[w]; ok {
			common++
		}
	}
	keywordScore := float64(common) / float64(len(referenceKeywords))

	// 一个关键词都没命中，不给篇幅分
	if keywordScore == 0 {
		return 0.0
	}

	refLen := len(reference)
	if refLen < 1 {
		refLen = 1
	}
	lengthScore := float64(len(candidate)) / float64(refLen)
	if lengthScore > 2.0 {
		lengthScore = 2.0
	}
	if lengthScore > 1.5 {
		// 过长的回答扣分
		lengthScore = 1.0 - (lengthScore - 1.5)
	}

	score := keywordScore*0.8 + lengthScore*0.2
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// ExtractKeywords 提取去停用词后长度大于2的小写词集合
func ExtractKeywords(text string) map[string]struct{} {
	keywords := make(map[string]struct{})
	for _, word := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if len(word) <= 2 {
			continue
		}
		if _, ok := stopWords[word]; ok {
			continue
		}
		keywords[word] = struct{}{}
	}
	return keywords
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = struct{}{}
	}
	return set
}
