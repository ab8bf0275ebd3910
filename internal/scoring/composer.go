package scoring

import (
	"fmt"
	"sort"
)

// ActionKind 学习计划中的动作类型
type ActionKind string

const (
	ActionReview       ActionKind = "review"
	ActionPractice     ActionKind = "practice"
	ActionIntervention ActionKind = "intervention"
)

const (
	reviewMinutes   = 15
	practiceMinutes = 20
	minUsefulChunk  = 10 // 剩余预算低于10分钟就不再塞内容
)

type RecommendedAction struct {
	Kind             ActionKind `json:"kind"`
	Subject          string     `json:"subject"`
	Topic            string     `json:"topic"`
	Priority         int        `json:"priority"`
	EstimatedMinutes int        `json:"estimatedMinutes"`
	Rationale        string     `json:"rationale"`
}

// PlanCandidate 进入排期的科目及其诊断结果
type PlanCandidate struct {
	Subject      string               `json:"subject"`
	WeakTopics   []string             `json:"weakTopics"`
	Difficulty   DifficultyAdjustment `json:"difficulty"`
	PriorityHint int                  `json:"priorityHint"`
}

// PlanPriority 1=降难度科目，2=有薄弱知识点，3=其他
func PlanPriority(c PlanCandidate) int {
	if c.PriorityHint > 0 {
		return c.PriorityHint
	}
	if levelRank(c.Difficulty.RecommendedLevel) < levelRank(c.Difficulty.CurrentLevel) {
		return 1
	}
	if len(c.WeakTopics) > 0 {
		return 2
	}
	return 3
}

// ComposePlan 按优先级为各科目排定复习/练习动作，总时长不超过预算
func ComposePlan(candidates []PlanCandidate, timeBudgetMinutes int) []RecommendedAction {
	if timeBudgetMinutes <= 0 {
		return []RecommendedAction{}
	}

	ordered := make([]PlanCandidate, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return PlanPriority(ordered[i]) < PlanPriority(ordered[j])
	})

	var actions []RecommendedAction
	allocated := 0
	softCap := float64(timeBudgetMinutes) * 0.8 // 预留20%缓冲，不排满

	for _, c := range ordered {
		if float64(allocated) >= softCap {
			break
		}
		priority := PlanPriority(c)

		// 每科最多安排2个薄弱点复习，复习内容统一压到入门难度
		topics := c.WeakTopics
		if len(topics) > 2 {
			topics = topics[:2]
		}
		for _, topic := range topics {
			actions = append(actions, RecommendedAction{
				Kind:             ActionReview,
				Subject:          c.Subject,
				Topic:            topic,
				Priority:         priority,
				EstimatedMinutes: reviewMinutes,
				Rationale:        fmt.Sprintf("Student needs to review %s based on recent performance", topic),
			})
			allocated += reviewMinutes
		}

		actions = append(actions, RecommendedAction{
			Kind:             ActionPractice,
			Subject:          c.Subject,
			Topic:            "Practice exercises",
			Priority:         priority,
			EstimatedMinutes: practiceMinutes,
			Rationale:        fmt.Sprintf("Practice at %s level to build confidence and skills", c.Difficulty.RecommendedLevel),
		})
		allocated += practiceMinutes
	}

	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].Priority < actions[j].Priority
	})

	// 最终按预算裁剪：放不下但还剩≥10分钟时，截断最后一个动作
	final := make([]RecommendedAction, 0, len(actions))
	total := 0
	for _, action := range actions {
		if total+action.EstimatedMinutes <= timeBudgetMinutes {
			final = append(final, action)
			total += action.EstimatedMinutes
			continue
		}
		remaining := timeBudgetMinutes - total
		if remaining >= minUsefulChunk {
			action.EstimatedMinutes = remaining
			final = append(final, action)
		}
		break
	}

	return final
}

func levelRank(level Level) int {
	switch level {
	case LevelBeginner:
		return 0
	case LevelIntermediate:
		return 1
	case LevelAdvanced:
		return 2
	}
	return 0
}
