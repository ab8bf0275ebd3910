package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func unchangedDifficulty(subject string, level Level) DifficultyAdjustment {
	return DifficultyAdjustment{
		Subject:          subject,
		CurrentLevel:     level,
		RecommendedLevel: level,
	}
}

func TestComposePlanBudgetExhaustedByReviews(t *testing.T) {
	candidates := []PlanCandidate{
		{
			Subject:    "Math",
			WeakTopics: []string{"Fractions", "Decimals"},
			Difficulty: unchangedDifficulty("Math", LevelIntermediate),
		},
	}

	actions := ComposePlan(candidates, 30)

	// 两个15分钟的复习正好用尽预算，20分钟的练习放不下，
	// 剩余0分钟不足以截断保留
	assert.Len(t, actions, 2)
	for _, a := range actions {
		assert.Equal(t, ActionReview, a.Kind)
		assert.Equal(t, 15, a.EstimatedMinutes)
	}
	assert.Equal(t, 30, totalMinutes(actions))
}

func TestComposePlanTruncatesLastAction(t *testing.T) {
	candidates := []PlanCandidate{
		{
			Subject:    "Math",
			WeakTopics: []string{"Fractions"},
			Difficulty: unchangedDifficulty("Math", LevelIntermediate),
		},
	}

	actions := ComposePlan(candidates, 25)

	// 15分钟复习后剩10分钟，练习被截断成10分钟保留
	assert.Len(t, actions, 2)
	assert.Equal(t, ActionReview, actions[0].Kind)
	assert.Equal(t, ActionPractice, actions[1].Kind)
	assert.Equal(t, 10, actions[1].EstimatedMinutes)
	assert.Equal(t, 25, totalMinutes(actions))
}

func TestComposePlanPriorityOrdering(t *testing.T) {
	candidates := []PlanCandidate{
		{
			Subject:    "Science",
			Difficulty: unchangedDifficulty("Science", LevelIntermediate),
		},
		{
			Subject:    "English",
			WeakTopics: []string{"Grammar"},
			Difficulty: unchangedDifficulty("English", LevelIntermediate),
		},
		{
			Subject: "Math",
			Difficulty: DifficultyAdjustment{
				Subject:          "Math",
				CurrentLevel:     LevelAdvanced,
				RecommendedLevel: LevelIntermediate, // 降难度的科目最优先
			},
		},
	}

	actions := ComposePlan(candidates, 240)

	assert.Equal(t, "Math", actions[0].Subject)
	assert.Equal(t, 1, actions[0].Priority)
	for i := 1; i < len(actions); i++ {
		assert.GreaterOrEqual(t, actions[i].Priority, actions[i-1].Priority)
	}
}

func TestComposePlanReviewForcedToBeginner(t *testing.T) {
	candidates := []PlanCandidate{
		{
			Subject:    "Math",
			WeakTopics: []string{"Algebra"},
			Difficulty: unchangedDifficulty("Math", LevelAdvanced),
		},
	}

	actions := ComposePlan(candidates, 120)

	assert.Equal(t, ActionReview, actions[0].Kind)
	assert.Equal(t, "Algebra", actions[0].Topic)
	assert.Equal(t, ActionPractice, actions[1].Kind)
	assert.Contains(t, actions[1].Rationale, "advanced")
}

func TestComposePlanCapsWeakTopicsPerSubject(t *testing.T) {
	candidates := []PlanCandidate{
		{
			Subject:    "Math",
			WeakTopics: []string{"A", "B", "C", "D"},
			Difficulty: unchangedDifficulty("Math", LevelIntermediate),
		},
	}

	actions := ComposePlan(candidates, 600)

	reviews := 0
	for _, a := range actions {
		if a.Kind == ActionReview {
			reviews++
		}
	}
	assert.Equal(t, 2, reviews)
}

func TestComposePlanSoftCapStopsNewSubjects(t *testing.T) {
	var candidates []PlanCandidate
	for _, subject := range []string{"Math", "Science", "English", "History", "Geography"} {
		candidates = append(candidates, PlanCandidate{
			Subject:    subject,
			Difficulty: unchangedDifficulty(subject, LevelIntermediate),
		})
	}

	// 预算50：第一科练习20分钟，40 >= 50*0.8 之前还能进第二科，之后停止
	actions := ComposePlan(candidates, 50)

	subjects := map[string]bool{}
	for _, a := range actions {
		subjects[a.Subject] = true
	}
	assert.Equal(t, 2, len(subjects))
	assert.LessOrEqual(t, totalMinutes(actions), 50)
}

func TestComposePlanZeroOrNegativeBudget(t *testing.T) {
	candidates := []PlanCandidate{
		{Subject: "Math", Difficulty: unchangedDifficulty("Math", LevelBeginner)},
	}

	assert.Empty(t, ComposePlan(candidates, 0))
	assert.Empty(t, ComposePlan(candidates, -10))
}

func TestComposePlanBudgetInvariant(t *testing.T) {
	candidates := []PlanCandidate{
		{Subject: "Math", WeakTopics: []string{"A", "B"}, Difficulty: unchangedDifficulty("Math", LevelIntermediate)},
		{Subject: "Science", WeakTopics: []string{"C"}, Difficulty: unchangedDifficulty("Science", LevelBeginner)},
	}

	for budget := 0; budget <= 120; budget += 5 {
		actions := ComposePlan(candidates, budget)
		assert.LessOrEqual(t, totalMinutes(actions), budget)
	}
}

func TestComposePlanDeterministic(t *testing.T) {
	candidates := []PlanCandidate{
		{Subject: "Math", WeakTopics: []string{"A"}, Difficulty: unchangedDifficulty("Math", LevelIntermediate)},
		{Subject: "Science", Difficulty: unchangedDifficulty("Science", LevelBeginner)},
	}

	first := ComposePlan(candidates, 60)
	second := ComposePlan(candidates, 60)
	assert.Equal(t, first, second)
}

func TestPlanPriority(t *testing.T) {
	demoted := PlanCandidate{Difficulty: DifficultyAdjustment{
		CurrentLevel:     LevelIntermediate,
		RecommendedLevel: LevelBeginner,
	}}
	assert.Equal(t, 1, PlanPriority(demoted))

	weak := PlanCandidate{
		WeakTopics: []string{"Loops"},
		Difficulty: unchangedDifficulty("", LevelIntermediate),
	}
	assert.Equal(t, 2, PlanPriority(weak))

	normal := PlanCandidate{Difficulty: unchangedDifficulty("", LevelIntermediate)}
	assert.Equal(t, 3, PlanPriority(normal))

	hinted := normal
	hinted.PriorityHint = 1
	assert.Equal(t, 1, PlanPriority(hinted))
}

func totalMinutes(actions []RecommendedAction) int {
	total := 0
	for _, a := range actions {
		total += a.EstimatedMinutes
	}
	return total
}
