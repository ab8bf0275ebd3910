package service

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"aitutor_backend/internal/model"
	"aitutor_backend/internal/repository"
	"aitutor_backend/internal/scoring"
	"aitutor_backend/internal/util"
	"aitutor_backend/pkg/monitoring"

	"go.uber.org/zap"
)

type AssessmentService struct {
	AssessmentRepo  *repository.AssessmentRepository
	ObservationRepo *repository.ObservationRepository
	Logger          *zap.Logger
}

func NewAssessmentService(
	assessmentRepo *repository.AssessmentRepository,
	observationRepo *repository.ObservationRepository,
	logger *zap.Logger,
) *AssessmentService {
	return &AssessmentService{
		AssessmentRepo:  assessmentRepo,
		ObservationRepo: observationRepo,
		Logger:          logger,
	}
}

type GradeRequest struct {
	Subject string                 `json:"subject" binding:"required"`
	Topic   string                 `json:"topic"`
	Answers []model.QuestionAnswer `json:"answers" binding:"required,min=1,dive"`
}

type GradeResult struct {
	SubmissionID uint                     `json:"submissionId"`
	Feedback     []model.FeedbackItem     `json:"feedback"`
	Metrics      model.PerformanceMetrics `json:"metrics"`
}

// scoringMode 题型到评分模式的映射：
// 选择/判断走精确匹配，填空走词集合重叠，主观题走关键词覆盖
func scoringMode(questionType string) scoring.Mode {
	switch questionType {
	case "fill_blank":
		return scoring.ModeFillBlank
	case "short_answer", "long_answer":
		return scoring.ModeFreeText
	default:
		return scoring.ModeExact
	}
}

// Grade 对整卷评分：逐题打分，汇总表现指标，并把归一化得分写入观测流
func (s *AssessmentService) Grade(userID uint, req GradeRequest) (*GradeResult, error) {
	if len(req.Answers) == 0 {
		return nil, util.ErrNoResponses
	}

	feedback := make([]model.FeedbackItem, 0, len(req.Answers))
	observations := make([]model.ScoredObservation, 0, len(req.Answers))
	now := time.Now()

	correct := 0
	partial := 0
	incorrect := 0
	totalScore := 0.0
	confidence := make(map[string]float64, len(req.Answers))

	for i, answer := range req.Answers {
		mode := scoringMode(answer.QuestionType)
		score := scoring.Similarity(answer.StudentAnswer, answer.CorrectAnswer, mode)
		threshold := scoring.ScoreThreshold(mode)
		isCorrect := scoring.IsCorrect(score, threshold)

		switch {
		case isCorrect:
			correct++
		case score > 0:
			partial++
		default:
			incorrect++
		}
		totalScore += score
		confidence[answer.QuestionID] = score

		feedback = append(feedback, model.FeedbackItem{
			QuestionID:             answer.QuestionID,
			IsCorrect:              isCorrect,
			Score:                  score,
			FeedbackText:           feedbackText(isCorrect, score),
			ImprovementSuggestions: improvementSuggestions(answer, score, mode),
			DifficultyAssessment:   difficultyAssessment(score),
		})

		observations = append(observations, model.ScoredObservation{
			UserID:  userID,
			Subject: req.Subject,
			Topic:   req.Topic,
			Value:   score,
			Weight:  1.0,
			Source:  "assessment",
			// 保持同卷内的题目顺序即观测顺序
			ObservedAt: now.Add(time.Duration(i) * time.Millisecond),
		})

		monitoring.GradedResponses.WithLabelValues(string(mode)).Inc()
	}

	overall := totalScore / float64(len(req.Answers))
	mastery := scoring.MasteryLevel(overall)

	metrics := model.PerformanceMetrics{
		TotalQuestions:       len(req.Answers),
		CorrectAnswers:       correct,
		PartialCreditAnswers: partial,
		IncorrectAnswers:     incorrect,
		OverallScore:         overall,
		SubjectMasteryLevel:  string(mastery),
		Strengths:            strengths(req, feedback),
		AreasForImprovement:  improvementAreas(req, feedback),
		ConfidenceIndicators: confidence,
	}

	answersJSON, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, err
	}
	feedbackJSON, err := json.Marshal(feedback)
	if err != nil {
		return nil, err
	}

	submission := &model.AssessmentSubmission{
		UserID:       userID,
		Subject:      req.Subject,
		Topic:        req.Topic,
		Answers:      answersJSON,
		Feedback:     feedbackJSON,
		OverallScore: overall,
		MasteryLevel: string(mastery),
	}
	if err := s.AssessmentRepo.Create(submission); err != nil {
		return nil, err
	}

	if err := s.ObservationRepo.CreateBatch(observations); err != nil {
		// 观测写入失败不影响评卷结果，记录后继续
		s.Logger.Error("Failed to record scored observations",
			zap.Uint("userId", userID),
			zap.String("subject", req.Subject),
			zap.Error(err))
	}

	s.Logger.Info("Assessment graded",
		zap.Uint("userId", userID),
		zap.String("subject", req.Subject),
		zap.Int("questions", len(req.Answers)),
		zap.Float64("overallScore", overall))

	return &GradeResult{
		SubmissionID: submission.ID,
		Feedback:     feedback,
		Metrics:      metrics,
	}, nil
}

func (s *AssessmentService) History(userID uint, page, pageSize int) ([]model.AssessmentSubmission, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return s.AssessmentRepo.FindByUser(userID, page, pageSize)
}

func feedbackText(isCorrect bool, score float64) string {
	switch {
	case isCorrect && score >= 0.95:
		return "Excellent! Your answer is correct."
	case isCorrect:
		return "Good work! Your answer covers the key points."
	case score > 0:
		return "Partially correct. Review the material and try to be more complete."
	default:
		return "Incorrect. Review this topic and try again."
	}
}

func improvementSuggestions(answer model.QuestionAnswer, score float64, mode scoring.Mode) []string {
	if score >= scoring.ScoreThreshold(mode) {
		return nil
	}

	suggestions := []string{}
	switch mode {
	case scoring.ModeFreeText:
		missing := missingKeywords(answer.StudentAnswer, answer.CorrectAnswer)
		if len(missing) > 0 {
			suggestions = append(suggestions, fmt.Sprintf("Try to include these key concepts: %v", missing))
		}
		suggestions = append(suggestions, "Structure your answer around the main ideas of the topic")
	case scoring.ModeFillBlank:
		suggestions = append(suggestions, "Check your answer word by word against the expected terms")
	default:
		suggestions = append(suggestions, "Review the material for this question before retrying")
	}
	return suggestions
}

func missingKeywords(candidate, reference string) []string {
	candidateKeywords := scoring.ExtractKeywords(candidate)
	var missing []string
	for w := range scoring.ExtractKeywords(reference) {
		if _, ok := candidateKeywords[w]; !ok {
			missing = append(missing, w)
		}
	}
	// 集合遍历顺序不稳定，先排序再截断，同一份作答永远给同一批建议
	sort.Strings(missing)
	if len(missing) > 3 {
		missing = missing[:3]
	}
	return missing
}

func difficultyAssessment(score float64) string {
	switch {
	case score >= 0.8:
		return "appropriate"
	case score >= 0.4:
		return "challenging"
	default:
		return "too_difficult"
	}
}

// strengths 得分≥0.8的题型归入强项
func strengths(req GradeRequest, feedback []model.FeedbackItem) []string {
	return questionTypesByScore(req, feedback, func(score float64) bool { return score >= 0.8 })
}

// improvementAreas 得分<0.5的题型归入待提升
func improvementAreas(req GradeRequest, feedback []model.FeedbackItem) []string {
	return questionTypesByScore(req, feedback, func(score float64) bool { return score < 0.5 })
}

func questionTypesByScore(req GradeRequest, feedback []model.FeedbackItem, match func(float64) bool) []string {
	seen := make(map[string]bool)
	var types []string
	for i, item := range feedback {
		if !match(item.Score) {
			continue
		}
		qt := req.Answers[i].QuestionType
		if !seen[qt] {
			seen[qt] = true
			types = append(types, qt)
		}
	}
	return types
}
