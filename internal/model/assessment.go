package model

import (
	"encoding/json"
)

// QuestionAnswer 评卷请求中的单条作答
type QuestionAnswer struct {
	QuestionID    string `json:"questionId" binding:"required"`
	StudentAnswer string `json:"studentAnswer"`
	CorrectAnswer string `json:"correctAnswer" binding:"required"`
	QuestionType  string `json:"questionType" binding:"required"` // mcq / true_false / fill_blank / short_answer / long_answer
}

// FeedbackItem 单题评卷结果
type FeedbackItem struct {
	QuestionID             string   `json:"questionId"`
	IsCorrect              bool     `json:"isCorrect"`
	Score                  float64  `json:"score"`
	FeedbackText           string   `json:"feedbackText"`
	ImprovementSuggestions []string `json:"improvementSuggestions"`
	DifficultyAssessment   string   `json:"difficultyAssessment"`
}

// PerformanceMetrics 一次测评的整体表现
type PerformanceMetrics struct {
	TotalQuestions       int                `json:"totalQuestions"`
	CorrectAnswers       int                `json:"correctAnswers"`
	PartialCreditAnswers int                `json:"partialCreditAnswers"`
	IncorrectAnswers     int                `json:"incorrectAnswers"`
	OverallScore         float64            `json:"overallScore"`
	SubjectMasteryLevel  string             `json:"subjectMasteryLevel"`
	Strengths            []string           `json:"strengths"`
	AreasForImprovement  []string           `json:"areasForImprovement"`
	ConfidenceIndicators map[string]float64 `json:"confidenceIndicators"`
}

// AssessmentSubmission 落库的整卷提交
type AssessmentSubmission struct {
	BaseModel
	UserID       uint            `gorm:"index" json:"userId"`
	Subject      string          `gorm:"size:100;not null" json:"subject"`
	Topic        string          `gorm:"size:200" json:"topic"`
	Answers      json.RawMessage `gorm:"type:json" json:"answers"`
	Feedback     json.RawMessage `gorm:"type:json" json:"feedback"`
	OverallScore float64         `gorm:"default:0" json:"overallScore"`
	MasteryLevel string          `gorm:"size:20" json:"masteryLevel"`
}

func (AssessmentSubmission) TableName() string {
	return "assessment_submissions"
}
