package model

import (
	"encoding/json"
	"time"
)

// 参与度事件类型，由前端埋点上报
const (
	EventSessionStart    = "session_start"
	EventSessionEnd      = "session_end"
	EventHelpRequested   = "help_requested"
	EventHintUsed        = "hint_used"
	EventQuestionRetried = "question_retried"
)

type EngagementEvent struct {
	BaseModel
	UserID     uint            `gorm:"index" json:"userId"`
	EventType  string          `gorm:"size:50;not null;index" json:"eventType"`
	EventData  json.RawMessage `gorm:"type:json" json:"eventData"`
	OccurredAt time.Time       `gorm:"index;not null" json:"occurredAt"`
}

func (EngagementEvent) TableName() string {
	return "engagement_events"
}

// EngagementProfile 学生当前的参与度画像，每次重算后整体覆盖
type EngagementProfile struct {
	BaseModel
	UserID             uint    `gorm:"uniqueIndex" json:"userId"`
	Score              float64 `gorm:"default:0.5" json:"score"`
	Level              string  `gorm:"size:20;default:'moderate'" json:"level"`
	DisengagementRisk  float64 `gorm:"default:0.5" json:"disengagementRisk"`
	InterventionNeeded bool    `gorm:"default:false" json:"interventionNeeded"`
	StreakDays         int     `gorm:"default:0" json:"streakDays"`
	RiskFactors        string  `gorm:"type:text" json:"riskFactors"` // 分号分隔
}

func (EngagementProfile) TableName() string {
	return "engagement_profiles"
}

// Intervention 针对低参与度学生生成的干预建议
type Intervention struct {
	Type            string  `json:"type"` // encouragement / goal_setting / break_suggestion / reward
	Message         string  `json:"message"`
	EstimatedImpact float64 `json:"estimatedImpact"`
}
