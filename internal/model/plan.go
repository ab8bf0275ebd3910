package model

import "encoding/json"

// StudyPlan 一次排期的结果，动作列表以JSON整体保存
type StudyPlan struct {
	BaseModel
	UserID            uint            `gorm:"index" json:"userId"`
	TimeBudgetMinutes int             `gorm:"not null" json:"timeBudgetMinutes"`
	TotalMinutes      int             `gorm:"not null" json:"totalMinutes"`
	Actions           json.RawMessage `gorm:"type:json" json:"actions"`
	ReportURL         string          `gorm:"size:255" json:"reportUrl"`
}

func (StudyPlan) TableName() string {
	return "study_plans"
}
