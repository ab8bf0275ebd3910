package model

import "time"

// ScoredObservation 一条带时间戳的成绩/表现观测，
// 由评卷和参与度追踪写入，按科目窗口化读取后交给趋势分析
type ScoredObservation struct {
	BaseModel
	UserID     uint      `gorm:"index:idx_obs_user_subject" json:"userId"`
	Subject    string    `gorm:"size:100;index:idx_obs_user_subject" json:"subject"`
	Topic      string    `gorm:"size:200" json:"topic"`
	Value      float64   `gorm:"not null" json:"value"`            // 归一化得分 [0,1]
	Weight     float64   `gorm:"default:1" json:"weight"`          // 观测权重 [0,1]
	Source     string    `gorm:"size:50" json:"source"`            // assessment / engagement
	ObservedAt time.Time `gorm:"index;not null" json:"observedAt"` // 观测时间，插入序即时间序
}

func (ScoredObservation) TableName() string {
	return "scored_observations"
}
