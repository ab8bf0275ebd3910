package repository

import (
	"time"

	"aitutor_backend/internal/model"

	"gorm.io/gorm"
)

type ObservationRepository struct {
	DB *gorm.DB
}

func NewObservationRepository(db *gorm.DB) *ObservationRepository {
	return &ObservationRepository{DB: db}
}

func (r *ObservationRepository) Create(obs *model.ScoredObservation) error {
	return r.DB.Create(obs).Error
}

func (r *ObservationRepository) CreateBatch(obs []model.ScoredObservation) error {
	if len(obs) == 0 {
		return nil
	}
	return r.DB.Create(&obs).Error
}

// FindRecentBySubject 取某学生某科目最近limit条观测，按观测时间升序返回，
// 调用方直接把Value序列交给趋势分析
func (r *ObservationRepository) FindRecentBySubject(userID uint, subject string, limit int) ([]model.ScoredObservation, error) {
	var obs []model.ScoredObservation
	err := r.DB.Where("user_id = ? AND subject = ?", userID, subject).
		Order("observed_at DESC").
		Limit(limit).
		Find(&obs).Error
	if err != nil {
		return nil, err
	}
	// 反转为升序
	for i, j := 0, len(obs)-1; i < j; i, j = i+1, j-1 {
		obs[i], obs[j] = obs[j], obs[i]
	}
	return obs, nil
}

func (r *ObservationRepository) FindSince(userID uint, since time.Time) ([]model.ScoredObservation, error) {
	var obs []model.ScoredObservation
	err := r.DB.Where("user_id = ? AND observed_at >= ?", userID, since).
		Order("observed_at ASC").
		Find(&obs).Error
	return obs, err
}

func (r *ObservationRepository) ListSubjects(userID uint) ([]string, error) {
	var subjects []string
	err := r.DB.Model(&model.ScoredObservation{}).
		Where("user_id = ?", userID).
		Distinct("subject").
		Order("subject ASC").
		Pluck("subject", &subjects).Error
	return subjects, err
}

type TopicMean struct {
	Topic string  `json:"topic"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// TopicMeans 某科目各知识点的平均得分，用于识别薄弱知识点
func (r *ObservationRepository) TopicMeans(userID uint, subject string, limit int) ([]TopicMean, error) {
	var means []TopicMean
	err := r.DB.Model(&model.ScoredObservation{}).
		Select("topic, AVG(value) AS mean, COUNT(*) AS count").
		Where("user_id = ? AND subject = ? AND topic <> ''", userID, subject).
		Group("topic").
		Order("mean ASC").
		Limit(limit).
		Scan(&means).Error
	return means, err
}
