package repository

import (
	"aitutor_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(submission *model.AssessmentSubmission) error {
	return r.DB.Create(submission).Error
}

func (r *AssessmentRepository) FindByID(id uint) (*model.AssessmentSubmission, error) {
	var submission model.AssessmentSubmission
	err := r.DB.First(&submission, id).Error
	return &submission, err
}

func (r *AssessmentRepository) FindByUser(userID uint, page, pageSize int) ([]model.AssessmentSubmission, int64, error) {
	var submissions []model.AssessmentSubmission
	var total int64

	query := r.DB.Model(&model.AssessmentSubmission{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&submissions).Error
	return submissions, total, err
}

func (r *AssessmentRepository) FindByUserAndSubject(userID uint, subject string, limit int) ([]model.AssessmentSubmission, error) {
	var submissions []model.AssessmentSubmission
	err := r.DB.Where("user_id = ? AND subject = ?", userID, subject).
		Order("created_at DESC").
		Limit(limit).
		Find(&submissions).Error
	return submissions, err
}
