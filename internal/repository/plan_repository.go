package repository

import (
	"aitutor_backend/internal/model"

	"gorm.io/gorm"
)

type PlanRepository struct {
	DB *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{DB: db}
}

func (r *PlanRepository) Create(plan *model.StudyPlan) error {
	return r.DB.Create(plan).Error
}

func (r *PlanRepository) FindByID(id uint) (*model.StudyPlan, error) {
	var plan model.StudyPlan
	err := r.DB.First(&plan, id).Error
	return &plan, err
}

func (r *PlanRepository) FindLatestByUser(userID uint) (*model.StudyPlan, error) {
	var plan model.StudyPlan
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&plan).Error
	return &plan, err
}

func (r *PlanRepository) Update(plan *model.StudyPlan) error {
	return r.DB.Save(plan).Error
}
