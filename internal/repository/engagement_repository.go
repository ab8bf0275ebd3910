package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"aitutor_backend/internal/model"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const profileCacheTTL = 10 * time.Minute

type EngagementRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewEngagementRepository(db *gorm.DB, rdb *redis.Client) *EngagementRepository {
	return &EngagementRepository{DB: db, Redis: rdb}
}

func (r *EngagementRepository) CreateEvent(event *model.EngagementEvent) error {
	return r.DB.Create(event).Error
}

func (r *EngagementRepository) FindEventsSince(userID uint, since time.Time) ([]model.EngagementEvent, error) {
	var events []model.EngagementEvent
	err := r.DB.Where("user_id = ? AND occurred_at >= ?", userID, since).
		Order("occurred_at ASC").
		Find(&events).Error
	return events, err
}

// UpsertProfile 按用户覆盖写入画像，同时刷新缓存
func (r *EngagementRepository) UpsertProfile(ctx context.Context, profile *model.EngagementProfile) error {
	err := r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"score", "level", "disengagement_risk",
			"intervention_needed", "streak_days", "risk_factors", "updated_at",
		}),
	}).Create(profile).Error
	if err != nil {
		return err
	}
	r.cacheProfile(ctx, profile)
	return nil
}

func (r *EngagementRepository) FindProfile(ctx context.Context, userID uint) (*model.EngagementProfile, error) {
	if cached := r.cachedProfile(ctx, userID); cached != nil {
		return cached, nil
	}

	var profile model.EngagementProfile
	err := r.DB.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return nil, err
	}
	r.cacheProfile(ctx, &profile)
	return &profile, nil
}

func profileCacheKey(userID uint) string {
	return fmt.Sprintf("engagement:profile:%d", userID)
}

func (r *EngagementRepository) cacheProfile(ctx context.Context, profile *model.EngagementProfile) {
	if r.Redis == nil {
		return
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return
	}
	r.Redis.Set(ctx, profileCacheKey(profile.UserID), data, profileCacheTTL)
}

func (r *EngagementRepository) cachedProfile(ctx context.Context, userID uint) *model.EngagementProfile {
	if r.Redis == nil {
		return nil
	}
	data, err := r.Redis.Get(ctx, profileCacheKey(userID)).Bytes()
	if err != nil {
		return nil
	}
	var profile model.EngagementProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil
	}
	return &profile
}
