package repository

import (
	"collegedate/internal/domain"
	"collegedate/internal/models"

	"gorm.io/gorm"
)

type SwipeRepository struct {
	db *gorm.DB
}

func NewSwipeRepository(db *gorm.DB) *SwipeRepository {
	return &SwipeRepository{db: db}
}

func (r *SwipeRepository) Create(s *models.Swipe) error {
	return r.db.Create(s).Error
}

// SwipedIDs returns every profile id the swiper has already acted on. Backs
// the discovery feed's already-seen filtering.
func (r *SwipeRepository) SwipedIDs(swiperID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Swipe{}).
		Where("swiper_id = ?", swiperID).
		Distinct().
		Pluck("swiped_id", &ids).Error
	return ids, err
}

// HasRightSwipe reports whether the swiper has already right-swiped the
// target. Repeat likes are rejected before quota or payment evaluation.
func (r *SwipeRepository) HasRightSwipe(swiperID, swipedID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Swipe{}).
		Where("swiper_id = ? AND swiped_id = ? AND direction = ?", swiperID, swipedID, domain.DirectionRight).
		Count(&count).Error
	return count > 0, err
}

func (r *SwipeRepository) ListBySwiper(swiperID uint, limit, offset int) ([]models.Swipe, error) {
	var list []models.Swipe
	err := r.db.Where("swiper_id = ?", swiperID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}
