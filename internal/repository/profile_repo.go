package repository

import (
	"collegedate/internal/models"

	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(p *models.Profile) error {
	return r.db.Create(p).Error
}

func (r *ProfileRepository) GetByID(id uint) (*models.Profile, error) {
	var p models.Profile
	err := r.db.First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) GetByEmail(email string) (*models.Profile, error) {
	var p models.Profile
	err := r.db.Where("email = ?", email).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) Update(p *models.Profile) error {
	return r.db.Save(p).Error
}

func (r *ProfileRepository) SetBlocked(id uint, blocked bool) error {
	return r.db.Model(&models.Profile{}).Where("id = ?", id).Update("is_blocked", blocked).Error
}

// ConsumeFreeSwipe decrements the caller's quota by one, guarded by the
// current value. Two concurrent swipes racing over the last unit cannot both
// win: the predicate re-checks the quota inside the UPDATE itself. Returns
// false when no unit was available.
func (r *ProfileRepository) ConsumeFreeSwipe(userID uint) (bool, error) {
	res := r.db.Model(&models.Profile{}).
		Where("id = ? AND free_swipe_quota > 0", userID).
		UpdateColumn("free_swipe_quota", gorm.Expr("free_swipe_quota - 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// RestoreFreeSwipe gives back one quota unit when the swipe record could not
// be written after a successful decrement.
func (r *ProfileRepository) RestoreFreeSwipe(userID uint) error {
	return r.db.Model(&models.Profile{}).
		Where("id = ?", userID).
		UpdateColumn("free_swipe_quota", gorm.Expr("free_swipe_quota + 1")).Error
}

// ListDiscoverable returns unblocked profiles of the target gender, excluding
// the viewer and every id they have already swiped on.
func (r *ProfileRepository) ListDiscoverable(viewerID uint, gender string, excludeIDs []uint, limit int) ([]models.Profile, error) {
	q := r.db.Where("gender = ? AND is_blocked = ? AND id != ?", gender, false, viewerID)
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}
	var list []models.Profile
	err := q.Limit(limit).Find(&list).Error
	return list, err
}
