package repository

import (
	"context"

	"script9/models"
	"script9/types"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&review).Error; err != nil {
		return nil, translate(err, "review")
	}
	return &review, nil
}

func (r *ReviewRepository) ExistsForBooking(ctx context.Context, bookingID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Review{}).Where("booking_id = ?", bookingID).Count(&count).Error; err != nil {
		return false, translate(err, "review")
	}
	return count > 0, nil
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	return translate(r.db.WithContext(ctx).Create(review).Error, "review")
}

func (r *ReviewRepository) Save(ctx context.Context, review *models.Review) error {
	return translate(r.db.WithContext(ctx).Save(review).Error, "review")
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Review{})
	if res.Error != nil {
		return translate(res.Error, "review")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "review")
	}
	return nil
}

func (r *ReviewRepository) ListByProperty(ctx context.Context, propertyID string, page types.Page) ([]models.Review, int64, error) {
	page = page.Normalize()
	q := r.db.WithContext(ctx).Model(&models.Review{}).Where("property_id = ?", propertyID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "reviews")
	}

	var reviews []models.Review
	if err := q.Order("created_at DESC").Offset(page.Offset()).Limit(page.Limit).Find(&reviews).Error; err != nil {
		return nil, 0, translate(err, "reviews")
	}
	return reviews, total, nil
}

// ListRatings loads only the score columns of a property's reviews.
func (r *ReviewRepository) ListRatings(ctx context.Context, propertyID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Select("id", "rating", "cleanliness", "communication", "accuracy", "location", "value").
		Where("property_id = ?", propertyID).
		Find(&reviews).Error
	if err != nil {
		return nil, translate(err, "reviews")
	}
	return reviews, nil
}
