package repository

import (
	"context"

	"script9/models"
	"script9/types"

	"gorm.io/gorm"
)

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*models.Property, error) {
	var property models.Property
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&property).Error; err != nil {
		return nil, translate(err, "property")
	}
	return &property, nil
}

func (r *PropertyRepository) Create(ctx context.Context, property *models.Property) error {
	return translate(r.db.WithContext(ctx).Create(property).Error, "property")
}

func (r *PropertyRepository) Save(ctx context.Context, property *models.Property) error {
	return translate(r.db.WithContext(ctx).Save(property).Error, "property")
}

func applyPropertyFilter(q *gorm.DB, f types.PropertyFilter) *gorm.DB {
	q = q.Where("is_active = ?", true)
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.HostID != "" {
		q = q.Where("host_id = ?", f.HostID)
	}
	return q
}

// List pages through active properties, newest first. Query is ignored here.
func (r *PropertyRepository) List(ctx context.Context, f types.PropertyFilter, page types.Page) ([]models.Property, int64, error) {
	page = page.Normalize()
	q := applyPropertyFilter(r.db.WithContext(ctx).Model(&models.Property{}), f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "properties")
	}

	var properties []models.Property
	if err := q.Order("created_at DESC").Offset(page.Offset()).Limit(page.Limit).Find(&properties).Error; err != nil {
		return nil, 0, translate(err, "properties")
	}
	return properties, total, nil
}

// ListAll returns every active property matching the filter, for in-process search.
func (r *PropertyRepository) ListAll(ctx context.Context, f types.PropertyFilter) ([]models.Property, error) {
	var properties []models.Property
	if err := applyPropertyFilter(r.db.WithContext(ctx), f).Order("created_at DESC").Find(&properties).Error; err != nil {
		return nil, translate(err, "properties")
	}
	return properties, nil
}

func (r *PropertyRepository) AppendImage(ctx context.Context, id, url string) error {
	res := r.db.WithContext(ctx).Model(&models.Property{}).
		Where("id = ?", id).
		Update("images", gorm.Expr("array_append(images, ?)", url))
	if res.Error != nil {
		return translate(res.Error, "property")
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "property")
	}
	return nil
}
