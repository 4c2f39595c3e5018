package properties

import (
	"context"

	"github.com/hoanvu/atelier/model"
	"gorm.io/gorm"
)

type PropertyRepository interface {
	List(ctx context.Context, publishedOnly bool) ([]model.Property, error)
	Latest(ctx context.Context, limit int) ([]model.Property, error)
	GetBySlug(ctx context.Context, slug string) (*model.Property, error)
	GetByID(ctx context.Context, id uint) (*model.Property, error)
	Create(ctx context.Context, property *model.Property) error
	Update(ctx context.Context, property *model.Property) error
	Delete(ctx context.Context, id uint) error
}

type propertyRepository struct {
	db *gorm.DB
}

func (r *propertyRepository) List(ctx context.Context, publishedOnly bool) ([]model.Property, error) {
	var props []model.Property
	query := r.db.WithContext(ctx).Preload("Images", orderImages)
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	err := query.Order("created_at DESC").Find(&props).Error
	return props, err
}

func (r *propertyRepository) Latest(ctx context.Context, limit int) ([]model.Property, error) {
	var props []model.Property
	err := r.db.WithContext(ctx).
		Where("published = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&props).Error
	return props, err
}

func (r *propertyRepository) GetBySlug(ctx context.Context, slug string) (*model.Property, error) {
	var prop model.Property
	err := r.db.WithContext(ctx).Preload("Images", orderImages).Where("slug = ?", slug).First(&prop).Error
	if err != nil {
		return nil, err
	}
	return &prop, nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id uint) (*model.Property, error) {
	var prop model.Property
	err := r.db.WithContext(ctx).Preload("Images", orderImages).First(&prop, id).Error
	if err != nil {
		return nil, err
	}
	return &prop, nil
}

func (r *propertyRepository) Create(ctx context.Context, property *model.Property) error {
	return r.db.WithContext(ctx).Create(property).Error
}

// Update rewrites the property and its image set. Images removed from the
// set are deleted; the upsert alone would leave them behind.
func (r *propertyRepository) Update(ctx context.Context, property *model.Property) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", property.ID).Delete(&model.PropertyImage{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(property).Error
	})
}

func (r *propertyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Property{}, id).Error
}

// orderImages must not qualify the column; the table name changes with the
// configured prefix.
func orderImages(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepository{db: db}
}
