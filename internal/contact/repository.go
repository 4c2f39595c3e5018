package contact

import (
	"context"

	"github.com/hoanvu/atelier/model"
	"gorm.io/gorm"
)

type InquiryRepository interface {
	Create(ctx context.Context, inquiry *model.Inquiry) error
	List(ctx context.Context) ([]model.Inquiry, error)
}

type inquiryRepository struct {
	db *gorm.DB
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *model.Inquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}

func (r *inquiryRepository) List(ctx context.Context) ([]model.Inquiry, error) {
	var inquiries []model.Inquiry
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&inquiries).Error
	return inquiries, err
}

func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}
