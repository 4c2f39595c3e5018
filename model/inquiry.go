package model

import (
	"time"

	"gorm.io/gorm"
)

// Inquiry is a consultation request submitted through the contact form.
type Inquiry struct {
	ID        uint   `gorm:"primarykey"`
	Reference string `gorm:"uniqueIndex;size:36;not null"`
	Name      string `gorm:"size:128;not null"`
	Email     string `gorm:"size:256;not null"`
	Phone     string `gorm:"size:32"`
	Message   string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (i *Inquiry) BeforeCreate(tx *gorm.DB) error {
	if i.ID == 0 {
		i.ID = GenerateID()
	}
	return nil
}
