package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	PropertyStatusConcept    = "concept"
	PropertyStatusInProgress = "in_progress"
	PropertyStatusCompleted  = "completed"
)

// Property is a portfolio listing shown on the public site.
type Property struct {
	ID          uint   `gorm:"primarykey"`
	Slug        string `gorm:"uniqueIndex;size:128;not null"`
	Title       string `gorm:"size:256;not null"`
	Summary     string `gorm:"size:512;not null"`
	Description string `gorm:"type:text"`
	Location    string `gorm:"size:256"`
	Area        string `gorm:"size:64"`
	Year        int
	Status      string          `gorm:"size:32;default:concept;not null"`
	CoverImage  string          `gorm:"size:512"`
	Images      []PropertyImage `gorm:"foreignKey:PropertyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Published   bool            `gorm:"default:false;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == 0 {
		p.ID = GenerateID()
	}
	return nil
}

type PropertyImage struct {
	ID         uint   `gorm:"primarykey"`
	PropertyID uint   `gorm:"index;not null"`
	URL        string `gorm:"size:512;not null"`
	Caption    string `gorm:"size:256"`
	Position   int    `gorm:"default:0;not null"`
	CreatedAt  time.Time
}

func (i *PropertyImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == 0 {
		i.ID = GenerateID()
	}
	return nil
}
