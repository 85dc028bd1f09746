package models

import (
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PriceUnit is the billing granularity of a property's rate.
type PriceUnit string

const (
	PriceUnitHour PriceUnit = "hour"
	PriceUnitDay  PriceUnit = "day"
)

// Duration returns the length of one billing unit.
func (u PriceUnit) Duration() (time.Duration, error) {
	switch u {
	case PriceUnitHour:
		return time.Hour, nil
	case PriceUnitDay:
		return 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("invalid price unit: %q", u)
	}
}

const (
	PropertyCategoryService  = "service"
	PropertyCategoryProperty = "property"
)

type Property struct {
	ID          string         `json:"id" gorm:"type:uuid;primaryKey"`
	HostID      string         `json:"hostId" gorm:"type:uuid;not null;index"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description" gorm:"type:text"`
	Category    string         `json:"category" gorm:"type:varchar(16);not null;default:service"`
	Price       float64        `json:"price" gorm:"not null"`
	PriceUnit   PriceUnit      `json:"priceUnit" gorm:"type:varchar(8);not null;default:hour"`
	Currency    string         `json:"currency" gorm:"type:varchar(3);not null;default:EUR"`
	Location    string         `json:"location"`
	Images      pq.StringArray `json:"images" gorm:"type:text[]"`
	Amenities   datatypes.JSON `json:"amenities" gorm:"type:jsonb"`
	IsActive    bool           `json:"isActive" gorm:"not null;default:true"`
	CreatedAt   time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}

func (p *Property) ValidatePriceUnit() error {
	_, err := p.PriceUnit.Duration()
	return err
}
