package dto

import (
	"script9/models"
	"script9/types"

	"gorm.io/datatypes"
)

type CreatePropertyRequest struct {
	Title       string         `json:"title" binding:"required,notblank,max=200"`
	Description string         `json:"description"`
	Category    string         `json:"category" binding:"omitempty,oneof=service property"`
	Price       float64        `json:"price" binding:"required,gt=0"`
	PriceUnit   string         `json:"priceUnit" binding:"required,priceunit"`
	Currency    string         `json:"currency" binding:"omitempty,len=3"`
	Location    string         `json:"location"`
	Amenities   datatypes.JSON `json:"amenities" swaggertype:"object"`
	// HostID lets admins create listings on behalf of a host.
	HostID string `json:"hostId,omitempty" binding:"omitempty,uuid"`
}

type UpdatePropertyRequest struct {
	Title       *string        `json:"title,omitempty" binding:"omitempty,notblank,max=200"`
	Description *string        `json:"description,omitempty"`
	Category    *string        `json:"category,omitempty" binding:"omitempty,oneof=service property"`
	Price       *float64       `json:"price,omitempty" binding:"omitempty,gt=0"`
	PriceUnit   *string        `json:"priceUnit,omitempty" binding:"omitempty,priceunit"`
	Currency    *string        `json:"currency,omitempty" binding:"omitempty,len=3"`
	Location    *string        `json:"location,omitempty"`
	Amenities   datatypes.JSON `json:"amenities,omitempty" swaggertype:"object"`
	IsActive    *bool          `json:"isActive,omitempty"`
}

type PropertyQuery struct {
	PageQuery
	Q        string `form:"q"`
	Category string `form:"category"`
	HostID   string `form:"hostId" binding:"omitempty,uuid"`
}

func (q PropertyQuery) ToFilter() types.PropertyFilter {
	return types.PropertyFilter{Query: q.Q, Category: q.Category, HostID: q.HostID}
}

type PropertyDetail struct {
	models.Property
	Rating types.RatingSummary `json:"rating"`
}
