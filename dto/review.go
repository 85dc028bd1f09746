package dto

import "script9/models"

type CreateReviewRequest struct {
	BookingID string `json:"bookingId" binding:"required,uuid"`
	Rating    int    `json:"rating"`
	models.CategoryRatings
	ReviewText string `json:"reviewText" binding:"max=5000"`
}

// UpdateReviewRequest is a partial update; nil fields are left unchanged.
type UpdateReviewRequest struct {
	Rating *int `json:"rating,omitempty"`
	models.CategoryRatings
	ReviewText *string `json:"reviewText,omitempty" binding:"omitempty,max=5000"`
}

type RespondReviewRequest struct {
	Response string `json:"response"`
}
