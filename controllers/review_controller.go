package controllers

import (
	"context"
	"net/http"

	"script9/access"
	"script9/dto"
	"script9/models"
	"script9/response"
	"script9/services/logger"
	"script9/types"

	"github.com/gin-gonic/gin"
)

type ReviewAPI interface {
	CreateReview(ctx context.Context, guestID string, req dto.CreateReviewRequest) (*models.Review, error)
	UpdateReview(ctx context.Context, id, userID string, patch dto.UpdateReviewRequest) (*models.Review, error)
	RespondToReview(ctx context.Context, id, hostID, text string) (*models.Review, error)
	CalculateAverageRating(ctx context.Context, propertyID string) (types.RatingSummary, error)
	ListPropertyReviews(ctx context.Context, propertyID string, page types.Page) ([]models.Review, int64, error)
	DeleteReview(ctx context.Context, actor access.Actor, id string) error
}

type ReviewController struct {
	base
	reviews ReviewAPI
}

func NewReviewController(reviews ReviewAPI, log logger.Logger) *ReviewController {
	return &ReviewController{base: newBase(log), reviews: reviews}
}

// CreateReview godoc
// @Summary  Review a completed booking
// @Tags     reviews
// @Accept   json
// @Param    body body dto.CreateReviewRequest true "review"
// @Success  201 {object} response.Response{data=models.Review}
// @Router   /reviews [post]
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	actor, ok := ctrl.actor(c)
	if !ok {
		return
	}
	var req dto.CreateReviewRequest
	if !ctrl.bindJSON(c, &req) {
		return
	}
	review, err := ctrl.reviews.CreateReview(c.Request.Context(), actor.UserID, req)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.Created(c, review)
}

// UpdateReview godoc
// @Summary  Edit a review within 24 hours of posting it
// @Tags     reviews
// @Param    id path string true "review id"
// @Param    body body dto.UpdateReviewRequest true "patch"
// @Success  200 {object} response.Response{data=models.Review}
// @Router   /reviews/{id} [patch]
func (ctrl *ReviewController) UpdateReview(c *gin.Context) {
	actor, ok := ctrl.actor(c)
	if !ok {
		return
	}
	var req dto.UpdateReviewRequest
	if !ctrl.bindJSON(c, &req) {
		return
	}
	id, ok := ctrl.pathID(c)
	if !ok {
		return
	}
	review, err := ctrl.reviews.UpdateReview(c.Request.Context(), id, actor.UserID, req)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.Success(c, review)
}

// Respond godoc
// @Summary  Host's public answer to a review
// @Tags     reviews
// @Param    id path string true "review id"
// @Param    body body dto.RespondReviewRequest true "answer"
// @Success  200 {object} response.Response{data=models.Review}
// @Router   /reviews/{id}/response [post]
func (ctrl *ReviewController) Respond(c *gin.Context) {
	actor, ok := ctrl.actor(c)
	if !ok {
		return
	}
	var req dto.RespondReviewRequest
	if !ctrl.bindJSON(c, &req) {
		return
	}
	id, ok := ctrl.pathID(c)
	if !ok {
		return
	}
	review, err := ctrl.reviews.RespondToReview(c.Request.Context(), id, actor.UserID, req.Response)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.Success(c, review)
}

// DeleteReview godoc
// @Summary  Remove a review (admin)
// @Tags     reviews
// @Param    id path string true "review id"
// @Success  204
// @Router   /reviews/{id} [delete]
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	actor, ok := ctrl.actor(c)
	if !ok {
		return
	}
	id, ok := ctrl.pathID(c)
	if !ok {
		return
	}
	if err := ctrl.reviews.DeleteReview(c.Request.Context(), actor, id); err != nil {
		ctrl.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListPropertyReviews godoc
// @Summary  Reviews of a property, newest first
// @Tags     reviews
// @Param    id path string true "property id"
// @Success  200 {object} dto.PaginatedResponse[[]models.Review]
// @Router   /properties/{id}/reviews [get]
func (ctrl *ReviewController) ListPropertyReviews(c *gin.Context) {
	var q dto.PageQuery
	if !ctrl.bindQuery(c, &q) {
		return
	}
	page := q.ToPage()
	id, ok := ctrl.pathID(c)
	if !ok {
		return
	}
	reviews, total, err := ctrl.reviews.ListPropertyReviews(c.Request.Context(), id, page)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.SuccessWithPagination(c, reviews, page.Page, page.Limit, total)
}

// PropertyRating godoc
// @Summary  Aggregate rating of a property
// @Tags     reviews
// @Param    id path string true "property id"
// @Success  200 {object} response.Response{data=types.RatingSummary}
// @Router   /properties/{id}/rating [get]
func (ctrl *ReviewController) PropertyRating(c *gin.Context) {
	id, ok := ctrl.pathID(c)
	if !ok {
		return
	}
	summary, err := ctrl.reviews.CalculateAverageRating(c.Request.Context(), id)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.Success(c, summary)
}
