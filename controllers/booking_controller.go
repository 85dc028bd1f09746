package controllers

import (
	"context"

	"script9/access"
	"script9/dto"
	"script9/models"
	"script9/response"
	"script9/services/logger"
	"script9/types"

	"github.com/gin-gonic/gin"
)

// BookingAPI is the booking service surface used over HTTP.
type BookingAPI interface {
	SearchBookings(ctx context.Context, actor access.Actor, f types.BookingFilter, page types.Page) ([]models.Booking, int64, error)
	GetBooking(ctx context.Context, actor access.Actor, id string) (*models.Booking, error)
	CreateBooking(ctx context.Context, actor access.Actor, req dto.CreateBookingRequest) (*models.Booking, error)
	CheckAvailability(ctx context.Context, req dto.SlotRequest) (bool, error)
	CalculateBookingPrice(ctx context.Context, req dto.SlotRequest) (*dto.PriceResponse, error)
	UpdateBookingStatus(ctx context.Context, actor access.Actor, id string, status string) (*models.Booking, error)
	ConfirmBooking(ctx context.Context, actor access.Actor, id string) (*models.Booking, error)
	CancelBooking(ctx context.Context, actor access.Actor, id string) (*models.Booking, error)
	GetUpcomingBookings(ctx context.Context, actor access.Actor, limit int) ([]models.Booking, error)
	GetBookingStats(ctx context.Context, actor access.Actor, f types.BookingFilter) (types.BookingStats, error)
}

type BookingController struct {
	base
	bookings BookingAPI
}

func NewBookingController(bookings BookingAPI, log logger.Logger) *BookingController {
	return &BookingController{base: newBase(log), bookings: bookings}
}

// ListBookings godoc
// @Summary  Search bookings visible to the caller
// @Tags     bookings
// @Produce  json
// @Param    page query int false "zero based page"
// @Param    limit query int false "page size"
// @Param    status query string false "pending, confirmed, cancelled or completed"
// @Success  200 {object} dto.PaginatedResponse[[]models.Booking]
// @Router   /bookings [get]
func (ctrl *BookingController) ListBookings(c *gin.Context) {
	actor, ok := ctrl.actor(c)
	if !ok {
		return
	}
	var q dto.BookingQuery
	if !ctrl.bindQuery(c, &q) {
		return
	}
	page := q.ToPage()
	bookings, total, err := ctrl.bookings.SearchBookings(c.Request.Context(), actor, q.ToFilter(), page)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.SuccessWithPagination(c, bookings, page.Page, page.Limit, total)
}

// GetBooking godoc
// @Summary  Get a booking
// @Tags     bookings
// @Param    id path string true "booking id"
// @Success  200 {object} response.Response{data=models.Booking}
// @Failure  403,404 {object} response.ErrorBody
// @Router   /bookings/{id} [get]
func (ctrl *BookingController) GetBooking(c *gin.Context) {
	actor, ok := ctrl.actor(c)
	if !ok {
		return
	}
	id, ok := ctrl.pathID(c)
	if !ok {
		return
	}
	booking, err := ctrl.bookings.GetBooking(c.Request.Context(), actor, id)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.Success(c, booking)
}

// CreateBooking godoc
// @Summary  Book a time slot as the authenticated guest
// @Tags     bookings
// @Accept   json
// @Param    body body dto.CreateBookingRequest true "slot"
// @Success  201 {object} response.Response{data=models.Booking}
// @Failure  400,404 {object} response.ErrorBody
// @Router   /bookings [post]
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	actor, ok := ctrl.actor(c)
	if !ok {
		return
	}
	var req dto.CreateBookingRequest
	if !ctrl.bindJSON(c, &req) {
		return
	}
	booking, err := ctrl.bookings.CreateBooking(c.Request.Context(), actor, req)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.Created(c, booking)
}

// CheckAvailability godoc
// @Summary  Check whether a slot is free
// @Tags     bookings
// @Accept   json
// @Param    body body dto.SlotRequest true "slot"
// @Success  200 {object} response.Response{data=dto.AvailabilityResponse}
// @Router   /bookings/check-availability [post]
func (ctrl *BookingController) CheckAvailability(c *gin.Context) {
	var req dto.SlotRequest
	if !ctrl.bindJSON(c, &req) {
		return
	}
	available, err := ctrl.bookings.CheckAvailability(c.Request.Context(), req)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.Success(c, dto.AvailabilityResponse{Available: available})
}

// CalculatePrice godoc
// @Summary  Quote the price of a slot
// @Tags     bookings
// @Accept   json
// @Param    body body dto.SlotRequest true "slot"
// @Success  200 {object} response.Response{data=dto.PriceResponse}
// @Router   /bookings/calculate-price [post]
func (ctrl *BookingController) CalculatePrice(c *gin.Context) {
	var req dto.SlotRequest
	if !ctrl.bindJSON(c, &req) {
		return
	}
	price, err := ctrl.bookings.CalculateBookingPrice(c.Request.Context(), req)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.Success(c, price)
}

// UpdateStatus godoc
// @Summary  Move a booking through its lifecycle
// @Tags     bookings
// @Accept   json
// @Param    id path string true "booking id"
// @Param    body body dto.UpdateBookingStatusRequest true "target status"
// @Success  200 {object} response.Response{data=models.Booking}
// @Failure  400,403,404 {object} response.ErrorBody
// @Router   /bookings/{id}/status [patch]
func (ctrl *BookingController) UpdateStatus(c *gin.Context) {
	actor, ok := ctrl.actor(c)
	if !ok {
		return
	}
	var req dto.UpdateBookingStatusRequest
	if !ctrl.bindJSON(c, &req) {
		return
	}
	id, ok := ctrl.pathID(c)
	if !ok {
		return
	}
	booking, err := ctrl.bookings.UpdateBookingStatus(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.Success(c, booking)
}

// @Summary  Confirm a pending booking
// @Tags     bookings
// @Param    id path string true "booking id"
// @Router   /bookings/{id}/confirm [post]
func (ctrl *BookingController) Confirm(c *gin.Context) {
	ctrl.transition(c, ctrl.bookings.ConfirmBooking)
}

// @Summary  Cancel a booking
// @Tags     bookings
// @Param    id path string true "booking id"
// @Router   /bookings/{id}/cancel [post]
func (ctrl *BookingController) Cancel(c *gin.Context) {
	ctrl.transition(c, ctrl.bookings.CancelBooking)
}

func (ctrl *BookingController) transition(c *gin.Context, fn func(context.Context, access.Actor, string) (*models.Booking, error)) {
	actor, ok := ctrl.actor(c)
	if !ok {
		return
	}
	id, ok := ctrl.pathID(c)
	if !ok {
		return
	}
	booking, err := fn(c.Request.Context(), actor, id)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.Success(c, booking)
}

// Upcoming godoc
// @Summary  Next pending or confirmed bookings of the caller
// @Tags     bookings
// @Param    limit query int false "max results, default 10"
// @Success  200 {object} response.Response{data=[]models.Booking}
// @Router   /bookings/upcoming [get]
func (ctrl *BookingController) Upcoming(c *gin.Context) {
	actor, ok := ctrl.actor(c)
	if !ok {
		return
	}
	var q dto.UpcomingQuery
	if !ctrl.bindQuery(c, &q) {
		return
	}
	bookings, err := ctrl.bookings.GetUpcomingBookings(c.Request.Context(), actor, q.Limit)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.Success(c, bookings)
}

// Stats godoc
// @Summary  Booking counts and revenue within the caller's scope
// @Tags     bookings
// @Success  200 {object} response.Response{data=types.BookingStats}
// @Router   /bookings/stats [get]
func (ctrl *BookingController) Stats(c *gin.Context) {
	actor, ok := ctrl.actor(c)
	if !ok {
		return
	}
	var q dto.BookingQuery
	if !ctrl.bindQuery(c, &q) {
		return
	}
	stats, err := ctrl.bookings.GetBookingStats(c.Request.Context(), actor, q.ToFilter())
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	response.Success(c, stats)
}
