package controllers

import (
	"context"

	"script9/dto"
	"script9/response"
	"script9/services/logger"

	"github.com/gin-gonic/gin"
)

type PaymentAPI interface {
	GetCheckoutSession(ctx context.Context, sessionID string) (*dto.CheckoutSessionSummary, error)
}

type PaymentController struct {
	base
	payments PaymentAPI
}

func NewPaymentController(payments PaymentAPI, log logger.Logger) *PaymentController {
	return &PaymentController{base: newBase(log), payments: payments}
}

// GetSession godoc
// @Summary  Confirmation data of a hosted checkout session
// @Tags     payments
// @Param    id path string true "checkout session id"
// @Success  200 {object} response.Response{data=dto.CheckoutSessionSummary}
// @Failure  401,404,502 {object} response.ErrorBody
// @Router   /payments/sessions/{id} [get]
func (ctrl *PaymentController) GetSession(c *gin.Context) {
	actor, ok := ctrl.actor(c)
	if !ok {
		return
	}
	id := c.Param("id")
	summary, err := ctrl.payments.GetCheckoutSession(c.Request.Context(), id)
	if err != nil {
		ctrl.fail(c, err)
		return
	}
	ctrl.logger.WithFields(logger.Fields{"sessionId": id, "actorId": actor.UserID, "bookingId": summary.BookingID}).
		Info("checkout session read")
	response.Success(c, summary)
}
