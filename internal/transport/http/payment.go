package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/meetup-booking/internal/service"
)

type PaymentHandler struct {
	svc *service.PaymentSvc
}

func NewPaymentHandler(svc *service.PaymentSvc) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// POST /v1/payments/confirm
func (h *PaymentHandler) Confirm(c *gin.Context) {
	var in struct {
		PaymentKey string `json:"payment_key" binding:"required"`
		OrderID    string `json:"order_id" binding:"required"`
		Amount     int64  `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.svc.Confirm(c, in.PaymentKey, in.OrderID, in.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /v1/payments/refund
func (h *PaymentHandler) Refund(c *gin.Context) {
	var in struct {
		PaymentKey     string    `json:"payment_key" binding:"required"`
		OriginalAmount int64     `json:"original_amount" binding:"required"`
		EventDate      time.Time `json:"event_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := h.svc.RefundWithdrawal(c, in.PaymentKey, in.OriginalAmount, in.EventDate)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
