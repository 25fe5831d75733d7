package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/meetup-booking/internal/service"
)

type BookingHandler struct {
	svc *service.BookingSvc
}

func NewBookingHandler(svc *service.BookingSvc) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// POST /v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var in struct {
		Title       string `json:"title" binding:"required"`
		CapacityMax int    `json:"capacity_max" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := h.svc.Create(c, callerID(c), in.Title, in.CapacityMax)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GET /v1/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.svc.Get(c, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// POST /v1/bookings/:id/join
func (h *BookingHandler) Join(c *gin.Context) {
	req, err := h.svc.Join(c, c.Param("id"), callerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// POST /v1/bookings/:id/requests/:reqId/approve
func (h *BookingHandler) Approve(c *gin.Context) {
	b, err := h.svc.Approve(c, c.Param("id"), c.Param("reqId"), callerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// POST /v1/bookings/:id/requests/:reqId/reject
func (h *BookingHandler) Reject(c *gin.Context) {
	req, err := h.svc.Reject(c, c.Param("id"), c.Param("reqId"), callerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

// POST /v1/bookings/:id/withdraw
func (h *BookingHandler) Withdraw(c *gin.Context) {
	b, err := h.svc.Withdraw(c, c.Param("id"), callerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// POST /v1/bookings/:id/cancel
func (h *BookingHandler) Cancel(c *gin.Context) {
	var in struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := h.svc.Cancel(c, c.Param("id"), callerID(c), in.Reason)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
