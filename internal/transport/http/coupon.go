package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/meetup-booking/internal/domain"
	"github.com/you/meetup-booking/internal/service"
)

type CouponHandler struct {
	svc *service.CouponSvc
}

func NewCouponHandler(svc *service.CouponSvc) *CouponHandler {
	return &CouponHandler{svc: svc}
}

// POST /v1/coupons (ADMIN)
func (h *CouponHandler) Issue(c *gin.Context) {
	var in struct {
		OwnerID      string `json:"owner_id" binding:"required"`
		Title        string `json:"title" binding:"required"`
		Discount     int64  `json:"discount" binding:"required"`
		DiscountType string `json:"discount_type" binding:"required"`
		MinAmount    int64  `json:"min_amount"`
		ExpiryDays   int    `json:"expiry_days" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	coupon, err := h.svc.Issue(c, in.OwnerID, service.IssueInput{
		Title:        in.Title,
		Discount:     in.Discount,
		DiscountType: domain.DiscountType(in.DiscountType),
		MinAmount:    in.MinAmount,
		ExpiryDays:   in.ExpiryDays,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, coupon)
}

// GET /v1/coupons/:id
func (h *CouponHandler) Get(c *gin.Context) {
	coupon, err := h.svc.Get(c, callerID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, coupon)
}

// POST /v1/coupons/:id/redeem
func (h *CouponHandler) Redeem(c *gin.Context) {
	coupon, err := h.svc.Redeem(c, callerID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"coupon_id":     coupon.ID,
		"discount":      coupon.Discount,
		"discount_type": coupon.DiscountType,
		"min_amount":    coupon.MinAmount,
		"used_at":       coupon.UsedAt,
	})
}

// GET /v1/coupons
func (h *CouponHandler) ListActive(c *gin.Context) {
	out, err := h.svc.ListActive(c, callerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coupons": out})
}
