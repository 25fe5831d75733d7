package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/you/meetup-booking/internal/domain"
	"github.com/you/meetup-booking/internal/service"
)

type PointsHandler struct {
	svc *service.PointsSvc
}

func NewPointsHandler(svc *service.PointsSvc) *PointsHandler {
	return &PointsHandler{svc: svc}
}

// POST /v1/points/adjust (ADMIN)
func (h *PointsHandler) Adjust(c *gin.Context) {
	var in struct {
		UserID    string `json:"user_id" binding:"required"`
		Amount    int64  `json:"amount" binding:"required"`
		Direction string `json:"direction" binding:"required"`
		Reason    string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	entry, err := h.svc.Adjust(c, in.UserID, in.Amount, domain.AdjustDirection(in.Direction), in.Reason)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"new_balance": entry.BalanceAfter, "ledger_entry_id": entry.ID})
}

// GET /v1/points/balance
func (h *PointsHandler) Balance(c *gin.Context) {
	bal, err := h.svc.Balance(c, callerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": bal})
}

// GET /v1/points/history?page=1&page_size=20
func (h *PointsHandler) History(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	entries, total, err := h.svc.History(c, callerID(c), int32(page-1), int32(size))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "total": total})
}
