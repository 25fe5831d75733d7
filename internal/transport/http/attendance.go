package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/meetup-booking/internal/service"
)

type AttendanceHandler struct {
	svc *service.AttendanceSvc
}

func NewAttendanceHandler(svc *service.AttendanceSvc) *AttendanceHandler {
	return &AttendanceHandler{svc: svc}
}

// POST /v1/attendance/check-in
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	var in struct {
		Day string `json:"day"` // YYYY-MM-DD, defaults to today (UTC)
	}
	_ = c.ShouldBindJSON(&in)
	if in.Day == "" {
		in.Day = time.Now().UTC().Format("2006-01-02")
	}
	res, err := h.svc.CheckIn(c, callerID(c), in.Day)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"points_awarded":   res.Record.PointsAwarded,
		"consecutive_days": res.Record.ConsecutiveDays,
		"total_attendance": res.Stats.TotalAttendance,
		"longest_streak":   res.Stats.LongestStreak,
	})
}

// GET /v1/attendance/stats
func (h *AttendanceHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c, callerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
