package http

import (
	"github.com/gin-gonic/gin"

	"github.com/you/meetup-booking/internal/notify"
	"github.com/you/meetup-booking/internal/service"
	"github.com/you/meetup-booking/pkg/auth"
)

type Services struct {
	Booking    *service.BookingSvc
	Points     *service.PointsSvc
	Coupons    *service.CouponSvc
	Attendance *service.AttendanceSvc
	Payments   *service.PaymentSvc
	Dispatcher notify.Dispatcher
}

func NewRouter(v *auth.Verifier, s Services) *gin.Engine {
	r := gin.Default()

	v1 := r.Group("/v1")
	secured := v1.Group("")
	secured.Use(JWTAuth(v))
	{
		bh := NewBookingHandler(s.Booking)
		secured.POST("/bookings", bh.Create)
		secured.GET("/bookings/:id", bh.Get)
		secured.POST("/bookings/:id/join", bh.Join)
		secured.POST("/bookings/:id/requests/:reqId/approve", bh.Approve)
		secured.POST("/bookings/:id/requests/:reqId/reject", bh.Reject)
		secured.POST("/bookings/:id/withdraw", bh.Withdraw)
		secured.POST("/bookings/:id/cancel", bh.Cancel)

		ph := NewPointsHandler(s.Points)
		secured.GET("/points/balance", ph.Balance)
		secured.GET("/points/history", ph.History)
		secured.POST("/points/adjust", RequireRole("ADMIN"), ph.Adjust)

		ch := NewCouponHandler(s.Coupons)
		secured.GET("/coupons", ch.ListActive)
		secured.GET("/coupons/:id", ch.Get)
		secured.POST("/coupons", RequireRole("ADMIN"), ch.Issue)
		secured.POST("/coupons/:id/redeem", ch.Redeem)

		ah := NewAttendanceHandler(s.Attendance)
		secured.POST("/attendance/check-in", ah.CheckIn)
		secured.GET("/attendance/stats", ah.Stats)

		pay := NewPaymentHandler(s.Payments)
		secured.POST("/payments/confirm", pay.Confirm)
		secured.POST("/payments/refund", pay.Refund)

		nh := NewNotificationHandler(s.Dispatcher)
		secured.POST("/notifications", RequireRole("ADMIN"), nh.Send)
	}
	return r
}
