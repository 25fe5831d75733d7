package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/you/meetup-booking/internal/notify"
	"github.com/you/meetup-booking/internal/payments"
	"github.com/you/meetup-booking/internal/repository"
	"github.com/you/meetup-booking/internal/service"
	transport "github.com/you/meetup-booking/internal/transport/http"
	"github.com/you/meetup-booking/pkg/auth"
	"github.com/you/meetup-booking/pkg/config"
	"github.com/you/meetup-booking/pkg/db"
	"github.com/you/meetup-booking/pkg/mq"
	"github.com/you/meetup-booking/pkg/obs"
)

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func main() {
	_ = godotenv.Load()
	cfg := must(config.Load())

	shutdown := obs.InitTracer("meetup-core")
	defer func() { _ = shutdown(context.Background()) }()

	gdb := db.Open(cfg.PGCoreDSN)
	bookingRepo := repository.NewBookingRepo(gdb)
	pointsRepo := repository.NewPointsRepo(gdb)
	couponRepo := repository.NewCouponRepo(gdb)
	attendanceRepo := repository.NewAttendanceRepo(gdb)
	must(0, bookingRepo.Migrate())
	must(0, pointsRepo.Migrate())
	must(0, couponRepo.Migrate())
	must(0, attendanceRepo.Migrate())

	pub := must(mq.NewPublisher(cfg.RabbitURL, cfg.NotifyExchange))
	defer pub.Close()
	disp := notify.NewMQDispatcher(pub)

	pointsSvc := service.NewPointsSvc(pointsRepo)
	services := transport.Services{
		Booking:    service.NewBookingSvc(bookingRepo, disp),
		Points:     pointsSvc,
		Coupons:    service.NewCouponSvc(couponRepo, disp),
		Attendance: service.NewAttendanceSvc(attendanceRepo, pointsSvc, disp),
		Payments:   service.NewPaymentSvc(payments.NewClient(cfg.PaymentBaseURL, cfg.PaymentSecretKey)),
		Dispatcher: disp,
	}

	verifier := auth.NewVerifier(cfg.JWTSecret)
	r := transport.NewRouter(verifier, services)
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}

	// Notification worker drains the same exchange the dispatcher feeds.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cons := must(mq.NewConsumer(cfg.RabbitURL, cfg.NotifyExchange, cfg.NotifyQueue, []string{"#"}))
	defer cons.Close()
	worker := notify.NewWorker(cons, notify.NewConsole())
	go func() {
		if err := worker.Run(ctx); err != nil {
			log.Printf("[core] notify worker stopped: %v", err)
		}
	}()

	go func() {
		log.Println("[core] HTTP listening on", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	cancel()
	shutCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	_ = srv.Shutdown(shutCtx)
	log.Println("[core] stopped")
}
