package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/flight-booking/internal/config"
	"github.com/iliyamo/flight-booking/internal/database"
	"github.com/iliyamo/flight-booking/internal/handler"
	"github.com/iliyamo/flight-booking/internal/logger"
	"github.com/iliyamo/flight-booking/internal/middleware"
	"github.com/iliyamo/flight-booking/internal/payment"
	"github.com/iliyamo/flight-booking/internal/queue"
	"github.com/iliyamo/flight-booking/internal/repository"
	"github.com/iliyamo/flight-booking/internal/router"
	"github.com/iliyamo/flight-booking/internal/service"
)

const shutdownTimeout = 15 * time.Second

func main() {
	_ = godotenv.Load() // a missing .env is fine; the environment may be set directly

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logger.New(cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DB)
	if err != nil {
		log.WithError(err).Fatal("connect to mysql")
	}
	defer db.Close()

	// Events feed the confirmation mailer.  Bookings still work without
	// the broker, so a failed dial is only logged.
	var events service.EventPublisher
	if pub, err := queue.NewPublisher(cfg.RabbitURL, cfg.BookingExchange, log); err != nil {
		log.WithError(err).Warn("rabbitmq unavailable; booking events disabled")
	} else {
		events = pub
		defer pub.Close()
	}

	rdb := config.NewRedisClient(log)
	if rdb != nil {
		defer rdb.Close()
	}

	store := repository.NewStore(db)
	seats := service.NewSeatInventory(store)
	flights := service.NewFlightService(store, seats, cfg.SearchTimezone.Location)
	bookings := service.NewBookingService(store, flights, seats, service.NewPassengerRegistry(), events, log)
	gateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.PaymentCurrency, log)
	if cfg.StripeSecretKey == "" {
		log.Warn("STRIPE_SECRET_KEY not set; payment intents are mocked")
	}

	e := echo.New()
	router.Configure(e, log, handler.NewValidator(flights.Location()), cfg.RequestTimeout)
	router.RegisterRoutes(e, db)

	api := e.Group("/api", middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, log))
	router.RegisterPublic(api,
		handler.NewFlightHandler(flights),
		handler.NewBookingHandler(bookings),
		handler.NewPaymentHandler(gateway, bookings, log),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb, log),
	)
	router.RegisterAdmin(api, handler.NewAdminHandler(seats), cfg.JWTSecret)

	addr := ":" + cfg.Port
	go func() {
		log.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env, "search_tz": flights.Location().String()}).Info("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown")
	}
}
