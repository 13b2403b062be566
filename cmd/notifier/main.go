// Command notifier consumes booking events: every event is appended to
// the audit log and confirmed bookings get a confirmation email with a
// check-in QR code.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/flight-booking/internal/config"
	"github.com/iliyamo/flight-booking/internal/logger"
	"github.com/iliyamo/flight-booking/internal/notify"
	"github.com/iliyamo/flight-booking/internal/queue"
)

const auditDir = "logs"

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadNotifier()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logger.New(cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	audit := queue.NewAuditLog(auditDir)
	mailer := notify.NewMailer(cfg.MailFrom, notify.NewSMTPSender(cfg.SMTP), log)
	dispatcher := &notify.Dispatcher{Audit: audit, Mailer: mailer}

	consumer := queue.NewConsumer(cfg.RabbitURL, cfg.BookingExchange, cfg.NotifyQueue,
		[]string{"booking.*"}, dispatcher.Handle, log)

	log.WithFields(logrus.Fields{
		"exchange": cfg.BookingExchange,
		"queue":    cfg.NotifyQueue,
		"audit":    audit.Path(),
		"smtp":     cfg.SMTP.Host,
	}).Info("notifier started")
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("consumer stopped")
	}
	log.Info("notifier stopped")
}
