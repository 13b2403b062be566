// Package notify sends booking confirmation emails with a check-in QR
// code.
package notify

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/iliyamo/flight-booking/internal/config"
	"github.com/iliyamo/flight-booking/internal/queue"
)

// Sender delivers composed messages.  *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer composes and sends confirmation emails.
type Mailer struct {
	from   string
	sender Sender
	log    logrus.FieldLogger
}

// NewSMTPSender returns a gomail dialer for the configured server.
func NewSMTPSender(cfg config.SMTPConfig) *gomail.Dialer {
	return gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
}

func NewMailer(from string, sender Sender, log logrus.FieldLogger) *Mailer {
	return &Mailer{from: from, sender: sender, log: log.WithField("component", "mailer")}
}

// SendConfirmation mails the passenger of ev a confirmation with the
// check-in QR code embedded.  If the QR code cannot be rendered the mail
// is still sent without it.
func (m *Mailer) SendConfirmation(ev queue.BookingEvent) error {
	png, err := CheckInQR(ev.BookingReference, ev.FlightNumber)
	if err != nil {
		m.log.WithError(err).WithField("reference", ev.BookingReference).Warn("render QR code failed")
		png = nil
	}
	body, err := renderConfirmation(ev, png != nil)
	if err != nil {
		return fmt.Errorf("render confirmation: %w", err)
	}

	msg := gomail.NewMessage(gomail.SetCharset("UTF-8"))
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", ev.PassengerEmail)
	msg.SetHeader("Subject", "SkyBooker - Booking confirmation: "+ev.BookingReference)
	msg.SetBody("text/html", body)
	if png != nil {
		msg.Embed(qrContentID, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(png)
			return err
		}))
	}
	if err := m.sender.DialAndSend(msg); err != nil {
		return fmt.Errorf("send confirmation to %s: %w", ev.PassengerEmail, err)
	}
	return nil
}

// Dispatcher is the queue.Handler of the notifier process: every event
// is written to the audit log, and bookings confirmed by a payment are
// mailed.  A confirmation without a payment method sends nothing.
type Dispatcher struct {
	Audit  *queue.AuditLog
	Mailer *Mailer
}

func (d *Dispatcher) Handle(_ context.Context, ev queue.BookingEvent) error {
	if err := d.Audit.Append(ev); err != nil {
		return err
	}
	if ev.Type == queue.EventBookingConfirmed && ev.PaymentMethod != "" && d.Mailer != nil {
		return d.Mailer.SendConfirmation(ev)
	}
	return nil
}
