package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/flight-booking/internal/payment"
	"github.com/iliyamo/flight-booking/internal/service"
	"github.com/iliyamo/flight-booking/internal/utils"
)

const paymentSuccessMessage = "Payment successful. A confirmation email is on its way."

// IntentCreator opens payment intents with the provider.
type IntentCreator interface {
	CreateIntent(ctx context.Context, req payment.IntentRequest) payment.Intent
}

// PaymentConfirmRequest is the body of POST /api/payments/confirm.
// PaymentMethod is one of card, barion, apple_pay or google_pay and is
// only used to label the confirmation email.
type PaymentConfirmRequest struct {
	BookingReference string `json:"bookingReference"`
	PaymentIntentID  string `json:"paymentIntentId"`
	PaymentMethod    string `json:"paymentMethod"`
}

type PaymentHandler struct {
	intents  IntentCreator
	bookings Bookings
	log      logrus.FieldLogger
}

func NewPaymentHandler(intents IntentCreator, bookings Bookings, log logrus.FieldLogger) *PaymentHandler {
	return &PaymentHandler{intents: intents, bookings: bookings, log: log.WithField("component", "payment")}
}

// CreateIntent handles POST /api/payments/create-intent.
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	var req payment.IntentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.intents.CreateIntent(c.Request().Context(), req))
}

// Confirm handles POST /api/payments/confirm and its /barion/pay alias.
// It confirms the booking; the confirmation email follows from the
// booking.confirmed event.  Every failure is answered with 400 and
// {success: false, message}.
func (h *PaymentHandler) Confirm(c echo.Context) error {
	var req PaymentConfirmRequest
	if err := c.Bind(&req); err != nil {
		return h.rejected(c, "", errors.New("malformed request body"))
	}
	if !utils.IsBookingReference(req.BookingReference) {
		return h.rejected(c, req.BookingReference, errors.New("bookingReference must be 6 uppercase letters or digits"))
	}

	booking, err := h.bookings.ConfirmPayment(c.Request().Context(), req.BookingReference, req.PaymentMethod)
	if err != nil {
		return h.rejected(c, req.BookingReference, err)
	}
	h.log.WithFields(logrus.Fields{
		"reference":         booking.BookingReference,
		"payment_intent_id": req.PaymentIntentID,
		"payment_method":    req.PaymentMethod,
	}).Info("payment confirmed")
	return c.JSON(http.StatusOK, echo.Map{
		"success":          true,
		"bookingReference": booking.BookingReference,
		"status":           booking.Status,
		"message":          paymentSuccessMessage,
	})
}

func (h *PaymentHandler) rejected(c echo.Context, ref string, err error) error {
	msg := err.Error()
	var se *service.Error
	if errors.As(err, &se) {
		msg = se.Message
	}
	entry := h.log.WithError(err).WithFields(logrus.Fields{
		"reference":  ref,
		"request_id": requestID(c),
	})
	if service.KindOf(err) == service.KindInternal && se != nil {
		entry.Error("payment confirmation failed")
	} else {
		entry.Warn("payment confirmation rejected")
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": msg})
}
