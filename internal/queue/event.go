// Package queue defines the booking events exchanged over RabbitMQ and
// the publisher and consumer that carry them.
package queue

import "time"

// EventType is the routing key of a booking event on the topic exchange.
type EventType string

const (
	EventBookingCreated   EventType = "booking.created"
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingCancelled EventType = "booking.cancelled"
)

// BookingEvent is published after a booking change has been committed.
// It carries enough of the booking for downstream consumers to log it
// and mail the passenger without querying the primary database.
type BookingEvent struct {
	Type             EventType `json:"type"`
	BookingReference string    `json:"booking_reference"`
	Status           string    `json:"status"`
	FlightNumber     string    `json:"flight_number"`
	DepartureCode    string    `json:"departure_code"`
	DepartureCity    string    `json:"departure_city"`
	ArrivalCode      string    `json:"arrival_code"`
	ArrivalCity      string    `json:"arrival_city"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	PassengerName    string    `json:"passenger_name"`
	PassengerEmail   string    `json:"passenger_email"`
	SeatNumber       string    `json:"seat_number"`
	SeatClass        string    `json:"seat_class"`
	TotalPrice       string    `json:"total_price"`
	PaymentMethod    string    `json:"payment_method,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}
