package notify

import (
	"bytes"
	"html/template"

	"github.com/iliyamo/flight-booking/internal/queue"
)

const qrContentID = "checkin-qr.png"

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>SkyBooker booking confirmation</title></head>
<body style="margin:0;padding:32px 0;background:#f4f6f9;font-family:'Segoe UI',Roboto,Arial,sans-serif;">
  <table width="620" align="center" cellpadding="0" cellspacing="0" style="background:#ffffff;border-radius:16px;">
    <tr><td style="background:#0078D4;padding:32px;text-align:center;color:#ffffff;">
      <p style="margin:0;font-size:28px;font-weight:800;">SkyBooker</p>
      <p style="margin:4px 0 0;font-size:15px;">Booking confirmation</p>
    </td></tr>
    <tr><td style="background:#d1fae5;padding:16px;text-align:center;color:#065f46;">
      <p style="margin:0;font-size:20px;font-weight:700;">Booking and payment successful</p>
      {{if .PaymentMethod}}<p style="margin:4px 0 0;font-size:13px;">Payment method: {{.PaymentMethod}}</p>{{end}}
    </td></tr>
    <tr><td style="padding:28px;text-align:center;">
      <p style="margin:0;font-size:12px;color:#9ca3af;letter-spacing:2px;">BOOKING REFERENCE</p>
      <p style="margin:0;font-size:40px;font-weight:800;color:#0078D4;letter-spacing:6px;">{{.Reference}}</p>
    </td></tr>
    <tr><td style="padding:0 28px;">
      <table width="100%" style="background:#f0f7ff;border-radius:12px;padding:16px;text-align:center;">
        <tr>
          <td><b style="font-size:28px;">{{.DepartureCode}}</b><br><small>{{.DepartureCity}}</small></td>
          <td>&rarr;<br><small>{{.FlightNumber}}</small></td>
          <td><b style="font-size:28px;">{{.ArrivalCode}}</b><br><small>{{.ArrivalCity}}</small></td>
        </tr>
      </table>
    </td></tr>
    <tr><td style="padding:24px 28px;">
      <table width="100%" cellpadding="8" style="border:2px solid #e5e7eb;border-radius:10px;">
        <tr><td>Passenger</td><td><b>{{.Passenger}}</b></td></tr>
        <tr><td>Departure</td><td>{{.Departure}}</td></tr>
        <tr><td>Arrival</td><td>{{.Arrival}}</td></tr>
        <tr><td>Seat</td><td>{{.Seat}} ({{.SeatClass}})</td></tr>
        <tr><td>Total paid</td><td><b>{{.TotalPrice}}</b></td></tr>
      </table>
    </td></tr>
    <tr><td style="padding:0 28px 32px;text-align:center;">
      {{if .HasQR}}<img src="{{.QRSource}}" alt="Check-in QR code" width="200" height="200">
      {{else}}<p style="color:#888">QR code unavailable</p>{{end}}
      <p style="font-size:12px;color:#666;">Show this code at check-in.</p>
    </td></tr>
  </table>
</body>
</html>`))

type confirmationView struct {
	Reference     string
	FlightNumber  string
	DepartureCode string
	DepartureCity string
	ArrivalCode   string
	ArrivalCity   string
	Departure     string
	Arrival       string
	Passenger     string
	Seat          string
	SeatClass     string
	TotalPrice    string
	PaymentMethod string
	HasQR         bool
	QRSource      template.URL
}

// PaymentMethodLabel returns the customer-facing name of a payment
// method code.  Unrecognised codes are card payments; an empty code has
// no label.
func PaymentMethodLabel(code string) string {
	switch code {
	case "":
		return ""
	case "barion":
		return "Barion"
	case "apple_pay":
		return "Apple Pay"
	case "google_pay":
		return "Google Pay"
	}
	return "Card (Stripe)"
}

func renderConfirmation(ev queue.BookingEvent, hasQR bool) (string, error) {
	const layout = "2006-01-02 15:04 MST"
	view := confirmationView{
		Reference:     ev.BookingReference,
		FlightNumber:  ev.FlightNumber,
		DepartureCode: ev.DepartureCode,
		DepartureCity: ev.DepartureCity,
		ArrivalCode:   ev.ArrivalCode,
		ArrivalCity:   ev.ArrivalCity,
		Departure:     ev.DepartureTime.UTC().Format(layout),
		Arrival:       ev.ArrivalTime.UTC().Format(layout),
		Passenger:     ev.PassengerName,
		Seat:          ev.SeatNumber,
		SeatClass:     ev.SeatClass,
		TotalPrice:    ev.TotalPrice,
		PaymentMethod: PaymentMethodLabel(ev.PaymentMethod),
		HasQR:         hasQR,
		QRSource:      template.URL("cid:" + qrContentID),
	}
	var buf bytes.Buffer
	if err := confirmationTemplate.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}
