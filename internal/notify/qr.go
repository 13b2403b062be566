package notify

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 300

// CheckInPayload is the content encoded in the boarding QR code.
func CheckInPayload(reference, flightNumber string) string {
	return fmt.Sprintf("SKYBOOKER:BOOKING:%s:%s", reference, flightNumber)
}

// CheckInQR renders the check-in QR code of a booking as a PNG.
func CheckInQR(reference, flightNumber string) ([]byte, error) {
	return qrcode.Encode(CheckInPayload(reference, flightNumber), qrcode.Medium, qrSize)
}
