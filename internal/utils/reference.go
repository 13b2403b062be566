package utils

import (
	"crypto/rand"
	"regexp"
)

const (
	// ReferenceLength is the number of characters in a booking reference.
	ReferenceLength   = 6
	referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var referencePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

// NewBookingReference returns six characters drawn uniformly from A–Z0–9
// using the operating system CSPRNG.  Random bytes at or above the
// largest multiple of the alphabet size are discarded so every
// character is equally likely.  Safe for concurrent use.
func NewBookingReference() (string, error) {
	const n = len(referenceAlphabet)
	const limit = 256 - 256%n

	out := make([]byte, 0, ReferenceLength)
	buf := make([]byte, ReferenceLength*2)
	for len(out) < ReferenceLength {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, referenceAlphabet[int(b)%n])
			if len(out) == ReferenceLength {
				break
			}
		}
	}
	return string(out), nil
}

// IsBookingReference reports whether s has the shape of a booking reference.
func IsBookingReference(s string) bool {
	return referencePattern.MatchString(s)
}
