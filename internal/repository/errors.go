// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as the
// booking service to distinguish between different failure scenarios
// without inspecting driver errors.
package repository

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

var (
	ErrAirportNotFound   = errors.New("airport not found")
	ErrAircraftNotFound  = errors.New("aircraft not found")
	ErrFlightNotFound    = errors.New("flight not found")
	ErrSeatNotFound      = errors.New("seat not found")
	ErrPassengerNotFound = errors.New("passenger not found")
	ErrBookingNotFound   = errors.New("booking not found")
)

// ErrDuplicateReference is returned when a booking insert collides with
// an existing booking reference.  Callers retry with a new reference.
var ErrDuplicateReference = errors.New("duplicate booking reference")

// ErrDuplicateEmail is returned when a passenger insert loses the race
// for the unique email index.
var ErrDuplicateEmail = errors.New("duplicate passenger email")

// ErrSeatTaken is returned when the seat already belongs to another
// non-cancelled booking.
var ErrSeatTaken = errors.New("seat already booked")

// ErrConflict is returned when an update cannot be performed because
// of conflicting state, such as provisioning seats for a flight that
// already has them.
var ErrConflict = errors.New("conflict")

const (
	mysqlDuplicateEntry = 1062
	mysqlDeadlock       = 1213
)

// duplicateKey reports whether err is a MySQL duplicate-entry error and,
// if so, returns the driver message naming the violated index.
func duplicateKey(err error) (string, bool) {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
		return me.Message, true
	}
	return "", false
}

// isDeadlock reports whether err is InnoDB rolling the transaction back
// to break a deadlock.
func isDeadlock(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDeadlock
}

func violates(msg, index string) bool {
	return strings.Contains(msg, index)
}
