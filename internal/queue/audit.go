package queue

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// AuditLog appends one human-readable line per booking event to
// <dir>/booking.log.
type AuditLog struct {
	dir string
	mu  sync.Mutex
}

func NewAuditLog(dir string) *AuditLog {
	return &AuditLog{dir: dir}
}

// Path returns the file the log is written to.
func (a *AuditLog) Path() string {
	return filepath.Join(a.dir, "booking.log")
}

// Append writes ev to the log, creating the directory when missing.
func (a *AuditLog) Append(ev BookingEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(a.Path(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] %s | reference=%s | status=%s | flight=%s | route=%s-%s | departs=%s | passenger=%q | seat=%s %s | total=%s\n",
		ev.OccurredAt.UTC().Format(time.RFC3339), ev.Type, ev.BookingReference, ev.Status, ev.FlightNumber,
		ev.DepartureCode, ev.ArrivalCode, ev.DepartureTime.UTC().Format(time.RFC3339),
		ev.PassengerName, ev.SeatNumber, ev.SeatClass, ev.TotalPrice)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
