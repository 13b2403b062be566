package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/flight-booking/internal/model"
	"github.com/iliyamo/flight-booking/internal/repository"
)

// memData is the full content of the in-memory store.
type memData struct {
	airports   map[uint64]model.Airport
	aircraft   map[uint64]model.Aircraft
	flights    map[uint64]model.Flight
	seats      map[uint64]model.Seat
	passengers map[uint64]model.Passenger
	bookings   map[uint64]model.Booking
	nextID     uint64
}

func newMemData() *memData {
	return &memData{
		airports:   map[uint64]model.Airport{},
		aircraft:   map[uint64]model.Aircraft{},
		flights:    map[uint64]model.Flight{},
		seats:      map[uint64]model.Seat{},
		passengers: map[uint64]model.Passenger{},
		bookings:   map[uint64]model.Booking{},
		nextID:     1000,
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (d *memData) clone() *memData {
	return &memData{
		airports:   cloneMap(d.airports),
		aircraft:   cloneMap(d.aircraft),
		flights:    cloneMap(d.flights),
		seats:      cloneMap(d.seats),
		passengers: cloneMap(d.passengers),
		bookings:   cloneMap(d.bookings),
		nextID:     d.nextID,
	}
}

func (d *memData) id() uint64 {
	d.nextID++
	return d.nextID
}

// memStore is a repository.Store kept in memory.  Transactions run one
// at a time on a private copy that replaces the data on commit, which
// gives the same outcome as row locks for the single-seat races tested
// here.
type memStore struct {
	mu   sync.Mutex
	data *memData

	// insertBookingErr, when set, is consulted before every booking insert.
	insertBookingErr func(b model.Booking) error
}

func newMemStore() *memStore {
	return &memStore{data: newMemData()}
}

func (s *memStore) InTx(ctx context.Context, fn func(q repository.Querier) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.data.clone()
	if err := fn(&memQueries{d: work, store: s}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.data = work
	return nil
}

// snapshot returns a copy of the committed data for assertions.
func (s *memStore) snapshot() *memData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.clone()
}

func (s *memStore) read() *memQueries {
	return &memQueries{d: s.data, store: s}
}

func (s *memStore) ListAirports(ctx context.Context) ([]model.Airport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().ListAirports(ctx)
}

func (s *memStore) GetAirportByID(ctx context.Context, id uint64) (model.Airport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().GetAirportByID(ctx, id)
}

func (s *memStore) GetAirportByIATA(ctx context.Context, code string) (model.Airport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().GetAirportByIATA(ctx, code)
}

func (s *memStore) GetAircraftByID(ctx context.Context, id uint64) (model.Aircraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().GetAircraftByID(ctx, id)
}

func (s *memStore) GetFlightByID(ctx context.Context, id uint64) (model.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().GetFlightByID(ctx, id)
}

func (s *memStore) SearchFlights(ctx context.Context, from, to uint64, start, end time.Time) ([]model.Flight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().SearchFlights(ctx, from, to, start, end)
}

func (s *memStore) CountAvailableSeatsByClass(ctx context.Context, flightID uint64) (map[model.CabinClass]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().CountAvailableSeatsByClass(ctx, flightID)
}

func (s *memStore) ListAvailableSeats(ctx context.Context, flightID uint64, class model.CabinClass) ([]model.Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().ListAvailableSeats(ctx, flightID, class)
}

func (s *memStore) CountSeats(ctx context.Context, flightID uint64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().CountSeats(ctx, flightID)
}

func (s *memStore) InsertSeats(ctx context.Context, seats []model.Seat) error {
	return s.InTx(ctx, func(q repository.Querier) error { return q.InsertSeats(ctx, seats) })
}

func (s *memStore) GetSeatByID(ctx context.Context, id uint64) (model.Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().GetSeatByID(ctx, id)
}

func (s *memStore) GetSeatForUpdate(ctx context.Context, flightID uint64, seatNumber string) (model.Seat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().GetSeatForUpdate(ctx, flightID, seatNumber)
}

func (s *memStore) SetSeatAvailable(ctx context.Context, seatID uint64, available bool) error {
	return s.InTx(ctx, func(q repository.Querier) error { return q.SetSeatAvailable(ctx, seatID, available) })
}

func (s *memStore) GetPassengerByID(ctx context.Context, id uint64) (model.Passenger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().GetPassengerByID(ctx, id)
}

func (s *memStore) GetPassengerByEmailForUpdate(ctx context.Context, email string) (model.Passenger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().GetPassengerByEmailForUpdate(ctx, email)
}

func (s *memStore) InsertPassenger(ctx context.Context, p *model.Passenger) error {
	return s.InTx(ctx, func(q repository.Querier) error { return q.InsertPassenger(ctx, p) })
}

func (s *memStore) UpdatePassenger(ctx context.Context, p model.Passenger) error {
	return s.InTx(ctx, func(q repository.Querier) error { return q.UpdatePassenger(ctx, p) })
}

func (s *memStore) InsertBooking(ctx context.Context, b *model.Booking) error {
	return s.InTx(ctx, func(q repository.Querier) error { return q.InsertBooking(ctx, b) })
}

func (s *memStore) GetBookingByReference(ctx context.Context, ref string) (model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().GetBookingByReference(ctx, ref)
}

func (s *memStore) GetBookingByReferenceForUpdate(ctx context.Context, ref string) (model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().GetBookingByReferenceForUpdate(ctx, ref)
}

func (s *memStore) UpdateBookingStatus(ctx context.Context, id uint64, status model.BookingStatus) error {
	return s.InTx(ctx, func(q repository.Querier) error { return q.UpdateBookingStatus(ctx, id, status) })
}

// memQueries implements repository.Querier over one memData.
type memQueries struct {
	d     *memData
	store *memStore
}

func (q *memQueries) ListAirports(context.Context) ([]model.Airport, error) {
	out := make([]model.Airport, 0, len(q.d.airports))
	for _, a := range q.d.airports {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IATACode < out[j].IATACode })
	return out, nil
}

func (q *memQueries) GetAirportByID(_ context.Context, id uint64) (model.Airport, error) {
	a, ok := q.d.airports[id]
	if !ok {
		return a, repository.ErrAirportNotFound
	}
	return a, nil
}

func (q *memQueries) GetAirportByIATA(_ context.Context, code string) (model.Airport, error) {
	for _, a := range q.d.airports {
		if a.IATACode == code {
			return a, nil
		}
	}
	return model.Airport{}, repository.ErrAirportNotFound
}

func (q *memQueries) GetAircraftByID(_ context.Context, id uint64) (model.Aircraft, error) {
	a, ok := q.d.aircraft[id]
	if !ok {
		return a, repository.ErrAircraftNotFound
	}
	return a, nil
}

func (q *memQueries) GetFlightByID(_ context.Context, id uint64) (model.Flight, error) {
	f, ok := q.d.flights[id]
	if !ok {
		return f, repository.ErrFlightNotFound
	}
	return f, nil
}

func (q *memQueries) SearchFlights(_ context.Context, from, to uint64, start, end time.Time) ([]model.Flight, error) {
	var out []model.Flight
	for _, f := range q.d.flights {
		if f.DepartureAirportID != from || f.ArrivalAirportID != to {
			continue
		}
		if f.DepartureTime.Before(start) || f.DepartureTime.After(end) {
			continue
		}
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DepartureTime.Before(out[j].DepartureTime) })
	return out, nil
}

func (q *memQueries) CountAvailableSeatsByClass(_ context.Context, flightID uint64) (map[model.CabinClass]int, error) {
	out := map[model.CabinClass]int{model.CabinEconomy: 0, model.CabinBusiness: 0, model.CabinFirst: 0}
	for _, s := range q.d.seats {
		if s.FlightID == flightID && s.Available {
			out[s.Class]++
		}
	}
	return out, nil
}

func (q *memQueries) ListAvailableSeats(_ context.Context, flightID uint64, class model.CabinClass) ([]model.Seat, error) {
	out := []model.Seat{}
	for _, s := range q.d.seats {
		if s.FlightID == flightID && s.Available && (class == "" || s.Class == class) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (q *memQueries) CountSeats(_ context.Context, flightID uint64) (int, error) {
	n := 0
	for _, s := range q.d.seats {
		if s.FlightID == flightID {
			n++
		}
	}
	return n, nil
}

func (q *memQueries) InsertSeats(_ context.Context, seats []model.Seat) error {
	for _, s := range seats {
		for _, existing := range q.d.seats {
			if existing.FlightID == s.FlightID && existing.SeatNumber == s.SeatNumber {
				return repository.ErrConflict
			}
		}
		s.ID = q.d.id()
		q.d.seats[s.ID] = s
	}
	return nil
}

func (q *memQueries) GetSeatByID(_ context.Context, id uint64) (model.Seat, error) {
	s, ok := q.d.seats[id]
	if !ok {
		return s, repository.ErrSeatNotFound
	}
	return s, nil
}

func (q *memQueries) GetSeatForUpdate(_ context.Context, flightID uint64, seatNumber string) (model.Seat, error) {
	for _, s := range q.d.seats {
		if s.FlightID == flightID && s.SeatNumber == seatNumber {
			return s, nil
		}
	}
	return model.Seat{}, repository.ErrSeatNotFound
}

func (q *memQueries) SetSeatAvailable(_ context.Context, seatID uint64, available bool) error {
	s, ok := q.d.seats[seatID]
	if !ok {
		return repository.ErrSeatNotFound
	}
	s.Available = available
	q.d.seats[seatID] = s
	return nil
}

func (q *memQueries) GetPassengerByID(_ context.Context, id uint64) (model.Passenger, error) {
	p, ok := q.d.passengers[id]
	if !ok {
		return p, repository.ErrPassengerNotFound
	}
	return p, nil
}

func (q *memQueries) GetPassengerByEmailForUpdate(_ context.Context, email string) (model.Passenger, error) {
	for _, p := range q.d.passengers {
		if p.Email == email {
			return p, nil
		}
	}
	return model.Passenger{}, repository.ErrPassengerNotFound
}

func (q *memQueries) InsertPassenger(_ context.Context, p *model.Passenger) error {
	for _, existing := range q.d.passengers {
		if existing.Email == p.Email {
			return repository.ErrDuplicateEmail
		}
	}
	p.ID = q.d.id()
	q.d.passengers[p.ID] = *p
	return nil
}

func (q *memQueries) UpdatePassenger(_ context.Context, p model.Passenger) error {
	if _, ok := q.d.passengers[p.ID]; !ok {
		return repository.ErrPassengerNotFound
	}
	q.d.passengers[p.ID] = p
	return nil
}

func (q *memQueries) InsertBooking(_ context.Context, b *model.Booking) error {
	if q.store.insertBookingErr != nil {
		if err := q.store.insertBookingErr(*b); err != nil {
			return err
		}
	}
	for _, existing := range q.d.bookings {
		if existing.Reference == b.Reference {
			return repository.ErrDuplicateReference
		}
		if existing.SeatID == b.SeatID && existing.Status != model.BookingCancelled {
			return repository.ErrSeatTaken
		}
	}
	b.ID = q.d.id()
	q.d.bookings[b.ID] = *b
	return nil
}

func (q *memQueries) GetBookingByReference(_ context.Context, ref string) (model.Booking, error) {
	for _, b := range q.d.bookings {
		if b.Reference == ref {
			return b, nil
		}
	}
	return model.Booking{}, repository.ErrBookingNotFound
}

func (q *memQueries) GetBookingByReferenceForUpdate(ctx context.Context, ref string) (model.Booking, error) {
	return q.GetBookingByReference(ctx, ref)
}

func (q *memQueries) UpdateBookingStatus(_ context.Context, id uint64, status model.BookingStatus) error {
	b, ok := q.d.bookings[id]
	if !ok {
		return repository.ErrBookingNotFound
	}
	b.Status = status
	q.d.bookings[id] = b
	return nil
}
