package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/flight-booking/internal/model"
)

func TestSeatLayout(t *testing.T) {
	flight := model.Flight{ID: 7, BasePrice: decimal.RequireFromString("99.99")}
	aircraft := model.Aircraft{FirstSeats: 4, BusinessSeats: 6, EconomySeats: 8}

	seats := SeatLayout(flight, aircraft)
	require.Len(t, seats, 18)

	var numbers []string
	for _, s := range seats {
		numbers = append(numbers, s.SeatNumber)
		assert.Equal(t, uint64(7), s.FlightID)
		assert.True(t, s.Available)
	}
	assert.Equal(t, []string{
		"1A", "1B", "1C", "1D",
		"2A", "2B", "2C", "2D", "3A", "3B",
		"4A", "4B", "4C", "4D", "4E", "4F", "5A", "5B",
	}, numbers)

	assert.Equal(t, model.CabinFirst, seats[0].Class)
	assert.Equal(t, "399.96", seats[0].Price.StringFixed(2))
	assert.Equal(t, model.CabinBusiness, seats[4].Class)
	assert.Equal(t, "249.98", seats[4].Price.StringFixed(2))
	assert.Equal(t, model.CabinEconomy, seats[17].Class)
	assert.Equal(t, "99.99", seats[17].Price.StringFixed(2))
}

func TestSeatLayoutWithoutPremiumCabins(t *testing.T) {
	seats := SeatLayout(model.Flight{ID: 1, BasePrice: decimal.NewFromInt(50)}, model.Aircraft{EconomySeats: 3})
	require.Len(t, seats, 3)
	assert.Equal(t, "1A", seats[0].SeatNumber)
	assert.Equal(t, "1C", seats[2].SeatNumber)
}

func TestProvisionSeats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	addFlight(f, 30, "FB330", testNow.AddDate(0, 1, 0))

	n, err := f.seats.ProvisionSeats(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, 14, n)

	counts, err := f.store.CountAvailableSeatsByClass(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, map[model.CabinClass]int{model.CabinFirst: 4, model.CabinBusiness: 4, model.CabinEconomy: 6}, counts)

	_, err = f.seats.ProvisionSeats(ctx, 30)
	assert.Equal(t, KindConflict, KindOf(err))

	_, err = f.seats.ProvisionSeats(ctx, 999)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestProvisionSeatsUnknownAircraft(t *testing.T) {
	f := newFixture(t)
	addFlight(f, 30, "FB330", testNow.AddDate(0, 1, 0))
	fl := f.store.data.flights[30]
	fl.AircraftID = 404
	f.store.data.flights[30] = fl

	_, err := f.seats.ProvisionSeats(context.Background(), 30)
	assert.Equal(t, KindNotFound, KindOf(err))
}
