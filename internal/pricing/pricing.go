// Package pricing computes fares.  All arithmetic is done on decimals so
// that the same inputs give the same fare on every platform.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/flight-booking/internal/model"
)

var (
	economyMultiplier  = decimal.NewFromInt(1)
	businessMultiplier = decimal.RequireFromString("2.5")
	firstMultiplier    = decimal.RequireFromString("4.0")

	earlyBirdFactor  = decimal.RequireFromString("0.85")
	lastMinuteFactor = decimal.RequireFromString("1.25")
	summerFactor     = decimal.RequireFromString("1.20")
)

const (
	earlyBirdDays  = 30
	lastMinuteDays = 7
)

// Multiplier returns the fare multiplier of a cabin class.  Unknown
// classes price as economy.
func Multiplier(c model.CabinClass) decimal.Decimal {
	switch c {
	case model.CabinBusiness:
		return businessMultiplier
	case model.CabinFirst:
		return firstMultiplier
	}
	return economyMultiplier
}

// Calculate returns the final fare of a seat booked at bookedAt for a
// flight departing at departure:
//
//	base × class multiplier
//	× 0.85 when departure is 30 or more whole days away,
//	  otherwise × 1.25 when it is 7 or fewer (including the past)
//	× 1.20 when departure falls in June, July or August
//
// rounded half-up to 2 decimals.  The departure month is read in the
// location of departure.
func Calculate(base decimal.Decimal, class model.CabinClass, bookedAt, departure time.Time) decimal.Decimal {
	price := base.Mul(Multiplier(class))

	days := DaysUntil(bookedAt, departure)
	switch {
	case days >= earlyBirdDays:
		price = price.Mul(earlyBirdFactor)
	case days <= lastMinuteDays:
		price = price.Mul(lastMinuteFactor)
	}

	switch departure.Month() {
	case time.June, time.July, time.August:
		price = price.Mul(summerFactor)
	}

	return price.Round(2)
}

// DaysUntil returns the number of whole days from `from` to `to`,
// floored, so 23h ahead is 0 and 1h behind is -1.
func DaysUntil(from, to time.Time) int64 {
	const day = 24 * time.Hour
	d := to.Sub(from)
	days := int64(d / day)
	if d%day < 0 {
		days--
	}
	return days
}

// DisplayPrices returns the per-class prices shown in search results.
// They carry only the class multiplier; the booked fare also applies
// the date modifiers of Calculate.  Results are not rounded.
func DisplayPrices(base decimal.Decimal) map[model.CabinClass]decimal.Decimal {
	out := make(map[model.CabinClass]decimal.Decimal, len(model.CabinClasses))
	for _, c := range model.CabinClasses {
		out[c] = base.Mul(Multiplier(c))
	}
	return out
}
