package booking

import (
	"time"

	"rentacar/models"
)

// Quote is the derived pricing for a draft. It is recomputed from scratch on
// every read; nothing here is cached.
type Quote struct {
	Days         int     `json:"days"`
	VehiclePrice float64 `json:"vehicle_price"`
	ExtrasPrice  float64 `json:"extras_price"`
	Total        float64 `json:"total"`
}

// RentalDays returns the whole-day difference between pickup and return,
// clamped to a minimum of one billable day.
func RentalDays(pickup, ret time.Time) int {
	days := int(ret.Sub(pickup).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// PriceQuote computes the rental price: days times the vehicle's daily price,
// plus each selected add-on priced per day. Pure function of its inputs.
func PriceQuote(dailyPrice float64, selectedExtras []string, pickup, ret time.Time) Quote {
	days := RentalDays(pickup, ret)
	quote := Quote{
		Days:         days,
		VehiclePrice: float64(days) * dailyPrice,
	}
	for _, id := range selectedExtras {
		if extra, ok := models.ExtraByID(id); ok {
			quote.ExtrasPrice += float64(days) * extra.Price
		}
	}
	quote.Total = quote.VehiclePrice + quote.ExtrasPrice
	return quote
}
