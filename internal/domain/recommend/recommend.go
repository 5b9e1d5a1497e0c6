package recommend

import (
	"math"
	"sort"

	"freshroute/internal/domain/models"
)

// Default tuning for the profitability projection.
const (
	DefaultTruckSpeedKmh      = 40.0
	DefaultDecayPerTravelHour = 1.0
)

// Options tunes the travel-time projection used when ranking markets.
type Options struct {
	// TruckSpeedKmh is the assumed travel speed. Must be > 0; zero or
	// negative falls back to the default.
	TruckSpeedKmh float64

	// DecayPerTravelHour is the freshness percentage lost per hour on
	// the road.
	DecayPerTravelHour float64
}

func (o Options) withDefaults() Options {
	if o.TruckSpeedKmh <= 0 {
		o.TruckSpeedKmh = DefaultTruckSpeedKmh
	}
	if o.DecayPerTravelHour == 0 {
		o.DecayPerTravelHour = DefaultDecayPerTravelHour
	}
	return o
}

// Rank projects freshness and revenue for the shipment at every candidate
// market and orders the results by expected revenue, highest first. The
// sort is stable so ties keep the input market order. With no markets the
// result carries an empty option list and a nil top choice.
func Rank(shipment models.Shipment, currentFreshness float64, markets []models.Market, opts Options) models.RecommendationResult {
	opts = opts.withDefaults()

	options := make([]models.Recommendation, 0, len(markets))
	for _, market := range markets {
		travelHours := market.DistanceKm / opts.TruckSpeedKmh

		projected := currentFreshness - travelHours*opts.DecayPerTravelHour
		if projected < 0 {
			projected = 0
		}
		projected = round2(projected)

		unitPrice := market.Prices.Price(shipment.ProduceName)
		revenue := round2(shipment.Quantity * unitPrice * (projected / 100))

		options = append(options, models.Recommendation{
			MarketName:         market.Name,
			DistanceKm:         market.DistanceKm,
			ProjectedFreshness: projected,
			UnitPrice:          unitPrice,
			Demand:             market.DemandLevel,
			ExpectedRevenue:    revenue,
		})
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].ExpectedRevenue > options[j].ExpectedRevenue
	})

	result := models.RecommendationResult{
		ShipmentID:       shipment.ID,
		ProduceName:      shipment.ProduceName,
		CurrentFreshness: currentFreshness,
		AllOptions:       options,
	}
	if len(options) > 0 {
		top := options[0]
		result.TopChoice = &top
	}
	return result
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
