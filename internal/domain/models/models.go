package models

import "time"

// ShipmentStatus represents the lifecycle state of a shipment
type ShipmentStatus string

const (
	StatusInTransit ShipmentStatus = "IN_TRANSIT"
	StatusDelivered ShipmentStatus = "DELIVERED"
)

// Shipment represents a tracked consignment of produce from harvest to sale
type Shipment struct {
	ID               string         `json:"id" db:"id"`
	ProduceName      string         `json:"produce_name" db:"produce_name"`
	Quantity         float64        `json:"quantity" db:"quantity"`
	DecayConstant    float64        `json:"decay_constant" db:"decay_constant"`
	StartLocation    string         `json:"start_location" db:"start_location"`
	HarvestTimestamp time.Time      `json:"harvest_timestamp" db:"harvest_timestamp"`
	Status           ShipmentStatus `json:"status" db:"status"`
	CreatedAt        time.Time      `json:"created_at" db:"created_at"`
}

// DemandLevel represents market demand for produce
type DemandLevel string

const (
	DemandHigh   DemandLevel = "High"
	DemandMedium DemandLevel = "Medium"
	DemandLow    DemandLevel = "Low"
)

// PriceTable maps produce names to unit prices. The mapping is sparse:
// a market need not list every produce type.
type PriceTable map[string]float64

// Price returns the unit price for a produce type. A produce type absent
// from the table yields 0, never an error.
func (p PriceTable) Price(produceName string) float64 {
	return p[produceName]
}

// Market represents a candidate sell-destination
type Market struct {
	ID          int64       `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	DistanceKm  float64     `json:"distance_km" db:"distance_km"`
	Prices      PriceTable  `json:"prices" db:"prices"`
	DemandLevel DemandLevel `json:"demand_level" db:"demand_level"`
	Lat         float64     `json:"lat" db:"lat"`
	Lon         float64     `json:"lon" db:"lon"`
}

// RiskLevel classifies spoilage risk from a freshness percentage
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// RiskForFreshness maps a freshness percentage to a spoilage risk level.
// Low for freshness >= 70, Medium for 40 <= freshness < 70, High below 40.
func RiskForFreshness(freshness float64) RiskLevel {
	switch {
	case freshness >= 70:
		return RiskLow
	case freshness >= 40:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// FreshnessReading is a derived, non-persisted freshness snapshot for a
// shipment at a point in time
type FreshnessReading struct {
	ShipmentID   string    `json:"shipment_id"`
	ProduceName  string    `json:"produce_name"`
	Freshness    float64   `json:"freshness_percentage"`
	AmbientTempC float64   `json:"ambient_temperature_c"`
	Risk         RiskLevel `json:"spoilage_risk"`
	Lat          float64   `json:"lat"`
	Lon          float64   `json:"lon"`
	ComputedAt   time.Time `json:"computed_at"`
}

// Recommendation is the projected outcome of selling one shipment at one market
type Recommendation struct {
	MarketName         string      `json:"market_name"`
	DistanceKm         float64     `json:"distance_km"`
	ProjectedFreshness float64     `json:"projected_freshness"`
	UnitPrice          float64     `json:"market_price_per_unit"`
	Demand             DemandLevel `json:"demand"`
	ExpectedRevenue    float64     `json:"expected_revenue"`
}

// RecommendationResult ranks all candidate markets for a shipment.
// TopChoice is nil when no markets are known.
type RecommendationResult struct {
	ShipmentID       string           `json:"shipment_id"`
	ProduceName      string           `json:"produce_name"`
	CurrentFreshness float64          `json:"current_freshness"`
	TopChoice        *Recommendation  `json:"top_recommendation"`
	AllOptions       []Recommendation `json:"all_options"`
}

// LocationUpdate is a raw position sample from a moving shipment
type LocationUpdate struct {
	ShipmentID string    `json:"trip_id"`
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	Source     string    `json:"source,omitempty"`
	ReceivedAt time.Time `json:"received_at,omitempty"`
}

// LocationEvent is a location update enriched with the hub's timestamp,
// as relayed to tracking subscribers
type LocationEvent struct {
	ShipmentID string    `json:"trip_id"`
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	Timestamp  time.Time `json:"timestamp"`
}

// Produce describes one catalog entry with its biological decay constant
type Produce struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	DecayConstant float64 `json:"decay_constant"`
}

// FeedMode represents the active location feed mode (live or sim)
type FeedMode string

const (
	FeedModeLive FeedMode = "live"
	FeedModeSim  FeedMode = "sim"
)
