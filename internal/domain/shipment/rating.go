package shipment

import (
	"math"
	"strconv"
)

// Dimensions of the parcel in inches.
type Dimensions struct {
	Length float64
	Width  float64
	Height float64
}

// Quote is one carrier service option priced for a parcel.
type Quote struct {
	ID            string
	Name          string
	Carrier       string
	Cost          float64
	EstimatedDays int
	Description   string
}

const (
	baseCost        = 5.99
	costPerMile     = 0.001
	costPerPound    = 0.5
	costPerCubic    = 0.0001
	maxDistanceMile = 3000
)

// QuoteOptions prices every supported carrier service for a parcel. The
// formula is fixed for compatibility with existing clients: zip codes are
// compared numerically, distance is capped at 3000 miles, and costs are
// rounded to cents.
func QuoteOptions(fromZip, toZip string, weight float64, dims Dimensions) []Quote {
	distance := zipDistance(fromZip, toZip)
	volume := dims.Length * dims.Width * dims.Height

	return []Quote{
		{
			ID:            "fedex-standard",
			Name:          "FedEx Ground",
			Carrier:       "FEDEX",
			Cost:          serviceCost(distance, weight, volume, 1.2),
			EstimatedDays: int(math.Ceil(distance/500)) + 2,
			Description:   "Standard ground shipping",
		},
		{
			ID:            "fedex-express",
			Name:          "FedEx Express",
			Carrier:       "FEDEX",
			Cost:          serviceCost(distance, weight, volume, 2.5),
			EstimatedDays: 2,
			Description:   "Express 2-day shipping",
		},
		{
			ID:            "ups-ground",
			Name:          "UPS Ground",
			Carrier:       "UPS",
			Cost:          serviceCost(distance, weight, volume, 1.1),
			EstimatedDays: int(math.Ceil(distance/500)) + 3,
			Description:   "UPS ground shipping",
		},
		{
			ID:            "ups-express",
			Name:          "UPS Next Day",
			Carrier:       "UPS",
			Cost:          serviceCost(distance, weight, volume, 4.0),
			EstimatedDays: 1,
			Description:   "Next day delivery",
		},
		{
			ID:            "usps-priority",
			Name:          "USPS Priority",
			Carrier:       "USPS",
			Cost:          serviceCost(distance, weight, volume, 0.9),
			EstimatedDays: int(math.Ceil(distance/400)) + 2,
			Description:   "USPS Priority Mail",
		},
	}
}

func zipDistance(fromZip, toZip string) float64 {
	from, _ := strconv.Atoi(fromZip)
	to, _ := strconv.Atoi(toZip)
	return math.Min(math.Abs(float64(from-to))*10, maxDistanceMile)
}

func serviceCost(distance, weight, volume, multiplier float64) float64 {
	cost := (baseCost + distance*costPerMile + weight*costPerPound + volume*costPerCubic) * multiplier
	return math.Round(cost*100) / 100
}
