package orders

import (
	"hash/fnv"

	"github.com/andovskaana/Food-Delivery-App-DNICK/internal/models"
)

// CourierPosition is a symbolic label driving the tracking map animation,
// not a real geolocation.
type CourierPosition string

const (
	PositionRestaurant CourierPosition = "restaurant"
	PositionInTransit  CourierPosition = "in_transit"
	PositionCustomer   CourierPosition = "customer"
)

// StepIndex maps an order status to the 4-step tracking progress bar.
func StepIndex(status models.OrderStatus) int {
	switch status {
	case models.StatusPlaced:
		return 1
	case models.StatusConfirmed:
		return 2
	case models.StatusAccepted, models.StatusPickedUp:
		return 3
	default:
		return 4
	}
}

// Position reports where the tracking map should draw the courier.
func Position(status models.OrderStatus) CourierPosition {
	switch status {
	case models.StatusPickedUp:
		return PositionInTransit
	case models.StatusDelivered:
		return PositionCustomer
	default:
		return PositionRestaurant
	}
}

// Tracking map bounding box (greater Skopje).
const (
	minLat = 41.96
	maxLat = 42.05
	minLng = 21.35
	maxLng = 21.50
)

// FakeCoordinates hashes an address into the bounding box. The same address
// always lands on the same point; no geocoder is involved.
func FakeCoordinates(address string) (lat, lng float64) {
	lat = minLat + (maxLat-minLat)*hashFraction(address)
	lng = minLng + (maxLng-minLng)*hashFraction(address+"#lng")
	return lat, lng
}

func hashFraction(s string) float64 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return float64(h.Sum32()) / float64(^uint32(0))
}
