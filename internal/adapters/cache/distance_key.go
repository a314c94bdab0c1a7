package cache

import (
	"ride-assignment-service/internal/domain"

	"github.com/mmcloughlin/geohash"
)

// Geohash precision for persisted distance keys. 12 characters resolve to a
// few centimeters, so distinct pickup points never share an entry.
const keyPrecision = 12

// cellKey encodes a point as a fixed-width geohash.
func cellKey(c domain.Coordinates) string {
	return geohash.EncodeWithPrecision(c.Lat, c.Lon, keyPrecision)
}
