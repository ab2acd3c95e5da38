package matchmap

import "github.com/riskibarqy/stadium-matchmap/internal/domain/stadium"

// Bounds is the bounding box of resolved markers. The zero value is empty.
type Bounds struct {
	SouthWest stadium.Coordinates
	NorthEast stadium.Coordinates
	set       bool
}

func (b Bounds) Valid() bool {
	return b.set
}

func (b Bounds) Extend(point stadium.Coordinates) Bounds {
	if !b.set {
		return Bounds{SouthWest: point, NorthEast: point, set: true}
	}
	b.SouthWest.Latitude = min(b.SouthWest.Latitude, point.Latitude)
	b.SouthWest.Longitude = min(b.SouthWest.Longitude, point.Longitude)
	b.NorthEast.Latitude = max(b.NorthEast.Latitude, point.Latitude)
	b.NorthEast.Longitude = max(b.NorthEast.Longitude, point.Longitude)
	return b
}
