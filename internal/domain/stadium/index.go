package stadium

import (
	"sort"
	"strconv"
	"strings"
)

// CoordinateIndex resolves stadium and city names to coordinates.
// It is built once per dataset load and never mutated afterwards.
type CoordinateIndex struct {
	byStadium map[string]Coordinates
	byCity    map[string]Coordinates
}

// BuildCoordinateIndex indexes rows by normalized stadium and city name.
// Rows with a missing name or unparseable coordinates are skipped; on
// duplicate keys the last row wins.
func BuildCoordinateIndex(rows []RawCoordinateRow) *CoordinateIndex {
	idx := &CoordinateIndex{
		byStadium: make(map[string]Coordinates, len(rows)),
		byCity:    make(map[string]Coordinates, len(rows)),
	}

	for _, row := range rows {
		coords, ok := parseCoordinates(row.Latitude, row.Longitude)
		if !ok {
			continue
		}
		if name := NormalizeName(row.Stadium); name != "" {
			idx.byStadium[name] = coords
		}
		if city := NormalizeName(row.City); city != "" {
			idx.byCity[city] = coords
		}
	}

	return idx
}

// Lookup checks the stadium name first and falls back to the city name.
func (i *CoordinateIndex) Lookup(name, fallbackCity string) (Coordinates, bool) {
	if i == nil {
		return Coordinates{}, false
	}
	if coords, ok := i.byStadium[NormalizeName(name)]; ok {
		return coords, true
	}
	if coords, ok := i.byCity[NormalizeName(fallbackCity)]; ok {
		return coords, true
	}
	return Coordinates{}, false
}

func (i *CoordinateIndex) StadiumCount() int {
	if i == nil {
		return 0
	}
	return len(i.byStadium)
}

func (i *CoordinateIndex) CityCount() int {
	if i == nil {
		return 0
	}
	return len(i.byCity)
}

// Records lists every indexed entry, stadiums first, each kind sorted by name.
func (i *CoordinateIndex) Records() []CoordinateRecord {
	if i == nil {
		return nil
	}

	out := make([]CoordinateRecord, 0, len(i.byStadium)+len(i.byCity))
	out = appendRecords(out, i.byStadium, KindPrimary)
	out = appendRecords(out, i.byCity, KindCity)
	return out
}

func appendRecords(out []CoordinateRecord, items map[string]Coordinates, kind CoordinateKind) []CoordinateRecord {
	names := make([]string, 0, len(items))
	for name := range items {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		out = append(out, CoordinateRecord{Name: name, Kind: kind, Coordinates: items[name]})
	}
	return out
}

func parseCoordinates(rawLat, rawLng string) (Coordinates, bool) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(rawLat), 64)
	if err != nil {
		return Coordinates{}, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(rawLng), 64)
	if err != nil {
		return Coordinates{}, false
	}

	coords := Coordinates{Latitude: lat, Longitude: lng}
	if !coords.Valid() {
		return Coordinates{}, false
	}
	return coords, true
}
