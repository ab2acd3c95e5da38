package stadium

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

type CoordinateKind string

const (
	KindPrimary CoordinateKind = "PRIMARY"
	KindCity    CoordinateKind = "CITY"
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) || math.IsInf(c.Latitude, 0) || math.IsInf(c.Longitude, 0) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// CoordinateRecord is one entry held by the coordinate index.
type CoordinateRecord struct {
	Name        string
	Kind        CoordinateKind
	Coordinates Coordinates
}

// RawCoordinateRow is a coordinate row as delivered by a loader, before parsing.
type RawCoordinateRow struct {
	Stadium    string
	City       string
	Latitude   string
	Longitude  string
	StadiumURL string
}

// Info holds descriptive stadium metadata.
type Info struct {
	Stadium    string
	City       string
	Capacity   *int
	FieldSize  string
	OpenedDate string
	ImageURL   string
	URL        string
}

// NormalizeName is the key normalization shared by every stadium/city lookup.
func NormalizeName(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

var footnotePattern = regexp.MustCompile(`\[[^\]]*\]`)

// ParseCapacity reads a capacity cell such as "30,780[1] (seated)".
// Footnote markers and thousands separators are dropped and the first
// token is parsed. Anything else yields nil.
func ParseCapacity(raw string) *int {
	value := footnotePattern.ReplaceAllString(raw, "")
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return nil
	}

	token := strings.NewReplacer(",", "", ".", "", " ", "").Replace(fields[0])
	n, err := strconv.Atoi(token)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// TrimOpenedDate keeps the part of an "Opened" cell before the first ';'.
func TrimOpenedDate(raw string) string {
	before, _, _ := strings.Cut(raw, ";")
	return strings.TrimSpace(before)
}
