// Package distance resolves great-circle distances between heliports for
// per-flight distance enrichment.
package distance

import (
	"math"
	"regexp"
	"strings"
)

// Coord is a heliport position in decimal degrees.
type Coord struct {
	Lat  float64
	Lon  float64
	Name string
}

// Provider resolves the distance in nautical miles between two location
// labels. Implementations return 0 when either side cannot be resolved.
type Provider interface {
	DistanceNM(origin, destination string) float64
}

// CoordTable resolves distances from an ICAO coordinate table using the
// haversine formula. Location labels are matched by embedded ICAO code first,
// then by known heliport name.
type CoordTable struct {
	coords map[string]Coord
}

var _ Provider = (*CoordTable)(nil)

var (
	icaoExact  = regexp.MustCompile(`^[A-Z][A-Z0-9]{3}$`)
	icaoInText = regexp.MustCompile(`\b([A-Z][A-Z0-9]{3})\b`)
)

var nameToICAO = map[string]string{
	"GUARULHOS":     "SBGR",
	"GRU":           "SBGR",
	"ALPHAVILLE":    "SDCO",
	"CONGONHAS":     "SBSP",
	"SANTOS DUMONT": "SBRJ",
	"GALEAO":        "SBGL",
	"JUNDIAI":       "SBJD",
	"MORUMBI":       "SDKM",
	"INTERLAGOS":    "SSXK",
	"AUTODROMO":     "SSXK",
}

// DefaultCoords covers the common heliports of the operating region.
func DefaultCoords() map[string]Coord {
	return map[string]Coord{
		"SBGR": {Lat: -23.4356, Lon: -46.4731, Name: "Guarulhos"},
		"SDCO": {Lat: -23.5207, Lon: -46.8556, Name: "Alphaville"},
		"SBSP": {Lat: -23.6261, Lon: -46.6564, Name: "Congonhas"},
		"SBJD": {Lat: -23.1814, Lon: -46.9436, Name: "Jundiaí"},
		"SBRJ": {Lat: -22.9108, Lon: -43.1631, Name: "Santos Dumont"},
		"SBGL": {Lat: -22.8089, Lon: -43.2436, Name: "Galeão"},
		"SDKM": {Lat: -23.5489, Lon: -46.6531, Name: "Morumbi"},
		"SSXK": {Lat: -23.7019, Lon: -46.6978, Name: "Autódromo Interlagos"},
	}
}

// NewCoordTable builds a provider from the default coordinates plus any
// extra entries, which override defaults on collision.
func NewCoordTable(extra map[string]Coord) *CoordTable {
	coords := DefaultCoords()
	for icao, c := range extra {
		coords[icao] = c
	}
	return &CoordTable{coords: coords}
}

// DistanceNM resolves both labels and returns the great-circle distance in
// nautical miles rounded to one decimal, or 0 when either is unknown.
func (t *CoordTable) DistanceNM(origin, destination string) float64 {
	from, ok := t.coords[ExtractICAO(origin)]
	if !ok {
		return 0
	}
	to, ok := t.coords[ExtractICAO(destination)]
	if !ok {
		return 0
	}
	return math.Round(haversineNM(from, to)*10) / 10
}

// ExtractICAO pulls an ICAO code out of a free-text location label. It tries
// an exact code, then a code before " - ", then the first code-shaped token,
// then a known heliport name. Unrecognized text is returned uppercased so
// table lookups simply miss.
func ExtractICAO(text string) string {
	text = strings.ToUpper(strings.TrimSpace(text))
	if icaoExact.MatchString(text) {
		return text
	}
	if before, _, found := strings.Cut(text, " - "); found {
		if code := strings.TrimSpace(before); icaoExact.MatchString(code) {
			return code
		}
	}
	if m := icaoInText.FindString(text); m != "" {
		return m
	}
	for name, icao := range nameToICAO {
		if strings.Contains(text, name) {
			return icao
		}
	}
	return text
}

// haversineNM computes the great-circle distance in nautical miles.
func haversineNM(a, b Coord) float64 {
	const earthRadiusKM = 6371.0
	const kmPerNM = 1.852

	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Asin(math.Sqrt(h))
	return c * earthRadiusKM / kmPerNM
}
