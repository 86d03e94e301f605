package geo

import (
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"maharashtra-guide/models"
	"maharashtra-guide/utils/errors"
)

// EarthRadiusKm is the mean Earth radius used by Haversine.
const EarthRadiusKm = 6371.0

type Point struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// Haversine returns the great-circle distance in kilometres between a and b.
func Haversine(a, b Point) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := lat2 - lat1
	dLon := toRadians(b.Lon) - toRadians(a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	// Rounding can push h just outside [0, 1] for antipodal points.
	h = math.Min(1, math.Max(0, h))
	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// ValidatePoint rejects non-finite or out-of-range coordinates.
func ValidatePoint(p Point) error {
	if !finite(p.Lat) || !finite(p.Lon) {
		return errors.NewAPIError("INVALID_INPUT", "Latitude and longitude must be finite numbers", http.StatusBadRequest)
	}
	if p.Lat < -90 || p.Lat > 90 || p.Lon < -180 || p.Lon > 180 {
		return errors.NewAPIError("INVALID_INPUT", "Latitude must be within [-90, 90] and longitude within [-180, 180]", http.StatusBadRequest)
	}
	return nil
}

// ParsePoint parses a query point given as decimal-degree text.
func ParsePoint(latText, lonText string) (Point, error) {
	latText = strings.TrimSpace(latText)
	lonText = strings.TrimSpace(lonText)
	if latText == "" || lonText == "" {
		return Point{}, errors.NewAPIError("INVALID_INPUT", "Latitude and longitude are required", http.StatusBadRequest)
	}
	lat, err := strconv.ParseFloat(latText, 64)
	if err != nil {
		return Point{}, errors.NewAPIError("INVALID_INPUT", "Latitude must be a number", http.StatusBadRequest)
	}
	lon, err := strconv.ParseFloat(lonText, 64)
	if err != nil {
		return Point{}, errors.NewAPIError("INVALID_INPUT", "Longitude must be a number", http.StatusBadRequest)
	}
	p := Point{Lat: lat, Lon: lon}
	if err := ValidatePoint(p); err != nil {
		return Point{}, err
	}
	return p, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// NearestGuides annotates every candidate that has usable coordinates with
// its distance from origin, keeps those within radiusKm and orders them
// nearest first. Equal distances are ordered by record ID so the result
// depends only on the inputs.
func NearestGuides(origin Point, candidates []models.User, radiusKm float64) []models.NearbyGuide {
	nearby := make([]models.NearbyGuide, 0, len(candidates))
	for _, u := range candidates {
		lat, lon, ok := u.Location()
		if !ok {
			continue
		}
		d := Haversine(origin, Point{Lat: lat, Lon: lon})
		if !(d <= radiusKm) {
			continue
		}
		nearby = append(nearby, models.NearbyGuide{User: u, Distance: d})
	}

	sort.Slice(nearby, func(i, j int) bool {
		if nearby[i].Distance != nearby[j].Distance {
			return nearby[i].Distance < nearby[j].Distance
		}
		return nearby[i].ID < nearby[j].ID
	})
	return nearby
}
