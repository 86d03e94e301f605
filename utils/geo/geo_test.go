package geo

import (
	"math"
	"testing"

	"maharashtra-guide/models"
)

var (
	mumbai = Point{Lat: 18.92, Lon: 72.83}
	pune   = Point{Lat: 18.52, Lon: 73.85}
	nagpur = Point{Lat: 21.14, Lon: 79.08}
)

func guide(id string, lat, lon string) models.User {
	return models.User{
		ID:               id,
		Username:         id,
		UserType:         models.UserTypeGuide,
		CurrentLatitude:  models.ParseDegrees(lat),
		CurrentLongitude: models.ParseDegrees(lon),
	}
}

func TestHaversineSamePointIsZero(t *testing.T) {
	for _, p := range []Point{mumbai, pune, nagpur, {0, 0}, {-33.86, 151.21}} {
		if d := Haversine(p, p); d != 0 {
			t.Fatalf("Haversine(%v, %v) = %v, want 0", p, p, d)
		}
	}
}

func TestHaversineSymmetric(t *testing.T) {
	pairs := [][2]Point{
		{mumbai, pune},
		{pune, nagpur},
		{mumbai, nagpur},
		{{Lat: -45, Lon: 170}, {Lat: 60, Lon: -20}},
	}
	for _, pr := range pairs {
		ab := Haversine(pr[0], pr[1])
		ba := Haversine(pr[1], pr[0])
		if ab != ba {
			t.Fatalf("Haversine not symmetric for %v: %v != %v", pr, ab, ba)
		}
	}
}

func TestHaversineKnownDistances(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Point
		min, max float64
	}{
		{"pune-mumbai", pune, mumbai, 110, 130},
		{"pune-nagpur", pune, nagpur, 600, 750},
		{"quarter meridian", Point{0, 0}, Point{90, 0}, 10007, 10008},
		{"antipodes on equator", Point{0, 0}, Point{0, 180}, 20015, 20016},
		{"antipodes near pole", Point{-89.26, -180}, Point{89.26, 0}, 20015, 20016},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Haversine(tt.a, tt.b)
			if d < tt.min || d > tt.max {
				t.Fatalf("Haversine = %v, want within [%v, %v]", d, tt.min, tt.max)
			}
		})
	}
}

func TestHaversineAntipodesAreFinite(t *testing.T) {
	halfCircumference := math.Pi * EarthRadiusKm
	for lat := -60.0; lat <= 60.0; lat += 0.01 {
		a := Point{Lat: lat, Lon: -180}
		b := Point{Lat: -lat, Lon: 0}
		d := Haversine(a, b)
		if math.IsNaN(d) || math.Abs(d-halfCircumference) > 0.01 {
			t.Fatalf("Haversine(%v, %v) = %v, want %v", a, b, d, halfCircumference)
		}
	}
}

func TestNearestGuidesExcludesAntipodalGuide(t *testing.T) {
	origin := Point{Lat: -89.25999999999999, Lon: -180}
	got := NearestGuides(origin, []models.User{guide("g-far", "89.26", "0")}, 50)
	if len(got) != 0 {
		t.Fatalf("NearestGuides = %+v, want no guides", got)
	}
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		lat, lon string
		wantErr  bool
	}{
		{"18.52", "73.85", false},
		{" -90 ", "180", false},
		{"", "73.85", true},
		{"18.52", "", true},
		{"abc", "73.85", true},
		{"18.52", "east", true},
		{"NaN", "73.85", true},
		{"18.52", "Inf", true},
		{"91", "73.85", true},
		{"18.52", "-181", true},
	}
	for _, tt := range tests {
		_, err := ParsePoint(tt.lat, tt.lon)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParsePoint(%q, %q) error = %v, wantErr %v", tt.lat, tt.lon, err, tt.wantErr)
		}
	}
}

func TestNearestGuidesScenario(t *testing.T) {
	candidates := []models.User{
		guide("mumbai", "18.92", "72.83"),
		guide("pune", "18.52", "73.85"),
		guide("nagpur", "21.14", "79.08"),
	}

	got := NearestGuides(pune, candidates, 50)
	if len(got) != 1 || got[0].ID != "pune" {
		t.Fatalf("NearestGuides(radius 50) = %+v, want only pune", got)
	}
	if got[0].Distance != 0 {
		t.Fatalf("pune distance = %v, want 0", got[0].Distance)
	}

	got = NearestGuides(pune, candidates, 150)
	if len(got) != 2 || got[0].ID != "pune" || got[1].ID != "mumbai" {
		t.Fatalf("NearestGuides(radius 150) = %+v, want pune then mumbai", got)
	}
	if got[1].Distance < 110 || got[1].Distance > 150 {
		t.Fatalf("mumbai distance = %v, want 110..150", got[1].Distance)
	}
}

func TestNearestGuidesOrderedAndWithinRadius(t *testing.T) {
	candidates := []models.User{
		guide("g1", "19.99", "73.78"),
		guide("g2", "19.15", "72.82"),
		guide("g3", "18.40", "76.58"),
		guide("g4", "16.70", "74.24"),
		guide("g5", "20.12", "79.95"),
		guide("g6", "19.09", "74.74"),
		guide("g7", "19.87", "75.34"),
	}
	const radius = 300.0
	got := NearestGuides(pune, candidates, radius)
	if len(got) == 0 {
		t.Fatalf("NearestGuides returned nothing")
	}
	for i, g := range got {
		if g.Distance > radius {
			t.Fatalf("entry %d distance %v exceeds radius %v", i, g.Distance, radius)
		}
		if i > 0 && got[i-1].Distance > g.Distance {
			t.Fatalf("entries %d and %d out of order: %v > %v", i-1, i, got[i-1].Distance, g.Distance)
		}
	}
}

func TestNearestGuidesSkipsUnusableCoordinates(t *testing.T) {
	candidates := []models.User{
		guide("no-lat", "", "73.85"),
		guide("no-lon", "18.52", ""),
		guide("text", "north", "73.85"),
		guide("nan", "NaN", "73.85"),
		guide("ok", "18.52", "73.85"),
	}
	for _, origin := range []Point{pune, mumbai, {0, 0}} {
		got := NearestGuides(origin, candidates, math.MaxFloat64)
		if len(got) != 1 || got[0].ID != "ok" {
			t.Fatalf("NearestGuides(%v) = %+v, want only ok", origin, got)
		}
	}
}

func TestNearestGuidesTiesBrokenByID(t *testing.T) {
	candidates := []models.User{
		guide("c", "18.52", "73.85"),
		guide("a", "18.52", "73.85"),
		guide("b", "18.52", "73.85"),
	}
	got := NearestGuides(pune, candidates, 50)
	if len(got) != 3 || got[0].ID != "a" || got[1].ID != "b" || got[2].ID != "c" {
		t.Fatalf("tie order = %v %v %v, want a b c", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestNearestGuidesDeterministic(t *testing.T) {
	candidates := []models.User{
		guide("mumbai", "18.92", "72.83"),
		guide("pune", "18.52", "73.85"),
		guide("thane", "19.15", "72.82"),
	}
	first := NearestGuides(pune, candidates, 200)
	second := NearestGuides(pune, candidates, 200)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].Distance != second[i].Distance {
			t.Fatalf("entry %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestNearestGuidesEmptyIsNotNil(t *testing.T) {
	if got := NearestGuides(pune, nil, 50); got == nil || len(got) != 0 {
		t.Fatalf("NearestGuides(nil) = %#v, want empty non-nil slice", got)
	}
}
