package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"maharashtra-guide/models"
	"maharashtra-guide/repository"
	"maharashtra-guide/utils/geo"
)

type City struct {
	Name     string
	Location geo.Point
}

// MaharashtraCities are the positions handed out to guides that have none.
var MaharashtraCities = []City{
	{"Mumbai", geo.Point{Lat: 18.92, Lon: 72.83}},
	{"Pune", geo.Point{Lat: 18.52, Lon: 73.85}},
	{"Nashik", geo.Point{Lat: 19.99, Lon: 73.78}},
	{"Thane", geo.Point{Lat: 19.15, Lon: 72.82}},
	{"Latur", geo.Point{Lat: 18.40, Lon: 76.58}},
	{"Kolhapur", geo.Point{Lat: 16.70, Lon: 74.24}},
	{"Chandrapur", geo.Point{Lat: 20.12, Lon: 79.95}},
	{"Nagpur", geo.Point{Lat: 21.14, Lon: 79.08}},
	{"Ahmednagar", geo.Point{Lat: 19.09, Lon: 74.74}},
	{"Aurangabad", geo.Point{Lat: 19.87, Lon: 75.34}},
}

type BackfillResult struct {
	Fixed      int
	AlreadySet int
}

type GuideReport struct {
	Total           int
	WithLocation    int
	WithoutLocation int
}

func (r GuideReport) String() string {
	return fmt.Sprintf("%d guides: %d with location, %d without", r.Total, r.WithLocation, r.WithoutLocation)
}

// MaintenanceService repairs guide records written without coordinates.
type MaintenanceService struct {
	users  repository.UserRepository
	cities []City
	now    func() time.Time
}

func NewMaintenanceService(users repository.UserRepository) *MaintenanceService {
	return &MaintenanceService{users: users, cities: MaharashtraCities, now: time.Now}
}

// BackfillGuideLocations assigns the cities round-robin to every guide that
// lacks usable coordinates. Guides that already have them are untouched.
func (s *MaintenanceService) BackfillGuideLocations(ctx context.Context) (BackfillResult, error) {
	var result BackfillResult
	guides, err := s.users.FindByType(ctx, models.UserTypeGuide)
	if err != nil {
		return result, err
	}

	at := s.now().UTC()
	for _, g := range guides {
		if _, _, ok := g.Location(); ok {
			result.AlreadySet++
			continue
		}
		city := s.cities[result.Fixed%len(s.cities)]
		if err := s.users.UpdateLocation(ctx, g.ID, city.Location.Lat, city.Location.Lon, at); err != nil {
			return result, fmt.Errorf("backfill guide %s: %w", g.ID, err)
		}
		log.Printf("Assigned %s to guide %s (%s)", city.Name, g.ID, g.Username)
		result.Fixed++
	}
	return result, nil
}

func (s *MaintenanceService) GuideReport(ctx context.Context) (GuideReport, error) {
	var report GuideReport
	guides, err := s.users.FindByType(ctx, models.UserTypeGuide)
	if err != nil {
		return report, err
	}
	for _, g := range guides {
		report.Total++
		if _, _, ok := g.Location(); ok {
			report.WithLocation++
		} else {
			report.WithoutLocation++
		}
	}
	return report, nil
}
