package catalog

import (
	"strings"

	"github.com/safarly/backend/internal/model/catalog"
)

// Service serves the marketing catalogue from in-memory arrays. Everything
// resets on process restart; there is no datastore behind it.
type Service struct {
	packages []catalog.TravelPackage
	flights  []catalog.Flight
	visas    []catalog.VisaService
	pages    []catalog.Page
	seo      []catalog.SEOEntry
}

// NewService bootstraps the catalogue from the seed arrays.
func NewService() *Service {
	return &Service{
		packages: catalog.SeedPackages(),
		flights:  catalog.SeedFlights(),
		visas:    catalog.SeedVisaServices(),
		pages:    catalog.SeedPages(),
		seo:      catalog.SeedSEO(),
	}
}

// PackageFilter narrows the package listing. Zero values match everything.
type PackageFilter struct {
	Destination string
	MaxPrice    float64
	Featured    bool
}

// Packages returns packages matching the filter.
func (s *Service) Packages(filter PackageFilter) []catalog.TravelPackage {
	out := make([]catalog.TravelPackage, 0, len(s.packages))
	for _, p := range s.packages {
		if filter.Destination != "" && !strings.EqualFold(p.Destination, filter.Destination) {
			continue
		}
		if filter.MaxPrice > 0 && p.PriceUSD > filter.MaxPrice {
			continue
		}
		if filter.Featured && !p.Featured {
			continue
		}
		out = append(out, p)
	}
	return out
}

// FlightFilter narrows the flight listing.
type FlightFilter struct {
	From    string
	To      string
	Airline string
}

// Flights returns flights matching the filter.
func (s *Service) Flights(filter FlightFilter) []catalog.Flight {
	out := make([]catalog.Flight, 0, len(s.flights))
	for _, f := range s.flights {
		if filter.From != "" && !strings.EqualFold(f.From, filter.From) {
			continue
		}
		if filter.To != "" && !strings.EqualFold(f.To, filter.To) {
			continue
		}
		if filter.Airline != "" && !strings.EqualFold(f.Airline, filter.Airline) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// VisaFilter narrows the visa-service listing.
type VisaFilter struct {
	Country string
	Type    string
}

// Visas returns visa services matching the filter.
func (s *Service) Visas(filter VisaFilter) []catalog.VisaService {
	out := make([]catalog.VisaService, 0, len(s.visas))
	for _, v := range s.visas {
		if filter.Country != "" && !strings.EqualFold(v.Country, filter.Country) {
			continue
		}
		if filter.Type != "" && !strings.EqualFold(v.Type, filter.Type) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// PageBySlug fetches a static page.
func (s *Service) PageBySlug(slug string) (catalog.Page, bool) {
	for _, page := range s.pages {
		if page.Slug == slug {
			return page, true
		}
	}
	return catalog.Page{}, false
}

// SEO returns the head-tag metadata table.
func (s *Service) SEO() []catalog.SEOEntry {
	return append([]catalog.SEOEntry(nil), s.seo...)
}
