package catalog

// TravelPackage is a bookable tour offering.
type TravelPackage struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	LocalTitle  string   `json:"localTitle"`
	Destination string   `json:"destination"`
	Nights      int      `json:"nights"`
	PriceUSD    float64  `json:"priceUsd"`
	Highlights  []string `json:"highlights,omitempty"`
	Featured    bool     `json:"featured"`
}

// Flight is a marketed route with an indicative fare.
type Flight struct {
	ID       string  `json:"id"`
	Airline  string  `json:"airline"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	Departs  string  `json:"departs"` // local time, HH:MM
	PriceUSD float64 `json:"priceUsd"`
	Direct   bool    `json:"direct"`
}

// VisaService describes an assisted visa-application offering.
type VisaService struct {
	ID             string   `json:"id"`
	Country        string   `json:"country"`
	Type           string   `json:"type"` // tourist, business, transit
	ProcessingDays int      `json:"processingDays"`
	FeeUSD         float64  `json:"feeUsd"`
	Requirements   []string `json:"requirements,omitempty"`
}

// Page holds static marketing copy served by slug.
type Page struct {
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	UpdatedAt string `json:"updatedAt"`
}

// SEOEntry carries per-route metadata for the frontend head tags.
type SEOEntry struct {
	Route       string `json:"route"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords,omitempty"`
}
