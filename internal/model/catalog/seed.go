package catalog

// SeedPackages provides the marketing catalogue shown on the packages page.
func SeedPackages() []TravelPackage {
	return []TravelPackage{
		{ID: "pkg-istanbul-5n", Title: "Istanbul City Escape", LocalTitle: "رحلة اسطنبول", Destination: "Istanbul", Nights: 5, PriceUSD: 899, Highlights: []string{"Bosphorus cruise", "Grand Bazaar tour"}, Featured: true},
		{ID: "pkg-cairo-4n", Title: "Cairo & Giza Heritage", LocalTitle: "القاهرة والجيزة", Destination: "Cairo", Nights: 4, PriceUSD: 749, Highlights: []string{"Pyramids of Giza", "Nile dinner cruise"}, Featured: true},
		{ID: "pkg-dubai-3n", Title: "Dubai Weekend", LocalTitle: "عطلة دبي", Destination: "Dubai", Nights: 3, PriceUSD: 650, Highlights: []string{"Desert safari", "Burj Khalifa"}},
		{ID: "pkg-kuala-7n", Title: "Malaysia Explorer", LocalTitle: "جولة ماليزيا", Destination: "Kuala Lumpur", Nights: 7, PriceUSD: 1190, Highlights: []string{"Petronas Towers", "Langkawi island hop"}},
		{ID: "pkg-sarajevo-6n", Title: "Bosnia Highlands", LocalTitle: "مرتفعات البوسنة", Destination: "Sarajevo", Nights: 6, PriceUSD: 980, Highlights: []string{"Mostar bridge", "Vrelo Bosne springs"}},
		{ID: "pkg-baku-5n", Title: "Baku & Gabala", LocalTitle: "باكو وقبالا", Destination: "Baku", Nights: 5, PriceUSD: 870, Highlights: []string{"Old City", "Tufandag cable car"}},
	}
}

// SeedFlights provides the indicative route fares on the flights page.
func SeedFlights() []Flight {
	return []Flight{
		{ID: "fl-ruh-ist", Airline: "Turkish Airlines", From: "Riyadh", To: "Istanbul", Departs: "09:40", PriceUSD: 420, Direct: true},
		{ID: "fl-jed-cai", Airline: "EgyptAir", From: "Jeddah", To: "Cairo", Departs: "14:15", PriceUSD: 260, Direct: true},
		{ID: "fl-ruh-dxb", Airline: "Emirates", From: "Riyadh", To: "Dubai", Departs: "18:05", PriceUSD: 310, Direct: true},
		{ID: "fl-jed-kul", Airline: "Malaysia Airlines", From: "Jeddah", To: "Kuala Lumpur", Departs: "22:30", PriceUSD: 780, Direct: false},
		{ID: "fl-ruh-sjj", Airline: "Pegasus", From: "Riyadh", To: "Sarajevo", Departs: "06:20", PriceUSD: 540, Direct: false},
		{ID: "fl-dmm-gyd", Airline: "Azerbaijan Airlines", From: "Dammam", To: "Baku", Departs: "11:55", PriceUSD: 390, Direct: true},
	}
}

// SeedVisaServices provides the assisted visa offerings.
func SeedVisaServices() []VisaService {
	return []VisaService{
		{ID: "visa-tr-tour", Country: "Turkey", Type: "tourist", ProcessingDays: 5, FeeUSD: 95, Requirements: []string{"Passport valid 6 months", "Bank statement"}},
		{ID: "visa-my-tour", Country: "Malaysia", Type: "tourist", ProcessingDays: 7, FeeUSD: 80, Requirements: []string{"Passport copy", "Return ticket"}},
		{ID: "visa-az-tour", Country: "Azerbaijan", Type: "tourist", ProcessingDays: 3, FeeUSD: 60, Requirements: []string{"Passport copy"}},
		{ID: "visa-ba-tour", Country: "Bosnia", Type: "tourist", ProcessingDays: 10, FeeUSD: 110, Requirements: []string{"Passport valid 6 months", "Hotel booking"}},
		{ID: "visa-ae-biz", Country: "UAE", Type: "business", ProcessingDays: 4, FeeUSD: 150, Requirements: []string{"Invitation letter", "Company letter"}},
		{ID: "visa-eg-transit", Country: "Egypt", Type: "transit", ProcessingDays: 2, FeeUSD: 35},
	}
}

// SeedPages provides the static marketing pages.
func SeedPages() []Page {
	return []Page{
		{Slug: "about", Title: "About Safarly", Body: "Safarly curates halal-friendly travel packages across three continents.", UpdatedAt: "2026-05-01"},
		{Slug: "terms", Title: "Terms of Service", Body: "Bookings made through Safarly are subject to partner availability.", UpdatedAt: "2026-03-14"},
		{Slug: "contact", Title: "Contact Us", Body: "Reach our travel desk around the clock via the chat widget.", UpdatedAt: "2026-06-20"},
	}
}

// SeedSEO provides head-tag metadata keyed by frontend route.
func SeedSEO() []SEOEntry {
	return []SEOEntry{
		{Route: "/", Title: "Safarly — Travel Packages & Flights", Description: "Curated travel packages, flights and visa services.", Keywords: "travel, packages, flights, visa"},
		{Route: "/packages", Title: "Travel Packages | Safarly", Description: "Hand-picked tours with flights and hotels included."},
		{Route: "/flights", Title: "Flights | Safarly", Description: "Indicative fares on popular routes."},
		{Route: "/visa", Title: "Visa Services | Safarly", Description: "Assisted visa applications with clear requirements."},
	}
}
