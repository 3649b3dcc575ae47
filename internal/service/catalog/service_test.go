package catalog

import "testing"

func TestPackagesFilterByDestination(t *testing.T) {
	svc := NewService()

	got := svc.Packages(PackageFilter{Destination: "istanbul"})
	if len(got) != 1 {
		t.Fatalf("expected 1 Istanbul package, got %d", len(got))
	}
	if got[0].Destination != "Istanbul" {
		t.Fatalf("unexpected destination: %s", got[0].Destination)
	}
}

func TestPackagesFilterByMaxPrice(t *testing.T) {
	svc := NewService()

	got := svc.Packages(PackageFilter{MaxPrice: 700})
	for _, p := range got {
		if p.PriceUSD > 700 {
			t.Fatalf("package %s exceeds max price: %.0f", p.ID, p.PriceUSD)
		}
	}
	if len(got) == 0 {
		t.Fatal("expected at least one package under 700")
	}
}

func TestFlightsFilterByRoute(t *testing.T) {
	svc := NewService()

	got := svc.Flights(FlightFilter{From: "Riyadh", To: "Istanbul"})
	if len(got) != 1 {
		t.Fatalf("expected 1 flight, got %d", len(got))
	}

	if got := svc.Flights(FlightFilter{From: "Riyadh", To: "Tokyo"}); len(got) != 0 {
		t.Fatalf("expected no flights to Tokyo, got %d", len(got))
	}
}

func TestVisasFilterByCountryAndType(t *testing.T) {
	svc := NewService()

	got := svc.Visas(VisaFilter{Country: "turkey", Type: "tourist"})
	if len(got) != 1 {
		t.Fatalf("expected 1 visa service, got %d", len(got))
	}
}

func TestPageBySlug(t *testing.T) {
	svc := NewService()

	if _, ok := svc.PageBySlug("about"); !ok {
		t.Fatal("about page missing")
	}
	if _, ok := svc.PageBySlug("nope"); ok {
		t.Fatal("unexpected page for unknown slug")
	}
}
