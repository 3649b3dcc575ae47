package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	catalogservice "github.com/safarly/backend/internal/service/catalog"
	"github.com/safarly/backend/pkg/utils"
)

// Handler serves the marketing content API.
type Handler struct {
	catalog *catalogservice.Service
}

// New creates the catalog handler.
func New(catalog *catalogservice.Service) *Handler {
	return &Handler{catalog: catalog}
}

// RegisterRoutes mounts the content routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/packages", h.handleListPackages)
	r.Get("/flights", h.handleListFlights)
	r.Get("/visas", h.handleListVisas)
	r.Get("/pages/{slug}", h.handleGetPage)
	r.Get("/seo", h.handleListSEO)
}

func (h *Handler) handleListPackages(w http.ResponseWriter, r *http.Request) {
	filter := catalogservice.PackageFilter{
		Destination: r.URL.Query().Get("destination"),
		Featured:    r.URL.Query().Get("featured") == "true",
	}

	if raw := r.URL.Query().Get("maxPrice"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			utils.RespondFailure(w, http.StatusBadRequest, "invalid maxPrice")
			return
		}
		filter.MaxPrice = price
	}

	utils.RespondData(w, http.StatusOK, h.catalog.Packages(filter))
}

func (h *Handler) handleListFlights(w http.ResponseWriter, r *http.Request) {
	filter := catalogservice.FlightFilter{
		From:    r.URL.Query().Get("from"),
		To:      r.URL.Query().Get("to"),
		Airline: r.URL.Query().Get("airline"),
	}
	utils.RespondData(w, http.StatusOK, h.catalog.Flights(filter))
}

func (h *Handler) handleListVisas(w http.ResponseWriter, r *http.Request) {
	filter := catalogservice.VisaFilter{
		Country: r.URL.Query().Get("country"),
		Type:    r.URL.Query().Get("type"),
	}
	utils.RespondData(w, http.StatusOK, h.catalog.Visas(filter))
}

func (h *Handler) handleGetPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	page, ok := h.catalog.PageBySlug(slug)
	if !ok {
		utils.RespondFailure(w, http.StatusNotFound, "page not found")
		return
	}
	utils.RespondData(w, http.StatusOK, page)
}

func (h *Handler) handleListSEO(w http.ResponseWriter, r *http.Request) {
	utils.RespondData(w, http.StatusOK, h.catalog.SEO())
}
