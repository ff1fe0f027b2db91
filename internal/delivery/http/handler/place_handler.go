package handler

import (
	"net/http"

	"github.com/Moraarn/sistercheck/internal/service"
	"github.com/Moraarn/sistercheck/pkg/response"
)

type PlaceHandler struct {
	places service.PlacesClient
}

func NewPlaceHandler(places service.PlacesClient) *PlaceHandler {
	return &PlaceHandler{places: places}
}

// Nearby finds hospitals or clinics around the given coordinates.
func (h *PlaceHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")
	if location == "" {
		response.BadRequest(w, "The location query parameter is required, format 'lat,lng'")
		return
	}

	radius := r.URL.Query().Get("radius")
	if radius == "" {
		radius = "5000"
	}
	placeType := r.URL.Query().Get("type")
	if placeType == "" {
		placeType = "hospital"
	}

	places, err := h.places.SearchNearby(r.Context(), location, radius, placeType)
	if err != nil {
		if err == service.ErrMapsKeyMissing {
			response.ServiceUnavailable(w, "Places search is not configured")
			return
		}
		response.Error(w, http.StatusBadGateway, "Failed to search nearby places", nil)
		return
	}
	response.Success(w, http.StatusOK, "Places retrieved successfully", response.M{
		"places": places,
		"count":  len(places),
	})
}
