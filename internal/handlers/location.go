package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/eduaccess/api/internal/platform/httpx"
	"github.com/eduaccess/api/internal/services"
)

const maxLocationRequestBody = 4 * 1024

// LocationHandlers serves region detection and override endpoints.
type LocationHandlers struct {
	location services.LocationService
	regions  services.RegionService
}

// NewLocationHandlers constructs location handlers. The region service is
// optional; when present the active profile is embedded in responses.
func NewLocationHandlers(location services.LocationService, regions services.RegionService) *LocationHandlers {
	return &LocationHandlers{location: location, regions: regions}
}

// Routes registers location endpoints under the provided router.
func (h *LocationHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.current)
	r.Post("/detect", h.detect)
	r.Put("/override", h.override)
}

type detectLocationRequest struct {
	Fallback string `json:"fallback"`
}

type overrideLocationRequest struct {
	Region string `json:"region"`
}

type locationResponse struct {
	Region  string                 `json:"region"`
	Profile *regionProfileResponse `json:"profile,omitempty"`
}

func (h *LocationHandlers) current(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.location == nil {
		httpx.WriteError(ctx, w, httpx.NewError("location_unavailable", "location service unavailable", http.StatusServiceUnavailable))
		return
	}
	h.writeLocation(w, r, h.location.Current())
}

func (h *LocationHandlers) detect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.location == nil {
		httpx.WriteError(ctx, w, httpx.NewError("location_unavailable", "location service unavailable", http.StatusServiceUnavailable))
		return
	}

	// The body is optional: a bare POST runs detection with the configured
	// fallback.
	var req detectLocationRequest
	body, err := readLimitedBody(r, maxLocationRequestBody)
	switch {
	case err == nil:
		if jsonErr := json.Unmarshal(body, &req); jsonErr != nil {
			httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be valid JSON", http.StatusBadRequest))
			return
		}
	case errors.Is(err, errEmptyBody):
		// fall through with zero-value request
	case errors.Is(err, errBodyTooLarge):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusRequestEntityTooLarge))
		return
	default:
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
		return
	}

	region := h.location.Detect(ctx, strings.TrimSpace(req.Fallback))
	h.writeLocation(w, r, region)
}

func (h *LocationHandlers) override(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.location == nil {
		httpx.WriteError(ctx, w, httpx.NewError("location_unavailable", "location service unavailable", http.StatusServiceUnavailable))
		return
	}

	body, err := readLimitedBody(r, maxLocationRequestBody)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errBodyTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), status))
		return
	}

	var req overrideLocationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be valid JSON", http.StatusBadRequest))
		return
	}
	region := strings.TrimSpace(req.Region)
	if region == "" {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "region is required", http.StatusBadRequest))
		return
	}

	h.location.SetOverride(region)
	h.writeLocation(w, r, region)
}

func (h *LocationHandlers) writeLocation(w http.ResponseWriter, r *http.Request, region string) {
	resp := locationResponse{Region: region}
	if h.regions != nil {
		profile := toRegionProfileResponse(h.regions.Resolve(r.Context(), region))
		resp.Profile = &profile
	}
	writeJSON(w, http.StatusOK, resp)
}
