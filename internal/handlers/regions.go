package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	domain "github.com/eduaccess/api/internal/domain"
	"github.com/eduaccess/api/internal/platform/httpx"
	"github.com/eduaccess/api/internal/services"
)

// RegionHandlers serves region profile lookups.
type RegionHandlers struct {
	regions services.RegionService
}

// NewRegionHandlers constructs region handlers.
func NewRegionHandlers(regions services.RegionService) *RegionHandlers {
	return &RegionHandlers{regions: regions}
}

// Routes registers region endpoints under the provided router.
func (h *RegionHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/{regionID}", h.get)
}

type regionProfileResponse struct {
	Region                string   `json:"region"`
	Challenges            []string `json:"challenges"`
	RecommendedCategories []string `json:"recommendedCategories"`
	Tier                  string   `json:"tier"`
}

func (h *RegionHandlers) get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.regions == nil {
		httpx.WriteError(ctx, w, httpx.NewError("regions_unavailable", "region service unavailable", http.StatusServiceUnavailable))
		return
	}

	regionID := strings.TrimSpace(chi.URLParam(r, "regionID"))
	profile := h.regions.Resolve(ctx, regionID)
	writeJSON(w, http.StatusOK, toRegionProfileResponse(profile))
}

func toRegionProfileResponse(profile domain.RegionProfile) regionProfileResponse {
	return regionProfileResponse{
		Region:                profile.RegionID,
		Challenges:            profile.Challenges,
		RecommendedCategories: profile.RecommendedCategories,
		Tier:                  string(profile.Tier),
	}
}
