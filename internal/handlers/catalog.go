package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	domain "github.com/eduaccess/api/internal/domain"
	"github.com/eduaccess/api/internal/payments"
	"github.com/eduaccess/api/internal/platform/httpx"
	"github.com/eduaccess/api/internal/repositories"
	"github.com/eduaccess/api/internal/services"
)

const maxCatalogRequestBody = 16 * 1024

// CatalogHandlers exposes the content catalog endpoints.
type CatalogHandlers struct {
	catalog services.CatalogService
}

// NewCatalogHandlers constructs catalog handlers.
func NewCatalogHandlers(catalog services.CatalogService) *CatalogHandlers {
	return &CatalogHandlers{catalog: catalog}
}

// Routes registers catalog endpoints under the provided router.
func (h *CatalogHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.list)
	r.Post("/", h.add)
	r.Get("/categories", h.categories)
	r.Get("/{itemID}", h.get)
	r.Get("/{itemID}/download", h.download)
}

type contentItemResponse struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Category    string   `json:"category"`
	Price       int64    `json:"price"`
	PriceLabel  string   `json:"priceLabel"`
	Free        bool     `json:"free"`
	Regions     []string `json:"regions,omitempty"`
	Priority    bool     `json:"priority"`
	Size        string   `json:"size,omitempty"`
	Duration    string   `json:"duration,omitempty"`
}

type addContentRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Type        string      `json:"type"`
	Category    string      `json:"category"`
	Price       json.Number `json:"price"`
	Regions     []string    `json:"regions"`
	Size        string      `json:"size"`
	Duration    string      `json:"duration"`
}

func (h *CatalogHandlers) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.catalog == nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", "catalog service unavailable", http.StatusServiceUnavailable))
		return
	}

	query := r.URL.Query()
	filter := services.ContentFilter{
		Search:   query.Get("search"),
		Kind:     query.Get("type"),
		Category: query.Get("category"),
		Region:   query.Get("region"),
	}

	items, err := h.catalog.List(ctx, filter)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_list_failed", "failed to list catalog", http.StatusInternalServerError))
		return
	}

	responses := make([]contentItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toContentItemResponse(item))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items":  responses,
		"region": strings.TrimSpace(filter.Region),
	})
}

func (h *CatalogHandlers) get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := parseItemID(w, r)
	if !ok {
		return
	}
	item, err := h.catalog.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrContentNotFound) {
			httpx.WriteError(ctx, w, httpx.NewError("content_not_found", "content item not found", http.StatusNotFound))
			return
		}
		httpx.WriteError(ctx, w, httpx.NewError("catalog_get_failed", "failed to load content item", http.StatusInternalServerError))
		return
	}
	writeJSON(w, http.StatusOK, toContentItemResponse(item))
}

func (h *CatalogHandlers) add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := readLimitedBody(r, maxCatalogRequestBody)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errBodyTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), status))
		return
	}

	var req addContentRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be valid JSON", http.StatusBadRequest))
		return
	}

	item, err := h.catalog.Add(ctx, domain.NewContentItem{
		Title:       req.Title,
		Description: req.Description,
		Kind:        domain.ContentKind(strings.ToLower(strings.TrimSpace(req.Type))),
		Category:    req.Category,
		Price:       priceToMinorUnits(req.Price),
		Regions:     req.Regions,
		SizeLabel:   req.Size,
		Duration:    req.Duration,
	})
	if err != nil {
		if errors.Is(err, services.ErrCatalogTitleRequired) {
			httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "title is required", http.StatusBadRequest))
			return
		}
		httpx.WriteError(ctx, w, httpx.NewError("catalog_add_failed", "failed to add content item", http.StatusInternalServerError))
		return
	}
	writeJSON(w, http.StatusCreated, toContentItemResponse(item))
}

func (h *CatalogHandlers) categories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	categories, err := h.catalog.Categories(ctx)
	if err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("catalog_categories_failed", "failed to list categories", http.StatusInternalServerError))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (h *CatalogHandlers) download(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := parseItemID(w, r)
	if !ok {
		return
	}
	item, err := h.catalog.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrContentNotFound) {
			httpx.WriteError(ctx, w, httpx.NewError("content_not_found", "content item not found", http.StatusNotFound))
			return
		}
		httpx.WriteError(ctx, w, httpx.NewError("catalog_get_failed", "failed to load content item", http.StatusInternalServerError))
		return
	}
	if !item.Free() {
		httpx.WriteError(ctx, w, httpx.NewError("payment_required", "paid items must go through checkout", http.StatusPaymentRequired))
		return
	}

	artifact := services.DownloadManifest(item)
	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+artifact.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(artifact.Body))
}

func parseItemID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "itemID")
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", "item id must be a positive integer", http.StatusBadRequest))
		return 0, false
	}
	return id, true
}

// priceToMinorUnits converts a major-unit decimal price into minor units.
// Malformed or negative values coerce to zero, the free sentinel.
func priceToMinorUnits(value json.Number) int64 {
	if strings.TrimSpace(value.String()) == "" {
		return 0
	}
	major, err := value.Float64()
	if err != nil || math.IsNaN(major) || math.IsInf(major, 0) || major < 0 {
		return 0
	}
	return int64(math.Round(major * 100))
}

func toContentItemResponse(item domain.ContentItem) contentItemResponse {
	return contentItemResponse{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Type:        string(item.Kind),
		Category:    item.Category,
		Price:       item.Price,
		PriceLabel:  payments.FormatAmount(item.Price),
		Free:        item.Free(),
		Regions:     item.Regions,
		Priority:    item.Priority(),
		Size:        item.SizeLabel,
		Duration:    item.Duration,
	}
}
