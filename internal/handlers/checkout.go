package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/eduaccess/api/internal/platform/httpx"
	"github.com/eduaccess/api/internal/repositories"
	"github.com/eduaccess/api/internal/services"
)

const maxCheckoutRequestBody = 8 * 1024

// CheckoutHandlers drives the payment dispatch flow over HTTP.
type CheckoutHandlers struct {
	checkout services.CheckoutService
}

// NewCheckoutHandlers constructs checkout handlers.
func NewCheckoutHandlers(checkout services.CheckoutService) *CheckoutHandlers {
	return &CheckoutHandlers{checkout: checkout}
}

// Routes registers checkout endpoints under the provided router.
func (h *CheckoutHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.begin)
	r.Get("/{intentID}", h.status)
	r.Post("/{intentID}/confirm", h.confirm)
	r.Post("/{intentID}/acknowledge", h.acknowledge)
	r.Post("/{intentID}/cancel", h.cancel)
}

type beginCheckoutRequest struct {
	ItemID   int64  `json:"itemId"`
	Platform string `json:"platform"`
}

type confirmCheckoutRequest struct {
	Confirmed bool `json:"confirmed"`
}

type paymentInstructionsResponse struct {
	Amount        int64  `json:"amount"`
	AmountLabel   string `json:"amountLabel"`
	Currency      string `json:"currency"`
	PayeeAddress  string `json:"payeeAddress"`
	PayeeName     string `json:"payeeName"`
	TransactionID string `json:"transactionId"`
}

type downloadArtifactResponse struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type checkoutResultResponse struct {
	IntentID       string                       `json:"intentId"`
	State          string                       `json:"state"`
	TransactionID  string                       `json:"transactionId"`
	DeviceClass    string                       `json:"deviceClass,omitempty"`
	PaymentLink    string                       `json:"paymentLink,omitempty"`
	WebFallbackURL string                       `json:"webFallbackUrl,omitempty"`
	Payment        *paymentInstructionsResponse `json:"payment,omitempty"`
	Artifact       *downloadArtifactResponse    `json:"artifact,omitempty"`
}

type intentStatusResponse struct {
	IntentID      string `json:"intentId"`
	ItemID        int64  `json:"itemId"`
	Amount        int64  `json:"amount"`
	TransactionID string `json:"transactionId"`
	DeviceClass   string `json:"deviceClass"`
	State         string `json:"state"`
	CreatedAt     string `json:"createdAt"`
}

type transitionResponse struct {
	IntentID string `json:"intentId"`
	State    string `json:"state"`
}

func (h *CheckoutHandlers) begin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.checkout == nil {
		httpx.WriteError(ctx, w, httpx.NewError("checkout_unavailable", "checkout service unavailable", http.StatusServiceUnavailable))
		return
	}

	body, err := readLimitedBody(r, maxCheckoutRequestBody)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errBodyTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), status))
		return
	}

	var req beginCheckoutRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be valid JSON", http.StatusBadRequest))
		return
	}
	if req.ItemID <= 0 {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "itemId must be a positive integer", http.StatusBadRequest))
		return
	}
	platform := strings.TrimSpace(req.Platform)
	if platform == "" {
		platform = r.UserAgent()
	}

	result, err := h.checkout.Begin(ctx, services.BeginCheckout{ItemID: req.ItemID, Platform: platform})
	if err != nil {
		if errors.Is(err, repositories.ErrContentNotFound) {
			httpx.WriteError(ctx, w, httpx.NewError("content_not_found", "content item not found", http.StatusNotFound))
			return
		}
		httpx.WriteError(ctx, w, httpx.NewError("checkout_failed", "failed to begin checkout", http.StatusInternalServerError))
		return
	}
	writeJSON(w, http.StatusCreated, toCheckoutResultResponse(result))
}

func (h *CheckoutHandlers) status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	intentID := chi.URLParam(r, "intentID")
	intent, err := h.checkout.Status(ctx, intentID)
	if err != nil {
		h.writeTransitionError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, intentStatusResponse{
		IntentID:      intent.ID,
		ItemID:        intent.ItemID,
		Amount:        intent.Amount,
		TransactionID: intent.TransactionID,
		DeviceClass:   string(intent.DeviceClass),
		State:         string(intent.State),
		CreatedAt:     intent.CreatedAt.Format(time.RFC3339),
	})
}

func (h *CheckoutHandlers) confirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	intentID := chi.URLParam(r, "intentID")

	body, err := readLimitedBody(r, maxCheckoutRequestBody)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errBodyTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), status))
		return
	}
	var req confirmCheckoutRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be valid JSON", http.StatusBadRequest))
		return
	}

	state, err := h.checkout.Confirm(ctx, intentID, req.Confirmed)
	if err != nil {
		h.writeTransitionError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, transitionResponse{IntentID: intentID, State: string(state)})
}

func (h *CheckoutHandlers) acknowledge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	intentID := chi.URLParam(r, "intentID")
	state, err := h.checkout.Acknowledge(ctx, intentID)
	if err != nil {
		h.writeTransitionError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, transitionResponse{IntentID: intentID, State: string(state)})
}

func (h *CheckoutHandlers) cancel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	intentID := chi.URLParam(r, "intentID")
	state, err := h.checkout.Cancel(ctx, intentID)
	if err != nil {
		h.writeTransitionError(ctx, w, err)
		return
	}
	writeJSON(w, http.StatusOK, transitionResponse{IntentID: intentID, State: string(state)})
}

func (h *CheckoutHandlers) writeTransitionError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrIntentNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("intent_not_found", "payment intent not found", http.StatusNotFound))
	case errors.Is(err, services.ErrInvalidTransition):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_transition", "transition not allowed for this intent", http.StatusConflict))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("checkout_failed", "checkout operation failed", http.StatusInternalServerError))
	}
}

func toCheckoutResultResponse(result services.CheckoutResult) checkoutResultResponse {
	resp := checkoutResultResponse{
		IntentID:       result.IntentID,
		State:          string(result.State),
		TransactionID:  result.TransactionID,
		DeviceClass:    string(result.DeviceClass),
		PaymentLink:    result.PaymentLink,
		WebFallbackURL: result.WebFallbackURL,
	}
	if result.Payment != nil {
		resp.Payment = &paymentInstructionsResponse{
			Amount:        result.Payment.Amount,
			AmountLabel:   result.Payment.AmountLabel,
			Currency:      result.Payment.Currency,
			PayeeAddress:  result.Payment.PayeeAddress,
			PayeeName:     result.Payment.PayeeName,
			TransactionID: result.Payment.TransactionID,
		}
	}
	if result.Artifact != nil {
		resp.Artifact = &downloadArtifactResponse{
			Filename: result.Artifact.Filename,
			Content:  result.Artifact.Body,
		}
	}
	return resp
}
