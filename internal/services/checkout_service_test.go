package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	domain "github.com/eduaccess/api/internal/domain"
	"github.com/eduaccess/api/internal/payments"
)

const (
	androidUA = "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Mobile Safari/537.36"
	desktopUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

type checkoutFixture struct {
	svc      CheckoutService
	fallback func()
}

func newCheckoutFixture(t *testing.T, items []domain.ContentItem, onPrompt func(domain.PaymentIntent)) *checkoutFixture {
	t.Helper()

	repo := &stubCatalogRepository{
		getFunc: func(_ context.Context, id int64) (domain.ContentItem, error) {
			for _, item := range items {
				if item.ID == id {
					return item, nil
				}
			}
			return domain.ContentItem{}, errors.New("not found")
		},
	}

	fixture := &checkoutFixture{}
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc, err := NewCheckoutService(CheckoutServiceDeps{
		Catalog: repo,
		Link: payments.LinkBuilder{
			Scheme:          "upi",
			PayeeAddress:    "eduaccess@ybl",
			PayeeName:       "EduAccess",
			Currency:        "INR",
			WebFallbackBase: "https://pay.eduaccess.example/ru_",
		},
		ConfirmFallbackDelay: 2500 * time.Millisecond,
		Clock:                func() time.Time { return now },
		Timer: func(_ time.Duration, fn func()) *time.Timer {
			// Captured instead of scheduled so tests fire the fallback
			// deterministically.
			fixture.fallback = fn
			return time.NewTimer(time.Hour)
		},
		OnPrompt: onPrompt,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fixture.svc = svc
	return fixture
}

func freeItem() domain.ContentItem {
	return domain.ContentItem{
		ID:          7,
		Title:       "Intro Guide",
		Description: "Free educational materials on human rights",
		Kind:        domain.KindDocument,
		Category:    "Education",
		Price:       0,
		Regions:     []string{"Syria", "Sudan"},
	}
}

func paidItem() domain.ContentItem {
	return domain.ContentItem{
		ID:          3,
		Title:       "English Learning Course - Offline",
		Kind:        domain.KindVideo,
		Category:    "Language",
		Price:       1299,
		Regions:     []string{"China", "North Korea", "Cuba"},
	}
}

func TestCheckoutFreeItemNeverBuildsPaymentLink(t *testing.T) {
	fixture := newCheckoutFixture(t, []domain.ContentItem{freeItem()}, nil)

	result, err := fixture.svc.Begin(context.Background(), BeginCheckout{ItemID: 7, Platform: androidUA})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.State != domain.PaymentFreeFulfilled {
		t.Fatalf("expected free_fulfilled, got %q", result.State)
	}
	if result.PaymentLink != "" || result.Payment != nil {
		t.Fatal("free path must not construct a payment link")
	}
	if result.Artifact == nil {
		t.Fatal("free path must produce a download artifact")
	}
	if result.Artifact.Filename != "intro_guide.txt" {
		t.Fatalf("unexpected artifact filename %q", result.Artifact.Filename)
	}
	if !strings.Contains(result.Artifact.Body, "Intro Guide") ||
		!strings.Contains(result.Artifact.Body, "Free educational materials on human rights") {
		t.Fatal("artifact must carry title and description verbatim")
	}

	// Terminal immediately: the intent is discarded, not stored.
	if _, err := fixture.svc.Status(context.Background(), result.IntentID); !errors.Is(err, ErrIntentNotFound) {
		t.Fatalf("expected ErrIntentNotFound, got %v", err)
	}
}

func TestCheckoutPaidMobileFlow(t *testing.T) {
	var prompted []domain.PaymentIntent
	fixture := newCheckoutFixture(t, []domain.ContentItem{paidItem()}, func(intent domain.PaymentIntent) {
		prompted = append(prompted, intent)
	})
	ctx := context.Background()

	result, err := fixture.svc.Begin(ctx, BeginCheckout{ItemID: 3, Platform: androidUA})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.State != domain.PaymentLinkDispatched {
		t.Fatalf("expected link_dispatched, got %q", result.State)
	}
	if result.DeviceClass != domain.DeviceMobile {
		t.Fatalf("expected mobile device class, got %q", result.DeviceClass)
	}
	if !strings.HasPrefix(result.PaymentLink, "upi://pay?pa=eduaccess%40ybl") {
		t.Fatalf("unexpected payment link %q", result.PaymentLink)
	}
	if !strings.Contains(result.PaymentLink, "&am=12.99&cu=INR&tr="+result.TransactionID) {
		t.Fatalf("payment link missing amount or transaction id: %q", result.PaymentLink)
	}
	if result.WebFallbackURL != "https://pay.eduaccess.example/ru_"+result.TransactionID {
		t.Fatalf("unexpected web fallback %q", result.WebFallbackURL)
	}
	if fixture.fallback == nil {
		t.Fatal("mobile branch must arm the fallback timer")
	}

	// Timer elapses without the app intercepting the navigation.
	fixture.fallback()
	intent, err := fixture.svc.Status(ctx, result.IntentID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if intent.State != domain.PaymentConfirmPending {
		t.Fatalf("expected confirm_pending, got %q", intent.State)
	}
	if len(prompted) != 1 || prompted[0].ID != result.IntentID {
		t.Fatalf("prompt hook not invoked: %+v", prompted)
	}

	state, err := fixture.svc.Confirm(ctx, result.IntentID, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != domain.PaymentResolved {
		t.Fatalf("expected resolved, got %q", state)
	}
	if _, err := fixture.svc.Status(ctx, result.IntentID); !errors.Is(err, ErrIntentNotFound) {
		t.Fatal("terminal intent must be discarded")
	}
}

func TestCheckoutMobileNegativeConfirmationAbandons(t *testing.T) {
	fixture := newCheckoutFixture(t, []domain.ContentItem{paidItem()}, nil)
	ctx := context.Background()

	result, err := fixture.svc.Begin(ctx, BeginCheckout{ItemID: 3, Platform: androidUA})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fixture.fallback()

	state, err := fixture.svc.Confirm(ctx, result.IntentID, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != domain.PaymentAbandoned {
		t.Fatalf("expected abandoned, got %q", state)
	}
}

func TestCheckoutPaidDesktopFlow(t *testing.T) {
	fixture := newCheckoutFixture(t, []domain.ContentItem{paidItem()}, nil)
	ctx := context.Background()

	result, err := fixture.svc.Begin(ctx, BeginCheckout{ItemID: 3, Platform: desktopUA})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.DeviceClass != domain.DeviceDesktop {
		t.Fatalf("expected desktop device class, got %q", result.DeviceClass)
	}
	if fixture.fallback != nil {
		t.Fatal("desktop branch must not arm the fallback timer")
	}
	if result.Payment == nil {
		t.Fatal("desktop branch must present payment metadata")
	}
	if result.Payment.AmountLabel != "12.99" || result.Payment.PayeeAddress != "eduaccess@ybl" {
		t.Fatalf("unexpected payment instructions %+v", result.Payment)
	}

	state, err := fixture.svc.Acknowledge(ctx, result.IntentID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != domain.PaymentResolved {
		t.Fatalf("expected resolved, got %q", state)
	}
}

func TestCheckoutConfirmRejectsDesktopIntent(t *testing.T) {
	fixture := newCheckoutFixture(t, []domain.ContentItem{paidItem()}, nil)
	ctx := context.Background()

	result, _ := fixture.svc.Begin(ctx, BeginCheckout{ItemID: 3, Platform: desktopUA})
	if _, err := fixture.svc.Confirm(ctx, result.IntentID, true); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestCheckoutCancelAbandonsBeforeResolution(t *testing.T) {
	fixture := newCheckoutFixture(t, []domain.ContentItem{paidItem()}, nil)
	ctx := context.Background()

	result, _ := fixture.svc.Begin(ctx, BeginCheckout{ItemID: 3, Platform: androidUA})
	state, err := fixture.svc.Cancel(ctx, result.IntentID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != domain.PaymentAbandoned {
		t.Fatalf("expected abandoned, got %q", state)
	}

	// A cancelled intent is gone; re-invoking checkout creates a fresh one.
	if _, err := fixture.svc.Cancel(ctx, result.IntentID); !errors.Is(err, ErrIntentNotFound) {
		t.Fatalf("expected ErrIntentNotFound, got %v", err)
	}
}

func TestCheckoutTransactionIDsDistinctForSequentialAttempts(t *testing.T) {
	fixture := newCheckoutFixture(t, []domain.ContentItem{paidItem()}, nil)
	ctx := context.Background()

	// The clock is frozen; distinctness must come from the dispatcher.
	first, err := fixture.svc.Begin(ctx, BeginCheckout{ItemID: 3, Platform: desktopUA})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := fixture.svc.Begin(ctx, BeginCheckout{ItemID: 3, Platform: desktopUA})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.TransactionID == second.TransactionID {
		t.Fatalf("transaction ids must differ, both were %q", first.TransactionID)
	}
	if !strings.HasPrefix(first.TransactionID, "TXN_") || !strings.HasSuffix(first.TransactionID, "_3") {
		t.Fatalf("unexpected transaction id format %q", first.TransactionID)
	}
}

func TestCheckoutUnknownItem(t *testing.T) {
	fixture := newCheckoutFixture(t, nil, nil)
	if _, err := fixture.svc.Begin(context.Background(), BeginCheckout{ItemID: 42}); err == nil {
		t.Fatal("expected error for unknown item")
	}
}
