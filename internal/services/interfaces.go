package services

import (
	"context"

	domain "github.com/eduaccess/api/internal/domain"
)

// FilterAll is the wildcard value that disables filtering on an axis.
const FilterAll = "all"

// ContentFilter carries the catalog query axes. Empty or "all" values
// short-circuit the corresponding predicate; all active predicates are
// ANDed.
type ContentFilter struct {
	Search   string
	Kind     string
	Category string
	Region   string
}

// CatalogService exposes the region-aware content catalog.
type CatalogService interface {
	// List filters the catalog and ranks the survivors for the region
	// named in the filter.
	List(ctx context.Context, filter ContentFilter) ([]domain.ContentItem, error)
	// Get returns a single item by id.
	Get(ctx context.Context, id int64) (domain.ContentItem, error)
	// Add sanitises the input, assigns a fresh id and appends the item.
	Add(ctx context.Context, input domain.NewContentItem) (domain.ContentItem, error)
	// Categories lists the distinct category facets.
	Categories(ctx context.Context) ([]string, error)
}

// RegionService resolves regional context profiles. Resolve is total:
// unknown regions yield the default profile, never an error.
type RegionService interface {
	Resolve(ctx context.Context, regionID string) domain.RegionProfile
}

// Detector is the external location detection collaborator. Production and
// test implementations differ only in what they return.
type Detector interface {
	Detect(ctx context.Context) (string, error)
}

// LocationService resolves and publishes the active region.
type LocationService interface {
	// Detect runs one detection attempt. Detection failure is absorbed by
	// substituting the caller-supplied fallback (or the configured default
	// when the caller supplies none); the returned region is always usable.
	Detect(ctx context.Context, fallback string) string
	// SetOverride bypasses detection; the override is authoritative until
	// the next Detect or SetOverride call.
	SetOverride(regionID string)
	// Current returns the most recently published region.
	Current() string
	// Subscribe registers an observer notified on every published region.
	Subscribe(fn func(region string))
}

// BeginCheckout carries the inputs for one checkout invocation. Platform is
// the client's declared platform string used for device classification.
type BeginCheckout struct {
	ItemID   int64
	Platform string
}

// PaymentInstructions carries the metadata a desktop client presents for
// manual out-of-band completion.
type PaymentInstructions struct {
	Amount        int64
	AmountLabel   string
	Currency      string
	PayeeAddress  string
	PayeeName     string
	TransactionID string
}

// CheckoutResult reports the dispatch decision for one checkout attempt.
// Exactly one of Artifact (free path) or Payment (paid path) is set.
type CheckoutResult struct {
	IntentID       string
	State          domain.PaymentState
	TransactionID  string
	DeviceClass    domain.DeviceClass
	PaymentLink    string
	WebFallbackURL string
	Payment        *PaymentInstructions
	Artifact       *domain.DownloadArtifact
}

// CheckoutService drives the payment dispatch state machine.
type CheckoutService interface {
	// Begin creates a payment intent and runs the dispatch decision.
	Begin(ctx context.Context, cmd BeginCheckout) (CheckoutResult, error)
	// Status returns the live intent; terminal intents are discarded and
	// report ErrIntentNotFound.
	Status(ctx context.Context, intentID string) (domain.PaymentIntent, error)
	// Confirm records the user's out-of-band answer to the mobile fallback
	// prompt: affirmative resolves the intent, negative abandons it.
	Confirm(ctx context.Context, intentID string, confirmed bool) (domain.PaymentState, error)
	// Acknowledge records the desktop user dismissing the payment
	// presentation, resolving the intent.
	Acknowledge(ctx context.Context, intentID string) (domain.PaymentState, error)
	// Cancel abandons a non-terminal intent.
	Cancel(ctx context.Context, intentID string) (domain.PaymentState, error)
}
