package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	domain "github.com/eduaccess/api/internal/domain"
	"github.com/eduaccess/api/internal/payments"
	"github.com/eduaccess/api/internal/platform/observability"
	"github.com/eduaccess/api/internal/repositories"
)

// CheckoutServiceDeps bundles constructor inputs for the checkout service.
type CheckoutServiceDeps struct {
	Catalog repositories.CatalogRepository
	Link    payments.LinkBuilder
	// ConfirmFallbackDelay is how long the mobile branch waits for the
	// payment app to intercept the deep link before surfacing the manual
	// confirmation prompt.
	ConfirmFallbackDelay time.Duration
	Clock                func() time.Time
	// Timer schedules the fallback prompt; defaults to time.AfterFunc.
	Timer func(d time.Duration, fn func()) *time.Timer
	// OnPrompt is invoked when a mobile intent enters ConfirmPending.
	OnPrompt func(intent domain.PaymentIntent)
	Logger   *zap.Logger
}

var (
	// ErrCheckoutCatalogMissing indicates the catalog dependency is absent.
	ErrCheckoutCatalogMissing = errors.New("checkout service: catalog repository is not configured")
	// ErrIntentNotFound indicates no live intent exists for the id; terminal
	// intents are discarded and report the same error.
	ErrIntentNotFound = errors.New("checkout service: payment intent not found")
	// ErrInvalidTransition indicates the requested transition is not legal
	// for the intent's device class or current state.
	ErrInvalidTransition = errors.New("checkout service: invalid state transition")
)

const defaultConfirmFallbackDelay = 2500 * time.Millisecond

type trackedIntent struct {
	intent domain.PaymentIntent
	timer  *time.Timer
}

type checkoutService struct {
	catalog  repositories.CatalogRepository
	link     payments.LinkBuilder
	delay    time.Duration
	clock    func() time.Time
	timer    func(time.Duration, func()) *time.Timer
	onPrompt func(domain.PaymentIntent)
	logger   *zap.Logger

	mu       sync.Mutex
	intents  map[string]*trackedIntent
	entropy  *ulid.MonotonicEntropy
	lastTxMS int64
}

// NewCheckoutService constructs the checkout service with the supplied
// dependencies.
func NewCheckoutService(deps CheckoutServiceDeps) (CheckoutService, error) {
	if deps.Catalog == nil {
		return nil, ErrCheckoutCatalogMissing
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	timer := deps.Timer
	if timer == nil {
		timer = time.AfterFunc
	}
	delay := deps.ConfirmFallbackDelay
	if delay <= 0 {
		delay = defaultConfirmFallbackDelay
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &checkoutService{
		catalog:  deps.Catalog,
		link:     deps.Link,
		delay:    delay,
		clock:    func() time.Time { return clock().UTC() },
		timer:    timer,
		onPrompt: deps.OnPrompt,
		logger:   logger,
		intents:  make(map[string]*trackedIntent),
		entropy:  ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}, nil
}

// Begin creates a payment intent for the item and runs the dispatch
// decision: free items fulfil immediately through the download path, paid
// items hand off to the payment app via a deep link. A zero-price item can
// never enter the link-dispatch branch.
func (s *checkoutService) Begin(ctx context.Context, cmd BeginCheckout) (CheckoutResult, error) {
	item, err := s.catalog.Get(ctx, cmd.ItemID)
	if err != nil {
		return CheckoutResult{}, err
	}

	now := s.clock()
	intent := domain.PaymentIntent{
		ItemID:        item.ID,
		Amount:        item.Price,
		TransactionID: s.nextTransactionID(now, item.ID),
		Channel:       s.link.Scheme,
		State:         domain.PaymentCreated,
		CreatedAt:     now,
	}

	s.mu.Lock()
	intent.ID = ulid.MustNew(ulid.Timestamp(now), s.entropy).String()
	s.mu.Unlock()

	logger := observability.FromContext(ctx)

	if item.Free() {
		// Terminal immediately; the intent is never stored. The transaction
		// id exists for the log line only.
		intent.State = domain.PaymentFreeFulfilled
		artifact := DownloadManifest(item)
		logger.Info("free item fulfilled",
			zap.Int64("item_id", item.ID),
			zap.String("transaction_id", intent.TransactionID),
			zap.String("filename", artifact.Filename),
		)
		return CheckoutResult{
			IntentID:      intent.ID,
			State:         intent.State,
			TransactionID: intent.TransactionID,
			Artifact:      &artifact,
		}, nil
	}

	intent.DeviceClass = payments.ClassifyDevice(cmd.Platform)
	intent.State = domain.PaymentLinkDispatched
	intent.DispatchedAt = now

	result := CheckoutResult{
		IntentID:       intent.ID,
		State:          intent.State,
		TransactionID:  intent.TransactionID,
		DeviceClass:    intent.DeviceClass,
		PaymentLink:    s.link.PaymentURI(item.Price, intent.TransactionID, item.Title),
		WebFallbackURL: s.link.WebFallbackURL(intent.TransactionID),
		Payment: &PaymentInstructions{
			Amount:        item.Price,
			AmountLabel:   payments.FormatAmount(item.Price),
			Currency:      s.link.Currency,
			PayeeAddress:  s.link.PayeeAddress,
			PayeeName:     s.link.PayeeName,
			TransactionID: intent.TransactionID,
		},
	}

	tracked := &trackedIntent{intent: intent}
	s.mu.Lock()
	s.intents[intent.ID] = tracked
	if intent.DeviceClass == domain.DeviceMobile {
		intentID := intent.ID
		tracked.timer = s.timer(s.delay, func() { s.promptFallback(intentID) })
	}
	s.mu.Unlock()

	logger.Info("payment link dispatched",
		zap.Int64("item_id", item.ID),
		zap.String("transaction_id", intent.TransactionID),
		zap.String("device_class", string(intent.DeviceClass)),
	)
	return result, nil
}

// Status returns the live intent for the id.
func (s *checkoutService) Status(_ context.Context, intentID string) (domain.PaymentIntent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tracked, ok := s.intents[intentID]
	if !ok {
		return domain.PaymentIntent{}, ErrIntentNotFound
	}
	return tracked.intent, nil
}

// Confirm records the mobile user's out-of-band answer to the fallback
// prompt. An affirmative answer resolves the intent; a negative answer or
// dismissal abandons it.
func (s *checkoutService) Confirm(ctx context.Context, intentID string, confirmed bool) (domain.PaymentState, error) {
	next := domain.PaymentResolved
	if !confirmed {
		next = domain.PaymentAbandoned
	}
	return s.finish(ctx, intentID, next, func(intent domain.PaymentIntent) bool {
		if intent.DeviceClass != domain.DeviceMobile {
			return false
		}
		return intent.State == domain.PaymentLinkDispatched || intent.State == domain.PaymentConfirmPending
	})
}

// Acknowledge records the desktop user dismissing the payment presentation.
// There is no settlement confirmation channel; dismissal resolves the
// intent.
func (s *checkoutService) Acknowledge(ctx context.Context, intentID string) (domain.PaymentState, error) {
	return s.finish(ctx, intentID, domain.PaymentResolved, func(intent domain.PaymentIntent) bool {
		return intent.DeviceClass == domain.DeviceDesktop && intent.State == domain.PaymentLinkDispatched
	})
}

// Cancel abandons the intent from any non-terminal state.
func (s *checkoutService) Cancel(ctx context.Context, intentID string) (domain.PaymentState, error) {
	return s.finish(ctx, intentID, domain.PaymentAbandoned, func(intent domain.PaymentIntent) bool {
		return !intent.State.Terminal()
	})
}

// finish moves a live intent to a terminal state and discards it. The
// allowed predicate guards the transition; stored intents are always
// non-terminal.
func (s *checkoutService) finish(ctx context.Context, intentID string, next domain.PaymentState, allowed func(domain.PaymentIntent) bool) (domain.PaymentState, error) {
	s.mu.Lock()
	tracked, ok := s.intents[intentID]
	if !ok {
		s.mu.Unlock()
		return "", ErrIntentNotFound
	}
	if !allowed(tracked.intent) {
		state := tracked.intent.State
		s.mu.Unlock()
		return state, ErrInvalidTransition
	}
	if tracked.timer != nil {
		tracked.timer.Stop()
	}
	intent := tracked.intent
	delete(s.intents, intentID)
	s.mu.Unlock()

	observability.FromContext(ctx).Info("payment intent closed",
		zap.String("intent_id", intentID),
		zap.String("transaction_id", intent.TransactionID),
		zap.String("state", string(next)),
	)
	return next, nil
}

// promptFallback fires when the fallback timer elapses without the payment
// app intercepting the navigation: the intent moves to ConfirmPending and
// the manual confirmation prompt is surfaced.
func (s *checkoutService) promptFallback(intentID string) {
	s.mu.Lock()
	tracked, ok := s.intents[intentID]
	if !ok || tracked.intent.State != domain.PaymentLinkDispatched {
		s.mu.Unlock()
		return
	}
	tracked.intent.State = domain.PaymentConfirmPending
	intent := tracked.intent
	s.mu.Unlock()

	s.logger.Info("payment app handoff unconfirmed; prompting user",
		zap.String("intent_id", intentID),
		zap.String("transaction_id", intent.TransactionID),
	)
	if s.onPrompt != nil {
		s.onPrompt(intent)
	}
}

// nextTransactionID derives the transaction id from the clock reading and
// the item id. Two sequential checkouts in the same process never share an
// id: the millisecond component is bumped past the last issued value when
// the clock has not advanced.
func (s *checkoutService) nextTransactionID(now time.Time, itemID int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	millis := now.UnixMilli()
	if millis <= s.lastTxMS {
		millis = s.lastTxMS + 1
	}
	s.lastTxMS = millis
	return fmt.Sprintf("TXN_%d_%d", millis, itemID)
}
