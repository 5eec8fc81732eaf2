package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/eduaccess/api/internal/platform/observability"
)

// LocationServiceDeps bundles constructor inputs for the location service.
type LocationServiceDeps struct {
	Detector Detector
	// Timeout bounds a single detection attempt.
	Timeout time.Duration
	// FallbackRegion is used when detection fails and the caller supplied
	// no fallback of their own (e.g. no declared country).
	FallbackRegion string
}

// ErrDetectorMissing indicates the detection collaborator is absent.
var ErrDetectorMissing = errors.New("location service: detector is not configured")

const defaultDetectTimeout = 5 * time.Second

type locationService struct {
	detector Detector
	timeout  time.Duration
	fallback string

	mu         sync.Mutex
	current    string
	generation uint64
	observers  []func(region string)
}

// NewLocationService constructs the location service with the supplied
// dependencies.
func NewLocationService(deps LocationServiceDeps) (LocationService, error) {
	if deps.Detector == nil {
		return nil, ErrDetectorMissing
	}
	timeout := deps.Timeout
	if timeout <= 0 {
		timeout = defaultDetectTimeout
	}
	return &locationService{
		detector: deps.Detector,
		timeout:  timeout,
		fallback: strings.TrimSpace(deps.FallbackRegion),
	}, nil
}

// Detect runs one detection attempt. The external collaborator may fail or
// time out; both outcomes substitute the fallback region and are never
// surfaced as errors. Only the most recent attempt's outcome is published:
// an attempt that loses the race against a newer Detect or SetOverride call
// is dropped.
func (s *locationService) Detect(ctx context.Context, fallback string) string {
	fallback = strings.TrimSpace(fallback)
	if fallback == "" {
		fallback = s.fallback
	}

	s.mu.Lock()
	s.generation++
	generation := s.generation
	s.mu.Unlock()

	detectCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	region, err := s.detector.Detect(detectCtx)
	region = strings.TrimSpace(region)
	if err != nil || region == "" {
		observability.FromContext(ctx).Warn("location detection failed; using fallback region",
			zap.String("fallback", observability.SanitizeRegion(fallback)),
			zap.Error(err),
		)
		region = fallback
	}

	return s.publish(generation, region)
}

// SetOverride bypasses detection entirely. The override is authoritative
// and also invalidates any detection attempt still in flight.
func (s *locationService) SetOverride(regionID string) {
	s.mu.Lock()
	s.generation++
	generation := s.generation
	s.mu.Unlock()

	s.publish(generation, strings.TrimSpace(regionID))
}

func (s *locationService) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *locationService) Subscribe(fn func(region string)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// publish records the region and notifies observers, unless a newer attempt
// has already superseded this one; stale results return the region that is
// actually current.
func (s *locationService) publish(generation uint64, region string) string {
	s.mu.Lock()
	if generation != s.generation {
		current := s.current
		s.mu.Unlock()
		return current
	}
	s.current = region
	observers := make([]func(string), len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(region)
	}
	return region
}
