package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubDetector struct {
	detectFunc func(ctx context.Context) (string, error)
}

func (s *stubDetector) Detect(ctx context.Context) (string, error) {
	if s.detectFunc != nil {
		return s.detectFunc(ctx)
	}
	return "", errors.New("detector: unavailable")
}

func newLocationService(t *testing.T, detector Detector, fallback string) LocationService {
	t.Helper()
	svc, err := NewLocationService(LocationServiceDeps{
		Detector:       detector,
		Timeout:        time.Second,
		FallbackRegion: fallback,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func TestLocationServiceDetectSuccess(t *testing.T) {
	detector := &stubDetector{
		detectFunc: func(context.Context) (string, error) { return "Iran", nil },
	}
	svc := newLocationService(t, detector, "")

	if got := svc.Detect(context.Background(), "India"); got != "Iran" {
		t.Fatalf("expected Iran, got %q", got)
	}
	if svc.Current() != "Iran" {
		t.Fatalf("current region not stored: %q", svc.Current())
	}
}

func TestLocationServiceDetectFailureSubstitutesCallerFallback(t *testing.T) {
	svc := newLocationService(t, &stubDetector{}, "Cuba")

	if got := svc.Detect(context.Background(), "India"); got != "India" {
		t.Fatalf("expected caller fallback India, got %q", got)
	}
}

func TestLocationServiceDetectFailureSubstitutesConfiguredFallback(t *testing.T) {
	svc := newLocationService(t, &stubDetector{}, "Cuba")

	if got := svc.Detect(context.Background(), ""); got != "Cuba" {
		t.Fatalf("expected configured fallback Cuba, got %q", got)
	}
}

func TestLocationServiceOverrideIsAuthoritative(t *testing.T) {
	detector := &stubDetector{
		detectFunc: func(context.Context) (string, error) { return "China", nil },
	}
	svc := newLocationService(t, detector, "")

	svc.Detect(context.Background(), "")
	svc.SetOverride("Sudan")
	if svc.Current() != "Sudan" {
		t.Fatalf("override not stored: %q", svc.Current())
	}
}

func TestLocationServiceStaleResultSuppression(t *testing.T) {
	release := make(chan string, 1)
	detector := &stubDetector{
		detectFunc: func(ctx context.Context) (string, error) {
			select {
			case region := <-release:
				return region, nil
			case <-ctx.Done():
				return "", ctx.Err()
			}
		},
	}
	svc := newLocationService(t, detector, "")

	slowDone := make(chan string, 1)
	go func() {
		slowDone <- svc.Detect(context.Background(), "")
	}()

	// The override supersedes the in-flight detection before it completes.
	svc.SetOverride("Syria")
	release <- "China"
	stale := <-slowDone

	if stale != "Syria" {
		t.Fatalf("stale detection must yield the superseding region, got %q", stale)
	}
	if svc.Current() != "Syria" {
		t.Fatalf("stale result overwrote the region: %q", svc.Current())
	}
}

func TestLocationServiceObserversNotified(t *testing.T) {
	detector := &stubDetector{
		detectFunc: func(context.Context) (string, error) { return "India", nil },
	}
	svc := newLocationService(t, detector, "")

	var seen []string
	svc.Subscribe(func(region string) { seen = append(seen, region) })

	svc.Detect(context.Background(), "")
	svc.SetOverride("Cuba")

	if len(seen) != 2 || seen[0] != "India" || seen[1] != "Cuba" {
		t.Fatalf("unexpected observer notifications: %v", seen)
	}
}
