// Package geo provides the location detection collaborator. The production
// implementation is a simulation: the real system has no geolocation
// backend, so detection picks a plausible region after a fixed latency.
package geo

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"
)

// ErrNoRegions indicates the detector was constructed without candidates.
var ErrNoRegions = errors.New("geo: no candidate regions configured")

// SimulatedDetector returns a pseudo-random region from a fixed candidate
// list after a configured delay, mimicking an IP-geolocation call.
type SimulatedDetector struct {
	regions []string
	latency time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedDetector constructs a detector over the given candidate
// regions.
func NewSimulatedDetector(regions []string, latency time.Duration) *SimulatedDetector {
	candidates := make([]string, len(regions))
	copy(candidates, regions)
	return &SimulatedDetector{
		regions: candidates,
		latency: latency,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Detect waits out the simulated latency and returns a candidate region.
// Cancellation of the context aborts the wait.
func (d *SimulatedDetector) Detect(ctx context.Context) (string, error) {
	if len(d.regions) == 0 {
		return "", ErrNoRegions
	}

	if d.latency > 0 {
		timer := time.NewTimer(d.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	d.mu.Lock()
	region := d.regions[d.rng.Intn(len(d.regions))]
	d.mu.Unlock()
	return region, nil
}
