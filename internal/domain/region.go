package domain

// PriorityTier orders regions by how constrained their access situation is.
type PriorityTier string

const (
	// TierCritical marks regions with the most severe access constraints.
	TierCritical PriorityTier = "critical"
	// TierHigh marks regions with significant access constraints.
	TierHigh PriorityTier = "high"
	// TierMedium marks regions with moderate access constraints.
	TierMedium PriorityTier = "medium"
	// TierLow is the default tier for unconstrained or unknown regions.
	TierLow PriorityTier = "low"
)

// Rank maps the tier onto an ordinal, lower meaning more constrained.
func (t PriorityTier) Rank() int {
	switch t {
	case TierCritical:
		return 0
	case TierHigh:
		return 1
	case TierMedium:
		return 2
	default:
		return 3
	}
}

// RegionProfile captures the regional context used to frame the catalog:
// known access challenges, the content descriptors surfaced as
// recommendations, and the region's priority tier. Challenges and
// RecommendedCategories are informational only.
type RegionProfile struct {
	RegionID              string
	Challenges            []string
	RecommendedCategories []string
	Tier                  PriorityTier
}
