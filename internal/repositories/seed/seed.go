// Package seed holds the static datasets injected into the in-memory stores
// at startup. Keeping the data here, rather than inside the stores, lets
// tests substitute fixtures.
package seed

import (
	domain "github.com/eduaccess/api/internal/domain"
)

// Catalog returns the seeded content items in display order. Prices are in
// paise.
func Catalog() []domain.ContentItem {
	return []domain.ContentItem{
		{
			ID:          1,
			Title:       "VPN Setup Guide for Beginners",
			Description: "Complete guide to setting up and using VPNs safely",
			Kind:        domain.KindDocument,
			Category:    "Privacy & Security",
			Price:       299,
			Regions:     []string{"China", "Iran"},
			SizeLabel:   "5.2 MB",
		},
		{
			ID:          2,
			Title:       "Offline Wikipedia Dump - Science",
			Description: "Complete Wikipedia science articles for offline access",
			Kind:        domain.KindBook,
			Category:    "Reference",
			Price:       999,
			Regions:     []string{"China", "North Korea"},
			SizeLabel:   "2.1 GB",
		},
		{
			ID:          3,
			Title:       "English Learning Course - Offline",
			Description: "Complete English course with audio and subtitles",
			Kind:        domain.KindVideo,
			Category:    "Language",
			Price:       1299,
			Regions:     []string{"China", "North Korea", "Cuba"},
			SizeLabel:   "850 MB",
		},
		{
			ID:          4,
			Title:       "Programming Basics - Offline Course",
			Description: "Learn programming fundamentals without internet",
			Kind:        domain.KindVideo,
			Category:    "Technology",
			Price:       1599,
			Regions:     []string{"India", "Sudan"},
			SizeLabel:   "1.2 GB",
		},
		{
			ID:          5,
			Title:       "Digital Skills for Rural Areas",
			Description: "Essential digital literacy for low-connectivity areas",
			Kind:        domain.KindDocument,
			Category:    "Skills",
			Price:       499,
			Regions:     []string{"India", "Sudan"},
			SizeLabel:   "45 MB",
		},
		{
			ID:          6,
			Title:       "Entrepreneurship in Restricted Economies",
			Description: "Building businesses in challenging economic conditions",
			Kind:        domain.KindAudio,
			Category:    "Business",
			Price:       899,
			Regions:     []string{"Cuba", "Syria"},
			SizeLabel:   "120 MB",
		},
		{
			ID:          7,
			Title:       "Human Rights Education Kit",
			Description: "Free educational materials on human rights",
			Kind:        domain.KindDocument,
			Category:    "Education",
			Price:       0,
			Regions:     []string{"Syria", "Sudan"},
			SizeLabel:   "78 MB",
		},
		{
			ID:          8,
			Title:       "Basic Health Education Videos",
			Description: "Essential health information for offline viewing",
			Kind:        domain.KindVideo,
			Category:    "Health",
			Price:       799,
			Regions:     []string{"North Korea", "Sudan"},
			SizeLabel:   "650 MB",
		},
		{
			ID:          9,
			Title:       "Advanced VPN Configuration",
			Description: "Detailed tutorials for bypassing restrictions",
			Kind:        domain.KindVideo,
			Category:    "Privacy & Security",
			Price:       699,
			Regions:     []string{"Iran", "China"},
			SizeLabel:   "340 MB",
		},
		{
			ID:          10,
			Title:       "Women's Education Starter Pack",
			Description: "Educational resources focused on women's empowerment",
			Kind:        domain.KindDocument,
			Category:    "Education",
			Price:       399,
			Regions:     []string{"Sudan", "Syria"},
			SizeLabel:   "95 MB",
		},
		{
			ID:          11,
			Title:       "Mathematics Fundamentals",
			Description: "Core mathematics concepts for all ages",
			Kind:        domain.KindDocument,
			Category:    "Education",
			Price:       299,
			SizeLabel:   "25 MB",
		},
		{
			ID:          12,
			Title:       "Science Experiments - Offline Guide",
			Description: "Hands-on science experiments with common materials",
			Kind:        domain.KindBook,
			Category:    "Science",
			Price:       899,
			SizeLabel:   "156 MB",
		},
	}
}

// RegionProfiles returns the seeded regional context profiles.
func RegionProfiles() []domain.RegionProfile {
	return []domain.RegionProfile{
		{
			RegionID:              "China",
			Challenges:            []string{"Internet censorship and filtering", "Blocked educational platforms", "VPN restrictions"},
			RecommendedCategories: []string{"Privacy & Security", "Reference", "Language"},
			Tier:                  domain.TierCritical,
		},
		{
			RegionID:              "India",
			Challenges:            []string{"Low-bandwidth rural connectivity", "Intermittent mobile data coverage", "High data costs"},
			RecommendedCategories: []string{"Technology", "Skills", "Education"},
			Tier:                  domain.TierMedium,
		},
		{
			RegionID:              "Iran",
			Challenges:            []string{"Internet censorship and filtering", "International platform sanctions", "Periodic network shutdowns"},
			RecommendedCategories: []string{"Privacy & Security", "Education"},
			Tier:                  domain.TierCritical,
		},
		{
			RegionID:              "Cuba",
			Challenges:            []string{"Limited and expensive connectivity", "Restricted access to commercial platforms"},
			RecommendedCategories: []string{"Business", "Language", "Education"},
			Tier:                  domain.TierHigh,
		},
		{
			RegionID:              "Syria",
			Challenges:            []string{"Infrastructure damage from conflict", "Unreliable power and connectivity"},
			RecommendedCategories: []string{"Education", "Business", "Health"},
			Tier:                  domain.TierHigh,
		},
		{
			RegionID:              "North Korea",
			Challenges:            []string{"Near-total internet isolation", "State-controlled intranet only"},
			RecommendedCategories: []string{"Reference", "Health", "Language"},
			Tier:                  domain.TierCritical,
		},
		{
			RegionID:              "Sudan",
			Challenges:            []string{"Frequent network shutdowns", "Limited infrastructure outside cities", "Restricted educational access for women"},
			RecommendedCategories: []string{"Education", "Skills", "Health"},
			Tier:                  domain.TierHigh,
		},
	}
}

// DefaultProfile is the fallback returned for any unrecognised region.
func DefaultProfile() domain.RegionProfile {
	return domain.RegionProfile{
		RegionID:              "",
		Challenges:            []string{"No region-specific constraints on record"},
		RecommendedCategories: []string{"Education", "Reference", "Skills"},
		Tier:                  domain.TierLow,
	}
}

// RegionIDs returns the identifiers of all seeded regions, in seed order.
func RegionIDs() []string {
	profiles := RegionProfiles()
	ids := make([]string, 0, len(profiles))
	for _, profile := range profiles {
		ids = append(ids, profile.RegionID)
	}
	return ids
}
