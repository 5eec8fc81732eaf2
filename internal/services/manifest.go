package services

import (
	"fmt"
	"strings"

	domain "github.com/eduaccess/api/internal/domain"
	"github.com/eduaccess/api/internal/platform/textutil"
)

// DownloadManifest builds the plain-text artifact handed to the user when a
// free item is fulfilled. The filename stem is the normalized item title.
func DownloadManifest(item domain.ContentItem) domain.DownloadArtifact {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Title: %s\n", item.Title)
	fmt.Fprintf(&sb, "Description: %s\n", item.Description)
	fmt.Fprintf(&sb, "Type: %s\n", item.Kind)
	fmt.Fprintf(&sb, "Category: %s\n", item.Category)
	if item.Duration != "" {
		fmt.Fprintf(&sb, "Duration: %s\n", item.Duration)
	}
	if item.SizeLabel != "" {
		fmt.Fprintf(&sb, "Size: %s\n", item.SizeLabel)
	}
	if item.Rating > 0 {
		fmt.Fprintf(&sb, "Rating: %.1f\n", item.Rating)
	}
	if item.Enrollments > 0 {
		fmt.Fprintf(&sb, "Enrollments: %d\n", item.Enrollments)
	}
	if len(item.Regions) > 0 {
		fmt.Fprintf(&sb, "Regions: %s\n", strings.Join(item.Regions, ", "))
	}

	return domain.DownloadArtifact{
		Filename:    textutil.FileSlug(item.Title) + ".txt",
		ContentType: "text/plain; charset=utf-8",
		Body:        sb.String(),
	}
}
