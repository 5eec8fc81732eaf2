package domain

// ContentKind enumerates the closed set of content formats in the catalog.
type ContentKind string

const (
	// KindDocument represents downloadable text documents (PDF and similar).
	KindDocument ContentKind = "document"
	// KindVideo represents video content.
	KindVideo ContentKind = "video"
	// KindAudio represents audio content.
	KindAudio ContentKind = "audio"
	// KindBook represents long-form books and courses.
	KindBook ContentKind = "book"
)

// KnownContentKind reports whether the value belongs to the closed kind set.
func KnownContentKind(kind ContentKind) bool {
	switch kind {
	case KindDocument, KindVideo, KindAudio, KindBook:
		return true
	}
	return false
}

// ContentItem is one purchasable or free learning asset in the catalog.
//
// Price is stored in minor currency units (paise); zero marks the item as
// free. Regions lists the region identifiers for which the item is priority
// content; an empty list means the item is generally applicable. SizeLabel,
// Duration, Rating and Enrollments are display-only and carry no behaviour.
type ContentItem struct {
	ID          int64
	Title       string
	Description string
	Kind        ContentKind
	Category    string
	Price       int64
	Regions     []string
	SizeLabel   string
	Duration    string
	Rating      float64
	Enrollments int64
}

// Free reports whether the item fulfils through the zero-cost download path.
func (i ContentItem) Free() bool {
	return i.Price == 0
}

// Priority reports whether the item counts as priority content. The source
// system treats "declares any region" as synonymous with priority, even for
// regions other than the viewer's; that conflation is kept deliberately.
func (i ContentItem) Priority() bool {
	return len(i.Regions) > 0
}

// InRegion reports whether the item declares the given region.
func (i ContentItem) InRegion(region string) bool {
	for _, r := range i.Regions {
		if r == region {
			return true
		}
	}
	return false
}

// NewContentItem carries caller-supplied fields for a catalog append. The
// catalog is the sole id authority; ids are never accepted from callers.
type NewContentItem struct {
	Title       string
	Description string
	Kind        ContentKind
	Category    string
	Price       int64
	Regions     []string
	SizeLabel   string
	Duration    string
}

// DownloadArtifact is the plain-text manifest handed to the user when a free
// item is fulfilled.
type DownloadArtifact struct {
	Filename    string
	ContentType string
	Body        string
}
