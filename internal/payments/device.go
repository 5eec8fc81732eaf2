package payments

import (
	"strings"

	"github.com/mssola/useragent"

	domain "github.com/eduaccess/api/internal/domain"
)

// ClassifyDevice derives the device class from the client's declared
// platform string. Mobile-OS markers select the direct app handoff branch;
// everything else is treated as desktop.
func ClassifyDevice(platform string) domain.DeviceClass {
	platform = strings.TrimSpace(platform)
	if platform == "" {
		return domain.DeviceDesktop
	}
	ua := useragent.New(platform)
	if ua.Mobile() {
		return domain.DeviceMobile
	}
	// The raw marker check catches bare platform strings ("Android",
	// "iPhone") that are not full user-agent headers.
	lowered := strings.ToLower(platform)
	for _, marker := range []string{"android", "iphone", "ipad", "ipod"} {
		if strings.Contains(lowered, marker) {
			return domain.DeviceMobile
		}
	}
	return domain.DeviceDesktop
}
