package extraction

import "strings"

// DetectPlatform classifies a cleaned URL. Anything that is not YouTube or
// Instagram is treated as a direct recipe page link.
func DetectPlatform(url string) Platform {
	lower := strings.ToLower(url)
	switch {
	case strings.Contains(lower, "youtube.com") || strings.Contains(lower, "youtu.be"):
		return PlatformYouTube
	case strings.Contains(lower, "instagram.com"):
		return PlatformInstagram
	default:
		return PlatformDirectURL
	}
}
