package common

import "strings"

// DeviceClass buckets a user agent for request logging.
type DeviceClass string

const (
	DeviceMobile  DeviceClass = "mobile"
	DeviceDesktop DeviceClass = "desktop"
	DeviceTablet  DeviceClass = "tablet"
	DeviceBot     DeviceClass = "bot"
	DeviceOther   DeviceClass = "other"
)

// ClientInfo is what request logging extracts from a user agent.
type ClientInfo struct {
	Device  DeviceClass
	OS      string
	Browser string
}

// ParseUserAgent classifies a raw User-Agent header. Classification is
// best effort; anything unrecognized falls into "other"/"unknown".
func ParseUserAgent(ua string) ClientInfo {
	lower := strings.ToLower(ua)

	info := ClientInfo{
		Device:  classifyDevice(lower),
		OS:      classifyOS(lower),
		Browser: classifyBrowser(lower),
	}
	return info
}

func classifyDevice(ua string) DeviceClass {
	switch {
	case ua == "":
		return DeviceOther
	case strings.Contains(ua, "bot"),
		strings.Contains(ua, "crawler"),
		strings.Contains(ua, "spider"),
		strings.Contains(ua, "curl"):
		return DeviceBot
	case strings.Contains(ua, "ipad"),
		strings.Contains(ua, "tablet"),
		strings.Contains(ua, "android") && !strings.Contains(ua, "mobile"):
		return DeviceTablet
	case strings.Contains(ua, "mobi"),
		strings.Contains(ua, "iphone"),
		strings.Contains(ua, "android"):
		return DeviceMobile
	case strings.Contains(ua, "windows"),
		strings.Contains(ua, "macintosh"),
		strings.Contains(ua, "linux"),
		strings.Contains(ua, "x11"):
		return DeviceDesktop
	}
	return DeviceOther
}

func classifyOS(ua string) string {
	switch {
	case strings.Contains(ua, "windows"):
		return "Windows"
	case strings.Contains(ua, "iphone"), strings.Contains(ua, "ipad"):
		return "iOS"
	case strings.Contains(ua, "macintosh"), strings.Contains(ua, "mac os"):
		return "macOS"
	case strings.Contains(ua, "android"):
		return "Android"
	case strings.Contains(ua, "cros"):
		return "ChromeOS"
	case strings.Contains(ua, "linux"):
		return "Linux"
	}
	return "unknown"
}

func classifyBrowser(ua string) string {
	// Order matters: Chrome UAs contain "safari", Edge UAs contain
	// "chrome", Opera UAs contain both.
	switch {
	case strings.Contains(ua, "edg/"), strings.Contains(ua, "edge"):
		return "Edge"
	case strings.Contains(ua, "opr/"), strings.Contains(ua, "opera"):
		return "Opera"
	case strings.Contains(ua, "firefox"):
		return "Firefox"
	case strings.Contains(ua, "chrome"):
		return "Chrome"
	case strings.Contains(ua, "safari"):
		return "Safari"
	}
	return "unknown"
}
