package request

import "strings"

type ClientType string

const (
	ClientWeb    ClientType = "web"
	ClientMobile ClientType = "mobile"
	ClientKiosk  ClientType = "kiosk"
)

// ResolveClientType prefers the explicit X-Client-Type header and falls back
// to sniffing the user agent. Unknown clients are treated as web.
func ResolveClientType(header, userAgent string) ClientType {
	switch ClientType(strings.ToLower(strings.TrimSpace(header))) {
	case ClientWeb:
		return ClientWeb
	case ClientMobile:
		return ClientMobile
	case ClientKiosk:
		return ClientKiosk
	}

	ua := strings.ToLower(userAgent)
	switch {
	case strings.Contains(ua, "okhttp"), strings.Contains(ua, "cfnetwork"), strings.Contains(ua, "dart"):
		return ClientMobile
	default:
		return ClientWeb
	}
}

func IsWebClient(t ClientType) bool {
	return t == ClientWeb
}
