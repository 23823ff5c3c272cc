package request // import "github.com/libris-io/libris/http/request"

import (
	"net"
	"net/http"
	"strings"
)

// FindClientIP returns the client address, honoring X-Forwarded-For and
// X-Real-Ip when a proxy sits in front.
func FindClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}

	if realIP := r.Header.Get("X-Real-Ip"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
