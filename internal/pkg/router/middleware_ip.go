package router

import (
	"net"
	"net/http"
	"strings"
)

func middlewareIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rip := realIP(r); rip != "" {
			r.RemoteAddr = rip
		}
		next.ServeHTTP(w, r)
	})
}

// realIP prefers proxy headers in the order True-Client-IP, X-Real-IP,
// X-Forwarded-For and falls back to the connection address.
func realIP(r *http.Request) string {
	for _, header := range []string{"True-Client-IP", "X-Real-IP", "X-Forwarded-For"} {
		ip, _, _ := strings.Cut(r.Header.Get(header), ",")
		ip = strings.TrimSpace(ip)
		if ip != "" && net.ParseIP(ip) != nil {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && net.ParseIP(host) != nil {
		return host
	}
	return ""
}
