package common

import (
	"net"
	"net/http"
	"strings"
)

// ShopDomainHeader identifies the storefront on host-originated requests.
const ShopDomainHeader = "X-Shopify-Shop-Domain"

// ClientIP attempts to determine the real client IP address from the request.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if fwd := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if candidate := strings.TrimSpace(first); candidate != "" {
			return candidate
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}

// ShopDomain returns the lower-cased shop domain header, or "" when absent.
func ShopDomain(r *http.Request) string {
	if r == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(r.Header.Get(ShopDomainHeader)))
}

// RateLimitKey keys callers by shop when the host identifies one, otherwise by client IP.
func RateLimitKey(r *http.Request) string {
	if shop := ShopDomain(r); shop != "" {
		return "shop:" + shop
	}
	return "ip:" + ClientIP(r)
}
