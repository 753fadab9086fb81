// Package metadata records where a request came from: client IP and a short
// client name parsed from the User-Agent. The IP feeds access logs and the
// write rate limiter, so forwarding headers are honored only when the
// connection comes from a trusted proxy.
package metadata

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/mssola/useragent"
)

// TrustedProxies lists the networks allowed to set X-Forwarded-For and
// X-Real-IP. The zero value trusts nobody.
type TrustedProxies []netip.Prefix

// ParseTrustedProxies accepts CIDRs or bare IPs.
func ParseTrustedProxies(values []string) (TrustedProxies, error) {
	out := make(TrustedProxies, 0, len(values))
	for _, v := range values {
		if strings.Contains(v, "/") {
			prefix, err := netip.ParsePrefix(v)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", v, err)
			}
			out = append(out, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(v)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", v, err)
		}
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}

// Contains reports whether ip falls in a trusted network.
func (p TrustedProxies) Contains(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range p {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

type contextKeyClientIP struct{}
type contextKeyClientName struct{}

// ClientMetadata adds the client IP and client name to the request context.
// Apply it early in the chain.
func ClientMetadata(trusted TrustedProxies) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithClientMetadata(r.Context(), ClientIP(r, trusted), ClientName(r.Header.Get("User-Agent")))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClientIP retrieves the client IP address from the context.
func GetClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(contextKeyClientIP{}).(string); ok {
		return ip
	}
	return ""
}

// GetClientName retrieves the parsed client name from the context.
func GetClientName(ctx context.Context) string {
	if name, ok := ctx.Value(contextKeyClientName{}).(string); ok {
		return name
	}
	return ""
}

// WithClientMetadata injects client IP and name into a context.
func WithClientMetadata(ctx context.Context, clientIP, clientName string) context.Context {
	ctx = context.WithValue(ctx, contextKeyClientIP{}, clientIP)
	ctx = context.WithValue(ctx, contextKeyClientName{}, clientName)
	return ctx
}

// ClientName reduces a User-Agent to "name/version", prefixed with "bot:" for
// crawlers. Unparseable agents come back as the raw product token.
func ClientName(userAgent string) string {
	if userAgent == "" {
		return ""
	}
	ua := useragent.New(userAgent)
	name, version := ua.Browser()
	if name == "" {
		name = strings.SplitN(userAgent, " ", 2)[0]
		version = ""
	}
	if version != "" {
		name += "/" + version
	}
	if ua.Bot() {
		return "bot:" + name
	}
	return name
}

// ClientIP returns the connection's peer address unless that peer is a
// trusted proxy. Behind trusted proxies X-Forwarded-For is walked from the
// right, skipping trusted hops, so a client cannot pick its own address by
// prepending entries. X-Real-IP is the fallback.
func ClientIP(r *http.Request, trusted TrustedProxies) string {
	remote := remoteHost(r.RemoteAddr)
	if !trusted.Contains(remote) {
		return remote
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			if hop == "" {
				continue
			}
			if _, err := netip.ParseAddr(hop); err != nil {
				return remote
			}
			if !trusted.Contains(hop) {
				return hop
			}
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return remote
}

// remoteHost strips the port from RemoteAddr ("ip:port" or "[::1]:port").
func remoteHost(addr string) string {
	if addr == "" {
		return "unknown"
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
