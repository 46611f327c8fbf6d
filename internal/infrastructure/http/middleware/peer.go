package middleware

import (
	"context"
	"net"
	"net/http"
)

type peerAddrKey struct{}

// PeerAddr records the socket address of the connection. It must run before chi's RealIP,
// which rewrites RemoteAddr from client-supplied headers.
func PeerAddr(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), peerAddrKey{}, r.RemoteAddr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// PeerIP returns the host of the address recorded by PeerAddr, or of RemoteAddr when PeerAddr did not run.
func PeerIP(r *http.Request) string {
	if addr, ok := r.Context().Value(peerAddrKey{}).(string); ok {
		return hostOnly(addr)
	}
	return hostOnly(r.RemoteAddr)
}

// ClientIP returns the host of RemoteAddr as resolved by RealIP. Forwarded headers make it
// client-controlled; use PeerIP for anything security-relevant.
func ClientIP(r *http.Request) string {
	return hostOnly(r.RemoteAddr)
}

func hostOnly(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
