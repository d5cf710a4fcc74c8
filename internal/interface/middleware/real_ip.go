package middleware

import (
	"fmt"
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIPKey is the context key holding the resolved client address.
const RealIPKey = "real_ip"

// RealIP resolves the client address once per request. Forwarding headers
// are read only when the direct peer matches one of trusted (IPs or CIDRs);
// otherwise the peer address is used as is.
// Order for trusted peers: CF-Connecting-IP, X-Forwarded-For (right-most
// untrusted hop), X-Real-IP, then the peer.
func RealIP(trusted ...string) (gin.HandlerFunc, error) {
	nets, err := parseTrusted(trusted)
	if err != nil {
		return nil, err
	}
	return func(c *gin.Context) {
		c.Set(RealIPKey, resolveIP(c, nets))
		c.Next()
	}, nil
}

func parseTrusted(list []string) ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(list))
	for _, raw := range list {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if !strings.Contains(raw, "/") {
			ip := net.ParseIP(raw)
			if ip == nil {
				return nil, fmt.Errorf("trusted proxy %q: invalid ip", raw)
			}
			bits := 128
			if ip.To4() != nil {
				ip, bits = ip.To4(), 32
			}
			nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, n, err := net.ParseCIDR(raw)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", raw, err)
		}
		nets = append(nets, n)
	}
	return nets, nil
}

func isTrusted(nets []*net.IPNet, ip net.IP) bool {
	if ip == nil {
		return false
	}
	for _, n := range nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

func resolveIP(c *gin.Context, nets []*net.IPNet) string {
	peer := parseIP(c.RemoteIP())
	if peer == "" {
		return c.ClientIP()
	}
	if !isTrusted(nets, net.ParseIP(peer)) {
		return peer
	}

	if ip := parseIP(c.GetHeader("CF-Connecting-IP")); ip != "" {
		return ip
	}
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			ip := parseIP(hops[i])
			if ip == "" {
				break
			}
			if i == 0 || !isTrusted(nets, net.ParseIP(ip)) {
				return ip
			}
		}
	}
	if ip := parseIP(c.GetHeader("X-Real-IP")); ip != "" {
		return ip
	}
	return peer
}

func parseIP(raw string) string {
	if ip := net.ParseIP(strings.TrimSpace(raw)); ip != nil {
		return ip.String()
	}
	return ""
}
