package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// RealIP подставляет в RemoteAddr адрес клиента из X-Forwarded-For.
// Заголовок учитывается только если запрос пришел от доверенного прокси;
// список разбирается справа налево до первого недоверенного адреса.
type RealIP struct {
	trusted []netip.Prefix
}

// NewRealIP принимает адреса и подсети доверенных прокси ("10.0.0.0/8", "127.0.0.1")
func NewRealIP(proxies []string) (*RealIP, error) {
	m := &RealIP{}
	for _, p := range proxies {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.Contains(p, "/") {
			addr, err := netip.ParseAddr(p)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", p, err)
			}
			m.trusted = append(m.trusted, netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()))
			continue
		}
		prefix, err := netip.ParsePrefix(p)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", p, err)
		}
		m.trusted = append(m.trusted, prefix.Masked())
	}
	return m, nil
}

func (m *RealIP) isTrusted(addr netip.Addr) bool {
	addr = addr.Unmap()
	for _, p := range m.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// clientAddr адрес клиента или ok=false, если RemoteAddr менять не нужно
func (m *RealIP) clientAddr(r *http.Request) (netip.Addr, bool) {
	peer, err := netip.ParseAddrPort(r.RemoteAddr)
	if err != nil || !m.isTrusted(peer.Addr()) {
		return netip.Addr{}, false
	}

	hops := strings.Split(strings.Join(r.Header.Values("X-Forwarded-For"), ","), ",")
	var last netip.Addr
	for i := len(hops) - 1; i >= 0; i-- {
		addr, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
		if err != nil {
			break
		}
		last = addr
		if !m.isTrusted(addr) {
			return addr.Unmap(), true
		}
	}
	if last.IsValid() {
		return last.Unmap(), true
	}
	return netip.Addr{}, false
}

// Middleware переписывает RemoteAddr для доверенных прокси
func (m *RealIP) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if addr, ok := m.clientAddr(r); ok {
			r2 := r.Clone(r.Context())
			r2.RemoteAddr = net.JoinHostPort(addr.String(), "0")
			r = r2
		}
		next.ServeHTTP(w, r)
	})
}
