package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"syscall"
	"time"
	"unicode/utf8"
)

// Banner-phase deadlines are deliberately fixed rather than configurable:
// banner collection is best-effort and must not stretch the per-port budget
// the user chose. They are independent of the connect timeout.
const (
	bannerWriteTimeout   = 500 * time.Millisecond
	httpBannerTimeout    = time.Second
	passiveBannerTimeout = 500 * time.Millisecond

	httpBannerLimit    = 2048
	passiveBannerLimit = 1024

	probeUserAgent = "tcp-scanner"
)

// httpLikePorts trigger an HTTP/1.0 request before reading; every other port
// gets a passive read, catching protocols that announce themselves unprompted.
var httpLikePorts = map[int]struct{}{
	80:   {},
	443:  {},
	8000: {},
	8080: {},
	8443: {},
}

// Prober attempts single TCP connections against one resolved target and
// optionally grabs a banner from open ports. Every failure mode collapses
// into a closed Outcome; Probe never returns an error.
type Prober struct {
	host      string
	address   string
	timeout   time.Duration
	banner    bool
	httpPorts map[int]struct{}

	dialer net.Dialer
}

// NewProber builds a prober for one host scan request
func NewProber(req Request) *Prober {
	return &Prober{
		host:      req.Host,
		address:   req.Address,
		timeout:   req.Timeout,
		banner:    req.Banner,
		httpPorts: httpLikePorts,
	}
}

// Probe dials address:port under the request timeout. A successful connect
// marks the port open; nothing that happens afterwards, including a failed
// banner attempt or a close error, downgrades it.
func (p *Prober) Probe(ctx context.Context, port int) Outcome {
	outcome := Outcome{Port: port}

	dialCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	conn, err := p.dialer.DialContext(dialCtx, "tcp", net.JoinHostPort(p.address, strconv.Itoa(port)))
	if err != nil {
		slog.Debug("probe failed", "address", p.address, "port", port, "reason", dialFailure(err))
		return outcome
	}
	defer conn.Close()

	outcome.Open = true
	if p.banner {
		outcome.Banner = p.grabBanner(conn, port)
	}
	return outcome
}

// grabBanner performs the best-effort banner read. HTTP-like ports are sent a
// minimal HTTP/1.0 request first; anything that goes wrong in either phase
// leaves the banner empty.
func (p *Prober) grabBanner(conn net.Conn, port int) string {
	limit := passiveBannerLimit
	readTimeout := passiveBannerTimeout

	if _, ok := p.httpPorts[port]; ok {
		request := fmt.Sprintf("GET / HTTP/1.0\r\nHost: %s\r\nUser-Agent: %s\r\n\r\n", p.host, probeUserAgent)
		if err := conn.SetWriteDeadline(time.Now().Add(bannerWriteTimeout)); err != nil {
			return ""
		}
		if _, err := conn.Write([]byte(request)); err != nil {
			return ""
		}
		limit = httpBannerLimit
		readTimeout = httpBannerTimeout
	}

	if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		return ""
	}

	buf := make([]byte, limit)
	n, _ := conn.Read(buf)
	if n == 0 {
		return ""
	}

	text := strings.ToValidUTF8(string(buf[:n]), string(utf8.RuneError))
	return strings.TrimSpace(text)
}

// dialFailure classifies a dial error for debug logging. Every class maps to
// the same closed outcome, but the switch is exhaustive on purpose: a failure
// kind it does not know shows up as "unclassified" instead of disappearing.
func dialFailure(err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	case errors.Is(err, syscall.ECONNREFUSED):
		return "refused"
	case errors.Is(err, syscall.EHOSTUNREACH), errors.Is(err, syscall.ENETUNREACH):
		return "unreachable"
	case errors.Is(err, syscall.ECONNRESET):
		return "reset"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return fmt.Sprintf("unclassified: %v", err)
	}
}
