package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/zallec/TCP-PortScanner/pkg/config"
)

// probeFunc is the seam between the coordinator and the prober; tests
// substitute it to exercise scheduling without dialing anything.
type probeFunc func(ctx context.Context, port int) Outcome

// Scanner drives the prober across a port set with bounded concurrency
type Scanner struct {
	cfg Config
}

// NewScanner creates a scanner, falling back to defaults for non-positive
// timeout or concurrency values
func NewScanner(cfg Config) *Scanner {
	defaults := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaults.Concurrency
	}
	return &Scanner{cfg: cfg}
}

// NewRequest builds a per-host scan request from the scanner configuration
func (s *Scanner) NewRequest(host, address string, ports []int) Request {
	return Request{
		Host:        host,
		Address:     address,
		Ports:       ports,
		Timeout:     s.cfg.Timeout,
		Concurrency: s.cfg.Concurrency,
		Banner:      s.cfg.Banner,
	}
}

// Scan probes every port in the request and returns all outcomes, open or
// not, in completion order.
func (s *Scanner) Scan(ctx context.Context, req Request) []Outcome {
	results := make([]Outcome, 0, len(req.Ports))
	s.ScanStream(ctx, req, func(o Outcome) {
		results = append(results, o)
	})
	return results
}

// ScanStream probes every port in the request and invokes handler for each
// outcome as it completes. The handler runs on a single collector goroutine,
// so completion-order delivery is serialized; first-to-finish reports first.
// Returns the number of probes that completed.
func (s *Scanner) ScanStream(ctx context.Context, req Request, handler func(Outcome)) int {
	if len(req.Ports) == 0 {
		return 0
	}

	prober := NewProber(req)
	return s.run(ctx, req, prober.Probe, handler)
}

func (s *Scanner) run(ctx context.Context, req Request, probe probeFunc, handler func(Outcome)) int {
	resultChan := make(chan Outcome, config.Scan.ResultChannelBuffer)

	// The group's limit is the admission gate: at most req.Concurrency probes
	// are in flight at once, and Go blocks scheduling until a slot frees, so
	// scheduling follows port order while completion order is left to the
	// network.
	var g errgroup.Group
	g.SetLimit(req.Concurrency)

	var collectorWg sync.WaitGroup
	count := 0
	collectorWg.Add(1)
	go func() {
		defer collectorWg.Done()
		for outcome := range resultChan {
			count++
			handler(outcome)
		}
	}()

	for _, port := range req.Ports {
		if ctx.Err() != nil {
			break
		}
		port := port
		g.Go(func() error {
			resultChan <- safeProbe(ctx, probe, port)
			return nil
		})
	}

	g.Wait()
	close(resultChan)
	collectorWg.Wait()

	return count
}

// safeProbe contains prober panics so one bad task cannot crash the scan or
// leak an admission slot; the port is reported closed like any other failure.
func safeProbe(ctx context.Context, probe probeFunc, port int) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("probe panic", "port", port, "panic", fmt.Sprint(r))
			outcome = Outcome{Port: port}
		}
	}()
	return probe(ctx, port)
}
