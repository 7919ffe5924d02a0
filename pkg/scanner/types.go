package scanner

import "time"

// Outcome is the result of probing a single port. Banner is non-empty only
// when the port is open, banner collection was requested, and the service
// sent data before the read deadline. An Outcome is never mutated after the
// prober returns it.
type Outcome struct {
	Port   int
	Open   bool
	Banner string
}

// Request describes one host scan. It is built once per host and read-only
// for the duration of that scan.
type Request struct {
	Host        string        // host as the user gave it, used in the HTTP Host header
	Address     string        // resolved address actually dialed
	Ports       []int         // ascending, deduplicated
	Timeout     time.Duration // per-connection dial budget
	Concurrency int           // max simultaneously in-flight probes
	Banner      bool          // collect banners from open ports
}

// Config contains scanner configuration shared across hosts
type Config struct {
	Timeout     time.Duration // per-connection timeout
	Concurrency int           // max in-flight probes per host scan
	Banner      bool          // banner collection
}

// DefaultConfig returns default scanner configuration
func DefaultConfig() Config {
	return Config{
		Timeout:     time.Second,
		Concurrency: 500,
		Banner:      false,
	}
}
