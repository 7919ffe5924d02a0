package main

import (
	"fmt"
	"time"

	"github.com/zallec/TCP-PortScanner/pkg/input"
	"github.com/zallec/TCP-PortScanner/pkg/ports"
	"github.com/zallec/TCP-PortScanner/pkg/scanner"
)

// ScanFlags represents the raw CLI flag values before validation
type ScanFlags struct {
	Hosts     string  // comma-separated hosts
	HostsFile string  // file with one host per line; overrides Hosts
	Ports     string  // port spec, e.g. "22,80,8000-8100"
	Timeout   float64 // per-connection timeout in seconds
	Workers   int     // max in-flight probes
	Banner    bool    // banner collection
}

// ResolveScanConfig validates flags and produces the scanner configuration,
// the parsed port set, and the host list. A bad port spec or parameter is a
// configuration error: it aborts before any scanning starts.
func ResolveScanConfig(flags ScanFlags) (scanner.Config, []int, []string, error) {
	if flags.Timeout <= 0 {
		return scanner.Config{}, nil, nil, fmt.Errorf("timeout must be positive, got %g", flags.Timeout)
	}
	if flags.Workers <= 0 {
		return scanner.Config{}, nil, nil, fmt.Errorf("concurrency must be positive, got %d", flags.Workers)
	}

	portSet, err := ports.Parse(flags.Ports)
	if err != nil {
		return scanner.Config{}, nil, nil, err
	}

	var hosts []string
	if flags.HostsFile != "" {
		hosts, err = input.ParseFile(flags.HostsFile)
		if err != nil {
			return scanner.Config{}, nil, nil, err
		}
	} else {
		hosts = input.ParseHosts([]string{flags.Hosts})
	}

	cfg := scanner.Config{
		Timeout:     time.Duration(flags.Timeout * float64(time.Second)),
		Concurrency: flags.Workers,
		Banner:      flags.Banner,
	}
	return cfg, portSet, hosts, nil
}
