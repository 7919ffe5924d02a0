package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zallec/TCP-PortScanner/pkg/config"
	"github.com/zallec/TCP-PortScanner/pkg/input"
	"github.com/zallec/TCP-PortScanner/pkg/output"
	"github.com/zallec/TCP-PortScanner/pkg/scanner"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// CLI flags
var (
	// Targets
	hostsArg  string
	hostsFile string
	portSpec  string

	// Probing
	timeoutSec  float64
	concurrency int
	bannerFlag  bool

	// Output
	outputFile string

	// Logging
	quiet   bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "tcpscan [flags]",
	Short: "Concurrent TCP port scanner",
	Long: `tcpscan - TCP reachability probing with optional banner grabbing

Attempts a TCP connection to every requested host:port pair under a
per-connection timeout, with a bounded number of probes in flight, and
reports each open port the moment it is found. With --banner, open ports
get one best-effort read; HTTP-like ports (80, 443, 8000, 8080, 8443)
are sent a minimal HTTP/1.0 request first.

Only scan hosts you own or have permission to test.`,

	Example: `  # Scan the well-known range on one host
  tcpscan -H 192.168.1.10

  # Several hosts, explicit ports, banner grabbing
  tcpscan -H example.com,192.168.1.1 -p 22,80,443,8000-8100 --banner

  # Slow network: longer timeout, fewer in-flight probes
  tcpscan -H 10.0.0.5 -p 1-65535 -t 3.0 -c 200

  # Hosts from a file, report to a file
  tcpscan -f hosts.txt -p 22,80 -o report.txt`,

	RunE:          runScan,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("tcpscan %s (commit: %s, built: %s)\n", version, commit, date))

	f := rootCmd.Flags()

	// Targets
	f.StringVarP(&hostsArg, "hosts", "H", "130.0.0.1", "Comma-separated hostnames or IPs to scan")
	f.StringVarP(&hostsFile, "file", "f", "", "Read hosts from file (one per line)")
	f.StringVarP(&portSpec, "ports", "p", "1-1024", `Ports to scan, e.g. "22,80,443,8000-8100"`)

	// Probing
	f.Float64VarP(&timeoutSec, "timeout", "t", 1.0, "Per-connection timeout in seconds")
	f.IntVarP(&concurrency, "concurrency", "c", 500, "Max concurrent connection attempts")
	f.BoolVar(&bannerFlag, "banner", false, "Attempt to read a small banner from open ports")

	// Output
	f.StringVarP(&outputFile, "output", "o", "-", "Report file (- for stdout)")

	// Logging
	f.BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output")
	f.BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	rootCmd.SetUsageTemplate(usageTemplate)
}

func runScan(cmd *cobra.Command, args []string) error {
	initLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, portSet, hosts, err := ResolveScanConfig(ScanFlags{
		Hosts:     hostsArg,
		HostsFile: hostsFile,
		Ports:     portSpec,
		Timeout:   timeoutSec,
		Workers:   concurrency,
		Banner:    bannerFlag,
	})
	if err != nil {
		return err
	}

	report, err := output.NewWriter(outputFile)
	if err != nil {
		return err
	}
	defer report.Close()

	if len(portSet) == 0 {
		return report.Notice("No ports to scan.")
	}

	s := scanner.NewScanner(cfg)

	for _, host := range hosts {
		if ctx.Err() != nil {
			break
		}

		address := input.Resolve(ctx, host)
		if err := report.Header(host, address, portSet, cfg.Timeout, cfg.Concurrency); err != nil {
			return err
		}

		start := time.Now()
		openCount := 0
		probed := s.ScanStream(ctx, s.NewRequest(host, address, portSet), func(o scanner.Outcome) {
			if !o.Open {
				return
			}
			openCount++
			if err := report.Open(host, o); err != nil {
				slog.Error("report write failed", "error", err)
			}
		})

		slog.Info("host scan complete",
			"host", host,
			"probed", probed,
			"open", openCount,
			"duration", time.Since(start).Round(time.Millisecond))
	}

	if ctx.Err() != nil {
		report.Flush()
		fmt.Fprintln(os.Stderr, "\nScan aborted by user")
	}

	return nil
}

func initLogger() {
	var level slog.Level
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func main() {
	config.Init()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

const usageTemplate = `Usage:
  {{.UseLine}}

Examples:
{{.Example}}

Targets:
  -H, --hosts string       Comma-separated hostnames or IPs (default "130.0.0.1")
  -f, --file string        Read hosts from file, one per line
  -p, --ports string       Port spec: single, list, ranges (default "1-1024")

Probing:
  -t, --timeout float      Per-connection timeout in seconds (default 1.0)
  -c, --concurrency int    Max concurrent connection attempts (default 500)
      --banner             Read a small banner from open ports

Output:
  -o, --output string      Report file, - for stdout (default "-")

Logging:
  -q, --quiet              Suppress progress output
  -v, --verbose            Verbose logging

Other:
  -h, --help               Show help
      --version            Show version
`
