package input

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/zallec/TCP-PortScanner/pkg/config"
)

// ParseHosts splits command-line host arguments (comma-separated, possibly
// repeated) into a flat list, trimming whitespace and dropping empty tokens.
func ParseHosts(args []string) []string {
	var hosts []string

	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			hosts = append(hosts, part)
		}
	}

	return hosts
}

// ParseFile reads hosts from a file (one per line)
// Blank lines and #-comments are skipped
func ParseFile(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var hosts []string
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		hosts = append(hosts, ParseHosts([]string{line})...)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return hosts, nil
}

// Resolve turns a hostname into a connectable address literal. The first
// resolver result wins, whatever its address family. On any lookup failure
// the original name is returned unchanged so the probe layer surfaces the
// real error per target; resolution is never fatal to a run.
func Resolve(ctx context.Context, host string) string {
	ctx, cancel := context.WithTimeout(ctx, config.Scan.ResolveTimeout)
	defer cancel()

	addrs, err := net.DefaultResolver.LookupHost(ctx, host)
	if err != nil || len(addrs) == 0 {
		return host
	}
	return addrs[0]
}
