package main

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zallec/TCP-PortScanner/pkg/ports"
)

func defaultFlags() ScanFlags {
	return ScanFlags{
		Hosts:   "130.0.0.1",
		Ports:   "1-1024",
		Timeout: 1.0,
		Workers: 500,
	}
}

func TestResolveScanConfig_Defaults(t *testing.T) {
	cfg, portSet, hosts, err := ResolveScanConfig(defaultFlags())
	require.NoError(t, err)

	assert.Equal(t, time.Second, cfg.Timeout)
	assert.Equal(t, 500, cfg.Concurrency)
	assert.False(t, cfg.Banner)

	assert.Len(t, portSet, 1024)
	assert.Equal(t, 1, portSet[0])
	assert.Equal(t, 1024, portSet[len(portSet)-1])

	assert.Equal(t, []string{"130.0.0.1"}, hosts)
}

func TestResolveScanConfig_FractionalTimeout(t *testing.T) {
	flags := defaultFlags()
	flags.Timeout = 0.25

	cfg, _, _, err := ResolveScanConfig(flags)
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
}

func TestResolveScanConfig_MultipleHosts(t *testing.T) {
	flags := defaultFlags()
	flags.Hosts = "example.com, 192.168.1.1,,10.0.0.1"

	_, _, hosts, err := ResolveScanConfig(flags)
	require.NoError(t, err)

	assert.Equal(t, []string{"example.com", "192.168.1.1", "10.0.0.1"}, hosts)
}

func TestResolveScanConfig_HostsFile(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "hosts_*.txt")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.WriteString("# targets\nexample.com\n192.168.1.1\n")
	require.NoError(t, err)
	tmpfile.Close()

	flags := defaultFlags()
	flags.HostsFile = tmpfile.Name()

	_, _, hosts, err := ResolveScanConfig(flags)
	require.NoError(t, err)

	assert.Equal(t, []string{"example.com", "192.168.1.1"}, hosts)
}

func TestResolveScanConfig_EmptyPortSpec(t *testing.T) {
	// An empty port spec is a no-op scan, not a configuration error
	flags := defaultFlags()
	flags.Ports = " , "

	_, portSet, _, err := ResolveScanConfig(flags)
	require.NoError(t, err)
	assert.Empty(t, portSet)
}

func TestResolveScanConfig_BadPortSpec(t *testing.T) {
	flags := defaultFlags()
	flags.Ports = "22,bogus"

	_, _, _, err := ResolveScanConfig(flags)
	require.Error(t, err)

	var specErr *ports.InvalidSpecError
	require.ErrorAs(t, err, &specErr)
	assert.Equal(t, "bogus", specErr.Token)
}

func TestResolveScanConfig_InvalidParameters(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ScanFlags)
	}{
		{"Zero timeout", func(f *ScanFlags) { f.Timeout = 0 }},
		{"Negative timeout", func(f *ScanFlags) { f.Timeout = -1 }},
		{"Zero concurrency", func(f *ScanFlags) { f.Workers = 0 }},
		{"Negative concurrency", func(f *ScanFlags) { f.Workers = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := defaultFlags()
			tt.mutate(&flags)

			_, _, _, err := ResolveScanConfig(flags)
			assert.Error(t, err)
		})
	}
}
