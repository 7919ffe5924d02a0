package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/zallec/TCP-PortScanner/pkg/config"
	"github.com/zallec/TCP-PortScanner/pkg/scanner"
)

// Writer emits the line-oriented scan report: one header per host, one line
// per open port as it is discovered. Open-port lines are flushed immediately
// so results stream while the scan is still running.
type Writer struct {
	file   *os.File
	writer *bufio.Writer
	count  int
}

// NewWriter creates a report writer to the specified file
// Use "-" (or empty) for stdout
func NewWriter(filename string) (*Writer, error) {
	var file *os.File
	var err error

	if filename == "-" || filename == "" {
		file = os.Stdout
	} else {
		file, err = os.Create(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file: %w", err)
		}
	}

	return &Writer{
		file:   file,
		writer: bufio.NewWriterSize(file, config.Scan.OutputBufferSize),
	}, nil
}

// NewWriterFromWriter creates a report writer from an existing io.Writer
// Useful for testing or custom output destinations
func NewWriterFromWriter(w io.Writer) *Writer {
	return &Writer{
		writer: bufio.NewWriterSize(w, config.Scan.OutputBufferSize),
	}
}

// Header writes the per-host banner line naming the target, its resolved
// address, the port-range bounds, and the scan parameters.
func (w *Writer) Header(host, address string, ports []int, timeout time.Duration, concurrency int) error {
	if len(ports) == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w.writer, "\nScanning %s (%s) ports %d-%d with timeout=%s concurrency=%d\n",
		host, address, ports[0], ports[len(ports)-1], timeout, concurrency)
	if err != nil {
		return err
	}
	return w.writer.Flush()
}

// Open writes one discovered-open-port line
func (w *Writer) Open(host string, o scanner.Outcome) error {
	var err error
	if o.Banner != "" {
		_, err = fmt.Fprintf(w.writer, "%s:%d OPEN  (banner: %s)\n", host, o.Port, o.Banner)
	} else {
		_, err = fmt.Fprintf(w.writer, "%s:%d OPEN\n", host, o.Port)
	}
	if err != nil {
		return err
	}

	w.count++

	// Open ports are rare relative to probes; flush per line so they appear
	// the moment they are known.
	return w.writer.Flush()
}

// Notice writes a free-form report line, such as the empty-port-set note
func (w *Writer) Notice(msg string) error {
	if _, err := fmt.Fprintln(w.writer, msg); err != nil {
		return err
	}
	return w.writer.Flush()
}

// Flush forces any buffered data to be written
func (w *Writer) Flush() error {
	return w.writer.Flush()
}

// Close flushes and closes the writer
func (w *Writer) Close() error {
	if err := w.writer.Flush(); err != nil {
		return err
	}

	// Don't close stdout
	if w.file != nil && w.file != os.Stdout {
		return w.file.Close()
	}

	return nil
}

// Count returns the number of open-port lines written
func (w *Writer) Count() int {
	return w.count
}
