package antivirus

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNoScanner is reported when every configured scanner is unreachable.
var ErrNoScanner = errors.New("antivirus: no scanner available")

// ScanResult contains the result of a malware scan
type ScanResult struct {
	Infected    bool   // True if malware was detected or the scan could not complete
	ThreatName  string // Name of detected threat (empty if clean)
	ScannerName string // Name of scanner that produced this result
	Error       error  // Any error that occurred during scanning
}

// Clean reports whether the payload may be stored.
func (r ScanResult) Clean() bool {
	return !r.Infected && r.Error == nil
}

// Scanner is the interface for pluggable antivirus implementations.
// Implementations fail closed: a scan that cannot complete reports Infected.
type Scanner interface {
	Scan(ctx context.Context, filename string, data io.Reader) ScanResult
	Name() string
	Available(ctx context.Context) bool
}

// New picks the scanner for a deployment: clamd when an address is configured, no-op otherwise.
func New(clamdAddress string, timeout time.Duration) Scanner {
	if clamdAddress == "" {
		return NewNoOpScanner()
	}
	return NewClamAVScanner(clamdAddress, timeout)
}

// NoOpScanner always reports clean. Used when no clamd is deployed and in tests.
type NoOpScanner struct{}

var _ Scanner = (*NoOpScanner)(nil)

func NewNoOpScanner() *NoOpScanner {
	return &NoOpScanner{}
}

func (n *NoOpScanner) Scan(ctx context.Context, filename string, data io.Reader) ScanResult {
	return ScanResult{ScannerName: n.Name()}
}

func (n *NoOpScanner) Name() string {
	return "noop"
}

func (n *NoOpScanner) Available(ctx context.Context) bool {
	return true
}
