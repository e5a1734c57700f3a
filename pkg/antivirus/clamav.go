package antivirus

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

// ClamAVScanner talks to a clamd daemon over TCP or a unix socket.
type ClamAVScanner struct {
	address string        // "host:port" or "/path/to/clamd.sock"
	timeout time.Duration // per-scan deadline
}

var _ Scanner = (*ClamAVScanner)(nil)

// NewClamAVScanner creates a ClamAV scanner. A non-positive timeout defaults to 30s.
func NewClamAVScanner(address string, timeout time.Duration) *ClamAVScanner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ClamAVScanner{
		address: address,
		timeout: timeout,
	}
}

func (c *ClamAVScanner) Name() string {
	return "clamav"
}

func (c *ClamAVScanner) network() string {
	if strings.HasPrefix(c.address, "/") {
		return "unix"
	}
	return "tcp"
}

func (c *ClamAVScanner) dial(ctx context.Context, timeout time.Duration) (net.Conn, error) {
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, c.network(), c.address)
	if err != nil {
		return nil, err
	}
	deadline := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	_ = conn.SetDeadline(deadline)
	return conn, nil
}

// Available sends PING and expects PONG.
func (c *ClamAVScanner) Available(ctx context.Context) bool {
	conn, err := c.dial(ctx, 5*time.Second)
	if err != nil {
		return false
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("zPING\x00")); err != nil {
		return false
	}

	buf := make([]byte, 16)
	n, err := conn.Read(buf)
	if err != nil && err != io.EOF {
		return false
	}
	return strings.HasPrefix(string(buf[:n]), "PONG")
}

// Scan streams the payload with the zINSTREAM command as a single chunk.
//
// Responses: "stream: OK", "stream: <threat> FOUND", "<message> ERROR".
func (c *ClamAVScanner) Scan(ctx context.Context, filename string, data io.Reader) ScanResult {
	result := ScanResult{ScannerName: c.Name()}
	fail := func(format string, err error) ScanResult {
		result.Infected = true
		result.Error = fmt.Errorf(format, err)
		return result
	}

	payload, err := io.ReadAll(data)
	if err != nil {
		return fail("antivirus: read payload: %w", err)
	}

	conn, err := c.dial(ctx, c.timeout)
	if err != nil {
		return fail("antivirus: connect to clamd: %w", err)
	}
	defer conn.Close()

	var frame bytes.Buffer
	frame.WriteString("zINSTREAM\x00")
	var size [4]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(payload)))
	frame.Write(size[:])
	frame.Write(payload)
	frame.Write([]byte{0, 0, 0, 0}) // end of stream

	if _, err := conn.Write(frame.Bytes()); err != nil {
		return fail("antivirus: send stream: %w", err)
	}

	reply, err := io.ReadAll(conn)
	if err != nil && len(reply) == 0 {
		return fail("antivirus: read reply: %w", err)
	}

	return parseReply(result, strings.TrimRight(string(reply), "\x00\r\n "))
}

func parseReply(result ScanResult, reply string) ScanResult {
	switch {
	case strings.HasSuffix(reply, "FOUND"):
		result.Infected = true
		if _, threat, ok := strings.Cut(reply, ":"); ok {
			result.ThreatName = strings.TrimSpace(strings.TrimSuffix(threat, "FOUND"))
		}
	case strings.HasSuffix(reply, "ERROR"):
		result.Infected = true
		result.Error = fmt.Errorf("antivirus: scan error: %s", reply)
	case strings.HasSuffix(reply, "OK"):
	default:
		result.Infected = true
		result.Error = fmt.Errorf("antivirus: unexpected reply %q", reply)
	}
	return result
}
