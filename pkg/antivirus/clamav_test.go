package antivirus

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClamd accepts one connection, consumes an INSTREAM request and answers with reply.
func fakeClamd(t *testing.T, reply string) (string, <-chan []byte) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		cmd := make([]byte, len("zINSTREAM\x00"))
		if _, err := io.ReadFull(conn, cmd); err != nil {
			return
		}
		var size [4]byte
		if _, err := io.ReadFull(conn, size[:]); err != nil {
			return
		}
		payload := make([]byte, binary.BigEndian.Uint32(size[:]))
		if _, err := io.ReadFull(conn, payload); err != nil {
			return
		}
		var end [4]byte
		if _, err := io.ReadFull(conn, end[:]); err != nil {
			return
		}
		received <- payload
		_, _ = conn.Write([]byte(reply + "\x00"))
	}()

	return ln.Addr().String(), received
}

func TestClamAVScanner_Clean(t *testing.T) {
	addr, received := fakeClamd(t, "stream: OK")
	scanner := NewClamAVScanner(addr, 2*time.Second)

	result := scanner.Scan(context.Background(), "cv.pdf", bytes.NewReader([]byte("%PDF-1.4")))

	assert.True(t, result.Clean())
	assert.Equal(t, "clamav", result.ScannerName)
	assert.Equal(t, []byte("%PDF-1.4"), <-received)
}

func TestClamAVScanner_Infected(t *testing.T) {
	addr, _ := fakeClamd(t, "stream: Eicar-Test-Signature FOUND")
	scanner := NewClamAVScanner(addr, 2*time.Second)

	result := scanner.Scan(context.Background(), "cv.pdf", bytes.NewReader([]byte("X5O!P%@AP")))

	assert.True(t, result.Infected)
	assert.Equal(t, "Eicar-Test-Signature", result.ThreatName)
	assert.False(t, result.Clean())
}

func TestClamAVScanner_FailsClosedWhenUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	result := NewClamAVScanner(addr, time.Second).Scan(context.Background(), "cv.pdf", bytes.NewReader([]byte("x")))

	assert.True(t, result.Infected)
	assert.Error(t, result.Error)
}

func TestParseReply(t *testing.T) {
	assert.True(t, parseReply(ScanResult{}, "stream: OK").Clean())
	assert.Error(t, parseReply(ScanResult{}, "INSTREAM size limit exceeded. ERROR").Error)
	assert.True(t, parseReply(ScanResult{}, "garbage").Infected)
}

func TestNewPicksImplementation(t *testing.T) {
	assert.Equal(t, "noop", New("", 0).Name())
	assert.Equal(t, "clamav", New("localhost:3310", 0).Name())
}
