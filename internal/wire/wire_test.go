package wire

import (
	"encoding/binary"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/Lerokbel/BarberShop/internal/model"
)

func pipeConns(t *testing.T) (*Conn, *Conn) {
	t.Helper()
	a, b := net.Pipe()
	t.Cleanup(func() {
		a.Close()
		b.Close()
	})
	return NewConn(a), NewConn(b)
}

func TestFrameRoundTrip(t *testing.T) {
	left, right := pipeConns(t)

	sent := model.Purpose{ID: 7, Name: "haircut", Cost: 1500}

	errCh := make(chan error, 1)
	go func() {
		errCh <- left.WriteFrame(KindPurpose, sent)
	}()

	var got model.Purpose
	if err := right.Expect(KindPurpose, &got); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := <-errCh; err != nil {
		t.Fatalf("write: %v", err)
	}
	if got != sent {
		t.Fatalf("round trip mismatch: sent %+v, got %+v", sent, got)
	}
}

func TestFrameOrderingPreserved(t *testing.T) {
	left, right := pipeConns(t)

	go func() {
		left.WriteFrame(KindString, "first")
		left.WriteFrame(KindString, "second")
		left.WriteFrame(KindInt, uint(3))
	}()

	var s string
	if err := right.Expect(KindString, &s); err != nil || s != "first" {
		t.Fatalf("frame 1: got %q, err %v", s, err)
	}
	if err := right.Expect(KindString, &s); err != nil || s != "second" {
		t.Fatalf("frame 2: got %q, err %v", s, err)
	}
	var n uint
	if err := right.Expect(KindInt, &n); err != nil || n != 3 {
		t.Fatalf("frame 3: got %d, err %v", n, err)
	}
}

func TestExpectKindMismatch(t *testing.T) {
	left, right := pipeConns(t)

	go left.WriteFrame(KindString, "not a purpose")

	var p model.Purpose
	err := right.Expect(KindPurpose, &p)
	if err == nil {
		t.Fatalf("expected error on kind mismatch")
	}
	var chErr *ChannelError
	if !errors.As(err, &chErr) {
		t.Fatalf("expected ChannelError, got %T: %v", err, err)
	}
	if chErr.Op != "decode" {
		t.Fatalf("expected decode error, got op %q", chErr.Op)
	}
}

func TestReadTruncatedStream(t *testing.T) {
	a, b := net.Pipe()
	defer b.Close()
	right := NewConn(b)

	// Обрыв посреди кадра: заголовок обещает 100 байт, приходит 3.
	go func() {
		var hdr [5]byte
		hdr[0] = byte(KindString)
		binary.BigEndian.PutUint32(hdr[1:], 100)
		a.Write(hdr[:])
		a.Write([]byte("abc"))
		a.Close()
	}()

	if _, _, err := right.ReadFrame(); err == nil {
		t.Fatalf("expected error on truncated frame")
	}
}

func TestReadOversizeFrameRejected(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()
	right := NewConn(b)

	go func() {
		var hdr [5]byte
		hdr[0] = byte(KindString)
		binary.BigEndian.PutUint32(hdr[1:], MaxFrameSize+1)
		a.Write(hdr[:])
	}()

	_, _, err := right.ReadFrame()
	if err == nil {
		t.Fatalf("expected error on oversize frame")
	}
	var chErr *ChannelError
	if !errors.As(err, &chErr) || chErr.Op != "read" {
		t.Fatalf("expected read ChannelError, got %v", err)
	}
}

func TestIdleTimeout(t *testing.T) {
	_, right := pipeConns(t)
	right.SetIdleTimeout(20 * time.Millisecond)

	start := time.Now()
	if _, _, err := right.ReadFrame(); err == nil {
		t.Fatalf("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("read did not time out promptly, took %v", elapsed)
	}
}
