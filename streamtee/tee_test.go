package streamtee

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"
)

func TestTeeDuplicatesBytes(t *testing.T) {
	fast, slow := New(context.Background(), strings.NewReader("hello world"), 8)

	fastBytes, err := io.ReadAll(fast)
	if err != nil {
		t.Fatalf("fast read: %v", err)
	}
	slowBytes, err := io.ReadAll(slow)
	if err != nil {
		t.Fatalf("slow read: %v", err)
	}
	if string(fastBytes) != "hello world" {
		t.Fatalf("fast got %q", fastBytes)
	}
	if !bytes.Equal(fastBytes, slowBytes) {
		t.Fatalf("slow got %q, want %q", slowBytes, fastBytes)
	}
}

func TestTeeFastCancelStopsSlow(t *testing.T) {
	pr, pw := io.Pipe()
	fast, slow := New(context.Background(), pr, 8)

	go func() {
		pw.Write([]byte("chunk1"))
	}()

	buf := make([]byte, 6)
	if _, err := io.ReadFull(fast, buf); err != nil {
		t.Fatalf("fast read: %v", err)
	}

	fast.Cancel()
	pw.CloseWithError(io.EOF)

	// the slow side must observe closure promptly once the source and it are
	// both torn down; it should not hang waiting for more data.
	done := make(chan struct{})
	go func() {
		io.ReadAll(slow)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("slow reader did not unblock after fast cancel")
	}
}

func TestTeeSlowCancelDoesNotAffectFast(t *testing.T) {
	fast, slow := New(context.Background(), strings.NewReader("abcdefgh"), 8)
	slow.Cancel()

	got, err := io.ReadAll(fast)
	if err != nil {
		t.Fatalf("fast read: %v", err)
	}
	if string(got) != "abcdefgh" {
		t.Fatalf("fast got %q", got)
	}
}

func TestTeeSlowBacklogCapForcesCancel(t *testing.T) {
	pr, pw := io.Pipe()
	fast, slow := New(context.Background(), pr, 1)

	go func() {
		pw.Write([]byte{1})
		pw.Write([]byte{2})
		pw.Write([]byte{3})
		pw.CloseWithError(io.EOF)
	}()

	// drain fast fully without ever reading slow, so the slow channel backs
	// up past its cap of 1 and gets force-cancelled.
	io.ReadAll(fast)

	got, err := io.ReadAll(slow)
	if err != io.ErrUnexpectedEOF {
		t.Fatalf("slow read error = %v, want io.ErrUnexpectedEOF", err)
	}
	if len(got) > 1 {
		t.Fatalf("expected slow to be cancelled after falling behind, got %d bytes", len(got))
	}
}
