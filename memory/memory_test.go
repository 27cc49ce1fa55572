package memory

import (
	"testing"

	"github.com/go-test/deep"
)

func TestAddrMask(t *testing.T) {
	b := New()
	b.Write(0x0000, 0xAB)
	// Address 0x1000 aliases 0x0000 since the window is 4 KiB (spec §3: mask 0xFFF).
	if got, want := b.Read(0x1000), uint8(0xAB); got != want {
		t.Errorf("Read(0x1000) = %.2X, want %.2X (should alias 0x0000)", got, want)
	}
}

func TestBigEndian16(t *testing.T) {
	b := New()
	Write16(b, 0x10, 0x1234)
	if got, want := b.Read(0x10), uint8(0x12); got != want {
		t.Errorf("high byte = %.2X, want %.2X", got, want)
	}
	if got, want := b.Read(0x11), uint8(0x34); got != want {
		t.Errorf("low byte = %.2X, want %.2X", got, want)
	}
	if got, want := Read16(b, 0x10), uint16(0x1234); got != want {
		t.Errorf("Read16 = %.4X, want %.4X", got, want)
	}
}

func TestBigEndian32RoundTrip(t *testing.T) {
	b := New()
	want := uint32(0xDEADBEEF)
	Write32(b, 0x100, want)
	if got := Read32(b, 0x100); got != want {
		t.Errorf("Read32 = %.8X, want %.8X", got, want)
	}
	wantBytes := []uint8{0xDE, 0xAD, 0xBE, 0xEF}
	if diff := deep.Equal(b.Bytes()[0x100:0x104], wantBytes); diff != nil {
		t.Errorf("byte layout mismatch: %v", diff)
	}
}

func TestBlockRoundTrip(t *testing.T) {
	b := New()
	data := []uint8{0, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88, 0x99, 0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}[1:]
	WriteBlock(b, 0x10, data)
	got := ReadBlock(b, 0x10, len(data))
	if diff := deep.Equal(got, data); diff != nil {
		t.Errorf("block round trip mismatch: %v", diff)
	}
}

func TestBlockWraps(t *testing.T) {
	b := New()
	WriteBlock(b, 0x0FFE, []uint8{0xAA, 0xBB, 0xCC, 0xDD})
	if got, want := b.Read(0x0FFE), uint8(0xAA); got != want {
		t.Errorf("Read(0x0FFE) = %.2X, want %.2X", got, want)
	}
	if got, want := b.Read(0x0000), uint8(0xCC); got != want {
		t.Errorf("Read(0x0000) after wrap = %.2X, want %.2X", got, want)
	}
	if got, want := b.Read(0x0001), uint8(0xDD); got != want {
		t.Errorf("Read(0x0001) after wrap = %.2X, want %.2X", got, want)
	}
}
