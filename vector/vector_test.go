package vector

import (
	"testing"

	"github.com/go-test/deep"
)

func lanes(v uint16) Lanes {
	var l Lanes
	for i := range l {
		l[i] = v
	}
	return l
}

func TestElementSpecifierIdentity(t *testing.T) {
	vt := Lanes{1, 2, 3, 4, 5, 6, 7, 8}
	got := ElementSpecifier(vt, 0)
	if diff := deep.Equal(got, vt); diff != nil {
		t.Errorf("e=0 identity mismatch: %v", diff)
	}
	got = ElementSpecifier(vt, 1)
	if diff := deep.Equal(got, vt); diff != nil {
		t.Errorf("e=1 identity mismatch: %v", diff)
	}
}

func TestElementSpecifierSingleLaneBroadcast(t *testing.T) {
	vt := Lanes{10, 11, 12, 13, 14, 15, 16, 17}
	for k := 0; k < 8; k++ {
		got := ElementSpecifier(vt, uint32(8+k))
		want := lanes(vt[k])
		if diff := deep.Equal(got, want); diff != nil {
			t.Errorf("e=%d broadcast of lane %d mismatch: %v", 8+k, k, diff)
		}
	}
}

func TestElementSpecifierIdempotent(t *testing.T) {
	vt := Lanes{1, 2, 3, 4, 5, 6, 7, 8}
	for e := uint32(2); e <= 7; e++ {
		once := ElementSpecifier(vt, e)
		twice := ElementSpecifier(once, e)
		if diff := deep.Equal(once, twice); diff != nil {
			t.Errorf("e=%d not idempotent: %v", e, diff)
		}
	}
}

func TestVAddSaturatesWithCarry(t *testing.T) {
	u := New()
	vs, vt, vd := uint32(1), uint32(2), uint32(3)
	u.Regs[vs] = lanes(0x7FFF)
	u.Regs[vt] = lanes(0x0001)
	u.VCO = 0
	u.VADD(vd, vs, vt, 0)
	if diff := deep.Equal(u.Regs[vd], lanes(0x7FFF)); diff != nil {
		t.Errorf("VADD destination = %v, want saturated 0x7FFF: %v", u.Regs[vd], diff)
	}
	if diff := deep.Equal(u.AccLow, lanes(0x8000)); diff != nil {
		t.Errorf("VADD accumulator low = %v, want 0x8000: %v", u.AccLow, diff)
	}
}

func TestVAddCCarryChain(t *testing.T) {
	u := New()
	vs, vt, vd := uint32(1), uint32(2), uint32(3)
	u.Regs[vs] = lanes(0xFFFF)
	u.Regs[vt] = lanes(0x0001)
	u.VADDC(vd, vs, vt, 0)
	if diff := deep.Equal(u.Regs[vd], lanes(0x0000)); diff != nil {
		t.Errorf("VADDC destination = %v, want 0: %v", u.Regs[vd], diff)
	}
	if diff := deep.Equal(u.AccLow, lanes(0x0000)); diff != nil {
		t.Errorf("VADDC accumulator low = %v, want 0: %v", u.AccLow, diff)
	}
	if got, want := u.VCO&0xFF, uint16(0xFF); got != want {
		t.Errorf("vco low byte = %.2X, want %.2X", got, want)
	}
	if got, want := (u.VCO>>8)&0xFF, uint16(0x00); got != want {
		t.Errorf("vco high byte = %.2X, want %.2X", got, want)
	}
}

func TestVMulMacRoundTrip(t *testing.T) {
	u := New()
	vs, vt, vd := uint32(1), uint32(2), uint32(3)
	u.Regs[vs] = lanes(0x1234)
	u.Regs[vt] = lanes(0x0056)

	u.VMUDH(vd, vs, vt, 0)
	mid := u.AccMid
	u.VSAR(4, 1)
	if diff := deep.Equal(u.Regs[4], mid); diff != nil {
		t.Errorf("VSAR(mid) after VMUDH mismatch: %v", diff)
	}
}

func TestVMACFThenVSAR(t *testing.T) {
	u := New()
	vs, vt, vd := uint32(1), uint32(2), uint32(3)
	u.Regs[vs] = lanes(0x0100)
	u.Regs[vt] = lanes(0x0080)
	u.VMACF(vd, vs, vt, 0)
	wantMid := u.AccMid
	u.VSAR(5, 1)
	if diff := deep.Equal(u.Regs[5], wantMid); diff != nil {
		t.Errorf("VSAR(1) after VMACF = %v, want mid bank %v: %v", u.Regs[5], wantMid, diff)
	}
}

func TestVAbsSpecialCase(t *testing.T) {
	u := New()
	vs, vt, vd := uint32(1), uint32(2), uint32(3)
	u.Regs[vs] = lanes(0xFFFF) // -1, negative
	u.Regs[vt] = lanes(0x8000) // most negative
	u.VABS(vd, vs, vt, 0)
	if diff := deep.Equal(u.Regs[vd], lanes(0x7FFF)); diff != nil {
		t.Errorf("VABS(-1, 0x8000) = %v, want saturated 0x7FFF: %v", u.Regs[vd], diff)
	}
}

func TestReciprocalZero(t *testing.T) {
	if got, want := reciprocal32(0), uint32(0x7FFFFFFF); got != want {
		t.Errorf("reciprocal32(0) = %#x, want %#x", got, want)
	}
}

func TestReciprocalMinBoundary(t *testing.T) {
	if got, want := reciprocal32(-0x8000), uint32(0xFFFF0000); got != want {
		t.Errorf("reciprocal32(-0x8000) = %#x, want %#x", got, want)
	}
}

func TestReciprocalApproximatesInverse(t *testing.T) {
	for _, d := range []int32{1, 2, 3, 100, 1000, 0x7FFF} {
		got := reciprocal32(d)
		want := float64(1<<31) / float64(d)
		gotF := float64(got)
		diffPct := (gotF - want) / want
		if diffPct < 0 {
			diffPct = -diffPct
		}
		if diffPct > 0.01 {
			t.Errorf("reciprocal32(%d) = %d, want ~%.1f (%.4f%% off)", d, got, want, diffPct*100)
		}
	}
}

func TestReciprocalProtocolSinglePrecision(t *testing.T) {
	u := New()
	vt, vd := uint32(1), uint32(2)
	u.Regs[vt] = lanes(uint16(100))
	u.VRCPL(vd, vt, 0)
	if u.DoublePrecision {
		t.Errorf("doublePrecision left set after VRCPL")
	}
	want := reciprocal32(100)
	if got := uint32(u.Regs[vd][0]); got != want&0xFFFF {
		t.Errorf("VRCPL destination lane = %#x, want low half %#x", got, want&0xFFFF)
	}
	if u.DivOut != want {
		t.Errorf("divOut = %#x, want %#x", u.DivOut, want)
	}
}

func TestReciprocalProtocolDoublePrecision(t *testing.T) {
	u := New()
	vt, vd := uint32(1), uint32(2)
	u.Regs[vt] = Lanes{0, 0, 0, 0, 0, 0, 0, 0x0002}
	u.VRCPH(vd, vt, 7)
	if !u.DoublePrecision {
		t.Errorf("doublePrecision not set after VRCPH")
	}
	if u.DivIn != 0x00020000 {
		t.Errorf("divIn = %#x, want 0x00020000", u.DivIn)
	}
	u.Regs[vt][7] = 0x0000
	u.VRCPL(vd, vt, 7)
	want := reciprocal32(0x00020000)
	if u.DivOut != want {
		t.Errorf("divOut = %#x, want %#x", u.DivOut, want)
	}
	if u.DoublePrecision {
		t.Errorf("doublePrecision not reset after VRCPL")
	}
}

func TestVMrgSelectsByVCC(t *testing.T) {
	u := New()
	vs, vt, vd := uint32(1), uint32(2), uint32(3)
	u.Regs[vs] = Lanes{1, 1, 1, 1, 1, 1, 1, 1}
	u.Regs[vt] = Lanes{2, 2, 2, 2, 2, 2, 2, 2}
	u.VCC = 0x00FF // all lanes select VS (low byte set)
	u.VMRG(vd, vs, vt, 0)
	if diff := deep.Equal(u.Regs[vd], u.Regs[vs]); diff != nil {
		t.Errorf("VMRG with vcc low=0xFF should select VS: %v", diff)
	}
	u.VCC = 0x0000
	u.VMRG(vd, vs, vt, 0)
	if diff := deep.Equal(u.Regs[vd], u.Regs[vt]); diff != nil {
		t.Errorf("VMRG with vcc low=0 should select VT: %v", diff)
	}
}

func TestVINVSetsNoWriteback(t *testing.T) {
	u := New()
	u.VINV()
	if !u.NoWriteback {
		t.Errorf("VINV did not set NoWriteback")
	}
}

func TestVSARDefaultZeroesDestination(t *testing.T) {
	u := New()
	u.AccHigh = lanes(0xFFFF)
	u.VSAR(1, 7) // invalid selector
	if diff := deep.Equal(u.Regs[1], Lanes{}); diff != nil {
		t.Errorf("VSAR with unrecognized selector = %v, want zero: %v", u.Regs[1], diff)
	}
}
