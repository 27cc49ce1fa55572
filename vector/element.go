package vector

// ElementSpecifier computes the effective VT operand for a vector-compute
// instruction by broadcasting or replicating lanes of vt per the 4-bit
// specifier e (spec §4.4):
//
//	e=0,1    identity
//	e=2,3    quarter-broadcast (2-lane block)
//	e=4..7   half-broadcast (4-lane block)
//	e=8..15  single-lane broadcast of lane e-8 across all eight lanes
//
// The mapping is built so that applying it twice with the same e is
// idempotent (spec §8), which is the only property the quarter/half
// broadcasts are required to satisfy.
func ElementSpecifier(vt Lanes, e uint32) Lanes {
	var out Lanes
	for i := 0; i < NumLanes; i++ {
		out[i] = vt[broadcastIndex(e, i)]
	}
	return out
}

// broadcastIndex returns the source lane index for destination lane i
// under specifier e.
func broadcastIndex(e uint32, i int) int {
	switch {
	case e <= 1:
		return i
	case e >= 8:
		return int(e - 8)
	case e <= 3:
		return blockIndex(i, int((e-2)*2), 2)
	default: // 4..7
		return blockIndex(i, int(e-4), 4)
	}
}

// blockIndex maps i into the size-block window starting at base, wrapping
// within the block so that a second application is a no-op (base need not
// be block-aligned).
func blockIndex(i, base, block int) int {
	off := ((i - base) % block + block) % block
	return base + off
}
