package vector

// vadd implements VADD/VSUB (spec §4.4): adds (or subtracts) VS and the
// element-specified VT, with the low byte of vco as carry-in, writing the
// unsaturated sum to the accumulator low bank and the signed-saturated
// sum to the destination. The carry is folded into a single wide
// (int32) computation before saturating once, rather than saturating
// before adding the carry, so carry propagation near the signed boundary
// never produces a spurious clamp (spec §4.4).
func (u *Unit) vadd(vd, vs, vtIdx uint32, e uint32, sub bool) {
	vt := ElementSpecifier(u.Regs[vtIdx], e)
	for i := 0; i < NumLanes; i++ {
		carry := int32(0)
		if lane(loByte(u.VCO), i) {
			carry = 1
		}
		a := int32(int16(u.Regs[vs][i]))
		b := int32(int16(vt[i]))
		var raw int32
		if sub {
			raw = a - b - carry
		} else {
			raw = a + b + carry
		}
		u.AccLow[i] = uint16(raw)
		u.Regs[vd][i] = signedSaturate16(raw)
	}
}

// VADD performs the VADD instruction.
func (u *Unit) VADD(vd, vs, vt, e uint32) { u.vadd(vd, vs, vt, e, false) }

// VSUB performs the VSUB instruction.
func (u *Unit) VSUB(vd, vs, vt, e uint32) { u.vadd(vd, vs, vt, e, true) }

// vaddc implements VADDC/VSUBC: unsigned add/sub recording carry-out into
// vco (low byte = carry/borrow, high byte = lanewise result not equal to
// zero modulo 2^16).
func (u *Unit) vaddc(vd, vs, vtIdx uint32, e uint32, sub bool) {
	vt := ElementSpecifier(u.Regs[vtIdx], e)
	var carryByte, neByte uint8
	for i := 0; i < NumLanes; i++ {
		a := int32(uint16(u.Regs[vs][i]))
		b := int32(uint16(vt[i]))
		var wide int32
		if sub {
			wide = a - b
		} else {
			wide = a + b
		}
		result := uint16(wide)
		var carry bool
		if sub {
			carry = wide < 0
		} else {
			carry = wide > 0xFFFF
		}
		setLane(&carryByte, i, carry)
		setLane(&neByte, i, result != 0)
		u.AccLow[i] = result
		u.Regs[vd][i] = result
	}
	u.VCO = withHiByte(withLoByte(u.VCO, carryByte), neByte)
}

// VADDC performs the VADDC instruction.
func (u *Unit) VADDC(vd, vs, vt, e uint32) { u.vaddc(vd, vs, vt, e, false) }

// VSUBC performs the VSUBC instruction.
func (u *Unit) VSUBC(vd, vs, vt, e uint32) { u.vaddc(vd, vs, vt, e, true) }

// VABS implements: 0 where VS=0, -VT (signed-saturated) where VS<0, VT
// where VS>0 (spec §4.4).
func (u *Unit) VABS(vd, vs, vtIdx uint32, e uint32) {
	vt := ElementSpecifier(u.Regs[vtIdx], e)
	for i := 0; i < NumLanes; i++ {
		vsv := int16(u.Regs[vs][i])
		switch {
		case vsv == 0:
			u.Regs[vd][i] = 0
		case vsv < 0:
			u.Regs[vd][i] = signedSaturate16(-int32(int16(vt[i])))
		default:
			u.Regs[vd][i] = vt[i]
		}
	}
}
