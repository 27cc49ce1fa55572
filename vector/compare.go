package vector

// The compare family (spec §4.4) writes a lanewise boolean into vcc,
// selects VS or VT into the destination per lane according to that
// boolean, and updates vco/vce. VEQ/VNE/VLT/VGE clear vco after
// executing; VCH additionally computes vce.

func (u *Unit) compareSimple(vd, vs, vtIdx, e uint32, cond func(vs, vt int16) bool) {
	vt := ElementSpecifier(u.Regs[vtIdx], e)
	var lowByte uint8
	for i := 0; i < NumLanes; i++ {
		c := cond(int16(u.Regs[vs][i]), int16(vt[i]))
		setLane(&lowByte, i, c)
		if c {
			u.Regs[vd][i] = u.Regs[vs][i]
		} else {
			u.Regs[vd][i] = vt[i]
		}
	}
	u.VCC = withLoByte(u.VCC, lowByte)
	u.VCO = 0
}

// VEQ sets the destination to VS where VS == VT, else VT.
func (u *Unit) VEQ(vd, vs, vt, e uint32) {
	u.compareSimple(vd, vs, vt, e, func(a, b int16) bool { return a == b })
}

// VNE sets the destination to VS where VS != VT, else VT.
func (u *Unit) VNE(vd, vs, vt, e uint32) {
	u.compareSimple(vd, vs, vt, e, func(a, b int16) bool { return a != b })
}

// VLT sets the destination to VS where VS < VT, or VS == VT and the
// carry-in (the vco low byte from before this instruction ran) was set.
func (u *Unit) VLT(vd, vs, vtIdx, e uint32) {
	carryIn := loByte(u.VCO)
	vt := ElementSpecifier(u.Regs[vtIdx], e)
	var lowByte uint8
	for i := 0; i < NumLanes; i++ {
		a, b := int16(u.Regs[vs][i]), int16(vt[i])
		c := a < b || (a == b && lane(carryIn, i))
		setLane(&lowByte, i, c)
		if c {
			u.Regs[vd][i] = u.Regs[vs][i]
		} else {
			u.Regs[vd][i] = vt[i]
		}
	}
	u.VCC = withLoByte(u.VCC, lowByte)
	u.VCO = 0
}

// VGE sets the destination to VS where VS > VT, or VS == VT and the
// carry-in was clear.
func (u *Unit) VGE(vd, vs, vtIdx, e uint32) {
	carryIn := loByte(u.VCO)
	vt := ElementSpecifier(u.Regs[vtIdx], e)
	var lowByte uint8
	for i := 0; i < NumLanes; i++ {
		a, b := int16(u.Regs[vs][i]), int16(vt[i])
		c := a > b || (a == b && !lane(carryIn, i))
		setLane(&lowByte, i, c)
		if c {
			u.Regs[vd][i] = u.Regs[vs][i]
		} else {
			u.Regs[vd][i] = vt[i]
		}
	}
	u.VCC = withLoByte(u.VCC, lowByte)
	u.VCO = 0
}

// VCH ("clip high") compares VS against +-VT depending on whether the two
// operands' signs differ, and records the boundary-equality case into
// vce (spec §4.4).
func (u *Unit) VCH(vd, vs, vtIdx, e uint32) {
	vt := ElementSpecifier(u.Regs[vtIdx], e)
	var lowByte, vce uint8
	for i := 0; i < NumLanes; i++ {
		a := int32(int16(u.Regs[vs][i]))
		b := int32(int16(vt[i]))
		negSigns := (a ^ b) < 0
		target := b
		if negSigns {
			target = -b
		}
		c := a <= target
		setLane(&lowByte, i, c)
		setLane(&vce, i, a == target)
		if c {
			u.Regs[vd][i] = u.Regs[vs][i]
		} else {
			u.Regs[vd][i] = vt[i]
		}
	}
	u.VCC = withLoByte(u.VCC, lowByte)
	u.VCE = vce
}

// VCL ("clip low") mirrors VCH but takes a per-lane carry from the vco low
// byte (set: VS <= target, clear: VS >= target) and leaves vce unchanged
// (spec §4.4). Neither VCH nor VCL writes vco.
func (u *Unit) VCL(vd, vs, vtIdx, e uint32) {
	carryIn := loByte(u.VCO)
	vt := ElementSpecifier(u.Regs[vtIdx], e)
	var lowByte uint8
	for i := 0; i < NumLanes; i++ {
		a := int32(int16(u.Regs[vs][i]))
		b := int32(int16(vt[i]))
		negSigns := (a ^ b) < 0
		target := b
		if negSigns {
			target = -b
		}
		var c bool
		if lane(carryIn, i) {
			c = a <= target
		} else {
			c = a >= target
		}
		setLane(&lowByte, i, c)
		if c {
			u.Regs[vd][i] = u.Regs[vs][i]
		} else {
			u.Regs[vd][i] = vt[i]
		}
	}
	u.VCC = withLoByte(u.VCC, lowByte)
}

// VCR ("clip range") is VCH without the vce side effect.
func (u *Unit) VCR(vd, vs, vtIdx, e uint32) {
	vt := ElementSpecifier(u.Regs[vtIdx], e)
	var lowByte uint8
	for i := 0; i < NumLanes; i++ {
		a := int32(int16(u.Regs[vs][i]))
		b := int32(int16(vt[i]))
		negSigns := (a ^ b) < 0
		target := b
		if negSigns {
			target = -b
		}
		c := a <= target
		setLane(&lowByte, i, c)
		if c {
			u.Regs[vd][i] = u.Regs[vs][i]
		} else {
			u.Regs[vd][i] = vt[i]
		}
	}
	u.VCC = withLoByte(u.VCC, lowByte)
}
