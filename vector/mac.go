package vector

// The multiply-accumulate family (spec §4.4) consolidates what the
// original source implemented as three overlapping drafts into one
// definition: every member computes a lanewise product under a
// suffix-specific signed/unsigned rule, either overwrites ("MU" spellings
// VMULx/VMUDx) or adds to ("MA" spellings VMACx/VMADx) the 48-bit
// accumulator, and extracts a saturated destination lane under a
// suffix-specific rule. All products are accumulated at the same
// alignment; nothing here depends on which of L/M/N/H produced a given
// accumulator value, only on which one is asked to read it back out
// (VSAR, or the instruction's own destination extract).

type macProduct func(vs, vt uint16) int64

func signedProduct(vs, vt uint16) int64 {
	return int64(int16(vs)) * int64(int16(vt))
}

func unsignedProduct(vs, vt uint16) int64 {
	return int64(uint16(vs)) * int64(uint16(vt))
}

func signedUnsignedProduct(vs, vt uint16) int64 {
	return int64(int16(vs)) * int64(uint16(vt))
}

func unsignedSignedProduct(vs, vt uint16) int64 {
	return int64(uint16(vs)) * int64(int16(vt))
}

func doubledSignedProduct(vs, vt uint16) int64 { return 2 * signedProduct(vs, vt) }
func doubledUnsignedProduct(vs, vt uint16) int64 { return 2 * unsignedProduct(vs, vt) }

type macExtract func(acc int64) uint16

func extractFractional(acc int64) uint16 { return signedSaturate16(int32(acc >> 16)) }
func extractUnsigned(acc int64) uint16   { return unsignedSaturate16(int32(acc >> 16)) }

// extractLow implements the "L" destination clamp: 0 when the upper 32
// bits of the accumulator are negative, 0xFFFF when they are positive
// (overflow out of the low 16 bits occurred), otherwise the raw low bank
// (spec §4.4).
func extractLow(acc int64) uint16 {
	upper := int32(acc >> 16)
	switch {
	case upper < 0:
		return 0
	case upper > 0:
		return 0xFFFF
	default:
		return uint16(acc)
	}
}

func (u *Unit) mac(vd, vs, vtIdx, e uint32, product macProduct, extract macExtract, isMAC bool) {
	vt := ElementSpecifier(u.Regs[vtIdx], e)
	for i := 0; i < NumLanes; i++ {
		p := product(u.Regs[vs][i], vt[i])
		if isMAC {
			u.setAcc(i, u.acc(i)+p)
		} else {
			u.setAcc(i, p)
		}
		u.Regs[vd][i] = extract(u.acc(i))
	}
}

func (u *Unit) VMULF(vd, vs, vt, e uint32) {
	u.mac(vd, vs, vt, e, doubledSignedProduct, extractFractional, false)
}
func (u *Unit) VMULU(vd, vs, vt, e uint32) {
	u.mac(vd, vs, vt, e, doubledUnsignedProduct, extractUnsigned, false)
}
func (u *Unit) VMUDL(vd, vs, vt, e uint32) {
	u.mac(vd, vs, vt, e, unsignedProduct, extractLow, false)
}
func (u *Unit) VMUDM(vd, vs, vt, e uint32) {
	u.mac(vd, vs, vt, e, signedUnsignedProduct, extractFractional, false)
}
func (u *Unit) VMUDN(vd, vs, vt, e uint32) {
	u.mac(vd, vs, vt, e, unsignedSignedProduct, extractFractional, false)
}
func (u *Unit) VMUDH(vd, vs, vt, e uint32) {
	u.mac(vd, vs, vt, e, signedProduct, extractFractional, false)
}

func (u *Unit) VMACF(vd, vs, vt, e uint32) {
	u.mac(vd, vs, vt, e, doubledSignedProduct, extractFractional, true)
}
func (u *Unit) VMACU(vd, vs, vt, e uint32) {
	u.mac(vd, vs, vt, e, doubledUnsignedProduct, extractUnsigned, true)
}
func (u *Unit) VMADL(vd, vs, vt, e uint32) {
	u.mac(vd, vs, vt, e, unsignedProduct, extractLow, true)
}
func (u *Unit) VMADM(vd, vs, vt, e uint32) {
	u.mac(vd, vs, vt, e, signedUnsignedProduct, extractFractional, true)
}
func (u *Unit) VMADN(vd, vs, vt, e uint32) {
	u.mac(vd, vs, vt, e, unsignedSignedProduct, extractFractional, true)
}
func (u *Unit) VMADH(vd, vs, vt, e uint32) {
	u.mac(vd, vs, vt, e, signedProduct, extractFractional, true)
}

// VSAR copies the High, Mid, or Low accumulator bank (selected by element
// specifier 0, 1, 2) into the destination vector; any other specifier
// value zeroes the destination (spec §4.4).
func (u *Unit) VSAR(vd uint32, e uint32) {
	switch e {
	case 0:
		u.Regs[vd] = u.AccHigh
	case 1:
		u.Regs[vd] = u.AccMid
	case 2:
		u.Regs[vd] = u.AccLow
	default:
		u.Regs[vd] = Lanes{}
	}
}
