package vector

// VMOV copies one element of VT (selected by the element specifier) into
// one lane of VD (spec §4.4). The low 3 bits of the element specifier
// double as the destination lane, since this instruction's encoding has no
// separate destination-element field to carry one (spec §9 leaves the
// exact single-element-move encoding undetailed beyond the mnemonic).
func (u *Unit) VMOV(vd, vtIdx, e uint32) {
	vt := ElementSpecifier(u.Regs[vtIdx], e)
	lane := int(e & 0x7)
	u.Regs[vd][lane] = vt[lane]
}

// VMRG selects VS or VT per lane according to the vcc low byte: a set bit
// picks VS, a clear bit picks VT (spec §4.4).
func (u *Unit) VMRG(vd, vs, vtIdx, e uint32) {
	vt := ElementSpecifier(u.Regs[vtIdx], e)
	sel := loByte(u.VCC)
	for i := 0; i < NumLanes; i++ {
		if lane(sel, i) {
			u.Regs[vd][i] = u.Regs[vs][i]
		} else {
			u.Regs[vd][i] = vt[i]
		}
	}
}

// VNOP produces no writes (spec §4.4).
func (u *Unit) VNOP() {}

// VINV produces no writes and reports the "no writeback" destination,
// matching how an unrecognized vector opcode is handled (spec §4.4, §7).
func (u *Unit) VINV() {
	u.NoWriteback = true
}
