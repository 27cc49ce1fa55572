package core

import (
	"github.com/rsp64/rsp/decode"
)

// execScalarEX runs the scalar EX stage against the instruction RD handed
// it last cycle, producing the EX→DF descriptor (spec §4.2, §4.6 step 3).
// Branches write the fetch program counter directly, taking effect on the
// next IF (spec §4.2, §9).
func (c *Chip) execScalarEX() {
	if !c.rdex.Valid || c.rdex.Op == decode.ScalarInvalid {
		c.exdf = exdfLatch{}
		return
	}
	w := c.rdex.Word
	rs := c.forwardedReg(decode.RS(w))
	rt := c.forwardedReg(decode.RT(w))
	rd := int(decode.RD(w))
	rtReg := int(decode.RT(w))
	imm := decode.SignExtImm16(w)
	uimm := uint32(decode.Imm16(w))
	shamt := decode.Shamt(w)

	next := exdfLatch{Valid: true}
	result := func(dest int, data uint32) {
		next.HasResult = true
		next.Dest = dest
		next.Data = data
	}
	load := func(fn memFunc) {
		next.MemOp = fn
		next.Addr = uint32(int32(rs) + imm)
		next.ScalarDst = rtReg
	}
	store := func(fn memFunc) {
		next.MemOp = fn
		next.Addr = uint32(int32(rs) + imm)
		next.StoreData = rt
	}
	linkPC := c.rdex.PC // address of the instruction after the delay slot.

	switch c.rdex.Op {
	case decode.OpADD, decode.OpADDU:
		result(rd, rs+rt)
	case decode.OpSUB, decode.OpSUBU:
		result(rd, rs-rt)
	case decode.OpAND:
		result(rd, rs&rt)
	case decode.OpOR:
		result(rd, rs|rt)
	case decode.OpXOR:
		result(rd, rs^rt)
	case decode.OpNOR:
		result(rd, ^(rs | rt))
	case decode.OpSLT:
		result(rd, boolU32(int32(rs) < int32(rt)))
	case decode.OpSLTU:
		result(rd, boolU32(rs < rt))

	case decode.OpADDI, decode.OpADDIU:
		result(rtReg, uint32(int32(rs)+imm))
	case decode.OpANDI:
		result(rtReg, rs&uimm)
	case decode.OpORI:
		result(rtReg, rs|uimm)
	case decode.OpXORI:
		result(rtReg, rs^uimm)
	case decode.OpSLTI:
		result(rtReg, boolU32(int32(rs) < imm))
	case decode.OpSLTIU:
		result(rtReg, boolU32(rs < uint32(imm)))

	case decode.OpSLL:
		result(rd, rt<<(shamt&0x1F))
	case decode.OpSRL:
		result(rd, rt>>(shamt&0x1F))
	case decode.OpSRA:
		result(rd, uint32(int32(rt)>>(shamt&0x1F)))
	case decode.OpSLLV:
		result(rd, rt<<(rs&0x1F))
	case decode.OpSRLV:
		result(rd, rt>>(rs&0x1F))
	case decode.OpSRAV:
		result(rd, uint32(int32(rt)>>(rs&0x1F)))

	case decode.OpBEQ:
		if rs == rt {
			c.branchTo(linkPC, imm)
		}
	case decode.OpBNE:
		if rs != rt {
			c.branchTo(linkPC, imm)
		}
	case decode.OpBLEZ:
		if int32(rs) <= 0 {
			c.branchTo(linkPC, imm)
		}
	case decode.OpBGTZ:
		if int32(rs) > 0 {
			c.branchTo(linkPC, imm)
		}
	case decode.OpBLTZ:
		if int32(rs) < 0 {
			c.branchTo(linkPC, imm)
		}
	case decode.OpBGEZ:
		if int32(rs) >= 0 {
			c.branchTo(linkPC, imm)
		}
	case decode.OpBLTZAL:
		result(31, linkPC)
		if int32(rs) < 0 {
			c.branchTo(linkPC, imm)
		}
	case decode.OpBGEZAL:
		result(31, linkPC)
		if int32(rs) >= 0 {
			c.branchTo(linkPC, imm)
		}

	case decode.OpJ:
		c.jumpTo(decode.Target26(w))
	case decode.OpJAL:
		result(31, linkPC)
		c.jumpTo(decode.Target26(w))
	case decode.OpJR:
		c.pc = (rs & pcMask) | (c.pc & inImemBit)
	case decode.OpJALR:
		result(rd, linkPC)
		c.pc = (rs & pcMask) | (c.pc & inImemBit)

	case decode.OpLB:
		load(memLB)
	case decode.OpLBU:
		load(memLBU)
	case decode.OpLH:
		load(memLH)
	case decode.OpLHU:
		load(memLHU)
	case decode.OpLW:
		load(memLW)
	case decode.OpSB:
		store(memSB)
	case decode.OpSH:
		store(memSH)
	case decode.OpSW:
		store(memSW)

	case decode.OpMFC0:
		result(rtReg, c.CP0.ReadReg(int(decode.CP0RegNum(w))))
	case decode.OpMTC0:
		c.CP0.WriteReg(int(decode.CP0RegNum(w)), rt)
	case decode.OpMFC2:
		result(rtReg, c.readVecLane(decode.VS(w), decode.VecMemElement(w)))
	case decode.OpMTC2:
		c.writeVecLane(decode.VS(w), decode.VecMemElement(w), rt)
	case decode.OpCFC2:
		result(rtReg, c.readFlagReg(decode.CP2FlagSel(w)))
	case decode.OpCTC2:
		c.writeFlagReg(decode.CP2FlagSel(w), rt)

	case decode.OpBREAK:
		c.CP0.Break()
	}

	c.exdf = next
}

// forwardedReg reads scalar register r, substituting the DF stage's
// freshly produced pending result when it targets the same register
// (spec §4.2: "if DF's pending destination equals the source register,
// the forwarded value is used").
func (c *Chip) forwardedReg(r uint32) uint32 {
	if r == 0 {
		return 0
	}
	if c.dfwb.Valid && c.dfwb.Dest == int(r) {
		return c.dfwb.Data
	}
	return c.regRead(r)
}

func boolU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// branchTo implements the branch program-counter write (spec §4.2):
// "current PC – 4 + (imm<<2)" where current PC already refers to the
// instruction after the delay slot.
func (c *Chip) branchTo(afterDelaySlotPC uint32, imm int32) {
	target := uint32(int32(afterDelaySlotPC) - 4 + (imm << 2))
	c.pc = (target & pcMask) | (c.pc & inImemBit)
}

// jumpTo implements J/JAL target formation: the 26-bit immediate shifted
// left 2, preserving the in-imem marker bit (spec §4.1).
func (c *Chip) jumpTo(target26 uint32) {
	c.pc = ((target26 << 2) & pcMask) | (c.pc & inImemBit)
}
