package core

import (
	"github.com/rsp64/rsp/decode"
)

// vecMemStride gives the log2 byte stride each vector memory family scales
// its 7-bit offset field by (spec §4.3: "an effective offset already
// sign-extended and shifted per the instruction's stride (byte=0, short=1,
// word=2, double=3, quad=4)").
func vecMemStride(op decode.VectorOp) uint {
	switch op {
	case decode.OpLBV, decode.OpSBV:
		return 0
	case decode.OpLSV, decode.OpSSV:
		return 1
	case decode.OpLLV, decode.OpSLV:
		return 2
	case decode.OpLDV, decode.OpSDV:
		return 3
	default: // LQV/SQV, LRV/SRV, LPV/SPV, LUV/SUV, LHV/SHV, LFV/SFV, LTV/STV.
		return 4
	}
}

// execVectorEX runs the EX stage's vector half: either a vector-compute
// instruction (dispatched immediately against the vector unit) or a vector
// load/store, whose memory access is deferred into the EX→DF descriptor
// exactly like a scalar load/store (spec §4.3, §4.6 step 4).
func (c *Chip) execVectorEX() {
	if !c.rdex.VecOK || c.rdex.VecOp == decode.VectorInvalid {
		return
	}
	word := c.rdex.VecW
	op := c.rdex.VecOp
	if decode.VectorInfo(op)&(decode.IsLoad|decode.IsStore) == 0 {
		c.execVector(op, word)
		return
	}
	if c.exdf.MemOp != memNone {
		// The scalar half of this cycle already claimed the single pending
		// memory descriptor slot; the vector memory access is dropped this
		// cycle (spec §3: "at most one scalar-result write is pending per
		// latch slot" — this implementation extends the same one-pending-
		// access rule to the shared memory descriptor).
		return
	}
	base := c.forwardedReg(decode.VecMemBase(word))
	offset := decode.VecMemOffset(word) << vecMemStride(op)
	c.exdf.Valid = true
	c.exdf.MemOp = memVec
	c.exdf.VecMemOp = op
	c.exdf.Addr = uint32(int32(base) + offset)
	c.exdf.Element = decode.VecMemElement(word)
	c.exdf.VecReg = decode.VecMemVT(word)
}

// execVector runs a vector-compute instruction against the vector unit.
// Every vector-compute tag shares the VS/VT/VD/element field layout (spec
// §4.1, §4.4), so dispatch is a flat switch rather than a table.
func (c *Chip) execVector(op decode.VectorOp, word uint32) {
	vd := decode.VD(word)
	vs := decode.VS(word)
	vt := decode.VT(word)
	e := decode.VecElementSpecifier(word)
	v := c.Vector

	switch op {
	case decode.OpVMULF:
		v.VMULF(vd, vs, vt, e)
	case decode.OpVMULU:
		v.VMULU(vd, vs, vt, e)
	case decode.OpVMUDL:
		v.VMUDL(vd, vs, vt, e)
	case decode.OpVMUDM:
		v.VMUDM(vd, vs, vt, e)
	case decode.OpVMUDN:
		v.VMUDN(vd, vs, vt, e)
	case decode.OpVMUDH:
		v.VMUDH(vd, vs, vt, e)
	case decode.OpVMACF:
		v.VMACF(vd, vs, vt, e)
	case decode.OpVMACU:
		v.VMACU(vd, vs, vt, e)
	case decode.OpVMADL:
		v.VMADL(vd, vs, vt, e)
	case decode.OpVMADM:
		v.VMADM(vd, vs, vt, e)
	case decode.OpVMADN:
		v.VMADN(vd, vs, vt, e)
	case decode.OpVMADH:
		v.VMADH(vd, vs, vt, e)

	// VMULQ/VRNDP/VRNDN/VMACQ are recognized encodings with no modeled
	// effect (spec §9).
	case decode.OpVMULQ, decode.OpVRNDP, decode.OpVRNDN, decode.OpVMACQ:
		v.NoWriteback = true

	case decode.OpVADD:
		v.VADD(vd, vs, vt, e)
	case decode.OpVSUB:
		v.VSUB(vd, vs, vt, e)
	case decode.OpVADDC:
		v.VADDC(vd, vs, vt, e)
	case decode.OpVSUBC:
		v.VSUBC(vd, vs, vt, e)
	case decode.OpVABS:
		v.VABS(vd, vs, vt, e)

	case decode.OpVEQ:
		v.VEQ(vd, vs, vt, e)
	case decode.OpVNE:
		v.VNE(vd, vs, vt, e)
	case decode.OpVLT:
		v.VLT(vd, vs, vt, e)
	case decode.OpVGE:
		v.VGE(vd, vs, vt, e)
	case decode.OpVCH:
		v.VCH(vd, vs, vt, e)
	case decode.OpVCL:
		v.VCL(vd, vs, vt, e)
	case decode.OpVCR:
		v.VCR(vd, vs, vt, e)

	case decode.OpVAND:
		v.VAND(vd, vs, vt, e)
	case decode.OpVOR:
		v.VOR(vd, vs, vt, e)
	case decode.OpVXOR:
		v.VXOR(vd, vs, vt, e)
	case decode.OpVNAND:
		v.VNAND(vd, vs, vt, e)
	case decode.OpVNOR:
		v.VNOR(vd, vs, vt, e)
	case decode.OpVNXOR:
		v.VNXOR(vd, vs, vt, e)

	case decode.OpVMOV:
		v.VMOV(vd, vt, e)
	case decode.OpVMRG:
		v.VMRG(vd, vs, vt, e)

	case decode.OpVRCPL:
		v.VRCPL(vd, vt, e)
	case decode.OpVRCPH:
		v.VRCPH(vd, vt, e)
	case decode.OpVRSQL:
		v.VRSQL(vd, vt, e)
	case decode.OpVRSQH:
		v.VRSQH(vd, vt, e)

	case decode.OpVSAR:
		v.VSAR(vd, e)

	case decode.OpVNOP:
		v.VNOP()
	case decode.OpVINV:
		v.VINV()

	default:
		// Unrecognized vector-compute encoding (spec §4.4, §7): no
		// writeback, same as VINV.
		v.NoWriteback = true
	}
}
