// Package disasm implements a disassembler for the core's 32-bit scalar
// and vector instruction words, grounded on the teacher's disassemble and
// disassembler packages (table-driven mnemonic lookup, fixed-width hex
// dump, byte-length-aware formatting) but reworked for a fixed 4-byte
// instruction width instead of the 6502's 1-3 byte encodings (spec.md
// §4.1, SPEC_FULL.md "SUPPLEMENTED FEATURES").
package disasm

import (
	"fmt"

	"github.com/rsp64/rsp/decode"
)

// scalarMnemonics maps every recognized ScalarOp to its assembler mnemonic.
var scalarMnemonics = map[decode.ScalarOp]string{
	decode.OpADD: "ADD", decode.OpADDU: "ADDU",
	decode.OpSUB: "SUB", decode.OpSUBU: "SUBU",
	decode.OpAND: "AND", decode.OpOR: "OR", decode.OpXOR: "XOR", decode.OpNOR: "NOR",
	decode.OpSLT: "SLT", decode.OpSLTU: "SLTU",
	decode.OpADDI: "ADDI", decode.OpADDIU: "ADDIU",
	decode.OpANDI: "ANDI", decode.OpORI: "ORI", decode.OpXORI: "XORI",
	decode.OpSLTI: "SLTI", decode.OpSLTIU: "SLTIU",
	decode.OpSLL: "SLL", decode.OpSRL: "SRL", decode.OpSRA: "SRA",
	decode.OpSLLV: "SLLV", decode.OpSRLV: "SRLV", decode.OpSRAV: "SRAV",
	decode.OpBEQ: "BEQ", decode.OpBNE: "BNE", decode.OpBLEZ: "BLEZ", decode.OpBGTZ: "BGTZ",
	decode.OpBLTZ: "BLTZ", decode.OpBGEZ: "BGEZ", decode.OpBLTZAL: "BLTZAL", decode.OpBGEZAL: "BGEZAL",
	decode.OpJ: "J", decode.OpJAL: "JAL", decode.OpJR: "JR", decode.OpJALR: "JALR",
	decode.OpLB: "LB", decode.OpLBU: "LBU", decode.OpLH: "LH", decode.OpLHU: "LHU", decode.OpLW: "LW",
	decode.OpSB: "SB", decode.OpSH: "SH", decode.OpSW: "SW",
	decode.OpMFC0: "MFC0", decode.OpMTC0: "MTC0",
	decode.OpMFC2: "MFC2", decode.OpMTC2: "MTC2", decode.OpCFC2: "CFC2", decode.OpCTC2: "CTC2",
	decode.OpBREAK: "BREAK",
}

// vectorMnemonics maps every recognized VectorOp to its assembler mnemonic.
var vectorMnemonics = map[decode.VectorOp]string{
	decode.OpVMULF: "VMULF", decode.OpVMULU: "VMULU",
	decode.OpVMUDL: "VMUDL", decode.OpVMUDM: "VMUDM", decode.OpVMUDN: "VMUDN", decode.OpVMUDH: "VMUDH",
	decode.OpVMACF: "VMACF", decode.OpVMACU: "VMACU",
	decode.OpVMADL: "VMADL", decode.OpVMADM: "VMADM", decode.OpVMADN: "VMADN", decode.OpVMADH: "VMADH",
	decode.OpVMULQ: "VMULQ", decode.OpVRNDP: "VRNDP", decode.OpVRNDN: "VRNDN", decode.OpVMACQ: "VMACQ",
	decode.OpVADD: "VADD", decode.OpVSUB: "VSUB", decode.OpVADDC: "VADDC", decode.OpVSUBC: "VSUBC",
	decode.OpVABS: "VABS",
	decode.OpVEQ:  "VEQ", decode.OpVNE: "VNE", decode.OpVLT: "VLT", decode.OpVGE: "VGE",
	decode.OpVCH: "VCH", decode.OpVCL: "VCL", decode.OpVCR: "VCR",
	decode.OpVAND: "VAND", decode.OpVOR: "VOR", decode.OpVXOR: "VXOR",
	decode.OpVNAND: "VNAND", decode.OpVNOR: "VNOR", decode.OpVNXOR: "VNXOR",
	decode.OpVMOV: "VMOV", decode.OpVMRG: "VMRG",
	decode.OpVRCPL: "VRCPL", decode.OpVRCPH: "VRCPH", decode.OpVRSQL: "VRSQL", decode.OpVRSQH: "VRSQH",
	decode.OpVSAR: "VSAR",
	decode.OpVNOP: "VNOP", decode.OpVINV: "VINV",
	decode.OpLBV: "LBV", decode.OpSBV: "SBV",
	decode.OpLSV: "LSV", decode.OpSSV: "SSV",
	decode.OpLLV: "LLV", decode.OpSLV: "SLV",
	decode.OpLDV: "LDV", decode.OpSDV: "SDV",
	decode.OpLQV: "LQV", decode.OpSQV: "SQV",
	decode.OpLRV: "LRV", decode.OpSRV: "SRV",
	decode.OpLPV: "LPV", decode.OpSPV: "SPV",
	decode.OpLUV: "LUV", decode.OpSUV: "SUV",
	decode.OpLHV: "LHV", decode.OpSHV: "SHV",
	decode.OpLFV: "LFV", decode.OpSFV: "SFV",
	decode.OpLTV: "LTV", decode.OpSTV: "STV",
}

// Step disassembles the 32-bit instruction word at pc, returning a
// fixed-width line in the teacher's "address hex-bytes mnemonic operands"
// style and the byte count to advance the PC (always 4 — unlike the
// teacher's variable-length 6502 encoding, every instruction here is one
// 32-bit word, spec.md §4.1).
func Step(pc uint32, word uint32) (string, int) {
	out := fmt.Sprintf("%.4X %.8X ", pc&0xFFF, word)

	s, v := decode.Decode(word)
	switch {
	case s != decode.ScalarInvalid:
		out += scalarOperands(s, word)
	case v != decode.VectorInvalid:
		out += vectorOperands(v, word)
	default:
		out += "???"
	}
	return out, 4
}

func scalarOperands(op decode.ScalarOp, w uint32) string {
	name, ok := scalarMnemonics[op]
	if !ok {
		return "UNIMPLEMENTED"
	}
	rs, rt, rd := decode.RS(w), decode.RT(w), decode.RD(w)
	imm := decode.SignExtImm16(w)
	info := decode.ScalarInfo(op)

	switch {
	case op == decode.OpBREAK:
		return name
	case op == decode.OpJ || op == decode.OpJAL:
		return fmt.Sprintf("%-6s 0x%.7X", name, decode.Target26(w)<<2)
	case op == decode.OpJR:
		return fmt.Sprintf("%-6s r%d", name, rs)
	case op == decode.OpJALR:
		return fmt.Sprintf("%-6s r%d, r%d", name, rd, rs)
	case info&decode.IsBranch != 0:
		if info&decode.NeedsRT != 0 {
			return fmt.Sprintf("%-6s r%d, r%d, %+d", name, rs, rt, imm<<2)
		}
		return fmt.Sprintf("%-6s r%d, %+d", name, rs, imm<<2)
	case op == decode.OpMFC0:
		return fmt.Sprintf("%-6s r%d, cp0_%d", name, rt, rd)
	case op == decode.OpMTC0:
		return fmt.Sprintf("%-6s cp0_%d, r%d", name, rd, rt)
	case op == decode.OpMFC2 || op == decode.OpCFC2:
		return fmt.Sprintf("%-6s r%d, v%d", name, rt, decode.VS(w))
	case op == decode.OpMTC2 || op == decode.OpCTC2:
		return fmt.Sprintf("%-6s v%d, r%d", name, decode.VS(w), rt)
	case info&(decode.IsLoad|decode.IsStore) != 0:
		reg := rt
		return fmt.Sprintf("%-6s r%d, %d(r%d)", name, reg, imm, rs)
	case op == decode.OpSLL || op == decode.OpSRL || op == decode.OpSRA:
		return fmt.Sprintf("%-6s r%d, r%d, %d", name, rd, rt, decode.Shamt(w))
	case op == decode.OpSLLV || op == decode.OpSRLV || op == decode.OpSRAV:
		return fmt.Sprintf("%-6s r%d, r%d, r%d", name, rd, rt, rs)
	case info&decode.NeedsRT != 0 && info&decode.WritesRD != 0:
		return fmt.Sprintf("%-6s r%d, r%d, r%d", name, rd, rs, rt)
	case info&decode.WritesRT != 0:
		return fmt.Sprintf("%-6s r%d, r%d, %d", name, rt, rs, imm)
	default:
		return name
	}
}

func vectorOperands(op decode.VectorOp, w uint32) string {
	name, ok := vectorMnemonics[op]
	if !ok {
		return "UNIMPLEMENTED"
	}
	info := decode.VectorInfo(op)
	vd, vs, vt := decode.VD(w), decode.VS(w), decode.VT(w)
	e := decode.VecElementSpecifier(w)

	switch {
	case info&(decode.IsLoad|decode.IsStore) != 0:
		base := decode.VecMemBase(w)
		elem := decode.VecMemElement(w)
		offset := decode.VecMemOffset(w)
		vr := decode.VecMemVT(w)
		return fmt.Sprintf("%-6s v%d[%d], %d(r%d)", name, vr, elem, offset, base)
	case op == decode.OpVNOP || op == decode.OpVINV:
		return name
	case op == decode.OpVSAR:
		return fmt.Sprintf("%-6s v%d, %d", name, vd, e)
	case op == decode.OpVMOV:
		return fmt.Sprintf("%-6s v%d, v%d[%d]", name, vd, vt, e)
	case op == decode.OpVRCPL || op == decode.OpVRCPH || op == decode.OpVRSQL || op == decode.OpVRSQH:
		return fmt.Sprintf("%-6s v%d, v%d[%d]", name, vd, vt, e)
	default:
		return fmt.Sprintf("%-6s v%d, v%d, v%d[e%d]", name, vd, vs, vt, e)
	}
}
